package order

import (
	"context"
	"errors"
	"time"

	"staybook/internal/domain/listings"
	"staybook/internal/domain/shared/day"
)

var ErrNotFound = errors.New("order: not found")

type OrderID string

// Order is a confirmed reservation of a contiguous inclusive day range on one
// listing by one user. HostID is denormalized from the listing at creation
// time for authorization and indexing.
type Order struct {
	ID         OrderID
	UserID     string
	HostID     listings.HostID
	ListingID  listings.ListingID
	Stay       day.Range
	TotalCents int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Ledger is the durable order record store. Save is a full-document upsert:
// updates replace the whole order, never patch fields. The by-user and
// by-listing lookups may be eventually consistent.
type Ledger interface {
	ByID(ctx context.Context, id OrderID) (*Order, error)
	Save(ctx context.Context, o *Order) error
	Delete(ctx context.Context, id OrderID) error
	ListByUser(ctx context.Context, userID string) ([]*Order, error)
	ListByListing(ctx context.Context, id listings.ListingID) ([]*Order, error)
}
