package availability

import (
	"context"
	"errors"
	"math"

	"staybook/internal/domain/listings"
	"staybook/internal/domain/shared/day"
)

var (
	// ErrDayNotFound is returned for a (listing, date) pair with no record.
	// Absence means "not bookable"; callers must not treat it as open.
	ErrDayNotFound = errors.New("availability: no record for date")
	// ErrDayConflict is returned when a conditional reserve loses the race:
	// the record is gone or no longer available.
	ErrDayConflict  = errors.New("availability: date is not available")
	ErrInvalidPrice = errors.New("availability: price must be non-negative")
)

// Record is the per-(listing, date) unit of the calendar: whether the date is
// bookable and at what nightly price. The listing type is denormalized onto
// the record so search never derives it from the id.
type Record struct {
	ListingID  listings.ListingID
	Type       listings.Type
	Day        day.Day
	Available  bool
	PriceCents int64
}

// SearchParams filters the calendar across listings for the search path.
// Zero MaxPriceCents means uncapped.
type SearchParams struct {
	Type          listings.Type
	From          day.Day
	To            day.Day
	MinPriceCents int64
	MaxPriceCents int64
}

// EffectiveMax resolves the open upper bound.
func (p SearchParams) EffectiveMax() int64 {
	if p.MaxPriceCents <= 0 {
		return math.MaxInt64
	}
	return p.MaxPriceCents
}

// Store is the durable calendar. Each call is an independent unit: there is
// no multi-key transaction, and Reserve is the only operation with
// compare-and-set semantics.
type Store interface {
	// Day reads one record, ErrDayNotFound when absent.
	Day(ctx context.Context, id listings.ListingID, d day.Day) (Record, error)

	// SetDay upserts a record wholesale (host-facing calendar writes).
	SetDay(ctx context.Context, rec Record) error

	// Reserve flips Available to false only if the record currently exists
	// with Available=true; otherwise ErrDayConflict. Price is preserved.
	Reserve(ctx context.Context, id listings.ListingID, d day.Day) error

	// Release flips Available back to true, preserving price. Releasing an
	// absent record is a no-op: this engine never fabricates a price.
	Release(ctx context.Context, id listings.ListingID, d day.Day) error

	// ListingDays returns the records for one listing in [from, to], ordered
	// by date.
	ListingDays(ctx context.Context, id listings.ListingID, from, to day.Day) ([]Record, error)

	// Search returns available records across listings matching the params,
	// ordered by (date, price).
	Search(ctx context.Context, params SearchParams) ([]Record, error)
}
