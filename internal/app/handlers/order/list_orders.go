package order

import (
	"context"
	"errors"
	"strings"

	"staybook/internal/domain/identity"
	"staybook/internal/domain/listings"
	domainorder "staybook/internal/domain/order"
	"staybook/internal/domain/shared/fault"
)

type ListByUserParams struct {
	UserID string
	Caller identity.Identity
}

// ListByUserHandler returns a user's own orders.
type ListByUserHandler struct {
	Ledger domainorder.Ledger
}

func (h *ListByUserHandler) Handle(ctx context.Context, p ListByUserParams) ([]*domainorder.Order, error) {
	userID := strings.TrimSpace(p.UserID)
	if userID == "" {
		return nil, fault.New(fault.KindInvalidInput, "user id is required")
	}
	if p.Caller.ID != userID {
		return nil, fault.New(fault.KindForbidden, "orders are only listable by their owner")
	}
	orders, err := h.Ledger.ListByUser(ctx, userID)
	if err != nil {
		return nil, fault.Wrap(fault.KindStorage, "list orders by user", err)
	}
	return orders, nil
}

type ListByListingParams struct {
	ListingID string
	Caller    identity.Identity
}

// ListByListingHandler returns every order on a listing, host only.
type ListByListingHandler struct {
	Ledger   domainorder.Ledger
	Listings listings.Directory
}

func (h *ListByListingHandler) Handle(ctx context.Context, p ListByListingParams) ([]*domainorder.Order, error) {
	listingID := strings.TrimSpace(p.ListingID)
	if listingID == "" {
		return nil, fault.New(fault.KindInvalidInput, "listing id is required")
	}
	ref, err := h.Listings.Resolve(ctx, listings.ListingID(listingID))
	if err != nil {
		if errors.Is(err, listings.ErrNotFound) {
			return nil, fault.Wrap(fault.KindNotFound, "listing not found", err)
		}
		return nil, fault.Wrap(fault.KindStorage, "resolve listing", err)
	}
	if listings.HostID(p.Caller.ID) != ref.Host {
		return nil, fault.New(fault.KindForbidden, "only the host may list a listing's orders")
	}
	orders, err := h.Ledger.ListByListing(ctx, ref.ID)
	if err != nil {
		return nil, fault.Wrap(fault.KindStorage, "list orders by listing", err)
	}
	return orders, nil
}
