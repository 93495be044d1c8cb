package availability

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	domainavailability "staybook/internal/domain/availability"
	"staybook/internal/domain/identity"
	"staybook/internal/domain/listings"
	"staybook/internal/domain/shared/day"
	"staybook/internal/domain/shared/fault"
)

type SetDayParams struct {
	ListingID  string
	Day        day.Day
	Available  bool
	PriceCents int64
	Caller     identity.Identity
}

// SetDayHandler is the host-facing calendar write: it upserts one
// (listing, date) record wholesale, stamping the listing type resolved from
// the directory so search never needs to parse ids.
type SetDayHandler struct {
	Calendar domainavailability.Store
	Listings listings.Directory
	Logger   *slog.Logger
}

func (h *SetDayHandler) Handle(ctx context.Context, p SetDayParams) error {
	if strings.TrimSpace(p.ListingID) == "" || p.Day.IsZero() {
		return fault.New(fault.KindInvalidInput, "listing id and date are required")
	}
	if p.PriceCents < 0 {
		return fault.Wrap(fault.KindInvalidInput, "invalid price", domainavailability.ErrInvalidPrice)
	}
	if !p.Caller.InGroup(identity.GroupHosts) {
		return fault.New(fault.KindForbidden, "caller is not a host")
	}

	ref, err := h.Listings.Resolve(ctx, listings.ListingID(p.ListingID))
	if err != nil {
		if errors.Is(err, listings.ErrNotFound) {
			return fault.Wrap(fault.KindNotFound, "listing not found", err)
		}
		return fault.Wrap(fault.KindStorage, "resolve listing", err)
	}
	if ref.Host != listings.HostID(p.Caller.ID) {
		return fault.New(fault.KindForbidden, "caller does not own this listing")
	}

	rec := domainavailability.Record{
		ListingID:  ref.ID,
		Type:       ref.Type,
		Day:        p.Day,
		Available:  p.Available,
		PriceCents: p.PriceCents,
	}
	if err := h.Calendar.SetDay(ctx, rec); err != nil {
		return fault.Wrap(fault.KindStorage, "write availability", err)
	}
	if h.Logger != nil {
		h.Logger.Info("availability set", "listing_id", ref.ID, "date", p.Day.String(), "available", p.Available, "price_cents", p.PriceCents)
	}
	return nil
}
