package order

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"staybook/internal/app/policies"
	"staybook/internal/domain/availability"
	"staybook/internal/domain/identity"
	"staybook/internal/domain/listings"
	domainorder "staybook/internal/domain/order"
	"staybook/internal/domain/shared/day"
	"staybook/internal/domain/shared/fault"
)

type UpdateParams struct {
	OrderID   string
	ListingID string
	Start     day.Day
	End       day.Day
	Caller    identity.Identity
}

// UpdateHandler replaces an order's listing and date range wholesale. Days
// are diffed as exact sets: when the listing stays the same only the added
// days are reserved and only the removed days released; when the listing
// changes every new day is reserved on the new listing and every old day
// released on the original one.
type UpdateHandler struct {
	Calendar availability.Store
	Ledger   domainorder.Ledger
	Events   policies.OrderEvents
	Logger   *slog.Logger
}

func (h *UpdateHandler) Handle(ctx context.Context, p UpdateParams) (*domainorder.Order, error) {
	orderID := strings.TrimSpace(p.OrderID)
	if orderID == "" || strings.TrimSpace(p.ListingID) == "" {
		return nil, fault.New(fault.KindInvalidInput, "order id and listing id are required")
	}
	newStay, err := day.NewRange(p.Start, p.End)
	if err != nil {
		return nil, fault.Wrap(fault.KindInvalidInput, "invalid date range", err)
	}

	prev, err := h.Ledger.ByID(ctx, domainorder.OrderID(orderID))
	if err != nil {
		if errors.Is(err, domainorder.ErrNotFound) {
			return nil, fault.Wrap(fault.KindNotFound, "order not found", err)
		}
		return nil, fault.Wrap(fault.KindStorage, "load order", err)
	}
	if p.Caller.ID != prev.UserID {
		return nil, fault.New(fault.KindForbidden, "only the renting user may modify the order")
	}

	newListing := listings.ListingID(p.ListingID)
	newDays := newStay.Days()
	oldDays := prev.Stay.Days()

	var added, removed []day.Day
	if newListing == prev.ListingID {
		added = day.Diff(newDays, oldDays)
		removed = day.Diff(oldDays, newDays)
	} else {
		added = newDays
		removed = oldDays
	}

	for _, d := range added {
		rec, err := h.Calendar.Day(ctx, newListing, d)
		if err != nil {
			if errors.Is(err, availability.ErrDayNotFound) {
				return nil, fault.New(fault.KindUnavailable, "listing is not available on "+d.String())
			}
			return nil, fault.Wrap(fault.KindStorage, "read availability", err)
		}
		if !rec.Available {
			return nil, fault.New(fault.KindUnavailable, "listing is not available on "+d.String())
		}
	}

	// The total is recomputed from current prices across the entire new
	// range, unchanged days included. Days the order itself holds have no
	// availability requirement here; a missing record contributes nothing.
	var totalCents int64
	for _, d := range newDays {
		rec, err := h.Calendar.Day(ctx, newListing, d)
		if err != nil {
			if errors.Is(err, availability.ErrDayNotFound) {
				continue
			}
			return nil, fault.Wrap(fault.KindStorage, "read availability", err)
		}
		totalCents += rec.PriceCents
	}

	snapshot := *prev
	next := *prev
	next.ListingID = newListing
	next.Stay = newStay
	next.TotalCents = totalCents
	next.UpdatedAt = time.Now().UTC()
	if err := h.Ledger.Save(ctx, &next); err != nil {
		return nil, fault.Wrap(fault.KindStorage, "persist order", err)
	}

	for i, d := range added {
		if err := h.Calendar.Reserve(ctx, newListing, d); err != nil {
			h.compensate(ctx, &snapshot, newListing, added[:i])
			if errors.Is(err, availability.ErrDayConflict) {
				return nil, fault.Wrap(fault.KindUnavailable, "date "+d.String()+" was booked concurrently", err)
			}
			return nil, fault.Wrap(fault.KindStorage, "reserve date "+d.String(), err)
		}
	}

	for _, d := range removed {
		if err := h.Calendar.Release(ctx, snapshot.ListingID, d); err != nil {
			// The order record and the added days are already committed;
			// surface the failure rather than guessing at a rollback.
			if h.Logger != nil {
				h.Logger.Error("release of removed date failed", "order_id", next.ID, "listing_id", snapshot.ListingID, "date", d.String(), "error", err)
			}
			return nil, fault.Wrap(fault.KindStorage, "release date "+d.String(), err)
		}
	}

	if h.Events != nil {
		h.Events.OrderUpdated(ctx, &next)
	}
	if h.Logger != nil {
		h.Logger.Info("order updated", "order_id", next.ID, "listing_id", next.ListingID, "added", len(added), "removed", len(removed), "total_cents", next.TotalCents)
	}
	return &next, nil
}

// compensate restores the pre-update order record and releases the days this
// call reserved before failing. Best effort only.
func (h *UpdateHandler) compensate(ctx context.Context, snapshot *domainorder.Order, newListing listings.ListingID, flipped []day.Day) {
	for _, d := range flipped {
		if err := h.Calendar.Release(ctx, newListing, d); err != nil && h.Logger != nil {
			h.Logger.Error("compensating release failed", "order_id", snapshot.ID, "listing_id", newListing, "date", d.String(), "error", err)
		}
	}
	if err := h.Ledger.Save(ctx, snapshot); err != nil && h.Logger != nil {
		h.Logger.Error("compensating order restore failed", "order_id", snapshot.ID, "error", err)
	}
}
