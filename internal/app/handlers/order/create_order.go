package order

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"staybook/internal/app/policies"
	"staybook/internal/domain/availability"
	"staybook/internal/domain/identity"
	"staybook/internal/domain/listings"
	domainorder "staybook/internal/domain/order"
	"staybook/internal/domain/shared/day"
	"staybook/internal/domain/shared/fault"
)

type CreateParams struct {
	ListingID string
	UserID    string
	Start     day.Day
	End       day.Day
	Caller    identity.Identity
}

// CreateHandler reserves an inclusive date range on a listing. The check
// phase runs over the whole range before any write; the reserve phase uses
// conditional writes so a concurrent booking of any day fails the whole call.
type CreateHandler struct {
	Calendar availability.Store
	Ledger   domainorder.Ledger
	Listings listings.Directory
	Events   policies.OrderEvents
	Logger   *slog.Logger
}

func (h *CreateHandler) Handle(ctx context.Context, p CreateParams) (*domainorder.Order, error) {
	userID := strings.TrimSpace(p.UserID)
	if userID == "" || strings.TrimSpace(p.ListingID) == "" {
		return nil, fault.New(fault.KindInvalidInput, "user id and listing id are required")
	}
	if p.Caller.ID != userID {
		return nil, fault.New(fault.KindForbidden, "orders can only be created for the authenticated user")
	}
	stay, err := day.NewRange(p.Start, p.End)
	if err != nil {
		return nil, fault.Wrap(fault.KindInvalidInput, "invalid date range", err)
	}

	ref, err := h.Listings.Resolve(ctx, listings.ListingID(p.ListingID))
	if err != nil {
		if errors.Is(err, listings.ErrNotFound) {
			return nil, fault.Wrap(fault.KindNotFound, "listing not found", err)
		}
		return nil, fault.Wrap(fault.KindStorage, "resolve listing", err)
	}

	days := stay.Days()
	var totalCents int64
	for _, d := range days {
		rec, err := h.Calendar.Day(ctx, ref.ID, d)
		if err != nil {
			if errors.Is(err, availability.ErrDayNotFound) {
				return nil, fault.New(fault.KindUnavailable, "listing is not available on "+d.String())
			}
			return nil, fault.Wrap(fault.KindStorage, "read availability", err)
		}
		if !rec.Available {
			return nil, fault.New(fault.KindUnavailable, "listing is not available on "+d.String())
		}
		totalCents += rec.PriceCents
	}

	ord := &domainorder.Order{
		ID:         domainorder.OrderID(uuid.NewString()),
		UserID:     userID,
		HostID:     ref.Host,
		ListingID:  ref.ID,
		Stay:       stay,
		TotalCents: totalCents,
		CreatedAt:  time.Now().UTC(),
	}
	if err := h.Ledger.Save(ctx, ord); err != nil {
		return nil, fault.Wrap(fault.KindStorage, "persist order", err)
	}

	for i, d := range days {
		if err := h.Calendar.Reserve(ctx, ref.ID, d); err != nil {
			h.compensate(ctx, ord, days[:i])
			if errors.Is(err, availability.ErrDayConflict) {
				return nil, fault.Wrap(fault.KindUnavailable, "date "+d.String()+" was booked concurrently", err)
			}
			return nil, fault.Wrap(fault.KindStorage, "reserve date "+d.String(), err)
		}
	}

	if h.Events != nil {
		h.Events.OrderCreated(ctx, ord)
	}
	if h.Logger != nil {
		h.Logger.Info("order created", "order_id", ord.ID, "listing_id", ord.ListingID, "user_id", ord.UserID, "days", len(days), "total_cents", ord.TotalCents)
	}
	return ord, nil
}

// compensate undoes a partially-applied create: releases the days this call
// already flipped and removes the persisted order. Best effort only; a failed
// compensation leaves the gap to the reconciliation pass.
func (h *CreateHandler) compensate(ctx context.Context, ord *domainorder.Order, flipped []day.Day) {
	for _, d := range flipped {
		if err := h.Calendar.Release(ctx, ord.ListingID, d); err != nil && h.Logger != nil {
			h.Logger.Error("compensating release failed", "order_id", ord.ID, "listing_id", ord.ListingID, "date", d.String(), "error", err)
		}
	}
	if err := h.Ledger.Delete(ctx, ord.ID); err != nil && h.Logger != nil {
		h.Logger.Error("compensating order delete failed", "order_id", ord.ID, "error", err)
	}
}
