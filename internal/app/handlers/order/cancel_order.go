package order

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"staybook/internal/app/policies"
	"staybook/internal/domain/availability"
	"staybook/internal/domain/identity"
	domainorder "staybook/internal/domain/order"
	"staybook/internal/domain/shared/fault"
)

type CancelParams struct {
	OrderID string
	Caller  identity.Identity
}

// CancelHandler removes an order and restores its dates. Either side of the
// booking may cancel. The ledger delete precedes the availability writes,
// mirroring the create ordering.
type CancelHandler struct {
	Calendar availability.Store
	Ledger   domainorder.Ledger
	Events   policies.OrderEvents
	Logger   *slog.Logger
}

func (h *CancelHandler) Handle(ctx context.Context, p CancelParams) error {
	orderID := strings.TrimSpace(p.OrderID)
	if orderID == "" {
		return fault.New(fault.KindInvalidInput, "order id is required")
	}

	ord, err := h.Ledger.ByID(ctx, domainorder.OrderID(orderID))
	if err != nil {
		if errors.Is(err, domainorder.ErrNotFound) {
			return fault.Wrap(fault.KindNotFound, "order not found", err)
		}
		return fault.Wrap(fault.KindStorage, "load order", err)
	}
	if p.Caller.ID != ord.UserID && p.Caller.ID != string(ord.HostID) {
		return fault.New(fault.KindForbidden, "only the renting user or the host may cancel")
	}

	if err := h.Ledger.Delete(ctx, ord.ID); err != nil {
		return fault.Wrap(fault.KindStorage, "delete order", err)
	}

	// All days are attempted even if one release fails; the first failure is
	// reported after the sweep so a single bad write does not strand the rest.
	var releaseErr error
	for _, d := range ord.Stay.Days() {
		if err := h.Calendar.Release(ctx, ord.ListingID, d); err != nil {
			if h.Logger != nil {
				h.Logger.Error("release failed during cancel", "order_id", ord.ID, "listing_id", ord.ListingID, "date", d.String(), "error", err)
			}
			if releaseErr == nil {
				releaseErr = err
			}
		}
	}
	if releaseErr != nil {
		return fault.Wrap(fault.KindStorage, "restore availability", releaseErr)
	}

	if h.Events != nil {
		h.Events.OrderCancelled(ctx, ord)
	}
	if h.Logger != nil {
		h.Logger.Info("order cancelled", "order_id", ord.ID, "listing_id", ord.ListingID, "by", p.Caller.ID)
	}
	return nil
}
