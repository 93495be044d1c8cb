package order

import (
	"context"
	"errors"
	"strings"

	"staybook/internal/domain/identity"
	domainorder "staybook/internal/domain/order"
	"staybook/internal/domain/shared/fault"
)

type GetParams struct {
	OrderID string
	Caller  identity.Identity
}

// GetHandler returns one order to either party of the booking.
type GetHandler struct {
	Ledger domainorder.Ledger
}

func (h *GetHandler) Handle(ctx context.Context, p GetParams) (*domainorder.Order, error) {
	orderID := strings.TrimSpace(p.OrderID)
	if orderID == "" {
		return nil, fault.New(fault.KindInvalidInput, "order id is required")
	}
	ord, err := h.Ledger.ByID(ctx, domainorder.OrderID(orderID))
	if err != nil {
		if errors.Is(err, domainorder.ErrNotFound) {
			return nil, fault.Wrap(fault.KindNotFound, "order not found", err)
		}
		return nil, fault.Wrap(fault.KindStorage, "load order", err)
	}
	if p.Caller.ID != ord.UserID && p.Caller.ID != string(ord.HostID) {
		return nil, fault.New(fault.KindForbidden, "not a party to this order")
	}
	return ord, nil
}
