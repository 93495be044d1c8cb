package policies

import (
	"context"

	"staybook/internal/domain/order"
)

// OrderEvents receives order lifecycle notifications after the ledger write
// committed. Delivery is best-effort: implementations log failures and never
// block or fail the operation.
type OrderEvents interface {
	OrderCreated(ctx context.Context, o *order.Order)
	OrderUpdated(ctx context.Context, o *order.Order)
	OrderCancelled(ctx context.Context, o *order.Order)
}
