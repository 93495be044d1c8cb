package memory

import (
	"context"
	"sync"

	"staybook/internal/app/policies"
	"staybook/internal/domain/order"
)

// OrderEventLog records order lifecycle events in memory. Used by tests and
// as the event sink when no broker is configured.
type OrderEventLog struct {
	mu      sync.Mutex
	entries []OrderEvent
}

type OrderEvent struct {
	Kind    string
	OrderID order.OrderID
}

func NewOrderEventLog() *OrderEventLog {
	return &OrderEventLog{}
}

func (l *OrderEventLog) OrderCreated(ctx context.Context, o *order.Order) {
	l.append("created", o.ID)
}

func (l *OrderEventLog) OrderUpdated(ctx context.Context, o *order.Order) {
	l.append("updated", o.ID)
}

func (l *OrderEventLog) OrderCancelled(ctx context.Context, o *order.Order) {
	l.append("cancelled", o.ID)
}

func (l *OrderEventLog) Entries() []OrderEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]OrderEvent(nil), l.entries...)
}

func (l *OrderEventLog) append(kind string, id order.OrderID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, OrderEvent{Kind: kind, OrderID: id})
}

var _ policies.OrderEvents = (*OrderEventLog)(nil)
