package memory

import (
	"context"
	"sort"
	"sync"

	"staybook/internal/domain/listings"
	"staybook/internal/domain/order"
)

// OrderLedger stores orders in memory.
type OrderLedger struct {
	mu    sync.RWMutex
	items map[order.OrderID]order.Order
}

func NewOrderLedger() *OrderLedger {
	return &OrderLedger{items: make(map[order.OrderID]order.Order)}
}

func (l *OrderLedger) ByID(ctx context.Context, id order.OrderID) (*order.Order, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	o, ok := l.items[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	return &o, nil
}

func (l *OrderLedger) Save(ctx context.Context, o *order.Order) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items[o.ID] = *o
	return nil
}

func (l *OrderLedger) Delete(ctx context.Context, id order.OrderID) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.items, id)
	return nil
}

func (l *OrderLedger) ListByUser(ctx context.Context, userID string) ([]*order.Order, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []*order.Order
	for _, o := range l.items {
		if o.UserID == userID {
			cp := o
			out = append(out, &cp)
		}
	}
	sortOrders(out)
	return out, nil
}

func (l *OrderLedger) ListByListing(ctx context.Context, id listings.ListingID) ([]*order.Order, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []*order.Order
	for _, o := range l.items {
		if o.ListingID == id {
			cp := o
			out = append(out, &cp)
		}
	}
	sortOrders(out)
	return out, nil
}

func sortOrders(orders []*order.Order) {
	sort.Slice(orders, func(i, j int) bool {
		if orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].ID < orders[j].ID
		}
		return orders[i].CreatedAt.Before(orders[j].CreatedAt)
	})
}

var _ order.Ledger = (*OrderLedger)(nil)
