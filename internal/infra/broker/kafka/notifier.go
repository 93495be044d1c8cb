package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"staybook/internal/app/policies"
	"staybook/internal/domain/order"
)

// OrderNotifier publishes order lifecycle events. Publishing is best effort:
// the reservation outcome is already committed by the time an event fires, so
// broker failures are logged and swallowed.
type OrderNotifier struct {
	Producer *Producer
	Topic    string
	Logger   *slog.Logger
}

func NewOrderNotifier(producer *Producer, topic string, logger *slog.Logger) *OrderNotifier {
	return &OrderNotifier{Producer: producer, Topic: topic, Logger: logger}
}

type orderEnvelope struct {
	Event      string `json:"event"`
	OrderID    string `json:"order_id"`
	UserID     string `json:"user_id"`
	HostID     string `json:"host_id"`
	ListingID  string `json:"listing_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	TotalCents int64  `json:"total_cents"`
	OccurredAt string `json:"occurred_at"`
}

func (n *OrderNotifier) OrderCreated(ctx context.Context, o *order.Order) {
	n.publish(ctx, "order.created", o)
}

func (n *OrderNotifier) OrderUpdated(ctx context.Context, o *order.Order) {
	n.publish(ctx, "order.updated", o)
}

func (n *OrderNotifier) OrderCancelled(ctx context.Context, o *order.Order) {
	n.publish(ctx, "order.cancelled", o)
}

func (n *OrderNotifier) publish(ctx context.Context, event string, o *order.Order) {
	env := orderEnvelope{
		Event:      event,
		OrderID:    string(o.ID),
		UserID:     o.UserID,
		HostID:     string(o.HostID),
		ListingID:  string(o.ListingID),
		StartDate:  o.Stay.Start.String(),
		EndDate:    o.Stay.End.String(),
		TotalCents: o.TotalCents,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	payload, err := json.Marshal(env)
	if err != nil {
		n.log(ctx, event, o, err)
		return
	}
	headers := map[string]string{"event": event}
	if err := n.Producer.Publish(ctx, n.Topic, string(o.ID), payload, headers); err != nil {
		n.log(ctx, event, o, err)
	}
}

func (n *OrderNotifier) log(ctx context.Context, event string, o *order.Order, err error) {
	if n.Logger == nil {
		return
	}
	n.Logger.WarnContext(ctx, "order event publish failed",
		slog.String("event", event),
		slog.String("orderId", string(o.ID)),
		slog.Any("error", err),
	)
}

var _ policies.OrderEvents = (*OrderNotifier)(nil)
