package dto

import (
	"time"

	domainorder "staybook/internal/domain/order"
)

type OrderView struct {
	ID         string    `json:"order_id"`
	UserID     string    `json:"user_id"`
	HostID     string    `json:"host_id"`
	ListingID  string    `json:"listing_id"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	TotalCents int64     `json:"total_cents"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at,omitempty"`
}

type OrderCollection struct {
	Items []OrderView `json:"items"`
}

func MapOrder(o *domainorder.Order) OrderView {
	return OrderView{
		ID:         string(o.ID),
		UserID:     o.UserID,
		HostID:     string(o.HostID),
		ListingID:  string(o.ListingID),
		StartDate:  o.Stay.Start.String(),
		EndDate:    o.Stay.End.String(),
		TotalCents: o.TotalCents,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}

func MapOrders(orders []*domainorder.Order) OrderCollection {
	items := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		items = append(items, MapOrder(o))
	}
	return OrderCollection{Items: items}
}
