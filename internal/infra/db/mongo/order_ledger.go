package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"staybook/internal/domain/listings"
	"staybook/internal/domain/order"
	"staybook/internal/domain/shared/day"
)

type OrderLedger struct {
	col *mongo.Collection
}

func NewOrderLedger(db *mongo.Database) *OrderLedger {
	return &OrderLedger{col: db.Collection("orders")}
}

func (l *OrderLedger) EnsureIndexes(ctx context.Context) error {
	_, err := l.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "listing_id", Value: 1}, {Key: "created_at", Value: 1}}},
	})
	return err
}

func (l *OrderLedger) ByID(ctx context.Context, id order.OrderID) (*order.Order, error) {
	var doc orderDocument
	if err := l.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, order.ErrNotFound
		}
		return nil, err
	}
	return doc.toOrder()
}

func (l *OrderLedger) Save(ctx context.Context, o *order.Order) error {
	doc := newOrderDocument(o)
	opts := options.Replace().SetUpsert(true)
	_, err := l.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts)
	return err
}

func (l *OrderLedger) Delete(ctx context.Context, id order.OrderID) error {
	_, err := l.col.DeleteOne(ctx, bson.M{"_id": string(id)})
	return err
}

func (l *OrderLedger) ListByUser(ctx context.Context, userID string) ([]*order.Order, error) {
	return l.find(ctx, bson.M{"user_id": userID})
}

func (l *OrderLedger) ListByListing(ctx context.Context, id listings.ListingID) ([]*order.Order, error) {
	return l.find(ctx, bson.M{"listing_id": string(id)})
}

func (l *OrderLedger) find(ctx context.Context, filter bson.M) ([]*order.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := l.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []*order.Order
	for cur.Next(ctx) {
		var doc orderDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		o, err := doc.toOrder()
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, cur.Err()
}

type orderDocument struct {
	ID         string `bson:"_id"`
	UserID     string `bson:"user_id"`
	HostID     string `bson:"host_id"`
	ListingID  string `bson:"listing_id"`
	StartDate  string `bson:"start_date"`
	EndDate    string `bson:"end_date"`
	TotalCents int64  `bson:"total_cents"`
	CreatedAt  int64  `bson:"created_at"`
	UpdatedAt  int64  `bson:"updated_at"`
}

func newOrderDocument(o *order.Order) orderDocument {
	return orderDocument{
		ID:         string(o.ID),
		UserID:     o.UserID,
		HostID:     string(o.HostID),
		ListingID:  string(o.ListingID),
		StartDate:  o.Stay.Start.String(),
		EndDate:    o.Stay.End.String(),
		TotalCents: o.TotalCents,
		CreatedAt:  o.CreatedAt.UnixMilli(),
		UpdatedAt:  o.UpdatedAt.UnixMilli(),
	}
}

func (d orderDocument) toOrder() (*order.Order, error) {
	start, err := day.Parse(d.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := day.Parse(d.EndDate)
	if err != nil {
		return nil, err
	}
	stay, err := day.NewRange(start, end)
	if err != nil {
		return nil, err
	}
	return &order.Order{
		ID:         order.OrderID(d.ID),
		UserID:     d.UserID,
		HostID:     listings.HostID(d.HostID),
		ListingID:  listings.ListingID(d.ListingID),
		Stay:       stay,
		TotalCents: d.TotalCents,
		CreatedAt:  time.UnixMilli(d.CreatedAt).UTC(),
		UpdatedAt:  time.UnixMilli(d.UpdatedAt).UTC(),
	}, nil
}

var _ order.Ledger = (*OrderLedger)(nil)
