package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"staybook/internal/domain/availability"
	"staybook/internal/domain/listings"
	"staybook/internal/domain/shared/day"
)

// AvailabilityStore keeps one document per listing-day. The reserve path is a
// single conditional UpdateOne filtered on available:true, so two concurrent
// reservations of the same day cannot both match.
type AvailabilityStore struct {
	col *mongo.Collection
}

func NewAvailabilityStore(db *mongo.Database) *AvailabilityStore {
	return &AvailabilityStore{col: db.Collection("availability_days")}
}

// EnsureIndexes creates the indexes the listing and search queries rely on.
func (s *AvailabilityStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "listing_id", Value: 1}, {Key: "date", Value: 1}}},
		{Keys: bson.D{{Key: "type", Value: 1}, {Key: "date", Value: 1}, {Key: "price_cents", Value: 1}}},
	})
	return err
}

func (s *AvailabilityStore) Day(ctx context.Context, id listings.ListingID, d day.Day) (availability.Record, error) {
	var doc dayDocument
	err := s.col.FindOne(ctx, bson.M{"_id": dayID(id, d)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return availability.Record{}, availability.ErrDayNotFound
		}
		return availability.Record{}, err
	}
	return doc.toRecord()
}

func (s *AvailabilityStore) SetDay(ctx context.Context, rec availability.Record) error {
	if rec.PriceCents < 0 {
		return availability.ErrInvalidPrice
	}
	doc := newDayDocument(rec)
	opts := options.Update().SetUpsert(true)
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": doc.ID}, bson.M{"$set": doc}, opts)
	return err
}

func (s *AvailabilityStore) Reserve(ctx context.Context, id listings.ListingID, d day.Day) error {
	filter := bson.M{"_id": dayID(id, d), "available": true}
	res, err := s.col.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"available": false}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return availability.ErrDayConflict
	}
	return nil
}

func (s *AvailabilityStore) Release(ctx context.Context, id listings.ListingID, d day.Day) error {
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": dayID(id, d)}, bson.M{"$set": bson.M{"available": true}})
	return err
}

func (s *AvailabilityStore) ListingDays(ctx context.Context, id listings.ListingID, from, to day.Day) ([]availability.Record, error) {
	filter := bson.M{
		"listing_id": string(id),
		"date":       bson.M{"$gte": from.String(), "$lte": to.String()},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	return s.find(ctx, filter, opts)
}

func (s *AvailabilityStore) Search(ctx context.Context, params availability.SearchParams) ([]availability.Record, error) {
	filter := bson.M{
		"type":        string(params.Type),
		"available":   true,
		"date":        bson.M{"$gte": params.From.String(), "$lte": params.To.String()},
		"price_cents": bson.M{"$gte": params.MinPriceCents, "$lte": params.EffectiveMax()},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "price_cents", Value: 1}})
	return s.find(ctx, filter, opts)
}

func (s *AvailabilityStore) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]availability.Record, error) {
	cur, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []availability.Record
	for cur.Next(ctx) {
		var doc dayDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		rec, err := doc.toRecord()
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, cur.Err()
}

type dayDocument struct {
	ID         string `bson:"_id"`
	ListingID  string `bson:"listing_id"`
	Type       string `bson:"type"`
	Date       string `bson:"date"`
	Available  bool   `bson:"available"`
	PriceCents int64  `bson:"price_cents"`
}

func dayID(id listings.ListingID, d day.Day) string {
	return string(id) + "#" + d.String()
}

func newDayDocument(rec availability.Record) dayDocument {
	return dayDocument{
		ID:         dayID(rec.ListingID, rec.Day),
		ListingID:  string(rec.ListingID),
		Type:       string(rec.Type),
		Date:       rec.Day.String(),
		Available:  rec.Available,
		PriceCents: rec.PriceCents,
	}
}

func (d dayDocument) toRecord() (availability.Record, error) {
	date, err := day.Parse(d.Date)
	if err != nil {
		return availability.Record{}, err
	}
	return availability.Record{
		ListingID:  listings.ListingID(d.ListingID),
		Type:       listings.Type(d.Type),
		Day:        date,
		Available:  d.Available,
		PriceCents: d.PriceCents,
	}, nil
}

var _ availability.Store = (*AvailabilityStore)(nil)
