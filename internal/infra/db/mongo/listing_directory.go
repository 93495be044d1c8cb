package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"staybook/internal/domain/listings"
)

// ListingDirectory resolves listing ownership and display projections from the
// catalog collection maintained by the listing service.
type ListingDirectory struct {
	col *mongo.Collection
}

func NewListingDirectory(db *mongo.Database) *ListingDirectory {
	return &ListingDirectory{col: db.Collection("listings")}
}

func (d *ListingDirectory) Resolve(ctx context.Context, id listings.ListingID) (listings.Ref, error) {
	var doc listingDocument
	if err := d.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return listings.Ref{}, listings.ErrNotFound
		}
		return listings.Ref{}, err
	}
	typ, err := listings.ParseType(doc.Type)
	if err != nil {
		return listings.Ref{}, err
	}
	return listings.Ref{
		ID:   listings.ListingID(doc.ID),
		Host: listings.HostID(doc.HostID),
		Type: typ,
	}, nil
}

func (d *ListingDirectory) Projections(ctx context.Context, ids []listings.ListingID) ([]listings.Projection, error) {
	raw := make([]string, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, string(id))
	}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := d.col.Find(ctx, bson.M{"_id": bson.M{"$in": raw}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []listings.Projection
	for cur.Next(ctx) {
		var doc listingDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, listings.Projection{
			ID:    listings.ListingID(doc.ID),
			City:  doc.City,
			Image: doc.Image,
		})
	}
	return out, cur.Err()
}

// Upsert writes a catalog entry. Exposed for seeding and tooling.
func (d *ListingDirectory) Upsert(ctx context.Context, ref listings.Ref, city, image string) error {
	doc := listingDocument{
		ID:     string(ref.ID),
		HostID: string(ref.Host),
		Type:   string(ref.Type),
		City:   city,
		Image:  image,
	}
	opts := options.Replace().SetUpsert(true)
	_, err := d.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts)
	return err
}

type listingDocument struct {
	ID     string `bson:"_id"`
	HostID string `bson:"host_id"`
	Type   string `bson:"type"`
	City   string `bson:"city"`
	Image  string `bson:"image"`
}

var _ listings.Directory = (*ListingDirectory)(nil)
