package memory

import (
	"context"
	"sync"

	"staybook/internal/domain/listings"
)

type listingEntry struct {
	ref  listings.Ref
	proj listings.Projection
}

// ListingDirectory is an in-memory stand-in for the external listing catalog.
type ListingDirectory struct {
	mu    sync.RWMutex
	items map[listings.ListingID]listingEntry
}

func NewListingDirectory() *ListingDirectory {
	return &ListingDirectory{items: make(map[listings.ListingID]listingEntry)}
}

// Add registers a listing with its display projection.
func (d *ListingDirectory) Add(ref listings.Ref, city, image string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.items[ref.ID] = listingEntry{
		ref:  ref,
		proj: listings.Projection{ID: ref.ID, City: city, Image: image},
	}
}

func (d *ListingDirectory) Resolve(ctx context.Context, id listings.ListingID) (listings.Ref, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	entry, ok := d.items[id]
	if !ok {
		return listings.Ref{}, listings.ErrNotFound
	}
	return entry.ref, nil
}

func (d *ListingDirectory) Projections(ctx context.Context, ids []listings.ListingID) ([]listings.Projection, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]listings.Projection, 0, len(ids))
	for _, id := range ids {
		if entry, ok := d.items[id]; ok {
			out = append(out, entry.proj)
		}
	}
	return out, nil
}

var _ listings.Directory = (*ListingDirectory)(nil)
