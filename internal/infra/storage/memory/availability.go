package memory

import (
	"context"
	"sort"
	"sync"

	"staybook/internal/domain/availability"
	"staybook/internal/domain/listings"
	"staybook/internal/domain/shared/day"
)

type dayKey struct {
	listing listings.ListingID
	date    day.Day
}

// AvailabilityStore keeps the calendar in memory with the same conditional
// reserve semantics as the durable store: the availability flag transfers
// under one lock, so concurrent reserves of a day cannot both win.
type AvailabilityStore struct {
	mu    sync.RWMutex
	items map[dayKey]availability.Record
}

func NewAvailabilityStore() *AvailabilityStore {
	return &AvailabilityStore{items: make(map[dayKey]availability.Record)}
}

func (s *AvailabilityStore) Day(ctx context.Context, id listings.ListingID, d day.Day) (availability.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.items[dayKey{listing: id, date: d}]
	if !ok {
		return availability.Record{}, availability.ErrDayNotFound
	}
	return rec, nil
}

func (s *AvailabilityStore) SetDay(ctx context.Context, rec availability.Record) error {
	if rec.PriceCents < 0 {
		return availability.ErrInvalidPrice
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[dayKey{listing: rec.ListingID, date: rec.Day}] = rec
	return nil
}

func (s *AvailabilityStore) Reserve(ctx context.Context, id listings.ListingID, d day.Day) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := dayKey{listing: id, date: d}
	rec, ok := s.items[key]
	if !ok || !rec.Available {
		return availability.ErrDayConflict
	}
	rec.Available = false
	s.items[key] = rec
	return nil
}

func (s *AvailabilityStore) Release(ctx context.Context, id listings.ListingID, d day.Day) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := dayKey{listing: id, date: d}
	rec, ok := s.items[key]
	if !ok {
		return nil
	}
	rec.Available = true
	s.items[key] = rec
	return nil
}

func (s *AvailabilityStore) ListingDays(ctx context.Context, id listings.ListingID, from, to day.Day) ([]availability.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []availability.Record
	for key, rec := range s.items {
		if key.listing != id || key.date.Before(from) || key.date.After(to) {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out, nil
}

func (s *AvailabilityStore) Search(ctx context.Context, params availability.SearchParams) ([]availability.Record, error) {
	maxPrice := params.EffectiveMax()
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []availability.Record
	for key, rec := range s.items {
		if key.date.Before(params.From) || key.date.After(params.To) {
			continue
		}
		if !rec.Available || rec.Type != params.Type {
			continue
		}
		if rec.PriceCents < params.MinPriceCents || rec.PriceCents > maxPrice {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Day.Equal(out[j].Day) {
			return out[i].Day.Before(out[j].Day)
		}
		return out[i].PriceCents < out[j].PriceCents
	})
	return out, nil
}

var _ availability.Store = (*AvailabilityStore)(nil)
