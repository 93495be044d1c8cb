package search

import (
	"context"
	"log/slog"
	"sort"

	"staybook/internal/app/dto"
	"staybook/internal/domain/availability"
	"staybook/internal/domain/listings"
	"staybook/internal/domain/shared/day"
	"staybook/internal/domain/shared/fault"
)

type Params struct {
	Type          string
	Start         day.Day
	End           day.Day
	MinPriceCents int64
	MaxPriceCents int64
}

// Handler surfaces listings with at least one available, price-matching day
// in the window. Partial availability qualifies; the average is taken over
// the matching day records only.
type Handler struct {
	Calendar availability.Store
	Listings listings.Directory
	Logger   *slog.Logger
}

func (h *Handler) Handle(ctx context.Context, p Params) (dto.SearchResult, error) {
	typ, err := listings.ParseType(p.Type)
	if err != nil {
		return dto.SearchResult{}, fault.Wrap(fault.KindInvalidInput, "invalid listing type", err)
	}
	window, err := day.NewRange(p.Start, p.End)
	if err != nil {
		return dto.SearchResult{}, fault.Wrap(fault.KindInvalidInput, "invalid date range", err)
	}
	if p.MinPriceCents < 0 || p.MaxPriceCents < 0 {
		return dto.SearchResult{}, fault.New(fault.KindInvalidInput, "price bounds must be non-negative")
	}
	if p.MaxPriceCents > 0 && p.MaxPriceCents < p.MinPriceCents {
		return dto.SearchResult{}, fault.New(fault.KindInvalidInput, "max price is below min price")
	}

	records, err := h.Calendar.Search(ctx, availability.SearchParams{
		Type:          typ,
		From:          window.Start,
		To:            window.End,
		MinPriceCents: p.MinPriceCents,
		MaxPriceCents: p.MaxPriceCents,
	})
	if err != nil {
		return dto.SearchResult{}, fault.Wrap(fault.KindStorage, "search availability", err)
	}
	if len(records) == 0 {
		return dto.SearchResult{Items: []dto.SearchItem{}}, nil
	}

	type bucket struct {
		totalCents int64
		count      int
	}
	groups := make(map[listings.ListingID]*bucket)
	for _, rec := range records {
		b, ok := groups[rec.ListingID]
		if !ok {
			b = &bucket{}
			groups[rec.ListingID] = b
		}
		b.totalCents += rec.PriceCents
		b.count++
	}

	ids := make([]listings.ListingID, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	projections, err := h.Listings.Projections(ctx, ids)
	if err != nil {
		return dto.SearchResult{}, fault.Wrap(fault.KindStorage, "load listing projections", err)
	}

	items := make([]dto.SearchItem, 0, len(projections))
	for _, proj := range projections {
		b, ok := groups[proj.ID]
		if !ok {
			continue
		}
		avg := float64(b.totalCents) / float64(b.count)
		items = append(items, dto.MapSearchItem(proj, avg))
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ListingID < items[j].ListingID })

	if h.Logger != nil {
		h.Logger.Debug("search completed", "type", typ, "from", window.Start.String(), "to", window.End.String(), "matches", len(items))
	}
	return dto.SearchResult{Items: items}, nil
}
