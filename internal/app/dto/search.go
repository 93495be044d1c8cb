package dto

import "staybook/internal/domain/listings"

type SearchItem struct {
	ListingID string `json:"listing_id"`
	City      string `json:"city"`
	Image     string `json:"image"`
	// AveragePriceCents is the arithmetic mean over the matching day records
	// only, so it is not necessarily a whole cent amount.
	AveragePriceCents float64 `json:"average_price_cents"`
}

type SearchResult struct {
	Items []SearchItem `json:"items"`
}

func MapSearchItem(p listings.Projection, averageCents float64) SearchItem {
	return SearchItem{
		ListingID:         string(p.ID),
		City:              p.City,
		Image:             p.Image,
		AveragePriceCents: averageCents,
	}
}
