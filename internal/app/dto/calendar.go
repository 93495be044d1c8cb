package dto

import "staybook/internal/domain/availability"

type CalendarDay struct {
	Date       string `json:"date"`
	Available  bool   `json:"available"`
	PriceCents int64  `json:"price_cents"`
}

type Calendar struct {
	ListingID string        `json:"listing_id"`
	Days      []CalendarDay `json:"days"`
}

func MapCalendar(listingID string, records []availability.Record) Calendar {
	days := make([]CalendarDay, 0, len(records))
	for _, rec := range records {
		days = append(days, CalendarDay{
			Date:       rec.Day.String(),
			Available:  rec.Available,
			PriceCents: rec.PriceCents,
		})
	}
	return Calendar{ListingID: listingID, Days: days}
}
