package availability

import (
	"context"
	"strings"

	"staybook/internal/app/dto"
	domainavailability "staybook/internal/domain/availability"
	"staybook/internal/domain/listings"
	"staybook/internal/domain/shared/day"
	"staybook/internal/domain/shared/fault"
)

type GetCalendarParams struct {
	ListingID string
	From      day.Day
	To        day.Day
}

// GetCalendarHandler reads one listing's calendar over an inclusive window.
type GetCalendarHandler struct {
	Calendar domainavailability.Store
}

func (h *GetCalendarHandler) Handle(ctx context.Context, p GetCalendarParams) (dto.Calendar, error) {
	listingID := strings.TrimSpace(p.ListingID)
	if listingID == "" {
		return dto.Calendar{}, fault.New(fault.KindInvalidInput, "listing id is required")
	}
	window, err := day.NewRange(p.From, p.To)
	if err != nil {
		return dto.Calendar{}, fault.Wrap(fault.KindInvalidInput, "invalid date range", err)
	}
	records, err := h.Calendar.ListingDays(ctx, listings.ListingID(listingID), window.Start, window.End)
	if err != nil {
		return dto.Calendar{}, fault.Wrap(fault.KindStorage, "read calendar", err)
	}
	return dto.MapCalendar(listingID, records), nil
}
