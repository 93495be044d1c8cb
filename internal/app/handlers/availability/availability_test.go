package availability_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	availabilityapp "staybook/internal/app/handlers/availability"
	domainavailability "staybook/internal/domain/availability"
	"staybook/internal/domain/identity"
	"staybook/internal/domain/listings"
	"staybook/internal/domain/shared/day"
	"staybook/internal/domain/shared/fault"
	"staybook/internal/infra/storage/memory"
)

const ownerID = "host-1"

func newHandlers(t *testing.T) (*availabilityapp.SetDayHandler, *availabilityapp.GetCalendarHandler, *memory.AvailabilityStore) {
	t.Helper()
	calendar := memory.NewAvailabilityStore()
	directory := memory.NewListingDirectory()
	directory.Add(listings.Ref{ID: "l1", Host: ownerID, Type: listings.TypeStay}, "Lisbon", "")
	set := &availabilityapp.SetDayHandler{Calendar: calendar, Listings: directory}
	get := &availabilityapp.GetCalendarHandler{Calendar: calendar}
	return set, get, calendar
}

func owner() identity.Identity {
	return identity.Identity{ID: ownerID, Groups: []string{identity.GroupHosts}}
}

func TestSetDayUpserts(t *testing.T) {
	set, _, calendar := newHandlers(t)
	ctx := context.Background()

	err := set.Handle(ctx, availabilityapp.SetDayParams{
		ListingID:  "l1",
		Day:        mustDay(t, "2026-07-01"),
		Available:  true,
		PriceCents: 12000,
		Caller:     owner(),
	})
	require.NoError(t, err)

	rec, err := calendar.Day(ctx, "l1", mustDay(t, "2026-07-01"))
	require.NoError(t, err)
	assert.True(t, rec.Available)
	assert.Equal(t, int64(12000), rec.PriceCents)
	assert.Equal(t, listings.TypeStay, rec.Type)

	// second write replaces the record wholesale
	err = set.Handle(ctx, availabilityapp.SetDayParams{
		ListingID:  "l1",
		Day:        mustDay(t, "2026-07-01"),
		Available:  false,
		PriceCents: 9000,
		Caller:     owner(),
	})
	require.NoError(t, err)

	rec, err = calendar.Day(ctx, "l1", mustDay(t, "2026-07-01"))
	require.NoError(t, err)
	assert.False(t, rec.Available)
	assert.Equal(t, int64(9000), rec.PriceCents)
}

func TestSetDayAuthorization(t *testing.T) {
	set, _, _ := newHandlers(t)
	ctx := context.Background()
	params := availabilityapp.SetDayParams{
		ListingID:  "l1",
		Day:        mustDay(t, "2026-07-01"),
		Available:  true,
		PriceCents: 12000,
	}

	// not in the hosts group
	params.Caller = identity.Identity{ID: ownerID}
	assert.True(t, fault.IsKind(set.Handle(ctx, params), fault.KindForbidden))

	// a host, but not this listing's host
	params.Caller = identity.Identity{ID: "other-host", Groups: []string{identity.GroupHosts}}
	assert.True(t, fault.IsKind(set.Handle(ctx, params), fault.KindForbidden))
}

func TestSetDayValidation(t *testing.T) {
	set, _, _ := newHandlers(t)
	ctx := context.Background()

	err := set.Handle(ctx, availabilityapp.SetDayParams{
		ListingID:  "l1",
		Day:        mustDay(t, "2026-07-01"),
		PriceCents: -1,
		Caller:     owner(),
	})
	assert.True(t, fault.IsKind(err, fault.KindInvalidInput))
	assert.ErrorIs(t, err, domainavailability.ErrInvalidPrice)

	err = set.Handle(ctx, availabilityapp.SetDayParams{
		ListingID:  "unknown",
		Day:        mustDay(t, "2026-07-01"),
		PriceCents: 100,
		Caller:     owner(),
	})
	assert.True(t, fault.IsKind(err, fault.KindNotFound))
}

func TestGetCalendarWindow(t *testing.T) {
	set, get, _ := newHandlers(t)
	ctx := context.Background()
	for _, raw := range []string{"2026-07-01", "2026-07-02", "2026-07-05"} {
		require.NoError(t, set.Handle(ctx, availabilityapp.SetDayParams{
			ListingID:  "l1",
			Day:        mustDay(t, raw),
			Available:  true,
			PriceCents: 10000,
			Caller:     owner(),
		}))
	}

	cal, err := get.Handle(ctx, availabilityapp.GetCalendarParams{
		ListingID: "l1",
		From:      mustDay(t, "2026-07-01"),
		To:        mustDay(t, "2026-07-03"),
	})
	require.NoError(t, err)
	assert.Equal(t, "l1", cal.ListingID)
	require.Len(t, cal.Days, 2)
	assert.Equal(t, "2026-07-01", cal.Days[0].Date)
	assert.Equal(t, "2026-07-02", cal.Days[1].Date)

	_, err = get.Handle(ctx, availabilityapp.GetCalendarParams{
		ListingID: "l1",
		From:      mustDay(t, "2026-07-03"),
		To:        mustDay(t, "2026-07-01"),
	})
	assert.True(t, fault.IsKind(err, fault.KindInvalidInput))
}

func mustDay(t *testing.T, raw string) day.Day {
	t.Helper()
	d, err := day.Parse(raw)
	require.NoError(t, err)
	return d
}
