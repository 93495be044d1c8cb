package order_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	orderapp "staybook/internal/app/handlers/order"
	"staybook/internal/domain/availability"
	"staybook/internal/domain/identity"
	"staybook/internal/domain/listings"
	"staybook/internal/domain/shared/day"
	"staybook/internal/infra/storage/memory"
)

const (
	guestID = "guest-1"
	hostID  = "host-1"
)

type fixture struct {
	calendar  *memory.AvailabilityStore
	ledger    *memory.OrderLedger
	directory *memory.ListingDirectory
	events    *memory.OrderEventLog

	create *orderapp.CreateHandler
	update *orderapp.UpdateHandler
	cancel *orderapp.CancelHandler
	get    *orderapp.GetHandler
	byUser *orderapp.ListByUserHandler
	byList *orderapp.ListByListingHandler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		calendar:  memory.NewAvailabilityStore(),
		ledger:    memory.NewOrderLedger(),
		directory: memory.NewListingDirectory(),
		events:    memory.NewOrderEventLog(),
	}
	f.create = &orderapp.CreateHandler{Calendar: f.calendar, Ledger: f.ledger, Listings: f.directory, Events: f.events}
	f.update = &orderapp.UpdateHandler{Calendar: f.calendar, Ledger: f.ledger, Events: f.events}
	f.cancel = &orderapp.CancelHandler{Calendar: f.calendar, Ledger: f.ledger, Events: f.events}
	f.get = &orderapp.GetHandler{Ledger: f.ledger}
	f.byUser = &orderapp.ListByUserHandler{Ledger: f.ledger}
	f.byList = &orderapp.ListByListingHandler{Ledger: f.ledger, Listings: f.directory}
	return f
}

func (f *fixture) addListing(id string) {
	f.directory.Add(listings.Ref{
		ID:   listings.ListingID(id),
		Host: hostID,
		Type: listings.TypeStay,
	}, "Lisbon", "https://img.example/1.jpg")
}

func (f *fixture) openDays(t *testing.T, listingID string, priceCents int64, dates ...string) {
	t.Helper()
	for _, raw := range dates {
		require.NoError(t, f.calendar.SetDay(context.Background(), availability.Record{
			ListingID:  listings.ListingID(listingID),
			Type:       listings.TypeStay,
			Day:        mustDay(t, raw),
			Available:  true,
			PriceCents: priceCents,
		}))
	}
}

func (f *fixture) dayAvailable(t *testing.T, listingID, date string) bool {
	t.Helper()
	rec, err := f.calendar.Day(context.Background(), listings.ListingID(listingID), mustDay(t, date))
	require.NoError(t, err)
	return rec.Available
}

// contestedCalendar lets another booking win a specific day between the check
// phase and the reserve phase, the way a concurrent request would.
type contestedCalendar struct {
	*memory.AvailabilityStore
	steal day.Day
}

func (c *contestedCalendar) Reserve(ctx context.Context, id listings.ListingID, d day.Day) error {
	if d.Equal(c.steal) {
		return availability.ErrDayConflict
	}
	return c.AvailabilityStore.Reserve(ctx, id, d)
}

func guest() identity.Identity {
	return identity.Identity{ID: guestID}
}

func host() identity.Identity {
	return identity.Identity{ID: hostID, Groups: []string{identity.GroupHosts}}
}

func mustDay(t *testing.T, raw string) day.Day {
	t.Helper()
	d, err := day.Parse(raw)
	require.NoError(t, err)
	return d
}
