package order_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderapp "staybook/internal/app/handlers/order"
	"staybook/internal/domain/shared/fault"
)

func TestCreateOrder(t *testing.T) {
	f := newFixture(t)
	f.addListing("l1")
	f.openDays(t, "l1", 10000, "2026-07-01", "2026-07-02", "2026-07-03")

	ord, err := f.create.Handle(context.Background(), orderapp.CreateParams{
		ListingID: "l1",
		UserID:    guestID,
		Start:     mustDay(t, "2026-07-01"),
		End:       mustDay(t, "2026-07-03"),
		Caller:    guest(),
	})
	require.NoError(t, err)
	require.NotNil(t, ord)

	assert.NotEmpty(t, ord.ID)
	assert.Equal(t, guestID, ord.UserID)
	assert.EqualValues(t, hostID, ord.HostID)
	assert.Equal(t, int64(30000), ord.TotalCents)
	assert.False(t, ord.CreatedAt.IsZero())

	for _, d := range []string{"2026-07-01", "2026-07-02", "2026-07-03"} {
		assert.False(t, f.dayAvailable(t, "l1", d), "day %s should be reserved", d)
	}

	stored, err := f.ledger.ByID(context.Background(), ord.ID)
	require.NoError(t, err)
	assert.Equal(t, ord.TotalCents, stored.TotalCents)

	entries := f.events.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "created", entries[0].Kind)
	assert.Equal(t, ord.ID, entries[0].OrderID)
}

func TestCreateOrderSingleDay(t *testing.T) {
	f := newFixture(t)
	f.addListing("l1")
	f.openDays(t, "l1", 7500, "2026-07-01")

	ord, err := f.create.Handle(context.Background(), orderapp.CreateParams{
		ListingID: "l1",
		UserID:    guestID,
		Start:     mustDay(t, "2026-07-01"),
		End:       mustDay(t, "2026-07-01"),
		Caller:    guest(),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7500), ord.TotalCents)
}

func TestCreateOrderRejectsUnavailableRange(t *testing.T) {
	f := newFixture(t)
	f.addListing("l1")
	// middle day missing entirely
	f.openDays(t, "l1", 10000, "2026-07-01", "2026-07-03")

	_, err := f.create.Handle(context.Background(), orderapp.CreateParams{
		ListingID: "l1",
		UserID:    guestID,
		Start:     mustDay(t, "2026-07-01"),
		End:       mustDay(t, "2026-07-03"),
		Caller:    guest(),
	})
	require.Error(t, err)
	assert.True(t, fault.IsKind(err, fault.KindUnavailable))

	// nothing was written
	assert.True(t, f.dayAvailable(t, "l1", "2026-07-01"))
	orders, listErr := f.ledger.ListByUser(context.Background(), guestID)
	require.NoError(t, listErr)
	assert.Empty(t, orders)
	assert.Empty(t, f.events.Entries())
}

func TestCreateOrderRejectsReservedDay(t *testing.T) {
	f := newFixture(t)
	f.addListing("l1")
	f.openDays(t, "l1", 10000, "2026-07-01", "2026-07-02")
	require.NoError(t, f.calendar.Reserve(context.Background(), "l1", mustDay(t, "2026-07-02")))

	_, err := f.create.Handle(context.Background(), orderapp.CreateParams{
		ListingID: "l1",
		UserID:    guestID,
		Start:     mustDay(t, "2026-07-01"),
		End:       mustDay(t, "2026-07-02"),
		Caller:    guest(),
	})
	assert.True(t, fault.IsKind(err, fault.KindUnavailable))
}

func TestCreateOrderForbiddenForOtherUser(t *testing.T) {
	f := newFixture(t)
	f.addListing("l1")
	f.openDays(t, "l1", 10000, "2026-07-01")

	_, err := f.create.Handle(context.Background(), orderapp.CreateParams{
		ListingID: "l1",
		UserID:    "someone-else",
		Start:     mustDay(t, "2026-07-01"),
		End:       mustDay(t, "2026-07-01"),
		Caller:    guest(),
	})
	assert.True(t, fault.IsKind(err, fault.KindForbidden))
}

func TestCreateOrderUnknownListing(t *testing.T) {
	f := newFixture(t)

	_, err := f.create.Handle(context.Background(), orderapp.CreateParams{
		ListingID: "missing",
		UserID:    guestID,
		Start:     mustDay(t, "2026-07-01"),
		End:       mustDay(t, "2026-07-01"),
		Caller:    guest(),
	})
	assert.True(t, fault.IsKind(err, fault.KindNotFound))
}

func TestCreateOrderInvalidRange(t *testing.T) {
	f := newFixture(t)
	f.addListing("l1")

	_, err := f.create.Handle(context.Background(), orderapp.CreateParams{
		ListingID: "l1",
		UserID:    guestID,
		Start:     mustDay(t, "2026-07-03"),
		End:       mustDay(t, "2026-07-01"),
		Caller:    guest(),
	})
	assert.True(t, fault.IsKind(err, fault.KindInvalidInput))
}

// A conflict in the middle of the reserve loop must roll back the days this
// call already flipped and remove the persisted order.
func TestCreateOrderRollsBackPartialReserve(t *testing.T) {
	f := newFixture(t)
	f.addListing("l1")
	f.openDays(t, "l1", 10000, "2026-07-01", "2026-07-02", "2026-07-03")

	calendar := &contestedCalendar{AvailabilityStore: f.calendar, steal: mustDay(t, "2026-07-02")}
	create := &orderapp.CreateHandler{Calendar: calendar, Ledger: f.ledger, Listings: f.directory, Events: f.events}

	_, err := create.Handle(context.Background(), orderapp.CreateParams{
		ListingID: "l1",
		UserID:    guestID,
		Start:     mustDay(t, "2026-07-01"),
		End:       mustDay(t, "2026-07-03"),
		Caller:    guest(),
	})
	require.Error(t, err)
	assert.True(t, fault.IsKind(err, fault.KindUnavailable))

	// the first day was reserved before the conflict and must be open again
	assert.True(t, f.dayAvailable(t, "l1", "2026-07-01"))
	assert.True(t, f.dayAvailable(t, "l1", "2026-07-02"))
	assert.True(t, f.dayAvailable(t, "l1", "2026-07-03"))

	orders, listErr := f.ledger.ListByUser(context.Background(), guestID)
	require.NoError(t, listErr)
	assert.Empty(t, orders)
	assert.Empty(t, f.events.Entries())
}

// Two guests race for the same range. Exactly one order must survive and the
// loser must leave no trace: no ledger entry and no half-reserved days.
func TestCreateOrderConcurrentRange(t *testing.T) {
	f := newFixture(t)
	f.addListing("l1")
	f.openDays(t, "l1", 10000, "2026-07-01", "2026-07-02", "2026-07-03")

	const racers = 8
	var wg sync.WaitGroup
	errs := make([]error, racers)
	for i := range racers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			userID := guestID
			_, errs[i] = f.create.Handle(context.Background(), orderapp.CreateParams{
				ListingID: "l1",
				UserID:    userID,
				Start:     mustDay(t, "2026-07-01"),
				End:       mustDay(t, "2026-07-03"),
				Caller:    guest(),
			})
		}(i)
	}
	wg.Wait()

	var wins int
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			assert.True(t, fault.IsKind(err, fault.KindUnavailable) || fault.IsKind(err, fault.KindStorage))
		}
	}
	assert.Equal(t, 1, wins)

	orders, err := f.ledger.ListByUser(context.Background(), guestID)
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	for _, d := range []string{"2026-07-01", "2026-07-02", "2026-07-03"} {
		assert.False(t, f.dayAvailable(t, "l1", d))
	}
}
