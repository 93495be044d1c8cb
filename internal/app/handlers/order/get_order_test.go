package order_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderapp "staybook/internal/app/handlers/order"
	"staybook/internal/domain/identity"
	"staybook/internal/domain/shared/fault"
)

func TestGetOrderVisibleToBothParties(t *testing.T) {
	f := newFixture(t)
	f.addListing("l1")
	f.openDays(t, "l1", 10000, "2026-07-01")
	ord := f.createOrder(t, "l1", "2026-07-01", "2026-07-01")

	for _, caller := range []identity.Identity{guest(), host()} {
		got, err := f.get.Handle(context.Background(), orderapp.GetParams{
			OrderID: string(ord.ID),
			Caller:  caller,
		})
		require.NoError(t, err)
		assert.Equal(t, ord.ID, got.ID)
	}

	_, err := f.get.Handle(context.Background(), orderapp.GetParams{
		OrderID: string(ord.ID),
		Caller:  identity.Identity{ID: "stranger"},
	})
	assert.True(t, fault.IsKind(err, fault.KindForbidden))
}

func TestListOrdersByUser(t *testing.T) {
	f := newFixture(t)
	f.addListing("l1")
	f.openDays(t, "l1", 10000, "2026-07-01", "2026-07-02")
	f.createOrder(t, "l1", "2026-07-01", "2026-07-01")
	f.createOrder(t, "l1", "2026-07-02", "2026-07-02")

	orders, err := f.byUser.Handle(context.Background(), orderapp.ListByUserParams{
		UserID: guestID,
		Caller: guest(),
	})
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	_, err = f.byUser.Handle(context.Background(), orderapp.ListByUserParams{
		UserID: guestID,
		Caller: identity.Identity{ID: "stranger"},
	})
	assert.True(t, fault.IsKind(err, fault.KindForbidden))
}

func TestListOrdersByListingHostOnly(t *testing.T) {
	f := newFixture(t)
	f.addListing("l1")
	f.openDays(t, "l1", 10000, "2026-07-01")
	f.createOrder(t, "l1", "2026-07-01", "2026-07-01")

	orders, err := f.byList.Handle(context.Background(), orderapp.ListByListingParams{
		ListingID: "l1",
		Caller:    host(),
	})
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	_, err = f.byList.Handle(context.Background(), orderapp.ListByListingParams{
		ListingID: "l1",
		Caller:    guest(),
	})
	assert.True(t, fault.IsKind(err, fault.KindForbidden))

	_, err = f.byList.Handle(context.Background(), orderapp.ListByListingParams{
		ListingID: "missing",
		Caller:    host(),
	})
	assert.True(t, fault.IsKind(err, fault.KindNotFound))
}
