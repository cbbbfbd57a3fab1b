package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentaldesk-backend/internal/domain"
)

func newRentFixture(t *testing.T) (*fakeStore, RentService, int32, int32) {
	t.Helper()
	store := newFakeStore()
	clientID := store.addClient(domain.Client{Name: "Maria Lopez", Phone: "555-0101", IsActive: true})
	productID := store.addProduct(domain.Product{
		Name:       "Pressure Washer",
		PriceCents: 4500,
		Stock:      2,
		State:      domain.ProductStateAvailable,
		ProviderID: 1,
		IsActive:   true,
	})
	return store, NewRentService(store, NewInventoryLedger()), clientID, productID
}

func TestRentCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("reserves inventory and snapshots price", func(t *testing.T) {
		store, svc, clientID, productID := newRentFixture(t)

		start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
		rent, err := svc.Create(ctx, CreateRentInput{
			ClientID:        clientID,
			Kind:            domain.RentKindRental,
			TotalPriceCents: 9000,
			DurationValue:   3,
			DurationUnit:    domain.DurationUnitDays,
			StartAt:         &start,
			ProductIDs:      []int32{productID},
		})
		require.NoError(t, err)

		assert.Equal(t, domain.RentStatusAwaitingPickup, rent.Status)
		assert.Equal(t, start.AddDate(0, 0, 3), rent.EndAt)
		require.Len(t, rent.Items, 1)
		assert.Equal(t, int32(4500), rent.Items[0].UnitPriceCents)

		// The aggregate view carries the client object, not the raw id.
		require.NotNil(t, rent.Client)
		assert.Zero(t, rent.ClientID)

		p := store.product(productID)
		assert.Equal(t, int32(1), p.Stock)
		assert.Equal(t, domain.ProductStateRented, p.State)

		// The detail view attaches each item's product.
		detail, err := svc.Get(ctx, rent.ID)
		require.NoError(t, err)
		require.NotNil(t, detail.Items[0].Product)
		assert.Equal(t, "Pressure Washer", detail.Items[0].Product.Name)
	})

	t.Run("loan puts the product in LOANED state", func(t *testing.T) {
		store, svc, clientID, productID := newRentFixture(t)

		_, err := svc.Create(ctx, CreateRentInput{
			ClientID:        clientID,
			Kind:            domain.RentKindLoan,
			TotalPriceCents: 100,
			DurationValue:   4,
			DurationUnit:    domain.DurationUnitHours,
			ProductIDs:      []int32{productID},
		})
		require.NoError(t, err)
		assert.Equal(t, domain.ProductStateLoaned, store.product(productID).State)
	})

	t.Run("last unit flips the product to UNAVAILABLE", func(t *testing.T) {
		store, svc, clientID, _ := newRentFixture(t)
		lastUnit := store.addProduct(domain.Product{
			Name: "Tile Saw", PriceCents: 8000, Stock: 1,
			State: domain.ProductStateAvailable, ProviderID: 1, IsActive: true,
		})

		_, err := svc.Create(ctx, CreateRentInput{
			ClientID: clientID, Kind: domain.RentKindRental, TotalPriceCents: 8000,
			DurationValue: 1, DurationUnit: domain.DurationUnitDays,
			ProductIDs: []int32{lastUnit},
		})
		require.NoError(t, err)

		p := store.product(lastUnit)
		assert.Equal(t, int32(0), p.Stock)
		assert.Equal(t, domain.ProductStateUnavailable, p.State)

		_, err = svc.Create(ctx, CreateRentInput{
			ClientID: clientID, Kind: domain.RentKindRental, TotalPriceCents: 8000,
			DurationValue: 1, DurationUnit: domain.DurationUnitDays,
			ProductIDs: []int32{lastUnit},
		})
		assert.ErrorIs(t, err, domain.ErrOutOfStock)
	})

	t.Run("failed multi-product booking leaves no partial reservation", func(t *testing.T) {
		store, svc, clientID, productID := newRentFixture(t)
		inactive := store.addProduct(domain.Product{
			Name: "Broken Drill", PriceCents: 2000, Stock: 5,
			State: domain.ProductStateAvailable, ProviderID: 1, IsActive: false,
		})

		_, err := svc.Create(ctx, CreateRentInput{
			ClientID: clientID, Kind: domain.RentKindRental, TotalPriceCents: 6500,
			DurationValue: 1, DurationUnit: domain.DurationUnitDays,
			ProductIDs: []int32{productID, inactive},
		})
		require.ErrorIs(t, err, domain.ErrProductInactive)

		// Rollback restored the first product's reservation.
		p := store.product(productID)
		assert.Equal(t, int32(2), p.Stock)
		assert.Equal(t, domain.ProductStateAvailable, p.State)
	})

	t.Run("inactive client is rejected", func(t *testing.T) {
		store, svc, _, productID := newRentFixture(t)
		inactiveClient := store.addClient(domain.Client{Name: "Gone Away", Phone: "555-0999"})

		_, err := svc.Create(ctx, CreateRentInput{
			ClientID: inactiveClient, Kind: domain.RentKindRental, TotalPriceCents: 100,
			DurationValue: 1, DurationUnit: domain.DurationUnitDays,
			ProductIDs: []int32{productID},
		})
		assert.ErrorIs(t, err, domain.ErrClientInactive)
	})

	t.Run("invalid input is rejected before touching the store", func(t *testing.T) {
		_, svc, clientID, productID := newRentFixture(t)

		cases := []CreateRentInput{
			{ClientID: clientID, Kind: domain.RentKindRental, TotalPriceCents: 0, DurationValue: 1, DurationUnit: domain.DurationUnitDays, ProductIDs: []int32{productID}},
			{ClientID: clientID, Kind: domain.RentKindRental, TotalPriceCents: 100, DurationValue: 0, DurationUnit: domain.DurationUnitDays, ProductIDs: []int32{productID}},
			{ClientID: clientID, Kind: domain.RentKindRental, TotalPriceCents: 100, DurationValue: 1, DurationUnit: "WEEKS", ProductIDs: []int32{productID}},
			{ClientID: clientID, Kind: "SUBSCRIPTION", TotalPriceCents: 100, DurationValue: 1, DurationUnit: domain.DurationUnitDays, ProductIDs: []int32{productID}},
			{ClientID: clientID, Kind: domain.RentKindRental, TotalPriceCents: 100, DurationValue: 1, DurationUnit: domain.DurationUnitDays},
		}
		for _, in := range cases {
			_, err := svc.Create(context.Background(), in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		}
	})
}

func TestRentLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("full chain returns inventory at the end", func(t *testing.T) {
		store, svc, clientID, productID := newRentFixture(t)

		rent, err := svc.Create(ctx, CreateRentInput{
			ClientID: clientID, Kind: domain.RentKindRental, TotalPriceCents: 4500,
			DurationValue: 2, DurationUnit: domain.DurationUnitDays,
			ProductIDs: []int32{productID},
		})
		require.NoError(t, err)

		rent, err = svc.Pickup(ctx, rent.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.RentStatusInProgress, rent.Status)
		assert.NotNil(t, rent.PickupAt)

		rent, err = svc.EndTime(ctx, rent.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.RentStatusPendingReturn, rent.Status)

		// Inventory stays out until the product is physically back.
		assert.Equal(t, int32(1), store.product(productID).Stock)

		rent, err = svc.FlagForPickup(ctx, rent.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.RentStatusCollectProduct, rent.Status)

		rent, err = svc.Finalize(ctx, rent.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.RentStatusFinished, rent.Status)
		assert.NotNil(t, rent.ReturnAt)

		p := store.product(productID)
		assert.Equal(t, int32(2), p.Stock)
		assert.Equal(t, domain.ProductStateAvailable, p.State)
	})

	t.Run("repeated transition reports required and actual state", func(t *testing.T) {
		_, svc, clientID, productID := newRentFixture(t)

		rent, err := svc.Create(ctx, CreateRentInput{
			ClientID: clientID, Kind: domain.RentKindRental, TotalPriceCents: 4500,
			DurationValue: 1, DurationUnit: domain.DurationUnitDays,
			ProductIDs: []int32{productID},
		})
		require.NoError(t, err)

		_, err = svc.Pickup(ctx, rent.ID)
		require.NoError(t, err)

		_, err = svc.Pickup(ctx, rent.ID)
		require.ErrorIs(t, err, domain.ErrInvalidTransition)

		var transErr *domain.InvalidTransitionError
		require.ErrorAs(t, err, &transErr)
		assert.Equal(t, domain.RentStatusAwaitingPickup, transErr.Required)
		assert.Equal(t, domain.RentStatusInProgress, transErr.Actual)
	})

	t.Run("skipping a step is rejected", func(t *testing.T) {
		_, svc, clientID, productID := newRentFixture(t)

		rent, err := svc.Create(ctx, CreateRentInput{
			ClientID: clientID, Kind: domain.RentKindRental, TotalPriceCents: 4500,
			DurationValue: 1, DurationUnit: domain.DurationUnitDays,
			ProductIDs: []int32{productID},
		})
		require.NoError(t, err)

		_, err = svc.Finalize(ctx, rent.ID)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)

		_, err = svc.EndTime(ctx, rent.ID)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("unknown rent", func(t *testing.T) {
		_, svc, _, _ := newRentFixture(t)
		_, err := svc.Pickup(ctx, 9999)
		assert.ErrorIs(t, err, domain.ErrRentNotFound)
	})
}

func TestRentUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("patching duration recomputes the end time", func(t *testing.T) {
		_, svc, clientID, productID := newRentFixture(t)

		start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
		rent, err := svc.Create(ctx, CreateRentInput{
			ClientID: clientID, Kind: domain.RentKindRental, TotalPriceCents: 4500,
			DurationValue: 2, DurationUnit: domain.DurationUnitDays, StartAt: &start,
			ProductIDs: []int32{productID},
		})
		require.NoError(t, err)

		newDuration := int32(5)
		updated, err := svc.Update(ctx, rent.ID, UpdateRentInput{DurationValue: &newDuration})
		require.NoError(t, err)
		assert.Equal(t, start.AddDate(0, 0, 5), updated.EndAt)

		// Unit change alone also recomputes against the stored values.
		hours := domain.DurationUnitHours
		updated, err = svc.Update(ctx, rent.ID, UpdateRentInput{DurationUnit: &hours})
		require.NoError(t, err)
		assert.Equal(t, start.Add(5*time.Hour), updated.EndAt)
	})

	t.Run("unrelated patch leaves the end time alone", func(t *testing.T) {
		_, svc, clientID, productID := newRentFixture(t)

		rent, err := svc.Create(ctx, CreateRentInput{
			ClientID: clientID, Kind: domain.RentKindRental, TotalPriceCents: 4500,
			DurationValue: 2, DurationUnit: domain.DurationUnitDays,
			ProductIDs: []int32{productID},
		})
		require.NoError(t, err)

		notes := "client will collect after lunch"
		price := int32(9900)
		updated, err := svc.Update(ctx, rent.ID, UpdateRentInput{Notes: &notes, TotalPriceCents: &price})
		require.NoError(t, err)
		assert.True(t, updated.EndAt.Equal(rent.EndAt))
		assert.Equal(t, notes, updated.Notes)
		assert.Equal(t, price, updated.TotalPriceCents)
	})

	t.Run("reassigning to an inactive client fails", func(t *testing.T) {
		store, svc, clientID, productID := newRentFixture(t)
		inactiveClient := store.addClient(domain.Client{Name: "Gone Away", Phone: "555-0999"})

		rent, err := svc.Create(ctx, CreateRentInput{
			ClientID: clientID, Kind: domain.RentKindRental, TotalPriceCents: 4500,
			DurationValue: 1, DurationUnit: domain.DurationUnitDays,
			ProductIDs: []int32{productID},
		})
		require.NoError(t, err)

		_, err = svc.Update(ctx, rent.ID, UpdateRentInput{ClientID: &inactiveClient})
		assert.ErrorIs(t, err, domain.ErrClientInactive)
	})
}

func TestRentRemove(t *testing.T) {
	ctx := context.Background()

	t.Run("removing an open rent releases its inventory", func(t *testing.T) {
		store, svc, clientID, productID := newRentFixture(t)

		rent, err := svc.Create(ctx, CreateRentInput{
			ClientID: clientID, Kind: domain.RentKindRental, TotalPriceCents: 4500,
			DurationValue: 1, DurationUnit: domain.DurationUnitDays,
			ProductIDs: []int32{productID},
		})
		require.NoError(t, err)
		require.Equal(t, int32(1), store.product(productID).Stock)

		require.NoError(t, svc.Remove(ctx, rent.ID))
		assert.Equal(t, int32(2), store.product(productID).Stock)

		_, err = svc.Get(ctx, rent.ID)
		assert.True(t, errors.Is(err, domain.ErrRentNotFound))
	})

	t.Run("removing a finished rent does not touch stock", func(t *testing.T) {
		store, svc, clientID, productID := newRentFixture(t)

		rent, err := svc.Create(ctx, CreateRentInput{
			ClientID: clientID, Kind: domain.RentKindRental, TotalPriceCents: 4500,
			DurationValue: 1, DurationUnit: domain.DurationUnitDays,
			ProductIDs: []int32{productID},
		})
		require.NoError(t, err)

		for _, step := range []func(context.Context, int32) (*domain.Rent, error){
			svc.Pickup, svc.EndTime, svc.FlagForPickup, svc.Finalize,
		} {
			_, err = step(ctx, rent.ID)
			require.NoError(t, err)
		}
		require.Equal(t, int32(2), store.product(productID).Stock)

		require.NoError(t, svc.Remove(ctx, rent.ID))
		assert.Equal(t, int32(2), store.product(productID).Stock)
	})
}
