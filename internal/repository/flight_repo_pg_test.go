package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Domenick1991/skyreserva/internal/domain"
	"github.com/Domenick1991/skyreserva/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFlightRepository(t *testing.T) {
	repo := NewFlightRepository(nil)
	assert.NotNil(t, repo)
}

func TestFlightRepository_ReserveAndRelease(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)
	fx := testutil.InsertFixture(t, ctx, pool, 3, "150.00")

	repo := NewFlightRepository(pool)

	cat, err := repo.ReserveSeats(ctx, fx.FlightID, fx.CategoryID, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, cat.AvailableSeats)
	assert.Equal(t, 3, cat.TotalSeats)
	assert.True(t, cat.BasePrice.Equal(decimal.NewFromInt(150)))

	_, err = repo.ReserveSeats(ctx, fx.FlightID, fx.CategoryID, 2)
	var insufficient *domain.InsufficientSeatsError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 1, insufficient.Available)
	assert.ErrorIs(t, err, domain.ErrInsufficientSeats)

	_, err = repo.ReserveSeats(ctx, fx.FlightID, fx.CategoryID+1000, 1)
	assert.ErrorIs(t, err, domain.ErrCategoryNotOffered)

	require.NoError(t, repo.ReleaseSeats(ctx, fx.FlightID, fx.CategoryID, 2))
	require.Error(t, repo.ReleaseSeats(ctx, fx.FlightID, fx.CategoryID, 1), "cannot exceed total seats")

	got, err := repo.GetCategory(ctx, fx.FlightID, fx.CategoryID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.AvailableSeats)
}

func TestFlightRepository_NoOversellUnderConcurrency(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)
	fx := testutil.InsertFixture(t, ctx, pool, 5, "80.00")

	repo := NewFlightRepository(pool)
	txm := NewTxManager(pool)

	const workers = 12
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		rejected  int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := txm.WithTx(ctx, func(ctx context.Context) error {
				_, err := repo.ReserveSeats(ctx, fx.FlightID, fx.CategoryID, 1)
				return err
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, domain.ErrInsufficientSeats):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, successes)
	assert.Equal(t, workers-5, rejected)

	got, err := repo.GetCategory(ctx, fx.FlightID, fx.CategoryID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.AvailableSeats)
	assert.Equal(t, 5, got.TotalSeats)
}

func TestFlightRepository_Search(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)
	fx := testutil.InsertFixture(t, ctx, pool, 10, "120.00")
	testutil.InsertFixture(t, ctx, pool, 10, "900.00")

	repo := NewFlightRepository(pool)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	fareMax := decimal.NewFromInt(500)
	cheap, err := repo.Search(ctx, domain.FlightFilter{FareMax: &fareMax})
	require.NoError(t, err)
	require.Len(t, cheap, 1)
	assert.Equal(t, fx.FlightID, cheap[0].ID)
	require.Len(t, cheap[0].Categories, 1)

	byRoute, err := repo.Search(ctx, domain.FlightFilter{OriginCityID: fx.OriginCityID, DestinationCityID: fx.DestinationCityID})
	require.NoError(t, err)
	require.Len(t, byRoute, 1)

	f, err := repo.GetByID(ctx, fx.FlightID)
	require.NoError(t, err)
	assert.Equal(t, domain.FlightStatusScheduled, f.Status)

	_, err = repo.GetByID(ctx, 999999)
	assert.ErrorIs(t, err, domain.ErrFlightNotFound)
}
