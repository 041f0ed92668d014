package migrations_test

import (
	"context"
	"testing"

	"github.com/Domenick1991/skyreserva/internal/testutil"
	"github.com/Domenick1991/skyreserva/migrations"
	"github.com/stretchr/testify/require"
)

func TestApply_IsIdempotent(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()

	require.NoError(t, migrations.Apply(ctx, pool, nil))

	var count int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&count))
	require.GreaterOrEqual(t, count, 4)

	require.NoError(t, migrations.Apply(ctx, pool, nil))

	var again int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&again))
	require.Equal(t, count, again)
}

func TestSchema_RejectsNegativeInventory(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)

	fx := testutil.InsertFixture(t, ctx, pool, 2, "100.00")

	_, err := pool.Exec(ctx, `UPDATE flight_categories SET available_seats = -1 WHERE flight_id = $1 AND category_id = $2`, fx.FlightID, fx.CategoryID)
	require.Error(t, err)

	_, err = pool.Exec(ctx, `UPDATE flight_categories SET available_seats = total_seats + 1 WHERE flight_id = $1 AND category_id = $2`, fx.FlightID, fx.CategoryID)
	require.Error(t, err)
}
