package seed

import (
	"context"
	"testing"

	"github.com/Domenick1991/skyreserva/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoad_Idempotent(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)

	require.NoError(t, Load(ctx, pool, zap.NewNop()))
	require.NoError(t, Load(ctx, pool, zap.NewNop()))

	var flights, inventory, users int
	require.NoError(t, pool.QueryRow(ctx, `SELECT
		(SELECT count(*) FROM flights),
		(SELECT count(*) FROM flight_categories),
		(SELECT count(*) FROM users)`).Scan(&flights, &inventory, &users))
	assert.Equal(t, 5, flights)
	assert.Equal(t, 15, inventory)
	assert.Equal(t, 2, users)

	var broken int
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM flight_categories WHERE available_seats <> total_seats`).Scan(&broken))
	assert.Zero(t, broken)
}
