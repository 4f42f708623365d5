package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/lease-engine/generic"
	"github.com/warp/lease-engine/indexation"
	"github.com/warp/lease-engine/store/sqlite"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_IndexPointsUpsert(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	require.NoError(t, s.SaveIndexPoints(ctx, "ILC", []generic.IndexPoint{
		{Date: generic.NewTimePoint(2024, time.October, 1), Value: 136.0},
		{Date: generic.NewTimePoint(2024, time.January, 1), Value: 134.58},
	}))
	// Definitive level replaces the provisional one.
	require.NoError(t, s.SaveIndexPoints(ctx, "ILC", []generic.IndexPoint{
		{Date: generic.NewTimePoint(2024, time.October, 1), Value: 136.45},
	}))

	pts, err := s.IndexPoints(ctx, "ILC")
	require.NoError(t, err)
	require.Len(t, pts, 2)
	assert.True(t, pts[0].Date.Equal(generic.NewTimePoint(2024, time.January, 1)))
	assert.Equal(t, 136.45, pts[1].Value)

	series, err := s.ListSeries(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ILC"}, series)
}

func TestStore_UnknownSeries(t *testing.T) {
	_, err := newStore(t).IndexPoints(context.Background(), "IRL")
	assert.ErrorIs(t, err, generic.ErrIndexSeriesNotFound)
}

func TestStore_FeedsProvider(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	require.NoError(t, s.SaveIndexPoints(ctx, "ILAT", []generic.IndexPoint{
		{Date: generic.NewTimePoint(2024, time.January, 1), Value: 133.0},
		{Date: generic.NewTimePoint(2025, time.January, 1), Value: 136.0},
	}))

	base, known, err := indexation.NewProvider(s).ForLease(ctx, indexation.ILAT, generic.NewTimePoint(2024, time.June, 1))
	require.NoError(t, err)
	assert.Equal(t, 133.0, base)
	assert.Len(t, known, 1)
}

func TestStore_LeaseLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	require.NoError(t, s.SaveLease(ctx, generic.LeaseRecord{ID: "l-1", Name: "Lyon HQ", IndexType: "ILC", ConfigJSON: `{"name":"Lyon HQ"}`}))
	require.NoError(t, s.SaveLease(ctx, generic.LeaseRecord{ID: "l-2", Name: "Annecy depot", ConfigJSON: `{}`}))

	got, err := s.GetLease(ctx, "l-1")
	require.NoError(t, err)
	assert.Equal(t, "ILC", got.IndexType)
	assert.Equal(t, `{"name":"Lyon HQ"}`, got.ConfigJSON)
	assert.False(t, got.CreatedAt.IsZero())

	// Save again replaces the document.
	require.NoError(t, s.SaveLease(ctx, generic.LeaseRecord{ID: "l-1", Name: "Lyon HQ v2", ConfigJSON: `{}`}))
	got, err = s.GetLease(ctx, "l-1")
	require.NoError(t, err)
	assert.Equal(t, "Lyon HQ v2", got.Name)

	leases, err := s.ListLeases(ctx)
	require.NoError(t, err)
	require.Len(t, leases, 2)
	assert.Equal(t, "Annecy depot", leases[0].Name)

	require.NoError(t, s.DeleteLease(ctx, "l-1"))
	_, err = s.GetLease(ctx, "l-1")
	assert.ErrorIs(t, err, generic.ErrLeaseNotFound)
	assert.ErrorIs(t, s.DeleteLease(ctx, "l-1"), generic.ErrLeaseNotFound)
}

func TestStore_Reset(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	require.NoError(t, s.SaveLease(ctx, generic.LeaseRecord{ID: "l-1", Name: "x", ConfigJSON: "{}"}))
	require.NoError(t, s.SaveIndexPoints(ctx, "ILC", []generic.IndexPoint{{Date: generic.NewTimePoint(2024, time.January, 1), Value: 1}}))

	require.NoError(t, s.Reset(ctx))

	leases, err := s.ListLeases(ctx)
	require.NoError(t, err)
	assert.Empty(t, leases)
	_, err = s.IndexPoints(ctx, "ILC")
	assert.ErrorIs(t, err, generic.ErrIndexSeriesNotFound)
}
