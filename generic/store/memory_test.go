package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/lease-engine/generic"
	"github.com/warp/lease-engine/generic/store"
)

func TestMemory_IndexPointsSortedAndUpserted(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	require.NoError(t, m.SaveIndexPoints(ctx, "ILC", []generic.IndexPoint{
		{Date: generic.NewTimePoint(2024, time.July, 1), Value: 134.58},
		{Date: generic.NewTimePoint(2024, time.January, 1), Value: 133.62},
	}))
	require.NoError(t, m.SaveIndexPoints(ctx, "ILC", []generic.IndexPoint{
		{Date: generic.NewTimePoint(2024, time.July, 1), Value: 135.00},
	}))

	pts, err := m.IndexPoints(ctx, "ILC")
	require.NoError(t, err)
	require.Len(t, pts, 2)
	assert.Equal(t, 133.62, pts[0].Value)
	assert.Equal(t, 135.00, pts[1].Value, "same date replaces the value")
}

func TestMemory_UnknownSeries(t *testing.T) {
	_, err := store.NewMemory().IndexPoints(context.Background(), "ILAT")
	assert.ErrorIs(t, err, generic.ErrIndexSeriesNotFound)
}

func TestMemory_LeaseLifecycle(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	require.NoError(t, m.SaveLease(ctx, generic.LeaseRecord{ID: "l-1", Name: "Lyon HQ", ConfigJSON: "{}"}))
	require.NoError(t, m.SaveLease(ctx, generic.LeaseRecord{ID: "l-2", Name: "Annecy depot", ConfigJSON: "{}"}))

	leases, err := m.ListLeases(ctx)
	require.NoError(t, err)
	require.Len(t, leases, 2)
	assert.Equal(t, "Annecy depot", leases[0].Name)

	got, err := m.GetLease(ctx, "l-1")
	require.NoError(t, err)
	assert.False(t, got.CreatedAt.IsZero())

	require.NoError(t, m.DeleteLease(ctx, "l-1"))
	_, err = m.GetLease(ctx, "l-1")
	assert.ErrorIs(t, err, generic.ErrLeaseNotFound)
	assert.ErrorIs(t, m.DeleteLease(ctx, "l-1"), generic.ErrLeaseNotFound)
}
