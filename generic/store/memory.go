// Package store provides Store implementations.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/warp/lease-engine/generic"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for CLI/testing)
// =============================================================================

// Memory implements generic.IndexStore and generic.LeaseStore.
type Memory struct {
	mu     sync.RWMutex
	series map[string][]generic.IndexPoint
	leases map[generic.LeaseID]generic.LeaseRecord
}

func NewMemory() *Memory {
	return &Memory{
		series: make(map[string][]generic.IndexPoint),
		leases: make(map[generic.LeaseID]generic.LeaseRecord),
	}
}

// SaveIndexPoints upserts points keeping each series sorted by date.
func (m *Memory) SaveIndexPoints(_ context.Context, series string, points []generic.IndexPoint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range points {
		m.upsertLocked(series, p)
	}
	return nil
}

func (m *Memory) upsertLocked(series string, p generic.IndexPoint) {
	pts := m.series[series]

	i := sort.Search(len(pts), func(i int) bool {
		return !pts[i].Date.Before(p.Date)
	})
	if i < len(pts) && pts[i].Date.Equal(p.Date) {
		pts[i] = p
		return
	}

	pts = append(pts, generic.IndexPoint{})
	copy(pts[i+1:], pts[i:])
	pts[i] = p
	m.series[series] = pts
}

func (m *Memory) IndexPoints(_ context.Context, series string) ([]generic.IndexPoint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	pts := m.series[series]
	if len(pts) == 0 {
		return nil, generic.ErrIndexSeriesNotFound
	}
	result := make([]generic.IndexPoint, len(pts))
	copy(result, pts)
	return result, nil
}

func (m *Memory) SaveLease(_ context.Context, lease generic.LeaseRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	if existing, ok := m.leases[lease.ID]; ok {
		lease.CreatedAt = existing.CreatedAt
	} else {
		lease.CreatedAt = now
	}
	lease.UpdatedAt = now
	m.leases[lease.ID] = lease
	return nil
}

func (m *Memory) GetLease(_ context.Context, id generic.LeaseID) (*generic.LeaseRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	lease, ok := m.leases[id]
	if !ok {
		return nil, generic.ErrLeaseNotFound
	}
	return &lease, nil
}

func (m *Memory) ListLeases(_ context.Context) ([]generic.LeaseRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]generic.LeaseRecord, 0, len(m.leases))
	for _, l := range m.leases {
		result = append(result, l)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *Memory) DeleteLease(_ context.Context, id generic.LeaseID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.leases[id]; !ok {
		return generic.ErrLeaseNotFound
	}
	delete(m.leases, id)
	return nil
}
