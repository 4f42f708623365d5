/*
Package indexation supplies index data to the rent engine.

PURPOSE:
  Commercial leases are indexed on a published series (ILC, ILAT, ICC,
  IRL). The engine needs two things from such a series: the level in
  effect at the lease start (the base) and the levels published after it.
  Provider derives both from an IndexStore.

WHAT IT DOES NOT DO:
  It does not pick the reference quarter of a lease or fetch series from a
  statistics office. Callers load the series into a store first.

USAGE:
  provider := indexation.NewProvider(store)
  base, known, err := provider.ForLease(ctx, indexation.ILC, startDate)
  input.BaseIndexValue = base
  input.KnownIndexPoints = known

SEE ALSO:
  - rent/index.go: How the engine resolves and extrapolates levels
  - generic/store.go: IndexStore interface
*/
package indexation

import (
	"context"
	"fmt"
	"strings"

	"github.com/warp/lease-engine/generic"
)

// IndexType identifies a published index series.
type IndexType string

const (
	ILC  IndexType = "ILC"  // Indice des loyers commerciaux
	ILAT IndexType = "ILAT" // Indice des loyers des activités tertiaires
	ICC  IndexType = "ICC"  // Indice du coût de la construction
	IRL  IndexType = "IRL"  // Indice de référence des loyers
)

var knownTypes = map[IndexType]bool{ILC: true, ILAT: true, ICC: true, IRL: true}

// ParseIndexType normalizes case and rejects unknown series.
func ParseIndexType(s string) (IndexType, error) {
	t := IndexType(strings.ToUpper(strings.TrimSpace(s)))
	if !knownTypes[t] {
		return "", fmt.Errorf("unknown index type %q", s)
	}
	return t, nil
}

// Provider reads series from an IndexStore.
type Provider struct {
	Store generic.IndexStore
}

func NewProvider(store generic.IndexStore) *Provider {
	return &Provider{Store: store}
}

// ForLease returns the base level at start and the points published after it.
// The base is the latest point dated on or before start.
func (p *Provider) ForLease(ctx context.Context, t IndexType, start generic.TimePoint) (float64, []generic.IndexPoint, error) {
	points, err := p.Store.IndexPoints(ctx, string(t))
	if err != nil {
		return 0, nil, fmt.Errorf("load %s series: %w", t, err)
	}

	var (
		base    float64
		hasBase bool
		known   []generic.IndexPoint
	)
	for _, pt := range points {
		if pt.Value <= 0 {
			continue
		}
		if pt.Date.After(start) {
			known = append(known, pt)
			continue
		}
		base, hasBase = pt.Value, true
	}

	if !hasBase {
		return 0, nil, fmt.Errorf("%s at %s: %w", t, start, generic.ErrNoBaseIndex)
	}
	return base, known, nil
}
