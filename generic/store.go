/*
store.go - Persistence interfaces for caller-side data

PURPOSE:
  Defines the interface between the outer surfaces (API, CLI) and storage.
  The schedule engine itself is pure and never sees a store: stores only
  hold what callers feed into it, namely published index series and saved
  lease definitions.

KEY INTERFACES:
  IndexStore: Published index levels per series code (ILC, ILAT, ...)
  LeaseStore: Saved lease definitions (JSON documents)

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: SQLite, used by the HTTP server
  - generic/store/memory.go: In-memory, used by the CLI and tests

SEE ALSO:
  - indexation/provider.go: Turns an IndexStore into engine inputs
*/
package generic

import "context"

// =============================================================================
// INDEX STORE
// =============================================================================

// IndexStore holds published index levels.
type IndexStore interface {
	// SaveIndexPoints upserts points for a series. A point with an existing
	// date replaces the stored value.
	SaveIndexPoints(ctx context.Context, series string, points []IndexPoint) error

	// IndexPoints returns all points of a series ordered by date.
	// Returns ErrIndexSeriesNotFound if the series has no points.
	IndexPoints(ctx context.Context, series string) ([]IndexPoint, error)
}

// =============================================================================
// LEASE STORE
// =============================================================================

// LeaseStore holds saved lease definitions.
type LeaseStore interface {
	SaveLease(ctx context.Context, lease LeaseRecord) error

	// GetLease returns ErrLeaseNotFound if the lease doesn't exist.
	GetLease(ctx context.Context, id LeaseID) (*LeaseRecord, error)

	ListLeases(ctx context.Context) ([]LeaseRecord, error)

	DeleteLease(ctx context.Context, id LeaseID) error
}
