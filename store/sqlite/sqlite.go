/*
Package sqlite provides a SQLite-backed implementation of the storage interfaces.

PURPOSE:
  Persists published index series and saved lease definitions for the HTTP
  server. The schedule engine never touches this package: handlers read from
  the store, build a rent.ScheduleInput and hand it to the engine.

INTERFACES IMPLEMENTED:
  generic.IndexStore: Published index levels per series
  generic.LeaseStore: Lease definitions as JSON documents

KEY TABLES:
  index_points: One row per (series, effective_date), value as REAL
  leases:       Lease documents with name and index type for listing

UPSERTS:
  Saving an index point on an existing date replaces its value, so a
  provisional level can be corrected when the definitive one is published.
  Saving a lease with an existing ID replaces its document and keeps
  created_at.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. SQLite is opened with WAL so readers
  don't block the single writer.

USAGE:
  store, err := sqlite.New("./data/leases.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  provider := indexation.NewProvider(store)

MIGRATION:
  Schema is auto-migrated on New().

SEE ALSO:
  - generic/store.go: Interface definitions
  - generic/store/memory.go: In-memory implementation for the CLI and tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/lease-engine/generic"
)

// Store implements the storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var (
	_ generic.IndexStore = (*Store)(nil)
	_ generic.LeaseStore = (*Store)(nil)
)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// Each connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Published index levels
	CREATE TABLE IF NOT EXISTS index_points (
		series TEXT NOT NULL,
		effective_date TEXT NOT NULL,
		value REAL NOT NULL,
		created_at TEXT NOT NULL,
		PRIMARY KEY (series, effective_date)
	);

	-- Lease definitions
	CREATE TABLE IF NOT EXISTS leases (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		index_type TEXT NOT NULL DEFAULT '',
		config_json TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_leases_name
		ON leases(name);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// INDEX STORE
// =============================================================================

// SaveIndexPoints upserts all points in a single transaction.
func (s *Store) SaveIndexPoints(ctx context.Context, series string, points []generic.IndexPoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer sqlTx.Rollback()

	query := `
		INSERT INTO index_points (series, effective_date, value, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(series, effective_date) DO UPDATE SET
			value = excluded.value
	`
	now := time.Now().UTC().Format(time.RFC3339)
	for _, p := range points {
		if _, err := sqlTx.ExecContext(ctx, query, series, p.Date.String(), p.Value, now); err != nil {
			return fmt.Errorf("failed to save %s point %s: %w", series, p.Date, err)
		}
	}

	return sqlTx.Commit()
}

// IndexPoints returns a series ordered by date.
func (s *Store) IndexPoints(ctx context.Context, series string) ([]generic.IndexPoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT effective_date, value FROM index_points WHERE series = ? ORDER BY effective_date",
		series,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []generic.IndexPoint
	for rows.Next() {
		var date string
		var p generic.IndexPoint
		if err := rows.Scan(&date, &p.Value); err != nil {
			return nil, err
		}
		p.Date, err = generic.ParseDate(date)
		if err != nil {
			return nil, fmt.Errorf("corrupt date %q in series %s: %w", date, series, err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(points) == 0 {
		return nil, generic.ErrIndexSeriesNotFound
	}
	return points, nil
}

// ListSeries returns the codes of all stored series.
func (s *Store) ListSeries(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT series FROM index_points ORDER BY series")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var series []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		series = append(series, code)
	}
	return series, rows.Err()
}

// =============================================================================
// LEASE STORE
// =============================================================================

// SaveLease saves a lease record.
func (s *Store) SaveLease(ctx context.Context, lease generic.LeaseRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO leases (id, name, index_type, config_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			index_type = excluded.index_type,
			config_json = excluded.config_json,
			updated_at = excluded.updated_at
	`

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, query,
		string(lease.ID), lease.Name, lease.IndexType, lease.ConfigJSON, now, now,
	)
	return err
}

// GetLease retrieves a lease by ID.
func (s *Store) GetLease(ctx context.Context, id generic.LeaseID) (*generic.LeaseRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, index_type, config_json, created_at, updated_at FROM leases WHERE id = ?",
		string(id),
	)
	l, err := scanLease(row)
	if err == sql.ErrNoRows {
		return nil, generic.ErrLeaseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// ListLeases returns all leases ordered by name.
func (s *Store) ListLeases(ctx context.Context) ([]generic.LeaseRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, index_type, config_json, created_at, updated_at FROM leases ORDER BY name",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leases []generic.LeaseRecord
	for rows.Next() {
		l, err := scanLease(rows)
		if err != nil {
			return nil, err
		}
		leases = append(leases, l)
	}
	return leases, rows.Err()
}

// DeleteLease removes a lease.
func (s *Store) DeleteLease(ctx context.Context, id generic.LeaseID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM leases WHERE id = ?", string(id))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return generic.ErrLeaseNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLease(row scanner) (generic.LeaseRecord, error) {
	var l generic.LeaseRecord
	var id, createdAt, updatedAt string
	if err := row.Scan(&id, &l.Name, &l.IndexType, &l.ConfigJSON, &createdAt, &updatedAt); err != nil {
		return l, err
	}
	l.ID = generic.LeaseID(id)
	l.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	l.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return l, nil
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for demo scenarios).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{"leases", "index_points"}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}
