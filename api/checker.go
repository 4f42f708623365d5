/*
checker.go - Periodic recomputation of saved leases

PURPOSE:
  Saved leases that only name an index type depend on data that changes
  under them: a new published level moves the extrapolation, a deleted
  series makes the lease uncomputable. The checker recomputes every saved
  lease on an interval and keeps the last outcome per lease, so operators
  see broken leases before a client asks for their schedule.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Runs once immediately on Start
  - Keeps only the latest result per lease; deleted leases drop out

CONFIGURATION:
  - CheckInterval: How often to check (default: 1 hour)
  - Enabled: Whether checker is active (default: true)

USAGE:
  checker := NewLeaseChecker(handler)
  handler.Checker = checker
  checker.Start()
  // ... later
  checker.Stop()

SEE ALSO:
  - handlers.go: ListLeaseChecks endpoint
*/
package api

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/warp/lease-engine/generic"
)

// LeaseChecker recomputes saved leases in the background.
type LeaseChecker struct {
	Handler       *Handler
	CheckInterval time.Duration
	Enabled       bool

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex

	resultsMu sync.RWMutex
	results   map[generic.LeaseID]LeaseCheckDTO
}

// NewLeaseChecker creates a new checker.
func NewLeaseChecker(handler *Handler) *LeaseChecker {
	return &LeaseChecker{
		Handler:       handler,
		CheckInterval: 1 * time.Hour,
		Enabled:       true,
		stop:          make(chan struct{}),
		results:       make(map[generic.LeaseID]LeaseCheckDTO),
	}
}

// Start begins the checker.
func (lc *LeaseChecker) Start() {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	if !lc.Enabled {
		log.Println("[Checker] Disabled, not starting")
		return
	}

	lc.ticker = time.NewTicker(lc.CheckInterval)
	lc.wg.Add(1)

	go lc.run()

	log.Printf("[Checker] Started with check interval: %v", lc.CheckInterval)
}

// Stop stops the checker.
func (lc *LeaseChecker) Stop() {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	if lc.ticker != nil {
		lc.ticker.Stop()
		close(lc.stop)
		lc.wg.Wait()
		lc.ticker = nil
		log.Println("[Checker] Stopped")
	}
}

func (lc *LeaseChecker) run() {
	defer lc.wg.Done()

	lc.CheckAll(context.Background())

	for {
		select {
		case <-lc.ticker.C:
			lc.CheckAll(context.Background())
		case <-lc.stop:
			return
		}
	}
}

// CheckAll recomputes every saved lease and replaces the stored results.
func (lc *LeaseChecker) CheckAll(ctx context.Context) {
	records, err := lc.Handler.Store.ListLeases(ctx)
	if err != nil {
		log.Printf("[Checker] Error listing leases: %v", err)
		return
	}

	now := time.Now().UTC()
	results := make(map[generic.LeaseID]LeaseCheckDTO, len(records))
	failed := 0

	for _, rec := range records {
		check := LeaseCheckDTO{
			LeaseID:   string(rec.ID),
			CheckedAt: now.Format(time.RFC3339),
		}

		result, err := lc.Handler.scheduleFor(ctx, rec.ID)
		if err != nil {
			check.Error = err.Error()
			failed++
			log.Printf("[Checker] Lease %s failed: %v", rec.ID, err)
		} else {
			check.OK = true
			check.Periods = len(result.Schedule)
			check.TotalNetRentHT = moneyString(result.Summary.TotalNetRentHT)
		}
		results[rec.ID] = check
	}

	lc.resultsMu.Lock()
	lc.results = results
	lc.resultsMu.Unlock()

	log.Printf("[Checker] Completed: %d leases, %d failed", len(records), failed)
}

// Results returns the last check of every lease ordered by lease ID.
func (lc *LeaseChecker) Results() []LeaseCheckDTO {
	lc.resultsMu.RLock()
	defer lc.resultsMu.RUnlock()

	out := make([]LeaseCheckDTO, 0, len(lc.results))
	for _, c := range lc.results {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LeaseID < out[j].LeaseID })
	return out
}
