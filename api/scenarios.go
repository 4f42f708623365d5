/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	leases and index series. Each scenario shows a specific engine feature.

AVAILABLE SCENARIOS:

	office-ilc:     Quarterly office lease indexed on ILC, rent-free period,
	                incentive and deposit; base index comes from the series
	retail-monthly: Monthly shop lease with fixed base index and growing charges
	portfolio:      Both of the above plus a short lease ending inside the horizon

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Publish the ILC series when a lease needs it
 3. Save leases via the factory presets

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "office-ilc"}

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: saveLease
  - factory/presets.go: Lease JSON presets and the ILC series
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/warp/lease-engine/factory"
	"github.com/warp/lease-engine/generic"
	"github.com/warp/lease-engine/indexation"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "office-ilc",
		Name:        "Indexed Office",
		Description: "Quarterly ILC-indexed office lease with rent-free period, incentive and deposit",
	},
	{
		ID:          "retail-monthly",
		Name:        "Monthly Retail",
		Description: "Monthly shop lease with fixed base index and 2% yearly charges growth",
	},
	{
		ID:          "portfolio",
		Name:        "Portfolio",
		Description: "Office, retail and a short lease that ends before the horizon",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	current := h.getCurrentScenario()
	if current == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	for _, s := range scenarios {
		if s.ID == current {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}

	writeJSON(w, http.StatusOK, ScenarioDTO{
		ID:          current,
		Name:        current,
		Description: "Currently loaded scenario",
	})
}

// LoadScenario loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ScenarioID string `json:"scenario_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.loadScenario(r.Context(), req.ScenarioID); err != nil {
		if errors.Is(err, errUnknownScenario) {
			writeError(w, http.StatusBadRequest, "Unknown scenario", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load scenario: %v", err), err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "scenario": req.ScenarioID})
}

var errUnknownScenario = errors.New("unknown scenario")

func (h *Handler) loadScenario(ctx context.Context, id string) error {
	var loader func(context.Context) error
	switch id {
	case "office-ilc":
		loader = h.loadOfficeScenario
	case "retail-monthly":
		loader = h.loadRetailScenario
	case "portfolio":
		loader = h.loadPortfolioScenario
	default:
		return errUnknownScenario
	}

	// Reset first
	if err := h.Store.Reset(ctx); err != nil {
		return fmt.Errorf("reset database: %w", err)
	}
	h.setCurrentScenario("")

	if err := loader(ctx); err != nil {
		return err
	}

	h.setCurrentScenario(id)
	log.Printf("[Scenarios] Loaded %s", id)
	return nil
}

func (h *Handler) getCurrentScenario() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.currentScenario
}

func (h *Handler) setCurrentScenario(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.currentScenario = id
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

func (h *Handler) loadOfficeScenario(ctx context.Context) error {
	if err := h.publishILC(ctx); err != nil {
		return err
	}
	// 3000/quarter office, 500 parking, 300 charges, 200 taxes,
	// 6 months free, 4000 incentive, 3 months deposit
	return h.createLeaseFromJSON(ctx, factory.OfficeLeaseJSON("lyon-hq", "Lyon HQ", "2024-03-06", "2033-03-05", 3000))
}

func (h *Handler) loadRetailScenario(ctx context.Context) error {
	return h.createLeaseFromJSON(ctx, factory.MonthlyLeaseJSON("annecy-shop", "Annecy shop", "2025-01-15", "2034-01-14", 1500, 125))
}

func (h *Handler) loadPortfolioScenario(ctx context.Context) error {
	if err := h.loadOfficeScenario(ctx); err != nil {
		return err
	}
	if err := h.loadRetailScenario(ctx); err != nil {
		return err
	}
	// Ends mid-quarter, well before the 3-year horizon
	return h.createLeaseFromJSON(ctx, factory.OfficeLeaseJSON("bordeaux-annex", "Bordeaux annex", "2024-05-20", "2025-08-14", 1200))
}

func (h *Handler) publishILC(ctx context.Context) error {
	points := make([]generic.IndexPoint, 0)
	for _, p := range factory.ILCSeries() {
		d, err := generic.ParseDate(p.Date)
		if err != nil {
			return err
		}
		points = append(points, generic.IndexPoint{Date: d, Value: p.Value})
	}
	return h.Store.SaveIndexPoints(ctx, string(indexation.ILC), points)
}

func (h *Handler) createLeaseFromJSON(ctx context.Context, jsonStr string) error {
	var lj factory.LeaseJSON
	if err := json.Unmarshal([]byte(jsonStr), &lj); err != nil {
		return err
	}
	_, err := h.saveLease(ctx, &lj)
	return err
}
