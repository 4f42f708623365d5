/*
handlers.go - HTTP API handlers for the lease rent schedule engine

PURPOSE:
  Exposes the schedule engine via REST API. Handles HTTP request/response,
  JSON serialization, index lookup, and delegates computation to the rent
  package.

ENDPOINTS:
  Schedules:
    POST   /api/schedules              Compute a schedule from a lease body

  Leases:
    GET    /api/leases                 List saved leases
    POST   /api/leases                 Save a lease
    GET    /api/leases/{id}            Get a saved lease
    DELETE /api/leases/{id}            Delete a saved lease
    GET    /api/leases/{id}/schedule   Compute the schedule of a saved lease
    GET    /api/leases/checks          Last background check per lease

  Indices:
    GET    /api/indices                List stored series codes
    GET    /api/indices/{type}         Get a series
    POST   /api/indices/{type}/points  Publish index levels

  Scenarios:
    GET    /api/scenarios              List demo scenarios
    POST   /api/scenarios/load         Load a demo scenario

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Store: Database access (leases and index series)
  - LeaseFactory: JSON to Lease conversion
  - Provider: Base/known index lookup for leases that only name an index

INDEX RESOLUTION:
  A lease with base_index_value is computed as-is. A lease with only
  index_type gets its base and known points from the provider. When the
  lease embeds index_series, that series is used instead of the store.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Malformed body, validation errors, missing base index
  - 404: Lease or index series not found
  - 500: Internal errors

SECURITY NOTE:
  No authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/warp/lease-engine/factory"
	"github.com/warp/lease-engine/generic"
	"github.com/warp/lease-engine/generic/store"
	"github.com/warp/lease-engine/indexation"
	"github.com/warp/lease-engine/rent"
	"github.com/warp/lease-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store        *sqlite.Store
	LeaseFactory *factory.LeaseFactory
	Provider     *indexation.Provider

	// Checker is optional; when nil, /api/leases/checks returns an empty list.
	Checker *LeaseChecker

	mu              sync.RWMutex
	currentScenario string
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{
		Store:        store,
		LeaseFactory: factory.NewLeaseFactory(),
		Provider:     indexation.NewProvider(store),
	}
}

// =============================================================================
// SCHEDULE HANDLERS
// =============================================================================

// ComputeSchedule computes a schedule from a lease body without saving it.
func (h *Handler) ComputeSchedule(w http.ResponseWriter, r *http.Request) {
	var lj factory.LeaseJSON
	if err := json.NewDecoder(r.Body).Decode(&lj); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	lease, err := h.LeaseFactory.FromJSON(lj)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid lease", err)
		return
	}

	result, err := h.computeLease(r.Context(), lease)
	if err != nil {
		writeDomainError(w, "Failed to compute schedule", err)
		return
	}

	writeJSON(w, http.StatusOK, ToScheduleDTO(lease.ID, result))
}

// computeLease resolves index data if needed and runs the engine.
func (h *Handler) computeLease(ctx context.Context, lease *factory.Lease) (*rent.ScheduleResult, error) {
	if lease.NeedsIndex() {
		provider := h.Provider
		if len(lease.Series) > 0 {
			embedded := store.NewMemory()
			if err := embedded.SaveIndexPoints(ctx, string(lease.IndexType), lease.Series); err != nil {
				return nil, err
			}
			provider = indexation.NewProvider(embedded)
		}
		if err := lease.ApplyIndex(ctx, provider); err != nil {
			return nil, err
		}
	}
	return rent.ComputeLeaseRentSchedule(lease.Input)
}

// =============================================================================
// LEASE HANDLERS
// =============================================================================

// ListLeases returns all saved leases.
func (h *Handler) ListLeases(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.ListLeases(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list leases", err)
		return
	}

	dtos := make([]LeaseDTO, 0, len(records))
	for _, rec := range records {
		var config factory.LeaseJSON
		if err := json.Unmarshal([]byte(rec.ConfigJSON), &config); err != nil {
			continue // Skip corrupt documents
		}
		dtos = append(dtos, toLeaseDTO(rec, config))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateLease validates and saves a lease. An embedded index_series is
// published to the store under the lease's index type.
func (h *Handler) CreateLease(w http.ResponseWriter, r *http.Request) {
	var lj factory.LeaseJSON
	if err := json.NewDecoder(r.Body).Decode(&lj); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	rec, err := h.saveLease(r.Context(), &lj)
	if err != nil {
		writeDomainError(w, "Failed to save lease", err)
		return
	}

	saved, err := h.Store.GetLease(r.Context(), rec.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reload lease", err)
		return
	}
	writeJSON(w, http.StatusCreated, toLeaseDTO(*saved, lj))
}

// saveLease validates the document, assigns an ID if missing and persists it.
// lj is updated with the assigned ID and name.
func (h *Handler) saveLease(ctx context.Context, lj *factory.LeaseJSON) (generic.LeaseRecord, error) {
	lease, err := h.LeaseFactory.FromJSON(*lj)
	if err != nil {
		return generic.LeaseRecord{}, &generic.ValidationError{Field: "lease", Value: lj.Name, Err: err}
	}
	if lease.Input.BaseIndexValue <= 0 && lease.IndexType == "" {
		return generic.LeaseRecord{}, &generic.ValidationError{Field: "base_index_value", Value: 0, Err: generic.ErrInvalidBaseIndex}
	}

	if lj.ID == "" {
		lj.ID = uuid.New().String()
	}
	if lj.Name == "" {
		lj.Name = lj.ID
	}

	if len(lease.Series) > 0 && lease.IndexType != "" {
		if err := h.Store.SaveIndexPoints(ctx, string(lease.IndexType), lease.Series); err != nil {
			return generic.LeaseRecord{}, fmt.Errorf("save embedded series: %w", err)
		}
	}

	config, err := json.Marshal(lj)
	if err != nil {
		return generic.LeaseRecord{}, err
	}
	rec := generic.LeaseRecord{
		ID:         generic.LeaseID(lj.ID),
		Name:       lj.Name,
		IndexType:  string(lease.IndexType),
		ConfigJSON: string(config),
	}
	if err := h.Store.SaveLease(ctx, rec); err != nil {
		return generic.LeaseRecord{}, err
	}
	return rec, nil
}

// GetLease returns a saved lease.
func (h *Handler) GetLease(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Store.GetLease(r.Context(), generic.LeaseID(chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(w, "Failed to get lease", err)
		return
	}

	var config factory.LeaseJSON
	if err := json.Unmarshal([]byte(rec.ConfigJSON), &config); err != nil {
		writeError(w, http.StatusInternalServerError, "Stored lease is corrupt", err)
		return
	}
	writeJSON(w, http.StatusOK, toLeaseDTO(*rec, config))
}

// DeleteLease removes a saved lease.
func (h *Handler) DeleteLease(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Store.DeleteLease(r.Context(), generic.LeaseID(id)); err != nil {
		writeDomainError(w, "Failed to delete lease", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}

// GetLeaseSchedule computes the schedule of a saved lease.
func (h *Handler) GetLeaseSchedule(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	result, err := h.scheduleFor(ctx, generic.LeaseID(id))
	if err != nil {
		writeDomainError(w, "Failed to compute schedule", err)
		return
	}
	writeJSON(w, http.StatusOK, ToScheduleDTO(id, result))
}

func (h *Handler) scheduleFor(ctx context.Context, id generic.LeaseID) (*rent.ScheduleResult, error) {
	rec, err := h.Store.GetLease(ctx, id)
	if err != nil {
		return nil, err
	}
	lease, err := h.LeaseFactory.ParseLease(rec.ConfigJSON)
	if err != nil {
		return nil, err
	}
	return h.computeLease(ctx, lease)
}

// ListLeaseChecks returns the last background check of every lease.
func (h *Handler) ListLeaseChecks(w http.ResponseWriter, r *http.Request) {
	if h.Checker == nil {
		writeJSON(w, http.StatusOK, []LeaseCheckDTO{})
		return
	}
	writeJSON(w, http.StatusOK, h.Checker.Results())
}

// =============================================================================
// INDEX HANDLERS
// =============================================================================

// ListIndices returns the codes of stored series.
func (h *Handler) ListIndices(w http.ResponseWriter, r *http.Request) {
	series, err := h.Store.ListSeries(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list index series", err)
		return
	}
	if series == nil {
		series = []string{}
	}
	writeJSON(w, http.StatusOK, series)
}

// GetIndexSeries returns a stored series.
func (h *Handler) GetIndexSeries(w http.ResponseWriter, r *http.Request) {
	t, err := indexation.ParseIndexType(chi.URLParam(r, "type"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid index type", err)
		return
	}

	points, err := h.Store.IndexPoints(r.Context(), string(t))
	if err != nil {
		writeDomainError(w, "Failed to get index series", err)
		return
	}
	writeJSON(w, http.StatusOK, toIndexSeriesDTO(string(t), points))
}

// AddIndexPoints publishes levels for a series. Existing dates are replaced.
func (h *Handler) AddIndexPoints(w http.ResponseWriter, r *http.Request) {
	t, err := indexation.ParseIndexType(chi.URLParam(r, "type"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid index type", err)
		return
	}

	var req AddIndexPointsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(req.Points) == 0 {
		writeError(w, http.StatusBadRequest, "At least one point is required", nil)
		return
	}

	points := make([]generic.IndexPoint, 0, len(req.Points))
	for _, p := range req.Points {
		d, err := generic.ParseDate(p.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid date: %s", p.Date), err)
			return
		}
		if p.Value <= 0 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Index value must be positive on %s", p.Date), nil)
			return
		}
		points = append(points, generic.IndexPoint{Date: d, Value: p.Value})
	}

	ctx := r.Context()
	if err := h.Store.SaveIndexPoints(ctx, string(t), points); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save index points", err)
		return
	}

	stored, err := h.Store.IndexPoints(ctx, string(t))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reload index series", err)
		return
	}
	writeJSON(w, http.StatusCreated, toIndexSeriesDTO(string(t), stored))
}

// =============================================================================
// ADMIN HANDLERS
// =============================================================================

// ResetDatabase clears all data.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}

	h.setCurrentScenario("")

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError picks the status from the error kind.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	switch {
	case generic.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case generic.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}
