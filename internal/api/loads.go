package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"aerometrics/fleetdw/internal/logging"
	"aerometrics/fleetdw/internal/models"
	"aerometrics/fleetdw/internal/models/entities"
	"aerometrics/fleetdw/internal/services"
)

// Batches arrive pre-extracted; a full reporting window comfortably fits
// well under this.
const maxBatchBytes = 64 << 20

// TriggerLoad handles POST /api/v1/loads
//
// The body is one cleaned record batch. The load runs synchronously and
// the response carries the full load report, including per-record rejects.
func (h *Handlers) TriggerLoad() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var batch models.RecordBatch

		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBatchBytes))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&batch); err != nil {
			respondWithError(w, http.StatusBadRequest, "Malformed record batch: "+err.Error())
			return
		}

		if batch.Size() == 0 {
			respondWithError(w, http.StatusBadRequest, "Record batch is empty")
			return
		}

		report, err := h.loader.Load(r.Context(), &batch)
		if err != nil {
			logging.Error("Load request failed", "run_id", report.RunID, "error", err.Error())

			var connErr *services.ConnectionError
			if errors.As(err, &connErr) {
				respondWithError(w, http.StatusServiceUnavailable, report.Error)
				return
			}

			var constraintErr *services.ConstraintViolationError
			if errors.As(err, &constraintErr) {
				respondWithError(w, http.StatusConflict, report.Error)
				return
			}

			respondWithError(w, http.StatusInternalServerError, report.Error)
			return
		}

		respondWithSuccess(w, http.StatusOK, report)
	}
}

// LastRun handles GET /api/v1/runs/last
//
// Returns the most recent successful load run from the audit table, or
// 404 when the warehouse has never been loaded.
func (h *Handlers) LastRun() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		run, err := h.runs.GetLastSuccessfulRun(r.Context())
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to fetch run history")
			return
		}
		if run == nil {
			respondWithError(w, http.StatusNotFound, "No successful load recorded")
			return
		}

		respondWithSuccess[entities.RunLog](w, http.StatusOK, run)
	}
}
