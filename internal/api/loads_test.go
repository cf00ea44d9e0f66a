package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"aerometrics/fleetdw/internal/constants"
	"aerometrics/fleetdw/internal/models"
	"aerometrics/fleetdw/internal/models/dtos/responses"
	"aerometrics/fleetdw/internal/models/entities"
	"aerometrics/fleetdw/internal/services"
)

// Mock Loader
type mockLoader struct {
	loadFunc func(ctx context.Context, batch *models.RecordBatch) (*entities.LoadReport, error)
}

func (m *mockLoader) Load(ctx context.Context, batch *models.RecordBatch) (*entities.LoadReport, error) {
	return m.loadFunc(ctx, batch)
}

// Mock RunHistory
type mockRunHistory struct {
	run *entities.RunLog
	err error
}

func (m *mockRunHistory) GetLastSuccessfulRun(ctx context.Context) (*entities.RunLog, error) {
	return m.run, m.err
}

func batchBody(t *testing.T) *bytes.Reader {
	t.Helper()
	batch := models.RecordBatch{
		Flights: []models.FlightRecord{{
			Registration:       "EC-MYT",
			ScheduledDeparture: time.Date(2024, 1, 5, 8, 0, 0, 0, time.UTC),
			ScheduledArrival:   time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC),
		}},
	}
	raw, err := json.Marshal(batch)
	if err != nil {
		t.Fatalf("failed to marshal batch: %v", err)
	}
	return bytes.NewReader(raw)
}

func TestTriggerLoad_Success(t *testing.T) {
	loader := &mockLoader{
		loadFunc: func(ctx context.Context, batch *models.RecordBatch) (*entities.LoadReport, error) {
			report := entities.NewLoadReport("run-1", time.Now().UTC())
			report.Status = constants.RunStatusSuccess
			report.RecordsProcessed = batch.Size()
			return report, nil
		},
	}
	handlers := NewHandlers(loader, &mockRunHistory{})

	req := httptest.NewRequest("POST", "/api/v1/loads", batchBody(t))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	handlers.TriggerLoad()(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp responses.APIResponse[entities.LoadReport]
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "success" {
		t.Errorf("expected success status, got %s", resp.Status)
	}
	if resp.Data == nil || resp.Data.RunID != "run-1" {
		t.Errorf("expected report for run-1, got %+v", resp.Data)
	}
}

func TestTriggerLoad_MalformedBody(t *testing.T) {
	handlers := NewHandlers(&mockLoader{}, &mockRunHistory{})

	req := httptest.NewRequest("POST", "/api/v1/loads", bytes.NewReader([]byte("{not json")))
	rr := httptest.NewRecorder()

	handlers.TriggerLoad()(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestTriggerLoad_EmptyBatch(t *testing.T) {
	handlers := NewHandlers(&mockLoader{}, &mockRunHistory{})

	req := httptest.NewRequest("POST", "/api/v1/loads", bytes.NewReader([]byte("{}")))
	rr := httptest.NewRecorder()

	handlers.TriggerLoad()(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestTriggerLoad_StorageUnavailable(t *testing.T) {
	loader := &mockLoader{
		loadFunc: func(ctx context.Context, batch *models.RecordBatch) (*entities.LoadReport, error) {
			report := entities.NewLoadReport("run-2", time.Now().UTC())
			report.Status = constants.RunStatusFailed
			report.Error = "storage unreachable"
			return report, &services.ConnectionError{Op: "load transaction", Err: errors.New("connection refused")}
		},
	}
	handlers := NewHandlers(loader, &mockRunHistory{})

	req := httptest.NewRequest("POST", "/api/v1/loads", batchBody(t))
	rr := httptest.NewRecorder()

	handlers.TriggerLoad()(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
}

func TestLastRun_NoHistory(t *testing.T) {
	handlers := NewHandlers(&mockLoader{}, &mockRunHistory{})

	req := httptest.NewRequest("GET", "/api/v1/runs/last", nil)
	rr := httptest.NewRecorder()

	handlers.LastRun()(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestLastRun_ReturnsLatest(t *testing.T) {
	handlers := NewHandlers(&mockLoader{}, &mockRunHistory{
		run: &entities.RunLog{RunID: "run-3", Status: string(constants.RunStatusSuccess)},
	})

	req := httptest.NewRequest("GET", "/api/v1/runs/last", nil)
	rr := httptest.NewRecorder()

	handlers.LastRun()(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp responses.APIResponse[entities.RunLog]
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data == nil || resp.Data.RunID != "run-3" {
		t.Errorf("expected run-3, got %+v", resp.Data)
	}
}
