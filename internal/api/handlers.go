package api

import (
	"context"

	"aerometrics/fleetdw/internal/models"
	"aerometrics/fleetdw/internal/models/entities"
)

// Loader is the load engine surface the handlers need. Satisfied by
// services.LoadOrchestrator.
type Loader interface {
	Load(ctx context.Context, batch *models.RecordBatch) (*entities.LoadReport, error)
}

// RunHistory reads the etl_runs audit table. Satisfied by
// repositories.RunLogRepository.
type RunHistory interface {
	GetLastSuccessfulRun(ctx context.Context) (*entities.RunLog, error)
}

// Handlers bundles the ops endpoints over the load engine
type Handlers struct {
	loader Loader
	runs   RunHistory
}

func NewHandlers(loader Loader, runs RunHistory) *Handlers {
	return &Handlers{loader: loader, runs: runs}
}
