package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"aerometrics/fleetdw/internal/constants"
	"aerometrics/fleetdw/internal/models/entities"
)

// RunLogRepository maintains the etl_runs audit table. It deliberately
// holds its own connection rather than the load transaction: a rolled-back
// load must still leave its failure on record.
type RunLogRepository struct {
	db *sqlx.DB
}

func NewRunLogRepository(db *sqlx.DB) *RunLogRepository {
	return &RunLogRepository{db: db}
}

// Create records the start of a load run
func (r *RunLogRepository) Create(ctx context.Context, runID string, startedAt time.Time) error {
	_, err := r.db.ExecContext(ctx, constants.InsertRunLog,
		runID, startedAt, string(constants.RunStatusInProgress))
	if err != nil {
		return fmt.Errorf("failed to create run log entry: %w", err)
	}
	return nil
}

// Finish records the terminal state of a load run from its report
func (r *RunLogRepository) Finish(ctx context.Context, report *entities.LoadReport) error {
	var errMsg *string
	if report.Error != "" {
		errMsg = &report.Error
	}

	_, err := r.db.ExecContext(ctx, constants.UpdateRunLog,
		report.RunID,
		report.FinishedAt,
		string(report.Status),
		report.RecordsProcessed,
		len(report.Rejected),
		report.TotalDimensionsCreated(),
		report.TotalFactsInserted(),
		report.TotalFactsUpdated(),
		errMsg,
	)
	if err != nil {
		return fmt.Errorf("failed to finish run log entry: %w", err)
	}
	return nil
}

// GetLastSuccessfulRun returns the most recent successful run, or nil when
// the warehouse has never been loaded
func (r *RunLogRepository) GetLastSuccessfulRun(ctx context.Context) (*entities.RunLog, error) {
	var runs []entities.RunLog
	if err := r.db.SelectContext(ctx, &runs, constants.SelectLastSuccessfulRun); err != nil {
		return nil, fmt.Errorf("failed to fetch last successful run: %w", err)
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}
