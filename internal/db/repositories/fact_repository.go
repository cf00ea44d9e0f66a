package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"aerometrics/fleetdw/internal/constants"
	"aerometrics/fleetdw/internal/models/entities"
)

// FactRepository writes fact rows with merge-on-conflict semantics.
// Like DimensionRepository it runs against the caller's transaction.
type FactRepository struct {
	ext sqlx.ExtContext
}

func NewFactRepository(ext sqlx.ExtContext) *FactRepository {
	return &FactRepository{ext: ext}
}

// UpsertUtilization writes one AicraftUtilization row, overwriting the
// measures when the grain already exists. Returns whether a new row was
// inserted (as opposed to updated).
func (r *FactRepository) UpsertUtilization(ctx context.Context, f entities.AircraftUtilizationFact) (bool, error) {
	var inserted bool
	err := sqlx.GetContext(ctx, r.ext, &inserted, constants.UpsertAircraftUtilization,
		f.TimeID,
		f.AircraftID,
		f.FlightHours,
		f.FlightCycles,
		f.Delays,
		f.Cancellations,
		f.DelayedMinutes,
		f.ScheduledOutOfService,
		f.UnscheduledOutOfService,
	)
	if err != nil {
		return false, fmt.Errorf("failed to upsert utilization fact (time %d, aircraft %d): %w", f.TimeID, f.AircraftID, err)
	}
	return inserted, nil
}

// UpsertLogbook writes one LogbookReporting row, overwriting the counter
// when the grain already exists
func (r *FactRepository) UpsertLogbook(ctx context.Context, f entities.LogbookReportingFact) (bool, error) {
	var inserted bool
	err := sqlx.GetContext(ctx, r.ext, &inserted, constants.UpsertLogbookReporting,
		f.MonthID,
		f.PersonID,
		f.AircraftID,
		f.Counter,
	)
	if err != nil {
		return false, fmt.Errorf("failed to upsert logbook fact (month %d, person %d, aircraft %d): %w", f.MonthID, f.PersonID, f.AircraftID, err)
	}
	return inserted, nil
}
