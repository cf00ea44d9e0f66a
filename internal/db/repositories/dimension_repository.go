package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"aerometrics/fleetdw/internal/constants"
)

// DimensionRepository performs atomic find-or-create resolution of natural
// keys to surrogate keys. It operates on whatever execution context the
// caller owns, normally the load transaction, so dimension rows created
// for a batch are rolled back with it.
type DimensionRepository struct {
	ext sqlx.ExtContext
}

func NewDimensionRepository(ext sqlx.ExtContext) *DimensionRepository {
	return &DimensionRepository{ext: ext}
}

// findOrCreate runs an ON CONFLICT DO NOTHING insert and falls back to a
// select when another resolver won the race on the unique constraint.
func (r *DimensionRepository) findOrCreate(ctx context.Context, insert, sel string, args ...interface{}) (int, bool, error) {
	var id int
	err := sqlx.GetContext(ctx, r.ext, &id, insert, args...)
	if err == nil {
		return id, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, false, err
	}

	if err := sqlx.GetContext(ctx, r.ext, &id, sel, args...); err != nil {
		return 0, false, err
	}
	return id, false, nil
}

// ResolveAircraft returns the surrogate key for an airframe natural key,
// creating the dimension row if absent. The created flag reports whether a
// new row was inserted.
func (r *DimensionRepository) ResolveAircraft(ctx context.Context, model, manufacturer string) (int, bool, error) {
	id, created, err := r.findOrCreate(ctx,
		constants.InsertAircraftDimension, constants.SelectAircraftDimension,
		model, manufacturer)
	if err != nil {
		return 0, false, fmt.Errorf("failed to resolve aircraft dimension (%s, %s): %w", model, manufacturer, err)
	}
	return id, created, nil
}

// ResolvePerson returns the surrogate key for a reporteur natural key,
// creating the dimension row if absent
func (r *DimensionRepository) ResolvePerson(ctx context.Context, personRef, role, airport string) (int, bool, error) {
	id, created, err := r.findOrCreate(ctx,
		constants.InsertPeopleDimension, constants.SelectPeopleDimension,
		personRef, role, airport)
	if err != nil {
		return 0, false, fmt.Errorf("failed to resolve people dimension (%s, %s, %s): %w", personRef, role, airport, err)
	}
	return id, created, nil
}

// ResolveMonth returns the surrogate key for a (year, month) pair,
// creating the Months row if absent
func (r *DimensionRepository) ResolveMonth(ctx context.Context, year, month int) (int, bool, error) {
	id, created, err := r.findOrCreate(ctx,
		constants.InsertMonth, constants.SelectMonth,
		year, month)
	if err != nil {
		return 0, false, fmt.Errorf("failed to resolve month (%d-%02d): %w", year, month, err)
	}
	return id, created, nil
}

// ResolveTemporal returns the surrogate key for a reporting period within
// a month, creating the TemporalDimension row if absent
func (r *DimensionRepository) ResolveTemporal(ctx context.Context, monthID int, periodStart time.Time) (int, bool, error) {
	id, created, err := r.findOrCreate(ctx,
		constants.InsertTemporalDimension, constants.SelectTemporalDimension,
		monthID, periodStart)
	if err != nil {
		return 0, false, fmt.Errorf("failed to resolve temporal dimension (month %d, %s): %w", monthID, periodStart.Format("2006-01-02"), err)
	}
	return id, created, nil
}
