package repositories

import (
	"context"

	gormlib "gorm.io/gorm"

	gormModels "aerometrics/fleetdw/internal/models/gorm"
)

// LookupRepository reads the master-data lookup tables that enrich raw
// natural keys (tail registration, reporteur id) with dimension attributes
type LookupRepository struct {
	db *gormlib.DB
}

func NewLookupRepository(db *gormlib.DB) *LookupRepository {
	return &LookupRepository{db: db}
}

// FindAircraft finds an airframe by tail registration. Returns nil without
// error when the registration is not in the lookup.
func (r *LookupRepository) FindAircraft(ctx context.Context, registration string) (*gormModels.AircraftLookup, error) {
	var aircraft gormModels.AircraftLookup

	err := r.db.WithContext(ctx).
		Where("UPPER(registration) = UPPER(?)", registration).
		First(&aircraft).Error

	if err != nil {
		if err == gormlib.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &aircraft, nil
}

// FindPersonnel finds a reporteur by identifier. Returns nil without error
// when the reporteur is not in the lookup.
func (r *LookupRepository) FindPersonnel(ctx context.Context, reporteurID string) (*gormModels.PersonnelLookup, error) {
	var person gormModels.PersonnelLookup

	err := r.db.WithContext(ctx).
		Where("reporteur_id = ?", reporteurID).
		First(&person).Error

	if err != nil {
		if err == gormlib.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &person, nil
}

// BatchInsertAircraft inserts aircraft lookup rows (used when importing
// master data)
func (r *LookupRepository) BatchInsertAircraft(ctx context.Context, rows []gormModels.AircraftLookup) error {
	return r.db.WithContext(ctx).
		CreateInBatches(rows, 100).Error
}

// BatchInsertPersonnel inserts personnel lookup rows
func (r *LookupRepository) BatchInsertPersonnel(ctx context.Context, rows []gormModels.PersonnelLookup) error {
	return r.db.WithContext(ctx).
		CreateInBatches(rows, 100).Error
}

// CountAircraft returns the number of aircraft lookup rows
func (r *LookupRepository) CountAircraft(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&gormModels.AircraftLookup{}).Count(&count).Error
	return count, err
}
