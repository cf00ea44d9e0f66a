package repositories

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	gormlib "gorm.io/gorm"

	gormModels "aerometrics/fleetdw/internal/models/gorm"
)

// Setup test database
func setupLookupDB(t *testing.T) *gormlib.DB {
	db, err := gormlib.Open(sqlite.Open(":memory:"), &gormlib.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&gormModels.AircraftLookup{}, &gormModels.PersonnelLookup{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return db
}

func TestLookupRepository_FindAircraft(t *testing.T) {
	db := setupLookupDB(t)
	repo := NewLookupRepository(db)
	ctx := context.Background()

	rows := []gormModels.AircraftLookup{
		{Registration: "EC-MYT", Model: "A320", Manufacturer: "Airbus"},
		{Registration: "EC-NBX", Model: "737-800", Manufacturer: "Boeing"},
	}
	if err := repo.BatchInsertAircraft(ctx, rows); err != nil {
		t.Fatalf("BatchInsertAircraft failed: %v", err)
	}

	found, err := repo.FindAircraft(ctx, "ec-myt")
	if err != nil {
		t.Fatalf("FindAircraft returned error: %v", err)
	}
	if found == nil {
		t.Fatal("expected case-insensitive match, got nil")
	}
	if found.Model != "A320" || found.Manufacturer != "Airbus" {
		t.Errorf("unexpected attributes: %+v", found)
	}

	missing, err := repo.FindAircraft(ctx, "EC-ZZZ")
	if err != nil {
		t.Fatalf("FindAircraft returned error for miss: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown registration, got %+v", missing)
	}

	count, err := repo.CountAircraft(ctx)
	if err != nil {
		t.Fatalf("CountAircraft returned error: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 aircraft rows, got %d", count)
	}
}

func TestLookupRepository_FindPersonnel(t *testing.T) {
	db := setupLookupDB(t)
	repo := NewLookupRepository(db)
	ctx := context.Background()

	if err := repo.BatchInsertPersonnel(ctx, []gormModels.PersonnelLookup{
		{ReporteurID: "R-104", Airport: "LEBL"},
	}); err != nil {
		t.Fatalf("BatchInsertPersonnel failed: %v", err)
	}

	found, err := repo.FindPersonnel(ctx, "R-104")
	if err != nil {
		t.Fatalf("FindPersonnel returned error: %v", err)
	}
	if found == nil || found.Airport != "LEBL" {
		t.Errorf("unexpected result: %+v", found)
	}

	missing, err := repo.FindPersonnel(ctx, "R-999")
	if err != nil {
		t.Fatalf("FindPersonnel returned error for miss: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown reporteur, got %+v", missing)
	}
}
