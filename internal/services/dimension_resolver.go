package services

import (
	"context"
	"fmt"
	"strings"

	"aerometrics/fleetdw/internal/constants"
)

// DimensionStore is the slice of the dimension repository used for entity
// dimensions. Satisfied by repositories.DimensionRepository.
type DimensionStore interface {
	ResolveAircraft(ctx context.Context, model, manufacturer string) (int, bool, error)
	ResolvePerson(ctx context.Context, personRef, role, airport string) (int, bool, error)
}

// DimensionResolver maps raw natural keys to dimension surrogate keys,
// creating rows lazily on first reference. Resolution runs on the load
// transaction and is sequential; the lookup enrichment runs on the lookup
// store's own pool and may be prewarmed concurrently.
type DimensionResolver struct {
	store   DimensionStore
	lookups *LookupService

	aircraft map[string]int
	people   map[string]int

	aircraftCreated int
	peopleCreated   int
}

func NewDimensionResolver(store DimensionStore, lookups *LookupService) *DimensionResolver {
	return &DimensionResolver{
		store:    store,
		lookups:  lookups,
		aircraft: make(map[string]int),
		people:   make(map[string]int),
	}
}

// AircraftKey resolves a tail registration to the AircraftDimension
// surrogate key. The registration is enriched to its (model,
// manufacturer) natural key through the lookup service first.
func (r *DimensionResolver) AircraftKey(ctx context.Context, registration string) (int, error) {
	reg := strings.ToUpper(strings.TrimSpace(registration))
	if id, ok := r.aircraft[reg]; ok {
		return id, nil
	}

	model, manufacturer, err := r.lookups.AircraftAttributes(ctx, reg)
	if err != nil {
		return 0, err
	}
	if model == "" || manufacturer == "" {
		return 0, &ValidationError{RecordType: "aircraft", Code: constants.RejectMissingRegistration}
	}

	id, created, err := r.store.ResolveAircraft(ctx, model, manufacturer)
	if err != nil {
		return 0, err
	}
	if created {
		r.aircraftCreated++
	}

	r.aircraft[reg] = id
	return id, nil
}

// PersonKey resolves a reporteur to the PeopleDimension surrogate key.
// The natural key is the reporteur identity combined with their role and
// home airport.
func (r *DimensionResolver) PersonKey(ctx context.Context, reporteurID string, class constants.ReporteurClass) (int, error) {
	role := normalizeRole(class)
	if role == "" {
		return 0, &ValidationError{RecordType: "person", Code: constants.RejectInvalidReporteur}
	}

	memoKey := fmt.Sprintf("%s|%s", reporteurID, role)
	if id, ok := r.people[memoKey]; ok {
		return id, nil
	}

	airport, err := r.lookups.PersonAirport(ctx, reporteurID)
	if err != nil {
		return 0, err
	}

	id, created, err := r.store.ResolvePerson(ctx, reporteurID, role, airport)
	if err != nil {
		return 0, err
	}
	if created {
		r.peopleCreated++
	}

	r.people[memoKey] = id
	return id, nil
}

// Created reports how many dimension rows this load brought into existence
func (r *DimensionResolver) Created() (aircraft, people int) {
	return r.aircraftCreated, r.peopleCreated
}
