package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"aerometrics/fleetdw/internal/common"
	"aerometrics/fleetdw/internal/constants"
	"aerometrics/fleetdw/internal/logging"
	gormModels "aerometrics/fleetdw/internal/models/gorm"
)

const lookupCacheTTL = 15 * time.Minute

// AircraftLookupFinder is the slice of the lookup repository the service
// needs. Satisfied by repositories.LookupRepository.
type AircraftLookupFinder interface {
	FindAircraft(ctx context.Context, registration string) (*gormModels.AircraftLookup, error)
	FindPersonnel(ctx context.Context, reporteurID string) (*gormModels.PersonnelLookup, error)
}

// LookupService enriches raw natural keys with dimension attributes from
// the master-data lookups. Keys missing from the lookup resolve to UNK
// attributes with a warning, matching how the warehouse treats unmatched
// fleet data; only empty keys are rejected, and that happens upstream in
// validation.
type LookupService struct {
	repo  AircraftLookupFinder
	cache common.CacheInterface
}

func NewLookupService(repo AircraftLookupFinder, cache common.CacheInterface) *LookupService {
	return &LookupService{repo: repo, cache: cache}
}

// AircraftAttributes resolves a tail registration to (model, manufacturer)
func (s *LookupService) AircraftAttributes(ctx context.Context, registration string) (string, string, error) {
	cacheKey := fmt.Sprintf("aircraft:%s", registration)

	val, err := s.cache.GetOrSet(cacheKey, lookupCacheTTL, func() (any, error) {
		row, err := s.repo.FindAircraft(ctx, registration)
		if err != nil {
			return nil, fmt.Errorf("aircraft lookup failed for %s: %w", registration, err)
		}
		if row == nil {
			logging.Warn("Aircraft registration not found in lookup",
				"registration", registration)
			return &gormModels.AircraftLookup{
				Registration: registration,
				Model:        constants.UnknownAttribute,
				Manufacturer: constants.UnknownAttribute,
			}, nil
		}
		return row, nil
	})
	if err != nil {
		return "", "", err
	}

	row := val.(*gormModels.AircraftLookup)
	return row.Model, row.Manufacturer, nil
}

// PersonAirport resolves a reporteur identifier to their home airport
func (s *LookupService) PersonAirport(ctx context.Context, reporteurID string) (string, error) {
	cacheKey := fmt.Sprintf("personnel:%s", reporteurID)

	val, err := s.cache.GetOrSet(cacheKey, lookupCacheTTL, func() (any, error) {
		row, err := s.repo.FindPersonnel(ctx, reporteurID)
		if err != nil {
			return nil, fmt.Errorf("personnel lookup failed for %s: %w", reporteurID, err)
		}
		if row == nil {
			logging.Warn("Reporteur not found in lookup",
				"reporteur_id", reporteurID)
			return &gormModels.PersonnelLookup{
				ReporteurID: reporteurID,
				Airport:     constants.UnknownAttribute,
			}, nil
		}
		return row, nil
	})
	if err != nil {
		return "", err
	}

	return val.(*gormModels.PersonnelLookup).Airport, nil
}

// Prewarm fetches lookup attributes for distinct natural keys
// concurrently before resolution starts. The lookup store has its own
// connection pool, so this is safe to parallelize; dimension writes stay
// on the single load transaction.
func (s *LookupService) Prewarm(ctx context.Context, registrations, reporteurs []string) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)

	seen := make(map[string]bool)
	for _, reg := range registrations {
		reg := strings.ToUpper(strings.TrimSpace(reg))
		if reg == "" || seen["a:"+reg] {
			continue
		}
		seen["a:"+reg] = true
		g.Go(func() error {
			_, _, err := s.AircraftAttributes(gctx, reg)
			return err
		})
	}

	for _, rep := range reporteurs {
		rep := strings.TrimSpace(rep)
		if rep == "" || seen["p:"+rep] {
			continue
		}
		seen["p:"+rep] = true
		g.Go(func() error {
			_, err := s.PersonAirport(gctx, rep)
			return err
		})
	}

	return g.Wait()
}
