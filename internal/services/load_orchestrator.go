package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"aerometrics/fleetdw/internal/constants"
	"aerometrics/fleetdw/internal/logging"
	"aerometrics/fleetdw/internal/metrics"
	"aerometrics/fleetdw/internal/models"
	"aerometrics/fleetdw/internal/models/entities"
)

// Dimension names used in the load report
const (
	DimAircraft = "aircraft"
	DimPeople   = "people"
	DimMonths   = "months"
	DimTemporal = "temporal"

	FactUtilization = "aircraft_utilization"
	FactLogbook     = "logbook_reporting"
)

// WarehouseTx is everything the orchestrator does inside the single load
// transaction: dimension and temporal find-or-create plus fact upserts.
type WarehouseTx interface {
	DimensionStore
	TemporalStore
	UpsertUtilization(ctx context.Context, f entities.AircraftUtilizationFact) (bool, error)
	UpsertLogbook(ctx context.Context, f entities.LogbookReportingFact) (bool, error)
}

// Warehouse owns the warehouse connection and scopes one transaction per
// load. The transaction is rolled back whenever fn returns an error, so a
// failed load leaves no partial dimension or fact state behind.
type Warehouse interface {
	RunInTransaction(ctx context.Context, fn func(tx WarehouseTx) error) error
}

// RunLogStore records load runs in the audit table, outside the load
// transaction. Satisfied by repositories.RunLogRepository.
type RunLogStore interface {
	Create(ctx context.Context, runID string, startedAt time.Time) error
	Finish(ctx context.Context, report *entities.LoadReport) error
}

// LoadOrchestrator sequences one load: validate, resolve dimension and
// temporal keys, aggregate facts, upsert — all inside a single atomic
// unit of work. Repeated runs over the same window are idempotent because
// fact measures are recomputed from the full batch and overwritten.
type LoadOrchestrator struct {
	warehouse  Warehouse
	lookups    *LookupService
	validator  *Validator
	aggregator *FactAggregator
	runLog     RunLogStore
	metrics    *metrics.MetricsRegistry
}

// NewLoadOrchestrator wires the orchestrator. runLog and reg may be nil
// in tests.
func NewLoadOrchestrator(
	warehouse Warehouse,
	lookups *LookupService,
	runLog RunLogStore,
	reg *metrics.MetricsRegistry,
) *LoadOrchestrator {
	return &LoadOrchestrator{
		warehouse:  warehouse,
		lookups:    lookups,
		validator:  NewValidator(),
		aggregator: NewFactAggregator(),
		runLog:     runLog,
		metrics:    reg,
	}
}

// Load runs one atomic load over a batch of cleaned records and returns
// the load report. Per-record validation failures are collected into the
// report without halting the batch; any storage failure aborts and rolls
// back the whole load, and the error comes back alongside the partial
// report for diagnostics.
func (o *LoadOrchestrator) Load(ctx context.Context, batch *models.RecordBatch) (*entities.LoadReport, error) {
	runID := uuid.NewString()
	startedAt := time.Now().UTC()
	report := entities.NewLoadReport(runID, startedAt)
	log := logging.WithRun(runID)

	log.Infow("Load started",
		"flights", len(batch.Flights),
		"maintenance_events", len(batch.MaintenanceEvents),
		"logbook_entries", len(batch.LogbookEntries),
	)

	if o.runLog != nil {
		if err := o.runLog.Create(ctx, runID, startedAt); err != nil {
			log.Warnw("Failed to record run start", "error", err.Error())
		}
	}

	valid, rejected := o.validator.ValidateBatch(batch)
	report.Rejected = rejected
	report.RecordsProcessed = valid.Size()
	if len(rejected) > 0 {
		log.Warnw("Records rejected during validation", "count", len(rejected))
	}

	if err := o.prewarm(ctx, valid); err != nil {
		return o.fail(ctx, log, report, classifyStorageError("lookup prewarm", err))
	}

	err := o.warehouse.RunInTransaction(ctx, func(tx WarehouseTx) error {
		resolver := NewDimensionResolver(tx, o.lookups)
		temporal := NewTemporalKeyBuilder(tx)

		resolved, resolveRejects, err := o.resolveKeys(ctx, valid, resolver, temporal)
		if err != nil {
			return err
		}
		report.Rejected = append(report.Rejected, resolveRejects...)
		report.RecordsProcessed -= len(resolveRejects)

		aircraftCreated, peopleCreated := resolver.Created()
		monthsCreated, periodsCreated := temporal.Created()
		report.DimensionsCreated[DimAircraft] = aircraftCreated
		report.DimensionsCreated[DimPeople] = peopleCreated
		report.DimensionsCreated[DimMonths] = monthsCreated
		report.DimensionsCreated[DimTemporal] = periodsCreated

		utilRows, logbookRows := o.aggregator.Aggregate(resolved)

		for _, row := range utilRows {
			inserted, err := tx.UpsertUtilization(ctx, row)
			if err != nil {
				return err
			}
			if inserted {
				report.FactsInserted[FactUtilization]++
			} else {
				report.FactsUpdated[FactUtilization]++
			}
		}

		for _, row := range logbookRows {
			inserted, err := tx.UpsertLogbook(ctx, row)
			if err != nil {
				return err
			}
			if inserted {
				report.FactsInserted[FactLogbook]++
			} else {
				report.FactsUpdated[FactLogbook]++
			}
		}

		return nil
	})
	if err != nil {
		return o.fail(ctx, log, report, classifyStorageError("load transaction", err))
	}

	report.FinishedAt = time.Now().UTC()
	report.Status = constants.RunStatusSuccess
	o.observe(report, batch)
	o.finishRunLog(ctx, log, report)

	log.Infow("Load finished",
		"records_processed", report.RecordsProcessed,
		"records_rejected", len(report.Rejected),
		"dimensions_created", report.TotalDimensionsCreated(),
		"facts_inserted", report.TotalFactsInserted(),
		"facts_updated", report.TotalFactsUpdated(),
		"duration", report.FinishedAt.Sub(report.StartedAt).String(),
	)

	return report, nil
}

// resolveKeys walks the validated batch and attaches surrogate keys to
// every record. Validation failures raised during resolution (e.g. a
// lookup row with empty attributes) reject the record and continue; any
// other error aborts the transaction.
func (o *LoadOrchestrator) resolveKeys(
	ctx context.Context,
	batch *models.RecordBatch,
	resolver *DimensionResolver,
	temporal *TemporalKeyBuilder,
) (*models.ResolvedBatch, []entities.RejectedRecord, error) {
	resolved := &models.ResolvedBatch{}
	var rejects []entities.RejectedRecord

	handle := func(recordType string, index int, err error) (bool, error) {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			rejects = append(rejects, entities.RejectedRecord{
				RecordType: recordType,
				Index:      index,
				Reason:     vErr.Code,
				Message:    constants.GetRejectMessage(vErr.Code),
			})
			return true, nil
		}
		return false, err
	}

	for i, rec := range batch.Flights {
		aircraftID, err := resolver.AircraftKey(ctx, rec.Registration)
		if err == nil {
			var timeID int
			timeID, err = temporal.PeriodKey(ctx, rec.ScheduledDeparture)
			if err == nil {
				resolved.Flights = append(resolved.Flights, models.ResolvedFlight{
					FlightRecord: rec, TimeID: timeID, AircraftID: aircraftID,
				})
				continue
			}
		}
		if skipped, err := handle("flight", i, err); !skipped {
			return nil, nil, err
		}
	}

	for i, rec := range batch.MaintenanceEvents {
		aircraftID, err := resolver.AircraftKey(ctx, rec.Registration)
		if err == nil {
			var timeID int
			timeID, err = temporal.PeriodKey(ctx, rec.StartTime)
			if err == nil {
				resolved.MaintenanceEvents = append(resolved.MaintenanceEvents, models.ResolvedMaintenance{
					MaintenanceRecord: rec, TimeID: timeID, AircraftID: aircraftID,
				})
				continue
			}
		}
		if skipped, err := handle("maintenance", i, err); !skipped {
			return nil, nil, err
		}
	}

	for i, rec := range batch.LogbookEntries {
		aircraftID, err := resolver.AircraftKey(ctx, rec.Registration)
		if err == nil {
			var personID int
			personID, err = resolver.PersonKey(ctx, rec.ReporteurID, rec.ReporteurClass)
			if err == nil {
				var monthID int
				monthID, err = temporal.MonthKey(ctx, rec.ReportingDate)
				if err == nil {
					resolved.LogbookEntries = append(resolved.LogbookEntries, models.ResolvedLogbook{
						LogbookRecord: rec, MonthID: monthID, PersonID: personID, AircraftID: aircraftID,
					})
					continue
				}
			}
		}
		if skipped, err := handle("logbook", i, err); !skipped {
			return nil, nil, err
		}
	}

	return resolved, rejects, nil
}

func (o *LoadOrchestrator) prewarm(ctx context.Context, batch *models.RecordBatch) error {
	registrations := make([]string, 0, batch.Size())
	for _, rec := range batch.Flights {
		registrations = append(registrations, rec.Registration)
	}
	for _, rec := range batch.MaintenanceEvents {
		registrations = append(registrations, rec.Registration)
	}
	reporteurs := make([]string, 0, len(batch.LogbookEntries))
	for _, rec := range batch.LogbookEntries {
		registrations = append(registrations, rec.Registration)
		reporteurs = append(reporteurs, rec.ReporteurID)
	}

	return o.lookups.Prewarm(ctx, registrations, reporteurs)
}

func (o *LoadOrchestrator) fail(ctx context.Context, log *zap.SugaredLogger, report *entities.LoadReport, err error) (*entities.LoadReport, error) {
	report.FinishedAt = time.Now().UTC()
	report.Status = constants.RunStatusFailed
	report.Error = err.Error()

	if o.metrics != nil {
		o.metrics.LoadsTotal.WithLabelValues(string(constants.RunStatusFailed)).Inc()
	}

	log.Errorw("Load failed, batch rolled back", "error", err.Error())
	o.finishRunLog(ctx, log, report)
	return report, err
}

func (o *LoadOrchestrator) finishRunLog(ctx context.Context, log *zap.SugaredLogger, report *entities.LoadReport) {
	if o.runLog == nil {
		return
	}
	if err := o.runLog.Finish(ctx, report); err != nil {
		log.Warnw("Failed to record run completion", "error", err.Error())
	}
}

func (o *LoadOrchestrator) observe(report *entities.LoadReport, batch *models.RecordBatch) {
	if o.metrics == nil {
		return
	}

	o.metrics.LoadsTotal.WithLabelValues(string(constants.RunStatusSuccess)).Inc()
	o.metrics.LoadDuration.Observe(report.FinishedAt.Sub(report.StartedAt).Seconds())

	o.metrics.RecordsProcessedTotal.WithLabelValues("flight").Add(float64(len(batch.Flights)))
	o.metrics.RecordsProcessedTotal.WithLabelValues("maintenance").Add(float64(len(batch.MaintenanceEvents)))
	o.metrics.RecordsProcessedTotal.WithLabelValues("logbook").Add(float64(len(batch.LogbookEntries)))

	for _, rej := range report.Rejected {
		o.metrics.RecordsRejectedTotal.WithLabelValues(rej.Reason).Inc()
	}
	for dim, n := range report.DimensionsCreated {
		o.metrics.DimensionRowsCreated.WithLabelValues(dim).Add(float64(n))
	}
	for fact, n := range report.FactsInserted {
		o.metrics.FactRowsTotal.WithLabelValues(fact, "insert").Add(float64(n))
	}
	for fact, n := range report.FactsUpdated {
		o.metrics.FactRowsTotal.WithLabelValues(fact, "update").Add(float64(n))
	}
}
