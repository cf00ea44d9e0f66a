package constants

// Dimension find-or-create. The insert relies on the natural-key unique
// constraints as the serialization point: a concurrent resolver racing on
// the same key gets zero rows back and falls through to the select.
const (
	InsertAircraftDimension = `
	INSERT INTO AircraftDimension (model, manufacturer)
	VALUES ($1, $2)
	ON CONFLICT (model, manufacturer) DO NOTHING
	RETURNING ID
	`

	SelectAircraftDimension = `
	SELECT ID FROM AircraftDimension WHERE model = $1 AND manufacturer = $2
	`

	InsertPeopleDimension = `
	INSERT INTO PeopleDimension (person_ref, role, airport)
	VALUES ($1, $2, $3)
	ON CONFLICT (person_ref, role, airport) DO NOTHING
	RETURNING ID
	`

	SelectPeopleDimension = `
	SELECT ID FROM PeopleDimension WHERE person_ref = $1 AND role = $2 AND airport = $3
	`

	InsertMonth = `
	INSERT INTO Months (y, m)
	VALUES ($1, $2)
	ON CONFLICT (y, m) DO NOTHING
	RETURNING ID
	`

	SelectMonth = `
	SELECT ID FROM Months WHERE y = $1 AND m = $2
	`

	InsertTemporalDimension = `
	INSERT INTO TemporalDimension (monthID, period_start)
	VALUES ($1, $2)
	ON CONFLICT (monthID, period_start) DO NOTHING
	RETURNING ID
	`

	SelectTemporalDimension = `
	SELECT ID FROM TemporalDimension WHERE monthID = $1 AND period_start = $2
	`
)

// Fact upserts. Measures are overwritten, not accumulated: the aggregator
// recomputes each grain from the full batch, so last load wins.
const (
	UpsertAircraftUtilization = `
	INSERT INTO AicraftUtilization (
		timeID, aircraftID, flighthours, flightcycles, delays,
		cancellations, delayedminutes, scheduledoutofservice, unscheduledoutofservice
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (timeID, aircraftID) DO UPDATE SET
		flighthours             = EXCLUDED.flighthours,
		flightcycles            = EXCLUDED.flightcycles,
		delays                  = EXCLUDED.delays,
		cancellations           = EXCLUDED.cancellations,
		delayedminutes          = EXCLUDED.delayedminutes,
		scheduledoutofservice   = EXCLUDED.scheduledoutofservice,
		unscheduledoutofservice = EXCLUDED.unscheduledoutofservice
	RETURNING (xmax = 0) AS inserted
	`

	UpsertLogbookReporting = `
	INSERT INTO LogbookReporting (monthID, personID, aircraftID, counter)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (monthID, personID, aircraftID) DO UPDATE SET
		counter = EXCLUDED.counter
	RETURNING (xmax = 0) AS inserted
	`
)

// Run log
const (
	InsertRunLog = `
	INSERT INTO etl_runs (run_id, started_at, status)
	VALUES ($1, $2, $3)
	`

	UpdateRunLog = `
	UPDATE etl_runs SET
		finished_at        = $2,
		status             = $3,
		records_processed  = $4,
		records_rejected   = $5,
		dimensions_created = $6,
		facts_inserted     = $7,
		facts_updated      = $8,
		error_message      = $9
	WHERE run_id = $1
	`

	SelectLastSuccessfulRun = `
	SELECT run_id, started_at, finished_at, status, records_processed,
	       records_rejected, dimensions_created, facts_inserted, facts_updated
	FROM etl_runs
	WHERE status = 'success'
	ORDER BY finished_at DESC
	LIMIT 1
	`
)
