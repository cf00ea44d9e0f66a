package services

import (
	"sort"

	"aerometrics/fleetdw/internal/constants"
	"aerometrics/fleetdw/internal/models"
	"aerometrics/fleetdw/internal/models/entities"
)

type utilizationGrain struct {
	timeID     int
	aircraftID int
}

type logbookGrain struct {
	monthID    int
	personID   int
	aircraftID int
}

// FactAggregator folds resolved records into one fact row per grain.
// Aggregation is order-independent: numeric measures sum and count
// measures increment once per qualifying record, so the same input set
// always produces the same rows. Output is sorted by grain key to keep
// runs bit-identical.
type FactAggregator struct{}

func NewFactAggregator() *FactAggregator {
	return &FactAggregator{}
}

// Aggregate produces the utilization and logbook fact rows for a resolved
// batch. Grains no record qualified for are absent; an explicit
// zero-activity record still emits its grain with zero measures.
func (a *FactAggregator) Aggregate(batch *models.ResolvedBatch) ([]entities.AircraftUtilizationFact, []entities.LogbookReportingFact) {
	utilization := make(map[utilizationGrain]*entities.AircraftUtilizationFact)

	grainFor := func(timeID, aircraftID int) *entities.AircraftUtilizationFact {
		key := utilizationGrain{timeID: timeID, aircraftID: aircraftID}
		row, ok := utilization[key]
		if !ok {
			row = &entities.AircraftUtilizationFact{TimeID: timeID, AircraftID: aircraftID}
			utilization[key] = row
		}
		return row
	}

	for _, f := range batch.Flights {
		row := grainFor(f.TimeID, f.AircraftID)
		if f.ZeroActivity {
			// Emits the grain; all measures stay zero
			continue
		}

		row.FlightHours += flightHours(f.FlightRecord)

		if f.Cancelled {
			row.Cancellations++
		} else {
			row.FlightCycles++
		}

		if f.DelayCode != nil {
			row.Delays++
			row.DelayedMinutes += delayedMinutes(f.FlightRecord)
		}
	}

	for _, m := range batch.MaintenanceEvents {
		row := grainFor(m.TimeID, m.AircraftID)
		if constants.ScheduledOutOfServiceKinds[m.Kind] {
			row.ScheduledOutOfService++
		} else {
			row.UnscheduledOutOfService++
		}
	}

	logbook := make(map[logbookGrain]*entities.LogbookReportingFact)
	for _, l := range batch.LogbookEntries {
		key := logbookGrain{monthID: l.MonthID, personID: l.PersonID, aircraftID: l.AircraftID}
		row, ok := logbook[key]
		if !ok {
			row = &entities.LogbookReportingFact{MonthID: l.MonthID, PersonID: l.PersonID, AircraftID: l.AircraftID}
			logbook[key] = row
		}
		row.Counter++
	}

	utilRows := make([]entities.AircraftUtilizationFact, 0, len(utilization))
	for _, row := range utilization {
		utilRows = append(utilRows, *row)
	}
	sort.Slice(utilRows, func(i, j int) bool {
		if utilRows[i].TimeID != utilRows[j].TimeID {
			return utilRows[i].TimeID < utilRows[j].TimeID
		}
		return utilRows[i].AircraftID < utilRows[j].AircraftID
	})

	logbookRows := make([]entities.LogbookReportingFact, 0, len(logbook))
	for _, row := range logbook {
		logbookRows = append(logbookRows, *row)
	}
	sort.Slice(logbookRows, func(i, j int) bool {
		a, b := logbookRows[i], logbookRows[j]
		if a.MonthID != b.MonthID {
			return a.MonthID < b.MonthID
		}
		if a.PersonID != b.PersonID {
			return a.PersonID < b.PersonID
		}
		return a.AircraftID < b.AircraftID
	})

	return utilRows, logbookRows
}

// flightHours measures block time from the actuals. Flights without
// actual times (cancellations) contribute zero hours.
func flightHours(f models.FlightRecord) float64 {
	if f.ActualDeparture == nil || f.ActualArrival == nil {
		return 0
	}
	hours := f.ActualArrival.Sub(*f.ActualDeparture).Hours()
	if hours < 0 {
		return 0
	}
	return hours
}

// delayedMinutes measures how far the actual departure slipped past the
// scheduled one. Only called for flights carrying a delay code; clamped
// at zero so early departures cannot produce a negative measure.
func delayedMinutes(f models.FlightRecord) float64 {
	if f.ActualDeparture == nil {
		return 0
	}
	minutes := f.ActualDeparture.Sub(f.ScheduledDeparture).Minutes()
	if minutes < 0 {
		return 0
	}
	return minutes
}
