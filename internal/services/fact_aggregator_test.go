package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aerometrics/fleetdw/internal/constants"
	"aerometrics/fleetdw/internal/models"
)

func resolvedFlight(timeID, aircraftID int, rec models.FlightRecord) models.ResolvedFlight {
	return models.ResolvedFlight{FlightRecord: rec, TimeID: timeID, AircraftID: aircraftID}
}

func TestAggregate_SumsMeasuresPerGrain(t *testing.T) {
	agg := NewFactAggregator()

	batch := &models.ResolvedBatch{
		Flights: []models.ResolvedFlight{
			resolvedFlight(1, 10, models.FlightRecord{
				Registration:       "EC-MYT",
				ScheduledDeparture: ts("2024-01-10T08:00:00Z"),
				ActualDeparture:    tsp("2024-01-10T08:30:00Z"),
				ActualArrival:      tsp("2024-01-10T18:30:00Z"),
				DelayCode:          strp("93"),
			}),
			resolvedFlight(1, 10, models.FlightRecord{
				Registration:       "EC-MYT",
				ScheduledDeparture: ts("2024-01-12T09:00:00Z"),
				ActualDeparture:    tsp("2024-01-12T09:00:00Z"),
				ActualArrival:      tsp("2024-01-12T14:00:00Z"),
			}),
			resolvedFlight(1, 10, models.FlightRecord{
				Registration:       "EC-MYT",
				ScheduledDeparture: ts("2024-01-20T10:00:00Z"),
				Cancelled:          true,
			}),
		},
		MaintenanceEvents: []models.ResolvedMaintenance{
			{MaintenanceRecord: models.MaintenanceRecord{Kind: constants.MaintenanceKindRevision}, TimeID: 1, AircraftID: 10},
			{MaintenanceRecord: models.MaintenanceRecord{Kind: constants.MaintenanceKindSafety}, TimeID: 1, AircraftID: 10},
			{MaintenanceRecord: models.MaintenanceRecord{Kind: constants.MaintenanceKindAircraftOnGround}, TimeID: 1, AircraftID: 10},
		},
	}

	utilRows, logbookRows := agg.Aggregate(batch)

	require.Len(t, utilRows, 1)
	require.Empty(t, logbookRows)

	row := utilRows[0]
	assert.Equal(t, 1, row.TimeID)
	assert.Equal(t, 10, row.AircraftID)
	assert.InDelta(t, 15.0, row.FlightHours, 1e-9)
	assert.Equal(t, 2, row.FlightCycles, "cancelled flight must not count as a cycle")
	assert.Equal(t, 1, row.Cancellations)
	assert.Equal(t, 1, row.Delays)
	assert.InDelta(t, 30.0, row.DelayedMinutes, 1e-9)
	assert.Equal(t, 1, row.ScheduledOutOfService)
	assert.Equal(t, 2, row.UnscheduledOutOfService)
}

func TestAggregate_DelayedMinutesOnlyWithDelayCode(t *testing.T) {
	agg := NewFactAggregator()

	// Departure slipped 45 minutes but no delay code was filed
	batch := &models.ResolvedBatch{
		Flights: []models.ResolvedFlight{
			resolvedFlight(1, 10, models.FlightRecord{
				Registration:       "EC-MYT",
				ScheduledDeparture: ts("2024-01-10T08:00:00Z"),
				ActualDeparture:    tsp("2024-01-10T08:45:00Z"),
				ActualArrival:      tsp("2024-01-10T12:45:00Z"),
			}),
		},
	}

	utilRows, _ := agg.Aggregate(batch)

	require.Len(t, utilRows, 1)
	assert.Equal(t, 0, utilRows[0].Delays)
	assert.Zero(t, utilRows[0].DelayedMinutes)
}

func TestAggregate_EarlyDepartureClampedToZero(t *testing.T) {
	agg := NewFactAggregator()

	batch := &models.ResolvedBatch{
		Flights: []models.ResolvedFlight{
			resolvedFlight(1, 10, models.FlightRecord{
				Registration:       "EC-MYT",
				ScheduledDeparture: ts("2024-01-10T08:00:00Z"),
				ActualDeparture:    tsp("2024-01-10T07:50:00Z"),
				ActualArrival:      tsp("2024-01-10T11:50:00Z"),
				DelayCode:          strp("06"),
			}),
		},
	}

	utilRows, _ := agg.Aggregate(batch)

	require.Len(t, utilRows, 1)
	assert.Equal(t, 1, utilRows[0].Delays)
	assert.Zero(t, utilRows[0].DelayedMinutes, "early departure must not yield negative delayed minutes")
}

func TestAggregate_ZeroActivityEmitsZeroRow(t *testing.T) {
	agg := NewFactAggregator()

	batch := &models.ResolvedBatch{
		Flights: []models.ResolvedFlight{
			resolvedFlight(3, 7, models.FlightRecord{
				Registration:       "EC-NBX",
				ScheduledDeparture: ts("2024-02-01T00:00:00Z"),
				ZeroActivity:       true,
			}),
		},
	}

	utilRows, _ := agg.Aggregate(batch)

	require.Len(t, utilRows, 1, "explicit zero-activity record must still emit its grain")
	row := utilRows[0]
	assert.Equal(t, 3, row.TimeID)
	assert.Equal(t, 7, row.AircraftID)
	assert.Zero(t, row.FlightHours)
	assert.Zero(t, row.FlightCycles)
	assert.Zero(t, row.Cancellations)
}

func TestAggregate_NoRecordsNoRows(t *testing.T) {
	agg := NewFactAggregator()

	utilRows, logbookRows := agg.Aggregate(&models.ResolvedBatch{})

	assert.Empty(t, utilRows, "grain with no records yields no row")
	assert.Empty(t, logbookRows)
}

func TestAggregate_LogbookCounterPerGrain(t *testing.T) {
	agg := NewFactAggregator()

	entry := func(monthID, personID, aircraftID int) models.ResolvedLogbook {
		return models.ResolvedLogbook{MonthID: monthID, PersonID: personID, AircraftID: aircraftID}
	}

	batch := &models.ResolvedBatch{
		LogbookEntries: []models.ResolvedLogbook{
			entry(1, 5, 10),
			entry(1, 5, 10),
			entry(1, 5, 10),
			entry(1, 6, 10),
			entry(2, 5, 10),
		},
	}

	_, logbookRows := agg.Aggregate(batch)

	require.Len(t, logbookRows, 3)
	assert.Equal(t, 3, logbookRows[0].Counter)
	assert.Equal(t, 6, logbookRows[1].PersonID)
	assert.Equal(t, 1, logbookRows[1].Counter)
	assert.Equal(t, 2, logbookRows[2].MonthID)
	assert.Equal(t, 1, logbookRows[2].Counter)
}

func TestAggregate_Deterministic(t *testing.T) {
	agg := NewFactAggregator()

	batch := &models.ResolvedBatch{
		Flights: []models.ResolvedFlight{
			resolvedFlight(2, 20, models.FlightRecord{
				ScheduledDeparture: ts("2024-03-02T08:00:00Z"),
				ActualDeparture:    tsp("2024-03-02T08:00:00Z"),
				ActualArrival:      tsp("2024-03-02T09:30:00Z"),
			}),
			resolvedFlight(1, 10, models.FlightRecord{
				ScheduledDeparture: ts("2024-01-02T08:00:00Z"),
				ActualDeparture:    tsp("2024-01-02T08:00:00Z"),
				ActualArrival:      tsp("2024-01-02T09:00:00Z"),
			}),
			resolvedFlight(1, 30, models.FlightRecord{
				ScheduledDeparture: ts("2024-01-03T08:00:00Z"),
				ActualDeparture:    tsp("2024-01-03T08:00:00Z"),
				ActualArrival:      tsp("2024-01-03T09:00:00Z"),
			}),
		},
	}

	first, _ := agg.Aggregate(batch)
	second, _ := agg.Aggregate(batch)

	require.Equal(t, first, second, "same input set must aggregate identically")
	assert.Equal(t, 1, first[0].TimeID)
	assert.Equal(t, 10, first[0].AircraftID)
	assert.Equal(t, 30, first[1].AircraftID)
	assert.Equal(t, 2, first[2].TimeID)
}
