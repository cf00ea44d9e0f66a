package models

import (
	"time"

	"aerometrics/fleetdw/internal/constants"
)

// RecordBatch is the cleaned, typed input for one load window. The
// extraction connectors produce it; heterogeneous source shapes are
// normalized into these records before they reach the load engine.
type RecordBatch struct {
	Flights           []FlightRecord      `json:"flights"`
	MaintenanceEvents []MaintenanceRecord `json:"maintenance_events"`
	LogbookEntries    []LogbookRecord     `json:"logbook_entries"`
}

// Size returns the total number of records in the batch
func (b *RecordBatch) Size() int {
	return len(b.Flights) + len(b.MaintenanceEvents) + len(b.LogbookEntries)
}

// FlightRecord is one scheduled flight slot for an aircraft. Actual times
// are absent for cancelled flights.
type FlightRecord struct {
	Registration       string     `json:"registration"`
	ScheduledDeparture time.Time  `json:"scheduled_departure"`
	ScheduledArrival   time.Time  `json:"scheduled_arrival"`
	ActualDeparture    *time.Time `json:"actual_departure,omitempty"`
	ActualArrival      *time.Time `json:"actual_arrival,omitempty"`
	Cancelled          bool       `json:"cancelled"`
	DelayCode          *string    `json:"delay_code,omitempty"`

	// ZeroActivity marks an explicitly reported no-activity period for the
	// aircraft. It yields a fact row with zero measures, unlike a grain
	// with no records at all, which yields no row.
	ZeroActivity bool `json:"zero_activity,omitempty"`
}

// MaintenanceRecord is one out-of-service event for an aircraft
type MaintenanceRecord struct {
	Registration    string                    `json:"registration"`
	StartTime       time.Time                 `json:"start_time"`
	DurationMinutes float64                   `json:"duration_minutes"`
	Kind            constants.MaintenanceKind `json:"kind"`
}

// LogbookRecord is one technical logbook entry filed by a reporteur
// against an aircraft
type LogbookRecord struct {
	Registration   string                   `json:"registration"`
	ReporteurID    string                   `json:"reporteur_id"`
	ReporteurClass constants.ReporteurClass `json:"reporteur_class"`
	ReportingDate  time.Time                `json:"reporting_date"`
}
