package models

// Resolved records pair a cleaned source record with the surrogate keys
// produced by dimension and temporal resolution. They are the fact
// aggregator's input.

type ResolvedFlight struct {
	FlightRecord
	TimeID     int
	AircraftID int
}

type ResolvedMaintenance struct {
	MaintenanceRecord
	TimeID     int
	AircraftID int
}

type ResolvedLogbook struct {
	LogbookRecord
	MonthID    int
	PersonID   int
	AircraftID int
}

// ResolvedBatch holds every record that survived validation and key
// resolution for one load window
type ResolvedBatch struct {
	Flights           []ResolvedFlight
	MaintenanceEvents []ResolvedMaintenance
	LogbookEntries    []ResolvedLogbook
}
