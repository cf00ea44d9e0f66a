package entities

import "time"

// Dimension rows are append-only reference data: created lazily on first
// reference during a load, never updated or deleted.

type AircraftDimension struct {
	ID           int    `db:"id"`
	Model        string `db:"model"`
	Manufacturer string `db:"manufacturer"`
}

type PeopleDimension struct {
	ID        int    `db:"id"`
	PersonRef string `db:"person_ref"`
	Role      string `db:"role"`
	Airport   string `db:"airport"`
}

type Month struct {
	ID    int `db:"id"`
	Year  int `db:"y"`
	Month int `db:"m"`
}

type TemporalDimension struct {
	ID          int       `db:"id"`
	MonthID     int       `db:"monthid"`
	PeriodStart time.Time `db:"period_start"`
}

// AircraftUtilizationFact is one row of the AicraftUtilization fact table
// at (reporting period, aircraft) grain
type AircraftUtilizationFact struct {
	TimeID                  int     `db:"timeid"`
	AircraftID              int     `db:"aircraftid"`
	FlightHours             float64 `db:"flighthours"`
	FlightCycles            int     `db:"flightcycles"`
	Delays                  int     `db:"delays"`
	Cancellations           int     `db:"cancellations"`
	DelayedMinutes          float64 `db:"delayedminutes"`
	ScheduledOutOfService   int     `db:"scheduledoutofservice"`
	UnscheduledOutOfService int     `db:"unscheduledoutofservice"`
}

// LogbookReportingFact is one row of the LogbookReporting fact table at
// (month, person, aircraft) grain
type LogbookReportingFact struct {
	MonthID    int `db:"monthid"`
	PersonID   int `db:"personid"`
	AircraftID int `db:"aircraftid"`
	Counter    int `db:"counter"`
}
