package entities

import (
	"time"

	"aerometrics/fleetdw/internal/constants"
)

// RejectedRecord describes one record dropped during validation
type RejectedRecord struct {
	RecordType string `json:"record_type"`
	Index      int    `json:"index"`
	Reason     string `json:"reason"`
	Message    string `json:"message"`
}

// LoadReport is the structured summary returned by one load invocation
type LoadReport struct {
	RunID      string              `json:"run_id"`
	StartedAt  time.Time           `json:"started_at"`
	FinishedAt time.Time           `json:"finished_at"`
	Status     constants.RunStatus `json:"status"`

	RecordsProcessed  int            `json:"records_processed"`
	DimensionsCreated map[string]int `json:"dimensions_created"`
	FactsInserted     map[string]int `json:"facts_inserted"`
	FactsUpdated      map[string]int `json:"facts_updated"`

	Rejected []RejectedRecord `json:"rejected"`

	Error string `json:"error,omitempty"`
}

// NewLoadReport initializes an empty report for a run
func NewLoadReport(runID string, startedAt time.Time) *LoadReport {
	return &LoadReport{
		RunID:             runID,
		StartedAt:         startedAt,
		Status:            constants.RunStatusInProgress,
		DimensionsCreated: make(map[string]int),
		FactsInserted:     make(map[string]int),
		FactsUpdated:      make(map[string]int),
	}
}

// TotalDimensionsCreated sums dimension rows created across all dimensions
func (r *LoadReport) TotalDimensionsCreated() int {
	total := 0
	for _, n := range r.DimensionsCreated {
		total += n
	}
	return total
}

// TotalFactsInserted sums inserted fact rows across both fact tables
func (r *LoadReport) TotalFactsInserted() int {
	total := 0
	for _, n := range r.FactsInserted {
		total += n
	}
	return total
}

// TotalFactsUpdated sums updated fact rows across both fact tables
func (r *LoadReport) TotalFactsUpdated() int {
	total := 0
	for _, n := range r.FactsUpdated {
		total += n
	}
	return total
}

// RunLog is one row of the etl_runs audit table
type RunLog struct {
	RunID             string     `db:"run_id"`
	StartedAt         time.Time  `db:"started_at"`
	FinishedAt        *time.Time `db:"finished_at"`
	Status            string     `db:"status"`
	RecordsProcessed  int        `db:"records_processed"`
	RecordsRejected   int        `db:"records_rejected"`
	DimensionsCreated int        `db:"dimensions_created"`
	FactsInserted     int        `db:"facts_inserted"`
	FactsUpdated      int        `db:"facts_updated"`
	ErrorMessage      *string    `db:"error_message"`
}
