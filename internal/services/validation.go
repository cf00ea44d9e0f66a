package services

import (
	"strings"
	"time"

	"aerometrics/fleetdw/internal/constants"
	"aerometrics/fleetdw/internal/models"
	"aerometrics/fleetdw/internal/models/entities"
)

// Validator applies record-level well-formedness checks at the batch
// boundary. Failed records are dropped and reported; the batch continues.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// ValidateBatch partitions a batch into records fit for loading and
// rejects with reason codes
func (v *Validator) ValidateBatch(batch *models.RecordBatch) (*models.RecordBatch, []entities.RejectedRecord) {
	valid := &models.RecordBatch{}
	var rejected []entities.RejectedRecord

	for i, rec := range batch.Flights {
		if code := v.checkFlight(rec); code != "" {
			rejected = append(rejected, reject("flight", i, code))
			continue
		}
		valid.Flights = append(valid.Flights, rec)
	}

	for i, rec := range batch.MaintenanceEvents {
		if code := v.checkMaintenance(rec); code != "" {
			rejected = append(rejected, reject("maintenance", i, code))
			continue
		}
		valid.MaintenanceEvents = append(valid.MaintenanceEvents, rec)
	}

	for i, rec := range batch.LogbookEntries {
		if code := v.checkLogbook(rec); code != "" {
			rejected = append(rejected, reject("logbook", i, code))
			continue
		}
		valid.LogbookEntries = append(valid.LogbookEntries, rec)
	}

	return valid, rejected
}

func reject(recordType string, index int, code string) entities.RejectedRecord {
	return entities.RejectedRecord{
		RecordType: recordType,
		Index:      index,
		Reason:     code,
		Message:    constants.GetRejectMessage(code),
	}
}

func (v *Validator) checkFlight(rec models.FlightRecord) string {
	if strings.TrimSpace(rec.Registration) == "" {
		return constants.RejectMissingRegistration
	}
	if rec.ScheduledDeparture.IsZero() {
		return constants.RejectMissingTimestamp
	}
	if !timestampInRange(rec.ScheduledDeparture) {
		return constants.RejectTimestampRange
	}

	// A zero-activity marker carries only the registration and the period
	if rec.ZeroActivity {
		return ""
	}

	if !rec.Cancelled {
		if !rec.ScheduledArrival.After(rec.ScheduledDeparture) {
			return constants.RejectArrivalBeforeDep
		}
		if rec.ScheduledArrival.Sub(rec.ScheduledDeparture) > 24*time.Hour {
			return constants.RejectExcessiveDuration
		}
	}

	if rec.ActualDeparture != nil && rec.ActualArrival != nil {
		if !rec.ActualArrival.After(*rec.ActualDeparture) {
			return constants.RejectArrivalBeforeDep
		}
		if rec.ActualArrival.Sub(*rec.ActualDeparture) > 24*time.Hour {
			return constants.RejectExcessiveDuration
		}
	}

	return ""
}

func (v *Validator) checkMaintenance(rec models.MaintenanceRecord) string {
	if strings.TrimSpace(rec.Registration) == "" {
		return constants.RejectMissingRegistration
	}
	if rec.StartTime.IsZero() {
		return constants.RejectMissingTimestamp
	}
	if !timestampInRange(rec.StartTime) {
		return constants.RejectTimestampRange
	}
	if !constants.KnownMaintenanceKinds[rec.Kind] {
		return constants.RejectInvalidKind
	}
	if rec.DurationMinutes < 0 {
		return constants.RejectNegativeDuration
	}
	return ""
}

func (v *Validator) checkLogbook(rec models.LogbookRecord) string {
	if strings.TrimSpace(rec.Registration) == "" {
		return constants.RejectMissingRegistration
	}
	if strings.TrimSpace(rec.ReporteurID) == "" {
		return constants.RejectMissingReporteur
	}
	if normalizeRole(rec.ReporteurClass) == "" {
		return constants.RejectInvalidReporteur
	}
	if rec.ReportingDate.IsZero() {
		return constants.RejectMissingTimestamp
	}
	if !timestampInRange(rec.ReportingDate) {
		return constants.RejectTimestampRange
	}
	return ""
}

// normalizeRole maps a source reporteur class onto the warehouse role
// code. Returns "" for unknown classes.
func normalizeRole(class constants.ReporteurClass) string {
	switch class {
	case constants.ReporteurClassMarep, constants.ReporteurClass(constants.RoleMaintenance):
		return constants.RoleMaintenance
	case constants.ReporteurClassPirep, constants.ReporteurClass(constants.RolePilot):
		return constants.RolePilot
	}
	return ""
}

func timestampInRange(ts time.Time) bool {
	year := ts.Year()
	return year >= constants.MinTimestampYear && year <= constants.MaxTimestampYear
}
