package constants

// Reject reason codes reported for records dropped during validation
const (
	RejectMissingRegistration = "MISSING_REGISTRATION"
	RejectMissingReporteur    = "MISSING_REPORTEUR"
	RejectInvalidReporteur    = "INVALID_REPORTEUR_CLASS"
	RejectInvalidKind         = "INVALID_MAINTENANCE_KIND"
	RejectArrivalBeforeDep    = "ARRIVAL_BEFORE_DEPARTURE"
	RejectExcessiveDuration   = "EXCESSIVE_FLIGHT_DURATION"
	RejectNegativeDuration    = "NEGATIVE_EVENT_DURATION"
	RejectTimestampRange      = "TIMESTAMP_OUT_OF_RANGE"
	RejectMissingTimestamp    = "MISSING_TIMESTAMP"
)

var rejectMessages = map[string]string{
	RejectMissingRegistration: "Aircraft registration is empty",
	RejectMissingReporteur:    "Reporteur identifier is empty",
	RejectInvalidReporteur:    "Reporteur class is not MAREP or PIREP",
	RejectInvalidKind:         "Maintenance event kind is not recognised",
	RejectArrivalBeforeDep:    "Arrival precedes or equals departure",
	RejectExcessiveDuration:   "Flight duration exceeds 24 hours",
	RejectNegativeDuration:    "Maintenance event duration is negative",
	RejectTimestampRange:      "Timestamp falls outside the accepted range",
	RejectMissingTimestamp:    "Required timestamp is missing",
}

// GetRejectMessage returns the human readable message for a reject code
func GetRejectMessage(code string) string {
	if msg, ok := rejectMessages[code]; ok {
		return msg
	}
	return "Record failed validation"
}
