package constants

type (
	ReporteurClass  string
	MaintenanceKind string
	RunStatus       string
)

const (
	// Reporteur classes as they arrive from the logbook source
	ReporteurClassMarep ReporteurClass = "MAREP"
	ReporteurClassPirep ReporteurClass = "PIREP"

	// Warehouse role codes the classes normalize to
	RoleMaintenance = "M"
	RolePilot       = "P"

	// Attribute used when a natural key has no lookup match
	UnknownAttribute = "UNK"
)

const (
	MaintenanceKindMaintenance      MaintenanceKind = "Maintenance"
	MaintenanceKindRevision         MaintenanceKind = "Revision"
	MaintenanceKindDelay            MaintenanceKind = "Delay"
	MaintenanceKindAircraftOnGround MaintenanceKind = "AircraftOnGround"
	MaintenanceKindSafety           MaintenanceKind = "Safety"
)

// ScheduledOutOfServiceKinds lists the maintenance kinds counted as
// scheduled out-of-service events; everything else in the known set is
// unscheduled.
var ScheduledOutOfServiceKinds = map[MaintenanceKind]bool{
	MaintenanceKindMaintenance: true,
	MaintenanceKindRevision:    true,
}

var KnownMaintenanceKinds = map[MaintenanceKind]bool{
	MaintenanceKindMaintenance:      true,
	MaintenanceKindRevision:         true,
	MaintenanceKindDelay:            true,
	MaintenanceKindAircraftOnGround: true,
	MaintenanceKindSafety:           true,
}

// Run statuses for the etl_runs table
const (
	RunStatusInProgress RunStatus = "in_progress"
	RunStatusSuccess    RunStatus = "success"
	RunStatusFailed     RunStatus = "failed"
)

// Timestamps outside this window are treated as corrupt source data.
const (
	MinTimestampYear = 1950
	MaxTimestampYear = 2100
)
