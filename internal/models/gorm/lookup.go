package gorm

// AircraftLookup maps a tail registration to its airframe attributes.
// Maintained by the fleet master-data process; read-only for the loader.
type AircraftLookup struct {
	Registration string `gorm:"column:registration;primaryKey;type:varchar(10)"`
	Model        string `gorm:"column:model;type:varchar(100);not null"`
	Manufacturer string `gorm:"column:manufacturer;type:varchar(100);not null"`
}

// TableName specifies the table name for GORM
func (AircraftLookup) TableName() string {
	return "aircraft_lookup"
}

// PersonnelLookup maps a reporteur identifier to their home airport
type PersonnelLookup struct {
	ReporteurID string `gorm:"column:reporteur_id;primaryKey;type:varchar(50)"`
	Airport     string `gorm:"column:airport;type:varchar(10);not null"`
}

// TableName specifies the table name for GORM
func (PersonnelLookup) TableName() string {
	return "personnel_lookup"
}
