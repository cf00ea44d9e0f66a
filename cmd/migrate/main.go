package main

import (
	"flag"
	"log"
	"os"

	"aerometrics/fleetdw/internal/config"
	"aerometrics/fleetdw/internal/db"
	"aerometrics/fleetdw/internal/logging"
	gormModels "aerometrics/fleetdw/internal/models/gorm"
)

// Applies the star schema DDL to the warehouse and auto-migrates the
// lookup reference tables.
func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	configPath := flag.String("config", "", "path to YAML config; environment variables are used when omitted")
	schemaPath := flag.String("schema", "sql/star_schema.sql", "path to the star schema DDL file")
	flag.Parse()

	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "development"
	}
	if err := logging.Init(appEnv); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ddl, err := os.ReadFile(*schemaPath)
	if err != nil {
		log.Fatalf("Failed to read schema file: %v", err)
	}

	warehouseDB, err := db.ConnectWarehouse(cfg.Warehouse.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to warehouse: %v", err)
	}
	defer warehouseDB.Close()

	if _, err := warehouseDB.Exec(string(ddl)); err != nil {
		log.Fatalf("Failed to apply star schema: %v", err)
	}
	logging.Info("Star schema applied", "schema", *schemaPath)

	lookupDB, err := db.ConnectLookupStore(cfg.Lookup.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to lookup store: %v", err)
	}

	if err := lookupDB.AutoMigrate(&gormModels.AircraftLookup{}, &gormModels.PersonnelLookup{}); err != nil {
		log.Fatalf("Failed to migrate lookup tables: %v", err)
	}
	logging.Info("Lookup tables migrated")
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.FromEnv(), nil
}
