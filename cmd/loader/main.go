package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"aerometrics/fleetdw/internal/common"
	"aerometrics/fleetdw/internal/config"
	"aerometrics/fleetdw/internal/db"
	"aerometrics/fleetdw/internal/db/repositories"
	"aerometrics/fleetdw/internal/logging"
	"aerometrics/fleetdw/internal/models"
	"aerometrics/fleetdw/internal/services"
)

// One-shot batch loader: reads a cleaned record batch from a JSON file,
// runs a single load, prints the report, and exits non-zero on failure.
func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	configPath := flag.String("config", "", "path to YAML config; environment variables are used when omitted")
	batchPath := flag.String("file", "", "path to the record batch JSON file (required)")
	timeout := flag.Duration("timeout", 30*time.Minute, "overall load timeout")
	flag.Parse()

	if *batchPath == "" {
		flag.Usage()
		os.Exit(2)
	}

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

	batch, err := readBatch(*batchPath)
	if err != nil {
		log.Fatalf("Failed to read record batch: %v", err)
	}

	warehouseDB, err := db.ConnectWarehouse(cfg.Warehouse.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to warehouse: %v", err)
	}
	defer warehouseDB.Close()

	lookupDB, err := db.ConnectLookupStore(cfg.Lookup.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to lookup store: %v", err)
	}

	lookupCache := common.NewCacheService(cfg.Cache.TTLSeconds, cfg.Cache.CleanupSeconds, nil, "lookup")
	lookupSvc := services.NewLookupService(repositories.NewLookupRepository(lookupDB), lookupCache)

	orchestrator := services.NewLoadOrchestrator(
		repositories.NewWarehouse(warehouseDB),
		lookupSvc,
		repositories.NewRunLogRepository(warehouseDB),
		nil,
	)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	report, loadErr := orchestrator.Load(ctx, batch)

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal load report: %v", err)
	}
	os.Stdout.Write(out)
	os.Stdout.WriteString("\n")

	if loadErr != nil {
		logging.Error("Load failed", "error", loadErr.Error())
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.FromEnv(), nil
}

func readBatch(path string) (*models.RecordBatch, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var batch models.RecordBatch
	if err := json.Unmarshal(raw, &batch); err != nil {
		return nil, err
	}
	return &batch, nil
}
