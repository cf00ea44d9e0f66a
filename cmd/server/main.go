package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"aerometrics/fleetdw/internal/api"
	"aerometrics/fleetdw/internal/common"
	"aerometrics/fleetdw/internal/config"
	"aerometrics/fleetdw/internal/db"
	"aerometrics/fleetdw/internal/db/repositories"
	"aerometrics/fleetdw/internal/logging"
	"aerometrics/fleetdw/internal/metrics"
	"aerometrics/fleetdw/internal/routes"
	"aerometrics/fleetdw/internal/services"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	configPath := flag.String("config", "", "path to YAML config; environment variables are used when omitted")
	flag.Parse()

	// Initialize structured logging
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "development"
	}

	if err := logging.Init(appEnv); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Fleet warehouse loader starting up",
		"environment", appEnv,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logging.Error("Failed to load configuration", "error", err.Error())
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to the warehouse with sqlx
	warehouseDB, err := db.ConnectWarehouse(cfg.Warehouse.DSN())
	if err != nil {
		logging.Error("Failed to connect to warehouse", "error", err.Error())
		log.Fatalf("Failed to connect to warehouse: %v", err)
	}
	logging.Info("Connected to warehouse")

	// Connect to the lookup store with GORM
	lookupDB, err := db.ConnectLookupStore(cfg.Lookup.DSN())
	if err != nil {
		logging.Error("Failed to connect to lookup store", "error", err.Error())
		log.Fatalf("Failed to connect to lookup store: %v", err)
	}
	logging.Info("Connected to lookup store")

	metricsReg := metrics.NewMetricsRegistry()

	lookupCache := common.NewCacheService(cfg.Cache.TTLSeconds, cfg.Cache.CleanupSeconds, metricsReg, "lookup")
	lookupSvc := services.NewLookupService(repositories.NewLookupRepository(lookupDB), lookupCache)
	runLogRepo := repositories.NewRunLogRepository(warehouseDB)

	orchestrator := services.NewLoadOrchestrator(
		repositories.NewWarehouse(warehouseDB),
		lookupSvc,
		runLogRepo,
		metricsReg,
	)

	handlers := api.NewHandlers(orchestrator, runLogRepo)

	upSince := time.Now()
	router := routes.RegisterRoutes(cfg, warehouseDB, lookupDB, handlers, metricsReg, upSince)

	// Metrics endpoint lives outside the Chi router
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router)
	logging.Info("Prometheus metrics endpoint registered at /metrics")

	addr := ":" + cfg.Server.Port
	logging.Info("Server starting",
		"port", cfg.Server.Port,
		"environment", appEnv,
	)

	log.Printf("Starting server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, mux))
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.FromEnv(), nil
}
