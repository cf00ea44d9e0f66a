package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"

	"aerometrics/fleetdw/internal/models/entities"
)

// HealthCheckHandler handles GET /healthCheck
func HealthCheckHandler(warehouse *sqlx.DB, lookup *gorm.DB, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		services := make(map[string]entities.ServiceStatus)

		// Check the warehouse
		dwStatus := "ok"
		dwDetails := "Warehouse connected"
		if err := warehouse.Ping(); err != nil {
			dwStatus = "down"
			dwDetails = err.Error()
		}
		services["warehouse"] = entities.ServiceStatus{
			Status:  dwStatus,
			Details: dwDetails,
		}

		// Check the lookup store
		lkStatus := "ok"
		lkDetails := "Lookup store connected"
		if sqlDB, err := lookup.DB(); err != nil {
			lkStatus = "down"
			lkDetails = err.Error()
		} else if err := sqlDB.Ping(); err != nil {
			lkStatus = "down"
			lkDetails = err.Error()
		}
		services["lookup"] = entities.ServiceStatus{
			Status:  lkStatus,
			Details: lkDetails,
		}

		overallStatus := "ok"
		for _, svc := range services {
			if svc.Status != "ok" {
				overallStatus = "down"
				break
			}
		}

		now := time.Now()
		uptime := now.Sub(upSince).Round(time.Second).String()

		resp := entities.HealthCheckResponse{
			Services: services,
			Status:   overallStatus,
			UpSince:  upSince,
			Uptime:   uptime,
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}
