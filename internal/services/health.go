package services

import (
	"github.com/adintl/catalog-api/internal/config"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	ImageHost    string            `json:"imageHost"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthCheck probes database connectivity and reports whether the image
// host is configured
func HealthCheck(cfg *config.Config, db *gorm.DB) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	sqlDB, err := db.DB()
	if err != nil {
		result.Status = "unhealthy"
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		result.ErrorMessage = err.Error()
		return result
	}

	if err := sqlDB.Ping(); err != nil {
		result.Status = "unhealthy"
		result.Database = "unreachable"
		result.Details["database_error"] = err.Error()
		result.ErrorMessage = err.Error()
		return result
	}
	result.Database = "connected"

	if cfg.CloudinaryCloudName != "" {
		result.ImageHost = "configured"
	} else {
		result.ImageHost = "not configured"
	}

	return result
}
