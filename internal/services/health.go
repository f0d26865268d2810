package services

import (
	"fmt"

	"github.com/mkidawa/smAIcznego/internal/config"
	"github.com/mkidawa/smAIcznego/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Model        string            `json:"model"`
	Authorizer   string            `json:"authorizer"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthCheck performs a comprehensive health check of the service
func HealthCheck(cfg *config.Config, db *gorm.DB, log *zap.Logger) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	// Check database connectivity
	sqlDB, err := db.DB()
	if err != nil {
		result.Status = "unhealthy"
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database connection error: %v", err)
		log.Warn("health check failed, database connection", zap.Error(err))
	} else {
		if err := sqlDB.Ping(); err != nil {
			result.Status = "unhealthy"
			result.Database = "unreachable"
			result.Details["database_ping_error"] = err.Error()
			result.ErrorMessage = fmt.Sprintf("Database ping failed: %v", err)
			log.Warn("health check failed, database ping", zap.Error(err))
		} else {
			result.Database = "ok"
			result.Details["database_type"] = cfg.DBType
			result.Details["database_name"] = cfg.DBDatabase
		}
	}

	// Check the model endpoint
	if err := utils.PingOpenRouter(cfg.OpenRouterURL); err != nil {
		result.Status = "unhealthy"
		result.Model = "unreachable"
		result.Details["model_error"] = err.Error()
		appendHealthError(&result, fmt.Sprintf("OpenRouter ping failed: %v", err))
		log.Warn("health check failed, openrouter ping", zap.Error(err))
	} else {
		result.Model = "ok"
		result.Details["model_name"] = cfg.OpenRouterModel
	}

	// Check Authorizer connectivity
	if err := utils.PingAuthorizer(cfg.AuthzURL); err != nil {
		result.Status = "unhealthy"
		result.Authorizer = "unreachable"
		result.Details["authorizer_error"] = err.Error()
		appendHealthError(&result, fmt.Sprintf("Authorizer ping failed: %v", err))
		log.Warn("health check failed, authorizer ping", zap.Error(err))
	} else {
		result.Authorizer = "ok"
		result.Details["authorizer_url"] = cfg.AuthzURL
	}

	if result.Status == "healthy" {
		log.Info("health check passed")
	}

	return result
}

func appendHealthError(result *HealthCheckResult, message string) {
	if result.ErrorMessage == "" {
		result.ErrorMessage = message
	} else {
		result.ErrorMessage += "; " + message
	}
}
