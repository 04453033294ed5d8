package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/amirhossein-jamali/transaction-processor/internal/domain/error"
	coreport "github.com/amirhossein-jamali/transaction-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/transaction-processor/internal/infrastructure/adapter/api/dto"
)

// HealthCheck checks one dependency
type HealthCheck func(ctx context.Context) error

// HealthHandler serves the liveness endpoint
type HealthHandler struct {
	checks []HealthCheck
	logger coreport.Logger
}

// NewHealthHandler creates a health handler running the given checks on every request
func NewHealthHandler(logger coreport.Logger, checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{
		checks: checks,
		logger: logger,
	}
}

// Health handles the GET /health endpoint
func (h *HealthHandler) Health(c *gin.Context) {
	for _, check := range h.checks {
		if err := check(c.Request.Context()); err != nil {
			h.logger.Error("Health check failed", map[string]any{
				"error": err.Error(),
			})
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
				Error: domainerr.KindInternal,
				Code:  domainerr.CodeInternalServer,
			})
			return
		}
	}

	h.logger.Debug("Health check", map[string]any{"status": "ok"})
	c.JSON(http.StatusOK, dto.HealthResponse{OK: true})
}
