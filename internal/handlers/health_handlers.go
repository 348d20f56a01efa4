package handlers

import (
	"context"
	"net/http"
	"time"

	"bima-invoice/internal/repositories"

	"github.com/labstack/echo/v4"
)

// HealthHandlers handles liveness and readiness endpoints.
type HealthHandlers struct {
	db repositories.DB
}

func NewHealthHandlers(db repositories.DB) *HealthHandlers {
	return &HealthHandlers{db: db}
}

// HealthCheck reports process liveness.
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// ReadinessCheck verifies the store answers queries.
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	var one int
	if err := h.db.QueryRow(ctx, "SELECT 1").Scan(&one); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
			"error":  err.Error(),
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
	})
}
