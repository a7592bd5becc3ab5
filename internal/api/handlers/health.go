package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/restockly/restock-dashboard/internal/session"
)

// HealthHandler provides health and readiness endpoints.
type HealthHandler struct {
	session session.Provider
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(sess session.Provider) *HealthHandler {
	return &HealthHandler{session: sess}
}

// Healthz returns 200 if the process is running.
func (*HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

// Readyz returns 200 when a usable session is present, 503 otherwise.
// Without credentials every upstream call would fail, so the instance
// should not receive traffic.
func (h *HealthHandler) Readyz(c echo.Context) error {
	if !h.session.IsAuthenticated() {
		return c.JSON(http.StatusServiceUnavailable, StatusResponse{Status: "unavailable"})
	}
	return c.JSON(http.StatusOK, StatusResponse{Status: "ready"})
}

// RegisterHealthRoutes registers the health endpoints on the Echo router.
func RegisterHealthRoutes(e *echo.Echo, h *HealthHandler) {
	e.GET("/healthz", h.Healthz)
	e.GET("/readyz", h.Readyz)
}
