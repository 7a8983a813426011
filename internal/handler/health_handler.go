package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	serviceName    = "SmartVegis API"
	serviceVersion = "1.0.0"
)

// Health godoc
// @Summary Liveness check
// @Tags system
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":    "ok",
		"message":   serviceName + " is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Root describes the service and its route groups.
func Root(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"name":    serviceName,
		"version": serviceVersion,
		"endpoints": echo.Map{
			"auth":     "/api/auth",
			"vendor":   "/api/vendor",
			"listings": "/api/listings",
			"prices":   "/api/prices",
			"uploads":  "/api/uploads",
			"store":    "/api/store",
			"health":   "/api/health",
			"docs":     "/swagger/index.html",
		},
	})
}
