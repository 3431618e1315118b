package handler

import (
	"net/http"

	"tasker/internal/delivery/api/response"

	"github.com/labstack/echo/v4"
)

// HealthCheck reports that the process is serving
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// Welcome is the API root
func Welcome(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{
		"message": "Welcome to the tasker API",
	})
}
