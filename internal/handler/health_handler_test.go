package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/config"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/handler"
)

func TestHealthCheckReportsService(t *testing.T) {
	cfg := config.Config{AppName: "Internship Placement API", AppEnv: "test"}
	app := fiber.New()
	app.Get("/api/v1/health", handler.HealthCheck(cfg))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Success bool                   `json:"success"`
		Data    handler.HealthResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.True(t, response.Success)
	require.Equal(t, "ok", response.Data.Status)
	require.Equal(t, cfg.AppName, response.Data.Service)
}
