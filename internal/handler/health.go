package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/boxgen/internal/middleware"
	"github.com/deppfellow/boxgen/internal/model"
	"github.com/deppfellow/boxgen/internal/server"
	"github.com/deppfellow/boxgen/internal/service"
	"github.com/labstack/echo/v4"
)

// HealthHandler serves the liveness probe and the self-check status page.
type HealthHandler struct {
	Handler
	services *service.Services
}

func NewHealthHandler(s *server.Server, services *service.Services) *HealthHandler {
	return &HealthHandler{
		Handler:  NewHandler(s),
		services: services,
	}
}

// Health always answers {"ok": true}. It touches no other state, so it
// stays up regardless of what /generate has done.
func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, model.HealthResponse{OK: true})
}

// CheckStatus runs the configured self-checks and reports each one.
//
// It returns 200 when every check passes and 503 otherwise.
func (h *HealthHandler) CheckStatus(c echo.Context) error {
	start := time.Now()
	cfg := h.server.Config.Observability.HealthChecks

	logger := middleware.GetLogger(c).With().
		Str("operation", "status_check").
		Logger()

	checks := make(map[string]interface{})
	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	isHealthy := true

	if cfg.Enabled {
		for _, name := range cfg.Checks {
			checkStart := time.Now()

			err := h.runCheck(c.Request().Context(), cfg.Timeout, name)

			if err != nil {
				isHealthy = false
				checks[name] = map[string]interface{}{
					"status":        "unhealthy",
					"response_time": time.Since(checkStart).String(),
					"error":         err.Error(),
				}

				logger.Error().
					Err(err).
					Str("check", name).
					Dur("response_time", time.Since(checkStart)).
					Msg("status check failed")

				h.server.LoggerService.RecordEvent("HealthCheckError", map[string]interface{}{
					"check_type":       name,
					"operation":        "status_check",
					"error_type":       name + "_unhealthy",
					"response_time_ms": time.Since(checkStart).Milliseconds(),
					"error_message":    err.Error(),
				})
				continue
			}

			checks[name] = map[string]interface{}{
				"status":        "healthy",
				"response_time": time.Since(checkStart).String(),
			}
		}
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("status check failed")

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("status check passed")

	return c.JSON(http.StatusOK, response)
}

// runCheck runs one named check. A zero timeout means no deadline.
func (h *HealthHandler) runCheck(ctx context.Context, timeout time.Duration, name string) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	switch name {
	case "mesh":
		return h.services.Mesh.SelfCheck(ctx)
	default:
		return fmt.Errorf("unknown check %q", name)
	}
}
