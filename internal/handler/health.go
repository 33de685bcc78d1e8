package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/shoppingcart/internal/middleware"
	"github.com/deppfellow/shoppingcart/internal/server"
	"github.com/labstack/echo/v4"
)

const (
	statusHealthy   = "healthy"
	statusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"
)

// dependencyCheck pings one backing service. Required checks make the whole
// service unhealthy when they fail; optional ones only degrade it.
type dependencyCheck struct {
	name     string
	required bool
	ping     func(ctx context.Context) error
}

type HealthHandler struct {
	Handler
	checks []dependencyCheck
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	h := &HealthHandler{Handler: NewHandler(s)}

	observability := s.Config.Observability
	if observability.HasCheck("database") && s.DB != nil {
		h.checks = append(h.checks, dependencyCheck{name: "database", required: true, ping: s.DB.Ping})
	}
	if observability.HasCheck("redis") && s.Redis != nil {
		h.checks = append(h.checks, dependencyCheck{
			name: "redis",
			ping: func(ctx context.Context) error { return s.Redis.Ping(ctx).Err() },
		})
	}
	return h
}

type checkResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type healthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]checkResult `json:"checks"`
}

// CheckHealth answers 200 when every required dependency responds and 503
// otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().Str("operation", "health_check").Logger()

	response := healthResponse{
		Status:      statusHealthy,
		Timestamp:   start.UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]checkResult, len(h.checks)),
	}

	for _, check := range h.checks {
		ctx, cancel := context.WithTimeout(c.Request().Context(), h.server.Config.Observability.HealthChecks.Timeout)
		checkStart := time.Now()
		err := check.ping(ctx)
		cancel()

		result := checkResult{Status: statusHealthy, ResponseTime: time.Since(checkStart).String()}
		if err != nil {
			result.Status = statusUnhealthy
			result.Error = err.Error()

			logger.Error().Err(err).Str("check", check.name).Msg("health check failed")
			h.recordFailure(check.name, time.Since(checkStart), err)

			if check.required {
				response.Status = statusUnhealthy
			} else if response.Status == statusHealthy {
				response.Status = statusDegraded
			}
		}
		response.Checks[check.name] = result
	}

	if response.Status == statusUnhealthy {
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("health check failed")
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().Dur("total_duration", time.Since(start)).Msg("health check passed")
	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) recordFailure(check string, elapsed time.Duration, err error) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}

	app.RecordCustomEvent("HealthCheckError", map[string]any{
		"check_type":       check,
		"operation":        "health_check",
		"response_time_ms": elapsed.Milliseconds(),
		"error_message":    err.Error(),
	})
}
