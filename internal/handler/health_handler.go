package handler

import (
	"context"
	"time"

	"practice-quest/internal/domain"
	"practice-quest/internal/dto"
	"practice-quest/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const healthCheckTimeout = 2 * time.Second

// DBPinger is satisfied by *sqlx.DB.
type DBPinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler reports whether the database and redis are reachable.
type HealthHandler struct {
	db    DBPinger
	cache domain.Cache
}

func NewHealthHandler(db DBPinger, cache domain.Cache) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Health godoc
// @Summary Health check
// @Description Returns 503 when the database is down. A redis outage only degrades the service.
// @Tags ops
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), healthCheckTimeout)
	defer cancel()

	resp := dto.HealthResponse{Status: "ok", Services: map[string]string{}}
	status := fiber.StatusOK

	if err := h.db.PingContext(ctx); err != nil {
		logger.Get().Error("Health check: database unreachable", zap.Error(err))
		resp.Services["database"] = "down"
		resp.Status = "down"
		status = fiber.StatusServiceUnavailable
	} else {
		resp.Services["database"] = "up"
	}

	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			logger.Get().Warn("Health check: redis unreachable", zap.Error(err))
			resp.Services["redis"] = "down"
			if resp.Status == "ok" {
				resp.Status = "degraded"
			}
		} else {
			resp.Services["redis"] = "up"
		}
	}

	return c.Status(status).JSON(resp)
}
