package handler

import (
	"context"
	"time"

	"contaflow/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	cache Pinger
}

func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/health", h.Live)
	r.Get("/health/ready", h.Ready)
}

func (h *HealthHandler) Live(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

// Ready fails on a dead database; a dead Redis is reported but non-fatal
// because every cache path degrades to a bypass.
func (h *HealthHandler) Ready(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
	defer cancel()

	data := map[string]string{"database": "ok", "redis": "ok"}

	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			data["database"] = "unreachable"
			return response.Error(c, fiber.StatusServiceUnavailable, "not ready", data)
		}
	}

	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			data["redis"] = "unreachable"
		}
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}
