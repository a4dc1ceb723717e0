package routes

import (
	"log"

	"contaflow/internal/config"
	"contaflow/internal/database"
	"contaflow/internal/delivery/http/handler"
	v1 "contaflow/internal/delivery/http/routes/v1"
	"contaflow/internal/infrastructure/cache"
	"contaflow/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	cfg    config.Config
	db     database.DB
	cache  *cache.Redis
	hub    *ws.Hub
	logger *log.Logger
}

func NewRegistry(cfg config.Config, db database.DB, c *cache.Redis, hub *ws.Hub, logger *log.Logger) *Registry {
	return &Registry{cfg: cfg, db: db, cache: c, hub: hub, logger: logger}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	health := handler.NewHealthHandler(r.db, r.cache)
	health.RegisterRoutes(app)

	api := app.Group("/api")
	v1.Register(api.Group("/v1"), v1.Deps{
		Cfg:    r.cfg,
		DB:     r.db,
		Cache:  r.cache,
		Hub:    r.hub,
		Logger: r.logger,
	})
}
