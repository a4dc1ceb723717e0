package v1

import (
	"log"

	"contaflow/internal/config"
	"contaflow/internal/database"
	"contaflow/internal/delivery/http/handler"
	"contaflow/internal/delivery/http/middleware"
	"contaflow/internal/infrastructure/cache"
	"contaflow/internal/pkg/jwt"
	"contaflow/internal/repository"
	"contaflow/internal/usecase"
	"contaflow/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Deps struct {
	Cfg    config.Config
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
	Logger *log.Logger
}

func Register(r fiber.Router, d Deps) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		d.Cfg.JWT.AccessSecret,
		d.Cfg.JWT.RefreshSecret,
		d.Cfg.JWT.AccessExpiresIn,
		d.Cfg.JWT.RefreshExpiresIn,
	)

	authMw := middleware.NewAuthMiddleware(jwtSvc)
	notifier := ws.NewNotifier(d.Hub)

	profileRepo := repository.NewPostgresProfileRepository(d.DB)
	clientRepo := repository.NewPostgresClientRepository(d.DB)
	taskRepo := repository.NewPostgresTaskRepository(d.DB)

	authUC := usecase.NewAuthUsecase(profileRepo, jwtSvc, d.Cache, d.Logger)
	profileUC := usecase.NewProfileUsecase(profileRepo)
	clientUC := usecase.NewClientUsecase(clientRepo, d.Cache, notifier)
	taskUC := usecase.NewTaskUsecase(taskRepo, clientRepo, d.Cache, notifier)
	dashboardUC := usecase.NewDashboardUsecase(taskRepo, clientRepo, d.Cache)

	authHandler := handler.NewAuthHandler(authUC)
	userHandler := handler.NewUserHandler(profileUC)
	clientHandler := handler.NewClientHandler(clientUC)
	taskHandler := handler.NewTaskHandler(taskUC)
	dashboardHandler := handler.NewDashboardHandler(dashboardUC)
	wsHandler := ws.NewHandler(d.Hub, d.Logger)

	authGroup := r.Group("/auth")
	authHandler.RegisterRoutes(authGroup)

	protected := r.Group("", authMw.Middleware())

	authHandler.RegisterProtectedRoutes(protected.Group("/auth"))
	userHandler.RegisterRoutes(protected.Group("/users"))
	clientHandler.RegisterRoutes(protected.Group("/clients"))
	taskHandler.RegisterRoutes(protected.Group("/tasks"))
	dashboardHandler.RegisterRoutes(protected.Group("/dashboard"))
	protected.Get("/ws", wsHandler.Handle)
}
