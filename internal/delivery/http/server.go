package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/region-map-service/internal/config"
	"github.com/region-map-service/internal/delivery/http/handler"
	"github.com/region-map-service/internal/delivery/http/middleware"
	apperrors "github.com/region-map-service/internal/pkg/errors"
	"github.com/region-map-service/internal/pkg/metrics"
	"github.com/region-map-service/internal/pkg/utils"
)

// Handlers - набор обработчиков HTTP API
type Handlers struct {
	Session   *handler.SessionHandler
	Search    *handler.SearchHandler
	Stats     *handler.StatsHandler
	Hierarchy *handler.HierarchyHandler
	Health    *handler.HealthHandler
}

// Server - HTTP сервер на основе Fiber
type Server struct {
	app      *fiber.App
	config   *config.Config
	logger   *zap.Logger
	handlers Handlers
}

// NewServer - создание нового HTTP сервера
func NewServer(cfg *config.Config, logger *zap.Logger, handlers Handlers) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Region Map Service",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:      app,
		config:   cfg,
		logger:   logger,
		handlers: handlers,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App - fiber приложение, используется в тестах через app.Test
func (s *Server) App() *fiber.App {
	return s.app
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.AllowOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	// Prometheus
	s.app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	api := s.app.Group("/api/v1")

	api.Get("/health", s.handlers.Health.Health)

	// Map sessions
	sessions := api.Group("/sessions")
	sessions.Post("/", s.handlers.Session.Create)
	sessions.Get("/:id", s.handlers.Session.Get)
	sessions.Delete("/:id", s.handlers.Session.Delete)
	sessions.Post("/:id/select/region", s.handlers.Session.SelectRegion)
	sessions.Post("/:id/select/subregion", s.handlers.Session.SelectSubRegion)
	sessions.Post("/:id/search", s.handlers.Session.Search)
	sessions.Post("/:id/clear", s.handlers.Session.Clear)
	sessions.Get("/:id/layers/regions", s.handlers.Session.RegionLayer)
	sessions.Get("/:id/layers/subregions", s.handlers.Session.SubRegionLayer)

	// Search
	api.Get("/search/suggest", s.handlers.Search.Suggest)

	// Stats
	api.Post("/stats/refresh", s.handlers.Stats.Refresh)
	api.Get("/stats/:name", s.handlers.Stats.GetPanel)

	// Hierarchy for cascading forms
	api.Get("/hierarchy/children", s.handlers.Hierarchy.Children)
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - ошибки fiber (404 маршрута, 405, паники) в общем конверте
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if e, ok := err.(*fiber.Error); ok {
			if e.Code >= fiber.StatusInternalServerError {
				logger.Error("HTTP Error", zap.String("path", c.Path()), zap.Error(err))
			}
			return utils.SendError(c, apperrors.New(httpCode(e.Code), e.Message, e.Code))
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return utils.SendError(c, err)
	}
}

func httpCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusBadRequest:
		return apperrors.ErrInvalidRequest.Code
	default:
		if status >= fiber.StatusInternalServerError {
			return apperrors.ErrInternalServer.Code
		}
		return "HTTP_ERROR"
	}
}
