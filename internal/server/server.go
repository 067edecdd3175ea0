// Package server wires the HTTP routes, middleware and page handlers.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"yatube/internal/cache"
	"yatube/internal/config"
	"yatube/internal/database"
	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/internal/repository"
	"yatube/internal/service"
	"yatube/internal/views"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	loginPath     = "/auth/login/"
	csrfFormField = "csrf_token"
	csrfLocal     = "csrf"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	sessions       *middleware.Sessions
	limiter        *middleware.RateLimiter
	renderer       views.Renderer
	postRepo       repository.PostRepository
	groupRepo      repository.GroupRepository
	userRepo       repository.UserRepository
	postService    *service.PostService
	userService    *service.UserService
}

// NewServer connects to the database and Redis described by cfg and builds the server.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// redisClient may be nil.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	if db == nil {
		return nil, errors.New("database is required")
	}
	if redisClient != nil && cache.GetClient() != redisClient {
		cache.SetClient(redisClient)
	}

	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("yatube"),
		sessions:       middleware.NewSessions(cfg.SessionSecret, cfg.IsProduction()),
		limiter:        middleware.NewRateLimiter(redisClient, cfg.Env),
		renderer:       views.NewHTMLRenderer(),
		postRepo:       repository.NewPostRepository(db),
		groupRepo:      repository.NewGroupRepository(db),
		userRepo:       repository.NewUserRepository(db),
	}
	s.postService = service.NewPostService(s.postRepo, s.groupRepo, s.userRepo)
	s.userService = service.NewUserService(s.userRepo)
	return s, nil
}

// WithRenderer replaces the page renderer.
func (s *Server) WithRenderer(r views.Renderer) *Server {
	s.renderer = r
	s.app = nil
	return s
}

// App returns the configured Fiber application, building it on first use.
func (s *Server) App() *fiber.App {
	if s.app != nil {
		return s.app
	}
	app := fiber.New(fiber.Config{
		AppName:      "yatube",
		ErrorHandler: s.errorHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	s.app = app
	return app
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.TracingMiddleware())

	// Session must run before ContextMiddleware so the user ID reaches the logger.
	app.Use(s.sessions.Authenticate())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New(helmet.Config{
		CrossOriginEmbedderPolicy: "unsafe-none",
	}))
	app.Use(middleware.StructuredLogger())

	if s.config.CSRFEnabled {
		app.Use(csrf.New(csrf.Config{
			KeyLookup:      "form:" + csrfFormField,
			CookieName:     "csrftoken",
			CookieSameSite: "Lax",
			CookieSecure:   s.config.IsProduction(),
			CookieHTTPOnly: true,
			Expiration:     2 * time.Hour,
			ContextKey:     csrfLocal,
		}))
	}
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health", s.HealthCheck)
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	auth := app.Group("/auth")
	auth.Get("/login/", s.LoginForm)
	auth.Post("/login/", s.limiter.Limit("login", 10, 5*time.Minute, middleware.FailOpen), s.Login)
	auth.Post("/logout/", s.Logout)

	app.Get("/", s.Index)
	app.Get("/group/:slug/", s.GroupPosts)
	app.Get("/profile/:username/", s.Profile)
	app.Get("/posts/:post_id/", s.PostDetail)

	requireLogin := middleware.LoginRequired(loginPath)
	app.Get("/create/", requireLogin, s.PostCreate)
	app.Post("/create/", requireLogin, s.PostCreate)
	app.Get("/posts/:post_id/edit/", requireLogin, s.PostEdit)
	app.Post("/posts/:post_id/edit/", requireLogin, s.PostEdit)
}

// Start listens on the configured port until Shutdown is called.
func (s *Server) Start() error {
	port := s.config.Port
	if port == "" {
		port = "8000"
	}
	middleware.Logger.Info("server listening", slog.String("port", port))
	return s.App().Listen(":" + port)
}

// Shutdown stops accepting requests and closes the database and Redis connections.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			errs = append(errs, fmt.Errorf("fiber shutdown: %w", err))
		}
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis close: %w", err))
		}
	}
	if sqlDB, err := s.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database close: %w", err))
		}
	}
	return errors.Join(errs...)
}

// HealthCheck reports database and Redis reachability.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	code, overall := fiber.StatusOK, "ok"
	dbStatus := "healthy"
	if sqlDB, err := s.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		dbStatus = "unhealthy"
		code, overall = fiber.StatusServiceUnavailable, "degraded"
	}

	redisStatus := "disabled"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	return c.Status(code).JSON(fiber.Map{
		"status":   overall,
		"database": dbStatus,
		"redis":    redisStatus,
	})
}

// errorHandler renders the 404 page for unknown routes and missing records,
// and the 500 page for anything unexpected.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if models.IsNotFound(err) || errors.As(err, &fe) && fe.Code == fiber.StatusNotFound {
		return s.render(c, fiber.StatusNotFound, views.TemplateNotFound, &views.PageData{Viewer: s.viewerOrNil(c)})
	}
	if fe != nil {
		return c.Status(fe.Code).SendString(fe.Message)
	}

	middleware.Logger.ErrorContext(c.UserContext(), "unhandled error",
		slog.String("path", c.Path()),
		slog.String("error", err.Error()),
	)
	return s.render(c, fiber.StatusInternalServerError, views.TemplateError, &views.PageData{})
}
