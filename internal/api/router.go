package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fountainmap/fountain-finder/internal/api/handler"
	"github.com/fountainmap/fountain-finder/internal/api/middleware"
	"github.com/fountainmap/fountain-finder/internal/core/ports"
	"github.com/fountainmap/fountain-finder/internal/core/service"
	"github.com/fountainmap/fountain-finder/internal/infrastructure/config"
	mongodb "github.com/fountainmap/fountain-finder/internal/infrastructure/db/mongo"
	redisdb "github.com/fountainmap/fountain-finder/internal/infrastructure/db/redis"
	"github.com/fountainmap/fountain-finder/internal/infrastructure/http/handlers"
)

// NewRouter builds the Echo instance with all routes registered, wiring the
// Mongo repositories and the Redis report throttle.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	userRepo := mongodb.NewUserRepository(db)
	fountainRepo := mongodb.NewFountainRepository(db)
	throttle := redisdb.NewReportThrottle(rdb)

	tokens := service.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	authService := service.NewAuthService(userRepo, tokens, log)
	fountainService := service.NewFountainService(fountainRepo, userRepo, throttle, log)

	e := newRouter(authService, fountainService, tokens, cfg.CORSOrigin, log)

	// Prometheus registration is process-global; wire it here rather than in
	// newRouter so tests can build routers repeatedly.
	e.Use(echoprometheus.NewMiddleware("fountain"))
	e.GET("/metrics", echoprometheus.NewHandler())

	// Readiness needs the raw connections, not the repositories.
	readiness := handlers.NewReadinessHandler(db, rdb)
	e.GET("/api/health/ready", readiness.Readiness)

	return e
}

// newRouter wires routes against service interfaces so tests can inject
// in-memory implementations.
func newRouter(authService ports.AuthService, fountainService ports.FountainService, tokens ports.TokenService, corsOrigin string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{corsOrigin},
		AllowCredentials: true,
	}))

	authHandler := handler.NewAuthHandler(authService)
	fountainHandler := handler.NewFountainHandler(fountainService)
	auth := middleware.Auth(tokens)
	optionalAuth := middleware.OptionalAuth(tokens)

	// --- Auth routes ---
	e.POST("/api/auth/signup", authHandler.Signup)
	e.POST("/api/auth/login", authHandler.Login)
	e.GET("/api/auth/me", authHandler.Me, auth)
	e.PUT("/api/auth/update", authHandler.Update, auth)
	e.POST("/api/auth/reset-password", authHandler.ResetPassword)

	// --- Fountain routes ---
	e.GET("/api/fountains", fountainHandler.List, optionalAuth)
	e.GET("/api/fountains/:id", fountainHandler.Get, optionalAuth)
	e.POST("/api/fountains", fountainHandler.Create, auth)
	e.POST("/api/fountains/:id/reviews", fountainHandler.AddReview, auth)
	e.POST("/api/fountains/:id/report", fountainHandler.Report, auth)
	e.DELETE("/api/fountains/:id", fountainHandler.Delete, auth)

	// --- Health probe (no auth required) ---
	e.GET("/api/health", handlers.NewHealthHandler().Liveness)

	return e
}
