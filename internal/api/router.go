package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/minishop/store-api/docs"
	"github.com/minishop/store-api/internal/api/handler"
	"github.com/minishop/store-api/internal/api/middleware"
	"github.com/minishop/store-api/internal/core/ports"
	"github.com/minishop/store-api/internal/core/service"
	"github.com/minishop/store-api/internal/infrastructure/config"
	mongostore "github.com/minishop/store-api/internal/infrastructure/db/mongo"
	redisstore "github.com/minishop/store-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger, audit ports.AuditTrail) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("store"))

	// --- Dependencies ---
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	hasher := service.NewPasswordHasher(cfg.BcryptCost)
	sessions := redisstore.NewSessionCache(rdb, tokens.TTL())

	userRepo := mongostore.NewUserRepository(db)
	userService := service.NewUserService(userRepo, hasher, tokens, sessions, audit, log)
	userHandler := handler.NewUserHandler(userService, tokens.TTL())

	productRepo := mongostore.NewProductRepository(db)
	productService := service.NewProductService(productRepo, log)
	productHandler := handler.NewProductHandler(productService)

	authed := middleware.Auth(tokens)
	owner := middleware.RequireOwner("id")

	// --- User routes ---
	e.POST("/user/signup", userHandler.Signup)
	e.POST("/user/signin", userHandler.Signin)
	e.POST("/user/logout", userHandler.Logout)
	e.PUT("/user/:id", userHandler.Update, authed, owner)
	e.DELETE("/user/:id", userHandler.Delete, authed, owner)

	// --- Product routes ---
	e.POST("/product", productHandler.Create, authed)
	e.GET("/product", productHandler.List)
	e.GET("/product/:id", productHandler.Get)
	e.PUT("/product/:id", productHandler.Update, authed)
	e.DELETE("/product/:id", productHandler.Delete, authed)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
