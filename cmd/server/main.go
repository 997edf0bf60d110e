package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/favoritesapp/favorites-api/docs"
	"github.com/favoritesapp/favorites-api/internal/catalog"
	cataloghttp "github.com/favoritesapp/favorites-api/internal/catalog/delivery/http"
	"github.com/favoritesapp/favorites-api/internal/config"
	favoritehttp "github.com/favoritesapp/favorites-api/internal/favorite/delivery/http"
	favoritedomain "github.com/favoritesapp/favorites-api/internal/favorite/domain"
	favoriterepo "github.com/favoritesapp/favorites-api/internal/favorite/repository"
	userhttp "github.com/favoritesapp/favorites-api/internal/user/delivery/http"
	userdomain "github.com/favoritesapp/favorites-api/internal/user/domain"
	userrepo "github.com/favoritesapp/favorites-api/internal/user/repository"
	usercommand "github.com/favoritesapp/favorites-api/internal/user/usecase/command"
	"github.com/favoritesapp/favorites-api/kafka"
	"github.com/favoritesapp/favorites-api/pkg/auth"
	"github.com/favoritesapp/favorites-api/pkg/database"
	"github.com/favoritesapp/favorites-api/pkg/logger"
	"github.com/favoritesapp/favorites-api/pkg/middleware"
	"github.com/favoritesapp/favorites-api/pkg/tracing"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	logger.Init(cfg.ServiceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	logger.Logger.Info().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Str("log_level", cfg.LogLevel).
		Msg("Starting favorites service")

	// Initialize tracer
	tp, err := tracing.InitTracer(cfg.ServiceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Connect to database
	db, err := database.NewGormConnection(cfg.Database)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Run migrations
	if err := db.AutoMigrate(&userdomain.User{}, &favoritedomain.Product{}, &favoritedomain.Favorite{}); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Redis denylist for revoked tokens; the service runs without it
	tokens := auth.NewTokenStore(connectRedis(cfg))

	// Kafka publisher for favorite lifecycle events; optional
	var events favoritedomain.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err := kafka.NewPublisher(cfg.KafkaBrokers)
		if err != nil {
			logger.Logger.Warn().Err(err).
				Strs("brokers", cfg.KafkaBrokers).
				Msg("Kafka unavailable, favorite events disabled")
		} else {
			defer publisher.Close()
			events = publisher
		}
	}

	// External catalog client
	catalogClient := catalog.NewClient(cfg.CatalogBaseURL, cfg.CatalogTimeout)

	// Repositories
	userRepository := userrepo.NewGormUserRepository(db)
	productRepository := favoriterepo.NewGormProductRepository(db)
	favoriteRepository := favoriterepo.NewGormFavoriteRepositoryWithTracing(db)

	// HTTP handlers
	authMiddleware := userhttp.NewMiddleware(tokens)
	userHandler := userhttp.NewUserHandler(userRepository, usercommand.NewLogoutUserHandler(tokens))
	catalogHandler := cataloghttp.NewCatalogHandler(catalogClient)
	favoriteHandler := favoritehttp.NewFavoriteHandler(favoriteRepository, productRepository, catalogClient, events)

	logger.Logger.Info().
		Str("catalog_base_url", cfg.CatalogBaseURL).
		Dur("catalog_timeout", cfg.CatalogTimeout).
		Msg("Handlers initialized")

	startHTTPServer(cfg, sqlDB, authMiddleware, userHandler, catalogHandler, favoriteHandler)
}

// connectRedis returns a verified Redis client, or nil when Redis is down so
// that the token store degrades to a no-op
func connectRedis(cfg config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Logger.Warn().Err(err).
			Str("addr", cfg.RedisAddr).
			Msg("Redis unavailable, token revocation disabled")
		return nil
	}

	logger.Logger.Info().Str("addr", cfg.RedisAddr).Msg("Redis connected")
	return client
}

func startHTTPServer(
	cfg config.Config,
	db *sql.DB,
	authMiddleware *userhttp.Middleware,
	userHandler *userhttp.UserHandler,
	catalogHandler *cataloghttp.CatalogHandler,
	favoriteHandler *favoritehttp.FavoriteHandler,
) {
	// Setup router
	router := mux.NewRouter()

	// Register routes
	userHandler.RegisterRoutes(router, authMiddleware)
	catalogHandler.RegisterRoutes(router, authMiddleware.Authenticate)
	favoriteHandler.RegisterRoutes(router, authMiddleware)

	// Health check endpoint
	userHandler.RegisterHealthCheck(router, db)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// Swagger UI
	router.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: middleware.RequestLogging(c.Handler(router)),
	}

	go func() {
		logger.Logger.Info().
			Str("port", cfg.HTTPPort).
			Str("metrics_endpoint", "/metrics").
			Str("swagger_endpoint", "/swagger/index.html").
			Msg("HTTP server started")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server shutdown failed")
	}
}
