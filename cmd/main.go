package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"flavourfit/database"
	"flavourfit/docs"
	"flavourfit/internal/cache"
	"flavourfit/internal/config"
	"flavourfit/internal/controllers"
	"flavourfit/internal/foodoscope"
	flog "flavourfit/internal/logger"
	"flavourfit/internal/metrics"
	"flavourfit/internal/middleware"
	"flavourfit/internal/nutrition"
	"flavourfit/internal/recommendation"
	"flavourfit/internal/repository"
	"flavourfit/internal/tracing"
	"flavourfit/routes"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func main() {
	// Load configuration (.env is optional)
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := flog.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing := tracing.Init(ctx, logger, cfg.Tracing, cfg.Env)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("tracing shutdown failed", "error", err)
		}
	}()

	// Swagger Documentation
	docs.SwaggerInfo.Title = "FlavourFit API"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Schemes = []string{"http", "https"}

	profileRepo, closeStore, err := openProfileStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open profile store", "error", err)
	}
	defer closeStore()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m, err := metrics.New("flavourfit", registry)
	if err != nil {
		logger.Fatal("failed to register metrics", "error", err)
	}

	// Initialize upstream clients
	catalog := foodoscope.NewClient(foodoscope.Options{
		BaseURL: cfg.Foodoscope.BaseURL,
		APIKey:  cfg.Foodoscope.APIKey,
		Timeout: cfg.Foodoscope.Timeout,
		Logger:  logger.With("component", "foodoscope"),
		Metrics: m,
	})
	ranges := nutrition.NewClient(profileRepo, nutrition.Options{
		URL:     cfg.Nutrition.URL,
		Timeout: cfg.Nutrition.Timeout,
		Logger:  logger.With("component", "nutrition"),
		Metrics: m,
	})
	recommender := recommendation.NewService(catalog.BaseURL(), ranges, catalog, logger.With("component", "recommendation"))

	var recipes controllers.RecipeCatalog = catalog
	var recipeCache *cache.RedisStore
	if cfg.Cache.RedisURL != "" {
		store, err := cache.NewRedisStore(ctx, cfg.Cache.RedisURL)
		if err != nil {
			logger.Warn("recipe cache disabled", "error", err)
		} else {
			defer store.Close()
			recipeCache = store
			recipes = cache.NewCachedCatalog(catalog, store, cfg.Cache.TTL, logger.With("component", "cache"))
			logger.Info("recipe cache enabled", "ttl", cfg.Cache.TTL)
		}
	}

	// Initialize controllers
	userProfileController := controllers.NewUserProfileController(profileRepo, logger)
	recipeController := controllers.NewRecipeController(recipes, logger)
	recommendationController := controllers.NewRecommendationController(recommender, logger)
	healthController := controllers.NewHealthController(profileRepo)
	if recipeCache != nil {
		healthController.WithCache(recipeCache)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Tracing.Enabled {
		router.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	router.Use(m.Middleware())

	auth := middleware.AuthMiddleware(cfg.Identity.JWTSecret)

	// Register routes
	routes.RegisterHealthRoutes(router, healthController, registry)
	routes.RegisterUserProfileRoutes(router, userProfileController, auth)
	routes.RegisterRecipeRoutes(router, recipeController)
	routes.RegisterRecommendationRoutes(router, recommendationController, auth)
	routes.RegisterSwaggerRoutes(router)

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        router,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   60 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Port, "docs", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Port))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "error", err)
		}
	}
}

// openProfileStore picks MongoDB or PostgreSQL from DATABASE_URL.
func openProfileStore(ctx context.Context, cfg *config.Config, logger *flog.Logger) (repository.UserProfileRepository, func(), error) {
	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if cfg.UsesMongo() {
		db, err := database.ConnectMongo(connectCtx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		repo, err := repository.NewMongoUserProfileRepository(connectCtx, db)
		if err != nil {
			_ = db.Client().Disconnect(context.Background())
			return nil, nil, err
		}
		logger.Info("profile store ready", "driver", "mongodb", "database", db.Name())
		return repo, func() { _ = db.Client().Disconnect(context.Background()) }, nil
	}

	db, err := database.ConnectDatabase(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := database.MigrateDatabase(db); err != nil {
		return nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	done := make(chan struct{})
	database.MonitorDBConnections(db, logger, done)
	logger.Info("profile store ready", "driver", "postgres")

	return repository.NewUserProfileRepository(db), func() {
		close(done)
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}, nil
}
