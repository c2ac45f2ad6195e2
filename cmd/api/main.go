package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-oscrec-backend/config"
	_ "go-oscrec-backend/docs" // Important for Swagger
	v1 "go-oscrec-backend/internal/delivery/http/v1"
	"go-oscrec-backend/internal/domain"
	"go-oscrec-backend/internal/repository/githubapi"
	"go-oscrec-backend/internal/usecase"
	"go-oscrec-backend/pkg/cache"
	"go-oscrec-backend/pkg/logger"
	"go-oscrec-backend/pkg/textsim"

	"github.com/go-playground/validator/v10"
	goredis "github.com/redis/go-redis/v9"
)

// @title           Open Source Contribution Recommender API
// @version         1.0
// @description     GitHub repository, issue and file recommendations based on a user's skill profile.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.Debug)
	logger.Log.Info("Starting recommendation backend", "port", cfg.Port)

	// 3. Setup Cache
	var (
		store       domain.Cache
		redisClient *goredis.Client
		pinger      usecase.CachePinger
	)
	if cfg.UpstashRedisURL != "" {
		redisCache, err := cache.NewRedis(cache.Config{
			URL:      cfg.UpstashRedisURL,
			Password: cfg.UpstashRedisPassword,
		})
		if err != nil {
			logger.Log.Warn("Redis unavailable, using in-memory cache", "error", err)
			store = cache.NewMemory()
		} else {
			defer redisCache.Close()
			store = redisCache
			redisClient = redisCache.Client()
			pinger = redisCache
		}
	} else {
		store = cache.NewMemory()
	}

	// 4. Setup GitHub Gateway
	github := githubapi.NewClient(cfg.GitHubAPIURL, cfg.GitHubToken)

	// 5. Setup UseCases
	validate := validator.New()
	engine := textsim.New(cfg.TFIDFMaxFeatures)
	profileUC := usecase.NewProfilingUsecase(github, store, engine, validate,
		time.Duration(cfg.ProfileCacheTTLSeconds)*time.Second)
	recommendationUC := usecase.NewRecommendationUsecase(github, engine)
	fileUC := usecase.NewFileUsecase(github, store,
		time.Duration(cfg.TreeCacheTTLSeconds)*time.Second)
	healthUC := usecase.NewHealthUsecase(pinger)

	// 6. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ProfileUC:        profileUC,
		RecommendationUC: recommendationUC,
		FileUC:           fileUC,
		HealthUC:         healthUC,
		RedisClient:      redisClient,
		Config:           cfg,
	})

	// 7. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
