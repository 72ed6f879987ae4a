package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"psymetric/internal/cache"
	"psymetric/internal/config"
	"psymetric/internal/db"
	"psymetric/internal/engine"
	"psymetric/internal/fraud"
	apihttp "psymetric/internal/http"
	"psymetric/internal/repository"
	"psymetric/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	userRepo := repository.NewPgUserRepository(pool)
	testRepo := repository.NewPgTestRepository(pool)
	sessionRepo := repository.NewPgSessionRepository(pool)
	responseRepo := repository.NewPgResponseRepository(pool)
	resultRepo := repository.NewPgResultRepository(pool)
	abilityRepo := repository.NewPgAbilityRepository(pool)
	fraudRepo := repository.NewPgFraudLogRepository(pool)

	var (
		tokenStore  service.RefreshTokenStore
		redisClient *redis.Client
	)
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
			redisClient = nil
		} else {
			tokenStore = service.NewRedisRefreshTokenStore(redisClient)
		}
		cancel()
	}
	abilityCache := cache.New(redisClient, cfg.AbilityCacheTTL)

	jwtSvc := service.NewJWTServiceWithStore(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL, tokenStore)
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}

	registry := engine.NewDefaultRegistry()
	detector := fraud.NewDetector()

	authSvc := service.NewAuthService(userRepo, jwtSvc)
	testSvc := service.NewTestService(testRepo, sessionRepo, responseRepo, registry)
	abilitySvc := service.NewAbilityService(resultRepo, abilityRepo, abilityCache, logger)
	resultSvc := service.NewResultService(
		testRepo, sessionRepo, responseRepo, resultRepo, fraudRepo,
		registry, detector, abilitySvc, logger,
	)

	router := apihttp.NewRouter(
		logger,
		jwtSvc,
		apihttp.NewAuthHandler(logger, authSvc),
		apihttp.NewTestHandler(logger, testSvc),
		apihttp.NewSessionHandler(logger, testSvc, resultSvc),
		apihttp.NewResultHandler(logger, resultSvc),
		apihttp.NewAbilityHandler(logger, abilitySvc, cfg.SimilarLimit),
	)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
