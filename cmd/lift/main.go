package main

import (
	"context"
	"fmt"
	"time"

	"wayfarer/internal/repo/persistent"
	"wayfarer/internal/usecase"
	"wayfarer/pkg/cache"
	"wayfarer/pkg/config"
	"wayfarer/pkg/database"
	"wayfarer/pkg/logger"
)

// Run-once lift batch, intended to be driven by cron.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to Redis: %v", err)
		panic(err)
	}
	cacheStore := cache.NewRedis(redisClient, log)

	userRepo := persistent.NewUserRepository(db)
	liftRepo := persistent.NewLiftRepository(db)
	invalidator := usecase.NewInvalidator(cacheStore, userRepo, log)
	liftUseCase := usecase.NewLiftUseCase(liftRepo, invalidator, cacheStore, log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	lifted, err := liftUseCase.Run(ctx, time.Now())
	if err != nil {
		log.Error("Lift batch failed: %v", err)
		panic(err)
	}

	log.Info("Lift batch finished, %d posts lifted", lifted)
}
