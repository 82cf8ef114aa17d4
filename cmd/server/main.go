package main

import (
	"wayfarer/internal/app"
	"wayfarer/pkg/cache"
	"wayfarer/pkg/config"
	"wayfarer/pkg/database"
	"wayfarer/pkg/logger"
	"wayfarer/pkg/queue"
	"wayfarer/pkg/s3"

	_ "wayfarer/docs" // Swagger docs
)

// @title           Wayfarer API
// @version         1.0
// @description     Travel feed: posts tagged by country, votes, comments and follows.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
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

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		panic(err)
	}

	// Notifications degrade to disabled when the broker is down.
	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Warn("RabbitMQ unavailable, notifications disabled: %v", err)
		queueClient = nil
	}

	app.Run(cfg, log, db, s3Client, queueClient, redisClient)
}
