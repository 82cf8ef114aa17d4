package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	wayfarerHTTP "wayfarer/internal/controller/http"
	"wayfarer/internal/repo/persistent"
	"wayfarer/internal/usecase"
	"wayfarer/pkg/cache"
	"wayfarer/pkg/config"
	"wayfarer/pkg/jwt"
	"wayfarer/pkg/logger"
	"wayfarer/pkg/middleware"
	"wayfarer/pkg/queue"
	"wayfarer/pkg/s3"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, s3Client *s3.Client, queueClient *queue.Client, redisClient *redis.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)
	cacheStore := cache.NewRedis(redisClient, log)

	feedTTL := time.Duration(cfg.FeedCacheTTL) * time.Second
	entityTTL := time.Duration(cfg.EntityCacheTTL) * time.Second

	// Repositories
	userRepo := persistent.NewUserRepository(db)
	profileRepo := persistent.NewProfileRepository(db)
	postRepo := persistent.NewPostRepository(db)
	voteRepo := persistent.NewVoteRepository(db)
	commentRepo := persistent.NewCommentRepository(db)
	countryRepo := persistent.NewCountryRepository(db)
	tagRepo := persistent.NewTagRepository(db)

	invalidator := usecase.NewInvalidator(cacheStore, userRepo, log)

	// Use cases
	var publisher usecase.NotificationPublisher
	if queueClient != nil {
		publisher = queueClient
	}
	feedUseCase := usecase.NewFeedUseCase(postRepo, profileRepo, cacheStore, log, feedTTL)
	postUseCase := usecase.NewPostUseCase(postRepo, profileRepo, countryRepo, tagRepo, s3Client, publisher, invalidator, cacheStore, log, entityTTL)
	voteUseCase := usecase.NewVoteUseCase(voteRepo, profileRepo, invalidator, log)
	commentUseCase := usecase.NewCommentUseCase(commentRepo, postRepo, profileRepo, invalidator, cacheStore, log, entityTTL)
	profileUseCase := usecase.NewProfileUseCase(profileRepo, userRepo, publisher, invalidator, cacheStore, log, entityTTL)
	countryUseCase := usecase.NewCountryUseCase(countryRepo, postRepo, profileRepo, invalidator, cacheStore, log, entityTTL)
	tagUseCase := usecase.NewTagUseCase(tagRepo, postRepo, cacheStore, log, entityTTL)
	authUseCase := usecase.NewAuthUseCase(userRepo, profileRepo, countryRepo, jwtService, invalidator, log)

	// HTTP handlers
	feedHandler := wayfarerHTTP.NewFeedHandler(feedUseCase, log)
	postHandler := wayfarerHTTP.NewPostHandler(postUseCase, voteUseCase, log)
	commentHandler := wayfarerHTTP.NewCommentHandler(commentUseCase, log)
	profileHandler := wayfarerHTTP.NewProfileHandler(profileUseCase, log)
	countryHandler := wayfarerHTTP.NewCountryHandler(countryUseCase, log)
	tagHandler := wayfarerHTTP.NewTagHandler(tagUseCase, log)
	authHandler := wayfarerHTTP.NewAuthHandler(authUseCase, log)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// The landing page is the feed.
	r.GET("/", middleware.OptionalAuthMiddleware(jwtService), feedHandler.GetFeed)

	api := r.Group("/api/v1")

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// Readable without an account; is_following decoration kicks in with one.
	public := api.Group("")
	public.Use(middleware.OptionalAuthMiddleware(jwtService))
	{
		public.GET("/feed", feedHandler.GetFeed)
		public.GET("/posts/:id", postHandler.GetPost)
		public.GET("/posts/:id/comments", commentHandler.ListComments)
		public.GET("/profiles", profileHandler.ListProfiles)
		public.GET("/profiles/:userId", profileHandler.GetProfile)
		public.GET("/profiles/:userId/posts", postHandler.GetUserPosts)
		public.GET("/countries", countryHandler.ListCountries)
		public.GET("/countries/:id", countryHandler.GetCountry)
		public.GET("/tags/:id", tagHandler.GetTagPosts)
	}

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(jwtService))
	protected.Use(middleware.RateLimitMiddleware(redisClient, 100, time.Minute))
	{
		protected.POST("/posts", postHandler.CreatePost)
		protected.DELETE("/posts/:id", postHandler.DeletePost)
		protected.POST("/posts/:id/increase-rating", postHandler.IncreaseRating)
		protected.POST("/posts/:id/downgrade-rating", postHandler.DowngradeRating)
		protected.POST("/posts/:id/comments", commentHandler.AddComment)
		protected.POST("/subscribe/:authorId", profileHandler.Subscribe)
		protected.POST("/countries/:id/toggle-interest", countryHandler.ToggleInterest)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		log.Info("wayfarer starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down wayfarer...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	if queueClient != nil {
		queueClient.Close()
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		panic(err)
	}

	log.Info("wayfarer exited")
}
