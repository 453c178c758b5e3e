package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/SLearnTribe/learntribe-resume-processor/internal/config"
	"github.com/SLearnTribe/learntribe-resume-processor/internal/domain"
	"github.com/SLearnTribe/learntribe-resume-processor/internal/handler"
	"github.com/SLearnTribe/learntribe-resume-processor/internal/middleware"
	"github.com/SLearnTribe/learntribe-resume-processor/internal/repository"
	"github.com/SLearnTribe/learntribe-resume-processor/internal/service"
	"github.com/SLearnTribe/learntribe-resume-processor/internal/service/experience"
	"github.com/SLearnTribe/learntribe-resume-processor/pkg/database"
	"github.com/SLearnTribe/learntribe-resume-processor/pkg/redis"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close(db)

	if err := database.RunMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	var resumeCache domain.ResumeCache
	redisClient, err := redis.NewRedisClient(context.Background(), cfg.RedisURL)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, resume listing cache disabled")
	} else {
		defer redisClient.Close()
		resumeCache = repository.NewResumeCache(redisClient, cfg.ResumeCacheTTL)
	}

	resumeRepo := repository.NewResumeRepository(db)

	resumeService := service.NewResumeService(db, resumeRepo, resumeCache, experience.NewService(), cfg.MaxResumesPerOwner)

	resumeHandler := handler.NewResumeHandler(resumeService)

	router := setupRouter(cfg, db, resumeHandler)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server startup failed")
		}
	}()

	log.Info().
		Str("port", cfg.Port).
		Str("environment", cfg.Environment).
		Int("max_resumes_per_owner", cfg.MaxResumesPerOwner).
		Bool("cache_enabled", resumeCache != nil).
		Msg("Server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
		return
	}

	log.Info().Msg("Server exited")
}

func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func setupRouter(cfg *config.Config, db *gorm.DB, resumeHandler *handler.ResumeHandler) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestLogger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.FrontendURL))

	api := router.Group("/api/v1")
	{
		api.GET("/health", func(c *gin.Context) {
			status := "connected"
			if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
				status = "unavailable"
			}
			c.JSON(http.StatusOK, gin.H{
				"status":    "healthy",
				"timestamp": time.Now().Unix(),
				"services": gin.H{
					"database": status,
				},
			})
		})

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		resumeHandler.RegisterRoutes(protected)
	}

	return router
}
