package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"agrorisk-copilot/loan-portal-backend/internal/catalog"
	"agrorisk-copilot/loan-portal-backend/internal/climate"
	"agrorisk-copilot/loan-portal-backend/internal/config"
	"agrorisk-copilot/loan-portal-backend/internal/credit"
	"agrorisk-copilot/loan-portal-backend/internal/risk"
	"agrorisk-copilot/loan-portal-backend/internal/storage"
)

func main() {
	// .env is optional; real deployments set environment variables directly.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging.Level)

	db, err := gorm.Open(postgres.Open(cfg.Database.GetDatabaseURL()), &gorm.Config{})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := storage.AutoMigrate(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate schema")
	}
	repo := storage.NewRepository(db)

	cat := catalog.New()

	model, err := risk.LoadBaselineModel(cfg.Model.MetadataPath)
	if err != nil {
		logger.Warn().Err(err).Str("path", cfg.Model.MetadataPath).
			Msg("model metadata unavailable, using built-in baseline weights")
		model = risk.NewBaselineModel()
	}

	cache := climate.NewCache()
	refresher := climate.NewRefresher(cache, climate.CSVLoader(cfg.Climate.CacheCSVPath), logger)
	if err := refresher.Start(cfg.Climate.RefreshCron); err != nil {
		logger.Warn().Err(err).Str("cron", cfg.Climate.RefreshCron).
			Msg("cache refresh schedule rejected, running without refresh")
	}
	defer refresher.Stop()
	logger.Info().Int("districts", cache.Size()).Msg("satellite cache loaded")

	fetcher := climate.NewService(cache, cfg.Climate.RequestTimeout, logger)
	if cfg.Climate.BaseURL != "" {
		fetcher = fetcher.WithBaseURL(cfg.Climate.BaseURL)
	}

	riskService := risk.NewService(cat, fetcher, model, logger)
	engine := credit.NewEngine(logger)

	riskHandler := risk.NewHandler(riskService, cat, repo, logger)
	creditHandler := credit.NewHandler(riskService, engine, repo, logger)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))
	router.Use(corsMiddleware())

	api := router.Group("/api")
	{
		riskHandler.RegisterRoutes(api)
		creditHandler.RegisterRoutes(api)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC(),
		})
	})

	srv := &http.Server{
		Addr:         cfg.Server.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger()
}

func requestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
