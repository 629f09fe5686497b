package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/Mind-Measure/mind-measure-mobile-sub000/pkg/validator"

	"github.com/Mind-Measure/mind-measure-mobile-sub000/internal/adapter/handler"
	"github.com/Mind-Measure/mind-measure-mobile-sub000/internal/adapter/repository"
	"github.com/Mind-Measure/mind-measure-mobile-sub000/internal/domain/repositories"
	"github.com/Mind-Measure/mind-measure-mobile-sub000/internal/infrastructure/cache"
	"github.com/Mind-Measure/mind-measure-mobile-sub000/internal/infrastructure/database"
	"github.com/Mind-Measure/mind-measure-mobile-sub000/internal/usecase/audio"
	"github.com/Mind-Measure/mind-measure-mobile-sub000/internal/usecase/enrichment"
	"github.com/Mind-Measure/mind-measure-mobile-sub000/internal/usecase/text"
	"github.com/Mind-Measure/mind-measure-mobile-sub000/internal/usecase/visual"
	pkgai "github.com/Mind-Measure/mind-measure-mobile-sub000/pkg/ai"
	"github.com/Mind-Measure/mind-measure-mobile-sub000/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HideBanner = true
	e.HidePort = false

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.BodyLimit(cfg.Server.BodyLimit))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderXRequestID},
	}))

	log.Println("🔧 Initializing dependencies...")

	// Derived records are only persisted when a database is configured
	var records repositories.DashboardRepository
	if cfg.Database.Enabled {
		log.Println("📦 Connecting to database...")
		db, err := database.NewPostgresDB(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.CloseDB(db)

		if cfg.Database.AutoMigrate {
			if err := database.AutoMigrate(db); err != nil {
				log.Fatalf("Failed to run migrations: %v", err)
			}
		} else {
			log.Println("🔄 Skipping migrations; apply them with sql-migrate")
		}
		records = repository.NewDashboardRepository(db)
	} else {
		log.Println("⚠️  DB_ENABLED=false, dashboard records will not be persisted")
	}

	var baselines repositories.BaselineStore
	switch cfg.Pipeline.BaselineStore {
	case config.BaselineStoreRedis:
		log.Println("📦 Connecting to Redis...")
		redisClient, err := cache.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		baselines = cache.NewRedisBaselineStore(redisClient, cfg.Pipeline.BaselineTTL)
	case config.BaselineStoreMemory:
		memStore := cache.NewMemoryBaselineStore(cfg.Pipeline.BaselineTTL)
		defer memStore.Close()
		baselines = memStore
	default:
		log.Println("⚠️  BASELINE_STORE=none, personal baselines disabled")
	}

	log.Println("🤖 Initializing analyzers and extractors...")
	var textClient text.TextClient
	if cfg.Pipeline.TextStrategy == config.TextStrategyProvider {
		textClient = pkgai.NewOpenAITextClient(&cfg.LLM)
	}
	analyzer := text.NewAnalyzer(cfg, textClient, logger)

	audioExtractor := audio.NewExtractor(logger)
	visualExtractor := visual.NewExtractor(pkgai.NewFaceClient(&cfg.Faces), logger)

	svc := enrichment.NewService(
		analyzer,
		audioExtractor,
		visualExtractor,
		baselines,
		records,
		cfg.Pipeline,
		logger,
	)

	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, handler.NewCheckInHandler(svc, logger))
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🧠 Text strategy: %s (fallback: %s)", cfg.Pipeline.TextStrategy, cfg.Pipeline.TextFallback)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Printf("❌ Server forced to shutdown: %v", err)
		return
	}

	log.Println("✅ Server stopped gracefully")
}

func newLogger(environment string) (*zap.Logger, error) {
	if environment == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
