// @title Wiki Quiz API
// @version 1.0
// @description Generates multiple-choice quizzes from Wikipedia articles and keeps a history of them.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8000
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "wiki-quiz/cmd/api/docs"
	"wiki-quiz/internal/adapter"
	"wiki-quiz/internal/adapter/llm"
	"wiki-quiz/internal/adapter/quizgen"
	"wiki-quiz/internal/adapter/scraper"
	"wiki-quiz/internal/cache"
	"wiki-quiz/internal/config"
	"wiki-quiz/internal/database"
	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/handler"
	"wiki-quiz/internal/logger"
	"wiki-quiz/internal/middleware"
	"wiki-quiz/internal/repository"
	"wiki-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Schema first, then the pool the app uses
	if err := database.RunMigrations(cfg.DB, appLogger); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}
	db, err := database.Open(cfg.DB, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	var quizRepository domain.QuizRepository = repository.NewQuizDatabaseAdapter(db)
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(context.Background(), cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		quizRepository = repository.NewCachedQuizRepository(quizRepository, adapter.NewRedisCacheAdapter(redisClient), cfg.Redis.QuizTTL, appLogger)
		appLogger.Info("Quiz detail cache enabled", zap.String("address", cfg.Redis.Address))
	}

	extractor := scraper.NewWikipediaExtractorFromConfig(cfg.Scraper, appLogger)

	completer, err := newCompleter(context.Background(), cfg.LLM, llm.NewModel, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create LLM client", zap.String("provider", cfg.LLM.Provider), zap.Error(err))
	}
	synthesizer := quizgen.NewSynthesizer(completer, appLogger)

	quizService := service.NewQuizService(extractor, synthesizer, quizRepository, appLogger)
	quizHandler := handler.NewQuizHandler(quizService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept," + middleware.RequestIDHeader,
		MaxAge:       300,
	}))
	app.Use(recover.New())

	handler.RegisterRoutes(app, quizHandler)

	go func() {
		appLogger.Info("Starting server", zap.String("address", cfg.ServerAddress()), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(cfg.ServerAddress()); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}

type modelFactory func(ctx context.Context, cfg config.LLMConfig) (llms.Model, error)

// newCompleter builds the oracle client. A configuration problem such as a
// missing credential leaves the server up with a nil completer, so generation
// reports it per request. Any other failure is returned.
func newCompleter(ctx context.Context, cfg config.LLMConfig, newModel modelFactory, log *zap.Logger) (domain.TextCompleter, error) {
	model, err := newModel(ctx, cfg)
	if err != nil {
		if domain.IsCode(err, domain.ErrConfiguration) {
			log.Warn("LLM is not configured, quiz generation will fail",
				zap.String("provider", cfg.Provider),
				zap.Error(err),
			)
			return nil, nil
		}
		return nil, err
	}
	log.Info("LLM initialized", zap.String("provider", cfg.Provider), zap.String("model", cfg.Model))
	return llm.NewCompleter(model, cfg.Timeout, cfg.Temperature, log), nil
}
