package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mockmate/interview/internal/config"
	"mockmate/interview/internal/handlers"
	"mockmate/interview/internal/jobs"
	"mockmate/interview/internal/llm"
	_ "mockmate/interview/internal/llm/gemini"
	"mockmate/interview/internal/metrics"
	"mockmate/interview/internal/models"
	"mockmate/interview/internal/prompts"
	"mockmate/interview/internal/routers"
	"mockmate/interview/internal/sandbox"
	"mockmate/interview/internal/session"
	"mockmate/interview/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func registerRoutes(router *chi.Mux, cfg *config.Config, sessionHandler *handlers.SessionHandler, voiceHandler *handlers.VoiceHandler, healthHandler *handlers.HealthHandler) {
	routers.HealthRoutes(router, healthHandler)
	routers.InterviewRoutes(router, cfg.JWTSecret, sessionHandler, voiceHandler)
	router.Method(http.MethodGet, "/metrics", metrics.Handler())
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// initDatabase initializes the PostgreSQL database connection
func initDatabase() (*gorm.DB, error) {
	host := getEnv("POSTGRES_HOST", "localhost")
	user := getEnv("POSTGRES_USER", "postgres")
	password := getEnv("POSTGRES_PASSWORD", "postgres")
	dbname := getEnv("POSTGRES_DB", "postgres")
	port := getEnv("POSTGRES_PORT", "5432")
	sslmode := getEnv("POSTGRES_SSLMODE", "disable")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host, user, password, dbname, port, sslmode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.Interview{}, &models.Question{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

func main() {
	_ = godotenv.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Info("Configuration loaded",
		zap.String("provider", cfg.Provider))

	// prompt manager
	promptManager, err := prompts.NewPromptManager()
	if err != nil {
		logger.Fatal("Failed to initialize prompt manager", zap.Error(err))
	}

	// AI provider based on configuration
	aiProvider, err := llm.NewProvider(cfg.Provider)
	if err != nil {
		logger.Fatal("Failed to initialize AI provider", zap.Error(err))
	}

	db, err := initDatabase()
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}

	interviewStore := store.NewInterviewStore(db, logger)
	questionStore := store.NewQuestionStore(db, logger, cfg.RetryBackoff, cfg.HRRetryBackoff)

	sessionCfg := session.Config{
		Interviews: interviewStore,
		Questions:  questionStore,
		Provider:   aiProvider,
		Logger:     logger,
	}
	registry := session.NewRegistry(cfg.SessionTTL, logger)

	reaperJob := jobs.NewSessionReaperJob(registry, &jobs.ReaperConfig{
		Schedule: cfg.ReaperSchedule,
		Enabled:  true,
	}, logger)
	if err := reaperJob.Start(); err != nil {
		logger.Error("Failed to start session reaper", zap.Error(err))
	}

	sandboxClient := sandbox.NewClient(cfg.SandboxURL, cfg.SandboxTimeout, logger)

	sessionHandler := handlers.NewSessionHandler(registry, sessionCfg, interviewStore, sandboxClient, logger)
	voiceHandler := handlers.NewVoiceHandler(registry, cfg.AllowedOrigins, logger)
	healthHandler := handlers.NewHealthHandler(aiProvider, promptManager, cfg, db)

	router := chi.NewRouter()

	// cors middleware
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer, middleware.Timeout(60*time.Second))
	router.Use(metrics.Middleware)

	registerRoutes(router, cfg, sessionHandler, voiceHandler, healthHandler)

	serverAddr := ":" + cfg.Port

	// http server with timeouts
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// starting server in a goroutine
	go func() {
		logger.Info("Interview service starting", zap.String("addr", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// wait for interrupt signal to gracefully shutdown the server
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan

	logger.Info("Interview service shutting down...")

	reaperJob.Stop()

	// graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("Interview service exited")
}
