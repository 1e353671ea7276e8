package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/polishettivamshi/mockmate-interview-simulator/internal/config"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/feedback"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/handlers"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/handoff"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/jobs"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/llm"
	_ "github.com/polishettivamshi/mockmate-interview-simulator/internal/llm/mock"
	_ "github.com/polishettivamshi/mockmate-interview-simulator/internal/llm/openrouter"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/metrics"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/models"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/prompts"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/repositories"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/routers"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/utils"
)

// initDatabase opens the PostgreSQL connection and migrates the schema.
func initDatabase(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Interview{}, &models.Question{}, &models.Feedback{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}

func main() {
	_ = godotenv.Load()

	utils.InitLogger()
	logger := utils.GetLogger()
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}
	logger.Info("Configuration loaded", zap.String("provider", cfg.Provider))

	promptManager, err := prompts.NewManager()
	if err != nil {
		logger.Fatal("Failed to initialize prompt manager", zap.Error(err))
	}

	provider, err := llm.NewProvider(cfg.Provider)
	if err != nil {
		logger.Fatal("Failed to initialize AI provider", zap.Error(err))
	}

	db, err := initDatabase(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}

	handoffStore := handoff.NewStore(cfg.RedisAddr, cfg.RedisPassword)
	{
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := handoffStore.Ping(ctx); err != nil {
			logger.Warn("Redis unreachable, transcript handoff disabled", zap.Error(err))
			_ = handoffStore.Close()
			handoffStore = nil
		}
		cancel()
	}

	users := &repositories.UserRepository{DB: db}
	interviews := &repositories.InterviewRepository{DB: db}
	feedbacks := &repositories.FeedbackRepository{DB: db}
	generator := feedback.NewGenerator(provider, promptManager, interviews, feedbacks, handoffStore)

	reaper := jobs.NewReaperJob(interviews, cfg.ReaperSchedule, cfg.ReaperGraceMinutes)
	if err := reaper.Start(); err != nil {
		logger.Error("Failed to start interview reaper", zap.Error(err))
	}

	router := chi.NewRouter()

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	router.Use(chimiddleware.RequestID, chimiddleware.RealIP, chimiddleware.Logger, chimiddleware.Recoverer, chimiddleware.Timeout(60*time.Second))
	router.Use(metrics.Middleware())

	routers.HealthRoutes(router, handlers.NewHealthHandler(db, provider, promptManager, handoffStore))
	routers.AuthRoutes(router, handlers.NewAuthHandler(users, cfg.JWTSecret), cfg.JWTSecret)
	routers.InterviewRoutes(router, handlers.NewInterviewHandler(interviews, provider, promptManager, handoffStore), cfg.JWTSecret)
	routers.FeedbackRoutes(router, handlers.NewFeedbackHandler(interviews, feedbacks, generator), cfg.JWTSecret)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("MockMate server starting", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan

	logger.Info("MockMate server shutting down...")

	reaper.Stop()
	if handoffStore != nil {
		_ = handoffStore.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("MockMate server exited")
}
