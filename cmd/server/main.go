package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lectorank/lectorank-backend/internal/config"
	"github.com/lectorank/lectorank-backend/internal/database"
	"github.com/lectorank/lectorank-backend/internal/handler"
	"github.com/lectorank/lectorank-backend/internal/logger"
	"github.com/lectorank/lectorank-backend/internal/repository"
	"github.com/lectorank/lectorank-backend/internal/router"
	"github.com/lectorank/lectorank-backend/internal/service"
	"github.com/lectorank/lectorank-backend/internal/validator"
	"github.com/lectorank/lectorank-backend/internal/worker"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting LectoRank Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	accountRepo := repository.NewAccountRepository(pool)
	lecturerRepo := repository.NewLecturerRepository(pool)
	voteRepo := repository.NewVoteRepository(pool)
	feedbackRepo := repository.NewFeedbackRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb)
	voteService := service.NewVoteService(accountRepo, lecturerRepo, voteRepo, rdb, log)
	lecturerService := service.NewLecturerService(lecturerRepo, voteRepo, rdb, log)
	lecturerAdminService := service.NewLecturerAdminService(lecturerRepo, lecturerRepo)
	accountService := service.NewAccountService(accountRepo, accountRepo, voteRepo, log)
	accountAdminService := service.NewAccountAdminService(accountRepo, accountRepo, log)
	feedbackService := service.NewFeedbackService(feedbackRepo, log)
	adminService := service.NewAdminService(adminRepo)
	dashboardService := service.NewDashboardService(accountRepo, lecturerRepo, voteRepo, feedbackRepo, lecturerService)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:          handler.NewAuthHandler(authService, accountService, adminService),
		Vote:          handler.NewVoteHandler(voteService),
		Lecturer:      handler.NewLecturerHandler(lecturerService),
		LecturerAdmin: handler.NewLecturerAdminHandler(lecturerAdminService),
		AccountAdmin:  handler.NewAccountAdminHandler(accountService, accountAdminService),
		Feedback:      handler.NewFeedbackHandler(feedbackService),
		Dashboard:     handler.NewDashboardHandler(dashboardService),
		WS:            handler.NewWSHandler(rdb, lecturerService, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	resetWorker := worker.NewResetWorker(voteService, rdb, cfg.ResetCheckInterval, log)
	go resetWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the reset worker.
	workerCancel()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
