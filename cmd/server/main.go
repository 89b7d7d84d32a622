package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"user_management/internal/config"
	"user_management/internal/handler"
	"user_management/internal/logger"
	"user_management/internal/repository"
	"user_management/internal/service"
	"user_management/internal/utils"
	"user_management/internal/validation"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Configuration ---
	cfg, dotenv, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{})
		log := logger.Get()
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	if !dotenv {
		log.Debug().Msg("no .env file found, relying on environment variables")
	}

	// --- Database Connection ---
	dbPool, err := config.ConnectDB(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer dbPool.Close()

	// --- Migrations ---
	if cfg.DB.AutoMigrate {
		if err := config.MigrateUp(cfg.DB, log); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate database")
		}
	}

	// --- Repositories ---
	roleRepo := repository.NewRoleRepository(dbPool)
	userRepo := repository.NewUserRepository(dbPool)
	assignmentRepo := repository.NewAssignmentRepository(dbPool)
	statsRepo := repository.NewStatsRepository(dbPool)

	// --- Services ---
	validator := validation.New(cfg.PasswordMinLength)
	hasher := utils.NewPasswordHasher(cfg.BcryptCost)
	services := handler.Services{
		Roles:       service.NewRoleService(roleRepo, validator),
		Users:       service.NewUserService(userRepo, validator, hasher),
		Assignments: service.NewAssignmentService(assignmentRepo, validator),
		Stats:       service.NewStatsService(statsRepo),
	}

	// --- Router ---
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handler.NewRouter(log, services, dbPool)

	// --- Start Server ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen failed")
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server exiting")
}
