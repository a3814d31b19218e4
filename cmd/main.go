package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/lib/pq"

	"github.com/tournio/tournaments-api/config"
	"github.com/tournio/tournaments-api/db"
	"github.com/tournio/tournaments-api/handlers"
	appmiddleware "github.com/tournio/tournaments-api/middleware"
	"github.com/tournio/tournaments-api/repositories"
	"github.com/tournio/tournaments-api/routes"
	"github.com/tournio/tournaments-api/seed"
	"github.com/tournio/tournaments-api/services"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort), slog.String("env", cfg.Env))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	uowFactory := repositories.NewSQLUnitOfWorkFactory(dbConn)
	validate := validator.New()

	tournamentService := services.NewTournamentService(uowFactory, validate, logger)
	gameService := services.NewGameService(uowFactory, validate, logger)
	tokenService, err := services.NewTokenService(cfg.APIClientID, cfg.APIClientSecret, cfg.JWTSecretKey)
	if err != nil {
		logger.Error("failed to initialize token service", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("services initialized")

	// Seeding never runs in production regardless of the flag.
	if cfg.SeedOnStartup && cfg.Env != "production" {
		seeder := seed.New(uowFactory, logger)
		if err := seeder.Run(context.Background()); err != nil {
			logger.Error("seeding failed", slog.Any("error", err))
			os.Exit(1)
		}
	}

	router := routes.New(routes.Config{
		TournamentHandler: handlers.NewTournamentHandler(tournamentService, logger),
		GameHandler:       handlers.NewGameHandler(gameService, logger),
		TokenHandler:      handlers.NewTokenHandler(tokenService, logger),
		RequestLogger:     appmiddleware.RequestLogger(logger),
		JWTSecret:         cfg.JWTSecretKey,
	})
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
