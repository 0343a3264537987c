package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lromero/authgate-be/internal/api"
	"github.com/lromero/authgate-be/internal/auth"
	"github.com/lromero/authgate-be/internal/config"
	"github.com/lromero/authgate-be/internal/logger"
	"github.com/lromero/authgate-be/internal/services"
	"github.com/lromero/authgate-be/internal/store"
	"github.com/rs/zerolog/log"
)

func main() {
	logger.Init()

	// Load configuration; refuses to start without a signing secret.
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Set up the credential store, seeding it from the bundled default
	// document on first start.
	fileStore := store.New(cfg.AuthFilePath, cfg.DefaultAuthPath)

	// Set up services
	tokens := auth.NewTokenManager([]byte(cfg.JWTSecret), time.Hour)
	authService := services.NewAuthService(fileStore, tokens)

	// Set up router
	router := api.NewRouter(authService)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
