package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/akovalyov/storefront-api/internal/auth"
	"github.com/akovalyov/storefront-api/internal/config"
	"github.com/akovalyov/storefront-api/internal/db"
	handler "github.com/akovalyov/storefront-api/internal/handler/http"
	"github.com/akovalyov/storefront-api/internal/order"
	"github.com/akovalyov/storefront-api/internal/product"
	"github.com/akovalyov/storefront-api/internal/upload"
	"github.com/akovalyov/storefront-api/internal/user"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	log.Logger = log.With().Str("service", "storefront-api").Logger()

	log.Info().Msg("Storefront API starting...")

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	if cfg.IsDevelopment() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ctx := context.Background()
	database, err := db.New(ctx, cfg.Postgres)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close()

	if err := database.ApplyMigrations(cfg.Postgres); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply migrations")
	}

	uploader := upload.New(cfg.Upload.Endpoint, cfg.Upload.Preset)
	tokens := auth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	userRepo := user.NewRepository(database.Pool)
	productRepo := product.NewRepository(database.Pool)
	orderRepo := order.NewRepository(database.Pool)

	userSvc := user.NewService(userRepo, uploader)
	productSvc := product.NewService(productRepo, uploader)
	orderSvc := order.NewService(orderRepo, userRepo, productRepo)

	router := handler.NewRouter(handler.RouterDeps{
		Orders:   orderSvc,
		Products: productSvc,
		Users:    userSvc,
		Tokens:   tokens,
		Dev:      cfg.IsDevelopment(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.App.Port).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	log.Info().Msg("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Shutdown failed")
	}
	log.Info().Msg("Server stopped")
}
