package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Hiba-Rafique/Calling-System/internal/adapter/driven/persistence/memory"
	"github.com/Hiba-Rafique/Calling-System/internal/adapter/driven/persistence/postgres"
	"github.com/Hiba-Rafique/Calling-System/internal/adapter/driven/push"
	handler "github.com/Hiba-Rafique/Calling-System/internal/adapter/driving/http"
	"github.com/Hiba-Rafique/Calling-System/internal/config"
	"github.com/Hiba-Rafique/Calling-System/internal/core/port"
	"github.com/Hiba-Rafique/Calling-System/internal/core/service"
)

func main() {
	w := zerolog.ConsoleWriter{Out: os.Stdout}
	l := zerolog.New(w).With().Timestamp().Caller().Logger()
	log.Logger = l

	cfg, err := config.Load()
	if err != nil {
		l.Fatal().Err(err).Msg("Failed to load config")
	}

	var (
		store port.CallLogStore
		dir   port.UserDirectory
	)
	if cfg.DatabaseURL != "" {
		db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
		if err != nil {
			l.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer db.Close()
		store = postgres.NewCallLog(db)
		dir = postgres.NewDirectory(db)
	} else {
		l.Info().Msg("No DATABASE_URL set, using in-memory stores")
		store = memory.NewCallLog()
		dir = memory.NewDirectory()
	}

	var notifier port.PushNotifier = push.NewNoop()
	if cfg.PushURL != "" {
		notifier = push.NewWebhook(cfg.PushURL, cfg.PushTimeout)
	}

	bridge := service.NewCallLogBridge(store, dir)
	go bridge.Run()

	coordinator := service.NewCoordinator(bridge, dir, notifier, cfg.OfferTimeout)

	h := handler.NewHandler(coordinator)
	r := h.NewRouter()

	srv := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: r,
	}

	go func() {
		l.Info().Str("addr", cfg.ServerAddress).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	l.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		l.Error().Err(err).Msg("Server forced to shutdown")
	}

	coordinator.Shutdown()
	bridge.Stop()
	l.Info().Msg("Server exited")
}
