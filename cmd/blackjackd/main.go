package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cardhouse/blackjackd/engine"
	"github.com/cardhouse/blackjackd/internal/cache"
	"github.com/cardhouse/blackjackd/internal/config"
	"github.com/cardhouse/blackjackd/internal/database"
	"github.com/cardhouse/blackjackd/internal/game"
	"github.com/cardhouse/blackjackd/internal/ws"
)

func main() {
	cfg := config.Load()

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	} else {
		logrus.Warnf("invalid log level %q, using info", cfg.LogLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Postgres and Redis are optional; the server degrades to an
	// in-memory-only table when either is absent.
	if cfg.DatabaseURL != "" {
		if err := database.Connect(ctx, cfg.DatabaseURL); err != nil {
			logrus.WithError(err).Warn("running without round persistence")
		} else {
			defer database.Close()
		}
	}
	if cfg.RedisURL != "" {
		if err := cache.Connect(ctx, cfg.RedisURL); err != nil {
			logrus.WithError(err).Warn("running without action history")
		}
	}

	rules := engine.Rules{
		NumDecks:         cfg.NumDecks,
		StartingChips:    cfg.StartingChips,
		MaxSplits:        engine.DefaultRules().MaxSplits,
		ReshuffleBelow:   engine.DefaultRules().ReshuffleBelow,
		DealerHitsSoft17: cfg.DealerHitsSoft17,
	}
	registry := game.NewRegistry(rules, cfg.BetUnit, cfg.SessionIdleTimeout)
	go registry.RunJanitor(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	ws.NewHandler(registry, ws.NewTokenIssuer(cfg.TokenSecret)).Register(mux)

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("addr", cfg.ListenAddr).Info("blackjackd listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logrus.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logrus.WithError(err).Error("graceful shutdown failed")
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("server failed")
		}
	}
}
