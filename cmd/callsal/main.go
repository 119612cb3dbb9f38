// Command callsal runs the Call Sal portal API: the consultancy's
// lead-qualification chat, booking scheduler, and client/admin portal
// over a local key/value store.
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

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/Karasal/Call-Sal-sub000/internal/application"
	"github.com/Karasal/Call-Sal-sub000/internal/booking"
	"github.com/Karasal/Call-Sal-sub000/internal/chat"
	"github.com/Karasal/Call-Sal-sub000/internal/config"
	httptransport "github.com/Karasal/Call-Sal-sub000/internal/http"
	"github.com/Karasal/Call-Sal-sub000/internal/localstore"
	"github.com/Karasal/Call-Sal-sub000/internal/localstore/sqlite"
	"github.com/Karasal/Call-Sal-sub000/internal/logging"
	"github.com/Karasal/Call-Sal-sub000/internal/portal"
)

func main() {
	// Missing .env is fine; the environment may carry everything.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, os.Stdout)

	items, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := closeStore(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	idGenerator := func() string { return uuid.NewString() }
	now := time.Now

	store := portal.NewStore(items, idGenerator, portal.NewRegistrationKey, logger)

	var verifier application.Verifier
	if cfg.PasswordScheme == config.PasswordSchemeArgon2id {
		verifier = application.Argon2idVerifier
	}

	accounts := application.NewAccountService(store, verifier, logger)
	progress := application.NewProgressService(store, idGenerator, now, logger)
	billing := application.NewBillingService(store, idGenerator, now, logger)
	scheduler := booking.NewScheduler(store, idGenerator, now, logger)
	assistant := chat.NewService(nil, cfg.ChatFallback, logger)

	handlers := httptransport.NewHandlers(accounts, scheduler, progress, billing, assistant, logger)
	router := httptransport.NewRouter(handlers, logger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("portal API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

// openStore picks the storage backing: an ephemeral in-memory map, or
// the SQLite file that plays the browser profile's local storage.
func openStore(ctx context.Context, cfg config.Config) (portal.ItemStore, func() error, error) {
	if cfg.Ephemeral {
		return localstore.NewMemory(), func() error { return nil }, nil
	}

	store, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		return nil, nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	return store, store.Close, nil
}
