// @title DairySync API
// @version 1.0
// @description Registro diario de animales de granja y dashboard veterinario.
// @BasePath /
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dairysync/internal/adapters/auth/session"
	"dairysync/internal/adapters/storage/sqlstore"
	"dairysync/internal/config"
	"dairysync/internal/platform/logger"
	"dairysync/internal/router"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
		File:   cfg.LogFile,
	})
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("server error", map[string]any{"error": err})
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := router.Options{
		Logger:      log,
		Cookie:      session.Cookie{Name: cfg.CookieName, Secure: cfg.CookieSecure},
		CORSOrigins: cfg.CORSOrigins,
		Location:    cfg.Location,
		DevAuth:     cfg.DevAuth,
	}

	if !cfg.UsesMemoryStore() {
		store, err := sqlstore.Open(cfg.DBDriver, cfg.DBDSN)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Migrate(ctx); err != nil {
			return err
		}
		opts.Store = store
		log.Info("using sql store", map[string]any{"driver": store.Driver()})
	} else {
		log.Warn("DB_DRIVER not set, using in-memory store", nil)
	}

	secret := cfg.SessionSecret
	if secret == "" {
		secret = randomSecret()
		log.Warn("SESSION_SECRET not set, sessions will not survive a restart", nil)
	}
	opts.Sessions = session.NewManager(session.Config{Secret: secret, TTL: cfg.SessionTTL})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
