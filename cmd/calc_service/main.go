package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"renal-calculator/internal/auth"
	"renal-calculator/internal/config"
	"renal-calculator/internal/logging"
	"renal-calculator/internal/server"
	"renal-calculator/internal/storage"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("error loading config: %v", err)
	}
	log, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.Fatalf("error configuring logger: %v", err)
	}

	db, err := storage.NewSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("error opening database: %v", err)
	}
	defer db.Close()
	gdb, err := storage.OpenGorm(db)
	if err != nil {
		log.Fatalf("error opening gorm: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var revoker auth.Revoker = auth.NewMemoryRevoker()
	if cfg.RedisAddr != "" {
		rr, err := auth.NewRedisRevoker(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			log.Fatalf("error initializing redis: %v", err)
		}
		defer rr.Close()
		revoker = rr
		log.WithField("addr", cfg.RedisAddr).Info("token revocation backed by redis")
	}

	svc := auth.NewService(gdb, cfg.JWTSecret, cfg.TokenTTL, revoker)
	srv := &http.Server{
		Addr: cfg.Addr,
		Handler: server.NewRouter(server.Deps{
			DB:           db,
			Auth:         svc,
			Log:          log,
			HistoryLimit: cfg.HistoryLimit,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("shutdown")
		}
	}()

	log.WithField("addr", cfg.Addr).Info("calc service listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
	log.Info("calc service stopped")
}
