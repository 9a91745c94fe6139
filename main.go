package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aptmap/backend/internal/config"
	"github.com/aptmap/backend/internal/db"
	"github.com/aptmap/backend/internal/handler"
	"github.com/aptmap/backend/internal/logging"
	"github.com/aptmap/backend/internal/metrics"
	"github.com/aptmap/backend/internal/service"
	"github.com/gin-gonic/gin"
)

// @title Apartment Map API
// @version 1.0
// @description Account, session and apartment data API.
// @BasePath /
func main() {
	if err := run(); err != nil {
		slog.Error("server.exit", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logging.New(cfg.App.LogLevel)
	if !cfg.App.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	// 토큰 설정이 잘못되면 DB에 붙기 전에 종료합니다.
	tokens, err := service.NewTokenService(cfg.Auth)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var tunnel *db.Tunnel
	var dialer db.Dialer
	if cfg.SSH.Enabled() {
		tunnel, err = db.NewTunnel(cfg.SSH, log)
		if err != nil {
			return err
		}
		defer func() {
			if err := tunnel.Close(); err != nil {
				log.Warn("ssh.tunnel.close.fail", "err", err)
			}
		}()
		dialer = tunnel
	}

	pool, err := db.NewPostgresPool(ctx, cfg.Postgres, dialer)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		return err
	}

	m := metrics.New()
	pg := &db.Postgres{Pool: pool}
	retrier := db.NewRetrier(cfg.Postgres, log, m)

	authService := service.NewAuthService(db.NewRetryingUserStore(pg, retrier), tokens, cfg.App, m, log)
	apartmentService := service.NewApartmentService(db.NewRetryingApartmentStore(pg, retrier))

	router, err := handler.NewRouter(handler.RouterDeps{
		App:        cfg.App,
		Auth:       authService,
		Apartments: apartmentService,
		Metrics:    m,
		Log:        log,
		Ping: func(ctx context.Context) error {
			return db.Ping(ctx, pool, 2*time.Second)
		},
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.App.ListenPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Info("server.start", "addr", srv.Addr, "env", cfg.App.Env, "ssh_tunnel", tunnel != nil)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("server.stop", "reason", "signal")
	case err := <-errCh:
		return err
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	// 풀과 터널은 defer 순서대로 요청이 모두 끝난 뒤 닫힙니다.
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server.shutdown.fail", "err", err)
		return err
	}

	log.Info("server.stopped")
	return nil
}
