// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stockroom Contributors

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/yifei-yao/db-proj/internal/auth"
	authpg "github.com/yifei-yao/db-proj/internal/auth/postgres"
	"github.com/yifei-yao/db-proj/internal/config"
	"github.com/yifei-yao/db-proj/internal/inventory"
	invpg "github.com/yifei-yao/db-proj/internal/inventory/postgres"
	"github.com/yifei-yao/db-proj/internal/logging"
	"github.com/yifei-yao/db-proj/internal/observability"
	"github.com/yifei-yao/db-proj/internal/store"
	"github.com/yifei-yao/db-proj/internal/web"
)

const shutdownTimeout = 10 * time.Second

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the stockroom HTTP server",
		Long: `Start the HTTP server: the API endpoints, the static frontend
bundle, and the metrics/health endpoints on a separate port.`,
		RunE: runServe,
	}
	config.RegisterFlags(cmd.Flags())
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logging.SetDefault("stockroom", version, cfg.LogFormat)

	ctx := cmd.Context()

	pool, err := store.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return oops.Code("DB_CONNECT_FAILED").With("operation", "connect to database").Wrap(err)
	}
	defer pool.Close()

	issuer, err := auth.NewTokenIssuer([]byte(cfg.TokenSecret), cfg.TokenTTL)
	if err != nil {
		return err
	}

	authSvc, err := auth.NewService(authpg.NewUserRepository(pool), auth.NewArgon2idHasher(), issuer)
	if err != nil {
		return err
	}

	invSvc, err := inventory.NewService(invpg.NewRepository(pool))
	if err != nil {
		return err
	}

	var (
		metrics *observability.Metrics
		obsSrv  *observability.Server
		obsErr  <-chan error
	)
	if cfg.MetricsAddr != "" {
		obsSrv = observability.NewServer(cfg.MetricsAddr, func(ctx context.Context) bool {
			return pool.Ping(ctx) == nil
		})
		obsErr, err = obsSrv.Start()
		if err != nil {
			return err
		}
		metrics = obsSrv.Metrics()
	}

	webSrv, err := web.NewServer(web.Options{
		Addr:           cfg.HTTPAddr,
		FrontendDir:    cfg.FrontendDir,
		RequestTimeout: cfg.RequestTimeout,
		Metrics:        metrics,
	}, authSvc, invSvc, auth.NewGate(issuer))
	if err != nil {
		return err
	}

	webErr, err := webSrv.Start()
	if err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var runErr error
	select {
	case sig := <-sigCh:
		slog.Info("shutting down", "signal", sig.String())
	case err := <-webErr:
		if err != nil {
			runErr = oops.With("server", "web").Wrap(err)
		}
	case err := <-obsErr: // nil channel when metrics are disabled; never fires
		if err != nil {
			runErr = oops.With("server", "observability").Wrap(err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := webSrv.Stop(shutdownCtx); err != nil {
		slog.Error("web server shutdown failed", "error", err)
	}
	if obsSrv != nil {
		if err := obsSrv.Stop(shutdownCtx); err != nil {
			slog.Error("observability server shutdown failed", "error", err)
		}
	}

	return runErr
}
