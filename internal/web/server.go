// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stockroom Contributors

// Package web exposes the warehouse over HTTP: account endpoints, the
// authenticated item/order lookups, donation intake, and the static
// frontend bundle.
package web

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/samber/oops"

	"github.com/yifei-yao/db-proj/internal/auth"
	"github.com/yifei-yao/db-proj/internal/inventory"
	"github.com/yifei-yao/db-proj/internal/observability"
)

// AuthService is the account surface the handlers need.
type AuthService interface {
	Register(ctx context.Context, params auth.RegisterParams) (*auth.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	UserInfo(ctx context.Context, username string) (*auth.User, error)
}

// InventoryService is the warehouse surface the handlers need.
type InventoryService interface {
	ItemLocations(ctx context.Context, itemID int) ([]inventory.PieceLocation, error)
	OrderItems(ctx context.Context, orderID int) ([]inventory.Item, error)
	Donate(ctx context.Context, donation *inventory.Donation) (int, error)
}

// Options configures the HTTP server.
type Options struct {
	Addr           string
	FrontendDir    string
	RequestTimeout time.Duration
	Metrics        *observability.Metrics
}

// Server is the public-facing HTTP server.
type Server struct {
	addr       string
	handler    http.Handler
	listener   net.Listener
	httpServer *http.Server
	running    atomic.Bool
}

// NewServer creates the HTTP server with all routes mounted.
func NewServer(opts Options, authSvc AuthService, invSvc InventoryService, gate *auth.Gate) (*Server, error) {
	if authSvc == nil {
		return nil, oops.Code("WEB_INVALID_DEPS").Errorf("auth service is required")
	}
	if invSvc == nil {
		return nil, oops.Code("WEB_INVALID_DEPS").Errorf("inventory service is required")
	}
	if gate == nil {
		return nil, oops.Code("WEB_INVALID_DEPS").Errorf("auth gate is required")
	}

	h := &handlers{
		auth:    authSvc,
		inv:     invSvc,
		gate:    gate,
		metrics: opts.Metrics,
	}

	return &Server{
		addr:    opts.Addr,
		handler: newRouter(h, opts),
	}, nil
}

func newRouter(h *handlers, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	if opts.Metrics != nil {
		r.Use(requestMetrics(opts.Metrics))
	}
	if opts.RequestTimeout > 0 {
		r.Use(middleware.Timeout(opts.RequestTimeout))
	}

	r.Post("/register", h.handleRegister)
	r.Post("/login", h.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)
		r.Get("/user-info", h.handleUserInfo)
		r.Get("/item/{item_id}", h.handleItem)
		r.Get("/order/{order_id}", h.handleOrder)
		r.Post("/donate", h.handleDonate)
	})

	if opts.FrontendDir != "" {
		r.NotFound(spaHandler(opts.FrontendDir))
	}

	return r
}

// Handler returns the assembled router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins serving. It returns an error channel that receives any
// errors from the HTTP server after it starts; the channel is closed on
// graceful shutdown.
func (s *Server) Start() (<-chan error, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, oops.Errorf("web server already running")
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		s.running.Store(false)
		return nil, oops.With("addr", s.addr).Wrap(err)
	}
	s.listener = listener

	httpSrv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.httpServer = httpSrv

	errCh := make(chan error, 1)

	go func() {
		defer close(errCh)
		if serveErr := httpSrv.Serve(listener); serveErr != nil && serveErr != http.ErrServerClosed {
			slog.Error("web server error", "error", serveErr)
			errCh <- serveErr
		}
	}()

	slog.Info("web server started", "addr", listener.Addr().String())
	return errCh, nil
}

// Stop gracefully shuts down the server, letting in-flight requests finish.
func (s *Server) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.running.Store(true)
			return oops.With("operation", "shutdown_web_server").Wrap(err)
		}
	}

	slog.Info("web server stopped")
	return nil
}

// Addr returns the listen address, or empty if not running.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return ""
}
