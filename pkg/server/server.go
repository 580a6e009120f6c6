// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"sync"
	"syscall"

	dougherrors "github.com/doughlab/dough/pkg/errors"
	"github.com/doughlab/dough/pkg/serializer"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Option configures a Server.
type Option func(*Server)

// WithName sets the server name reported by the root handler and logs.
func WithName(name string) Option {
	return func(s *Server) {
		s.config.Name = name
	}
}

// WithVersion sets the server version.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.config.Version = version
	}
}

// WithHandler registers additional routes. Later registrations of the same
// pattern replace earlier ones.
func WithHandler(handlers map[string]http.HandlerFunc) Option {
	return func(s *Server) {
		if s.config.Handlers == nil {
			s.config.Handlers = make(map[string]http.HandlerFunc, len(handlers))
		}
		for pattern, h := range handlers {
			s.config.Handlers[pattern] = h
		}
	}
}

// WithConfig replaces the whole configuration.
func WithConfig(cfg *Config) Option {
	return func(s *Server) {
		if cfg != nil {
			s.config = cfg
		}
	}
}

// Server represents the HTTP server
type Server struct {
	config      *Config
	httpServer  *http.Server
	rateLimiter *rate.Limiter
	mu          sync.RWMutex
	ready       bool
}

// RootResponse is returned by the default "/" handler.
type RootResponse struct {
	Service string   `json:"service" yaml:"service"`
	Version string   `json:"version" yaml:"version"`
	Routes  []string `json:"routes" yaml:"routes"`
}

// New creates a new server instance. /health, /ready and /metrics are
// always registered; a "/" listing the routes is added unless provided.
func New(opts ...Option) *Server {
	s := &Server{
		config: NewConfig(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.config.Handlers == nil {
		s.config.Handlers = make(map[string]http.HandlerFunc)
	}
	if _, exists := s.config.Handlers["/"]; !exists {
		s.config.Handlers["/"] = s.rootHandler()
	}

	s.rateLimiter = rate.NewLimiter(s.config.RateLimit, s.config.RateLimitBurst)

	s.httpServer = &http.Server{
		Addr:              net.JoinHostPort(s.config.Address, strconv.Itoa(s.config.Port)),
		Handler:           s.setupRoutes(),
		ReadTimeout:       s.config.ReadTimeout,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
	}

	return s
}

// setupRoutes configures all HTTP routes and middleware
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	// System endpoints (no rate limiting)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	mux.Handle("/metrics", promhttp.Handler())

	for pattern, handler := range s.config.Handlers {
		mux.HandleFunc(pattern, s.withRouteMiddleware(pattern, handler))
	}

	return mux
}

func (s *Server) routes() []string {
	routes := []string{"/health", "/ready", "/metrics"}
	for pattern := range s.config.Handlers {
		routes = append(routes, pattern)
	}
	slices.Sort(routes)
	return routes
}

func (s *Server) rootHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			WriteError(w, r, http.StatusNotFound, dougherrors.ErrCodeNotFound,
				fmt.Sprintf("no route for %s", r.URL.Path), false, nil)
			return
		}
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			WriteError(w, r, http.StatusMethodNotAllowed, dougherrors.ErrCodeMethodNotAllowed,
				"Method not allowed", false, nil)
			return
		}
		serializer.RespondJSON(w, http.StatusOK, RootResponse{
			Service: s.config.Name,
			Version: s.config.Version,
			Routes:  s.routes(),
		})
	}
}

func (s *Server) setReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

// Start serves until ctx is cancelled, then shuts down gracefully.
// A clean shutdown returns nil.
func (s *Server) Start(ctx context.Context) error {
	s.setReady(true)

	slog.Info("server listening",
		"name", s.config.Name,
		"address", s.httpServer.Addr,
	)

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	case err := <-errChan:
		s.setReady(false)
		if err != nil {
			return dougherrors.Wrap(dougherrors.ErrCodeUnavailable, "server failed", err)
		}
		return nil
	}
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.setReady(false)

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	slog.Info("shutting down server", "timeout", s.config.ShutdownTimeout.String())
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return dougherrors.Wrap(dougherrors.ErrCodeTimeout, "graceful shutdown failed", err)
	}
	return nil
}

// Run starts the server and blocks until SIGINT or SIGTERM.
func (s *Server) Run(ctx context.Context) error {
	slog.Info("starting server",
		"name", s.config.Name,
		"version", s.config.Version,
		"address", s.httpServer.Addr,
		"rateLimit", float64(s.config.RateLimit),
		"rateLimitBurst", s.config.RateLimitBurst,
		"readTimeout", s.config.ReadTimeout.String(),
		"writeTimeout", s.config.WriteTimeout.String(),
		"shutdownTimeout", s.config.ShutdownTimeout.String(),
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.Start(gctx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
