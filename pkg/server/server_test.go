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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dougherrors "github.com/doughlab/dough/pkg/errors"
)

func okHandler(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
	}
}

func serve(s *Server, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestNewOptions(t *testing.T) {
	custom := NewConfig()
	custom.Name = "dough-staging"
	custom.Port = 9090
	custom.RateLimit = 500

	tests := []struct {
		name        string
		opts        []Option
		wantName    string
		wantVersion string
		wantPort    int
		wantRoutes  []string
	}{
		{
			name:        "defaults",
			wantName:    "server",
			wantVersion: "undefined",
			wantPort:    8080,
			wantRoutes:  []string{"/"},
		},
		{
			name: "named api with routes",
			opts: []Option{
				WithName("doughd"),
				WithVersion("1.4.0"),
				WithHandler(map[string]http.HandlerFunc{"/v1/dough": okHandler(http.StatusOK)}),
				WithHandler(map[string]http.HandlerFunc{"/v1/styles": okHandler(http.StatusOK)}),
			},
			wantName:    "doughd",
			wantVersion: "1.4.0",
			wantPort:    8080,
			wantRoutes:  []string{"/", "/v1/dough", "/v1/styles"},
		},
		{
			name:        "whole config",
			opts:        []Option{WithConfig(custom)},
			wantName:    "dough-staging",
			wantVersion: "undefined",
			wantPort:    9090,
			wantRoutes:  []string{"/"},
		},
		{
			name:        "nil config ignored",
			opts:        []Option{WithConfig(nil)},
			wantName:    "server",
			wantVersion: "undefined",
			wantPort:    8080,
			wantRoutes:  []string{"/"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.opts...)
			require.NotNil(t, s.httpServer)
			require.NotNil(t, s.rateLimiter)
			assert.Equal(t, tt.wantName, s.config.Name)
			assert.Equal(t, tt.wantVersion, s.config.Version)
			assert.Equal(t, tt.wantPort, s.config.Port)

			var got []string
			for pattern := range s.config.Handlers {
				got = append(got, pattern)
			}
			assert.ElementsMatch(t, tt.wantRoutes, got)
		})
	}
}

func TestWithHandlerLaterReplaces(t *testing.T) {
	s := New(
		WithHandler(map[string]http.HandlerFunc{"/v1/dough": okHandler(http.StatusOK)}),
		WithHandler(map[string]http.HandlerFunc{"/v1/dough": okHandler(http.StatusAccepted)}),
	)
	assert.Equal(t, http.StatusAccepted, serve(s, http.MethodGet, "/v1/dough").Code)
}

func TestHealthAndReadiness(t *testing.T) {
	s := New()

	tests := []struct {
		name       string
		ready      bool
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"health", false, http.MethodGet, "/health", http.StatusOK, "healthy"},
		{"ready before start", false, http.MethodGet, "/ready", http.StatusServiceUnavailable, "not_ready"},
		{"ready after start", true, http.MethodGet, "/ready", http.StatusOK, "ready"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.setReady(tt.ready)
			rec := serve(s, tt.method, tt.path)
			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var resp HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantBody, resp.Status)
			assert.False(t, resp.Timestamp.IsZero())
		})
	}
}

func TestHealthRejectsWrites(t *testing.T) {
	s := New()
	for _, path := range []string{"/health", "/ready"} {
		rec := serve(s, http.MethodDelete, path)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, path)
		assert.Equal(t, http.MethodGet, rec.Header().Get("Allow"), path)
		assert.Equal(t, string(dougherrors.ErrCodeMethodNotAllowed), decodeError(t, rec).Code, path)
	}
}

func TestRootListing(t *testing.T) {
	s := New(
		WithName("doughd"),
		WithVersion("1.4.0"),
		WithHandler(map[string]http.HandlerFunc{
			"/v1/dough":  okHandler(http.StatusOK),
			"/v1/styles": okHandler(http.StatusOK),
		}),
	)

	rec := serve(s, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, rec.Code)

	var root RootResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &root))
	assert.Equal(t, "doughd", root.Service)
	assert.Equal(t, "1.4.0", root.Version)
	assert.Equal(t, []string{"/", "/health", "/metrics", "/ready", "/v1/dough", "/v1/styles"}, root.Routes)
}

func TestRootRejects(t *testing.T) {
	s := New()

	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
		wantCode   dougherrors.ErrorCode
	}{
		{"unknown path", http.MethodGet, "/v1/bagels", http.StatusNotFound, dougherrors.ErrCodeNotFound},
		{"post to root", http.MethodPost, "/", http.StatusMethodNotAllowed, dougherrors.ErrCodeMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(s, tt.method, tt.target)
			require.Equal(t, tt.wantStatus, rec.Code)
			resp := decodeError(t, rec)
			assert.Equal(t, string(tt.wantCode), resp.Code)
			assert.Equal(t, rec.Header().Get("X-Request-Id"), resp.RequestID)
		})
	}
}

func TestCustomRootHandlerKept(t *testing.T) {
	s := New(WithHandler(map[string]http.HandlerFunc{"/": okHandler(http.StatusTeapot)}))
	assert.Equal(t, http.StatusTeapot, serve(s, http.MethodGet, "/").Code)
}

func TestRoutesThroughMux(t *testing.T) {
	s := New(WithHandler(map[string]http.HandlerFunc{"/v1/dough": okHandler(http.StatusTeapot)}))
	s.setReady(true)

	tests := []struct {
		path   string
		status int
	}{
		{"/v1/dough", http.StatusTeapot},
		{"/health", http.StatusOK},
		{"/ready", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/", http.StatusOK},
		{"/unknown", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.status, serve(s, http.MethodGet, tt.path).Code)
		})
	}
}

func TestMetricsEndpointExposesRoutes(t *testing.T) {
	s := New(WithHandler(map[string]http.HandlerFunc{"/v1/dough/compare": okHandler(http.StatusOK)}))
	require.Equal(t, http.StatusOK, serve(s, http.MethodGet, "/v1/dough/compare").Code)

	rec := serve(s, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(),
		`dough_http_requests_total{method="GET",route="/v1/dough/compare",status="200"}`)
}

func TestStartStopsOnCancel(t *testing.T) {
	cfg := NewConfig()
	cfg.Port = 0
	cfg.ShutdownTimeout = 100 * time.Millisecond
	s := New(WithConfig(cfg))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.Start(ctx)
	}()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errChan:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("shutdown timed out")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	assert.False(t, s.ready, "server must report not ready after shutdown")
}
