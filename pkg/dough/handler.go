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

package dough

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/doughlab/dough/pkg/defaults"
	dougherrors "github.com/doughlab/dough/pkg/errors"
	"github.com/doughlab/dough/pkg/serializer"
	"github.com/doughlab/dough/pkg/server"
)

// cachedResponse is a serialized calculation response.
type cachedResponse struct {
	status int
	body   []byte
}

// Handler serves the engine over HTTP. Responses are cached by the
// canonical form of the configuration; the engine itself keeps no state.
type Handler struct {
	engine *Engine
	cache  *expirable.LRU[string, cachedResponse]
	ttl    time.Duration
}

// HandlerOption is a functional option for configuring Handler instances.
type HandlerOption func(*Handler)

// WithResultCache sets the response cache size and TTL. A size of zero
// disables caching.
func WithResultCache(size int, ttl time.Duration) HandlerOption {
	return func(h *Handler) {
		h.ttl = ttl
		if size <= 0 {
			h.cache = nil
			return
		}
		h.cache = expirable.NewLRU[string, cachedResponse](size, nil, ttl)
	}
}

// NewHandler creates a Handler for e.
func NewHandler(e *Engine, opts ...HandlerOption) *Handler {
	h := &Handler{
		engine: e,
		ttl:    defaults.ResultCacheTTL,
		cache:  expirable.NewLRU[string, cachedResponse](defaults.ResultCacheSize, nil, defaults.ResultCacheTTL),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HandleCalculate serves GET (query parameters) and POST (JSON, YAML or
// TOML body) calculation requests. Valid configurations return 200 with the
// result; configurations that fail validation return 422 with the result
// carrying field errors.
func (h *Handler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaults.CalculateHandlerTimeout)
	defer cancel()

	var cfg *Configuration
	var err error

	switch r.Method {
	case http.MethodGet:
		cfg, err = ParseConfigurationFromRequest(r)
	case http.MethodPost:
		cfg, err = ParseConfigurationFromBody(r.Body, r.Header.Get("Content-Type"))
		defer func() {
			if r.Body != nil {
				r.Body.Close()
			}
		}()
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
		return
	}

	if err != nil {
		server.WriteError(w, r, http.StatusBadRequest, dougherrors.ErrCodeInvalidRequest,
			"Invalid dough configuration", false, map[string]any{
				"error": err.Error(),
			})
		return
	}

	key := cfg.CacheKey()
	if h.cache != nil && key != "" {
		if cached, ok := h.cache.Get(key); ok {
			resultCacheHits.Inc()
			h.respond(w, cached, "HIT")
			return
		}
		resultCacheMisses.Inc()
	}

	resp, err := h.calculate(ctx, cfg)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to calculate dough", nil)
		return
	}

	if h.cache != nil && key != "" {
		h.cache.Add(key, resp)
	}
	h.respond(w, resp, "MISS")
}

func (h *Handler) calculate(ctx context.Context, cfg *Configuration) (cachedResponse, error) {
	type outcome struct {
		res *Result
		err error
	}
	done := make(chan outcome, 1)
	start := time.Now()

	go func() {
		res, err := h.engine.Calculate(cfg)
		done <- outcome{res, err}
	}()

	select {
	case <-ctx.Done():
		return cachedResponse{}, dougherrors.Wrap(dougherrors.ErrCodeTimeout, "calculation timed out", ctx.Err())
	case o := <-done:
		calculationDuration.Observe(time.Since(start).Seconds())
		observe(o.res, o.err)
		if o.err != nil {
			return cachedResponse{}, o.err
		}
		body, err := serializer.Marshal(serializer.FormatJSON, o.res)
		if err != nil {
			return cachedResponse{}, dougherrors.Wrap(dougherrors.ErrCodeInternal, "failed to serialize result", err)
		}
		status := http.StatusOK
		if !o.res.Valid() {
			status = http.StatusUnprocessableEntity
			slog.Debug("configuration rejected", "errors", o.res.Errors)
		}
		return cachedResponse{status: status, body: body}, nil
	}
}

func (h *Handler) respond(w http.ResponseWriter, resp cachedResponse, cacheState string) {
	if h.cache != nil {
		w.Header().Set("X-Cache", cacheState)
		if resp.status == http.StatusOK {
			w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(h.ttl.Seconds())))
		}
	}
	serializer.RespondRaw(w, resp.status, "application/json", resp.body)
}

// compareRequest is the body of a comparison request.
type compareRequest struct {
	A *Configuration `json:"a" yaml:"a" toml:"a"`
	B *Configuration `json:"b" yaml:"b" toml:"b"`
}

// HandleCompare serves POST requests comparing two configurations.
func (h *Handler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	defer r.Body.Close()

	ctx, cancel := context.WithTimeout(r.Context(), defaults.CompareHandlerTimeout)
	defer cancel()

	data, err := io.ReadAll(io.LimitReader(r.Body, defaults.ServerMaxBodyBytes))
	if err != nil {
		server.WriteError(w, r, http.StatusBadRequest, dougherrors.ErrCodeInvalidRequest,
			"Failed to read request body", false, map[string]any{"error": err.Error()})
		return
	}

	var req compareRequest
	if err := serializer.Unmarshal(serializer.FormatFromContentType(r.Header.Get("Content-Type")), data, &req); err != nil {
		server.WriteError(w, r, http.StatusBadRequest, dougherrors.ErrCodeInvalidRequest,
			"Invalid comparison request", false, map[string]any{"error": err.Error()})
		return
	}
	if req.A == nil || req.B == nil {
		server.WriteError(w, r, http.StatusBadRequest, dougherrors.ErrCodeInvalidRequest,
			"Comparison requires both a and b configurations", false, nil)
		return
	}

	cmp, err := h.engine.CompareConfigurations(ctx, req.A, req.B)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to compare configurations", nil)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, cmp)
}

// HandleStyles lists the style catalog, or a single style with ?name=.
func (h *Handler) HandleStyles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(h.ttl.Seconds())))
		serializer.RespondJSON(w, http.StatusOK, h.engine.Catalog().Listing())
		return
	}

	style, err := ParseStyle(name)
	if err != nil {
		server.WriteError(w, r, http.StatusNotFound, dougherrors.ErrCodeNotFound,
			"Style not found", false, map[string]any{"name": name, "available": GetStyles()})
		return
	}
	seed, err := h.engine.Catalog().Seed(style)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Style not found", nil)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, StyleEntry{Name: style, StyleSeed: seed})
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	server.WriteError(w, r, http.StatusMethodNotAllowed, dougherrors.ErrCodeMethodNotAllowed,
		"Method not allowed", false, map[string]any{
			"method":  r.Method,
			"allowed": allowed,
		})
}
