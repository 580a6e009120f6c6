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

package api

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/doughlab/dough/pkg/defaults"
	"github.com/doughlab/dough/pkg/dough"
	"github.com/doughlab/dough/pkg/logging"
	"github.com/doughlab/dough/pkg/server"
)

const (
	name           = "doughd"
	versionDefault = "dev"

	// EnvTables points at a constants file overlaid on the embedded tables.
	EnvTables = "DOUGH_TABLES"
	// EnvCacheSize overrides the response cache size; 0 disables it.
	EnvCacheSize = "DOUGH_CACHE_SIZE"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/doughlab/dough/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve starts the API server and blocks until shutdown.
// It configures logging, builds the engine, sets up routes, and handles
// graceful shutdown.
func Serve() error {
	ctx := context.Background()

	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	e, err := newEngine(os.Getenv(EnvTables))
	if err != nil {
		slog.Error("failed to initialize engine", "error", err)
		return err
	}

	h := dough.NewHandler(e, dough.WithResultCache(cacheSize(), defaults.ResultCacheTTL))

	s := server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(routes(h)),
	)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

// routes maps the application endpoints to their handlers.
func routes(h *dough.Handler) map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"/v1/dough":         h.HandleCalculate,
		"/v1/dough/compare": h.HandleCompare,
		"/v1/styles":        h.HandleStyles,
	}
}

// newEngine builds the engine, overlaying tablesPath when set.
func newEngine(tablesPath string) (*dough.Engine, error) {
	tablesPath = strings.TrimSpace(tablesPath)
	if tablesPath == "" {
		return dough.NewEngine()
	}

	t, err := dough.LoadTables(tablesPath)
	if err != nil {
		return nil, err
	}
	slog.Info("loaded constants", "path", tablesPath)
	return dough.NewEngine(dough.WithTables(t))
}

func cacheSize() int {
	s := strings.TrimSpace(os.Getenv(EnvCacheSize))
	if s == "" {
		return defaults.ResultCacheSize
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		slog.Warn("ignoring invalid cache size", "env", EnvCacheSize, "value", s)
		return defaults.ResultCacheSize
	}
	return n
}
