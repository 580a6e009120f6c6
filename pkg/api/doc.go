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

// Package api wires the dough engine into the HTTP server.
//
// # Usage
//
//	import (
//	    "log"
//	    "github.com/doughlab/dough/pkg/api"
//	)
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatalf("server error: %v", err)
//	    }
//	}
//
// # Architecture
//
// The API layer is responsible for:
//   - Configuring structured logging with application name and version
//   - Building the engine, optionally from a constants file
//   - Registering the dough handlers
//   - Delegating server lifecycle management to pkg/server
//
// # Endpoints
//
// Application Endpoints (with rate limiting):
//   - GET  /v1/dough          - Calculate from query parameters
//   - POST /v1/dough          - Calculate from a JSON, YAML or TOML body
//   - POST /v1/dough/compare  - Compare two configurations ({"a": ..., "b": ...})
//   - GET  /v1/styles         - Style catalog; ?name= returns one style
//
// System Endpoints (no rate limiting):
//   - GET /health  - Health check (liveness probe)
//   - GET /ready   - Readiness check
//   - GET /metrics - Prometheus metrics
//
// # Query Parameters (GET /v1/dough)
//
// Every configuration field is accepted by its JSON name, plus short
// aliases: style, mode, yeast, technique, ambient, balls, bakingTemp.
//
//	curl "http://localhost:8080/v1/dough?style=new-york&balls=4&ballWeight=280&unit=oz"
//
// # Request Body (POST /v1/dough)
//
// Either a bare configuration or a DoughConfig document:
//
//	kind: DoughConfig
//	apiVersion: dough.doughlab.dev/v1alpha1
//	metadata:
//	  name: friday-pizza
//	spec:
//	  recipeStyle: neapolitan
//	  calculationMode: advanced
//	  hydration: 65
//	  yeastType: instant
//	  fermentationTechnique: cold-retard
//	  numberOfBalls: 6
//
// Responses are 200 for a valid configuration and 422 when validation
// fails; the 422 body is still a DoughResult carrying field errors.
//
// # Configuration
//
// The server is configured via environment variables (a .env file is
// loaded by cmd/doughd):
//   - PORT: HTTP server port (default: 8080)
//   - LOG_LEVEL: Logging level (debug, info, warn, error)
//   - DOUGH_TABLES: constants file overlaid on the embedded tables
//   - DOUGH_CACHE_SIZE: response cache entries, 0 disables
//
// Version information is set at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/doughlab/dough/pkg/api.version=1.0.0'"
package api
