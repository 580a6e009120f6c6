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

// Package server provides the HTTP server shared by the dough API: routing,
// a middleware chain, health probes, Prometheus metrics and graceful
// shutdown. Domain handlers are registered by the caller.
//
// # Usage
//
//	s := server.New(
//	    server.WithName("doughd"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/v1/dough": h.HandleCalculate,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// # Built-in Endpoints
//
//	GET /         service name, version and registered routes
//	GET /health   liveness, always 200
//	GET /ready    readiness, 503 until the server is listening
//	GET /metrics  Prometheus exposition
//
// # Middleware
//
// Every registered handler runs behind, outermost first:
//
//	metrics → version → request ID → panic recovery → rate limit → logging
//
// Request ID Tracking:
//
//	Requests may carry an X-Request-Id header (UUID format). Invalid or
//	missing IDs are replaced. The ID is echoed in the response header and
//	included in every error body.
//
// Version Negotiation:
//
//	Accept: application/vnd.doughlab.dough.v1+json selects an API version.
//	The negotiated version is returned in X-API-Version.
//
// Rate Limiting:
//
//	A token bucket (golang.org/x/time/rate) shared by all routes. Responses
//	carry X-RateLimit-Limit, X-RateLimit-Remaining and X-RateLimit-Reset;
//	rejected requests get 429 with Retry-After.
//
// # Error Handling
//
// All errors return a consistent JSON structure:
//
//	{
//	  "code": "VALIDATION_FAILED",
//	  "message": "configuration a is invalid",
//	  "details": {"fields": ["hydration"]},
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2026-01-10T12:00:00Z",
//	  "retryable": false
//	}
//
// WriteErrorFromErr maps pkg/errors codes onto HTTP statuses; see
// HTTPStatusFromCode.
//
// # Configuration
//
// NewConfig reads PORT, SHUTDOWN_TIMEOUT_SECONDS, RATE_LIMIT and
// RATE_LIMIT_BURST from the environment on top of pkg/defaults.
package server
