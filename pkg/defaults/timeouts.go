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

package defaults

import "time"

// Handler timeouts.
const (
	// CalculateHandlerTimeout is the timeout for a single calculation request.
	CalculateHandlerTimeout = 10 * time.Second

	// CompareHandlerTimeout is the timeout for comparison requests, which run
	// the engine twice.
	CompareHandlerTimeout = 15 * time.Second
)

// Response cache.
const (
	// ResultCacheTTL is how long a serialized result stays in the API cache
	// and the max-age advertised in Cache-Control.
	ResultCacheTTL = 10 * time.Minute

	// ResultCacheSize is the maximum number of cached results.
	ResultCacheSize = 512
)

// Server timeouts.
const (
	// ServerReadTimeout is the maximum duration for reading a request.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// Server limits.
const (
	// ServerRateLimit is the sustained requests per second.
	ServerRateLimit = 100

	// ServerRateLimitBurst is the token bucket burst size.
	ServerRateLimitBurst = 200

	// ServerMaxBodyBytes caps configuration bodies.
	ServerMaxBodyBytes = 1 << 20
)

// HTTP client timeouts used when a configuration is loaded from a URL.
const (
	// HTTPClientTimeout is the default total timeout for HTTP requests.
	HTTPClientTimeout = 30 * time.Second

	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPResponseHeaderTimeout is the timeout for reading response headers.
	HTTPResponseHeaderTimeout = 10 * time.Second

	// HTTPIdleConnTimeout is the timeout for idle connections in the pool.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPKeepAlive is the keep-alive duration for connections.
	HTTPKeepAlive = 30 * time.Second
)
