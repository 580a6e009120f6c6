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

// Package logging configures structured logging for the dough binaries.
//
// Logs are JSON on stderr and carry the module name and version on every
// record. Debug level adds source location.
//
// Setting the default logger:
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("doughd", version)
//	    slog.Info("server starting", "port", 8080)
//	}
//
// Setting an explicit level, e.g. from a CLI flag:
//
//	logging.SetDefaultStructuredLoggerWithLevel("doughctl", version, "warn")
//
// # Environment Configuration
//
// LOG_LEVEL controls verbosity when no explicit level is given:
//
//	LOG_LEVEL=debug doughctl calc --style neapolitan
//
// Supported levels (case-insensitive): debug, info, warn/warning, error.
// Unknown values fall back to info.
//
// The engine itself only logs at debug level.
package logging
