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

// Package cli implements the doughctl command-line interface.
//
// # Commands
//
// calc - Calculate a dough:
//
//	doughctl calc --style neapolitan --balls 6 --ball-weight 250
//
// Builds a configuration from flags and/or a file (--config), runs the
// engine and prints ingredient weights, baker's percentages, leavening and
// the fermentation schedule. Exits non-zero when validation fails, after
// printing the field errors.
//
// compare - Compare two configurations:
//
//	doughctl compare --a friday.yaml --b saturday.yaml
//
// styles - List the built-in styles:
//
//	doughctl styles [--name focaccia]
//
// convert - Convert a mass between units:
//
//	doughctl convert --value 10 --from oz --to g [--class salt]
//
// # Global Flags
//
//	--log-level    Log level: debug, info, warn, error (default: warn)
//	--debug        Shorthand for --log-level debug
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Output
//
//	--output, -o   Output file path (default: stdout)
//	--format, -t   json, yaml, toml, table or card
//
// The card format renders tables for people. When --format is not given the
// CLI prints a card to a terminal and YAML otherwise.
//
// # Environment Variables
//
//	LOG_LEVEL     Logging verbosity
//	DOUGH_FORMAT  Default output format
//	DOUGH_UNIT    Default mass unit for calc and convert
//	DOUGH_TABLES  Constants file overlaid on the embedded tables
//
// # Exit Codes
//
//	0  Success
//	1  General error (invalid arguments, rejected configuration)
//	2  Interrupted
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/doughlab/dough/pkg/cli.version=1.0.0'"
package cli
