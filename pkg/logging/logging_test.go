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

package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{" info ", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLogLevel(tt.in); got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStructuredLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	logger := newStructuredLogger(&buf, "doughctl", "v1.2.3", slog.LevelInfo)

	logger.Debug("hidden")
	logger.Info("calculated", "flour", 598)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("expected a single JSON record, got %q: %v", buf.String(), err)
	}
	if rec["module"] != "doughctl" {
		t.Errorf("module = %v, want doughctl", rec["module"])
	}
	if rec["version"] != "v1.2.3" {
		t.Errorf("version = %v, want v1.2.3", rec["version"])
	}
	if rec["msg"] != "calculated" {
		t.Errorf("msg = %v, want calculated", rec["msg"])
	}
	if _, ok := rec["source"]; ok {
		t.Error("source should only be added at debug level")
	}
}

func TestStructuredLoggerDebugAddsSource(t *testing.T) {
	var buf bytes.Buffer
	logger := newStructuredLogger(&buf, "doughd", "dev", slog.LevelDebug)
	logger.Debug("resolving")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if _, ok := rec["source"]; !ok {
		t.Error("expected source at debug level")
	}
}
