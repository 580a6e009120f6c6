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

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeNotFound, "style not found")

	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "style not found" {
		t.Errorf("expected message 'style not found', got %s", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInternal, "mass balance failed", cause)

	if err.Code != ErrCodeInternal {
		t.Errorf("expected code %s, got %s", ErrCodeInternal, err.Code)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped")
	}
}

func TestWrapWithContext(t *testing.T) {
	cause := errors.New("bad unit")
	ctx := map[string]any{
		"unit":  "stone",
		"field": "unit",
	}

	err := WrapWithContext(ErrCodeUnsupportedUnit, "conversion failed", cause, ctx)

	if err.Code != ErrCodeUnsupportedUnit {
		t.Errorf("expected code %s, got %s", ErrCodeUnsupportedUnit, err.Code)
	}
	if err.Context == nil {
		t.Fatal("expected context to be set")
	}
	if err.Context["unit"] != "stone" {
		t.Errorf("expected unit to be stone")
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *StructuredError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(ErrCodeNotFound, "not found"),
			expected: "[NOT_FOUND] not found",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeInternal, "failed", errors.New("root cause")),
			expected: "[INTERNAL] failed: root cause",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestIsByCode(t *testing.T) {
	sentinel := New(ErrCodeUnsupportedUnit, "")
	err := fmt.Errorf("loading config: %w", NewWithContext(ErrCodeUnsupportedUnit, "unsupported unit", map[string]any{"unit": "stone"}))

	if !errors.Is(err, sentinel) {
		t.Error("expected errors.Is to match by code")
	}
	if errors.Is(err, New(ErrCodeNotFound, "")) {
		t.Error("expected errors.Is not to match a different code")
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"structured", New(ErrCodeInvalidRequest, "bad"), ErrCodeInvalidRequest},
		{"wrapped", fmt.Errorf("ctx: %w", New(ErrCodeNotFound, "x")), ErrCodeNotFound},
		{"plain", errors.New("plain"), ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasCode(t *testing.T) {
	inner := New(ErrCodeUnsupportedUnit, "bad unit")
	outer := Wrap(ErrCodeInvalidRequest, "invalid configuration", inner)

	if !HasCode(outer, ErrCodeUnsupportedUnit) {
		t.Error("expected nested code to be found")
	}
	if !HasCode(outer, ErrCodeInvalidRequest) {
		t.Error("expected outer code to be found")
	}
	if HasCode(outer, ErrCodeTimeout) {
		t.Error("unexpected code match")
	}
	if HasCode(nil, ErrCodeInternal) {
		t.Error("nil error has no code")
	}
}
