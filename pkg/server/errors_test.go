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
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	dougherrors "github.com/doughlab/dough/pkg/errors"
)

func TestHTTPStatusFromCode(t *testing.T) {
	tests := []struct {
		name string
		code dougherrors.ErrorCode
		want int
	}{
		{"invalid request", dougherrors.ErrCodeInvalidRequest, http.StatusBadRequest},
		{"unsupported unit", dougherrors.ErrCodeUnsupportedUnit, http.StatusBadRequest},
		{"unsupported conversion", dougherrors.ErrCodeUnsupportedConversion, http.StatusBadRequest},
		{"validation failed", dougherrors.ErrCodeValidationFailed, http.StatusUnprocessableEntity},
		{"not found", dougherrors.ErrCodeNotFound, http.StatusNotFound},
		{"method not allowed", dougherrors.ErrCodeMethodNotAllowed, http.StatusMethodNotAllowed},
		{"rate limit", dougherrors.ErrCodeRateLimitExceeded, http.StatusTooManyRequests},
		{"unavailable", dougherrors.ErrCodeUnavailable, http.StatusServiceUnavailable},
		{"timeout", dougherrors.ErrCodeTimeout, http.StatusGatewayTimeout},
		{"internal", dougherrors.ErrCodeInternal, http.StatusInternalServerError},
		{"unknown defaults to internal", dougherrors.ErrorCode("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatusFromCode(tt.code); got != tt.want {
				t.Fatalf("HTTPStatusFromCode(%q) = %d, want %d", tt.code, got, tt.want)
			}
		})
	}
}

func TestRetryableFromCode(t *testing.T) {
	tests := []struct {
		name string
		code dougherrors.ErrorCode
		want bool
	}{
		{"invalid request", dougherrors.ErrCodeInvalidRequest, false},
		{"validation failed", dougherrors.ErrCodeValidationFailed, false},
		{"not found", dougherrors.ErrCodeNotFound, false},
		{"method not allowed", dougherrors.ErrCodeMethodNotAllowed, false},
		{"timeout", dougherrors.ErrCodeTimeout, true},
		{"unavailable", dougherrors.ErrCodeUnavailable, true},
		{"rate limit", dougherrors.ErrCodeRateLimitExceeded, true},
		{"internal", dougherrors.ErrCodeInternal, true},
		{"unknown defaults false", dougherrors.ErrorCode("SOMETHING_ELSE"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := retryableFromCode(tt.code); got != tt.want {
				t.Fatalf("retryableFromCode(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestMergeDetails(t *testing.T) {
	t.Run("both empty returns nil", func(t *testing.T) {
		if got := mergeDetails(nil, nil); got != nil {
			t.Fatalf("expected nil, got %#v", got)
		}
		if got := mergeDetails(map[string]any{}, map[string]any{}); got != nil {
			t.Fatalf("expected nil, got %#v", got)
		}
	})

	t.Run("merges and second overwrites", func(t *testing.T) {
		a := map[string]any{"a": 1, "shared": "old"}
		b := map[string]any{"b": 2, "shared": "new"}

		got := mergeDetails(a, b)
		if got == nil {
			t.Fatal("expected map, got nil")
		}
		if got["a"].(int) != 1 {
			t.Fatalf("expected a=1, got %#v", got["a"])
		}
		if got["b"].(int) != 2 {
			t.Fatalf("expected b=2, got %#v", got["b"])
		}
		if got["shared"].(string) != "new" {
			t.Fatalf("expected shared to be overwritten to 'new', got %#v", got["shared"])
		}
	})
}

func TestWriteError_WritesErrorResponse(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), contextKeyRequestID, "0f8b7c3e-5d1a-4b7e-9a51-2f6c1d0e8a44"))
	w := httptest.NewRecorder()

	WriteError(w, req, http.StatusBadRequest, dougherrors.ErrCodeInvalidRequest, "bad request", false, map[string]any{"field": "hydration"})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if resp.Code != string(dougherrors.ErrCodeInvalidRequest) {
		t.Fatalf("expected code %q, got %q", dougherrors.ErrCodeInvalidRequest, resp.Code)
	}
	if resp.Message != "bad request" {
		t.Fatalf("expected message %q, got %q", "bad request", resp.Message)
	}
	if resp.RequestID != "0f8b7c3e-5d1a-4b7e-9a51-2f6c1d0e8a44" {
		t.Fatalf("expected requestId %q, got %q", "0f8b7c3e-5d1a-4b7e-9a51-2f6c1d0e8a44", resp.RequestID)
	}
	if resp.Retryable {
		t.Fatalf("expected retryable=false, got true")
	}
	if resp.Details == nil || resp.Details["field"].(string) != "hydration" {
		t.Fatalf("expected details to include field=hydration, got %#v", resp.Details)
	}
}

func TestWriteErrorFromErr_StructuredErrorMapsStatusAndDetails(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	cause := errors.New("tables file unreadable")
	err := dougherrors.WrapWithContext(dougherrors.ErrCodeUnavailable, "engine unavailable", cause, map[string]any{"component": "tables"})

	WriteErrorFromErr(w, req, err, "fallback", map[string]any{"extra": "yes"})

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status %d, got %d", http.StatusServiceUnavailable, w.Code)
	}

	var resp ErrorResponse
	if uerr := json.Unmarshal(w.Body.Bytes(), &resp); uerr != nil {
		t.Fatalf("failed to unmarshal response: %v", uerr)
	}

	if resp.Code != string(dougherrors.ErrCodeUnavailable) {
		t.Fatalf("expected code %q, got %q", dougherrors.ErrCodeUnavailable, resp.Code)
	}
	if resp.Message != "engine unavailable" {
		t.Fatalf("expected message %q, got %q", "engine unavailable", resp.Message)
	}
	if !resp.Retryable {
		t.Fatalf("expected retryable=true")
	}
	if resp.Details == nil {
		t.Fatalf("expected details, got nil")
	}
	if resp.Details["component"].(string) != "tables" {
		t.Fatalf("expected component=tables, got %#v", resp.Details["component"])
	}
	if resp.Details["extra"].(string) != "yes" {
		t.Fatalf("expected extra=yes, got %#v", resp.Details["extra"])
	}
	if resp.Details["error"].(string) != "tables file unreadable" {
		t.Fatalf("expected error cause propagated, got %#v", resp.Details["error"])
	}
}

func TestWriteErrorFromErr_NonStructuredFallsBackToInternal(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	WriteErrorFromErr(w, req, errors.New("allocation drifted"), "fallback", map[string]any{"unit": "g"})

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if resp.Code != string(dougherrors.ErrCodeInternal) {
		t.Fatalf("expected code %q, got %q", dougherrors.ErrCodeInternal, resp.Code)
	}
	if !resp.Retryable {
		t.Fatalf("expected retryable=true")
	}
	if resp.Details == nil || resp.Details["unit"].(string) != "g" {
		t.Fatalf("expected details to include unit=g, got %#v", resp.Details)
	}
	if resp.Details["error"].(string) != "allocation drifted" {
		t.Fatalf("expected details error=allocation drifted, got %#v", resp.Details["error"])
	}
}

func TestWriteErrorFromErr_ValidationFailedIsNotRetryable(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/dough/compare", nil)
	w := httptest.NewRecorder()

	err := dougherrors.NewWithContext(dougherrors.ErrCodeValidationFailed, "configuration a is invalid",
		map[string]any{"fields": []string{"hydration"}})

	WriteErrorFromErr(w, req, err, "fallback", nil)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status %d, got %d", http.StatusUnprocessableEntity, w.Code)
	}

	var resp ErrorResponse
	if uerr := json.Unmarshal(w.Body.Bytes(), &resp); uerr != nil {
		t.Fatalf("failed to unmarshal response: %v", uerr)
	}
	if resp.Retryable {
		t.Fatal("expected retryable=false")
	}
	if _, ok := resp.Details["error"]; ok {
		t.Fatalf("expected no error detail without a cause, got %#v", resp.Details["error"])
	}
	if resp.RequestID == "" {
		t.Fatal("expected a generated request ID")
	}
}
