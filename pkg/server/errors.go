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
	stderrors "errors"
	"net/http"
	"time"

	dougherrors "github.com/doughlab/dough/pkg/errors"
	"github.com/doughlab/dough/pkg/serializer"
	"github.com/google/uuid"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Code      string         `json:"code" yaml:"code"`
	Message   string         `json:"message" yaml:"message"`
	Details   map[string]any `json:"details,omitempty" yaml:"details,omitempty"`
	RequestID string         `json:"requestId" yaml:"requestId"`
	Timestamp time.Time      `json:"timestamp" yaml:"timestamp"`
	Retryable bool           `json:"retryable" yaml:"retryable"`
}

// WriteError writes a structured error response.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code dougherrors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID := RequestIDFromContext(r.Context())
	if requestID == "" {
		requestID = uuid.New().String()
	}

	serializer.RespondJSON(w, statusCode, ErrorResponse{
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	})
}

// WriteErrorFromErr maps err onto an HTTP error response. Structured errors
// keep their code, message and context; anything else is reported as an
// internal error with fallbackMessage.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error,
	fallbackMessage string, extraDetails map[string]any) {

	var se *dougherrors.StructuredError
	if stderrors.As(err, &se) {
		details := mergeDetails(se.Context, extraDetails)
		if se.Cause != nil {
			if details == nil {
				details = map[string]any{}
			}
			details["error"] = se.Cause.Error()
		}
		WriteError(w, r, HTTPStatusFromCode(se.Code), se.Code, se.Message,
			retryableFromCode(se.Code), details)
		return
	}

	details := mergeDetails(nil, extraDetails)
	if err != nil {
		if details == nil {
			details = map[string]any{}
		}
		details["error"] = err.Error()
	}
	WriteError(w, r, http.StatusInternalServerError, dougherrors.ErrCodeInternal,
		fallbackMessage, true, details)
}

// HTTPStatusFromCode maps an error code to its HTTP status.
func HTTPStatusFromCode(code dougherrors.ErrorCode) int {
	switch code {
	case dougherrors.ErrCodeInvalidRequest,
		dougherrors.ErrCodeUnsupportedUnit,
		dougherrors.ErrCodeUnsupportedConversion:
		return http.StatusBadRequest
	case dougherrors.ErrCodeNotFound:
		return http.StatusNotFound
	case dougherrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case dougherrors.ErrCodeValidationFailed:
		return http.StatusUnprocessableEntity
	case dougherrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case dougherrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case dougherrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func retryableFromCode(code dougherrors.ErrorCode) bool {
	switch code {
	case dougherrors.ErrCodeTimeout,
		dougherrors.ErrCodeUnavailable,
		dougherrors.ErrCodeRateLimitExceeded,
		dougherrors.ErrCodeInternal:
		return true
	default:
		return false
	}
}

// mergeDetails returns a new map with b's entries overriding a's,
// or nil when both are empty.
func mergeDetails(a, b map[string]any) map[string]any {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
