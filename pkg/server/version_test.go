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
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNegotiateAPIVersion(t *testing.T) {
	tests := []struct {
		name   string
		accept string
		want   string
	}{
		{"no accept header", "", DefaultAPIVersion},
		{"plain json", "application/json", DefaultAPIVersion},
		{"json dough document", "application/vnd.doughlab.dough.v1+json", "v1"},
		{"yaml dough document", "application/vnd.doughlab.dough.v1+yaml", "v1"},
		{"media type is case-insensitive", "APPLICATION/VND.DOUGHLAB.DOUGH.V1+JSON", "v1"},
		{"unknown version", "application/vnd.doughlab.dough.v9+json", DefaultAPIVersion},
		{"first supported of several", "application/vnd.doughlab.dough.v2+json, application/vnd.doughlab.dough.v1+json", "v1"},
		{"malformed part skipped", "application/vnd.doughlab.dough.v1+json;=x, text/plain", DefaultAPIVersion},
		{"other vendor", "application/vnd.example.v1+json", DefaultAPIVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/dough", nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			if got := negotiateAPIVersion(req); got != tt.want {
				t.Errorf("negotiateAPIVersion(Accept=%q) = %q, want %q", tt.accept, got, tt.want)
			}
		})
	}
}
