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
	"mime"
	"net/http"
	"strings"
)

const (
	// DefaultAPIVersion is used when the client does not negotiate one.
	DefaultAPIVersion = "v1"

	// vendorMediaPrefix is the vendor media type used for version
	// negotiation, e.g. Accept: application/vnd.doughlab.dough.v1+json
	vendorMediaPrefix = "application/vnd.doughlab.dough."
)

var supportedAPIVersions = map[string]bool{
	"v1": true,
}

// negotiateAPIVersion returns the first supported version named in the
// Accept header, falling back to DefaultAPIVersion.
func negotiateAPIVersion(r *http.Request) string {
	accept := r.Header.Get("Accept")
	if accept == "" {
		return DefaultAPIVersion
	}

	for _, part := range strings.Split(accept, ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil || !strings.HasPrefix(mediaType, vendorMediaPrefix) {
			continue
		}
		version, _, _ := strings.Cut(strings.TrimPrefix(mediaType, vendorMediaPrefix), "+")
		if isValidAPIVersion(version) {
			return version
		}
	}

	return DefaultAPIVersion
}

func isValidAPIVersion(version string) bool {
	return supportedAPIVersions[version]
}

// SetAPIVersionHeader sets the API version header in the response.
func SetAPIVersionHeader(w http.ResponseWriter, version string) {
	w.Header().Set("X-API-Version", version)
}
