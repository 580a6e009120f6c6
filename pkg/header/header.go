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

package header

import (
	"fmt"
	"strings"
)

// APIVersion is the schema version shared by all dough resources.
const APIVersion = "dough.doughlab.dev/v1alpha1"

// Kind represents the type of a dough resource.
type Kind string

// Resource kinds.
const (
	KindDoughConfig     Kind = "DoughConfig"
	KindDoughResult     Kind = "DoughResult"
	KindDoughComparison Kind = "DoughComparison"
	KindStyleCatalog    Kind = "StyleCatalog"
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid checks if the Kind is one of the recognized kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindDoughConfig, KindDoughResult, KindDoughComparison, KindStyleCatalog:
		return true
	default:
		return false
	}
}

// ParseKind parses a kind name case-insensitively.
func ParseKind(s string) (Kind, error) {
	for _, k := range []Kind{KindDoughConfig, KindDoughResult, KindDoughComparison, KindStyleCatalog} {
		if strings.EqualFold(strings.TrimSpace(s), string(k)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown kind %q", s)
}

// Option is a functional option for configuring Header instances.
type Option func(*Header)

// WithMetadata adds a metadata key-value pair to the Header.
func WithMetadata(key, value string) Option {
	return func(h *Header) {
		if h.Metadata == nil {
			h.Metadata = make(map[string]string)
		}
		h.Metadata[key] = value
	}
}

// WithKind sets the Kind of the Header.
func WithKind(kind Kind) Option {
	return func(h *Header) {
		h.Kind = kind
	}
}

// WithAPIVersion overrides the APIVersion of the Header.
func WithAPIVersion(version string) Option {
	return func(h *Header) {
		h.APIVersion = version
	}
}

// New creates a Header with the default APIVersion and the given options.
func New(opts ...Option) Header {
	h := Header{APIVersion: APIVersion}
	for _, opt := range opts {
		opt(&h)
	}
	return h
}

// Header identifies a serialized dough resource. Results carry no
// timestamps so identical inputs serialize identically.
type Header struct {
	// Kind is the type of the resource.
	Kind Kind `json:"kind,omitempty" yaml:"kind,omitempty" toml:"kind,omitempty"`

	// APIVersion is the schema version of the resource.
	APIVersion string `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty" toml:"apiVersion,omitempty"`

	// Metadata holds free-form labels such as a recipe name.
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty" toml:"metadata,omitempty"`
}

// Check verifies that the header, when present, declares the expected kind
// and a supported APIVersion. An empty header is accepted.
func (h Header) Check(want Kind) error {
	if h.Kind == "" && h.APIVersion == "" {
		return nil
	}
	if h.Kind != want {
		return fmt.Errorf("unexpected kind %q, want %q", h.Kind, want)
	}
	if h.APIVersion != "" && h.APIVersion != APIVersion {
		return fmt.Errorf("unsupported apiVersion %q, want %q", h.APIVersion, APIVersion)
	}
	return nil
}
