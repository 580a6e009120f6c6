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

package dough

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/doughlab/dough/pkg/defaults"
	dougherrors "github.com/doughlab/dough/pkg/errors"
	"github.com/doughlab/dough/pkg/header"
	"github.com/doughlab/dough/pkg/serializer"
	"github.com/doughlab/dough/pkg/units"
)

// Configuration is the engine input. Optional fields are pointers: nil means
// "take the style seed". Percentages are baker's percentages. Weights are in
// Unit. The engine never modifies a Configuration.
type Configuration struct {
	RecipeStyle      Style           `json:"recipeStyle,omitempty" yaml:"recipeStyle,omitempty" toml:"recipeStyle,omitempty"`
	BakeType         BakeType        `json:"bakeType,omitempty" yaml:"bakeType,omitempty" toml:"bakeType,omitempty"`
	CalculationMode  CalculationMode `json:"calculationMode,omitempty" yaml:"calculationMode,omitempty" toml:"calculationMode,omitempty"`
	Hydration        *float64        `json:"hydration,omitempty" yaml:"hydration,omitempty" toml:"hydration,omitempty"`
	Salt             *float64        `json:"salt,omitempty" yaml:"salt,omitempty" toml:"salt,omitempty"`
	Oil              *float64        `json:"oil,omitempty" yaml:"oil,omitempty" toml:"oil,omitempty"`
	Sugar            *float64        `json:"sugar,omitempty" yaml:"sugar,omitempty" toml:"sugar,omitempty"`
	YeastType        YeastType       `json:"yeastType,omitempty" yaml:"yeastType,omitempty" toml:"yeastType,omitempty"`
	Technique        Technique       `json:"fermentationTechnique,omitempty" yaml:"fermentationTechnique,omitempty" toml:"fermentationTechnique,omitempty"`
	LeaveningPercent *float64        `json:"leaveningPercent,omitempty" yaml:"leaveningPercent,omitempty" toml:"leaveningPercent,omitempty"`
	StarterHydration *float64        `json:"starterHydration,omitempty" yaml:"starterHydration,omitempty" toml:"starterHydration,omitempty"`
	AmbientTempC     *float64        `json:"ambientTemperature,omitempty" yaml:"ambientTemperature,omitempty" toml:"ambientTemperature,omitempty"`
	BakingTempC      *float64        `json:"bakingTempC,omitempty" yaml:"bakingTempC,omitempty" toml:"bakingTempC,omitempty"`
	NumberOfBalls    *int            `json:"numberOfBalls,omitempty" yaml:"numberOfBalls,omitempty" toml:"numberOfBalls,omitempty"`
	BallWeight       *float64        `json:"ballWeight,omitempty" yaml:"ballWeight,omitempty" toml:"ballWeight,omitempty"`
	TotalWeight      *float64        `json:"totalWeight,omitempty" yaml:"totalWeight,omitempty" toml:"totalWeight,omitempty"`
	Unit             units.Unit      `json:"unit,omitempty" yaml:"unit,omitempty" toml:"unit,omitempty"`
	ReadyBy          *time.Time      `json:"readyBy,omitempty" yaml:"readyBy,omitempty" toml:"readyBy,omitempty"`
}

// ConfigDocument is a Configuration wrapped in a resource header.
//
//	kind: DoughConfig
//	apiVersion: dough.doughlab.dev/v1alpha1
//	metadata:
//	  name: friday-pizza
//	spec:
//	  recipeStyle: neapolitan
//	  numberOfBalls: 6
type ConfigDocument struct {
	header.Header `yaml:",inline"`
	Spec          *Configuration `json:"spec" yaml:"spec" toml:"spec"`
}

// CacheKey returns a canonical encoding of c, stable across calls.
func (c *Configuration) CacheKey() string {
	b, err := json.Marshal(c)
	if err != nil {
		return ""
	}
	return string(b)
}

// ConfigOption sets a field of a Configuration.
type ConfigOption func(*Configuration)

// WithStyle sets the recipe style.
func WithStyle(s Style) ConfigOption {
	return func(c *Configuration) { c.RecipeStyle = s }
}

// WithMode sets the calculation mode.
func WithMode(m CalculationMode) ConfigOption {
	return func(c *Configuration) { c.CalculationMode = m }
}

// WithRatios sets hydration, salt, oil and sugar percentages.
func WithRatios(hydration, salt, oil, sugar float64) ConfigOption {
	return func(c *Configuration) {
		c.Hydration, c.Salt, c.Oil, c.Sugar = &hydration, &salt, &oil, &sugar
	}
}

// WithLeavening sets the yeast type and fermentation technique.
func WithLeavening(y YeastType, t Technique) ConfigOption {
	return func(c *Configuration) { c.YeastType, c.Technique = y, t }
}

// WithAmbientTemp sets the room temperature in C.
func WithAmbientTemp(tempC float64) ConfigOption {
	return func(c *Configuration) { c.AmbientTempC = &tempC }
}

// WithTotalWeight sets the total dough weight in the configured unit.
func WithTotalWeight(w float64) ConfigOption {
	return func(c *Configuration) { c.TotalWeight = &w }
}

// WithBalls sets the number of pieces and their weight.
func WithBalls(n int, weight float64) ConfigOption {
	return func(c *Configuration) { c.NumberOfBalls, c.BallWeight = &n, &weight }
}

// WithUnit sets the mass unit.
func WithUnit(u units.Unit) ConfigOption {
	return func(c *Configuration) { c.Unit = u }
}

// NewConfiguration builds a Configuration from options.
func NewConfiguration(opts ...ConfigOption) *Configuration {
	c := &Configuration{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ParseConfigurationFromRequest parses a configuration from query parameters.
func ParseConfigurationFromRequest(r *http.Request) (*Configuration, error) {
	if r == nil {
		return nil, fmt.Errorf("request cannot be nil")
	}
	return ParseConfigurationFromValues(r.URL.Query())
}

// ParseConfigurationFromValues parses a configuration from URL values. Keys
// match the JSON field names; a few short aliases are accepted (style, mode,
// yeast, technique, ambient, balls). Enum values are kept verbatim and
// checked by validation so errors stay field-addressable; malformed numbers
// fail here.
func ParseConfigurationFromValues(values url.Values) (*Configuration, error) {
	c := &Configuration{}
	get := func(keys ...string) string {
		for _, k := range keys {
			if v := strings.TrimSpace(values.Get(k)); v != "" {
				return v
			}
		}
		return ""
	}

	c.RecipeStyle = Style(get("recipeStyle", "style"))
	c.BakeType = BakeType(get("bakeType"))
	c.CalculationMode = CalculationMode(get("calculationMode", "mode"))
	c.YeastType = YeastType(get("yeastType", "yeast"))
	c.Technique = Technique(get("fermentationTechnique", "technique"))
	c.Unit = units.Unit(get("unit"))

	floats := []struct {
		dst  **float64
		keys []string
	}{
		{&c.Hydration, []string{"hydration"}},
		{&c.Salt, []string{"salt"}},
		{&c.Oil, []string{"oil"}},
		{&c.Sugar, []string{"sugar"}},
		{&c.LeaveningPercent, []string{"leaveningPercent"}},
		{&c.StarterHydration, []string{"starterHydration"}},
		{&c.AmbientTempC, []string{"ambientTemperature", "ambient"}},
		{&c.BakingTempC, []string{"bakingTempC", "bakingTemp"}},
		{&c.BallWeight, []string{"ballWeight"}},
		{&c.TotalWeight, []string{"totalWeight"}},
	}
	for _, f := range floats {
		s := get(f.keys...)
		if s == "" {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value: %s", f.keys[0], s)
		}
		*f.dst = &v
	}

	if s := get("numberOfBalls", "balls"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid numberOfBalls value: %s", s)
		}
		c.NumberOfBalls = &n
	}

	if s := get("readyBy"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, fmt.Errorf("invalid readyBy value %q, want RFC3339", s)
		}
		c.ReadyBy = &t
	}

	return c, nil
}

// ParseConfigurationFromBody parses a JSON, YAML or TOML body, selected by
// Content-Type (JSON when unrecognized). Both a bare configuration and a
// DoughConfig document are accepted.
func ParseConfigurationFromBody(body io.Reader, contentType string) (*Configuration, error) {
	if body == nil {
		return nil, fmt.Errorf("request body cannot be nil")
	}

	data, err := io.ReadAll(io.LimitReader(body, defaults.ServerMaxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("request body is empty")
	}

	return DecodeConfiguration(serializer.FormatFromContentType(contentType), data)
}

// LoadConfigurationFromFile loads a configuration from a local file or
// http(s) URL. The format is taken from the extension.
func LoadConfigurationFromFile(path string) (*Configuration, error) {
	data, err := serializer.ReadAll(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration file: %w", err)
	}
	return DecodeConfiguration(serializer.FormatFromPath(path), data)
}

// DecodeConfiguration decodes either a DoughConfig document or a bare
// configuration.
func DecodeConfiguration(format serializer.Format, data []byte) (*Configuration, error) {
	var doc ConfigDocument
	if err := serializer.Unmarshal(format, data, &doc); err != nil {
		return nil, dougherrors.Wrap(dougherrors.ErrCodeInvalidRequest, "failed to parse configuration", err)
	}

	if doc.Spec != nil || doc.Kind != "" {
		if err := doc.Check(header.KindDoughConfig); err != nil {
			return nil, dougherrors.Wrap(dougherrors.ErrCodeInvalidRequest, "invalid configuration document", err)
		}
		if doc.Spec == nil {
			return nil, dougherrors.New(dougherrors.ErrCodeInvalidRequest, "configuration document has no spec")
		}
		return doc.Spec, nil
	}

	var c Configuration
	if err := serializer.Unmarshal(format, data, &c); err != nil {
		return nil, dougherrors.Wrap(dougherrors.ErrCodeInvalidRequest, "failed to parse configuration", err)
	}
	return &c, nil
}
