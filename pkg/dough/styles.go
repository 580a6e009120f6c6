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
	_ "embed"
	"fmt"
	"sort"
	"sync"

	dougherrors "github.com/doughlab/dough/pkg/errors"
	"github.com/doughlab/dough/pkg/header"
	"github.com/doughlab/dough/pkg/serializer"
)

//go:embed data/styles.yaml
var stylesYAML []byte

// StyleSeed is the default configuration fragment of a style. Ball weight is
// in grams.
type StyleSeed struct {
	Description      string    `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	BakeType         BakeType  `json:"bakeType" yaml:"bakeType" toml:"bakeType"`
	Hydration        float64   `json:"hydration" yaml:"hydration" toml:"hydration"`
	HydrationBand    Bounds    `json:"hydrationBand" yaml:"hydrationBand" toml:"hydrationBand"`
	Salt             float64   `json:"salt" yaml:"salt" toml:"salt"`
	Oil              float64   `json:"oil" yaml:"oil" toml:"oil"`
	Sugar            float64   `json:"sugar" yaml:"sugar" toml:"sugar"`
	YeastType        YeastType `json:"yeastType" yaml:"yeastType" toml:"yeastType"`
	Technique        Technique `json:"fermentationTechnique" yaml:"fermentationTechnique" toml:"fermentationTechnique"`
	AmbientTempC     float64   `json:"ambientTemperature" yaml:"ambientTemperature" toml:"ambientTemperature"`
	BakingTempC      float64   `json:"bakingTempC" yaml:"bakingTempC" toml:"bakingTempC"`
	StarterHydration float64   `json:"starterHydration,omitempty" yaml:"starterHydration,omitempty" toml:"starterHydration,omitempty"`
	NumberOfBalls    int       `json:"numberOfBalls" yaml:"numberOfBalls" toml:"numberOfBalls"`
	BallWeight       float64   `json:"ballWeight" yaml:"ballWeight" toml:"ballWeight"`
}

// Catalog maps a style to its seed. Seeds are merged into user input, never
// inherited from one another.
type Catalog map[Style]StyleSeed

// StyleEntry is a named seed for listings.
type StyleEntry struct {
	Name      Style `json:"name" yaml:"name" toml:"name"`
	StyleSeed `yaml:",inline"`
}

// StyleCatalog is the serializable style listing.
type StyleCatalog struct {
	header.Header `yaml:",inline"`
	Styles        []StyleEntry `json:"styles" yaml:"styles" toml:"styles"`
}

var (
	defaultCatalog     Catalog
	defaultCatalogErr  error
	defaultCatalogOnce sync.Once
)

// DefaultCatalog returns the embedded style seeds. The map is shared and
// must not be modified; use Seed to get a copy of an entry.
func DefaultCatalog() (Catalog, error) {
	defaultCatalogOnce.Do(func() {
		var c Catalog
		if err := serializer.Unmarshal(serializer.FormatYAML, stylesYAML, &c); err != nil {
			defaultCatalogErr = dougherrors.Wrap(dougherrors.ErrCodeInternal, "failed to parse embedded styles", err)
			return
		}
		if err := c.Validate(); err != nil {
			defaultCatalogErr = dougherrors.Wrap(dougherrors.ErrCodeInternal, "invalid embedded styles", err)
			return
		}
		defaultCatalog = c
	})
	return defaultCatalog, defaultCatalogErr
}

// Validate checks that every supported style has a usable seed.
func (c Catalog) Validate() error {
	for _, name := range GetStyles() {
		s, ok := c[Style(name)]
		if !ok {
			return fmt.Errorf("missing style %s", name)
		}
		if _, err := ParseBakeType(string(s.BakeType)); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if _, err := ParseYeastType(string(s.YeastType)); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if _, err := ParseTechnique(string(s.Technique)); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if s.NumberOfBalls < 1 || s.BallWeight <= 0 {
			return fmt.Errorf("%s: sizing must be positive", name)
		}
		if s.HydrationBand.Min > s.HydrationBand.Max {
			return fmt.Errorf("%s: hydrationBand min exceeds max", name)
		}
	}
	return nil
}

// Seed returns a copy of the seed for style.
func (c Catalog) Seed(style Style) (StyleSeed, error) {
	s, ok := c[style]
	if !ok {
		return StyleSeed{}, dougherrors.NewWithContext(dougherrors.ErrCodeNotFound,
			fmt.Sprintf("style %q not found", style), map[string]any{"style": string(style)})
	}
	return s, nil
}

// Entries returns the catalog sorted by style name.
func (c Catalog) Entries() []StyleEntry {
	out := make([]StyleEntry, 0, len(c))
	for name, seed := range c {
		out = append(out, StyleEntry{Name: name, StyleSeed: seed})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Listing wraps the catalog entries in a resource header.
func (c Catalog) Listing() *StyleCatalog {
	return &StyleCatalog{
		Header: header.New(header.WithKind(header.KindStyleCatalog)),
		Styles: c.Entries(),
	}
}

// StyleDefaults returns the embedded seed for a style name or alias.
func StyleDefaults(name string) (StyleSeed, error) {
	style, err := ParseStyle(name)
	if err != nil {
		return StyleSeed{}, dougherrors.Wrap(dougherrors.ErrCodeNotFound, "unknown style", err)
	}
	c, err := DefaultCatalog()
	if err != nil {
		return StyleSeed{}, err
	}
	return c.Seed(style)
}
