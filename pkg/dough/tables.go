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
	"math"
	"sort"
	"sync"

	dougherrors "github.com/doughlab/dough/pkg/errors"
	"github.com/doughlab/dough/pkg/serializer"
	"github.com/doughlab/dough/pkg/units"
)

//go:embed data/tables.yaml
var tablesYAML []byte

// Range is a min/ideal/max triple.
type Range struct {
	Min   float64 `json:"min" yaml:"min" toml:"min"`
	Ideal float64 `json:"ideal" yaml:"ideal" toml:"ideal"`
	Max   float64 `json:"max" yaml:"max" toml:"max"`
}

// Scale multiplies every bound by f.
func (r Range) Scale(f float64) Range {
	return Range{Min: r.Min * f, Ideal: r.Ideal * f, Max: r.Max * f}
}

// Clamp limits v to [Min, Max].
func (r Range) Clamp(v float64) float64 {
	return math.Min(math.Max(v, r.Min), r.Max)
}

func (r Range) ordered() bool {
	return r.Min >= 0 && r.Min <= r.Ideal && r.Ideal <= r.Max
}

// Bounds is an inclusive min/max band.
type Bounds struct {
	Min float64 `json:"min" yaml:"min" toml:"min"`
	Max float64 `json:"max" yaml:"max" toml:"max"`
}

// Contains reports whether v lies within the band.
func (b Bounds) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// TemperatureBucket maps a room temperature band to a fermentation activity.
type TemperatureBucket struct {
	Name     string   `json:"name" yaml:"name" toml:"name"`
	Below    *float64 `json:"below,omitempty" yaml:"below,omitempty" toml:"below,omitempty"`
	Activity float64  `json:"activity" yaml:"activity" toml:"activity"`
}

// PhaseRule is the base duration of one fermentation phase.
type PhaseRule struct {
	Hours        Range `json:"hours" yaml:"hours" toml:"hours"`
	Refrigerated bool  `json:"refrigerated,omitempty" yaml:"refrigerated,omitempty" toml:"refrigerated,omitempty"`
}

// PhasePlan holds the fermentation phases of one family and technique.
type PhasePlan struct {
	Lead  *Range    `json:"lead,omitempty" yaml:"lead,omitempty" toml:"lead,omitempty"`
	Bulk  PhaseRule `json:"bulk" yaml:"bulk" toml:"bulk"`
	Final PhaseRule `json:"final" yaml:"final" toml:"final"`
}

// BakeRule gives the bake time from a minimum oven temperature upward.
type BakeRule struct {
	MinTempC float64 `json:"minTempC" yaml:"minTempC" toml:"minTempC"`
	Minutes  Range   `json:"minutes" yaml:"minutes" toml:"minutes"`
}

// Widening stretches ambient windows when the room temperature is unknown.
type Widening struct {
	Min float64 `json:"min" yaml:"min" toml:"min"`
	Max float64 `json:"max" yaml:"max" toml:"max"`
}

// Plausibility holds the advisory bands that produce warnings.
type Plausibility struct {
	Salt          Bounds              `json:"salt" yaml:"salt" toml:"salt"`
	AmbientTempC  Bounds              `json:"ambientTempC" yaml:"ambientTempC" toml:"ambientTempC"`
	PizzaOilMax   float64             `json:"pizzaOilMax" yaml:"pizzaOilMax" toml:"pizzaOilMax"`
	PizzaSugarMax float64             `json:"pizzaSugarMax" yaml:"pizzaSugarMax" toml:"pizzaSugarMax"`
	BakingTempC   map[BakeType]Bounds `json:"bakingTempC" yaml:"bakingTempC" toml:"bakingTempC"`
}

// Tables holds every engine constant. A Tables value is read-only once
// handed to an Engine.
type Tables struct {
	Yeast                map[YeastType]Range                `json:"yeast" yaml:"yeast" toml:"yeast"`
	TechniqueMultipliers map[Family]map[Technique]float64   `json:"techniqueMultipliers" yaml:"techniqueMultipliers" toml:"techniqueMultipliers"`
	TemperatureBuckets   []TemperatureBucket                `json:"temperatureBuckets" yaml:"temperatureBuckets" toml:"temperatureBuckets"`
	ColdTempC            float64                            `json:"coldTempC" yaml:"coldTempC" toml:"coldTempC"`
	DefaultAmbientTempC  float64                            `json:"defaultAmbientTempC" yaml:"defaultAmbientTempC" toml:"defaultAmbientTempC"`
	StarterHydration     float64                            `json:"starterHydration" yaml:"starterHydration" toml:"starterHydration"`
	Widening             Widening                           `json:"widening" yaml:"widening" toml:"widening"`
	LeaveningRatio       Bounds                             `json:"leaveningRatio" yaml:"leaveningRatio" toml:"leaveningRatio"`
	MixMinutes           Range                              `json:"mixMinutes" yaml:"mixMinutes" toml:"mixMinutes"`
	DivideMinutes        Range                              `json:"divideMinutes" yaml:"divideMinutes" toml:"divideMinutes"`
	Phases               map[Family]map[Technique]PhasePlan `json:"phases" yaml:"phases" toml:"phases"`
	Bake                 map[BakeType][]BakeRule            `json:"bake" yaml:"bake" toml:"bake"`
	Plausibility         Plausibility                       `json:"plausibility" yaml:"plausibility" toml:"plausibility"`
	Densities            units.Densities                    `json:"densities" yaml:"densities" toml:"densities"`
}

var (
	defaultTables     *Tables
	defaultTablesErr  error
	defaultTablesOnce sync.Once
)

// DefaultTables returns the embedded constants. The returned value is
// shared and must not be modified.
func DefaultTables() (*Tables, error) {
	defaultTablesOnce.Do(func() {
		defaultTables, defaultTablesErr = parseEmbeddedTables()
	})
	return defaultTables, defaultTablesErr
}

func parseEmbeddedTables() (*Tables, error) {
	var t Tables
	if err := serializer.Unmarshal(serializer.FormatYAML, tablesYAML, &t); err != nil {
		return nil, dougherrors.Wrap(dougherrors.ErrCodeInternal, "failed to parse embedded tables", err)
	}
	if err := t.Validate(); err != nil {
		return nil, dougherrors.Wrap(dougherrors.ErrCodeInternal, "invalid embedded tables", err)
	}
	return &t, nil
}

// LoadTables reads an override file (YAML, JSON or TOML, by extension; local
// path or URL) on top of the embedded constants. Keys absent from the file
// keep their embedded values.
func LoadTables(path string) (*Tables, error) {
	data, err := serializer.ReadAll(path)
	if err != nil {
		return nil, dougherrors.Wrap(dougherrors.ErrCodeNotFound, fmt.Sprintf("failed to read tables %q", path), err)
	}

	t, err := parseEmbeddedTables()
	if err != nil {
		return nil, err
	}
	if err := serializer.Unmarshal(serializer.FormatFromPath(path), data, t); err != nil {
		return nil, dougherrors.Wrap(dougherrors.ErrCodeInvalidRequest, fmt.Sprintf("failed to parse tables %q", path), err)
	}
	if err := t.Validate(); err != nil {
		return nil, dougherrors.Wrap(dougherrors.ErrCodeInvalidRequest, fmt.Sprintf("invalid tables %q", path), err)
	}
	return t, nil
}

// Validate checks that every lookup the engine performs is covered.
func (t *Tables) Validate() error {
	for _, y := range GetYeastTypes() {
		r, ok := t.Yeast[YeastType(y)]
		if !ok {
			return fmt.Errorf("yeast: missing %s", y)
		}
		if !r.ordered() || r.Min <= 0 {
			return fmt.Errorf("yeast.%s: want 0 < min <= ideal <= max", y)
		}
	}

	for _, f := range []Family{FamilyCommercial, FamilyNatural} {
		for _, tq := range GetTechniques() {
			m, ok := t.TechniqueMultipliers[f][Technique(tq)]
			if !ok || m <= 0 {
				return fmt.Errorf("techniqueMultipliers.%s.%s: missing or not positive", f, tq)
			}
			p, ok := t.Phases[f][Technique(tq)]
			if !ok {
				return fmt.Errorf("phases.%s.%s: missing", f, tq)
			}
			if !p.Bulk.Hours.ordered() || !p.Final.Hours.ordered() {
				return fmt.Errorf("phases.%s.%s: want min <= ideal <= max", f, tq)
			}
			if p.Lead != nil && !p.Lead.ordered() {
				return fmt.Errorf("phases.%s.%s.lead: want min <= ideal <= max", f, tq)
			}
		}
	}

	if len(t.TemperatureBuckets) == 0 {
		return fmt.Errorf("temperatureBuckets: empty")
	}
	prev := math.Inf(-1)
	for i, b := range t.TemperatureBuckets {
		if b.Activity <= 0 {
			return fmt.Errorf("temperatureBuckets[%d]: activity must be positive", i)
		}
		last := i == len(t.TemperatureBuckets)-1
		if b.Below == nil {
			if !last {
				return fmt.Errorf("temperatureBuckets[%d]: only the last bucket may be unbounded", i)
			}
			continue
		}
		if *b.Below <= prev {
			return fmt.Errorf("temperatureBuckets[%d]: bounds must increase", i)
		}
		prev = *b.Below
	}
	if t.TemperatureBuckets[len(t.TemperatureBuckets)-1].Below != nil {
		return fmt.Errorf("temperatureBuckets: last bucket must be unbounded")
	}

	for _, bt := range GetBakeTypes() {
		rules := t.Bake[BakeType(bt)]
		if len(rules) == 0 {
			return fmt.Errorf("bake.%s: no rules", bt)
		}
		for i, r := range rules {
			if !r.Minutes.ordered() {
				return fmt.Errorf("bake.%s[%d]: want min <= ideal <= max", bt, i)
			}
		}
		if _, ok := t.Plausibility.BakingTempC[BakeType(bt)]; !ok {
			return fmt.Errorf("plausibility.bakingTempC.%s: missing", bt)
		}
	}

	if !t.MixMinutes.ordered() || !t.DivideMinutes.ordered() {
		return fmt.Errorf("mixMinutes/divideMinutes: want min <= ideal <= max")
	}
	if t.Widening.Min <= 0 || t.Widening.Min > 1 || t.Widening.Max < 1 {
		return fmt.Errorf("widening: want 0 < min <= 1 <= max")
	}
	if t.StarterHydration <= 0 {
		return fmt.Errorf("starterHydration: must be positive")
	}
	if t.LeaveningRatio.Min <= 0 || t.LeaveningRatio.Min > 1 || t.LeaveningRatio.Max < 1 {
		return fmt.Errorf("leaveningRatio: want 0 < min <= 1 <= max")
	}
	if t.ColdTempC < 0 || t.ColdTempC > maxColdTempC {
		return fmt.Errorf("coldTempC: want 0-%gC", maxColdTempC)
	}
	if err := getValidator().Var(t.DefaultAmbientTempC, ambientTempRule); err != nil {
		return fmt.Errorf("defaultAmbientTempC: want %g-%gC", minAmbientTempC, maxAmbientTempC)
	}
	for class, d := range t.Densities {
		if d <= 0 || math.IsInf(d, 0) || math.IsNaN(d) {
			return fmt.Errorf("densities.%s: must be positive", class)
		}
	}
	return nil
}

// leaveningFloor is the smallest leavening override the schedule can
// stretch to, percent of flour. ok is false when the yeast type or
// technique has no table entry.
func (t *Tables) leaveningFloor(y YeastType, tq Technique) (floor float64, ok bool) {
	base, ok := t.Yeast[y]
	if !ok {
		return 0, false
	}
	tm, ok := t.TechniqueMultipliers[y.Family()][tq]
	if !ok {
		return 0, false
	}
	return base.Ideal * tm / t.LeaveningRatio.Max, true
}

// holdRatio keeps a leavening ratio inside LeaveningRatio.
func (t *Tables) holdRatio(r float64) (float64, bool) {
	switch {
	case r < t.LeaveningRatio.Min:
		return t.LeaveningRatio.Min, true
	case r > t.LeaveningRatio.Max:
		return t.LeaveningRatio.Max, true
	}
	return r, false
}

// bucket returns the temperature bucket containing tempC.
func (t *Tables) bucket(tempC float64) TemperatureBucket {
	for _, b := range t.TemperatureBuckets {
		if b.Below == nil || tempC < *b.Below {
			return b
		}
	}
	return t.TemperatureBuckets[len(t.TemperatureBuckets)-1]
}

// bakeMinutes returns the bake window for the oven temperature.
func (t *Tables) bakeMinutes(bt BakeType, tempC float64) Range {
	rules := append([]BakeRule(nil), t.Bake[bt]...)
	sort.Slice(rules, func(i, j int) bool { return rules[i].MinTempC < rules[j].MinTempC })

	chosen := rules[0]
	for _, r := range rules {
		if tempC >= r.MinTempC {
			chosen = r
		}
	}
	return chosen.Minutes
}
