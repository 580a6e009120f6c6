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
	"fmt"
	"sort"
	"time"

	"k8s.io/utils/ptr"

	"github.com/doughlab/dough/pkg/units"
)

// Formula is a Configuration after the style seed merge: every field the
// engine reads has a value. It is echoed in the Result so a caller can see
// exactly which inputs produced the numbers.
type Formula struct {
	RecipeStyle      Style           `json:"recipeStyle" yaml:"recipeStyle" toml:"recipeStyle"`
	BakeType         BakeType        `json:"bakeType" yaml:"bakeType" toml:"bakeType"`
	CalculationMode  CalculationMode `json:"calculationMode" yaml:"calculationMode" toml:"calculationMode"`
	Hydration        float64         `json:"hydration" yaml:"hydration" toml:"hydration"`
	Salt             float64         `json:"salt" yaml:"salt" toml:"salt"`
	Oil              float64         `json:"oil" yaml:"oil" toml:"oil"`
	Sugar            float64         `json:"sugar" yaml:"sugar" toml:"sugar"`
	YeastType        YeastType       `json:"yeastType" yaml:"yeastType" toml:"yeastType"`
	Technique        Technique       `json:"fermentationTechnique" yaml:"fermentationTechnique" toml:"fermentationTechnique"`
	LeaveningPercent *float64        `json:"leaveningPercent,omitempty" yaml:"leaveningPercent,omitempty" toml:"leaveningPercent,omitempty"`
	StarterHydration float64         `json:"starterHydration,omitempty" yaml:"starterHydration,omitempty" toml:"starterHydration,omitempty"`
	AmbientTempC     float64         `json:"ambientTemperature" yaml:"ambientTemperature" toml:"ambientTemperature"`
	BakingTempC      float64         `json:"bakingTempC" yaml:"bakingTempC" toml:"bakingTempC"`
	NumberOfBalls    int             `json:"numberOfBalls" yaml:"numberOfBalls" toml:"numberOfBalls"`
	BallWeight       float64         `json:"ballWeight" yaml:"ballWeight" toml:"ballWeight"`
	TotalWeight      float64         `json:"totalWeight" yaml:"totalWeight" toml:"totalWeight"`
	Unit             units.Unit      `json:"unit" yaml:"unit" toml:"unit"`
	ReadyBy          *time.Time      `json:"readyBy,omitempty" yaml:"readyBy,omitempty" toml:"readyBy,omitempty"`

	// Defaulted lists the json names of fields taken from the style seed or
	// the constant tables.
	Defaulted []string `json:"defaulted,omitempty" yaml:"defaulted,omitempty" toml:"defaulted,omitempty"`

	seed  StyleSeed
	given sizingInput
	// ambientGiven is false when the room temperature came from a default,
	// which widens the ambient fermentation windows.
	ambientGiven bool
}

// sizingInput records which sizing fields the caller supplied, in the
// caller's unit.
type sizingInput struct {
	balls       *int
	ballWeight  *float64
	totalWeight *float64
}

// family returns the leavening family, or "" for an unknown yeast type.
func (f *Formula) family() Family {
	if _, err := ParseYeastType(string(f.YeastType)); err != nil {
		return ""
	}
	return f.YeastType.Family()
}

// grams converts a weight in the formula's unit to grams.
func (f *Formula) grams(v float64) (float64, error) {
	return units.ToCanonical(v, f.Unit)
}

// merge resolves cfg against its style seed. Enum values that fail to parse
// are kept verbatim so validation can report them against their field.
func (e *Engine) merge(cfg *Configuration) (*Formula, []Warning) {
	f := &Formula{ReadyBy: cfg.ReadyBy}
	var warnings []Warning
	defaulted := map[string]bool{}

	style, err := ParseStyle(string(cfg.RecipeStyle))
	if err == nil {
		f.RecipeStyle = style
	} else {
		f.RecipeStyle = cfg.RecipeStyle
		style = DefaultStyle
	}
	if cfg.RecipeStyle == "" {
		defaulted["recipeStyle"] = true
	}
	seed, err := e.catalog.Seed(style)
	if err != nil {
		seed, _ = e.catalog.Seed(DefaultStyle)
	}
	f.seed = seed

	f.CalculationMode = parseOr(cfg.CalculationMode, ModeBasic, ParseCalculationMode, defaulted, "calculationMode")
	advanced := f.CalculationMode == ModeAdvanced

	f.BakeType = parseOr(cfg.BakeType, seed.BakeType, ParseBakeType, defaulted, "bakeType")
	f.YeastType = parseOr(cfg.YeastType, seed.YeastType, ParseYeastType, defaulted, "yeastType")

	if cfg.Unit == "" {
		f.Unit = units.Gram
		defaulted["unit"] = true
	} else if u, err := units.ParseUnit(string(cfg.Unit)); err == nil {
		f.Unit = u
	} else {
		f.Unit = cfg.Unit
	}

	f.Hydration = seedFloat(cfg.Hydration, seed.Hydration, defaulted, "hydration")
	f.Salt = seedFloat(cfg.Salt, seed.Salt, defaulted, "salt")
	f.BakingTempC = seedFloat(cfg.BakingTempC, seed.BakingTempC, defaulted, "bakingTempC")

	// Advanced-only fields: basic mode takes the seed and says so.
	ignore := func(field string, set bool) bool {
		if advanced || !set {
			return false
		}
		warnings = append(warnings, Warning{
			Field:   field,
			Code:    WarnIgnoredInBasicMode,
			Message: fmt.Sprintf("%s is only honored in advanced mode; the %s style value is used", field, style),
		})
		return true
	}

	oil, sugar := cfg.Oil, cfg.Sugar
	if ignore("oil", oil != nil) {
		oil = nil
	}
	if ignore("sugar", sugar != nil) {
		sugar = nil
	}
	f.Oil = seedFloat(oil, seed.Oil, defaulted, "oil")
	f.Sugar = seedFloat(sugar, seed.Sugar, defaulted, "sugar")

	technique := cfg.Technique
	if ignore("fermentationTechnique", technique != "") {
		technique = ""
	}
	f.Technique = parseOr(technique, seed.Technique, ParseTechnique, defaulted, "fermentationTechnique")

	ambient := cfg.AmbientTempC
	if ignore("ambientTemperature", ambient != nil) {
		ambient = nil
	}
	f.ambientGiven = ambient != nil
	seedAmbient := seed.AmbientTempC
	if seedAmbient == 0 {
		seedAmbient = e.tables.DefaultAmbientTempC
	}
	f.AmbientTempC = seedFloat(ambient, seedAmbient, defaulted, "ambientTemperature")

	leavening := cfg.LeaveningPercent
	if ignore("leaveningPercent", leavening != nil) {
		leavening = nil
	}
	if leavening != nil {
		f.LeaveningPercent = ptr.To(*leavening)
	}

	starter := cfg.StarterHydration
	if ignore("starterHydration", starter != nil) {
		starter = nil
	}
	if f.family() == FamilyNatural {
		seedStarter := seed.StarterHydration
		if seedStarter == 0 {
			seedStarter = e.tables.StarterHydration
		}
		f.StarterHydration = seedFloat(starter, seedStarter, defaulted, "starterHydration")
	} else if starter != nil {
		warnings = append(warnings, Warning{
			Field:   "starterHydration",
			Code:    WarnNotApplicable,
			Message: fmt.Sprintf("starterHydration applies to natural culture only, not %s yeast", f.YeastType),
		})
	}

	f.given = sizingInput{balls: cfg.NumberOfBalls, ballWeight: cfg.BallWeight, totalWeight: cfg.TotalWeight}
	for field, set := range map[string]bool{
		"numberOfBalls": cfg.NumberOfBalls != nil,
		"ballWeight":    cfg.BallWeight != nil,
		"totalWeight":   cfg.TotalWeight != nil,
	} {
		if !set {
			defaulted[field] = true
		}
	}

	for k := range defaulted {
		f.Defaulted = append(f.Defaulted, k)
	}
	sort.Strings(f.Defaulted)

	return f, warnings
}

func parseOr[T ~string](v, fallback T, parse func(string) (T, error), defaulted map[string]bool, field string) T {
	if v == "" {
		defaulted[field] = true
		return fallback
	}
	if p, err := parse(string(v)); err == nil {
		return p
	}
	return v
}

func seedFloat(v *float64, fallback float64, defaulted map[string]bool, field string) float64 {
	if v == nil {
		defaulted[field] = true
	}
	return ptr.Deref(v, fallback)
}
