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
	"math"
)

// Leavening explains how the effective leavening percentage was derived.
// For natural culture the percentages are starter mass over total flour.
type Leavening struct {
	Family              Family    `json:"family" yaml:"family" toml:"family"`
	YeastType           YeastType `json:"yeastType" yaml:"yeastType" toml:"yeastType"`
	Technique           Technique `json:"fermentationTechnique" yaml:"fermentationTechnique" toml:"fermentationTechnique"`
	Base                Range     `json:"base" yaml:"base" toml:"base"`
	TechniqueMultiplier float64   `json:"techniqueMultiplier" yaml:"techniqueMultiplier" toml:"techniqueMultiplier"`
	TemperatureC        float64   `json:"temperatureC" yaml:"temperatureC" toml:"temperatureC"`
	Bucket              string    `json:"bucket" yaml:"bucket" toml:"bucket"`
	Activity            float64   `json:"activity" yaml:"activity" toml:"activity"`
	Nominal             float64   `json:"nominal" yaml:"nominal" toml:"nominal"`
	Percent             float64   `json:"percent" yaml:"percent" toml:"percent"`
	Clamped             bool      `json:"clamped,omitempty" yaml:"clamped,omitempty" toml:"clamped,omitempty"`
	Override            bool      `json:"override,omitempty" yaml:"override,omitempty" toml:"override,omitempty"`
	Explanation         string    `json:"explanation" yaml:"explanation" toml:"explanation"`
}

// Ratio is nominal over effective leavening. Above one the dough carries
// less leavening than the reference and ferments slower.
func (l *Leavening) Ratio() float64 {
	if l.Percent <= 0 {
		return 1
	}
	return l.Nominal / l.Percent
}

// rounded returns a copy with display precision applied.
func (l Leavening) rounded() *Leavening {
	l.Base = Range{Min: round(l.Base.Min, 4), Ideal: round(l.Base.Ideal, 4), Max: round(l.Base.Max, 4)}
	l.Nominal = round(l.Nominal, 4)
	l.Percent = round(l.Percent, 4)
	return &l
}

// leaven runs the leavening model: the base ideal for the yeast type, scaled
// by the technique multiplier, divided by the room activity, then held
// inside the technique-scaled base range. A caller override replaces the
// modeled value.
func (e *Engine) leaven(f *Formula) (*Leavening, error) {
	family := f.family()
	if family == "" {
		return nil, fmt.Errorf("unsupported yeast type %q", f.YeastType)
	}
	base, ok := e.tables.Yeast[f.YeastType]
	if !ok {
		return nil, fmt.Errorf("no leavening range for yeast type %q", f.YeastType)
	}
	tm, ok := e.tables.TechniqueMultipliers[family][f.Technique]
	if !ok {
		return nil, fmt.Errorf("no technique multiplier for %s %q", family, f.Technique)
	}
	b := e.tables.bucket(f.AmbientTempC)

	l := &Leavening{
		Family:              family,
		YeastType:           f.YeastType,
		Technique:           f.Technique,
		Base:                base,
		TechniqueMultiplier: tm,
		TemperatureC:        f.AmbientTempC,
		Bucket:              b.Name,
		Activity:            b.Activity,
		Nominal:             base.Ideal * tm,
	}

	what := "yeast"
	if family == FamilyNatural {
		what = "starter"
	}

	if f.LeaveningPercent != nil {
		l.Percent = *f.LeaveningPercent
		l.Override = true
		l.Explanation = fmt.Sprintf("%s %.4g%% of flour set by leaveningPercent (model would use %.4g%%)",
			what, l.Percent, e.modeled(l))
		return l, nil
	}

	l.Percent = e.modeled(l)
	l.Clamped = l.Percent != l.Nominal/l.Activity
	l.Explanation = fmt.Sprintf("%s %.4g%% of flour: %s base %.4g%% x %.2f for %s, / %.2f for a %s room at %.1fC",
		what, l.Percent, f.YeastType, base.Ideal, tm, f.Technique, b.Activity, b.Name, f.AmbientTempC)
	if l.Clamped {
		l.Explanation += fmt.Sprintf(", held within %.4g-%.4g%%", base.Min*tm, base.Max*tm)
	}
	return l, nil
}

func (e *Engine) modeled(l *Leavening) float64 {
	return l.Base.Scale(l.TechniqueMultiplier).Clamp(l.Nominal / l.Activity)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
