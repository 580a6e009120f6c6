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
	"time"
)

// PhaseName identifies a step of the timeline.
type PhaseName string

// Timeline phases.
const (
	PhasePreferment  PhaseName = "preferment"
	PhaseMix         PhaseName = "mix"
	PhaseBulk        PhaseName = "bulk-ferment"
	PhaseDivideBall  PhaseName = "divide-ball"
	PhaseDivideShape PhaseName = "divide-shape"
	PhaseFinalProof  PhaseName = "final-proof"
	PhaseBake        PhaseName = "bake"
)

var phaseLabels = map[PhaseName]string{
	PhasePreferment:  "Preferment",
	PhaseMix:         "Mix",
	PhaseBulk:        "Bulk Ferment",
	PhaseDivideBall:  "Divide & Ball",
	PhaseDivideShape: "Divide & Shape",
	PhaseFinalProof:  "Final Proof",
	PhaseBake:        "Bake",
}

// Label returns the display name of the phase.
func (p PhaseName) Label() string {
	if l, ok := phaseLabels[p]; ok {
		return l
	}
	return string(p)
}

// Phase is one step of the timeline with its duration window.
type Phase struct {
	Name         PhaseName     `json:"name" yaml:"name" toml:"name"`
	Label        string        `json:"label" yaml:"label" toml:"label"`
	Duration     DurationRange `json:"duration" yaml:"duration" toml:"duration"`
	TemperatureC *float64      `json:"temperatureC,omitempty" yaml:"temperatureC,omitempty" toml:"temperatureC,omitempty"`
	Refrigerated bool          `json:"refrigerated,omitempty" yaml:"refrigerated,omitempty" toml:"refrigerated,omitempty"`
	Terminal     bool          `json:"terminal,omitempty" yaml:"terminal,omitempty" toml:"terminal,omitempty"`
	Basis        string        `json:"basis" yaml:"basis" toml:"basis"`
}

// StartWindow is when to start so the dough is ready to bake at ReadyBy.
type StartWindow struct {
	Earliest time.Time `json:"earliest" yaml:"earliest" toml:"earliest"`
	Ideal    time.Time `json:"ideal" yaml:"ideal" toml:"ideal"`
	Latest   time.Time `json:"latest" yaml:"latest" toml:"latest"`
}

// Schedule is the fermentation timeline. Phases end with Bake.
type Schedule struct {
	PrefermentLead *Phase        `json:"prefermentLead,omitempty" yaml:"prefermentLead,omitempty" toml:"prefermentLead,omitempty"`
	Phases         []Phase       `json:"phases" yaml:"phases" toml:"phases"`
	BeforeBake     DurationRange `json:"beforeBake" yaml:"beforeBake" toml:"beforeBake"`
	Total          DurationRange `json:"total" yaml:"total" toml:"total"`
	Widened        bool          `json:"widened,omitempty" yaml:"widened,omitempty" toml:"widened,omitempty"`
	ReadyBy        *time.Time    `json:"readyBy,omitempty" yaml:"readyBy,omitempty" toml:"readyBy,omitempty"`
	StartBy        *StartWindow  `json:"startBy,omitempty" yaml:"startBy,omitempty" toml:"startBy,omitempty"`
}

// Phase returns the named phase.
func (s *Schedule) Phase(name PhaseName) (Phase, bool) {
	if s.PrefermentLead != nil && s.PrefermentLead.Name == name {
		return *s.PrefermentLead, true
	}
	for _, p := range s.Phases {
		if p.Name == name {
			return p, true
		}
	}
	return Phase{}, false
}

// plan builds the timeline. Ambient phases scale the base hours by the
// leavening ratio over the room activity; refrigerated phases by the
// leavening ratio alone at the fixed cold temperature. When the room
// temperature was not supplied the ambient windows are widened.
func (e *Engine) plan(f *Formula, lv *Leavening) (*Schedule, error) {
	pp, ok := e.tables.Phases[lv.Family][f.Technique]
	if !ok {
		return nil, fmt.Errorf("no phase table for %s %s", lv.Family, f.Technique)
	}

	ratio, held := e.tables.holdRatio(lv.Ratio())
	widen := !f.ambientGiven
	ambient := f.AmbientTempC
	cold := e.tables.ColdTempC

	ferment := func(name PhaseName, rule PhaseRule) Phase {
		p := Phase{Name: name, Label: name.Label()}
		heldNote := ""
		if held {
			heldNote = fmt.Sprintf(" (held from x%.3g)", lv.Ratio())
		}
		if rule.Refrigerated {
			p.Duration = hoursRange(rule.Hours.Scale(ratio))
			p.Refrigerated = true
			p.TemperatureC = &cold
			p.Basis = fmt.Sprintf("%s base %s, x%.2f leavening ratio%s, refrigerated at %gC",
				lv.Family, hoursRange(rule.Hours), ratio, heldNote, cold)
			return p
		}
		r := rule.Hours.Scale(ratio / lv.Activity)
		if widen {
			r = e.widen(r)
		}
		p.Duration = hoursRange(r)
		p.TemperatureC = &ambient
		p.Basis = fmt.Sprintf("%s base %s, x%.2f leavening ratio%s, /%.2f for a %s room at %gC",
			lv.Family, hoursRange(rule.Hours), ratio, heldNote, lv.Activity, lv.Bucket, ambient)
		if widen {
			p.Basis += ", widened for an assumed room temperature"
		}
		return p
	}

	s := &Schedule{Widened: widen}

	if pp.Lead != nil {
		r := pp.Lead.Scale(1 / lv.Activity)
		if widen {
			r = e.widen(r)
		}
		s.PrefermentLead = &Phase{
			Name:         PhasePreferment,
			Label:        PhasePreferment.Label(),
			Duration:     hoursRange(r),
			TemperatureC: &ambient,
			Basis: fmt.Sprintf("prepare the preferment ahead: base %s, /%.2f for a %s room",
				hoursRange(*pp.Lead), lv.Activity, lv.Bucket),
		}
	}

	divide := PhaseDivideBall
	if f.BakeType == BakeBread {
		divide = PhaseDivideShape
	}
	bake := e.tables.bakeMinutes(f.BakeType, f.BakingTempC)
	oven := f.BakingTempC

	s.Phases = []Phase{
		{
			Name: PhaseMix, Label: PhaseMix.Label(),
			Duration: minutesRange(e.tables.MixMinutes),
			Basis:    "fixed mixing and kneading window",
		},
		ferment(PhaseBulk, pp.Bulk),
		{
			Name: divide, Label: divide.Label(),
			Duration: minutesRange(e.tables.DivideMinutes),
			Basis:    "fixed handling window",
		},
		ferment(PhaseFinalProof, pp.Final),
		{
			Name: PhaseBake, Label: PhaseBake.Label(),
			Duration:     minutesRange(bake),
			TemperatureC: &oven,
			Terminal:     true,
			Basis:        fmt.Sprintf("%s at %gC", f.BakeType, oven),
		},
	}

	if s.PrefermentLead != nil {
		s.BeforeBake = s.PrefermentLead.Duration
	}
	for _, p := range s.Phases {
		if p.Name != PhaseBake {
			s.BeforeBake = s.BeforeBake.Add(p.Duration)
		}
	}
	s.Total = s.BeforeBake.Add(s.Phases[len(s.Phases)-1].Duration)

	if f.ReadyBy != nil {
		at := *f.ReadyBy
		s.ReadyBy = &at
		s.StartBy = &StartWindow{
			Earliest: at.Add(-s.BeforeBake.Max.Std()),
			Ideal:    at.Add(-s.BeforeBake.Ideal.Std()),
			Latest:   at.Add(-s.BeforeBake.Min.Std()),
		}
	}
	return s, nil
}

func (e *Engine) widen(r Range) Range {
	return Range{Min: r.Min * e.tables.Widening.Min, Ideal: r.Ideal, Max: r.Max * e.tables.Widening.Max}
}
