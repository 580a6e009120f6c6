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
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	dougherrors "github.com/doughlab/dough/pkg/errors"
	"github.com/doughlab/dough/pkg/header"
	"github.com/doughlab/dough/pkg/units"
)

// DeltaStatus tells how an entry changed between two results.
type DeltaStatus string

// Delta statuses.
const (
	DeltaAdded     DeltaStatus = "added"
	DeltaRemoved   DeltaStatus = "removed"
	DeltaChanged   DeltaStatus = "changed"
	DeltaUnchanged DeltaStatus = "unchanged"
)

// IngredientDelta is the change of one ingredient from A to B.
type IngredientDelta struct {
	Name            string      `json:"name" yaml:"name" toml:"name"`
	Status          DeltaStatus `json:"status" yaml:"status" toml:"status"`
	A               float64     `json:"a" yaml:"a" toml:"a"`
	B               float64     `json:"b" yaml:"b" toml:"b"`
	WeightDelta     float64     `json:"weightDelta" yaml:"weightDelta" toml:"weightDelta"`
	PercentageDelta float64     `json:"percentageDelta" yaml:"percentageDelta" toml:"percentageDelta"`
}

// PhaseDelta is the change of one phase's ideal duration from A to B.
type PhaseDelta struct {
	Name   PhaseName   `json:"name" yaml:"name" toml:"name"`
	Status DeltaStatus `json:"status" yaml:"status" toml:"status"`
	A      Duration    `json:"a" yaml:"a" toml:"a"`
	B      Duration    `json:"b" yaml:"b" toml:"b"`
	Delta  string      `json:"delta" yaml:"delta" toml:"delta"`
}

// Comparison holds the differences between two results.
type Comparison struct {
	header.Header `yaml:",inline"`

	Unit             units.Unit        `json:"unit" yaml:"unit" toml:"unit"`
	Ingredients      []IngredientDelta `json:"ingredients" yaml:"ingredients" toml:"ingredients"`
	Phases           []PhaseDelta      `json:"phases" yaml:"phases" toml:"phases"`
	TotalWeightDelta float64           `json:"totalWeightDelta" yaml:"totalWeightDelta" toml:"totalWeightDelta"`
	TotalTimeDelta   string            `json:"totalTimeDelta" yaml:"totalTimeDelta" toml:"totalTimeDelta"`
}

// Compare returns the per-ingredient and per-phase differences from a to b.
// Entries follow b's order, then entries only present in a.
func Compare(a, b *Result) (*Comparison, error) {
	if a == nil || b == nil {
		return nil, dougherrors.New(dougherrors.ErrCodeInvalidRequest, "cannot compare a nil result")
	}
	if !a.Valid() || !b.Valid() {
		return nil, dougherrors.New(dougherrors.ErrCodeValidationFailed, "cannot compare results that carry validation errors")
	}
	if a.Unit != b.Unit {
		return nil, dougherrors.NewWithContext(dougherrors.ErrCodeInvalidRequest,
			fmt.Sprintf("cannot compare results in different units: %q vs %q", a.Unit, b.Unit),
			map[string]any{"a": string(a.Unit), "b": string(b.Unit)})
	}

	c := &Comparison{
		Header:           header.New(header.WithKind(header.KindDoughComparison)),
		Unit:             b.Unit,
		TotalWeightDelta: sub(b.TotalWeight, a.TotalWeight, b.Unit.Decimals()),
		TotalTimeDelta:   signed(b.Schedule.Total.Ideal - a.Schedule.Total.Ideal),
	}

	aIngredients := make(map[string]Ingredient, len(a.Ingredients))
	for _, in := range a.Ingredients {
		aIngredients[in.Name] = in
	}
	seen := map[string]bool{}
	for _, bi := range b.Ingredients {
		seen[bi.Name] = true
		d := IngredientDelta{Name: bi.Name, B: bi.Weight, Status: DeltaAdded,
			WeightDelta: bi.Weight, PercentageDelta: bi.Percentage}
		if ai, ok := aIngredients[bi.Name]; ok {
			d.A = ai.Weight
			d.WeightDelta = sub(bi.Weight, ai.Weight, b.Unit.Decimals())
			d.PercentageDelta = sub(bi.Percentage, ai.Percentage, 2)
			d.Status = DeltaUnchanged
			if d.WeightDelta != 0 || d.PercentageDelta != 0 {
				d.Status = DeltaChanged
			}
		}
		c.Ingredients = append(c.Ingredients, d)
	}
	for _, ai := range a.Ingredients {
		if !seen[ai.Name] {
			c.Ingredients = append(c.Ingredients, IngredientDelta{Name: ai.Name, Status: DeltaRemoved,
				A: ai.Weight, WeightDelta: -ai.Weight, PercentageDelta: -ai.Percentage})
		}
	}

	c.Phases = comparePhases(allPhases(a.Schedule), allPhases(b.Schedule))
	return c, nil
}

// CompareConfigurations calculates both configurations concurrently and
// compares the results.
func (e *Engine) CompareConfigurations(ctx context.Context, a, b *Configuration) (*Comparison, error) {
	var ra, rb *Result
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ra, err = e.Calculate(a)
		return err
	})
	g.Go(func() error {
		var err error
		rb, err = e.Calculate(b)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if !ra.Valid() || !rb.Valid() {
		details := map[string]any{}
		if !ra.Valid() {
			details["a"] = ra.Errors
		}
		if !rb.Valid() {
			details["b"] = rb.Errors
		}
		return nil, dougherrors.NewWithContext(dougherrors.ErrCodeValidationFailed,
			"cannot compare configurations that fail validation", details)
	}
	return Compare(ra, rb)
}

func allPhases(s *Schedule) []Phase {
	if s.PrefermentLead == nil {
		return s.Phases
	}
	return append([]Phase{*s.PrefermentLead}, s.Phases...)
}

func comparePhases(a, b []Phase) []PhaseDelta {
	aByName := make(map[PhaseName]Phase, len(a))
	for _, p := range a {
		aByName[p.Name] = p
	}
	seen := map[PhaseName]bool{}
	var out []PhaseDelta
	for _, bp := range b {
		seen[bp.Name] = true
		d := PhaseDelta{Name: bp.Name, B: bp.Duration.Ideal, Status: DeltaAdded, Delta: signed(bp.Duration.Ideal)}
		if ap, ok := aByName[bp.Name]; ok {
			d.A = ap.Duration.Ideal
			d.Delta = signed(bp.Duration.Ideal - ap.Duration.Ideal)
			d.Status = DeltaUnchanged
			if d.A != d.B {
				d.Status = DeltaChanged
			}
		}
		out = append(out, d)
	}
	for _, ap := range a {
		if !seen[ap.Name] {
			out = append(out, PhaseDelta{Name: ap.Name, Status: DeltaRemoved, A: ap.Duration.Ideal,
				Delta: signed(-ap.Duration.Ideal)})
		}
	}
	return out
}

// sub returns x-y exactly at places decimal digits.
func sub(x, y float64, places int32) float64 {
	return decimal.NewFromFloat(x).Sub(decimal.NewFromFloat(y)).Round(places).InexactFloat64()
}

// signed renders a duration difference with an explicit sign.
func signed(d Duration) string {
	switch {
	case d > 0:
		return "+" + d.String()
	case d < 0:
		return "-" + (-d).String()
	default:
		return "0m"
	}
}
