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

	"github.com/shopspring/decimal"

	dougherrors "github.com/doughlab/dough/pkg/errors"
	"github.com/doughlab/dough/pkg/units"
)

// assemble converts exact masses to the requested unit, reconciles rounding
// and attaches the explanation and timeline.
func (e *Engine) assemble(f *Formula, m *masses, lv *Leavening, s *Schedule, warnings []Warning) (*Result, error) {
	exact := make([]float64, len(m.portions))
	for i, p := range m.portions {
		v, err := units.FromCanonical(p.grams, f.Unit)
		if err != nil {
			return nil, err
		}
		exact[i] = v
	}

	places := f.Unit.Decimals()
	weights := allocate(exact, f.TotalWeight, places)

	target := decimal.NewFromFloat(f.TotalWeight).Round(places)
	if sum := sumDecimals(weights); !sum.Equal(target) {
		return nil, dougherrors.NewWithContext(dougherrors.ErrCodeInternal,
			"rounded ingredient weights do not add up to the total weight",
			map[string]any{"sum": sum.String(), "total": target.String(), "unit": string(f.Unit)})
	}

	res := &Result{
		Header:        resultHeader(f),
		Configuration: f,
		Unit:          f.Unit,
		Ingredients:   make([]Ingredient, len(m.portions)),
		TotalWeight:   target.InexactFloat64(),
		Leavening:     lv.rounded(),
		Schedule:      s,
		Warnings:      warnings,
	}

	imperial := f.Unit.System() == units.Imperial
	for i, p := range m.portions {
		if weights[i].IsNegative() {
			return nil, dougherrors.New(dougherrors.ErrCodeInternal, fmt.Sprintf("%s rounded to a negative weight", p.name))
		}
		in := Ingredient{
			Name:       p.name,
			Class:      p.class,
			Weight:     weights[i].InexactFloat64(),
			Percentage: round(p.percent, 2),
			Grams:      round(p.grams, 1),
		}
		if imperial && e.tables.Densities.HasDensity(p.class) {
			if v, err := e.tables.Densities.ToVolume(p.grams, p.class); err == nil {
				in.Volume = v.String()
			}
		}
		res.Ingredients[i] = in
	}

	flour, err := units.FromCanonical(m.totalFlour, f.Unit)
	if err != nil {
		return nil, err
	}
	res.TotalFlour = f.Unit.Round(flour)
	res.Pieces = &Pieces{Count: f.NumberOfBalls, Weight: f.Unit.Round(f.BallWeight)}

	return res, nil
}
