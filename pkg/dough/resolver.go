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

	"github.com/doughlab/dough/pkg/units"
)

// Ingredient names in result order.
const (
	IngredientFlour   = "Flour"
	IngredientWater   = "Water"
	IngredientStarter = "Starter"
	IngredientYeast   = "Yeast"
	IngredientSalt    = "Salt"
	IngredientOil     = "Oil"
	IngredientSugar   = "Sugar"
)

// portion is one ingredient's exact mass before rounding.
type portion struct {
	name    string
	class   units.Class
	grams   float64
	percent float64
}

// masses is the exact resolution of a formula in grams.
type masses struct {
	totalFlour float64
	portions   []portion
}

var yeastClasses = map[YeastType]units.Class{
	YeastFresh:     units.ClassFreshYeast,
	YeastActiveDry: units.ClassActiveDryYeast,
	YeastInstant:   units.ClassInstantYeast,
}

// resolve turns baker's percentages and the total dough mass into exact
// ingredient masses. Every percentage is relative to total flour, which for
// natural culture includes the flour carried by the starter.
func resolve(f *Formula, lv *Leavening) (*masses, error) {
	total, err := f.grams(f.TotalWeight)
	if err != nil {
		return nil, err
	}

	h, s, o, su := f.Hydration/100, f.Salt/100, f.Oil/100, f.Sugar/100
	p := lv.Percent / 100

	m := &masses{}
	switch lv.Family {
	case FamilyCommercial:
		flour := total / (1 + h + s + o + su + p)
		m.totalFlour = flour
		m.portions = []portion{
			{name: IngredientFlour, class: units.ClassFlour, grams: flour},
			{name: IngredientWater, class: units.ClassWater, grams: flour * h},
			{name: IngredientYeast, class: yeastClasses[f.YeastType], grams: flour * p},
		}
	case FamilyNatural:
		flour := total / (1 + h + s + o + su)
		starter := flour * p
		starterFlour := starter / (1 + f.StarterHydration/100)
		starterWater := starter - starterFlour
		m.totalFlour = flour
		m.portions = []portion{
			{name: IngredientFlour, class: units.ClassFlour, grams: flour - starterFlour},
			{name: IngredientWater, class: units.ClassWater, grams: flour*h - starterWater},
			{name: IngredientStarter, class: units.ClassStarter, grams: starter},
		}
	default:
		return nil, fmt.Errorf("unsupported leavening family %q", lv.Family)
	}

	m.portions = append(m.portions, portion{name: IngredientSalt, class: units.ClassSalt, grams: m.totalFlour * s})
	if o > 0 {
		m.portions = append(m.portions, portion{name: IngredientOil, class: units.ClassOil, grams: m.totalFlour * o})
	}
	if su > 0 {
		m.portions = append(m.portions, portion{name: IngredientSugar, class: units.ClassSugar, grams: m.totalFlour * su})
	}

	for i := range m.portions {
		if m.portions[i].grams < 0 {
			return nil, fmt.Errorf("%s resolved to a negative mass", m.portions[i].name)
		}
		m.portions[i].percent = m.portions[i].grams / m.totalFlour * 100
	}
	return m, nil
}
