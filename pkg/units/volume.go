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

package units

import (
	"fmt"
	"math"
	"strings"

	dougherrors "github.com/doughlab/dough/pkg/errors"
)

// Class identifies an ingredient for volume display.
type Class string

// Ingredient classes. Only classes present in a Densities table convert to
// volume.
const (
	ClassFlour          Class = "flour"
	ClassWater          Class = "water"
	ClassSalt           Class = "salt"
	ClassSugar          Class = "sugar"
	ClassOil            Class = "oil"
	ClassFreshYeast     Class = "fresh-yeast"
	ClassActiveDryYeast Class = "active-dry-yeast"
	ClassInstantYeast   Class = "instant-yeast"
	ClassStarter        Class = "starter"
)

// Measure is a household volume measure.
type Measure string

// Volume measures, in teaspoons: 1 tbsp = 3 tsp, 1 cup = 48 tsp.
const (
	Teaspoon   Measure = "tsp"
	Tablespoon Measure = "tbsp"
	Cup        Measure = "cup"
)

const (
	teaspoonsPerTablespoon = 3.0
	teaspoonsPerCup        = 48.0
)

// Densities maps ingredient class to grams per level teaspoon.
// These are display conveniences, not measured values.
type Densities map[Class]float64

// DefaultDensities returns the built-in grams-per-teaspoon constants.
func DefaultDensities() Densities {
	return Densities{
		ClassSalt:           6.0,
		ClassSugar:          4.2,
		ClassOil:            4.5,
		ClassInstantYeast:   3.1,
		ClassActiveDryYeast: 2.8,
	}
}

// Volume is a household measurement rounded to quarter units.
type Volume struct {
	Amount  float64 `json:"amount" yaml:"amount"`
	Measure Measure `json:"measure" yaml:"measure"`
}

// ToVolume converts grams of class c to the largest measure that keeps the
// amount readable. Classes without a density fail with
// UNSUPPORTED_CONVERSION.
func (d Densities) ToVolume(grams float64, c Class) (Volume, error) {
	density, ok := d[c]
	if !ok || density <= 0 {
		return Volume{}, dougherrors.NewWithContext(dougherrors.ErrCodeUnsupportedConversion,
			fmt.Sprintf("no volume density for %s", c),
			map[string]any{"class": string(c)})
	}
	if grams < 0 {
		return Volume{}, dougherrors.New(dougherrors.ErrCodeInvalidRequest, "negative mass")
	}

	tsp := grams / density
	switch {
	case tsp < teaspoonsPerTablespoon:
		return Volume{Amount: quarter(tsp), Measure: Teaspoon}, nil
	case tsp < teaspoonsPerCup/4:
		return Volume{Amount: quarter(tsp / teaspoonsPerTablespoon), Measure: Tablespoon}, nil
	default:
		return Volume{Amount: quarter(tsp / teaspoonsPerCup), Measure: Cup}, nil
	}
}

// HasDensity reports whether class c can be shown as a volume.
func (d Densities) HasDensity(c Class) bool {
	v, ok := d[c]
	return ok && v > 0
}

func quarter(v float64) float64 {
	return math.Round(v*4) / 4
}

// String renders the volume with quarter fractions, e.g. "1 1/2 tsp".
func (v Volume) String() string {
	if v.Amount <= 0 {
		return "pinch"
	}
	whole := math.Floor(v.Amount)
	frac := v.Amount - whole

	var sb strings.Builder
	if whole > 0 {
		fmt.Fprintf(&sb, "%d", int(whole))
	}
	if f := fraction(frac); f != "" {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(f)
	}
	sb.WriteByte(' ')
	sb.WriteString(string(v.Measure))
	return sb.String()
}

func fraction(f float64) string {
	switch math.Round(f * 4) {
	case 1:
		return "1/4"
	case 2:
		return "1/2"
	case 3:
		return "3/4"
	default:
		return ""
	}
}
