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

// Unit is a mass unit.
type Unit string

// Supported mass units.
const (
	Gram     Unit = "g"
	Kilogram Unit = "kg"
	Ounce    Unit = "oz"
	Pound    Unit = "lb"
)

// System groups units for display.
type System string

// Unit systems.
const (
	Metric   System = "metric"
	Imperial System = "imperial"
)

// Conversion constants.
const (
	GramsPerOunce    = 28.3495
	OuncesPerPound   = 16.0
	GramsPerPound    = GramsPerOunce * OuncesPerPound
	GramsPerKilogram = 1000.0
)

var unitAliases = map[string]Unit{
	"g":         Gram,
	"gr":        Gram,
	"gram":      Gram,
	"grams":     Gram,
	"kg":        Kilogram,
	"kgs":       Kilogram,
	"kilo":      Kilogram,
	"kilogram":  Kilogram,
	"kilograms": Kilogram,
	"oz":        Ounce,
	"ounce":     Ounce,
	"ounces":    Ounce,
	"lb":        Pound,
	"lbs":       Pound,
	"pound":     Pound,
	"pounds":    Pound,
}

// ErrUnsupportedUnit is the sentinel matched by errors.Is for unknown units.
var ErrUnsupportedUnit = dougherrors.New(dougherrors.ErrCodeUnsupportedUnit, "")

// ParseUnit parses a unit name or common alias (case-insensitive).
func ParseUnit(s string) (Unit, error) {
	u, ok := unitAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", unsupported(s)
	}
	return u, nil
}

// GetUnits returns the canonical names of supported units.
func GetUnits() []string {
	return []string{string(Gram), string(Kilogram), string(Ounce), string(Pound)}
}

func unsupported(u string) error {
	return dougherrors.NewWithContext(dougherrors.ErrCodeUnsupportedUnit,
		fmt.Sprintf("unsupported unit %q, supported: %s", u, strings.Join(GetUnits(), ", ")),
		map[string]any{"unit": u})
}

// String returns the unit symbol.
func (u Unit) String() string {
	return string(u)
}

// IsValid reports whether u is a supported unit.
func (u Unit) IsValid() bool {
	_, err := u.gramsPer()
	return err == nil
}

// System returns the unit system u belongs to.
func (u Unit) System() System {
	switch u {
	case Ounce, Pound:
		return Imperial
	default:
		return Metric
	}
}

// Step is the smallest reportable quantity in u.
func (u Unit) Step() float64 {
	switch u {
	case Kilogram:
		return 0.001
	case Ounce:
		return 0.1
	case Pound:
		return 0.01
	default:
		return 1
	}
}

// Decimals is the number of fractional digits of Step.
func (u Unit) Decimals() int32 {
	switch u {
	case Kilogram:
		return 3
	case Ounce:
		return 1
	case Pound:
		return 2
	default:
		return 0
	}
}

func (u Unit) gramsPer() (float64, error) {
	switch u {
	case Gram:
		return 1, nil
	case Kilogram:
		return GramsPerKilogram, nil
	case Ounce:
		return GramsPerOunce, nil
	case Pound:
		return GramsPerPound, nil
	default:
		return 0, unsupported(string(u))
	}
}

// ToCanonical converts value in unit u to grams.
func ToCanonical(value float64, u Unit) (float64, error) {
	f, err := u.gramsPer()
	if err != nil {
		return 0, err
	}
	return value * f, nil
}

// FromCanonical converts grams to unit u.
func FromCanonical(grams float64, u Unit) (float64, error) {
	f, err := u.gramsPer()
	if err != nil {
		return 0, err
	}
	return grams / f, nil
}

// Convert converts value between two mass units.
func Convert(value float64, from, to Unit) (float64, error) {
	g, err := ToCanonical(value, from)
	if err != nil {
		return 0, err
	}
	return FromCanonical(g, to)
}

// Round rounds v half-up to the reporting grid of u.
func (u Unit) Round(v float64) float64 {
	p := math.Pow10(int(u.Decimals()))
	return math.Floor(v*p+0.5) / p
}
