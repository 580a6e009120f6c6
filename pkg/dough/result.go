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
	"sort"

	"github.com/doughlab/dough/pkg/header"
	"github.com/doughlab/dough/pkg/units"
)

// WarningCode classifies an advisory warning.
type WarningCode string

// Warning codes.
const (
	WarnHydrationOutsideBand WarningCode = "HYDRATION_OUTSIDE_STYLE_BAND"
	WarnSaltUnusual          WarningCode = "SALT_UNUSUAL"
	WarnOilHighForPizza      WarningCode = "OIL_HIGH_FOR_PIZZA"
	WarnSugarHighForPizza    WarningCode = "SUGAR_HIGH_FOR_PIZZA"
	WarnBakingTempUnusual    WarningCode = "BAKING_TEMP_UNUSUAL"
	WarnAmbientTempUnusual   WarningCode = "AMBIENT_TEMP_UNUSUAL"
	WarnSlowSameDayNatural   WarningCode = "SLOW_SAME_DAY_NATURAL"
	WarnIgnoredInBasicMode   WarningCode = "IGNORED_IN_BASIC_MODE"
	WarnNotApplicable        WarningCode = "NOT_APPLICABLE"
	WarnLeaveningAtLimit     WarningCode = "LEAVENING_AT_LIMIT"
)

// Warning is an advisory note that never blocks a calculation.
type Warning struct {
	Field   string      `json:"field" yaml:"field" toml:"field"`
	Code    WarningCode `json:"code" yaml:"code" toml:"code"`
	Message string      `json:"message" yaml:"message" toml:"message"`
}

func sortWarnings(w []Warning) {
	sort.SliceStable(w, func(i, j int) bool {
		if w[i].Field != w[j].Field {
			return w[i].Field < w[j].Field
		}
		return w[i].Code < w[j].Code
	})
}

// FormErrors maps a configuration field (json name) to the reason it was
// rejected.
type FormErrors map[string]string

// add records reason for field unless the field already has one.
func (e FormErrors) add(field, reason string) {
	if _, ok := e[field]; !ok {
		e[field] = reason
	}
}

// Fields returns the rejected field names in order.
func (e FormErrors) Fields() []string {
	out := make([]string, 0, len(e))
	for k := range e {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Ingredient is one line of the formula.
type Ingredient struct {
	Name       string      `json:"name" yaml:"name" toml:"name"`
	Class      units.Class `json:"class" yaml:"class" toml:"class"`
	Weight     float64     `json:"weight" yaml:"weight" toml:"weight"`
	Percentage float64     `json:"percentage" yaml:"percentage" toml:"percentage"`
	Grams      float64     `json:"grams" yaml:"grams" toml:"grams"`
	Volume     string      `json:"volume,omitempty" yaml:"volume,omitempty" toml:"volume,omitempty"`
}

// Pieces is the portioning of the dough.
type Pieces struct {
	Count  int     `json:"count" yaml:"count" toml:"count"`
	Weight float64 `json:"weight" yaml:"weight" toml:"weight"`
}

// Result is the complete output of one calculation. When Errors is not
// empty only Configuration, Unit, Warnings and Errors are set.
type Result struct {
	header.Header `yaml:",inline"`

	Configuration *Formula     `json:"configuration" yaml:"configuration" toml:"configuration"`
	Unit          units.Unit   `json:"unit" yaml:"unit" toml:"unit"`
	Ingredients   []Ingredient `json:"ingredients,omitempty" yaml:"ingredients,omitempty" toml:"ingredients,omitempty"`
	TotalFlour    float64      `json:"totalFlour,omitempty" yaml:"totalFlour,omitempty" toml:"totalFlour,omitempty"`
	TotalWeight   float64      `json:"totalWeight,omitempty" yaml:"totalWeight,omitempty" toml:"totalWeight,omitempty"`
	Pieces        *Pieces      `json:"pieces,omitempty" yaml:"pieces,omitempty" toml:"pieces,omitempty"`
	Leavening     *Leavening   `json:"leavening,omitempty" yaml:"leavening,omitempty" toml:"leavening,omitempty"`
	Schedule      *Schedule    `json:"schedule,omitempty" yaml:"schedule,omitempty" toml:"schedule,omitempty"`
	Warnings      []Warning    `json:"warnings,omitempty" yaml:"warnings,omitempty" toml:"warnings,omitempty"`
	Errors        FormErrors   `json:"errors,omitempty" yaml:"errors,omitempty" toml:"errors,omitempty"`
}

// Valid reports whether the calculation passed validation.
func (r *Result) Valid() bool {
	return r != nil && len(r.Errors) == 0
}

// Ingredient returns the named ingredient.
func (r *Result) Ingredient(name string) (Ingredient, bool) {
	for _, in := range r.Ingredients {
		if in.Name == name {
			return in, true
		}
	}
	return Ingredient{}, false
}
