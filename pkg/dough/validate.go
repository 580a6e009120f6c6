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
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/doughlab/dough/pkg/units"
)

// formulaRules is the field-level view of a Formula checked by the
// validator. Weights are in grams so the bands do not depend on the unit;
// json names key the resulting errors.
type formulaRules struct {
	RecipeStyle      string   `json:"recipeStyle" validate:"style"`
	BakeType         string   `json:"bakeType" validate:"baketype"`
	CalculationMode  string   `json:"calculationMode" validate:"mode"`
	Unit             string   `json:"unit" validate:"unit"`
	YeastType        string   `json:"yeastType" validate:"yeasttype"`
	Technique        string   `json:"fermentationTechnique" validate:"technique"`
	Hydration        float64  `json:"hydration" validate:"gte=30,lte=150"`
	Salt             float64  `json:"salt" validate:"gte=0,lte=10"`
	Oil              float64  `json:"oil" validate:"gte=0,lte=30"`
	Sugar            float64  `json:"sugar" validate:"gte=0,lte=30"`
	LeaveningPercent *float64 `json:"leaveningPercent" validate:"omitempty,gt=0,lte=100"`
	StarterHydration float64  `json:"starterHydration" validate:"omitempty,gte=50,lte=200"`
	AmbientTempC     float64  `json:"ambientTemperature" validate:"gte=2,lte=45"`
	BakingTempC      float64  `json:"bakingTempC" validate:"gte=150,lte=500"`
	NumberOfBalls    int      `json:"numberOfBalls" validate:"gte=1,lte=500"`
	BallGrams        float64  `json:"ballWeight" validate:"gte=20,lte=5000"`
	TotalGrams       float64  `json:"totalWeight" validate:"gte=20,lte=100000"`
}

// maxCommercialLeavening caps a commercial yeast override, percent of flour.
const maxCommercialLeavening = 5.0

// Room temperature band accepted for ambientTemperature and for the
// defaultAmbientTempC table value. ambientTempRule mirrors the struct tag.
const (
	minAmbientTempC = 2.0
	maxAmbientTempC = 45.0
	ambientTempRule = "gte=2,lte=45"
	maxColdTempC    = 10.0
)

var sizingFields = []string{"numberOfBalls", "ballWeight", "totalWeight"}

var (
	formulaValidator     *validator.Validate
	formulaValidatorOnce sync.Once
)

func getValidator() *validator.Validate {
	formulaValidatorOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("style", enumRule(ParseStyle))
		_ = v.RegisterValidation("baketype", enumRule(ParseBakeType))
		_ = v.RegisterValidation("mode", enumRule(ParseCalculationMode))
		_ = v.RegisterValidation("yeasttype", enumRule(ParseYeastType))
		_ = v.RegisterValidation("technique", enumRule(ParseTechnique))
		_ = v.RegisterValidation("unit", enumRule(units.ParseUnit))
		formulaValidator = v
	})
	return formulaValidator
}

func enumRule[T ~string](parse func(string) (T, error)) validator.Func {
	return func(fl validator.FieldLevel) bool {
		_, err := parse(fl.Field().String())
		return err == nil
	}
}

var enumChoices = map[string]func() []string{
	"style":     GetStyles,
	"baketype":  GetBakeTypes,
	"mode":      GetCalculationModes,
	"yeasttype": GetYeastTypes,
	"technique": GetTechniques,
	"unit":      units.GetUnits,
}

// fieldReason renders a validator failure as a user-facing reason.
func fieldReason(fe validator.FieldError) string {
	suffix := ""
	if fe.Field() == "ballWeight" || fe.Field() == "totalWeight" {
		suffix = " g"
	}
	switch fe.Tag() {
	case "gte":
		return fmt.Sprintf("must be at least %s%s", fe.Param(), suffix)
	case "lte":
		return fmt.Sprintf("must be at most %s%s", fe.Param(), suffix)
	case "gt":
		return fmt.Sprintf("must be greater than %s%s", fe.Param(), suffix)
	}
	if choices, ok := enumChoices[fe.Tag()]; ok {
		return fmt.Sprintf("unsupported value %q, want one of: %s", fe.Value(), strings.Join(choices(), ", "))
	}
	return "invalid value"
}

// validate checks f, resolves its sizing and runs the leavening model for
// the cross-field checks. The returned leavening is nil when errs is not
// empty.
func (e *Engine) validate(f *Formula) (*Leavening, []Warning, FormErrors) {
	errs := FormErrors{}

	sized := f.Unit.IsValid() && f.resolveSizing(errs)

	rules := formulaRules{
		RecipeStyle:      string(f.RecipeStyle),
		BakeType:         string(f.BakeType),
		CalculationMode:  string(f.CalculationMode),
		Unit:             string(f.Unit),
		YeastType:        string(f.YeastType),
		Technique:        string(f.Technique),
		Hydration:        f.Hydration,
		Salt:             f.Salt,
		Oil:              f.Oil,
		Sugar:            f.Sugar,
		LeaveningPercent: f.LeaveningPercent,
		StarterHydration: f.StarterHydration,
		AmbientTempC:     f.AmbientTempC,
		BakingTempC:      f.BakingTempC,
		NumberOfBalls:    f.NumberOfBalls,
	}
	if sized {
		rules.BallGrams, _ = f.grams(f.BallWeight)
		rules.TotalGrams, _ = f.grams(f.TotalWeight)
	}

	if err := getValidator().Struct(rules); err != nil {
		var ves validator.ValidationErrors
		if !errors.As(err, &ves) {
			errs.add("configuration", err.Error())
		}
		for _, fe := range ves {
			if !sized && isSizingField(fe.Field()) {
				continue
			}
			errs.add(fe.Field(), fieldReason(fe))
		}
	}

	if _, bad := errs["yeastType"]; !bad && f.LeaveningPercent != nil &&
		f.family() == FamilyCommercial && *f.LeaveningPercent > maxCommercialLeavening {
		errs.add("leaveningPercent", fmt.Sprintf("must be at most %g for %s yeast", maxCommercialLeavening, f.YeastType))
	}

	if f.LeaveningPercent != nil && !anyOf(errs, "yeastType", "fermentationTechnique", "leaveningPercent") {
		if floor, ok := e.tables.leaveningFloor(f.YeastType, f.Technique); ok && *f.LeaveningPercent < floor {
			errs.add("leaveningPercent", fmt.Sprintf("must be at least %.4g for %s yeast with %s fermentation",
				floor, f.YeastType, f.Technique))
		}
	}

	var lv *Leavening
	if !anyOf(errs, "yeastType", "fermentationTechnique", "ambientTemperature", "leaveningPercent") {
		var err error
		if lv, err = e.leaven(f); err != nil {
			errs.add("yeastType", err.Error())
		}
	}

	if lv != nil && lv.Family == FamilyNatural && !anyOf(errs, "hydration", "starterHydration") {
		starterWater := lv.Percent * f.StarterHydration / (100 + f.StarterHydration)
		if starterWater > f.Hydration {
			errs.add("hydration", fmt.Sprintf(
				"hydration %.4g%% is below the %.4g%% of water the starter already carries; raise hydration or lower the starter",
				f.Hydration, starterWater))
		}
	}

	warnings := e.plausibility(f, lv, errs)
	if len(errs) > 0 {
		return nil, warnings, errs
	}
	return lv, warnings, nil
}

// resolveSizing fills the three sizing fields from whichever the caller
// supplied, falling back to the style seed. It returns false after
// recording errors when the supplied values disagree.
func (f *Formula) resolveSizing(errs FormErrors) bool {
	n, b, t := f.given.balls, f.given.ballWeight, f.given.totalWeight
	tol := f.Unit.Step() / 2

	ok := true
	if n != nil && *n < 1 {
		errs.add("numberOfBalls", "must be at least 1")
		ok = false
	}
	if b != nil && *b <= 0 {
		errs.add("ballWeight", "must be greater than 0")
		ok = false
	}
	if t != nil && *t <= 0 {
		errs.add("totalWeight", "must be greater than 0")
		ok = false
	}
	if !ok {
		return false
	}

	// Piece weights live on the unit grid so count x weight is the total.
	var bw float64
	if b != nil {
		if bw = f.Unit.Round(*b); bw <= 0 {
			errs.add("ballWeight", fmt.Sprintf("must be at least %g%s", f.Unit.Step(), f.Unit))
			return false
		}
	}
	times := func(count int, weight float64) float64 {
		return f.Unit.Round(float64(count) * weight)
	}

	seedN := f.seed.NumberOfBalls
	seedB, _ := units.FromCanonical(f.seed.BallWeight, f.Unit)
	seedB = f.Unit.Round(seedB)

	switch {
	case n != nil && b != nil && t != nil:
		if product := times(*n, bw); math.Abs(product-*t) > tol {
			reason := fmt.Sprintf("%d x %g%s = %g%s does not match totalWeight %g%s",
				*n, bw, f.Unit, product, f.Unit, *t, f.Unit)
			for _, field := range sizingFields {
				errs.add(field, reason)
			}
			return false
		}
		f.NumberOfBalls, f.BallWeight, f.TotalWeight = *n, bw, times(*n, bw)
	case t != nil && b != nil:
		whole := math.Round(*t / bw)
		if whole < 1 || math.Abs(times(int(whole), bw)-*t) > tol {
			reason := fmt.Sprintf("totalWeight %g%s is not a whole number of %g%s pieces", *t, f.Unit, bw, f.Unit)
			errs.add("totalWeight", reason)
			errs.add("ballWeight", reason)
			return false
		}
		f.NumberOfBalls, f.BallWeight, f.TotalWeight = int(whole), bw, times(int(whole), bw)
	case t != nil && n != nil:
		f.NumberOfBalls, f.BallWeight, f.TotalWeight = *n, *t/float64(*n), *t
	case t != nil:
		f.NumberOfBalls, f.BallWeight, f.TotalWeight = seedN, *t/float64(seedN), *t
	case n != nil && b != nil:
		f.NumberOfBalls, f.BallWeight, f.TotalWeight = *n, bw, times(*n, bw)
	case n != nil:
		f.NumberOfBalls, f.BallWeight, f.TotalWeight = *n, seedB, times(*n, seedB)
	case b != nil:
		f.NumberOfBalls, f.BallWeight, f.TotalWeight = seedN, bw, times(seedN, bw)
	default:
		f.NumberOfBalls, f.BallWeight, f.TotalWeight = seedN, seedB, times(seedN, seedB)
	}
	return true
}

// plausibility returns advisory warnings for fields that passed validation.
func (e *Engine) plausibility(f *Formula, lv *Leavening, errs FormErrors) []Warning {
	p := e.tables.Plausibility
	var out []Warning
	warn := func(field string, code WarningCode, format string, args ...any) {
		if _, bad := errs[field]; bad {
			return
		}
		out = append(out, Warning{Field: field, Code: code, Message: fmt.Sprintf(format, args...)})
	}

	if _, bad := errs["recipeStyle"]; !bad && !f.seed.HydrationBand.Contains(f.Hydration) {
		warn("hydration", WarnHydrationOutsideBand, "hydration %.4g%% is outside the usual %g-%g%% for %s",
			f.Hydration, f.seed.HydrationBand.Min, f.seed.HydrationBand.Max, f.RecipeStyle)
	}
	if !p.Salt.Contains(f.Salt) {
		warn("salt", WarnSaltUnusual, "salt %.4g%% is outside the usual %g-%g%%", f.Salt, p.Salt.Min, p.Salt.Max)
	}
	if f.BakeType == BakePizza {
		if f.Oil > p.PizzaOilMax && f.RecipeStyle != StyleDetroit && f.RecipeStyle != StyleRoman {
			warn("oil", WarnOilHighForPizza, "oil %.4g%% is high for %s pizza (usually at most %g%%)",
				f.Oil, f.RecipeStyle, p.PizzaOilMax)
		}
		if f.Sugar > p.PizzaSugarMax {
			warn("sugar", WarnSugarHighForPizza, "sugar %.4g%% is high for pizza (usually at most %g%%)",
				f.Sugar, p.PizzaSugarMax)
		}
	}
	if band, ok := p.BakingTempC[f.BakeType]; ok && !band.Contains(f.BakingTempC) {
		warn("bakingTempC", WarnBakingTempUnusual, "%gC is unusual for %s (usually %g-%gC)",
			f.BakingTempC, f.BakeType, band.Min, band.Max)
	}
	if !p.AmbientTempC.Contains(f.AmbientTempC) {
		warn("ambientTemperature", WarnAmbientTempUnusual, "%gC is outside the %g-%gC the schedule is tuned for",
			f.AmbientTempC, p.AmbientTempC.Min, p.AmbientTempC.Max)
	}
	if f.family() == FamilyNatural && f.Technique == TechniqueDirect {
		warn("fermentationTechnique", WarnSlowSameDayNatural,
			"natural culture with a same-day direct process needs a long, warm bulk ferment; expect a slow day")
	}
	if lv != nil && lv.Clamped {
		warn("yeastType", WarnLeaveningAtLimit,
			"%s leavening is held at the edge of its range for a %s room; fermentation windows are adjusted instead",
			f.YeastType, lv.Bucket)
	}
	return out
}

func isSizingField(field string) bool {
	for _, s := range sizingFields {
		if s == field {
			return true
		}
	}
	return false
}

func anyOf(errs FormErrors, fields ...string) bool {
	for _, f := range fields {
		if _, ok := errs[f]; ok {
			return true
		}
	}
	return false
}
