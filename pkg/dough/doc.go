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

// Package dough turns baker's percentages and room conditions into exact
// ingredient weights and a fermentation timeline.
//
// A calculation flows through fixed stages, each a pure function of its
// input:
//
//	Configuration -> style seed merge -> validation -> leavening model
//	    -> percentage resolver -> scheduler -> result assembler -> Result
//
// # Core Types
//
// Configuration: caller input. Optional fields are pointers; nil takes the
// value of the recipe style's seed.
//
//	type Configuration struct {
//	    RecipeStyle     Style           // neapolitan, new-york, detroit, ...
//	    CalculationMode CalculationMode // basic, advanced
//	    Hydration       *float64        // percent of total flour
//	    YeastType       YeastType       // fresh, active-dry, instant, natural
//	    Technique       Technique       // direct, preferment, cold-retard
//	    AmbientTempC    *float64        // room temperature
//	    NumberOfBalls   *int            // pieces
//	    TotalWeight     *float64        // total dough mass in Unit
//	    Unit            units.Unit      // g, kg, oz, lb
//	    ...
//	}
//
// Result: ingredient weights that add up exactly to the total, the
// leavening explanation, the timeline, and warnings. When Errors is not
// empty the result carries no numbers.
//
// # Basic and Advanced Mode
//
// Basic mode honors style, hydration, salt, yeast type, baking temperature,
// sizing and unit. Oil, sugar, fermentation technique, room temperature,
// starter hydration and leavening overrides are taken from the style and a
// warning names each ignored value. Advanced mode honors every field.
//
// # Constants
//
// Yeast ranges, technique multipliers, temperature buckets, phase durations,
// bake times and plausibility bands live in data/tables.yaml and can be
// replaced with LoadTables. Styles live in data/styles.yaml.
//
// # Usage
//
//	cfg := dough.NewConfiguration(
//	    dough.WithStyle(dough.StyleNeapolitan),
//	    dough.WithBalls(6, 250),
//	)
//	res, err := dough.Calculate(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !res.Valid() {
//	    for field, reason := range res.Errors {
//	        fmt.Println(field, reason)
//	    }
//	}
//
// # HTTP
//
// Handler exposes the engine: HandleCalculate (GET query or POST body),
// HandleCompare and HandleStyles. Serialized responses are cached in an
// expiring LRU keyed by the canonical configuration.
package dough
