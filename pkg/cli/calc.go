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

package cli

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/doughlab/dough/pkg/dough"
	"github.com/doughlab/dough/pkg/units"
)

// configFlag maps a CLI flag to the configuration field it sets, by the
// field's query parameter name.
type configFlag struct {
	flag  string
	key   string
	usage string
	env   string
}

var configFlags = []configFlag{
	{flag: "style", key: "recipeStyle",
		usage: fmt.Sprintf("Recipe style (supported values: %s)", strings.Join(dough.GetStyles(), ", "))},
	{flag: "bake-type", key: "bakeType",
		usage: fmt.Sprintf("Bake type (supported values: %s)", strings.Join(dough.GetBakeTypes(), ", "))},
	{flag: "mode", key: "calculationMode",
		usage: fmt.Sprintf("Calculation mode (supported values: %s)", strings.Join(dough.GetCalculationModes(), ", "))},
	{flag: "hydration", key: "hydration", usage: "Water as percent of flour"},
	{flag: "salt", key: "salt", usage: "Salt as percent of flour"},
	{flag: "oil", key: "oil", usage: "Oil as percent of flour (advanced mode)"},
	{flag: "sugar", key: "sugar", usage: "Sugar as percent of flour (advanced mode)"},
	{flag: "yeast", key: "yeastType",
		usage: fmt.Sprintf("Yeast type (supported values: %s)", strings.Join(dough.GetYeastTypes(), ", "))},
	{flag: "technique", key: "fermentationTechnique",
		usage: fmt.Sprintf("Fermentation technique, advanced mode (supported values: %s)", strings.Join(dough.GetTechniques(), ", "))},
	{flag: "leavening-percent", key: "leaveningPercent", usage: "Leavening as percent of flour, replaces the computed amount (advanced mode)"},
	{flag: "starter-hydration", key: "starterHydration", usage: "Starter water as percent of starter flour (advanced mode)"},
	{flag: "ambient", key: "ambientTemperature", usage: "Room temperature in °C (advanced mode)"},
	{flag: "baking-temp", key: "bakingTempC", usage: "Oven temperature in °C"},
	{flag: "balls", key: "numberOfBalls", usage: "Number of dough pieces"},
	{flag: "ball-weight", key: "ballWeight", usage: "Weight of one piece, in --unit"},
	{flag: "total-weight", key: "totalWeight", usage: "Total dough weight, in --unit"},
	{flag: "unit", key: "unit", env: "DOUGH_UNIT",
		usage: fmt.Sprintf("Mass unit (supported values: %s)", strings.Join(units.GetUnits(), ", "))},
	{flag: "ready-by", key: "readyBy", usage: "When the dough should be ready to bake (RFC3339)"},
}

func calcCmd() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"f"},
			Usage: `Path/URL of a configuration file (YAML, JSON or TOML; bare or DoughConfig document).
	Flags given on the command line override values from the file.`,
		},
		tablesFlag(),
	}
	for _, f := range configFlags {
		sf := &cli.StringFlag{Name: f.flag, Usage: f.usage}
		if f.env != "" {
			sf.Sources = cli.EnvVars(f.env)
		}
		flags = append(flags, sf)
	}
	flags = append(flags, outputFlag(), formatFlag())

	return &cli.Command{
		Name:                  "calc",
		EnableShellCompletion: true,
		Usage:                 "Calculate ingredient weights and a fermentation schedule",
		Description: `Calculate a dough from a configuration given as flags, a file, or both.
Unset fields are filled from the style defaults.

# Examples

Four New York pies at 280 g:
  doughctl calc --style new-york --balls 4 --ball-weight 280

Same-day sourdough loaf, ready at 18:00:
  doughctl calc --style country-sourdough --mode advanced --technique direct \
    --ready-by 2026-01-10T18:00:00+01:00

From a saved configuration, in ounces:
  doughctl calc -f friday.yaml --unit oz --format json

The command exits non-zero when the configuration fails validation; the
result with its field errors is still printed.`,
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			cfg, err := buildConfigurationFromCmd(cmd)
			if err != nil {
				return fmt.Errorf("error parsing dough configuration: %w", err)
			}

			e, err := newEngine(cmd)
			if err != nil {
				return fmt.Errorf("error loading constants: %w", err)
			}

			res, err := e.Calculate(cfg)
			if err != nil {
				return fmt.Errorf("error calculating dough: %w", err)
			}

			if err := writeOutput(ctx, cmd, format, res); err != nil {
				return err
			}

			if !res.Valid() {
				return fmt.Errorf("configuration rejected, invalid fields: %s",
					strings.Join(res.Errors.Fields(), ", "))
			}
			return nil
		},
	}
}

// buildConfigurationFromCmd loads --config when given and overlays the
// configuration flags that were set.
func buildConfigurationFromCmd(cmd *cli.Command) (*dough.Configuration, error) {
	values := url.Values{}
	for _, f := range configFlags {
		if v := strings.TrimSpace(cmd.String(f.flag)); v != "" {
			values.Set(f.key, v)
		}
	}

	fromFlags, err := dough.ParseConfigurationFromValues(values)
	if err != nil {
		return nil, err
	}

	path := strings.TrimSpace(cmd.String("config"))
	if path == "" {
		return fromFlags, nil
	}

	cfg, err := dough.LoadConfigurationFromFile(path)
	if err != nil {
		return nil, err
	}
	overlayConfiguration(cfg, fromFlags)
	return cfg, nil
}

// overlayConfiguration copies every field set in src onto dst.
func overlayConfiguration(dst, src *dough.Configuration) {
	if src.RecipeStyle != "" {
		dst.RecipeStyle = src.RecipeStyle
	}
	if src.BakeType != "" {
		dst.BakeType = src.BakeType
	}
	if src.CalculationMode != "" {
		dst.CalculationMode = src.CalculationMode
	}
	if src.YeastType != "" {
		dst.YeastType = src.YeastType
	}
	if src.Technique != "" {
		dst.Technique = src.Technique
	}
	if src.Unit != "" {
		dst.Unit = src.Unit
	}

	for _, p := range []struct{ dst, src **float64 }{
		{&dst.Hydration, &src.Hydration},
		{&dst.Salt, &src.Salt},
		{&dst.Oil, &src.Oil},
		{&dst.Sugar, &src.Sugar},
		{&dst.LeaveningPercent, &src.LeaveningPercent},
		{&dst.StarterHydration, &src.StarterHydration},
		{&dst.AmbientTempC, &src.AmbientTempC},
		{&dst.BakingTempC, &src.BakingTempC},
		{&dst.BallWeight, &src.BallWeight},
		{&dst.TotalWeight, &src.TotalWeight},
	} {
		if *p.src != nil {
			*p.dst = *p.src
		}
	}

	if src.NumberOfBalls != nil {
		dst.NumberOfBalls = src.NumberOfBalls
	}
	if src.ReadyBy != nil {
		dst.ReadyBy = src.ReadyBy
	}
}
