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
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/doughlab/dough/pkg/units"
)

// Conversion is the output of the convert command.
type Conversion struct {
	Value  float64    `json:"value" yaml:"value" toml:"value"`
	From   units.Unit `json:"from" yaml:"from" toml:"from"`
	Result float64    `json:"result" yaml:"result" toml:"result"`
	To     units.Unit `json:"to" yaml:"to" toml:"to"`
	Volume string     `json:"volume,omitempty" yaml:"volume,omitempty" toml:"volume,omitempty"`
}

func convertCmd() *cli.Command {
	return &cli.Command{
		Name:                  "convert",
		EnableShellCompletion: true,
		Usage:                 "Convert a mass between units",
		Description: `Convert a mass between g, kg, oz and lb, rounded to the target unit's
reporting grid. With --class, also show a household volume for ingredients
that have a density (salt, sugar, oil, instant-yeast, active-dry-yeast).

# Examples

  doughctl convert --value 10 --from oz --to g
  doughctl convert --value 12 --from g --to oz --class salt`,
		Flags: []cli.Flag{
			&cli.FloatFlag{
				Name:     "value",
				Usage:    "Mass to convert",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "from",
				Usage:    fmt.Sprintf("Source unit (supported values: %s)", strings.Join(units.GetUnits(), ", ")),
				Required: true,
			},
			&cli.StringFlag{
				Name:    "to",
				Usage:   fmt.Sprintf("Target unit (supported values: %s)", strings.Join(units.GetUnits(), ", ")),
				Value:   string(units.Gram),
				Sources: cli.EnvVars("DOUGH_UNIT"),
			},
			&cli.StringFlag{
				Name:  "class",
				Usage: "Ingredient class for a volume estimate",
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}
			c, err := convert(cmd.Float("value"), cmd.String("from"), cmd.String("to"), cmd.String("class"))
			if err != nil {
				return err
			}
			return writeOutput(ctx, cmd, format, c)
		},
	}
}

func convert(value float64, from, to, class string) (*Conversion, error) {
	fromUnit, err := units.ParseUnit(from)
	if err != nil {
		return nil, err
	}
	toUnit, err := units.ParseUnit(to)
	if err != nil {
		return nil, err
	}

	v, err := units.Convert(value, fromUnit, toUnit)
	if err != nil {
		return nil, err
	}
	c := &Conversion{Value: value, From: fromUnit, Result: toUnit.Round(v), To: toUnit}

	if class = strings.TrimSpace(class); class != "" {
		grams, err := units.ToCanonical(value, fromUnit)
		if err != nil {
			return nil, err
		}
		vol, err := units.DefaultDensities().ToVolume(grams, units.Class(strings.ToLower(class)))
		if err != nil {
			return nil, err
		}
		c.Volume = vol.String()
	}
	return c, nil
}
