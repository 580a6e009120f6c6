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

	"github.com/urfave/cli/v3"

	"github.com/doughlab/dough/pkg/dough"
)

func compareCmd() *cli.Command {
	return &cli.Command{
		Name:                  "compare",
		EnableShellCompletion: true,
		Usage:                 "Compare two dough configurations",
		Description: `Calculate two configurations and show how ingredients and fermentation
phases change from A to B. Both must pass validation and share a unit.

# Examples

  doughctl compare --a friday.yaml --b saturday.yaml
  doughctl compare --a 60.json --b 70.json --format json`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "a",
				Usage:    "Path/URL of the baseline configuration",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "b",
				Usage:    "Path/URL of the configuration to compare against the baseline",
				Required: true,
			},
			tablesFlag(),
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			a, err := dough.LoadConfigurationFromFile(cmd.String("a"))
			if err != nil {
				return fmt.Errorf("error loading configuration a: %w", err)
			}
			b, err := dough.LoadConfigurationFromFile(cmd.String("b"))
			if err != nil {
				return fmt.Errorf("error loading configuration b: %w", err)
			}

			e, err := newEngine(cmd)
			if err != nil {
				return fmt.Errorf("error loading constants: %w", err)
			}

			c, err := e.CompareConfigurations(ctx, a, b)
			if err != nil {
				return fmt.Errorf("error comparing configurations: %w", err)
			}

			return writeOutput(ctx, cmd, format, c)
		},
	}
}
