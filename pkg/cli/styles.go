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

	"github.com/doughlab/dough/pkg/dough"
)

func stylesCmd() *cli.Command {
	return &cli.Command{
		Name:                  "styles",
		EnableShellCompletion: true,
		Usage:                 "List the built-in recipe styles and their defaults",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "name",
				Usage: fmt.Sprintf("Show a single style (supported values: %s)", strings.Join(dough.GetStyles(), ", ")),
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			catalog, err := dough.DefaultCatalog()
			if err != nil {
				return fmt.Errorf("error loading style catalog: %w", err)
			}

			name := strings.TrimSpace(cmd.String("name"))
			if name == "" {
				return writeOutput(ctx, cmd, format, catalog.Listing())
			}

			style, err := dough.ParseStyle(name)
			if err != nil {
				return err
			}
			seed, err := catalog.Seed(style)
			if err != nil {
				return err
			}
			return writeOutput(ctx, cmd, format, &dough.StyleEntry{Name: style, StyleSeed: seed})
		},
	}
}
