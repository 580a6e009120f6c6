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
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"

	"github.com/doughlab/dough/pkg/dough"
	"github.com/doughlab/dough/pkg/serializer"
)

// formatCard renders human-oriented tables; it is not a serializer format.
const formatCard serializer.Format = "card"

// Flags are built per command; urfave/cli flags hold their parsed state.

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file path (default: stdout)",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Usage: fmt.Sprintf("Output format (supported values: %s, %s; default: card on a terminal, yaml otherwise)",
			strings.Join(serializer.SupportedFormats(), ", "), formatCard),
		Sources: cli.EnvVars("DOUGH_FORMAT"),
	}
}

func tablesFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "tables",
		Usage:   "Path or URL of a constants file overlaid on the embedded tables",
		Sources: cli.EnvVars("DOUGH_TABLES"),
	}
}

// parseOutputFormat returns the requested format, or a default chosen by
// whether output goes to a terminal.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	s := strings.TrimSpace(cmd.String("format"))
	if s == "" {
		if cmd.String("output") == "" && isTerminal(cmd.Root().Writer) {
			return formatCard, nil
		}
		return serializer.FormatYAML, nil
	}
	if strings.EqualFold(s, string(formatCard)) {
		return formatCard, nil
	}
	return serializer.ParseFormat(s)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// openOutput returns the --output file, or the command's writer.
func openOutput(cmd *cli.Command) (io.Writer, func(), error) {
	path := strings.TrimSpace(cmd.String("output"))
	if path == "" {
		w := cmd.Root().Writer
		if w == nil {
			w = os.Stdout
		}
		return w, func() {}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	return f, func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close output file", "path", path, "error", err)
		}
	}, nil
}

// writeOutput serializes v, rendering a card for types that have one and
// falling back to a table for the rest.
func writeOutput(ctx context.Context, cmd *cli.Command, format serializer.Format, v any) error {
	w, done, err := openOutput(cmd)
	if err != nil {
		return err
	}
	defer done()

	if format == formatCard {
		switch t := v.(type) {
		case *dough.Result:
			return renderResultCard(w, t)
		case *dough.Comparison:
			return renderComparisonCard(w, t)
		case *dough.StyleCatalog:
			return renderStylesCard(w, t.Styles)
		case *dough.StyleEntry:
			return renderStylesCard(w, []dough.StyleEntry{*t})
		default:
			format = serializer.FormatTable
		}
	}

	return serializer.NewWriter(format, w).Serialize(ctx, v)
}

// newEngine builds an engine, overlaying the --tables file when set.
func newEngine(cmd *cli.Command) (*dough.Engine, error) {
	path := strings.TrimSpace(cmd.String("tables"))
	if path == "" {
		return dough.NewEngine()
	}
	t, err := dough.LoadTables(path)
	if err != nil {
		return nil, err
	}
	return dough.NewEngine(dough.WithTables(t))
}
