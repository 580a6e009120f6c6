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
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/doughlab/dough/pkg/dough"
)

var titleCaser = cases.Title(language.English)

// title turns an identifier like "new-york" into "New York".
func title(s string) string {
	return titleCaser.String(strings.ReplaceAll(s, "-", " "))
}

func newCardTable(w io.Writer, heading string) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.Style().Title.Align = text.AlignLeft
	tw.SetTitle(heading)
	return tw
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func renderResultCard(w io.Writer, res *dough.Result) error {
	f := res.Configuration
	heading := "Dough"
	if f != nil {
		heading = fmt.Sprintf("%s %s · %s", title(string(f.RecipeStyle)), f.BakeType, f.CalculationMode)
	}

	if !res.Valid() {
		tw := newCardTable(w, heading+" · rejected")
		tw.AppendHeader(table.Row{"Field", "Problem"})
		for _, field := range res.Errors.Fields() {
			tw.AppendRow(table.Row{field, res.Errors[field]})
		}
		tw.Render()
		renderWarnings(w, res.Warnings)
		return nil
	}

	unit := string(res.Unit)
	ingredients := newCardTable(w, heading)
	ingredients.AppendHeader(table.Row{"Ingredient", "Weight", "Baker's %", "Volume"})
	for _, in := range res.Ingredients {
		ingredients.AppendRow(table.Row{in.Name, num(in.Weight) + " " + unit, num(in.Percentage) + "%", in.Volume})
	}
	ingredients.AppendFooter(table.Row{"Total", num(res.TotalWeight) + " " + unit, "", ""})
	ingredients.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	ingredients.Render()

	if res.Pieces != nil {
		fmt.Fprintf(w, "Pieces: %d × %s %s\n", res.Pieces.Count, num(res.Pieces.Weight), unit)
	}
	if lv := res.Leavening; lv != nil {
		fmt.Fprintf(w, "Leavening: %s %s at %s°C, %s%% of flour\n",
			title(string(lv.YeastType)), lv.Technique, num(lv.TemperatureC), num(lv.Percent))
		if lv.Explanation != "" {
			fmt.Fprintf(w, "  %s\n", lv.Explanation)
		}
	}

	if s := res.Schedule; s != nil {
		renderSchedule(w, s)
	}
	renderWarnings(w, res.Warnings)
	return nil
}

func renderSchedule(w io.Writer, s *dough.Schedule) {
	tw := newCardTable(w, "Schedule")
	tw.AppendHeader(table.Row{"Phase", "Time", "Temperature"})
	row := func(p dough.Phase) {
		temp := "room"
		if p.TemperatureC != nil {
			temp = num(*p.TemperatureC) + "°C"
		}
		if p.Refrigerated {
			temp += " (fridge)"
		}
		tw.AppendRow(table.Row{p.Label, p.Duration.String(), temp})
	}
	if s.PrefermentLead != nil {
		row(*s.PrefermentLead)
	}
	for _, p := range s.Phases {
		row(p)
	}
	tw.AppendFooter(table.Row{"Total", s.Total.String(), ""})
	tw.Render()

	if s.Widened {
		fmt.Fprintln(w, "Room temperature was not given; ambient phases use widened windows.")
	}
	if s.StartBy != nil && s.ReadyBy != nil {
		fmt.Fprintf(w, "Start between %s and %s (ideally %s) to be ready by %s.\n",
			s.StartBy.Earliest.Format(time.DateTime), s.StartBy.Latest.Format(time.DateTime),
			s.StartBy.Ideal.Format(time.DateTime), s.ReadyBy.Format(time.DateTime))
	}
}

func renderWarnings(w io.Writer, warnings []dough.Warning) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintln(w, "Warnings:")
	for _, wr := range warnings {
		fmt.Fprintf(w, "  - %s: %s\n", wr.Field, wr.Message)
	}
}

func renderComparisonCard(w io.Writer, c *dough.Comparison) error {
	unit := string(c.Unit)
	ingredients := newCardTable(w, "Comparison (A → B)")
	ingredients.AppendHeader(table.Row{"Ingredient", "A", "B", "Δ", "Δ %", "Status"})
	for _, d := range c.Ingredients {
		ingredients.AppendRow(table.Row{d.Name, num(d.A) + " " + unit, num(d.B) + " " + unit,
			signedNum(d.WeightDelta), signedNum(d.PercentageDelta), string(d.Status)})
	}
	ingredients.AppendFooter(table.Row{"Total", "", "", signedNum(c.TotalWeightDelta), "", ""})
	ingredients.Render()

	phases := newCardTable(w, "Schedule")
	phases.AppendHeader(table.Row{"Phase", "A", "B", "Δ", "Status"})
	for _, d := range c.Phases {
		phases.AppendRow(table.Row{d.Name.Label(), d.A.String(), d.B.String(), d.Delta, string(d.Status)})
	}
	phases.AppendFooter(table.Row{"Total", "", "", c.TotalTimeDelta, ""})
	phases.Render()
	return nil
}

func signedNum(v float64) string {
	if v > 0 {
		return "+" + num(v)
	}
	return num(v)
}

func renderStylesCard(w io.Writer, entries []dough.StyleEntry) error {
	tw := newCardTable(w, "Styles")
	tw.AppendHeader(table.Row{"Style", "Bake", "Hydration", "Salt", "Oil", "Sugar", "Yeast", "Technique", "Pieces"})
	for _, e := range entries {
		tw.AppendRow(table.Row{
			title(string(e.Name)),
			string(e.BakeType),
			fmt.Sprintf("%s%% (%s-%s)", num(e.Hydration), num(e.HydrationBand.Min), num(e.HydrationBand.Max)),
			num(e.Salt) + "%",
			num(e.Oil) + "%",
			num(e.Sugar) + "%",
			string(e.YeastType),
			string(e.Technique),
			fmt.Sprintf("%d × %s g", e.NumberOfBalls, num(e.BallWeight)),
		})
	}
	tw.Render()
	return nil
}
