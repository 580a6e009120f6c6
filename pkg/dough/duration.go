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
	"fmt"
	"math"
	"strings"
	"time"
)

// Duration is a planning duration rendered as a compact string such as
// "2h30m" or "1m30s".
type Duration time.Duration

// roundDuration snaps a planning duration to a readable grid: 30 seconds
// under ten minutes, a minute under an hour, five minutes above.
func roundDuration(d time.Duration) Duration {
	switch {
	case d < 10*time.Minute:
		return Duration(d.Round(30 * time.Second))
	case d < time.Hour:
		return Duration(d.Round(time.Minute))
	default:
		return Duration(d.Round(5 * time.Minute))
	}
}

// maxPlanDuration bounds any single planning window.
const maxPlanDuration = 30 * 24 * time.Hour

func hoursDuration(h float64) Duration {
	return roundDuration(planDuration(h, time.Hour))
}

func minutesDuration(m float64) Duration {
	return roundDuration(planDuration(m, time.Minute))
}

// planDuration converts v units to a duration within [0, maxPlanDuration].
func planDuration(v float64, unit time.Duration) time.Duration {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= float64(maxPlanDuration)/float64(unit):
		return maxPlanDuration
	}
	return time.Duration(v * float64(unit))
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Hours returns the duration in fractional hours.
func (d Duration) Hours() float64 {
	return time.Duration(d).Hours()
}

// String trims zero units from time.Duration's format.
func (d Duration) String() string {
	if d == 0 {
		return "0m"
	}
	s := time.Duration(d).String()
	if strings.HasSuffix(s, "m0s") {
		s = strings.TrimSuffix(s, "0s")
	}
	if strings.HasSuffix(s, "h0m") {
		s = strings.TrimSuffix(s, "0m")
	}
	return s
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", b, err)
	}
	*d = Duration(v)
	return nil
}

// DurationRange is a min/ideal/max planning window.
type DurationRange struct {
	Min   Duration `json:"min" yaml:"min" toml:"min"`
	Ideal Duration `json:"ideal" yaml:"ideal" toml:"ideal"`
	Max   Duration `json:"max" yaml:"max" toml:"max"`
}

// Add sums two windows bound by bound.
func (r DurationRange) Add(o DurationRange) DurationRange {
	return DurationRange{Min: r.Min + o.Min, Ideal: r.Ideal + o.Ideal, Max: r.Max + o.Max}
}

// String renders the window as "min-max (ideal)".
func (r DurationRange) String() string {
	if r.Min == r.Max {
		return r.Ideal.String()
	}
	return fmt.Sprintf("%s-%s (~%s)", r.Min, r.Max, r.Ideal)
}

func hoursRange(r Range) DurationRange {
	return DurationRange{Min: hoursDuration(r.Min), Ideal: hoursDuration(r.Ideal), Max: hoursDuration(r.Max)}
}

func minutesRange(r Range) DurationRange {
	return DurationRange{Min: minutesDuration(r.Min), Ideal: minutesDuration(r.Ideal), Max: minutesDuration(r.Max)}
}
