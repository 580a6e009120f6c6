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
	"math"
	"testing"
	"time"
)

func TestRoundDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want time.Duration
	}{
		{95 * time.Second, 90 * time.Second},
		{105 * time.Second, 2 * time.Minute},
		{14*time.Minute + 20*time.Second, 14 * time.Minute},
		{2*time.Hour + 7*time.Minute, 2*time.Hour + 5*time.Minute},
		{2*time.Hour + 8*time.Minute, 2*time.Hour + 10*time.Minute},
	}
	for _, tt := range tests {
		if got := roundDuration(tt.in).Std(); got != tt.want {
			t.Errorf("roundDuration(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestHoursDurationBounds(t *testing.T) {
	tests := []struct {
		hours float64
		want  time.Duration
	}{
		{1.5, 90 * time.Minute},
		{0, 0},
		{-2, 0},
		{math.NaN(), 0},
		{1e12, maxPlanDuration},
		{math.Inf(1), maxPlanDuration},
	}
	for _, tt := range tests {
		if got := hoursDuration(tt.hours).Std(); got != tt.want {
			t.Errorf("hoursDuration(%v) = %v, want %v", tt.hours, got, tt.want)
		}
	}
}

func TestDurationString(t *testing.T) {
	tests := []struct {
		in   Duration
		want string
	}{
		{0, "0m"},
		{Duration(90 * time.Second), "1m30s"},
		{Duration(15 * time.Minute), "15m"},
		{Duration(time.Hour), "1h"},
		{Duration(2*time.Hour + 30*time.Minute), "2h30m"},
	}
	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestDurationText(t *testing.T) {
	d := Duration(2*time.Hour + 30*time.Minute)
	b, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}
	var back Duration
	if err := back.UnmarshalText(b); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	if back != d {
		t.Errorf("UnmarshalText(%s) = %v, want %v", b, back, d)
	}
	if err := back.UnmarshalText([]byte("two hours")); err == nil {
		t.Error("UnmarshalText(two hours) expected error")
	}
}

func TestDurationRange(t *testing.T) {
	r := hoursRange(Range{Min: 2, Ideal: 3, Max: 4})
	if got := r.String(); got != "2h-4h (~3h)" {
		t.Errorf("String() = %q", got)
	}
	sum := r.Add(minutesRange(Range{Min: 10, Ideal: 15, Max: 25}))
	if sum.Ideal.Std() != 3*time.Hour+15*time.Minute {
		t.Errorf("Add() ideal = %v", sum.Ideal)
	}
	if got := minutesRange(Range{Min: 2, Ideal: 2, Max: 2}).String(); got != "2m" {
		t.Errorf("String() = %q, want 2m", got)
	}
}
