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
	"testing"
)

func TestParseStyle(t *testing.T) {
	tests := []struct {
		in      string
		want    Style
		wantErr bool
	}{
		{"", StyleNeapolitan, false},
		{"Neapolitan", StyleNeapolitan, false},
		{" nyc ", StyleNewYork, false},
		{"teglia", StyleRoman, false},
		{"sourdough", StyleCountrySourdough, false},
		{"chicago", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStyle(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStyle(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseStyle(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseYeastType(t *testing.T) {
	tests := []struct {
		in      string
		want    YeastType
		family  Family
		wantErr bool
	}{
		{"fresh", YeastFresh, FamilyCommercial, false},
		{"IDY", YeastInstant, FamilyCommercial, false},
		{"ady", YeastActiveDry, FamilyCommercial, false},
		{"levain", YeastNatural, FamilyNatural, false},
		{"", "", "", true},
		{"beer", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseYeastType(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseYeastType(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseYeastType(%q) = %v, want %v", tt.in, got, tt.want)
			}
			if !tt.wantErr && got.Family() != tt.family {
				t.Errorf("Family() = %v, want %v", got.Family(), tt.family)
			}
		})
	}
}

func TestParseTechnique(t *testing.T) {
	tests := []struct {
		in      string
		want    Technique
		wantErr bool
	}{
		{"direct", TechniqueDirect, false},
		{"poolish", TechniquePreferment, false},
		{"biga", TechniquePreferment, false},
		{"Cold", TechniqueColdRetard, false},
		{"overnight-ish", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTechnique(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTechnique(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseTechnique(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseModeAndBakeType(t *testing.T) {
	if m, err := ParseCalculationMode(""); err != nil || m != ModeBasic {
		t.Errorf("ParseCalculationMode(\"\") = %v, %v, want basic", m, err)
	}
	if m, err := ParseCalculationMode("ADVANCED"); err != nil || m != ModeAdvanced {
		t.Errorf("ParseCalculationMode(ADVANCED) = %v, %v, want advanced", m, err)
	}
	if _, err := ParseCalculationMode("expert"); err == nil {
		t.Error("ParseCalculationMode(expert) expected error")
	}
	if b, err := ParseBakeType("loaf"); err != nil || b != BakeBread {
		t.Errorf("ParseBakeType(loaf) = %v, %v, want bread", b, err)
	}
	if _, err := ParseBakeType(""); err == nil {
		t.Error("ParseBakeType(\"\") expected error")
	}
}

func TestGetListsParse(t *testing.T) {
	for _, s := range GetStyles() {
		if got, err := ParseStyle(s); err != nil || string(got) != s {
			t.Errorf("ParseStyle(%q) = %v, %v", s, got, err)
		}
	}
	for _, s := range GetYeastTypes() {
		if got, err := ParseYeastType(s); err != nil || string(got) != s {
			t.Errorf("ParseYeastType(%q) = %v, %v", s, got, err)
		}
	}
	for _, s := range GetTechniques() {
		if got, err := ParseTechnique(s); err != nil || string(got) != s {
			t.Errorf("ParseTechnique(%q) = %v, %v", s, got, err)
		}
	}
}
