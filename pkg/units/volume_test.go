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

package units

import (
	"errors"
	"testing"

	dougherrors "github.com/doughlab/dough/pkg/errors"
)

func TestToVolume(t *testing.T) {
	d := DefaultDensities()

	tests := []struct {
		name  string
		grams float64
		class Class
		want  string
	}{
		{"salt teaspoons", 12, ClassSalt, "2 tsp"},
		{"instant yeast small", 1.6, ClassInstantYeast, "1/2 tsp"},
		{"oil tablespoons", 27, ClassOil, "2 tbsp"},
		{"sugar cups", 201.6, ClassSugar, "1 cup"},
		{"trace", 0.1, ClassSalt, "pinch"},
		{"fraction", 9, ClassSalt, "1 1/2 tsp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := d.ToVolume(tt.grams, tt.class)
			if err != nil {
				t.Fatalf("ToVolume() unexpected error: %v", err)
			}
			if got := v.String(); got != tt.want {
				t.Errorf("ToVolume(%v, %s) = %q, want %q", tt.grams, tt.class, got, tt.want)
			}
		})
	}
}

func TestToVolumeRefusesFlourAndWater(t *testing.T) {
	d := DefaultDensities()
	for _, c := range []Class{ClassFlour, ClassWater, ClassStarter, ClassFreshYeast} {
		_, err := d.ToVolume(100, c)
		if err == nil {
			t.Errorf("ToVolume(%s) expected error", c)
			continue
		}
		if !errors.Is(err, dougherrors.New(dougherrors.ErrCodeUnsupportedConversion, "")) {
			t.Errorf("ToVolume(%s) error = %v, want UNSUPPORTED_CONVERSION", c, err)
		}
		if d.HasDensity(c) {
			t.Errorf("HasDensity(%s) = true, want false", c)
		}
	}
}
