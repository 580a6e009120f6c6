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
	"sort"

	"github.com/shopspring/decimal"
)

// allocate rounds values to places decimal digits so that they sum to target
// rounded half-up to the same grid. Each value is truncated, then the
// residual grid units go to the largest truncated remainders, ties broken
// by position.
func allocate(values []float64, target float64, places int32) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	if len(values) == 0 {
		return out
	}

	rems := make([]decimal.Decimal, len(values))
	sum := decimal.Zero
	for i, v := range values {
		scaled := decimal.NewFromFloat(v).Shift(places)
		out[i] = scaled.Floor()
		rems[i] = scaled.Sub(out[i])
		sum = sum.Add(out[i])
	}

	want := decimal.NewFromFloat(target).Shift(places).Round(0)
	residual := want.Sub(sum).IntPart()

	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}

	one := decimal.NewFromInt(1)
	switch {
	case residual > 0:
		sort.SliceStable(order, func(a, b int) bool {
			return rems[order[a]].GreaterThan(rems[order[b]])
		})
		for k := int64(0); k < residual; k++ {
			i := order[k%int64(len(order))]
			out[i] = out[i].Add(one)
		}
	case residual < 0:
		sort.SliceStable(order, func(a, b int) bool {
			return rems[order[a]].LessThan(rems[order[b]])
		})
		for k, taken := int64(0), int64(0); taken < -residual && k < int64(len(order))*(-residual+1); k++ {
			i := order[k%int64(len(order))]
			if out[i].IsPositive() {
				out[i] = out[i].Sub(one)
				taken++
			}
		}
	}

	for i := range out {
		out[i] = out[i].Shift(-places)
	}
	return out
}

// sumDecimals adds vs exactly.
func sumDecimals(vs []decimal.Decimal) decimal.Decimal {
	return decimal.Sum(decimal.Zero, vs...)
}
