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

// Package units converts dough masses between metric and imperial units.
//
// Grams are the canonical representation. Every engine computation happens
// in grams and is converted to the requested unit only when the result is
// assembled.
//
//	g, err := units.ToCanonical(2.2, units.Pound)
//	oz, err := units.FromCanonical(g, units.Ounce)
//
// Each unit has a reporting grid (Step) used by the rounding policy: whole
// grams, 0.001 kg, 0.1 oz and 0.01 lb.
//
// Volume is offered for display only, and only for ingredient classes with a
// documented density constant (salt, sugar, oil, dry yeasts). Flour and
// water are never converted to volume because their density varies too much
// to be meaningful.
//
// Unknown units fail with an UNSUPPORTED_UNIT structured error. Callers must
// not substitute a default.
package units
