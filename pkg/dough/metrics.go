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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	calculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dough_calculations_total",
			Help: "Total number of dough calculations by outcome (ok, invalid, error)",
		},
		[]string{"outcome"},
	)
	calculationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dough_calculation_duration_seconds",
			Help:    "Duration of dough calculations in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
		},
	)
	warningsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dough_warnings_total",
			Help: "Total number of advisory warnings returned, by code",
		},
		[]string{"code"},
	)

	// Response cache
	resultCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dough_result_cache_hits_total",
			Help: "Total number of calculation responses served from cache",
		},
	)
	resultCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dough_result_cache_misses_total",
			Help: "Total number of calculation responses computed",
		},
	)
)

func observe(res *Result, err error) {
	switch {
	case err != nil:
		calculationsTotal.WithLabelValues("error").Inc()
		return
	case !res.Valid():
		calculationsTotal.WithLabelValues("invalid").Inc()
	default:
		calculationsTotal.WithLabelValues("ok").Inc()
	}
	for _, w := range res.Warnings {
		warningsTotal.WithLabelValues(string(w.Code)).Inc()
	}
}
