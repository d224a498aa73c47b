// Copyright 2025 AI Payment Concierge
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

package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus metrics
var (
	promAnalysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "concierge_analyses_total",
			Help: "Total number of purchase analyses by decision color",
		},
		[]string{"color"},
	)
	promAnalyzeFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "concierge_analyze_failures_total",
			Help: "Total number of failed purchase analyses by error kind",
		},
		[]string{"kind"},
	)
	promRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "concierge_request_duration_milliseconds",
			Help:    "Request duration in milliseconds",
			Buckets: []float64{10, 50, 100, 200, 500, 1000, 2000, 5000, 10000},
		},
		[]string{"path"},
	)
	promInvestedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "concierge_invested_dollars_total",
			Help: "Total auto-invested dollars across all analyses",
		},
	)
)

func init() {
	// Register Prometheus metrics
	prometheus.MustRegister(promAnalysesTotal)
	prometheus.MustRegister(promAnalyzeFailures)
	prometheus.MustRegister(promRequestDuration)
	prometheus.MustRegister(promInvestedTotal)
}
