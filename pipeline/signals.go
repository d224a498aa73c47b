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

// Package pipeline runs the purchase analysis: three deterministic analyzers
// (longevity, budget, anomaly) evaluated in sequence, a rule-based color
// aggregation, and one generative call that only explains the already-decided
// color. No state persists across requests; each purchase is evaluated
// against the stores' state at the time of the call.
package pipeline

// LongevityStatus classifies the retirement savings trajectory.
type LongevityStatus string

const (
	LongevityOnTrack    LongevityStatus = "on_track"
	LongevityBorderline LongevityStatus = "borderline"
	LongevityRisky      LongevityStatus = "risky"
)

// LongevitySignal is the longevity analyzer's output: a qualitative status
// plus the figures that produced it, carried into the explanation prompt.
type LongevitySignal struct {
	Status            LongevityStatus `json:"status"`
	MonthlyNet        float64         `json:"monthly_net"`
	YearsToRetirement int             `json:"years_to_retirement"`
	ProjectedSavings  float64         `json:"projected_savings"`
	ShortfallFraction float64         `json:"shortfall_fraction"`
}

// BudgetStatus classifies a purchase against the category's yearly limit.
type BudgetStatus string

const (
	BudgetWithinLimit BudgetStatus = "within_limit"
	BudgetNearLimit   BudgetStatus = "near_limit"
	BudgetOverLimit   BudgetStatus = "over_limit"
)

// BudgetSignal is the budget analyzer's output.
type BudgetSignal struct {
	Status      BudgetStatus `json:"status"`
	Spent       float64      `json:"spent"`
	Limit       float64      `json:"limit"`
	Ratio       float64      `json:"ratio"` // (spent + amount) / limit
	WouldExceed bool         `json:"would_exceed"`
}

// AnomalyMagnitude describes how unusual the purchase amount is.
type AnomalyMagnitude string

const (
	AnomalyNone   AnomalyMagnitude = "none"
	AnomalyMild   AnomalyMagnitude = "mild"
	AnomalyStrong AnomalyMagnitude = "strong"
)

// AnomalySignal is the anomaly analyzer's output.
type AnomalySignal struct {
	Magnitude       AnomalyMagnitude `json:"magnitude"`
	CategoryAverage float64          `json:"category_average"`
	Multiple        float64          `json:"multiple"` // amount / category average
	SampleSize      int              `json:"sample_size"`
	SparseHistory   bool             `json:"sparse_history"`
}

// Signals bundles the three analyzer outputs handed to the decision stage.
type Signals struct {
	Longevity LongevitySignal `json:"longevity"`
	Budget    BudgetSignal    `json:"budget"`
	Anomaly   AnomalySignal   `json:"anomaly"`
}
