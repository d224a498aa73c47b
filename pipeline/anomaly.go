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

package pipeline

import (
	"github.com/AvaY100/AI-Payment-Concierge/config"
	"github.com/AvaY100/AI-Payment-Concierge/shared/types"
)

// AnalyzeAnomaly flags a purchase whose amount significantly exceeds the
// category's historical baseline. With enough history the baseline is the
// category average; with sparse history the absolute thresholds from
// configuration apply instead.
func AnalyzeAnomaly(amount float64, category types.Category, history []types.Transaction, t config.ThresholdConfig) AnomalySignal {
	var sum float64
	var n int
	for _, txn := range history {
		if txn.Category == category {
			sum += txn.Amount
			n++
		}
	}

	sig := AnomalySignal{
		Magnitude:  AnomalyNone,
		SampleSize: n,
	}

	if n < t.MinHistorySamples {
		sig.SparseHistory = true
		switch {
		case amount >= t.SparseStrongAmount:
			sig.Magnitude = AnomalyStrong
		case amount >= t.SparseMildAmount:
			sig.Magnitude = AnomalyMild
		}
		return sig
	}

	avg := sum / float64(n)
	sig.CategoryAverage = avg
	if avg > 0 {
		sig.Multiple = amount / avg
	}

	switch {
	case sig.Multiple > t.AnomalyStrongMultiple:
		sig.Magnitude = AnomalyStrong
	case sig.Multiple > t.AnomalyMildMultiple:
		sig.Magnitude = AnomalyMild
	}
	return sig
}
