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
	"github.com/shopspring/decimal"

	"github.com/AvaY100/AI-Payment-Concierge/config"
	"github.com/AvaY100/AI-Payment-Concierge/shared/types"
)

// AnalyzeBudget classifies (spent + amount) / yearly limit for the purchase
// category. Pure function: the budget store is only mutated after the
// decision is finalized and the transaction committed.
func AnalyzeBudget(category types.Category, amount float64, entries map[types.Category]types.BudgetEntry, t config.ThresholdConfig) BudgetSignal {
	entry := entries[category]

	sig := BudgetSignal{
		Spent: entry.Spent,
		Limit: entry.Limit,
	}

	if entry.Limit <= 0 {
		// No ceiling configured for the category: nothing to exceed.
		sig.Status = BudgetWithinLimit
		return sig
	}

	ratio, _ := decimal.NewFromFloat(entry.Spent).
		Add(decimal.NewFromFloat(amount)).
		Div(decimal.NewFromFloat(entry.Limit)).
		Float64()
	sig.Ratio = ratio
	sig.WouldExceed = ratio >= t.BudgetOver

	switch {
	case ratio >= t.BudgetOver:
		sig.Status = BudgetOverLimit
	case ratio >= t.BudgetNear:
		sig.Status = BudgetNearLimit
	default:
		sig.Status = BudgetWithinLimit
	}
	return sig
}
