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

// Package invest derives the auto-investment amount from a purchase and its
// traffic-light color. The function is pure decimal arithmetic: round the
// purchase up to the next whole currency unit, then add a penalty fraction
// of the amount that grows with the decision severity.
package invest

import (
	"github.com/shopspring/decimal"

	"github.com/AvaY100/AI-Payment-Concierge/shared/types"
)

// Penalty fractions of the purchase amount added on top of the round-up.
var (
	greenRate = decimal.NewFromFloat(0.05)
	whiteRate = decimal.Zero
	redRate   = decimal.NewFromFloat(0.10)
)

// RoundUp returns ceil(amount) - amount: the spare change to the next whole
// currency unit. Always in [0, 1).
func RoundUp(amount decimal.Decimal) decimal.Decimal {
	return amount.Ceil().Sub(amount)
}

// Amount computes the invested amount for a purchase and color, rounded to
// currency precision (2 places, half away from zero). The result is
// non-negative and never exceeds amount * 1.10 plus the round-up bound.
func Amount(amount float64, color types.Color) float64 {
	a := decimal.NewFromFloat(amount)
	if a.IsNegative() {
		return 0
	}

	invested := RoundUp(a).Add(a.Mul(rate(color)))
	f, _ := invested.Round(2).Float64()
	return f
}

func rate(color types.Color) decimal.Decimal {
	switch color {
	case types.ColorGreen:
		return greenRate
	case types.ColorRed:
		return redRate
	default:
		return whiteRate
	}
}
