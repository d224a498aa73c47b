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

package invest

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/AvaY100/AI-Payment-Concierge/shared/types"
)

func TestRoundUp(t *testing.T) {
	tests := []struct {
		amount   string
		expected string
	}{
		{"19.30", "0.70"},
		{"500.00", "0"},
		{"0", "0"},
		{"0.01", "0.99"},
		{"7.999", "0.001"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			a := decimal.RequireFromString(tt.amount)
			ru := RoundUp(a)
			assert.True(t, ru.Equal(decimal.RequireFromString(tt.expected)),
				"RoundUp(%s) = %s, want %s", tt.amount, ru, tt.expected)
		})
	}
}

// RoundUp is always in [0, 1) over an amount sweep
func TestRoundUp_Bounds(t *testing.T) {
	one := decimal.NewFromInt(1)
	for _, amount := range []float64{0, 0.003, 0.5, 1, 1.01, 19.30, 99.99, 100, 12345.678} {
		ru := RoundUp(decimal.NewFromFloat(amount))
		assert.False(t, ru.IsNegative(), "RoundUp(%v) negative", amount)
		assert.True(t, ru.LessThan(one), "RoundUp(%v) = %s not < 1", amount, ru)
	}
}

func TestAmount_WorkedExamples(t *testing.T) {
	// $19.30 Green: round-up 0.70 + 5% * 19.30 = 1.665 -> 1.67
	assert.Equal(t, 1.67, Amount(19.30, types.ColorGreen))

	// $500.00 Red: round-up 0 + 10% * 500 = 50.00
	assert.Equal(t, 50.00, Amount(500.00, types.ColorRed))

	// White is round-up only
	assert.Equal(t, 0.70, Amount(19.30, types.ColorWhite))
	assert.Equal(t, 0.00, Amount(500.00, types.ColorWhite))
}

// Invested amount is monotonically non-decreasing in severity
func TestAmount_MonotoneInSeverity(t *testing.T) {
	for _, amount := range []float64{0, 0.50, 1, 19.30, 100, 499.99, 500, 1234.56} {
		green := Amount(amount, types.ColorGreen)
		white := Amount(amount, types.ColorWhite)
		red := Amount(amount, types.ColorRed)

		assert.GreaterOrEqual(t, red, white, "amount %v: red < white", amount)
		assert.GreaterOrEqual(t, green, white, "amount %v: green < white", amount)
		assert.GreaterOrEqual(t, red, green, "amount %v: red < green", amount)
	}
}

// Invested stays within [0, amount*1.10 + 1)
func TestAmount_Bounds(t *testing.T) {
	for _, amount := range []float64{0, 0.01, 19.30, 500, 10000} {
		for _, color := range []types.Color{types.ColorGreen, types.ColorWhite, types.ColorRed} {
			invested := Amount(amount, color)
			assert.GreaterOrEqual(t, invested, 0.0)
			assert.Less(t, invested, amount*1.10+1)
		}
	}
}

func TestAmount_NegativeAmountIsZero(t *testing.T) {
	assert.Equal(t, 0.0, Amount(-5, types.ColorRed))
}
