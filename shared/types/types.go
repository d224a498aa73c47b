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

// Package types defines the domain model shared across the concierge:
// purchase categories, traffic-light decisions, transactions, the user
// profile, and the error kinds handlers map to HTTP status codes.
package types

import (
	"fmt"
	"strings"
	"time"
)

// Category is a purchase category. The set is closed: unknown values are a
// validation error, never silently bucketed into CategoryOther.
type Category string

const (
	CategoryFood           Category = "food"
	CategoryTransportation Category = "transportation"
	CategoryEntertainment  Category = "entertainment"
	CategoryShopping       Category = "shopping"
	CategoryBills          Category = "bills"
	CategoryOther          Category = "other"
)

// Categories lists all valid purchase categories in display order.
func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryTransportation,
		CategoryEntertainment,
		CategoryShopping,
		CategoryBills,
		CategoryOther,
	}
}

// ParseCategory parses a category name case-insensitively.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories() {
		if c == known {
			return c, nil
		}
	}
	return "", &ValidationError{Field: "category", Reason: fmt.Sprintf("unknown category %q", s)}
}

// Color is the traffic-light decision signal shown to the user.
type Color string

const (
	// ColorGreen encourages the purchase.
	ColorGreen Color = "green"
	// ColorWhite is neutral.
	ColorWhite Color = "white"
	// ColorRed discourages the purchase.
	ColorRed Color = "red"
)

// Severity orders colors for worst-signal-wins aggregation: Red dominates
// White dominates Green.
func (c Color) Severity() int {
	switch c {
	case ColorRed:
		return 2
	case ColorWhite:
		return 1
	default:
		return 0
	}
}

// Decision is the per-request outcome of the analysis pipeline. It is
// ephemeral; it persists only as fields of a Transaction.
type Decision struct {
	Color       Color  `json:"color"`
	Explanation string `json:"explanation"`
}

// Transaction is one analyzed purchase. Immutable once created; appended to
// an ordered log and never updated or removed.
type Transaction struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Amount      float64   `json:"amount"`
	Category    Category  `json:"category"`
	Color       Color     `json:"color"`
	Explanation string    `json:"explanation"`
	Invested    float64   `json:"invested_amount"`
}

// UserProfile is the singleton financial profile driving the longevity
// analysis. Created with defaults on first run; mutated only via explicit
// update.
type UserProfile struct {
	MonthlyIncome   float64 `json:"monthly_income"`
	CurrentSavings  float64 `json:"current_savings"`
	MonthlyExpenses float64 `json:"monthly_expenses"`
	RetirementAge   int     `json:"retirement_age"`
	CurrentAge      int     `json:"current_age"`
	TargetSavings   float64 `json:"target_savings"`
}

// DefaultProfile returns the documented fallback profile used when no
// persisted profile exists or the stored document is unreadable.
func DefaultProfile() UserProfile {
	return UserProfile{
		MonthlyIncome:   5000,
		CurrentSavings:  10000,
		MonthlyExpenses: 3000,
		RetirementAge:   65,
		CurrentAge:      30,
		TargetSavings:   1000000,
	}
}

// Validate checks profile figures before an explicit update is accepted.
func (p UserProfile) Validate() error {
	if p.MonthlyIncome < 0 {
		return &ValidationError{Field: "monthly_income", Reason: "must be non-negative"}
	}
	if p.CurrentSavings < 0 {
		return &ValidationError{Field: "current_savings", Reason: "must be non-negative"}
	}
	if p.MonthlyExpenses < 0 {
		return &ValidationError{Field: "monthly_expenses", Reason: "must be non-negative"}
	}
	if p.TargetSavings <= 0 {
		return &ValidationError{Field: "target_savings", Reason: "must be positive"}
	}
	if p.CurrentAge <= 0 || p.CurrentAge > 120 {
		return &ValidationError{Field: "current_age", Reason: "must be between 1 and 120"}
	}
	if p.RetirementAge < p.CurrentAge {
		return &ValidationError{Field: "retirement_age", Reason: "must not precede current age"}
	}
	return nil
}

// BudgetEntry tracks yearly spending against a configured ceiling for one
// category. Spent is monotonically increasing within a calendar year.
type BudgetEntry struct {
	Spent float64 `json:"spent"`
	Limit float64 `json:"limit"`
}
