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
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AvaY100/AI-Payment-Concierge/config"
	"github.com/AvaY100/AI-Payment-Concierge/llm"
	"github.com/AvaY100/AI-Payment-Concierge/shared/types"
	"github.com/AvaY100/AI-Payment-Concierge/store"
)

type fixture struct {
	pipeline *Pipeline
	profiles *store.ProfileStore
	txns     *store.TransactionStore
	budget   *store.BudgetStore
	stub     *llm.StubProvider
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Default()
	limits := make(map[types.Category]float64, len(cfg.Budgets))
	for name, limit := range cfg.Budgets {
		limits[types.Category(name)] = limit
	}

	profiles := store.NewProfileStore(filepath.Join(dir, "profile.json"))
	txns := store.NewTransactionStore(filepath.Join(dir, "transactions.json"))
	budget := store.NewBudgetStore(filepath.Join(dir, "budget.json"), limits)
	stub := &llm.StubProvider{Response: "Your budget has room and this fits your habits."}

	return &fixture{
		pipeline: New(profiles, txns, budget, stub, cfg),
		profiles: profiles,
		txns:     txns,
		budget:   budget,
		stub:     stub,
	}
}

// saveOnTrackProfile persists a profile whose longevity signal is nominal.
func (f *fixture) saveOnTrackProfile(t *testing.T) {
	t.Helper()
	require.NoError(t, f.profiles.Save(types.UserProfile{
		MonthlyIncome: 9000, MonthlyExpenses: 4000, CurrentSavings: 100000,
		CurrentAge: 30, RetirementAge: 65, TargetSavings: 1000000,
	}))
}

func TestAnalyze_GreenPath(t *testing.T) {
	f := newFixture(t)
	f.saveOnTrackProfile(t)

	res, err := f.pipeline.Analyze(context.Background(), "req-1", 19.30, "Food")

	require.NoError(t, err)
	assert.Equal(t, types.ColorGreen, res.Decision.Color)
	assert.Equal(t, 1.67, res.Transaction.Invested)
	assert.Equal(t, types.CategoryFood, res.Transaction.Category)
	assert.NotEmpty(t, res.Transaction.ID)
	assert.Equal(t, "Your budget has room and this fits your habits.", res.Decision.Explanation)
	assert.Equal(t, 1, f.stub.Calls)

	// Transaction committed and budget updated
	txns, err := f.txns.Load()
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, res.Transaction.ID, txns[0].ID)
	assert.Equal(t, 19.30, f.budget.Load()[types.CategoryFood].Spent)
}

func TestAnalyze_OverBudgetIsRed(t *testing.T) {
	f := newFixture(t)
	f.saveOnTrackProfile(t)
	// Food already at 95% of its 6000 yearly limit
	require.NoError(t, f.budget.Add(types.CategoryFood, 5700))

	res, err := f.pipeline.Analyze(context.Background(), "req-1", 500, "food")

	require.NoError(t, err)
	assert.Equal(t, types.ColorRed, res.Decision.Color)
	assert.Equal(t, BudgetOverLimit, res.Signals.Budget.Status)
	assert.Equal(t, 50.00, res.Transaction.Invested)
}

func TestAnalyze_UnknownCategoryFailsWithoutPersisting(t *testing.T) {
	f := newFixture(t)

	_, err := f.pipeline.Analyze(context.Background(), "req-1", 25, "Groceries")

	var vErr *types.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "category", vErr.Field)
	assert.Equal(t, 0, f.stub.Calls)

	txns, loadErr := f.txns.Load()
	require.NoError(t, loadErr)
	assert.Empty(t, txns)
}

func TestAnalyze_InvalidAmount(t *testing.T) {
	f := newFixture(t)

	for _, amount := range []float64{0, -10} {
		_, err := f.pipeline.Analyze(context.Background(), "req-1", amount, "food")

		var vErr *types.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "amount", vErr.Field)
	}
}

func TestAnalyze_GeneratorFailureFailsRequest(t *testing.T) {
	f := newFixture(t)
	f.saveOnTrackProfile(t)
	f.stub.Err = errors.New("provider down")

	_, err := f.pipeline.Analyze(context.Background(), "req-1", 19.30, "food")

	var extErr *types.ExternalServiceError
	require.ErrorAs(t, err, &extErr)

	// The color is never guessed and nothing is persisted
	txns, loadErr := f.txns.Load()
	require.NoError(t, loadErr)
	assert.Empty(t, txns)
	assert.Equal(t, 0.0, f.budget.Load()[types.CategoryFood].Spent)
}

func TestAnalyze_CategoryCaseInsensitive(t *testing.T) {
	f := newFixture(t)
	f.saveOnTrackProfile(t)

	res, err := f.pipeline.Analyze(context.Background(), "req-1", 12, "  BILLS ")

	require.NoError(t, err)
	assert.Equal(t, types.CategoryBills, res.Transaction.Category)
}

func TestAnalyze_HistoryDrivesAnomaly(t *testing.T) {
	f := newFixture(t)
	f.saveOnTrackProfile(t)

	// Build up a baseline of ~25 per food purchase
	for _, amount := range []float64{20, 25, 30} {
		_, err := f.pipeline.Analyze(context.Background(), "req-1", amount, "food")
		require.NoError(t, err)
	}

	// 80 is over 3x the 25 average: strong anomaly, red decision
	res, err := f.pipeline.Analyze(context.Background(), "req-2", 80, "food")

	require.NoError(t, err)
	assert.Equal(t, AnomalyStrong, res.Signals.Anomaly.Magnitude)
	assert.Equal(t, types.ColorRed, res.Decision.Color)
}

func TestBuildExplanationPrompt_CarriesSignals(t *testing.T) {
	s := nominal()
	s.Budget = BudgetSignal{Status: BudgetNearLimit, Spent: 4700, Limit: 6000, Ratio: 0.8167}

	prompt := buildExplanationPrompt(200, types.CategoryFood, s, types.ColorWhite)

	assert.Contains(t, prompt, "$200.00")
	assert.Contains(t, prompt, "food")
	assert.Contains(t, prompt, "WHITE")
	assert.Contains(t, prompt, "near_limit")
	assert.Contains(t, prompt, "82%")
}
