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
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/AvaY100/AI-Payment-Concierge/config"
	"github.com/AvaY100/AI-Payment-Concierge/invest"
	"github.com/AvaY100/AI-Payment-Concierge/llm"
	"github.com/AvaY100/AI-Payment-Concierge/shared/logger"
	"github.com/AvaY100/AI-Payment-Concierge/shared/types"
	"github.com/AvaY100/AI-Payment-Concierge/store"
)

// Pipeline wires the three stores and the explanation provider into the
// fixed analysis sequence. It holds no per-request state.
type Pipeline struct {
	profiles   *store.ProfileStore
	txns       *store.TransactionStore
	budget     *store.BudgetStore
	provider   llm.Provider
	thresholds config.ThresholdConfig
	llmCfg     config.LLMConfig
	log        *logger.Logger

	// now is injectable for tests.
	now func() time.Time
}

// New assembles a Pipeline from its collaborators. The provider is injected
// so tests can run the full flow against a stub generator.
func New(profiles *store.ProfileStore, txns *store.TransactionStore, budget *store.BudgetStore, provider llm.Provider, cfg *config.Config) *Pipeline {
	return &Pipeline{
		profiles:   profiles,
		txns:       txns,
		budget:     budget,
		provider:   provider,
		thresholds: cfg.Thresholds,
		llmCfg:     cfg.LLM,
		log:        logger.New("pipeline"),
		now:        time.Now,
	}
}

// Result is the outcome of one purchase analysis.
type Result struct {
	Decision    types.Decision    `json:"decision"`
	Transaction types.Transaction `json:"transaction"`
	Signals     Signals           `json:"signals"`
}

// Analyze validates and evaluates one purchase, commits the transaction,
// and updates the budget. Nothing is persisted when any stage fails.
func (p *Pipeline) Analyze(ctx context.Context, requestID string, amount float64, category string) (*Result, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return nil, &types.ValidationError{Field: "amount", Reason: "must be a positive number"}
	}

	cat, err := types.ParseCategory(category)
	if err != nil {
		return nil, err
	}

	// Profile and budget recover from unreadable state with defaults; the
	// transaction log does not, it is the audit trail.
	profile := p.profiles.Load()
	entries := p.budget.Load()
	history, err := p.txns.Load()
	if err != nil {
		return nil, err
	}

	signals := Signals{
		Longevity: AnalyzeLongevity(profile, p.thresholds),
		Budget:    AnalyzeBudget(cat, amount, entries, p.thresholds),
		Anomaly:   AnalyzeAnomaly(amount, cat, history, p.thresholds),
	}

	color := AggregateColor(signals)

	explanation, err := p.explain(ctx, amount, cat, signals, color)
	if err != nil {
		p.log.ErrorWithErr(requestID, "explanation generation failed", err, map[string]interface{}{
			"category": cat,
			"color":    color,
		})
		return nil, err
	}

	txn := types.Transaction{
		ID:          uuid.NewString(),
		Timestamp:   p.now().UTC(),
		Amount:      amount,
		Category:    cat,
		Color:       color,
		Explanation: explanation,
		Invested:    invest.Amount(amount, color),
	}

	if err := p.txns.Append(txn); err != nil {
		return nil, err
	}
	if err := p.budget.Add(cat, amount); err != nil {
		return nil, err
	}

	p.log.Info(requestID, "purchase analyzed", map[string]interface{}{
		"transaction_id": txn.ID,
		"category":       cat,
		"amount":         amount,
		"color":          color,
		"invested":       txn.Invested,
	})

	return &Result{
		Decision:    types.Decision{Color: color, Explanation: explanation},
		Transaction: txn,
		Signals:     signals,
	}, nil
}
