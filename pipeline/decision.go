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
	"fmt"
	"strings"

	"github.com/AvaY100/AI-Payment-Concierge/llm"
	"github.com/AvaY100/AI-Payment-Concierge/shared/types"
)

// AggregateColor applies the deterministic worst-signal-wins rule. Red
// dominates White dominates Green; generated text never influences the
// result, which keeps the color reproducible and testable offline.
func AggregateColor(s Signals) types.Color {
	if s.Longevity.Status == LongevityRisky ||
		s.Budget.Status == BudgetOverLimit ||
		s.Anomaly.Magnitude == AnomalyStrong {
		return types.ColorRed
	}
	if s.Longevity.Status == LongevityBorderline ||
		s.Budget.Status == BudgetNearLimit ||
		s.Anomaly.Magnitude == AnomalyMild {
		return types.ColorWhite
	}
	return types.ColorGreen
}

const explanationSystemPrompt = `You are a personal finance assistant. You are given a purchase, ` +
	`three analyzer signals, and the final traffic-light decision. Write a short explanation ` +
	`(2-3 sentences) for the user synthesizing which signals drove the decision. ` +
	`Do not change or question the decision. Do not mention the analyzers by name.`

// buildExplanationPrompt serializes the purchase, signals, and decided color
// for the generative call.
func buildExplanationPrompt(amount float64, category types.Category, s Signals, color types.Color) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Purchase: $%.2f in category %s\n", amount, category)
	fmt.Fprintf(&b, "Decision: %s\n\n", strings.ToUpper(string(color)))
	fmt.Fprintf(&b, "Retirement trajectory: %s (monthly net $%.2f, projected $%.2f at retirement, shortfall %.0f%% of target)\n",
		s.Longevity.Status, s.Longevity.MonthlyNet, s.Longevity.ProjectedSavings, s.Longevity.ShortfallFraction*100)
	fmt.Fprintf(&b, "Yearly budget: %s ($%.2f spent of $%.2f limit, this purchase brings usage to %.0f%%)\n",
		s.Budget.Status, s.Budget.Spent, s.Budget.Limit, s.Budget.Ratio*100)
	if s.Anomaly.SparseHistory {
		fmt.Fprintf(&b, "Spending pattern: %s anomaly (only %d prior purchases in this category)\n",
			s.Anomaly.Magnitude, s.Anomaly.SampleSize)
	} else {
		fmt.Fprintf(&b, "Spending pattern: %s anomaly (%.1fx the category average of $%.2f)\n",
			s.Anomaly.Magnitude, s.Anomaly.Multiple, s.Anomaly.CategoryAverage)
	}
	b.WriteString("\nExplain this decision to the user.")
	return b.String()
}

// explain runs the single generative call with bounded retries. A failure
// after retries is an ExternalServiceError: the analysis fails rather than
// shipping a color with a guessed rationale.
func (p *Pipeline) explain(ctx context.Context, amount float64, category types.Category, s Signals, color types.Color) (string, error) {
	req := llm.CompletionRequest{
		Prompt:       buildExplanationPrompt(amount, category, s, color),
		SystemPrompt: explanationSystemPrompt,
		MaxTokens:    p.llmCfg.MaxTokens,
		Temperature:  p.llmCfg.Temperature,
		Model:        p.llmCfg.Model,
	}

	retry := llm.DefaultRetryConfig()
	retry.MaxRetries = p.llmCfg.MaxRetries

	callCtx := ctx
	if p.llmCfg.Timeout() > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, p.llmCfg.Timeout())
		defer cancel()
	}

	resp, err := llm.CompleteWithRetry(callCtx, p.provider, req, retry)
	if err != nil {
		return "", &types.ExternalServiceError{Provider: p.provider.Name(), Err: err}
	}

	explanation := strings.TrimSpace(resp.Content)
	if explanation == "" {
		return "", &types.ExternalServiceError{Provider: p.provider.Name(), Err: fmt.Errorf("empty explanation")}
	}
	return explanation, nil
}
