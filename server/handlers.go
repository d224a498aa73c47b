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
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/AvaY100/AI-Payment-Concierge/shared/types"
)

// AnalyzeRequest is the body of POST /api/analyze.
type AnalyzeRequest struct {
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
}

// AnalyzeResponse is the body of a successful analysis.
type AnalyzeResponse struct {
	Color          types.Color       `json:"color"`
	Explanation    string            `json:"explanation"`
	InvestedAmount float64           `json:"invested_amount"`
	Transaction    types.Transaction `json:"transaction"`
}

// CategorySummary is one row of the dashboard's per-category breakdown.
type CategorySummary struct {
	Spent float64 `json:"spent"`
	Limit float64 `json:"limit"`
	Ratio float64 `json:"ratio"`
}

// DashboardResponse is the body of GET /api/dashboard.
type DashboardResponse struct {
	Profile            types.UserProfile                  `json:"profile"`
	RecentTransactions []types.Transaction                `json:"recent_transactions"`
	Categories         map[types.Category]CategorySummary `json:"categories"`
	Totals             DashboardTotals                    `json:"totals"`
}

// DashboardTotals aggregates the transaction log.
type DashboardTotals struct {
	Transactions  int     `json:"transactions"`
	TotalSpent    float64 `json:"total_spent"`
	TotalInvested float64 `json:"total_invested"`
}

// recentTransactionsCap bounds the dashboard's transaction list.
const recentTransactionsCap = 20

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// statusForError maps the domain error kinds onto HTTP status codes.
func statusForError(err error) int {
	var vErr *types.ValidationError
	if errors.As(err, &vErr) {
		return http.StatusBadRequest
	}
	var extErr *types.ExternalServiceError
	if errors.As(err, &extErr) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func failureKind(err error) string {
	var vErr *types.ValidationError
	if errors.As(err, &vErr) {
		return "validation"
	}
	var extErr *types.ExternalServiceError
	if errors.As(err, &extErr) {
		return "external_service"
	}
	var sErr *types.StoreReadError
	if errors.As(err, &sErr) {
		return "store"
	}
	return "internal"
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	if !s.provider.IsConfigured() {
		status = "degraded"
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   status,
		"service":  "payment-concierge",
		"provider": s.provider.Name(),
	})
}

func (s *Server) analyzeHandler(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.runAnalysis(w, r, req)
}

// purchaseFormHandler accepts the purchase page's form post and runs the
// same analysis as the JSON endpoint.
func (s *Server) purchaseFormHandler(w http.ResponseWriter, r *http.Request) {
	amount, err := strconv.ParseFloat(r.FormValue("amount"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount")
		return
	}
	s.runAnalysis(w, r, AnalyzeRequest{Amount: amount, Category: r.FormValue("category")})
}

func (s *Server) runAnalysis(w http.ResponseWriter, r *http.Request, req AnalyzeRequest) {
	id := requestID(r)

	result, err := s.pipeline.Analyze(r.Context(), id, req.Amount, req.Category)
	if err != nil {
		promAnalyzeFailures.WithLabelValues(failureKind(err)).Inc()
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			s.log.ErrorWithErr(id, "analysis failed", err, nil)
			writeError(w, status, "analysis failed")
			return
		}
		writeError(w, status, err.Error())
		return
	}

	promAnalysesTotal.WithLabelValues(string(result.Decision.Color)).Inc()
	promInvestedTotal.Add(result.Transaction.Invested)

	writeJSON(w, http.StatusOK, AnalyzeResponse{
		Color:          result.Decision.Color,
		Explanation:    result.Decision.Explanation,
		InvestedAmount: result.Transaction.Invested,
		Transaction:    result.Transaction,
	})
}

func (s *Server) dashboardDataHandler(w http.ResponseWriter, r *http.Request) {
	data, err := s.dashboardData()
	if err != nil {
		s.log.ErrorWithErr(requestID(r), "dashboard aggregation failed", err, nil)
		writeError(w, http.StatusInternalServerError, "dashboard unavailable")
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// dashboardData aggregates the stores into the dashboard view model. Pure
// read: calling it twice without new transactions yields identical output.
func (s *Server) dashboardData() (*DashboardResponse, error) {
	txns, err := s.txns.Load()
	if err != nil {
		return nil, err
	}

	recent := make([]types.Transaction, 0, recentTransactionsCap)
	for i := len(txns) - 1; i >= 0 && len(recent) < recentTransactionsCap; i-- {
		recent = append(recent, txns[i])
	}

	spent := decimal.Zero
	invested := decimal.Zero
	for _, txn := range txns {
		spent = spent.Add(decimal.NewFromFloat(txn.Amount))
		invested = invested.Add(decimal.NewFromFloat(txn.Invested))
	}
	totalSpent, _ := spent.Round(2).Float64()
	totalInvested, _ := invested.Round(2).Float64()

	categories := make(map[types.Category]CategorySummary)
	for category, entry := range s.budget.Load() {
		summary := CategorySummary{Spent: entry.Spent, Limit: entry.Limit}
		if entry.Limit > 0 {
			summary.Ratio, _ = decimal.NewFromFloat(entry.Spent).
				Div(decimal.NewFromFloat(entry.Limit)).
				Round(4).
				Float64()
		}
		categories[category] = summary
	}

	return &DashboardResponse{
		Profile:            s.profiles.Load(),
		RecentTransactions: recent,
		Categories:         categories,
		Totals: DashboardTotals{
			Transactions:  len(txns),
			TotalSpent:    totalSpent,
			TotalInvested: totalInvested,
		},
	}, nil
}

func (s *Server) profileHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		var profile types.UserProfile
		if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := profile.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := s.profiles.Save(profile); err != nil {
			s.log.ErrorWithErr(requestID(r), "profile save failed", err, nil)
			writeError(w, http.StatusInternalServerError, "failed to save profile")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "profile": profile})
		return
	}

	writeJSON(w, http.StatusOK, s.profiles.Load())
}
