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

package store

import (
	"os"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AvaY100/AI-Payment-Concierge/shared/logger"
	"github.com/AvaY100/AI-Payment-Concierge/shared/types"
)

// budgetDocument is the persisted shape: spent totals are tagged with the
// calendar year they accumulated in.
type budgetDocument struct {
	Year       int                                  `json:"year"`
	Categories map[types.Category]types.BudgetEntry `json:"categories"`
}

// BudgetStore tracks per-category yearly spending against configured limits.
// Spent totals reset at the calendar-year boundary and are otherwise
// monotonically increasing. Missing or corrupt state falls back to a fresh
// document built from the configured limits.
type BudgetStore struct {
	path   string
	limits map[types.Category]float64
	mu     sync.Mutex
	log    *logger.Logger

	// now is injectable for calendar-boundary tests.
	now func() time.Time
}

// NewBudgetStore creates a BudgetStore backed by the given file path with
// the configured yearly limits per category.
func NewBudgetStore(path string, limits map[types.Category]float64) *BudgetStore {
	return &BudgetStore{
		path:   path,
		limits: limits,
		log:    logger.New("store"),
		now:    time.Now,
	}
}

// Load returns the current-year budget entries for every category, creating
// defaults when no usable document exists and zeroing spent totals when the
// persisted document belongs to an earlier year.
func (s *BudgetStore) Load() map[types.Category]types.BudgetEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *BudgetStore) loadLocked() map[types.Category]types.BudgetEntry {
	year := s.now().UTC().Year()

	var doc budgetDocument
	if err := readJSON(s.path, &doc); err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("", "budget unreadable, rebuilding from limits", map[string]interface{}{
				"path":  s.path,
				"error": err.Error(),
			})
		}
		return s.fresh()
	}

	if doc.Year != year || doc.Categories == nil {
		// Calendar-year boundary crossed: spent totals start over.
		return s.fresh()
	}

	// Limits come from configuration, not from the stored document, so a
	// config change takes effect without editing state on disk.
	entries := make(map[types.Category]types.BudgetEntry, len(s.limits))
	for _, c := range types.Categories() {
		entries[c] = types.BudgetEntry{
			Spent: doc.Categories[c].Spent,
			Limit: s.limits[c],
		}
	}
	return entries
}

func (s *BudgetStore) fresh() map[types.Category]types.BudgetEntry {
	entries := make(map[types.Category]types.BudgetEntry, len(s.limits))
	for _, c := range types.Categories() {
		entries[c] = types.BudgetEntry{Limit: s.limits[c]}
	}
	return entries
}

// Add records a committed transaction amount against its category's spent
// total and atomically rewrites the document.
func (s *BudgetStore) Add(category types.Category, amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.loadLocked()
	entry := entries[category]
	entry.Spent, _ = decimal.NewFromFloat(entry.Spent).
		Add(decimal.NewFromFloat(amount)).
		Round(2).
		Float64()
	entries[category] = entry

	doc := budgetDocument{
		Year:       s.now().UTC().Year(),
		Categories: entries,
	}
	return writeJSONAtomic(s.path, doc)
}
