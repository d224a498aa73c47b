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

	"github.com/AvaY100/AI-Payment-Concierge/shared/types"
)

// TransactionStore persists the ordered purchase log. Records are immutable
// and append-only. Unlike the profile and budget stores, a corrupt log is a
// loud failure: it is the audit trail, and silently resetting it would erase
// financial history.
type TransactionStore struct {
	path string
	mu   sync.Mutex
}

// NewTransactionStore creates a TransactionStore backed by the given file path.
func NewTransactionStore(path string) *TransactionStore {
	return &TransactionStore{path: path}
}

// Load returns all transactions in insertion order. An absent file is an
// empty log; an unreadable file is a StoreReadError.
func (s *TransactionStore) Load() ([]types.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *TransactionStore) loadLocked() ([]types.Transaction, error) {
	var txns []types.Transaction
	if err := readJSON(s.path, &txns); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &types.StoreReadError{Path: s.path, Err: err}
	}
	return txns, nil
}

// Append adds one transaction preserving insertion order and atomically
// rewrites the log.
func (s *TransactionStore) Append(txn types.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	txns, err := s.loadLocked()
	if err != nil {
		return err
	}
	txns = append(txns, txn)
	return writeJSONAtomic(s.path, txns)
}
