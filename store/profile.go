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

	"github.com/AvaY100/AI-Payment-Concierge/shared/logger"
	"github.com/AvaY100/AI-Payment-Concierge/shared/types"
)

// ProfileStore persists the singleton user profile. A missing or unreadable
// document never fails a request: Load falls back to the documented defaults.
type ProfileStore struct {
	path string
	mu   sync.Mutex
	log  *logger.Logger
}

// NewProfileStore creates a ProfileStore backed by the given file path.
func NewProfileStore(path string) *ProfileStore {
	return &ProfileStore{
		path: path,
		log:  logger.New("store"),
	}
}

// Load returns the persisted profile, or the default profile when the file
// is absent or corrupt. Corruption is logged and recovered, not surfaced.
func (s *ProfileStore) Load() types.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	var p types.UserProfile
	if err := readJSON(s.path, &p); err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("", "profile unreadable, using defaults", map[string]interface{}{
				"path":  s.path,
				"error": err.Error(),
			})
		}
		return types.DefaultProfile()
	}
	return p
}

// Save atomically overwrites the persisted profile.
func (s *ProfileStore) Save(p types.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSONAtomic(s.path, p)
}
