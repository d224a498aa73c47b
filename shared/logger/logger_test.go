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

package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

// TestNew tests logger initialization
func TestNew(t *testing.T) {
	l := New("pipeline")

	if l.Component != "pipeline" {
		t.Errorf("Expected component pipeline, got %s", l.Component)
	}
	if l.Host == "" {
		t.Error("Expected host to be set from hostname")
	}
}

// TestLog_JSONShape verifies every entry is a single parseable JSON line
// carrying the required fields
func TestLog_JSONShape(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("store", &buf)

	l.Info("req-42", "profile loaded", map[string]interface{}{"path": "data/profile.json"})

	line := strings.TrimSpace(buf.String())
	var entry LogEntry
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("log line is not valid JSON: %v\n%s", err, line)
	}

	if entry.Level != INFO {
		t.Errorf("Expected level INFO, got %s", entry.Level)
	}
	if entry.Component != "store" {
		t.Errorf("Expected component store, got %s", entry.Component)
	}
	if entry.RequestID != "req-42" {
		t.Errorf("Expected request_id req-42, got %s", entry.RequestID)
	}
	if entry.Message != "profile loaded" {
		t.Errorf("Expected message 'profile loaded', got %q", entry.Message)
	}
	if entry.Fields["path"] != "data/profile.json" {
		t.Errorf("Expected path field, got %v", entry.Fields)
	}
	if entry.Timestamp == "" {
		t.Error("Expected timestamp to be set")
	}
}

// TestLevels exercises each level helper
func TestLevels(t *testing.T) {
	tests := []struct {
		name     string
		logFn    func(l *Logger)
		expected LogLevel
	}{
		{"debug", func(l *Logger) { l.Debug("", "m", nil) }, DEBUG},
		{"info", func(l *Logger) { l.Info("", "m", nil) }, INFO},
		{"warn", func(l *Logger) { l.Warn("", "m", nil) }, WARN},
		{"error", func(l *Logger) { l.Error("", "m", nil) }, ERROR},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := NewWithWriter("test", &buf)
			tt.logFn(l)

			var entry LogEntry
			if err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if entry.Level != tt.expected {
				t.Errorf("Expected level %s, got %s", tt.expected, entry.Level)
			}
		})
	}
}

// TestErrorWithErr verifies the error string is attached as a field
func TestErrorWithErr(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("server", &buf)

	l.ErrorWithErr("req-1", "analysis failed", errTest, nil)

	var entry LogEntry
	if err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if entry.Fields["error"] != "boom" {
		t.Errorf("Expected error field boom, got %v", entry.Fields["error"])
	}
}

// TestInfoWithDuration verifies duration_ms is attached
func TestInfoWithDuration(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("server", &buf)

	l.InfoWithDuration("req-1", "analyze complete", 12.5, nil)

	var entry LogEntry
	if err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if entry.Fields["duration_ms"] != 12.5 {
		t.Errorf("Expected duration_ms 12.5, got %v", entry.Fields["duration_ms"])
	}
}

type testError struct{}

func (testError) Error() string { return "boom" }

var errTest = testError{}
