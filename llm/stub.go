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

package llm

import (
	"context"
	"time"
)

// StubProvider is a deterministic in-process provider. Tests inject it so
// the color decision can be exercised without the external service, and the
// server falls back to it when no API key is configured.
type StubProvider struct {
	// Response is returned verbatim when Err is nil.
	Response string

	// Err, when set, is returned from every Complete call.
	Err error

	// Calls counts Complete invocations.
	Calls int
}

// Name returns the provider name.
func (s *StubProvider) Name() string { return "stub" }

// Type returns ProviderTypeStub.
func (s *StubProvider) Type() ProviderType { return ProviderTypeStub }

// IsConfigured always reports true; the stub needs no credentials.
func (s *StubProvider) IsConfigured() bool { return true }

// Complete echoes the configured response or error.
func (s *StubProvider) Complete(_ context.Context, req CompletionRequest) (*CompletionResponse, error) {
	s.Calls++
	if s.Err != nil {
		return nil, s.Err
	}
	content := s.Response
	if content == "" {
		content = "Decision explanation unavailable without a configured model."
	}
	return &CompletionResponse{
		Content: content,
		Model:   "stub",
		Usage:   UsageStats{TotalTokens: len(req.Prompt) / 4},
		Latency: time.Millisecond,
	}, nil
}
