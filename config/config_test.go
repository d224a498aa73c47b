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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("PORT", "")
	t.Setenv("DATA_DIR", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, 0.10, cfg.Thresholds.LongevityOnTrack)
	assert.Equal(t, float64(6000), cfg.Budgets["food"])
	// No API key: provider falls back to the stub
	assert.Equal(t, "stub", cfg.LLM.Provider)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("PORT", "")
	t.Setenv("DATA_DIR", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := `
server:
  port: "9090"
data_dir: /tmp/concierge
budgets:
  food: 8000
  bills: 15000
thresholds:
  longevity_on_track: 0.05
  longevity_borderline: 0.25
  budget_near: 0.75
  budget_over: 1.0
  anomaly_mild_multiple: 2.0
  anomaly_strong_multiple: 4.0
  min_history_samples: 5
  sparse_mild_amount: 100
  sparse_strong_amount: 400
llm:
  model: claude-3-5-sonnet-20241022
  max_retries: 5
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "/tmp/concierge", cfg.DataDir)
	assert.Equal(t, float64(8000), cfg.Budgets["food"])
	assert.Equal(t, 0.25, cfg.Thresholds.LongevityBorderline)
	assert.Equal(t, 5, cfg.Thresholds.MinHistorySamples)
	assert.Equal(t, "claude-3-5-sonnet-20241022", cfg.LLM.Model)
	assert.Equal(t, 5, cfg.LLM.MaxRetries)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("PORT", "7777")
	t.Setenv("DATA_DIR", "/srv/data")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "7777", cfg.Server.Port)
	assert.Equal(t, "/srv/data", cfg.DataDir)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o644))

	_, err := Load(path)

	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "non-numeric port",
			mutate:  func(c *Config) { c.Server.Port = "http" },
			wantErr: "server.port",
		},
		{
			name:    "unknown budget category",
			mutate:  func(c *Config) { c.Budgets["groceries"] = 100 },
			wantErr: "unknown category",
		},
		{
			name:    "negative budget limit",
			mutate:  func(c *Config) { c.Budgets["food"] = -1 },
			wantErr: "non-negative",
		},
		{
			name:    "inverted longevity thresholds",
			mutate:  func(c *Config) { c.Thresholds.LongevityBorderline = 0.01 },
			wantErr: "longevity_borderline",
		},
		{
			name:    "anomaly multiple too small",
			mutate:  func(c *Config) { c.Thresholds.AnomalyMildMultiple = 0.5 },
			wantErr: "anomaly_strong_multiple",
		},
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.LLM.Provider = "openai" },
			wantErr: "llm.provider",
		},
		{
			name:    "temperature out of range",
			mutate:  func(c *Config) { c.LLM.Temperature = 1.5 },
			wantErr: "llm.temperature",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
