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

// Package config loads the concierge configuration from a YAML file with
// environment overrides. A missing file is not an error: the built-in
// defaults describe a fully working single-user demo.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/AvaY100/AI-Payment-Concierge/shared/types"
)

// Config is the root configuration document.
type Config struct {
	Server     ServerConfig       `yaml:"server"`
	DataDir    string             `yaml:"data_dir"`
	Budgets    map[string]float64 `yaml:"budgets"` // category -> yearly limit
	Thresholds ThresholdConfig    `yaml:"thresholds"`
	LLM        LLMConfig          `yaml:"llm"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port           string   `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// ThresholdConfig holds the fixed numeric thresholds driving the three
// analyzers. The values are configuration, not model output, so the color
// decision stays reproducible.
type ThresholdConfig struct {
	// Longevity: projected shortfall as a fraction of the retirement target.
	LongevityOnTrack    float64 `yaml:"longevity_on_track"`   // shortfall <= this -> on track
	LongevityBorderline float64 `yaml:"longevity_borderline"` // shortfall <= this -> borderline

	// Budget: (spent + amount) / yearly limit.
	BudgetNear float64 `yaml:"budget_near"` // ratio >= this -> near limit
	BudgetOver float64 `yaml:"budget_over"` // ratio >= this -> over limit

	// Anomaly: multiples of the category's historical average.
	AnomalyMildMultiple   float64 `yaml:"anomaly_mild_multiple"`
	AnomalyStrongMultiple float64 `yaml:"anomaly_strong_multiple"`

	// Sparse history fallback: absolute amounts used when fewer than
	// MinHistorySamples prior transactions exist in the category.
	MinHistorySamples  int     `yaml:"min_history_samples"`
	SparseMildAmount   float64 `yaml:"sparse_mild_amount"`
	SparseStrongAmount float64 `yaml:"sparse_strong_amount"`
}

// LLMConfig configures the explanation-generation call.
type LLMConfig struct {
	Provider       string  `yaml:"provider"` // anthropic or stub
	Model          string  `yaml:"model"`
	MaxTokens      int     `yaml:"max_tokens"`
	Temperature    float64 `yaml:"temperature"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
	MaxRetries     int     `yaml:"max_retries"`

	// APIKey is never read from YAML; it comes from ANTHROPIC_API_KEY.
	APIKey string `yaml:"-"`
}

// Timeout returns the configured LLM call timeout as a duration.
func (c LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8080",
			AllowedOrigins: []string{"*"},
		},
		DataDir: "data",
		Budgets: map[string]float64{
			string(types.CategoryFood):           6000,
			string(types.CategoryTransportation): 3600,
			string(types.CategoryEntertainment):  2400,
			string(types.CategoryShopping):       3000,
			string(types.CategoryBills):          12000,
			string(types.CategoryOther):          2000,
		},
		Thresholds: ThresholdConfig{
			LongevityOnTrack:      0.10,
			LongevityBorderline:   0.35,
			BudgetNear:            0.80,
			BudgetOver:            1.00,
			AnomalyMildMultiple:   1.5,
			AnomalyStrongMultiple: 3.0,
			MinHistorySamples:     3,
			SparseMildAmount:      200,
			SparseStrongAmount:    500,
		},
		LLM: LLMConfig{
			Provider:       "anthropic",
			Model:          "claude-3-5-haiku-20241022",
			MaxTokens:      1024,
			Temperature:    0.7,
			TimeoutSeconds: 60,
			MaxRetries:     3,
		},
	}
}

// Load reads configuration from path, fills gaps with defaults, applies
// environment overrides, and validates the result. An empty path or a
// missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Port = port
	}
	if dir := os.Getenv("DATA_DIR"); dir != "" {
		c.DataDir = dir
	}
	c.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	// Without a key the explanation call cannot reach the provider; the
	// stub keeps the demo usable and /api/health reports degraded.
	if c.LLM.APIKey == "" && c.LLM.Provider == "anthropic" {
		c.LLM.Provider = "stub"
	}
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Server.Port == "" {
		c.Server.Port = def.Server.Port
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = def.Server.AllowedOrigins
	}
	if c.DataDir == "" {
		c.DataDir = def.DataDir
	}
	if len(c.Budgets) == 0 {
		c.Budgets = def.Budgets
	}
	if c.Thresholds == (ThresholdConfig{}) {
		c.Thresholds = def.Thresholds
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = def.LLM.Provider
	}
	if c.LLM.Model == "" {
		c.LLM.Model = def.LLM.Model
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = def.LLM.MaxTokens
	}
	if c.LLM.TimeoutSeconds == 0 {
		c.LLM.TimeoutSeconds = def.LLM.TimeoutSeconds
	}
	if c.LLM.MaxRetries == 0 {
		c.LLM.MaxRetries = def.LLM.MaxRetries
	}
}

// Validate checks the configuration for internally inconsistent values.
func (c *Config) Validate() error {
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("server.port must be numeric, got %q", c.Server.Port)
	}

	for name, limit := range c.Budgets {
		if _, err := types.ParseCategory(name); err != nil {
			return fmt.Errorf("budgets: %w", err)
		}
		if limit < 0 {
			return fmt.Errorf("budgets.%s: yearly limit must be non-negative", name)
		}
	}

	t := c.Thresholds
	if t.LongevityOnTrack < 0 || t.LongevityBorderline < t.LongevityOnTrack {
		return fmt.Errorf("thresholds: longevity_borderline must be >= longevity_on_track >= 0")
	}
	if t.BudgetNear <= 0 || t.BudgetOver < t.BudgetNear {
		return fmt.Errorf("thresholds: budget_over must be >= budget_near > 0")
	}
	if t.AnomalyMildMultiple <= 1 || t.AnomalyStrongMultiple < t.AnomalyMildMultiple {
		return fmt.Errorf("thresholds: anomaly_strong_multiple must be >= anomaly_mild_multiple > 1")
	}
	if t.MinHistorySamples < 1 {
		return fmt.Errorf("thresholds: min_history_samples must be >= 1")
	}
	if t.SparseMildAmount <= 0 || t.SparseStrongAmount < t.SparseMildAmount {
		return fmt.Errorf("thresholds: sparse_strong_amount must be >= sparse_mild_amount > 0")
	}

	switch c.LLM.Provider {
	case "anthropic", "stub":
	default:
		return fmt.Errorf("llm.provider must be anthropic or stub, got %q", c.LLM.Provider)
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 1 {
		return fmt.Errorf("llm.temperature must be between 0.0 and 1.0")
	}
	if c.LLM.MaxRetries < 0 {
		return fmt.Errorf("llm.max_retries must be non-negative")
	}

	return nil
}
