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

// Package server exposes the concierge over HTTP: the JSON API, the demo
// HTML pages, and the Prometheus metrics endpoint.
package server

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/AvaY100/AI-Payment-Concierge/config"
	"github.com/AvaY100/AI-Payment-Concierge/llm"
	"github.com/AvaY100/AI-Payment-Concierge/llm/anthropic"
	"github.com/AvaY100/AI-Payment-Concierge/pipeline"
	"github.com/AvaY100/AI-Payment-Concierge/shared/logger"
	"github.com/AvaY100/AI-Payment-Concierge/shared/types"
	"github.com/AvaY100/AI-Payment-Concierge/store"
)

// Server holds the wired application: stores, pipeline, provider, and
// configuration. Handlers hang off it so tests can assemble one against a
// temp directory and a stub provider.
type Server struct {
	cfg      *config.Config
	profiles *store.ProfileStore
	txns     *store.TransactionStore
	budget   *store.BudgetStore
	provider llm.Provider
	pipeline *pipeline.Pipeline
	log      *logger.Logger
}

// NewServer assembles a Server from configuration and an explanation
// provider.
func NewServer(cfg *config.Config, provider llm.Provider) (*Server, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir %s: %w", cfg.DataDir, err)
	}

	limits := make(map[types.Category]float64, len(cfg.Budgets))
	for name, limit := range cfg.Budgets {
		limits[types.Category(name)] = limit
	}

	profiles := store.NewProfileStore(filepath.Join(cfg.DataDir, "user_profile.json"))
	txns := store.NewTransactionStore(filepath.Join(cfg.DataDir, "transactions.json"))
	budget := store.NewBudgetStore(filepath.Join(cfg.DataDir, "budget.json"), limits)

	return &Server{
		cfg:      cfg,
		profiles: profiles,
		txns:     txns,
		budget:   budget,
		provider: provider,
		pipeline: pipeline.New(profiles, txns, budget, provider, cfg),
		log:      logger.New("server"),
	}, nil
}

// Router builds the full route table.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/", s.dashboardPageHandler).Methods("GET")
	r.HandleFunc("/purchase", s.purchasePageHandler).Methods("GET")
	r.HandleFunc("/purchase", s.purchaseFormHandler).Methods("POST")

	r.HandleFunc("/api/analyze", s.analyzeHandler).Methods("POST")
	r.HandleFunc("/api/dashboard", s.dashboardDataHandler).Methods("GET")
	r.HandleFunc("/api/profile", s.profileHandler).Methods("GET", "POST")
	r.HandleFunc("/api/health", s.healthHandler).Methods("GET")

	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	return c.Handler(s.withRequestContext(r))
}

// newProvider selects the explanation provider from configuration.
func newProvider(cfg *config.Config, log *logger.Logger) (llm.Provider, error) {
	switch cfg.LLM.Provider {
	case "anthropic":
		return anthropic.NewProvider(anthropic.Config{
			APIKey:  cfg.LLM.APIKey,
			Model:   cfg.LLM.Model,
			Timeout: cfg.LLM.Timeout(),
		})
	case "stub":
		log.Warn("", "no API key configured, using canned explanations", nil)
		return &llm.StubProvider{
			Response: "Recorded. Configure ANTHROPIC_API_KEY for personalized explanations.",
		}, nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLM.Provider)
	}
}

// Run is the exported entry point for the concierge service.
func Run() {
	log := logger.New("server")

	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.ErrorWithErr("", "configuration invalid", err, nil)
		os.Exit(1)
	}

	provider, err := newProvider(cfg, log)
	if err != nil {
		log.ErrorWithErr("", "provider setup failed", err, nil)
		os.Exit(1)
	}

	srv, err := NewServer(cfg, provider)
	if err != nil {
		log.ErrorWithErr("", "server setup failed", err, nil)
		os.Exit(1)
	}

	addr := ":" + cfg.Server.Port
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      srv.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
	}

	log.Info("", "payment concierge listening", map[string]interface{}{
		"addr":     addr,
		"provider": provider.Name(),
		"data_dir": cfg.DataDir,
	})
	if err := httpServer.ListenAndServe(); err != nil {
		log.ErrorWithErr("", "server error", err, nil)
		os.Exit(1)
	}
}
