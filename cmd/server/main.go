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

// Package main is the entry point for the payment concierge service.
//
// The concierge analyzes each purchase with three deterministic signals
// (retirement trajectory, yearly budget, spending anomaly), aggregates
// them into a traffic-light decision, and asks an LLM for a short
// explanation of the result.
//
// Usage:
//
//	./server
//
// Environment Variables:
//
//	PORT - HTTP server port (default: 8080)
//	DATA_DIR - directory for the JSON data files (default: data)
//	CONFIG_PATH - optional YAML configuration file
//	ANTHROPIC_API_KEY - API key for explanation generation; when unset,
//	    canned explanations are used
package main

import (
	"github.com/AvaY100/AI-Payment-Concierge/server"
)

func main() {
	server.Run()
}
