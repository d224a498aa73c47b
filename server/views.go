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
	"embed"
	"html/template"
	"net/http"

	"github.com/AvaY100/AI-Payment-Concierge/shared/types"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.New("").Funcs(template.FuncMap{
	"percent": func(ratio float64) float64 { return ratio * 100 },
}).ParseFS(templateFS, "templates/*.html"))

func (s *Server) dashboardPageHandler(w http.ResponseWriter, r *http.Request) {
	data, err := s.dashboardData()
	if err != nil {
		s.log.ErrorWithErr(requestID(r), "dashboard aggregation failed", err, nil)
		http.Error(w, "dashboard unavailable", http.StatusInternalServerError)
		return
	}
	s.renderPage(w, r, "dashboard.html", data)
}

func (s *Server) purchasePageHandler(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, "purchase.html", map[string]interface{}{
		"Categories": types.Categories(),
	})
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplates.ExecuteTemplate(w, name, data); err != nil {
		s.log.ErrorWithErr(requestID(r), "template render failed", err, map[string]interface{}{
			"template": name,
		})
	}
}
