package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"billfold/internal/core"
	"billfold/internal/log"
	"billfold/internal/view"
)

// summaryPayload is the dashboard summary API response. Transactions is
// populated only when a category is selected.
type summaryPayload struct {
	Range        int                  `json:"range"`
	Category     string               `json:"category,omitempty"`
	Totals       []core.CategoryTotal `json:"totals"`
	Transactions []core.Transaction   `json:"transactions,omitempty"`
}

type dashboardData struct {
	Range        int
	RangeOptions []int
}

// handleDashboard renders the dashboard shell; the chart data comes from
// the summary endpoint.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	data := dashboardData{
		Range:        parseMonths(r),
		RangeOptions: rangeOptions,
	}
	if err := s.templates.ExecuteTemplate(w, "dashboard.html", data); err != nil {
		s.logger.ErrorContext(r.Context(), "dashboard template execution failed", log.FieldError, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleSummary serves category totals for the selected time range as JSON.
// Responses are cached per store version, so any save invalidates them.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	months := parseMonths(r)
	category := sanitizeInput(r.URL.Query().Get("category"))

	key := fmt.Sprintf("%d:%d:%s", s.store.Version(), months, category)
	payload, found := s.summaryCache.Get(key)
	if !found {
		txs, err := s.store.Load(r.Context())
		if err != nil {
			s.logger.ErrorContext(r.Context(), "load transactions failed",
				log.FieldError, err, log.FieldRange, months)
			http.Error(w, "failed to load transactions", http.StatusInternalServerError)
			return
		}

		ranged := view.FilterByRange(txs, months, time.Now())
		payload = summaryPayload{
			Range:    months,
			Category: category,
			Totals:   view.GroupByCategory(ranged),
		}
		if category != "" {
			payload.Transactions = view.SelectCategory(ranged, category)
		}
		s.summaryCache.Set(key, payload)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.ErrorContext(r.Context(), "encode summary failed", log.FieldError, err)
	}
}
