package http

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"billfold/internal/core"
	"billfold/internal/log"
	"billfold/internal/view"
)

type columnHeader struct {
	Name   string
	Href   string
	Active bool
	Dir    string
}

type indexData struct {
	Query        string
	Sort         string
	Dir          string
	Range        int
	RangeOptions []int
	Headers      []columnHeader
	Transactions []core.Transaction
	Count        int
}

// handleIndex renders the transaction table. The full list is filtered by
// time range and free-text query, then sorted by the requested column.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		s.logger.ErrorContext(r.Context(), "templates not loaded", log.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	txs, err := s.store.Load(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "load transactions failed", log.FieldError, err)
		http.Error(w, "failed to load transactions", http.StatusInternalServerError)
		return
	}

	query := sanitizeInput(r.URL.Query().Get("q"))
	months := parseMonths(r)
	sortParam := r.URL.Query().Get("sort")
	dir := view.ParseDirection(r.URL.Query().Get("dir"))

	txs = view.FilterByRange(txs, months, time.Now())
	txs = view.FilterByText(txs, query)

	sortCol, sorted := view.ParseColumn(sortParam)
	if sorted {
		txs = view.SortBy(txs, sortCol, dir)
	}

	data := indexData{
		Query:        query,
		Sort:         sortParam,
		Dir:          string(dir),
		Range:        months,
		RangeOptions: rangeOptions,
		Transactions: txs,
		Count:        len(txs),
	}
	for _, col := range view.Columns() {
		active := sorted && col == sortCol
		nextDir := view.Asc
		if active && dir == view.Asc {
			nextDir = view.Desc
		}
		data.Headers = append(data.Headers, columnHeader{
			Name:   string(col),
			Href:   tableHref(query, months, col, nextDir),
			Active: active,
			Dir:    string(dir),
		})
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		s.logger.ErrorContext(r.Context(), "index template execution failed", log.FieldError, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func tableHref(query string, months int, col view.Column, dir view.Direction) string {
	q := url.Values{}
	if query != "" {
		q.Set("q", query)
	}
	if months != view.RangeAll {
		q.Set("range", strconv.Itoa(months))
	}
	q.Set("sort", string(col))
	q.Set("dir", string(dir))
	return "/?" + q.Encode()
}
