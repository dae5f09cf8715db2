// Package http serves the transaction table, the receipt editor, and the
// dashboard summary API. Pages are rendered server side from embedded
// templates; the dashboard chart fetches its data as JSON.
package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"billfold/internal/cache"
	"billfold/internal/log"
	"billfold/internal/store"
	appweb "billfold/web"
)

type Server struct {
	http.Server
	templates    *template.Template
	store        *store.Store
	logger       *log.Logger
	rateLimiter  *rateLimiter
	summaryCache *cache.LRUCache[summaryPayload]
	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run server.
func NewServer(addr string, st *store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentHTTP)
	}

	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		store:        st,
		logger:       logger,
		rateLimiter:  newRateLimiter(),
		summaryCache: cache.NewLRUCache[summaryPayload](100, 5*time.Minute),
	}

	t, err := template.New("billfold").Funcs(templateFuncs()).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		logger.Warn("failed parsing templates", log.FieldError, err)
	}
	s.templates = t

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600")
			static.ServeHTTP(w, r)
		}))
	} else {
		logger.Warn("failed to mount embedded static FS", log.FieldError, err)
	}

	mux.HandleFunc("GET /{$}", s.withRequestContext(s.handleIndex))
	mux.HandleFunc("GET /transactions/{id}", s.withRequestContext(s.handleTransactionDetail))
	mux.HandleFunc("POST /transactions/{id}/edit", s.withRequestContext(s.handleTransactionEdit))
	mux.HandleFunc("GET /dashboard", s.withRequestContext(s.handleDashboard))
	mux.HandleFunc("GET /dashboard/summary", s.withRequestContext(s.handleSummary))
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	return s
}

// Shutdown stops the HTTP server and background cleanup exactly once.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleReady reports ready once the store has loaded or seeded a snapshot.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if _, err := s.store.Load(r.Context()); err != nil {
		s.logger.ErrorContext(r.Context(), "readiness check failed", log.FieldError, err)
		http.Error(w, "store not ready", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
