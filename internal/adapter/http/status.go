package http

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/bnema/splice/internal/adapter/http/middleware"
	"github.com/bnema/splice/internal/adapter/http/templates"
	"github.com/bnema/splice/internal/domain"
	"github.com/bnema/splice/internal/infrastructure/logger"
)

func (s *Server) statusPage(w http.ResponseWriter, r *http.Request) {
	run, err := s.merges.Get(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "Run not found", http.StatusNotFound)
			return
		}
		logger.Error.Printf("status page lookup: %v", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	// the page reuses the caller's key for its own event stream
	q := url.Values{}
	if key := r.URL.Query().Get(middleware.KeyQueryParam); key != "" {
		q.Set(middleware.KeyQueryParam, key)
	}
	events := withQuery("/merges/"+url.PathEscape(run.ID)+"/events", q)
	download := withQuery("/merges/"+url.PathEscape(run.ID)+"/download", q)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.StatusPage(run, events, download).Render(r.Context(), w); err != nil {
		logger.Error.Printf("render status page for run %s: %v", run.ID, err)
	}
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
