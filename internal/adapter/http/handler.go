package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"

	"github.com/bnema/splice/internal/adapter/http/validation"
	"github.com/bnema/splice/internal/domain"
	"github.com/bnema/splice/internal/infrastructure/logger"
	"github.com/bnema/splice/internal/service"
)

// maxRequestBody bounds a merge request; inputs are paths, not uploads.
const maxRequestBody = 1 << 20

const defaultListLimit = 20

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error.Printf("failed to encode response: %v", err)
	}
}

// writeError maps service errors to status codes.
func writeError(w http.ResponseWriter, err error) {
	var precondition *domain.PreconditionError
	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &precondition):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrRunInProgress):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	default:
		logger.Error.Printf("request failed: %v", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "busy": s.merges.Busy()})
}

func (s *Server) createMerge(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var req service.MergeRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	run, err := s.merges.Submit(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Location", "/merges/"+run.ID)
	writeJSON(w, http.StatusAccepted, run)
}

func (s *Server) listMerges(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be a positive integer"})
			return
		}
		limit = n
	}

	runs, err := s.merges.List(limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if runs == nil {
		runs = []*domain.Run{}
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) getMerge(w http.ResponseWriter, r *http.Request) {
	run, err := s.merges.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) cancelMerge(w http.ResponseWriter, r *http.Request) {
	if err := s.merges.Cancel(r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) download(w http.ResponseWriter, r *http.Request) {
	run, err := s.merges.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if run.Status != domain.RunStatusDone {
		writeJSON(w, http.StatusConflict, errorResponse{Error: "run has no output yet"})
		return
	}

	f, err := os.Open(run.Destination)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			writeJSON(w, http.StatusGone, errorResponse{Error: "output no longer exists"})
			return
		}
		writeError(w, err)
		return
	}
	defer f.Close() //nolint:errcheck

	info, err := f.Stat()
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Disposition", validation.ContentDisposition(run.Destination))
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}
