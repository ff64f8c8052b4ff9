package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/splice/internal/domain"
	"github.com/bnema/splice/internal/service"
)

// sseWrite writes an SSE event, handling multi-line data correctly.
func sseWrite(w http.ResponseWriter, eventName string, data string) {
	_, _ = fmt.Fprintf(w, "event: %s\n", eventName)
	for _, line := range strings.Split(data, "\n") {
		_, _ = fmt.Fprintf(w, "data: %s\n", line)
	}
	_, _ = fmt.Fprint(w, "\n")
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func sendEvent(w http.ResponseWriter, ev service.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	sseWrite(w, ev.Type, string(data))
	return nil
}

// sendKeepAlive writes an SSE comment to keep the connection active.
func sendKeepAlive(w http.ResponseWriter) {
	_, _ = fmt.Fprint(w, ": keep-alive\n\n")
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// runEvent describes a stored run the way the bus would have.
func runEvent(run *domain.Run) service.Event {
	switch run.Status {
	case domain.RunStatusDone:
		return service.Event{Type: service.EventDone, Stage: domain.StageDone, Progress: 1, Message: "Done", Output: run.Destination}
	case domain.RunStatusFailed:
		return service.Event{Type: service.EventFailed, Stage: domain.StageDone, Progress: run.Progress, Message: run.ErrorMessage}
	default:
		return service.Event{Type: service.EventProgress, Stage: run.Stage, Progress: run.Progress, Message: run.StatusText}
	}
}

// streamEvents serves run progress as server-sent events. The stream ends
// after the terminal event.
func (s *Server) streamEvents(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	run, err := s.merges.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	if run.IsTerminal() {
		_ = sendEvent(w, runEvent(run))
		return
	}

	ch := s.events.Subscribe(id)
	defer s.events.Unsubscribe(id, ch)

	// the run may have finished between Get and Subscribe
	if run, err = s.merges.Get(id); err == nil && run.IsTerminal() {
		_ = sendEvent(w, runEvent(run))
		return
	}

	ctx := r.Context()
	keepAlive := time.NewTicker(s.keepAlive)
	defer keepAlive.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-keepAlive.C:
			sendKeepAlive(w)
		case ev, ok := <-ch:
			if !ok {
				return
			}
			if err := sendEvent(w, ev); err != nil {
				return
			}
			if ev.Terminal() {
				return
			}
		}
	}
}
