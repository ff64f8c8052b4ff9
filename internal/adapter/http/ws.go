package http

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/bnema/splice/internal/infrastructure/logger"
)

const wsWriteWait = 10 * time.Second

// socket streams the same events as streamEvents over a WebSocket, one JSON
// message per event, and closes normally after the terminal one.
func (s *Server) socket(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	run, err := s.merges.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied
		return
	}
	defer conn.Close() //nolint:errcheck

	// drain client frames so close and ping control messages are handled
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	finish := func() {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "run finished"),
			time.Now().Add(wsWriteWait))
	}

	if run.IsTerminal() {
		if s.writeEvent(conn, runEvent(run)) == nil {
			finish()
		}
		return
	}

	ch := s.events.Subscribe(id)
	defer s.events.Unsubscribe(id, ch)

	if run, err = s.merges.Get(id); err == nil && run.IsTerminal() {
		if s.writeEvent(conn, runEvent(run)) == nil {
			finish()
		}
		return
	}

	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			if err := s.writeEvent(conn, ev); err != nil {
				logger.Debug.Printf("websocket write for run %s: %v", id, err)
				return
			}
			if ev.Terminal() {
				finish()
				return
			}
		}
	}
}

func (s *Server) writeEvent(conn *websocket.Conn, ev any) error {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return conn.WriteJSON(ev)
}
