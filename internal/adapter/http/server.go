package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/bnema/splice/internal/adapter/http/middleware"
	"github.com/bnema/splice/internal/adapter/http/ratelimit"
	"github.com/bnema/splice/internal/domain"
	"github.com/bnema/splice/internal/service"
)

type MergeService interface {
	Submit(ctx context.Context, req service.MergeRequest) (*domain.Run, error)
	Get(id string) (*domain.Run, error)
	List(limit int) ([]*domain.Run, error)
	Cancel(id string) error
	Busy() bool
}

// EventSource is the subscription side of the event bus.
type EventSource interface {
	Subscribe(runID string) chan service.Event
	Unsubscribe(runID string, ch chan service.Event)
}

type Server struct {
	mux        *http.ServeMux
	merges     MergeService
	events     EventSource
	apiKeyHash string
	limiter    *ratelimit.AuthLimiter
	upgrader   websocket.Upgrader
	keepAlive  time.Duration
}

// NewServer builds the HTTP surface. apiKeyHash is a bcrypt hash; empty
// leaves every route open.
func NewServer(merges MergeService, events EventSource, apiKeyHash string) *Server {
	s := &Server{
		mux:        http.NewServeMux(),
		merges:     merges,
		events:     events,
		apiKeyHash: apiKeyHash,
		limiter:    ratelimit.NewAuthLimiter(5, 15*time.Minute, 15*time.Minute),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		keepAlive: 15 * time.Second,
	}

	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /healthz", s.health)

	s.handle("POST /merges", s.createMerge)
	s.handle("GET /merges", s.listMerges)
	s.handle("GET /merges/{id}", s.getMerge)
	s.handle("POST /merges/{id}/cancel", s.cancelMerge)
	s.handle("GET /merges/{id}/download", s.download)
	s.handle("GET /merges/{id}/events", s.streamEvents)
	s.handle("GET /merges/{id}/ws", s.socket)
	s.handle("GET /status/{id}", s.statusPage)
}

func (s *Server) handle(pattern string, h http.HandlerFunc) {
	s.mux.Handle(pattern, middleware.APIKey(s.apiKeyHash, s.limiter, h))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	middleware.SecurityHeaders(s.mux).ServeHTTP(w, r)
}

// Close stops background housekeeping.
func (s *Server) Close() {
	s.limiter.Stop()
}
