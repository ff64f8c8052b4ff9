package service

import (
	"sync"

	"github.com/bnema/splice/internal/domain"
)

const (
	EventProgress = "progress"
	EventDone     = "done"
	EventFailed   = "failed"
)

type Event struct {
	Type     string       `json:"type"`
	Stage    domain.Stage `json:"stage,omitempty"`
	Progress float64      `json:"progress"`
	Message  string       `json:"message"`
	Output   string       `json:"output,omitempty"`
}

// Terminal reports whether no further events follow for the run.
func (e Event) Terminal() bool {
	return e.Type == EventDone || e.Type == EventFailed
}

func ProgressEvent(r domain.ProgressReport) Event {
	return Event{Type: EventProgress, Stage: r.Stage, Progress: r.Progress, Message: r.Status}
}

func ResultEvent(r domain.PipelineResult) Event {
	if r.OK() {
		return Event{Type: EventDone, Stage: domain.StageDone, Progress: 1, Message: "Done", Output: r.OutputPath}
	}
	return Event{Type: EventFailed, Stage: domain.StageDone, Message: r.Err.Error()}
}

type EventPublisher interface {
	Publish(runID string, event Event)
	Forget(runID string)
}

// EventBus fans run events out to subscribers and keeps the latest one per run
// so late subscribers start from the current state.
type EventBus struct {
	subscribers map[string][]chan Event
	last        map[string]Event
	mu          sync.RWMutex
}

func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[string][]chan Event),
		last:        make(map[string]Event),
	}
}

func (eb *EventBus) Subscribe(runID string) chan Event {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	ch := make(chan Event, 16)
	if ev, ok := eb.last[runID]; ok {
		ch <- ev
	}
	eb.subscribers[runID] = append(eb.subscribers[runID], ch)
	return ch
}

func (eb *EventBus) Unsubscribe(runID string, ch chan Event) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	subs := eb.subscribers[runID]
	for i, sub := range subs {
		if sub == ch {
			eb.subscribers[runID] = append(subs[:i], subs[i+1:]...)
			close(ch)
			break
		}
	}

	if len(eb.subscribers[runID]) == 0 {
		delete(eb.subscribers, runID)
	}
}

func (eb *EventBus) Publish(runID string, event Event) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.last[runID] = event
	for _, ch := range eb.subscribers[runID] {
		select {
		case ch <- event:
		default:
			// slow subscriber: progress is dropped, a terminal event evicts
			// the oldest buffered one
			if event.Terminal() {
				evictAndSend(ch, event)
			}
		}
	}
}

// evictAndSend must be called with eb.mu held. Only Publish and Subscribe send
// on subscriber channels, so one receive always frees a slot.
func evictAndSend(ch chan Event, event Event) {
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- event:
	default:
	}
}

func (eb *EventBus) Last(runID string) (Event, bool) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	ev, ok := eb.last[runID]
	return ev, ok
}

// Forget drops the retained event for a finished run. Later subscribers read
// the final state from the run store instead.
func (eb *EventBus) Forget(runID string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	delete(eb.last, runID)
}
