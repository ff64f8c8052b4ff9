package service

import (
	"errors"
	"testing"

	"github.com/bnema/splice/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_PublishSubscribe(t *testing.T) {
	bus := NewEventBus()
	ch := bus.Subscribe("run1")
	other := bus.Subscribe("run2")

	bus.Publish("run1", ProgressEvent(domain.ProgressReport{Stage: domain.StageMerging, Progress: 0.9, Status: "Merging videos..."}))

	ev := <-ch
	assert.Equal(t, EventProgress, ev.Type)
	assert.Equal(t, 0.9, ev.Progress)
	assert.False(t, ev.Terminal())
	assert.Empty(t, other)

	bus.Unsubscribe("run1", ch)
	_, open := <-ch
	assert.False(t, open)
	bus.Unsubscribe("run2", other)
}

func TestEventBus_LateSubscriberGetsLastEvent(t *testing.T) {
	bus := NewEventBus()
	bus.Publish("run1", ResultEvent(domain.Success("/out/merged.mp4")))

	ch := bus.Subscribe("run1")
	defer bus.Unsubscribe("run1", ch)

	ev := <-ch
	assert.Equal(t, EventDone, ev.Type)
	assert.True(t, ev.Terminal())
	assert.Equal(t, "/out/merged.mp4", ev.Output)

	bus.Forget("run1")
	_, ok := bus.Last("run1")
	assert.False(t, ok)
}

func TestEventBus_SlowSubscriberDoesNotBlock(t *testing.T) {
	bus := NewEventBus()
	ch := bus.Subscribe("run1")
	defer bus.Unsubscribe("run1", ch)

	for i := 0; i < 100; i++ {
		bus.Publish("run1", Event{Type: EventProgress, Progress: float64(i) / 100})
	}
	require.Len(t, ch, cap(ch))
}

func TestEventBus_TerminalEventSurvivesFullBuffer(t *testing.T) {
	bus := NewEventBus()
	ch := bus.Subscribe("run1")
	defer bus.Unsubscribe("run1", ch)

	for i := 0; i < cap(ch); i++ {
		bus.Publish("run1", Event{Type: EventProgress, Progress: float64(i) / 100})
	}
	bus.Publish("run1", ResultEvent(domain.Success("/out/merged.mp4")))
	require.Len(t, ch, cap(ch))

	var last Event
	for len(ch) > 0 {
		last = <-ch
	}
	assert.Equal(t, EventDone, last.Type)
	assert.Equal(t, "/out/merged.mp4", last.Output)
}

func TestEventBus_ProgressDroppedWhenFull(t *testing.T) {
	bus := NewEventBus()
	ch := bus.Subscribe("run1")
	defer bus.Unsubscribe("run1", ch)

	for i := 0; i < cap(ch); i++ {
		bus.Publish("run1", Event{Type: EventProgress, Progress: 0.01})
	}
	bus.Publish("run1", Event{Type: EventProgress, Progress: 0.99})

	for len(ch) > 0 {
		ev := <-ch
		assert.Equal(t, 0.01, ev.Progress)
	}
}

func TestResultEvent_Failure(t *testing.T) {
	ev := ResultEvent(domain.Failure(errors.New("merge into /o.mp4: exit status 1")))
	assert.Equal(t, EventFailed, ev.Type)
	assert.Contains(t, ev.Message, "exit status 1")
}
