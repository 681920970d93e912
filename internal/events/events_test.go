package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobflow-engine/internal/submit"
)

func TestMakeEvent(t *testing.T) {
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	raw := makeEventAt(at, "req-1", TypeJobDeleted, 1, map[string]any{"id": 5})

	var e Event
	require.NoError(t, json.Unmarshal([]byte(raw), &e))
	assert.Equal(t, TypeJobDeleted, e.Type)
	assert.Equal(t, 1, e.Version)
	assert.Equal(t, "req-1", e.RequestID)
	assert.Equal(t, at, e.At)
	assert.JSONEq(t, `{"id":5}`, string(e.Data))

	raw = MakeEvent("", TypePing, 1, nil)
	assert.NotContains(t, raw, `"data"`)
	assert.NotContains(t, raw, `"request_id"`)
}

func TestHubPublishSubscribe(t *testing.T) {
	h := NewHub()
	a := h.Subscribe()
	b := h.Subscribe()
	assert.Equal(t, 2, h.Subscribers())

	h.Publish("one")
	assert.Equal(t, "one", <-a)
	assert.Equal(t, "one", <-b)

	h.Unsubscribe(a)
	h.Unsubscribe(a) // second call is a no-op
	_, open := <-a
	assert.False(t, open)
	assert.Equal(t, 1, h.Subscribers())
}

func TestHubDropsForSlowSubscriber(t *testing.T) {
	h := NewHub()
	ch := h.Subscribe()
	for i := 0; i < clientBuffer+5; i++ {
		h.Publish("x")
	}
	assert.Len(t, ch, clientBuffer)
}

func TestHubSubscribeContext(t *testing.T) {
	h := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	ch := h.SubscribeContext(ctx)
	cancel()

	assert.Eventually(t, func() bool { return h.Subscribers() == 0 }, time.Second, 5*time.Millisecond)
	_, open := <-ch
	assert.False(t, open)
}

func TestNilHubPublish(t *testing.T) {
	var h *Hub
	assert.NotPanics(t, func() { h.Publish("x") })
}

func TestStatusReporter(t *testing.T) {
	h := NewHub()
	ch := h.Subscribe()

	StatusReporter{Hub: h, RunID: "run-1"}.Report(submit.Status{Phase: submit.PhaseSent, Message: "Sent ✅ (job_id 4)", JobID: 4, Terminal: true})

	var e Event
	require.NoError(t, json.Unmarshal([]byte(<-ch), &e))
	assert.Equal(t, TypeStatus, e.Type)
	assert.Equal(t, "run-1", e.RequestID)

	var s submit.Status
	require.NoError(t, json.Unmarshal(e.Data, &s))
	assert.Equal(t, int64(4), s.JobID)
	assert.True(t, s.Terminal)
}
