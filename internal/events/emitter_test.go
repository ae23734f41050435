package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"auditstream/internal/models"

	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu      sync.Mutex
	batches [][]models.StreamEvent
	singles []models.StreamEvent
}

func (r *recorder) all() []models.StreamEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.StreamEvent
	for _, b := range r.batches {
		out = append(out, b...)
	}
	return append(out, r.singles...)
}

func newTestEmitter(cfg Config) (*Emitter, *recorder) {
	rec := &recorder{}
	e := NewEmitterWithConfig(nil, "test", cfg)
	e.InsertMany = func(_ context.Context, evts []models.StreamEvent) error {
		rec.mu.Lock()
		defer rec.mu.Unlock()
		rec.batches = append(rec.batches, append([]models.StreamEvent(nil), evts...))
		return nil
	}
	e.InsertOne = func(_ context.Context, evt models.StreamEvent) error {
		rec.mu.Lock()
		defer rec.mu.Unlock()
		rec.singles = append(rec.singles, evt)
		return nil
	}
	return e, rec
}

func TestViewerLifecycleEvents(t *testing.T) {
	e, rec := newTestEmitter(fastConfig)

	e.ViewerConnected("c1", "u1", "10.0.0.1")
	e.ViewerSubscribed("c1", "u1", "latest")
	e.ViewerDisconnected("c1", "u1", "client closed")
	e.Close()

	evts := rec.all()
	require.Len(t, evts, 3)
	require.Equal(t, ActionViewerConnected, evts[0].Action)
	require.Equal(t, "10.0.0.1", evts[0].Props["remoteAddr"])
	require.Equal(t, ActionViewerSubscribed, evts[1].Action)
	require.Equal(t, "latest", evts[1].Topic)
	require.Equal(t, ActionViewerDisconnected, evts[2].Action)

	for _, evt := range evts {
		require.Equal(t, "c1", evt.ConnID)
		require.Equal(t, time.UTC, evt.TimeStamp.Location())
		require.False(t, evt.TimeStamp.IsZero())
	}
}

func TestFlushOnBatchSize(t *testing.T) {
	e, rec := newTestEmitter(Config{Buffer: 10, BatchSize: 2, FlushEvery: time.Hour})
	defer e.Close()

	e.ViewerSubscribed("c1", "", "latest")
	e.ViewerSubscribed("c2", "", "latest")

	require.Eventually(t, func() bool {
		return len(rec.all()) == 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestFlushOnTimer(t *testing.T) {
	e, rec := newTestEmitter(Config{Buffer: 10, BatchSize: 50, FlushEvery: 20 * time.Millisecond})
	defer e.Close()

	e.ViewerConnected("c1", "", "")

	require.Eventually(t, func() bool {
		return len(rec.all()) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestNilEmitterIsSafe(t *testing.T) {
	var e *Emitter
	e.ViewerConnected("c1", "", "")
	e.ViewerSubscribed("c1", "", "latest")
	e.ViewerDisconnected("c1", "", "")
	e.Close()
}
