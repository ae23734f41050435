package tailer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"auditstream/internal/fanout"
	"auditstream/internal/models"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var sig = models.LoginSignature{Path: "/login", Method: "POST"}

// memSource is an insertion ordered in-memory log.
type memSource struct {
	mu      sync.Mutex
	records []models.ActivityRecord
	err     error
	calls   int
}

func (m *memSource) insert(userID string, path string) primitive.ObjectID {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := primitive.NewObjectID()
	m.records = append(m.records, models.ActivityRecord{
		ID:        id,
		Timestamp: time.Now().UTC(),
		Path:      path,
		UserID:    userID,
	})
	return id
}

func (m *memSource) setErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *memSource) pollCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *memSource) Latest(context.Context) (*models.ActivityRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	if len(m.records) == 0 {
		return nil, nil
	}
	rec := m.records[len(m.records)-1]
	return &rec, nil
}

func (m *memSource) After(_ context.Context, cursor *primitive.ObjectID) ([]models.ActivityRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	m.calls++

	out := []models.ActivityRecord{}
	for _, rec := range m.records {
		if cursor == nil || rec.ID.Hex() > cursor.Hex() {
			out = append(out, rec)
		}
	}
	return out, nil
}

type delivery struct {
	topic string
	path  string
}

type recordingSink struct {
	mu         sync.Mutex
	deliveries []delivery
}

func (s *recordingSink) Deliver(topic string, rec models.ProjectedRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deliveries = append(s.deliveries, delivery{topic: topic, path: rec.Path})
}

func (s *recordingSink) paths(topic string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []string{}
	for _, d := range s.deliveries {
		if d.topic == topic {
			out = append(out, d.path)
		}
	}
	return out
}

func newTailer(src Source, sink Sink) *Tailer {
	return New(src, sink, Config{Interval: 5 * time.Millisecond, Backoff: 10 * time.Millisecond, Login: sig}, nil)
}

func TestResumeEmptyStore(t *testing.T) {
	tl := newTailer(&memSource{}, &recordingSink{})

	require.NoError(t, tl.Resume(context.Background()))
	require.Nil(t, tl.Cursor())
}

func TestResumeSkipsBacklog(t *testing.T) {
	src := &memSource{}
	src.insert("A", "/old1")
	last := src.insert("A", "/old2")
	sink := &recordingSink{}
	tl := newTailer(src, sink)

	require.NoError(t, tl.Resume(context.Background()))
	require.Equal(t, last, *tl.Cursor())

	n, err := tl.Poll(context.Background())
	require.NoError(t, err)
	require.Zero(t, n)
	require.Empty(t, sink.paths(fanout.TopicLatest))
}

func TestPollRoutesByUser(t *testing.T) {
	src := &memSource{}
	sink := &recordingSink{}
	tl := newTailer(src, sink)
	require.NoError(t, tl.Resume(context.Background()))

	src.insert("A", "/1")
	src.insert("B", "/2")
	last := src.insert("A", "/3")

	n, err := tl.Poll(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, n)

	require.Equal(t, []string{"/1", "/3"}, sink.paths(fanout.UserTopic("A")))
	require.Equal(t, []string{"/2"}, sink.paths(fanout.UserTopic("B")))
	require.Equal(t, []string{"/1", "/2", "/3"}, sink.paths(fanout.TopicLatest))
	require.Equal(t, last, *tl.Cursor())
}

func TestPollAnonymousOnlyBroadcast(t *testing.T) {
	src := &memSource{}
	sink := &recordingSink{}
	tl := newTailer(src, sink)
	require.NoError(t, tl.Resume(context.Background()))

	src.insert("", "/anon")
	_, err := tl.Poll(context.Background())
	require.NoError(t, err)

	require.Equal(t, []string{"/anon"}, sink.paths(fanout.TopicLatest))
	require.Empty(t, sink.paths(fanout.UserTopic("")))
}

func TestPollDeliversEachRecordOnce(t *testing.T) {
	src := &memSource{}
	sink := &recordingSink{}
	tl := newTailer(src, sink)
	require.NoError(t, tl.Resume(context.Background()))

	var want []string
	var last primitive.ObjectID
	for cycle := 0; cycle < 4; cycle++ {
		for i := 0; i < 3; i++ {
			path := "/" + string(rune('a'+cycle)) + string(rune('0'+i))
			last = src.insert("", path)
			want = append(want, path)
		}
		_, err := tl.Poll(context.Background())
		require.NoError(t, err)
		_, err = tl.Poll(context.Background())
		require.NoError(t, err)
	}

	require.Equal(t, want, sink.paths(fanout.TopicLatest))
	require.Equal(t, last, *tl.Cursor())
}

func TestPollErrorKeepsCursor(t *testing.T) {
	src := &memSource{}
	sink := &recordingSink{}
	tl := newTailer(src, sink)

	first := src.insert("", "/1")
	require.NoError(t, tl.Resume(context.Background()))

	src.insert("", "/2")
	src.setErr(errors.New("store unavailable"))

	_, err := tl.Poll(context.Background())
	require.Error(t, err)
	require.Equal(t, first, *tl.Cursor())

	src.setErr(nil)
	n, err := tl.Poll(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, []string{"/2"}, sink.paths(fanout.TopicLatest))
}

func TestCursorNeverMovesBack(t *testing.T) {
	tl := newTailer(&memSource{}, &recordingSink{})

	older := primitive.NewObjectIDFromTimestamp(time.Unix(1000, 0))
	newer := primitive.NewObjectIDFromTimestamp(time.Unix(2000, 0))

	tl.advance(newer)
	tl.advance(older)
	require.Equal(t, newer, *tl.Cursor())
}

func TestRunRecoversFromErrors(t *testing.T) {
	src := &memSource{}
	src.setErr(errors.New("down"))
	sink := &recordingSink{}
	tl := newTailer(src, sink)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		tl.Run(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	src.setErr(nil)

	// polling has begun once After succeeds, so the insert below is not backlog
	require.Eventually(t, func() bool {
		return src.pollCalls() > 0
	}, time.Second, 5*time.Millisecond)
	src.insert("A", "/live")

	require.Eventually(t, func() bool {
		return len(sink.paths(fanout.TopicLatest)) == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("tailer did not stop after cancel")
	}
	require.Equal(t, []string{"/live"}, sink.paths(fanout.UserTopic("A")))
}
