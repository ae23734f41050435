// Package tailer discovers newly inserted audit records by polling the store
// past a cursor and hands them to the router in insertion order.
package tailer

import (
	"bytes"
	"context"
	"sync"
	"time"

	"auditstream/internal/fanout"
	"auditstream/internal/metrics"
	"auditstream/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	DefaultInterval = time.Second
	DefaultBackoff  = 5 * time.Second
)

// Source is the slice of the store the tailer reads.
type Source interface {
	Latest(ctx context.Context) (*models.ActivityRecord, error)
	After(ctx context.Context, cursor *primitive.ObjectID) ([]models.ActivityRecord, error)
}

// Sink receives projected records for a topic.
type Sink interface {
	Deliver(topic string, rec models.ProjectedRecord)
}

type Config struct {
	Interval time.Duration
	Backoff  time.Duration
	Login    models.LoginSignature
}

// Tailer owns the cursor. There must be exactly one per store.
type Tailer struct {
	src  Source
	sink Sink
	cfg  Config
	log  *zap.Logger

	mu     sync.RWMutex
	cursor *primitive.ObjectID
}

func New(src Source, sink Sink, cfg Config, log *zap.Logger) *Tailer {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = DefaultBackoff
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Tailer{src: src, sink: sink, cfg: cfg, log: log}
}

// Cursor returns the identifier of the last delivered record, nil before
// anything was seen.
func (t *Tailer) Cursor() *primitive.ObjectID {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.cursor == nil {
		return nil
	}
	c := *t.cursor
	return &c
}

// advance moves the cursor forward only; it never goes back.
func (t *Tailer) advance(id primitive.ObjectID) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cursor != nil && bytes.Compare(id[:], t.cursor[:]) <= 0 {
		return
	}
	t.cursor = &id
}

// Resume places the cursor at the newest stored record so existing backlog
// is never delivered as new. An empty store leaves the cursor unset.
func (t *Tailer) Resume(ctx context.Context) error {
	latest, err := t.src.Latest(ctx)
	if err != nil {
		return err
	}
	if latest != nil {
		t.advance(latest.ID)
	}
	metrics.TailerResumes.Inc()

	t.log.Info("tailer resumed", zap.String("cursor", cursorString(t.Cursor())))
	return nil
}

// Poll delivers every record past the cursor, advancing the cursor record by
// record. It returns how many records were delivered.
func (t *Tailer) Poll(ctx context.Context) (int, error) {
	records, err := t.src.After(ctx, t.Cursor())
	if err != nil {
		return 0, err
	}

	for _, rec := range records {
		t.advance(rec.ID)

		projected := models.Project(rec, t.cfg.Login)
		if projected.UserID != "" {
			t.sink.Deliver(fanout.UserTopic(projected.UserID), projected)
		}
		t.sink.Deliver(fanout.TopicLatest, projected)
	}

	metrics.TailerRecords.Add(float64(len(records)))
	metrics.TailerLastPoll.SetToCurrentTime()
	return len(records), nil
}

// Run resumes and then polls until ctx is cancelled. Store failures never
// stop the loop: they are logged and retried after the backoff, with the
// cursor untouched.
func (t *Tailer) Run(ctx context.Context) {
	t.log.Info("starting log watcher",
		zap.Duration("interval", t.cfg.Interval),
		zap.Duration("backoff", t.cfg.Backoff))

	for {
		err := t.Resume(ctx)
		if err == nil {
			break
		}
		metrics.TailerPollErrors.Inc()
		t.log.Error("error resuming tailer", zap.Error(err))
		if !sleep(ctx, t.cfg.Backoff) {
			return
		}
	}

	for {
		wait := t.cfg.Interval

		n, err := t.Poll(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			metrics.TailerPollErrors.Inc()
			t.log.Error("error in polling loop",
				zap.String("cursor", cursorString(t.Cursor())),
				zap.Error(err))
			wait = t.cfg.Backoff
		} else if n > 0 {
			t.log.Debug("delivered new records", zap.Int("count", n), zap.String("cursor", cursorString(t.Cursor())))
		}

		if !sleep(ctx, wait) {
			t.log.Info("tailer stopped", zap.String("cursor", cursorString(t.Cursor())))
			return
		}
	}
}

// Start runs the tailer on its own goroutine.
func (t *Tailer) Start(ctx context.Context) {
	go t.Run(ctx)
}

func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func cursorString(c *primitive.ObjectID) string {
	if c == nil {
		return "none"
	}
	return c.Hex()
}
