package events

import (
	"context"
	"auditstream/internal/models"
	"time"
)

// Emit queues evt, writing it directly when the buffer is full.
func (e *Emitter) Emit(evt models.StreamEvent) {
	if e == nil {
		return
	}

	evt.TimeStamp = time.Now().UTC()

	select {
	case e.buf <- evt:
	default:
		ctx, cancel := context.WithTimeout(
			context.Background(),
			2*time.Second,
		)
		defer cancel()

		_ = e.InsertOne(ctx, evt)
	}
}
