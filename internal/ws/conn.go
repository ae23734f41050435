package ws

import (
	"errors"
	"sync"
	"time"

	githubws "github.com/fasthttp/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultQueueSize = 256
	DefaultPingEvery = 30 * time.Second

	writeWait = 10 * time.Second
)

var (
	errConnClosed = errors.New("connection closed")
	errQueueFull  = errors.New("outbound queue full")
)

// frameWriter is the write half of a websocket connection.
type frameWriter interface {
	WriteMessage(messageType int, data []byte) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// Conn is one viewer connection. Frames are queued by Send and written by a
// single writer goroutine, so a slow client never stalls fan-out.
type Conn struct {
	id  string
	ws  frameWriter
	log *zap.Logger

	mu     sync.RWMutex
	closed bool
	send   chan []byte
	done   chan struct{}
}

func newConn(ws frameWriter, queueSize int, log *zap.Logger) *Conn {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Conn{
		id:   uuid.NewString(),
		ws:   ws,
		log:  log,
		send: make(chan []byte, queueSize),
		done: make(chan struct{}),
	}
}

func (c *Conn) ID() string {
	return c.id
}

// Send queues an event frame. It never blocks: a full queue drops the frame.
func (c *Conn) Send(event string, payload []byte) error {
	msg, err := encodeFrame(event, payload)
	if err != nil {
		return err
	}
	return c.enqueue(msg)
}

// Status queues a status frame.
func (c *Conn) Status(status string, message string) {
	msg, err := encodeStatus(status, message)
	if err != nil {
		return
	}
	if err := c.enqueue(msg); err != nil {
		c.log.Debug("status frame dropped", zap.String("conn", c.id), zap.Error(err))
	}
}

func (c *Conn) enqueue(msg []byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return errConnClosed
	}

	select {
	case c.send <- msg:
		return nil
	default:
		return errQueueFull
	}
}

// close stops accepting frames. The writer flushes what is queued and exits.
func (c *Conn) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// writeLoop drains the queue onto the socket and pings while idle. A write
// failure closes the socket, which in turn ends the read loop.
func (c *Conn) writeLoop(pingEvery time.Duration) {
	defer close(c.done)

	if pingEvery <= 0 {
		pingEvery = DefaultPingEvery
	}
	ticker := time.NewTicker(pingEvery)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.ws.WriteMessage(githubws.CloseMessage,
					githubws.FormatCloseMessage(githubws.CloseNormalClosure, ""))
				return
			}
			if err := c.ws.WriteMessage(githubws.TextMessage, msg); err != nil {
				c.log.Debug("write failed", zap.String("conn", c.id), zap.Error(err))
				c.fail()
				return
			}
		case <-ticker.C:
			if err := c.ws.WriteControl(githubws.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				c.log.Debug("ping failed", zap.String("conn", c.id), zap.Error(err))
				c.fail()
				return
			}
		}
	}
}

func (c *Conn) fail() {
	_ = c.ws.Close()
}
