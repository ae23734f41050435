package ws

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"auditstream/internal/events"
	"auditstream/internal/fanout"

	"github.com/fasthttp/websocket"
	"github.com/gofiber/fiber/v3"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

const maxFrameSize = 4096

var (
	ErrMalformedFrame   = errors.New("malformed frame")
	ErrUnknownEvent     = errors.New("unknown event")
	ErrUnknownTopicType = errors.New("unknown subscription type")
	ErrMissingUser      = errors.New("user subscription requires a user id")
)

type subscribeData struct {
	Type   string `json:"type"`
	UserID string `json:"user_id"`
}

// ResolveTopic maps a client frame to the topic it asks to join. A viewer
// token's user always wins over the user named in the payload.
func ResolveTopic(data []byte, viewer Viewer) (string, error) {
	var f frame
	if err := json.Unmarshal(data, &f); err != nil {
		return "", ErrMalformedFrame
	}
	if f.Event != EventSubscribe {
		return "", ErrUnknownEvent
	}

	var sub subscribeData
	if len(f.Data) > 0 {
		if err := json.Unmarshal(f.Data, &sub); err != nil {
			return "", ErrMalformedFrame
		}
	}

	switch sub.Type {
	case fanout.TopicLatest:
		return fanout.TopicLatest, nil
	case "user":
		userID := sub.UserID
		if viewer.UserID != "" {
			userID = viewer.UserID
		}
		if userID == "" {
			return "", ErrMissingUser
		}
		return fanout.UserTopic(userID), nil
	default:
		return "", ErrUnknownTopicType
	}
}

// Handler serves the logs push channel.
type Handler struct {
	router *fanout.Router
	em     *events.Emitter
	log    *zap.Logger

	QueueSize int
	PingEvery time.Duration
}

func NewHandler(router *fanout.Router, em *events.Emitter, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		router:    router,
		em:        em,
		log:       log,
		QueueSize: DefaultQueueSize,
		PingEvery: DefaultPingEvery,
	}
}

func Routes(app fiber.Router, h *Handler) {
	app.Get("/ws/logs", ViewerMiddleware, h.Stream)
}

// Stream upgrades the request and serves the connection until it closes.
// @Summary Live log stream
// @Description WebSocket. Send `{"event":"subscribe","data":{"type":"latest"}}` or `{"event":"subscribe","data":{"type":"user","user_id":"..."}}`; receive `{"event":"log","data":{...}}` frames.
// @Tags Stream
// @Param authorization query string false "Viewer token"
// @Success 101 {string} string "Switching Protocols"
// @Failure 401 {object} errmsg._ViewerInvalidToken
// @Failure 503 {object} errmsg._StreamDraining
// @Router /ws/logs [get]
func (h *Handler) Stream(c fiber.Ctx) error {
	type requestCtxProvider interface {
		RequestCtx() *fasthttp.RequestCtx
	}

	provider, ok := any(c).(requestCtxProvider)
	if !ok {
		return fiber.ErrInternalServerError
	}

	var viewer Viewer
	_ = GetViewer(c, &viewer)
	remote := c.IP()

	return Upgrader.Upgrade(provider.RequestCtx(), func(sock *websocket.Conn) {
		h.serve(sock, viewer, remote)
	})
}

func (h *Handler) serve(sock *websocket.Conn, viewer Viewer, remote string) {
	conn := newConn(sock, h.QueueSize, h.log)
	go conn.writeLoop(h.PingEvery)

	h.log.Info("viewer connected", zap.String("conn", conn.ID()), zap.String("remote", remote))
	h.em.ViewerConnected(conn.ID(), viewer.UserID, remote)

	ctx, cancel := context.WithCancel(context.Background())

	reason := "client closed"
	defer func() {
		cancel()
		h.router.Leave(conn)
		conn.close()
		<-conn.done
		_ = sock.Close()

		h.log.Info("viewer disconnected", zap.String("conn", conn.ID()), zap.String("reason", reason))
		h.em.ViewerDisconnected(conn.ID(), viewer.UserID, reason)
	}()

	pongWait := 2 * h.pingEvery()
	sock.SetReadLimit(maxFrameSize)
	_ = sock.SetReadDeadline(time.Now().Add(pongWait))
	sock.SetPongHandler(func(string) error {
		return sock.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := sock.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				reason = err.Error()
			}
			return
		}
		_ = sock.SetReadDeadline(time.Now().Add(pongWait))

		h.handleFrame(ctx, conn, viewer, data)
	}
}

func (h *Handler) handleFrame(ctx context.Context, conn *Conn, viewer Viewer, data []byte) {
	topic, err := ResolveTopic(data, viewer)
	if err != nil {
		h.log.Debug("rejected client frame", zap.String("conn", conn.ID()), zap.Error(err))
		conn.Status(StatusError, err.Error())
		return
	}

	if err := h.router.Join(ctx, conn, topic); err != nil {
		conn.Status(StatusError, "could not load recent logs")
	}

	h.em.ViewerSubscribed(conn.ID(), viewer.UserID, topic)
	conn.Status(StatusInfo, "subscribed to "+topic)
}

func (h *Handler) pingEvery() time.Duration {
	if h.PingEvery <= 0 {
		return DefaultPingEvery
	}
	return h.PingEvery
}
