package ws

import (
	"encoding/json"

	"auditstream/internal/env"
	"auditstream/internal/errmsg"

	githubws "github.com/fasthttp/websocket"
	"github.com/valyala/fasthttp"
)

const (
	EventStatus    = "status"
	EventSubscribe = "subscribe"

	StatusInfo  = "info"
	StatusError = "error"
)

// Upgrader upgrades HTTP connections to WebSocket connections.
var Upgrader = githubws.FastHTTPUpgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(ctx *fasthttp.RequestCtx) bool {
		// In drain mode, reject new WebSocket connections with 503
		if env.DRAIN_MODE {
			ctx.SetStatusCode(errmsg.StreamDraining.StatusCode)
			ctx.SetBodyString(`{"message": "` + errmsg.StreamDraining.Message + `"}`)
			return false
		}
		return true
	},
}

type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type statusData struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// encodeFrame wraps an already encoded payload in the event envelope.
func encodeFrame(event string, data []byte) ([]byte, error) {
	if len(data) == 0 {
		data = []byte("null")
	}
	return json.Marshal(frame{Event: event, Data: data})
}

func encodeStatus(status string, message string) ([]byte, error) {
	data, err := json.Marshal(statusData{Type: status, Message: message})
	if err != nil {
		return nil, err
	}
	return encodeFrame(EventStatus, data)
}
