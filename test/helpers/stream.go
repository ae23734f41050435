package helpers

import (
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/fasthttp/websocket"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/require"
)

type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Serve runs app on a random local port and returns its address.
func Serve(app *fiber.App) (string, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", err
	}

	go func() {
		_ = app.Listener(ln, fiber.ListenConfig{DisableStartupMessage: true})
	}()

	return ln.Addr().String(), nil
}

// WaitFor polls cond until it holds or timeout passes.
func WaitFor(timeout time.Duration, cond func() bool) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	return cond()
}

// DialStream opens the logs push channel.
func DialStream(t *testing.T, addr string, query string) *websocket.Conn {
	t.Helper()

	target := "ws://" + addr + "/ws/logs"
	if query != "" {
		target += "?" + query
	}

	var (
		conn *websocket.Conn
		err  error
	)
	require.Eventually(t, func() bool {
		conn, _, err = websocket.DefaultDialer.Dial(target, nil)
		return err == nil
	}, 5*time.Second, 50*time.Millisecond)

	t.Cleanup(func() {
		if conn != nil {
			_ = conn.Close()
		}
	})
	return conn
}

func Subscribe(t *testing.T, conn *websocket.Conn, data map[string]string) {
	t.Helper()

	payload, err := json.Marshal(map[string]any{"event": "subscribe", "data": data})
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, payload))
}

// ReadUntil reads frames until match returns true or the timeout passes,
// returning every frame read.
func ReadUntil(t *testing.T, conn *websocket.Conn, timeout time.Duration, match func(Frame) bool) []Frame {
	t.Helper()

	var frames []Frame
	deadline := time.Now().Add(timeout)
	require.NoError(t, conn.SetReadDeadline(deadline))

	for {
		_, data, err := conn.ReadMessage()
		require.NoError(t, err, "no matching frame before deadline")

		var f Frame
		require.NoError(t, json.Unmarshal(data, &f))
		frames = append(frames, f)

		if match(f) {
			return frames
		}
	}
}
