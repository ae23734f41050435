package ws

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"auditstream/internal/env"

	githubws "github.com/fasthttp/websocket"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestResolveTopic(t *testing.T) {
	cases := []struct {
		name   string
		frame  string
		viewer Viewer
		topic  string
		err    error
	}{
		{"latest", `{"event":"subscribe","data":{"type":"latest"}}`, Viewer{}, "latest", nil},
		{"user from payload", `{"event":"subscribe","data":{"type":"user","user_id":"u1"}}`, Viewer{}, "user:u1", nil},
		{"token overrides payload", `{"event":"subscribe","data":{"type":"user","user_id":"u1"}}`, Viewer{UserID: "u2"}, "user:u2", nil},
		{"token without payload user", `{"event":"subscribe","data":{"type":"user"}}`, Viewer{UserID: "u2"}, "user:u2", nil},
		{"user missing", `{"event":"subscribe","data":{"type":"user"}}`, Viewer{}, "", ErrMissingUser},
		{"unknown type", `{"event":"subscribe","data":{"type":"all"}}`, Viewer{}, "", ErrUnknownTopicType},
		{"no data", `{"event":"subscribe"}`, Viewer{}, "", ErrUnknownTopicType},
		{"unknown event", `{"event":"unsubscribe","data":{"type":"latest"}}`, Viewer{}, "", ErrUnknownEvent},
		{"not json", `subscribe latest`, Viewer{}, "", ErrMalformedFrame},
		{"bad data", `{"event":"subscribe","data":"latest"}`, Viewer{}, "", ErrMalformedFrame},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			topic, err := ResolveTopic([]byte(tc.frame), tc.viewer)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.topic, topic)
		})
	}
}

type fakeSocket struct {
	mu       sync.Mutex
	messages [][]byte
	types    []int
	pings    int
	closed   bool
	failNext bool
}

func (s *fakeSocket) WriteMessage(messageType int, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failNext {
		return errors.New("broken pipe")
	}
	s.types = append(s.types, messageType)
	s.messages = append(s.messages, append([]byte(nil), data...))
	return nil
}

func (s *fakeSocket) WriteControl(messageType int, data []byte, deadline time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pings++
	return nil
}

func (s *fakeSocket) SetWriteDeadline(time.Time) error { return nil }

func (s *fakeSocket) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *fakeSocket) textFrames() []frame {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []frame
	for i, m := range s.messages {
		if s.types[i] != githubws.TextMessage {
			continue
		}
		var f frame
		if err := json.Unmarshal(m, &f); err == nil {
			out = append(out, f)
		}
	}
	return out
}

func TestConnWritesQueuedFramesInOrder(t *testing.T) {
	sock := &fakeSocket{}
	conn := newConn(sock, 8, zap.NewNop())
	require.NotEmpty(t, conn.ID())

	require.NoError(t, conn.Send("log", []byte(`{"_id":"1"}`)))
	require.NoError(t, conn.Send("log", []byte(`{"_id":"2"}`)))
	conn.Status(StatusInfo, "hello")

	go conn.writeLoop(time.Hour)
	conn.close()
	<-conn.done

	frames := sock.textFrames()
	require.Len(t, frames, 3)
	require.Equal(t, "log", frames[0].Event)
	require.JSONEq(t, `{"_id":"1"}`, string(frames[0].Data))
	require.JSONEq(t, `{"_id":"2"}`, string(frames[1].Data))
	require.Equal(t, EventStatus, frames[2].Event)
	require.JSONEq(t, `{"type":"info","message":"hello"}`, string(frames[2].Data))

	sock.mu.Lock()
	last := sock.types[len(sock.types)-1]
	sock.mu.Unlock()
	require.Equal(t, githubws.CloseMessage, last)
}

func TestConnSendNeverBlocks(t *testing.T) {
	conn := newConn(&fakeSocket{}, 2, zap.NewNop())

	require.NoError(t, conn.Send("log", []byte(`{}`)))
	require.NoError(t, conn.Send("log", []byte(`{}`)))
	require.ErrorIs(t, conn.Send("log", []byte(`{}`)), errQueueFull)
}

func TestConnRejectsAfterClose(t *testing.T) {
	conn := newConn(&fakeSocket{}, 2, zap.NewNop())
	conn.close()
	conn.close()

	require.ErrorIs(t, conn.Send("log", []byte(`{}`)), errConnClosed)
}

func TestConnWriteFailureClosesSocket(t *testing.T) {
	sock := &fakeSocket{failNext: true}
	conn := newConn(sock, 4, zap.NewNop())

	go conn.writeLoop(time.Hour)
	require.NoError(t, conn.Send("log", []byte(`{}`)))

	select {
	case <-conn.done:
	case <-time.After(2 * time.Second):
		t.Fatal("writer did not stop")
	}

	sock.mu.Lock()
	defer sock.mu.Unlock()
	require.True(t, sock.closed)
}

func TestConnPingsWhileIdle(t *testing.T) {
	sock := &fakeSocket{}
	conn := newConn(sock, 4, zap.NewNop())

	go conn.writeLoop(10 * time.Millisecond)
	require.Eventually(t, func() bool {
		sock.mu.Lock()
		defer sock.mu.Unlock()
		return sock.pings >= 2
	}, 2*time.Second, 5*time.Millisecond)

	conn.close()
	<-conn.done
}

func TestViewerTokenRoundTrip(t *testing.T) {
	secret := []byte("secret")
	token := (&Viewer{UserID: "u1"}).GenToken(secret, time.Hour)

	var v Viewer
	require.NoError(t, v.ParseToken(token, secret))
	require.Equal(t, "u1", v.UserID)

	var wrong Viewer
	require.Error(t, wrong.ParseToken(token, []byte("other")))
	require.Empty(t, wrong.UserID)
}

func TestViewerTokenExpired(t *testing.T) {
	secret := []byte("secret")
	token := (&Viewer{UserID: "u1"}).GenToken(secret, -time.Hour)

	var v Viewer
	require.Error(t, v.ParseToken(token, secret))
}

func viewerApp() *fiber.App {
	app := fiber.New()
	app.Get("/whoami", ViewerMiddleware, func(c fiber.Ctx) error {
		var v Viewer
		if err := GetViewer(c, &v); err != nil {
			return err
		}
		return c.SendString(v.UserID)
	})
	return app
}

func TestViewerMiddleware(t *testing.T) {
	env.JWT_SECRET = []byte("middleware-secret")
	token := (&Viewer{UserID: "u9"}).GenToken(env.JWT_SECRET, time.Hour)
	app := viewerApp()

	read := func(req *http.Request) (int, string) {
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, string(body)
	}

	status, body := read(httptest.NewRequest(http.MethodGet, "/whoami", nil))
	require.Equal(t, http.StatusOK, status)
	require.Empty(t, body)

	status, body = read(httptest.NewRequest(http.MethodGet, "/whoami?authorization="+token, nil))
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "u9", body)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	status, body = read(req)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "u9", body)

	status, _ = read(httptest.NewRequest(http.MethodGet, "/whoami?authorization=garbage", nil))
	require.Equal(t, http.StatusUnauthorized, status)
}
