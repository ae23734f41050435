package stream

import (
	"encoding/json"
	"net/url"
	"testing"
	"time"

	"auditstream/internal/env"
	"auditstream/internal/models"
	"auditstream/internal/ws"
	"auditstream/test/helpers"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const waitForFrame = 10 * time.Second

func isStatus(f helpers.Frame) bool {
	return f.Event == ws.EventStatus
}

func isRecord(id primitive.ObjectID) func(helpers.Frame) bool {
	return func(f helpers.Frame) bool {
		if f.Event != "log" {
			return false
		}
		var rec models.ProjectedRecord
		return json.Unmarshal(f.Data, &rec) == nil && rec.ID == id.Hex()
	}
}

func TestBroadcastReplaysThenStreams(t *testing.T) {
	conn := helpers.DialStream(t, addr, "")

	helpers.Subscribe(t, conn, map[string]string{"type": "latest"})
	replay := helpers.ReadUntil(t, conn, waitForFrame, isStatus)
	require.LessOrEqual(t, len(replay)-1, 10)

	user := uuid.NewString()
	doc := helpers.Record(user, "/live", "200", time.Now())
	helpers.InsertRecords(t, doc)

	frames := helpers.ReadUntil(t, conn, waitForFrame, isRecord(doc["_id"].(primitive.ObjectID)))
	require.NotEmpty(t, frames)
}

func TestUserTopicOnlyGetsOwnRecords(t *testing.T) {
	conn := helpers.DialStream(t, addr, "")

	user := uuid.NewString()
	other := uuid.NewString()

	helpers.Subscribe(t, conn, map[string]string{"type": "user", "user_id": user})
	helpers.ReadUntil(t, conn, waitForFrame, isStatus)

	foreign := helpers.Record(other, "/foreign", "200", time.Now())
	own := helpers.Record(user, "/own", "200", time.Now())
	helpers.InsertRecords(t, foreign)
	helpers.InsertRecords(t, own)

	frames := helpers.ReadUntil(t, conn, waitForFrame, isRecord(own["_id"].(primitive.ObjectID)))
	for _, f := range frames {
		require.False(t, isRecord(foreign["_id"].(primitive.ObjectID))(f))
	}
}

func TestViewerTokenChoosesUser(t *testing.T) {

	user := uuid.NewString()
	token := (&ws.Viewer{UserID: user}).GenToken(env.JWT_SECRET, time.Hour)
	conn := helpers.DialStream(t, addr, url.Values{"authorization": {token}}.Encode())

	helpers.Subscribe(t, conn, map[string]string{"type": "user", "user_id": "someone-else"})
	status := helpers.ReadUntil(t, conn, waitForFrame, isStatus)
	require.Contains(t, string(status[len(status)-1].Data), "user:"+user)
}

func TestRejectsUnknownSubscription(t *testing.T) {
	conn := helpers.DialStream(t, addr, "")

	helpers.Subscribe(t, conn, map[string]string{"type": "everything"})
	frames := helpers.ReadUntil(t, conn, waitForFrame, isStatus)
	require.Contains(t, string(frames[len(frames)-1].Data), `"type":"error"`)
}
