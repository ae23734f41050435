package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var testSig = LoginSignature{Path: "/auth/v1/POSTuserauth", Method: "POST"}

func decode(t *testing.T, doc any) ActivityRecord {
	t.Helper()

	data, err := bson.Marshal(doc)
	require.NoError(t, err)

	var rec ActivityRecord
	require.NoError(t, bson.Unmarshal(data, &rec))
	return rec
}

func TestProjectFullRecord(t *testing.T) {
	id := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	ts := time.Date(2024, 1, 1, 10, 30, 0, 123000000, time.UTC)

	rec := decode(t, bson.M{
		"_id":       id,
		"timestamp": ts,
		"path":      "/auth/v1/POSTuserauth",
		"method":    "POST",
		"ip":        "10.0.0.1",
		"blueprint": "auth",
		"org_id":    "org-1",
		"user_id":   userID,
		"api_status": bson.M{
			"message": "ok",
			"code":    "200",
		},
	})

	p := Project(rec, testSig)
	require.Equal(t, id.Hex(), p.ID)
	require.Equal(t, "2024-01-01T10:30:00.123Z", p.Timestamp)
	require.Equal(t, "/auth/v1/POSTuserauth", p.Path)
	require.Equal(t, "POST", p.Method)
	require.Equal(t, "10.0.0.1", p.IP)
	require.Equal(t, "auth", p.Blueprint)
	require.Equal(t, "org-1", p.OrgID)
	require.Equal(t, userID.Hex(), p.UserID)
	require.True(t, p.IsLoginEvent)
	require.Equal(t, "ok", p.Message)
	require.Equal(t, "200", p.Code)
}

func TestProjectMissingFields(t *testing.T) {
	rec := decode(t, bson.M{"_id": primitive.NewObjectID()})

	p := Project(rec, testSig)
	require.Empty(t, p.Timestamp)
	require.Empty(t, p.Path)
	require.Empty(t, p.UserID)
	require.Empty(t, p.Message)
	require.Empty(t, p.Code)
	require.False(t, p.IsLoginEvent)
}

func TestProjectCoercesOddTypes(t *testing.T) {
	rec := decode(t, bson.M{
		"_id":        "custom-id",
		"timestamp":  "not a date",
		"user_id":    nil,
		"org_id":     int32(42),
		"api_status": bson.M{"code": int64(503), "message": nil},
	})

	p := Project(rec, testSig)
	require.Equal(t, "custom-id", p.ID)
	require.Equal(t, "not a date", p.Timestamp)
	require.Empty(t, p.UserID)
	require.Equal(t, "42", p.OrgID)
	require.Equal(t, "503", p.Code)
	require.Empty(t, p.Message)
}

func TestProjectLoginNeedsPathAndMethod(t *testing.T) {
	rec := ActivityRecord{Path: testSig.Path, Method: "GET"}
	require.False(t, Project(rec, testSig).IsLoginEvent)

	rec.Method = "POST"
	require.True(t, Project(rec, testSig).IsLoginEvent)
}

func TestProjectIsIdempotent(t *testing.T) {
	rec := decode(t, bson.M{
		"_id":        primitive.NewObjectID(),
		"timestamp":  time.Now(),
		"path":       "/x",
		"api_status": bson.M{"code": "404"},
	})

	require.Equal(t, Project(rec, testSig), Project(rec, testSig))
}

func TestIsErrorCodeComparesLexically(t *testing.T) {
	require.True(t, IsErrorCode("400"))
	require.True(t, IsErrorCode("503"))
	require.False(t, IsErrorCode("200"))
	require.False(t, IsErrorCode(""))
	// lexical ordering quirk kept on purpose
	require.True(t, IsErrorCode("99"))
}

func TestDisplayName(t *testing.T) {
	require.Equal(t, "jdoe", DirectoryEntry{ID: "1", Username: "jdoe", FirstName: "John"}.DisplayName())
	require.Equal(t, "John Doe", DirectoryEntry{ID: "1", FirstName: "John", LastName: "Doe"}.DisplayName())
	require.Equal(t, "Doe", DirectoryEntry{ID: "1", LastName: "Doe"}.DisplayName())
	require.Equal(t, "j@x.io", DirectoryEntry{ID: "1", Email: "j@x.io"}.DisplayName())
	require.Equal(t, "1", DirectoryEntry{ID: "1"}.DisplayName())
}
