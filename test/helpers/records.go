package helpers

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"auditstream/internal/db"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RequireMongo exits the test binary early when no store is configured.
func RequireMongo() {
	if os.Getenv("MONGO_URI") == "" {
		fmt.Println("skipping integration tests: MONGO_URI is not set")
		os.Exit(0)
	}
}

// Record builds a stored audit document for user at ts.
func Record(user string, path string, code string, ts time.Time) bson.M {
	return bson.M{
		"_id":        primitive.NewObjectID(),
		"timestamp":  ts.UTC(),
		"path":       path,
		"method":     "GET",
		"ip":         "127.0.0.1",
		"blueprint":  "integration",
		"org_id":     "integration",
		"user_id":    user,
		"api_status": bson.M{"code": code, "message": "integration"},
	}
}

// InsertRecords writes docs to the live logs collection and removes every
// record of the same users when the test ends.
func InsertRecords(t *testing.T, docs ...bson.M) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users := bson.A{}
	batch := make([]interface{}, len(docs))
	for i, doc := range docs {
		batch[i] = doc
		users = append(users, doc["user_id"])
	}

	_, err := db.Logs.InsertMany(ctx, batch)
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_, _ = db.Logs.DeleteMany(ctx, bson.M{"user_id": bson.M{"$in": users}})
	})
}
