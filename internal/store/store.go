// Package store adapts the MongoDB audit log and user collections to the
// ordered, filtered and aggregate reads the service needs.
package store

import (
	"context"
	"time"

	"auditstream/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Store is stateless and safe for concurrent use.
type Store struct {
	logs  *mongo.Collection
	users *mongo.Collection
}

func New(logs *mongo.Collection, users *mongo.Collection) *Store {
	return &Store{logs: logs, users: users}
}

// EnsureIndexes creates the read indexes. Failures are logged and skipped,
// the service only loses query speed without them.
func (s *Store) EnsureIndexes(ctx context.Context, log *zap.Logger) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("idx_logs_timestamp"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("idx_logs_user_timestamp"),
		},
		{
			Keys:    bson.D{{Key: "org_id", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("idx_logs_org_timestamp"),
		},
	}

	if _, err := s.logs.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Warn("skipping index creation", zap.Error(err))
		return
	}
	log.Info("indexes ensured", zap.Int("count", len(indexes)))
}

// Latest returns the record with the highest identifier, or nil when the
// collection is empty.
func (s *Store) Latest(ctx context.Context) (*models.ActivityRecord, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: -1}})

	var rec models.ActivityRecord
	err := s.logs.FindOne(ctx, bson.M{}, opts).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// After returns every record inserted after cursor, oldest first. A nil
// cursor returns the whole collection.
func (s *Store) After(ctx context.Context, cursor *primitive.ObjectID) ([]models.ActivityRecord, error) {
	filter := bson.M{}
	if cursor != nil {
		filter["_id"] = bson.M{"$gt": *cursor}
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	return s.find(ctx, filter, opts)
}

// Recent returns the n most recent records by timestamp, newest first.
func (s *Store) Recent(ctx context.Context, n int64) ([]models.ActivityRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(n)
	return s.find(ctx, bson.M{}, opts)
}

// Find runs a filtered retrieval.
func (s *Store) Find(ctx context.Context, f LogFilter) ([]models.ActivityRecord, error) {
	dir := -1
	if f.Ascending {
		dir = 1
	}

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: dir}})
	if f.Limit > 0 {
		opts.SetLimit(f.Limit)
	}

	return s.find(ctx, f.Query(), opts)
}

func (s *Store) find(ctx context.Context, filter any, opts *options.FindOptions) ([]models.ActivityRecord, error) {
	cursor, err := s.logs.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []models.ActivityRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ReportFacets computes the KPI, top endpoint and error breakdown facets for
// records at or after since, in one aggregation.
func (s *Store) ReportFacets(ctx context.Context, since time.Time, sig models.LoginSignature) (Facets, error) {
	cursor, err := s.logs.Aggregate(ctx, ReportPipeline(since, sig))
	if err != nil {
		return Facets{}, err
	}
	defer cursor.Close(ctx)

	var results []Facets
	if err := cursor.All(ctx, &results); err != nil {
		return Facets{}, err
	}
	if len(results) == 0 {
		return Facets{}, nil
	}
	return results[0], nil
}

// HourlyActivity counts records at or after since per UTC hour of day.
func (s *Store) HourlyActivity(ctx context.Context, since time.Time) ([]HourBucket, error) {
	cursor, err := s.logs.Aggregate(ctx, HourlyPipeline(since))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	buckets := []HourBucket{}
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, err
	}
	return buckets, nil
}

// DirectoryUsers lists enabled users of an organization.
func (s *Store) DirectoryUsers(ctx context.Context, orgID string) ([]models.DirectoryEntry, error) {
	filter := bson.M{
		"$or":         idVariants("org_id", orgID),
		"is_disabled": bson.M{"$ne": "Y"},
	}
	opts := options.Find().SetProjection(bson.M{
		"_id":        1,
		"username":   1,
		"first_name": 1,
		"last_name":  1,
		"email":      1,
	})

	cursor, err := s.users.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []models.DirectoryEntry{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// idVariants matches a field holding id either as a string or as an ObjectID.
func idVariants(field string, id string) bson.A {
	variants := bson.A{bson.M{field: id}}
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		variants = append(variants, bson.M{field: oid})
	}
	return variants
}
