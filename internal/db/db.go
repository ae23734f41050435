package db

import (
	"context"
	"fmt"
	"time"

	"auditstream/internal/env"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var Ctx = context.Background()
var RDB *redis.Client
var Client *mongo.Client

var Logs *mongo.Collection
var Users *mongo.Collection
var Events *mongo.Collection

func InitDB() error {
	var err error

	Client, err = mongo.Connect(
		Ctx,
		options.Client().
			ApplyURI(env.MONGO_URI).
			SetServerSelectionTimeout(10*time.Second),
	)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(Ctx, 10*time.Second)
	defer cancel()

	if err = Client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("could not connect to mongodb: %w", err)
	}

	// loading collections
	Logs = GetCollection(env.MONGO_DB, env.LOGS_COLLECTION, Client)
	Users = GetCollection(env.MONGO_DB, env.USERS_COLLECTION, Client)
	Events = GetCollection(env.MONGO_DB, env.EVENTS_COLLECTION, Client)

	return nil
}

func GetCollection(database string, collectionName string, client *mongo.Client) *mongo.Collection {
	return client.Database(database).Collection(collectionName)
}

// InitCache connects to redis. The cache is optional: callers treat a nil RDB
// as "no cache".
func InitCache() error {
	RDB = redis.NewClient(&redis.Options{
		Addr:     env.REDIS_ADDR,
		Password: env.REDIS_PASSWORD,
		DB:       env.REDIS_DB,
	})

	if err := RDB.Ping(Ctx).Err(); err != nil {
		_ = RDB.Close()
		RDB = nil
		return fmt.Errorf("could not connect to redis: %w", err)
	}

	return nil
}

func CacheSetBytes(key string, value []byte, ttl time.Duration) error {
	if RDB == nil {
		return redis.Nil
	}
	return RDB.Set(Ctx, key, value, ttl).Err()
}

func CacheGetBytes(key string) ([]byte, error) {
	if RDB == nil {
		return nil, redis.Nil
	}
	return RDB.Get(Ctx, key).Bytes()
}

// Close releases the mongo and redis connections.
func Close(ctx context.Context) {
	if RDB != nil {
		_ = RDB.Close()
	}
	if Client != nil {
		_ = Client.Disconnect(ctx)
	}
}

// RedisCache exposes the package cache helpers as a value.
type RedisCache struct{}

func (RedisCache) Get(key string) ([]byte, error) {
	return CacheGetBytes(key)
}

func (RedisCache) Set(key string, value []byte, ttl time.Duration) error {
	return CacheSetBytes(key, value, ttl)
}
