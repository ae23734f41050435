// Package users serves the viewer directory used to render display names.
package users

import (
	"context"
	"encoding/json"
	"time"

	"auditstream/internal/models"

	"go.uber.org/zap"
)

const cacheKeyPrefix = "directory:"

type Directory interface {
	DirectoryUsers(ctx context.Context, orgID string) ([]models.DirectoryEntry, error)
}

type Cache interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte, ttl time.Duration) error
}

type Service struct {
	dir   Directory
	cache Cache
	orgID string
	ttl   time.Duration
	log   *zap.Logger
}

// NewService builds the directory service. A nil cache or zero ttl disables
// caching.
func NewService(dir Directory, cache Cache, orgID string, ttl time.Duration, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{dir: dir, cache: cache, orgID: orgID, ttl: ttl, log: log}
}

func (s *Service) OrgID() string {
	return s.orgID
}

// List returns the organization's users with their display names.
func (s *Service) List(ctx context.Context) ([]models.DirectoryUser, error) {
	key := cacheKeyPrefix + s.orgID

	if cached, ok := s.fromCache(key); ok {
		return cached, nil
	}

	entries, err := s.dir.DirectoryUsers(ctx, s.orgID)
	if err != nil {
		return nil, err
	}

	users := make([]models.DirectoryUser, 0, len(entries))
	for _, e := range entries {
		users = append(users, models.DirectoryUser{ID: e.ID, Name: e.DisplayName()})
	}

	s.toCache(key, users)
	return users, nil
}

func (s *Service) fromCache(key string) ([]models.DirectoryUser, bool) {
	if s.cache == nil || s.ttl <= 0 {
		return nil, false
	}

	data, err := s.cache.Get(key)
	if err != nil {
		return nil, false
	}

	var users []models.DirectoryUser
	if err := json.Unmarshal(data, &users); err != nil {
		s.log.Warn("discarding unreadable directory cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return users, true
}

func (s *Service) toCache(key string, users []models.DirectoryUser) {
	if s.cache == nil || s.ttl <= 0 {
		return
	}

	data, err := json.Marshal(users)
	if err != nil {
		return
	}
	if err := s.cache.Set(key, data, s.ttl); err != nil {
		s.log.Debug("directory cache unavailable", zap.Error(err))
	}
}
