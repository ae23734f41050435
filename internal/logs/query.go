// Package logs serves filtered retrieval of audit records.
package logs

import (
	"context"
	"strconv"
	"strings"
	"time"

	"auditstream/internal/models"
	"auditstream/internal/store"
)

const DefaultLimit = 50

// boundaryLayouts are tried in order; layouts without a zone are read as UTC.
var boundaryLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

type Finder interface {
	Find(ctx context.Context, f store.LogFilter) ([]models.ActivityRecord, error)
}

type Service struct {
	finder Finder
	login  models.LoginSignature
}

func NewService(finder Finder, login models.LoginSignature) *Service {
	return &Service{finder: finder, login: login}
}

// ListRecords returns the projected records matching f. It never writes.
func (s *Service) ListRecords(ctx context.Context, f store.LogFilter) ([]models.ProjectedRecord, error) {
	records, err := s.finder.Find(ctx, f)
	if err != nil {
		return nil, err
	}
	return models.ProjectAll(records, s.login), nil
}

// Params are the raw query string values of a retrieval request.
type Params struct {
	UserID    string
	StartDate string
	EndDate   string
	Limit     string
	Order     string
}

// Filter turns request parameters into a store filter. Malformed values
// fall back to their defaults instead of failing the request.
func (p Params) Filter() store.LogFilter {
	f := store.LogFilter{
		UserID:    strings.TrimSpace(p.UserID),
		Limit:     DefaultLimit,
		Ascending: strings.EqualFold(strings.TrimSpace(p.Order), "asc"),
	}

	if start, ok := ParseBoundary(p.StartDate); ok {
		f.Start = &start
	}
	if end, ok := ParseBoundary(p.EndDate); ok {
		end = EndOfDay(end)
		f.End = &end
	}

	if limit, err := strconv.ParseInt(strings.TrimSpace(p.Limit), 10, 64); err == nil && limit > 0 {
		f.Limit = limit
	}

	return f
}

// ParseBoundary reads an ISO-8601 date or datetime as a UTC instant.
func ParseBoundary(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range boundaryLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// EndOfDay widens t to the last microsecond of its UTC day.
func EndOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999000, time.UTC)
}
