// Package report assembles the dashboard report from the store's facet and
// hourly aggregations.
package report

import (
	"context"
	"fmt"
	"math"
	"time"

	"auditstream/internal/models"
	"auditstream/internal/store"
)

// HoursPerDay is the fixed length of the activity histogram.
const HoursPerDay = 24

type Aggregator interface {
	ReportFacets(ctx context.Context, since time.Time, sig models.LoginSignature) (store.Facets, error)
	HourlyActivity(ctx context.Context, since time.Time) ([]store.HourBucket, error)
}

type Service struct {
	agg   Aggregator
	login models.LoginSignature
	now   func() time.Time
}

func NewService(agg Aggregator, login models.LoginSignature) *Service {
	return &Service{agg: agg, login: login, now: time.Now}
}

// Windows returns the KPI window start (UTC midnight) and the histogram
// window start (24 hours ago). Near midnight the two disagree; that is
// expected.
func Windows(now time.Time) (dayStart time.Time, trailing time.Time) {
	now = now.UTC()
	dayStart = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	trailing = now.Add(-HoursPerDay * time.Hour)
	return dayStart, trailing
}

// DashboardReport computes the report fresh. Any store failure fails the
// whole report.
func (s *Service) DashboardReport(ctx context.Context) (models.DashboardReport, error) {
	dayStart, trailing := Windows(s.now())

	facets, err := s.agg.ReportFacets(ctx, dayStart, s.login)
	if err != nil {
		return models.DashboardReport{}, fmt.Errorf("report facets: %w", err)
	}

	hourly, err := s.agg.HourlyActivity(ctx, trailing)
	if err != nil {
		return models.DashboardReport{}, fmt.Errorf("hourly activity: %w", err)
	}

	return Build(facets, hourly), nil
}

// Build shapes aggregation output into the wire report.
func Build(facets store.Facets, hourly []store.HourBucket) models.DashboardReport {
	kpis := facets.KPIs()

	return models.DashboardReport{
		KPIs: models.KPIs{
			UniqueUsersToday: kpis.UniqueUsers,
			TotalApiCalls:    kpis.TotalCalls,
			ErrorRate:        ErrorRate(kpis.TotalErrors, kpis.TotalCalls),
			TotalLogins:      kpis.TotalLogins,
		},
		Charts: models.Charts{
			ActivityOverTime: HourlySeries(hourly),
			TopEndpoints:     bucketSeries(facets.TopEndpoints),
			ErrorBreakdown:   bucketSeries(facets.ErrorBreakdown),
		},
	}
}

// ErrorRate is errors/calls as a percentage rounded to 2 decimals, 0 when
// there were no calls.
func ErrorRate(errors int64, calls int64) float64 {
	if calls <= 0 {
		return 0
	}
	rate := float64(errors) / float64(calls) * 100
	return math.Round(rate*100) / 100
}

// HourlySeries expands sparse hour buckets into a dense 0..23 series.
func HourlySeries(buckets []store.HourBucket) models.Series {
	series := models.Series{
		Labels: make([]string, HoursPerDay),
		Values: make([]int64, HoursPerDay),
	}
	for h := 0; h < HoursPerDay; h++ {
		series.Labels[h] = fmt.Sprintf("%d:00", h)
	}
	for _, b := range buckets {
		if b.Hour < 0 || b.Hour >= HoursPerDay {
			continue
		}
		series.Values[b.Hour] += b.Count
	}
	return series
}

func bucketSeries(buckets []store.Bucket) models.Series {
	series := models.Series{
		Labels: make([]string, 0, len(buckets)),
		Values: make([]int64, 0, len(buckets)),
	}
	for _, b := range buckets {
		series.Labels = append(series.Labels, b.Label)
		series.Values = append(series.Values, b.Count)
	}
	return series
}
