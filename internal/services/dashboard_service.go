package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	resp "wtsplinks/internal/models/response_models"
	"wtsplinks/internal/repositories"
	"wtsplinks/pkg/utils"
)

const (
	dashboardDefaultDays = 30
	recentGroupsLimit    = 10
)

type DashboardService interface {
	BuildDashboard(ctx context.Context, rng resp.TimeRange) (*resp.DashboardReport, error)
}

type dashboardService struct {
	repo   repositories.DashboardRepository
	logger *zap.Logger
}

func NewDashboardService(repo repositories.DashboardRepository, logger *zap.Logger) DashboardService {
	return &dashboardService{repo: repo, logger: logger.Named("dashboard")}
}

// normalizeRange ensures sane defaults and ordering
func normalizeRange(r resp.TimeRange) resp.TimeRange {
	out := r
	if out.Interval == "" {
		out.Interval = "day"
	}
	if out.End.IsZero() {
		out.End = time.Now().UTC()
	}
	if out.Start.IsZero() {
		out.Start = out.End.AddDate(0, 0, -dashboardDefaultDays)
	}
	if out.Start.After(out.End) {
		out.Start, out.End = out.End, out.Start
	}
	return out
}

func toCountSeries(rows []repositories.BucketSum) resp.CountSeries {
	series := resp.CountSeries{Points: make([]resp.SeriesPoint, 0, len(rows))}
	for _, r := range rows {
		series.Points = append(series.Points, resp.SeriesPoint{Bucket: r.Bucket, Value: r.Sum})
		series.Total += r.Sum
	}
	return series
}

func (s *dashboardService) BuildDashboard(ctx context.Context, rng resp.TimeRange) (*resp.DashboardReport, error) {
	rng = normalizeRange(rng)
	report := &resp.DashboardReport{Range: rng}

	// ---------- Core counts ----------
	counts := []struct {
		name string
		dst  *int64
		fn   func(context.Context) (int64, error)
	}{
		{"total_accounts", &report.KPIs.TotalAccounts, s.repo.CountTotalAccounts},
		{"total_groups", &report.KPIs.TotalGroups, s.repo.CountTotalGroups},
		{"total_categories", &report.KPIs.TotalCategories, s.repo.CountTotalCategories},
		{"unindexed_groups", &report.KPIs.UnindexedGroups, s.repo.CountUnindexedGroups},
	}
	for _, c := range counts {
		n, err := c.fn(ctx)
		if err != nil {
			return nil, s.dbErr(c.name, err)
		}
		*c.dst = n
	}

	var err error
	if report.KPIs.NewAccounts, err = s.repo.CountNewAccounts(ctx, rng.Start, rng.End); err != nil {
		return nil, s.dbErr("new_accounts", err)
	}
	if report.KPIs.NewGroups, err = s.repo.CountNewGroups(ctx, rng.Start, rng.End); err != nil {
		return nil, s.dbErr("new_groups", err)
	}

	// ---------- Series ----------
	userRows, err := s.repo.NewUsersSeries(ctx, rng.Start, rng.End, rng.Interval, rng.Timezone)
	if err != nil {
		return nil, s.dbErr("new_users_series", err)
	}
	report.NewUsers = toCountSeries(userRows)

	groupRows, err := s.repo.NewGroupsSeries(ctx, rng.Start, rng.End, rng.Interval, rng.Timezone)
	if err != nil {
		return nil, s.dbErr("new_groups_series", err)
	}
	report.NewGroups = toCountSeries(groupRows)

	// ---------- Category mix ----------
	mixRows, err := s.repo.CategoryMix(ctx)
	if err != nil {
		return nil, s.dbErr("category_mix", err)
	}
	var categorised int64
	for _, r := range mixRows {
		categorised += r.Count
	}
	report.CategoryMix = make([]resp.CategoryMixItem, 0, len(mixRows))
	for _, r := range mixRows {
		id, err := uuid.Parse(r.CategoryID)
		if err != nil {
			return nil, s.dbErr("category_mix", err)
		}
		var pct float64
		if categorised > 0 {
			pct = float64(r.Count) * 100.0 / float64(categorised)
		}
		report.CategoryMix = append(report.CategoryMix, resp.CategoryMixItem{
			CategoryID:   id,
			CategoryName: r.CategoryName,
			Count:        r.Count,
			Percent:      pct,
		})
	}

	// ---------- Recent groups ----------
	recentRows, err := s.repo.RecentGroups(ctx, recentGroupsLimit)
	if err != nil {
		return nil, s.dbErr("recent_groups", err)
	}
	report.RecentGroups = make([]resp.RecentGroup, 0, len(recentRows))
	for _, r := range recentRows {
		id, err := uuid.Parse(r.ID)
		if err != nil {
			return nil, s.dbErr("recent_groups", err)
		}
		report.RecentGroups = append(report.RecentGroups, resp.RecentGroup{
			ID:           id,
			Name:         r.Name,
			Link:         r.Link,
			CategoryName: r.CategoryName,
			CreatedAt:    time.Unix(r.CreatedAt, 0).UTC(),
		})
	}

	return report, nil
}

func (s *dashboardService) dbErr(step string, err error) error {
	s.logger.Error("build dashboard", zap.String("step", step), zap.Error(err))
	return utils.ErrDatabaseError
}
