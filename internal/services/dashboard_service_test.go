package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	resp "wtsplinks/internal/models/response_models"
	"wtsplinks/internal/repositories"
	"wtsplinks/internal/services"
	"wtsplinks/pkg/utils"
)

func stubDashboardCounts(repo *MockDashboardRepository) {
	repo.On("CountTotalAccounts", mock.Anything).Return(int64(12), nil)
	repo.On("CountTotalGroups", mock.Anything).Return(int64(40), nil)
	repo.On("CountTotalCategories", mock.Anything).Return(int64(3), nil)
	repo.On("CountUnindexedGroups", mock.Anything).Return(int64(5), nil)
	repo.On("CountNewAccounts", mock.Anything, mock.Anything, mock.Anything).Return(int64(2), nil)
	repo.On("CountNewGroups", mock.Anything, mock.Anything, mock.Anything).Return(int64(9), nil)
}

func TestBuildDashboard(t *testing.T) {
	repo := new(MockDashboardRepository)
	svc := services.NewDashboardService(repo, zap.NewNop())

	end := time.Date(2025, 10, 19, 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, 0, -7)
	day := time.Date(2025, 10, 18, 0, 0, 0, 0, time.UTC)
	techID, sportsID, groupID := uuid.New(), uuid.New(), uuid.New()

	stubDashboardCounts(repo)
	repo.On("NewUsersSeries", mock.Anything, start, end, "week", "").
		Return([]repositories.BucketSum{{Bucket: day, Sum: 2}}, nil)
	repo.On("NewGroupsSeries", mock.Anything, start, end, "week", "").
		Return([]repositories.BucketSum{{Bucket: day, Sum: 4}, {Bucket: end, Sum: 5}}, nil)
	repo.On("CategoryMix", mock.Anything).Return([]repositories.CategoryMixRow{
		{CategoryID: techID.String(), CategoryName: "Tech", Count: 30},
		{CategoryID: sportsID.String(), CategoryName: "Sports", Count: 10},
	}, nil)
	repo.On("RecentGroups", mock.Anything, 10).Return([]repositories.RecentGroupRow{
		{ID: groupID.String(), Name: "Gophers", Link: "https://chat.whatsapp.com/x", CategoryName: "Tech", CreatedAt: day.Unix()},
	}, nil)

	// Reversed bounds are swapped.
	report, err := svc.BuildDashboard(context.Background(), resp.TimeRange{Start: end, End: start, Interval: "week"})
	require.NoError(t, err)

	assert.Equal(t, start, report.Range.Start)
	assert.Equal(t, end, report.Range.End)
	assert.Equal(t, resp.KPIBlock{
		TotalAccounts: 12, NewAccounts: 2, TotalGroups: 40, NewGroups: 9, TotalCategories: 3, UnindexedGroups: 5,
	}, report.KPIs)
	assert.Equal(t, int64(9), report.NewGroups.Total)
	assert.Len(t, report.NewUsers.Points, 1)

	require.Len(t, report.CategoryMix, 2)
	assert.Equal(t, techID, report.CategoryMix[0].CategoryID)
	assert.InDelta(t, 75.0, report.CategoryMix[0].Percent, 0.001)
	assert.InDelta(t, 25.0, report.CategoryMix[1].Percent, 0.001)

	require.Len(t, report.RecentGroups, 1)
	assert.Equal(t, groupID, report.RecentGroups[0].ID)
	assert.Equal(t, day, report.RecentGroups[0].CreatedAt)
}

func TestBuildDashboard_DefaultRange(t *testing.T) {
	repo := new(MockDashboardRepository)
	svc := services.NewDashboardService(repo, zap.NewNop())

	stubDashboardCounts(repo)
	repo.On("NewUsersSeries", mock.Anything, mock.Anything, mock.Anything, "day", "").Return([]repositories.BucketSum{}, nil)
	repo.On("NewGroupsSeries", mock.Anything, mock.Anything, mock.Anything, "day", "").Return([]repositories.BucketSum{}, nil)
	repo.On("CategoryMix", mock.Anything).Return([]repositories.CategoryMixRow{{CategoryID: uuid.NewString(), Count: 0}}, nil)
	repo.On("RecentGroups", mock.Anything, 10).Return([]repositories.RecentGroupRow{}, nil)

	report, err := svc.BuildDashboard(context.Background(), resp.TimeRange{})
	require.NoError(t, err)

	assert.Equal(t, "day", report.Range.Interval)
	assert.WithinDuration(t, report.Range.End.AddDate(0, 0, -30), report.Range.Start, time.Second)
	assert.Zero(t, report.CategoryMix[0].Percent)
	assert.NotNil(t, report.RecentGroups)
}

func TestBuildDashboard_DatabaseError(t *testing.T) {
	repo := new(MockDashboardRepository)
	svc := services.NewDashboardService(repo, zap.NewNop())

	repo.On("CountTotalAccounts", mock.Anything).Return(int64(0), errors.New("connection reset"))

	_, err := svc.BuildDashboard(context.Background(), resp.TimeRange{})
	assert.ErrorIs(t, err, utils.ErrDatabaseError)
	repo.AssertNotCalled(t, "CategoryMix", mock.Anything)
}
