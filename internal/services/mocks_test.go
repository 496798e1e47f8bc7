package services_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/mock"

	"wtsplinks/internal/ingest"
	"wtsplinks/internal/models/db_models"
	"wtsplinks/internal/repositories"
)

// --- Mocks ---

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) InsertTx(account *db_models.Account, ctx context.Context) error {
	args := m.Called(account, ctx)
	return args.Error(0)
}

func (m *MockAccountRepository) FindById(ctx context.Context, id string) (*db_models.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByEmail(ctx context.Context, email string) (*db_models.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockAccountRepository) List(ctx context.Context, page, pageSize int) ([]db_models.Account, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]db_models.Account), args.Error(1)
}

type MockMailService struct {
	mock.Mock
}

func (m *MockMailService) SendPasswordResetCode(to, code string, validFor time.Duration) error {
	args := m.Called(to, code, validFor)
	return args.Error(0)
}

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) FindByAccountID(ctx context.Context, accountID uuid.UUID) (*db_models.Profile, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.Profile), args.Error(1)
}

func (m *MockProfileRepository) Upsert(ctx context.Context, profile *db_models.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) FindByEmail(ctx context.Context, email string) (*db_models.Admin, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.Admin), args.Error(1)
}

func (m *MockAdminRepository) Create(ctx context.Context, admin *db_models.Admin) error {
	args := m.Called(ctx, admin)
	return args.Error(0)
}

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) CreateCategory(ctx context.Context, category *db_models.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, category *db_models.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetCategoryByID(ctx context.Context, id uuid.UUID) (*db_models.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetCategoryByName(ctx context.Context, name string) (*db_models.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context) ([]db_models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]db_models.Category), args.Error(1)
}

func (m *MockCategoryRepository) CountGroups(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type MockGroupRepository struct {
	mock.Mock
}

func (m *MockGroupRepository) CreateGroup(ctx context.Context, group *db_models.Group) (uuid.UUID, error) {
	args := m.Called(ctx, group)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockGroupRepository) UpdateGroup(ctx context.Context, group *db_models.Group) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockGroupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGroupRepository) GetByID(ctx context.Context, id uuid.UUID) (*db_models.Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.Group), args.Error(1)
}

func (m *MockGroupRepository) List(ctx context.Context, categoryID *uuid.UUID, page, pageSize int) ([]db_models.Group, error) {
	args := m.Called(ctx, categoryID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]db_models.Group), args.Error(1)
}

func (m *MockGroupRepository) SearchText(ctx context.Context, query string, limit int) ([]db_models.Group, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]db_models.Group), args.Error(1)
}

func (m *MockGroupRepository) ListWithoutEmbedding(ctx context.Context, model string, limit int) ([]db_models.Group, error) {
	args := m.Called(ctx, model, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]db_models.Group), args.Error(1)
}

func (m *MockGroupRepository) InsertRecord(ctx context.Context, table string, record ingest.Record) error {
	args := m.Called(ctx, table, record)
	return args.Error(0)
}

type MockGroupEmbeddingRepository struct {
	mock.Mock
}

func (m *MockGroupEmbeddingRepository) Upsert(ctx context.Context, embedding *db_models.GroupEmbedding) error {
	args := m.Called(ctx, embedding)
	return args.Error(0)
}

func (m *MockGroupEmbeddingRepository) SearchByVector(ctx context.Context, vector pgvector.Vector, model string, limit int) ([]repositories.GroupMatch, error) {
	args := m.Called(ctx, vector, model, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.GroupMatch), args.Error(1)
}

type MockEmbedder struct {
	mock.Mock
}

func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

func (m *MockEmbedder) Model() string {
	return "test/model"
}

type MockDashboardRepository struct {
	mock.Mock
}

func (m *MockDashboardRepository) CountTotalAccounts(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDashboardRepository) CountNewAccounts(ctx context.Context, start, end time.Time) (int64, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDashboardRepository) CountTotalGroups(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDashboardRepository) CountNewGroups(ctx context.Context, start, end time.Time) (int64, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDashboardRepository) CountTotalCategories(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDashboardRepository) CountUnindexedGroups(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDashboardRepository) NewUsersSeries(ctx context.Context, start, end time.Time, interval, tz string) ([]repositories.BucketSum, error) {
	args := m.Called(ctx, start, end, interval, tz)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.BucketSum), args.Error(1)
}

func (m *MockDashboardRepository) NewGroupsSeries(ctx context.Context, start, end time.Time, interval, tz string) ([]repositories.BucketSum, error) {
	args := m.Called(ctx, start, end, interval, tz)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.BucketSum), args.Error(1)
}

func (m *MockDashboardRepository) CategoryMix(ctx context.Context) ([]repositories.CategoryMixRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.CategoryMixRow), args.Error(1)
}

func (m *MockDashboardRepository) RecentGroups(ctx context.Context, limit int) ([]repositories.RecentGroupRow, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.RecentGroupRow), args.Error(1)
}
