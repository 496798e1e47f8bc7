package controllers_test

import (
	"context"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"wtsplinks/internal/ingest"
	"wtsplinks/internal/models/request_models"
	"wtsplinks/internal/models/response_models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type MockBulkUploadService struct {
	mock.Mock
	// received is the decoded form as seen by the service
	received ingest.Input
	fileBody string
}

func (m *MockBulkUploadService) Upload(ctx context.Context, in ingest.Input) (ingest.Result, error) {
	m.received = in
	if in.File != nil {
		b, _ := io.ReadAll(in.File)
		m.fileBody = string(b)
	}
	args := m.Called(ctx, in.Text, in.FileName, in.Delimiter)
	return args.Get(0).(ingest.Result), args.Error(1)
}

type MockGroupService struct {
	mock.Mock
}

func (m *MockGroupService) ListGroups(ctx context.Context, categoryID *uuid.UUID, page, pageSize int) ([]response_models.GroupResponse, error) {
	args := m.Called(ctx, categoryID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]response_models.GroupResponse), args.Error(1)
}

func (m *MockGroupService) GetGroup(ctx context.Context, id uuid.UUID) (*response_models.GroupResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response_models.GroupResponse), args.Error(1)
}

func (m *MockGroupService) CreateGroup(ctx context.Context, request request_models.CreateGroupRequest) (*response_models.GroupResponse, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response_models.GroupResponse), args.Error(1)
}

func (m *MockGroupService) UpdateGroup(ctx context.Context, id uuid.UUID, request request_models.UpdateGroupRequest) (*response_models.GroupResponse, error) {
	args := m.Called(ctx, id, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response_models.GroupResponse), args.Error(1)
}

func (m *MockGroupService) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGroupService) SearchGroups(ctx context.Context, query string, limit int) ([]response_models.GroupResponse, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]response_models.GroupResponse), args.Error(1)
}

func (m *MockGroupService) Reindex(ctx context.Context) (*response_models.ReindexResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response_models.ReindexResponse), args.Error(1)
}

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AccountLoginResponse, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response_models.AccountLoginResponse), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, request request_models.SignUpRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockAccountService) Logout(tokenID string, expiresAt time.Time) {
	m.Called(tokenID, expiresAt)
}

func (m *MockAccountService) ForgotPassword(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockAccountService) ResetPassword(ctx context.Context, request request_models.ResetPasswordRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, page, pageSize int) ([]response_models.AccountResponse, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]response_models.AccountResponse), args.Error(1)
}

type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) ListCategories(ctx context.Context) ([]response_models.CategoryResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]response_models.CategoryResponse), args.Error(1)
}

func (m *MockCategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*response_models.CategoryResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response_models.CategoryResponse), args.Error(1)
}

func (m *MockCategoryService) CreateCategory(ctx context.Context, name string) (*response_models.CategoryResponse, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response_models.CategoryResponse), args.Error(1)
}

func (m *MockCategoryService) UpdateCategory(ctx context.Context, id uuid.UUID, name string) (*response_models.CategoryResponse, error) {
	args := m.Called(ctx, id, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response_models.CategoryResponse), args.Error(1)
}

func (m *MockCategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) BuildDashboard(ctx context.Context, rng response_models.TimeRange) (*response_models.DashboardReport, error) {
	args := m.Called(ctx, rng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response_models.DashboardReport), args.Error(1)
}
