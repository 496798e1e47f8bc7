package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"wtsplinks/internal/models/db_models"
	"wtsplinks/internal/models/response_models"
	"wtsplinks/internal/repositories"
	"wtsplinks/pkg/utils"
)

const (
	categoryListKey  = "categories:all"
	CategoryCacheTTL = time.Minute
)

type CategoryServiceInterface interface {
	ListCategories(ctx context.Context) ([]response_models.CategoryResponse, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*response_models.CategoryResponse, error)
	CreateCategory(ctx context.Context, name string) (*response_models.CategoryResponse, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, name string) (*response_models.CategoryResponse, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type CategoryService struct {
	categoryRepo repositories.CategoryRepositoryInterface
	cache        *cache.Cache
	logger       *zap.Logger
}

func NewCategoryService(categoryRepo repositories.CategoryRepositoryInterface, logger *zap.Logger) CategoryServiceInterface {
	return &CategoryService{
		categoryRepo: categoryRepo,
		cache:        cache.New(CategoryCacheTTL, 5*time.Minute),
		logger:       logger.Named("category"),
	}
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]response_models.CategoryResponse, error) {
	if cached, ok := s.cache.Get(categoryListKey); ok {
		return cached.([]response_models.CategoryResponse), nil
	}

	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		s.logger.Error("list categories", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, toCategoryResponse(&categories[i]))
	}
	s.cache.SetDefault(categoryListKey, out)
	return out, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*response_models.CategoryResponse, error) {
	category, err := s.categoryRepo.GetCategoryByID(ctx, id)
	if err != nil {
		s.logger.Error("get category", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	if category == nil {
		return nil, utils.ErrCategoryNotFound
	}
	resp := toCategoryResponse(category)
	return &resp, nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, name string) (*response_models.CategoryResponse, error) {
	name = strings.TrimSpace(name)
	if err := s.ensureNameFree(ctx, name, uuid.Nil); err != nil {
		return nil, err
	}

	category := &db_models.Category{Name: name}
	if err := s.categoryRepo.CreateCategory(ctx, category); err != nil {
		s.logger.Error("create category", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	s.invalidate()

	resp := toCategoryResponse(category)
	return &resp, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id uuid.UUID, name string) (*response_models.CategoryResponse, error) {
	name = strings.TrimSpace(name)
	if err := s.ensureNameFree(ctx, name, id); err != nil {
		return nil, err
	}

	category := &db_models.Category{BaseModel: db_models.BaseModel{ID: id}, Name: name}
	if err := s.categoryRepo.UpdateCategory(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrCategoryNotFound
		}
		s.logger.Error("update category", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	s.invalidate()

	resp := toCategoryResponse(category)
	return &resp, nil
}

// DeleteCategory refuses to remove a category that still has groups.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	n, err := s.categoryRepo.CountGroups(ctx, id)
	if err != nil {
		s.logger.Error("count groups", zap.Error(err))
		return utils.ErrDatabaseError
	}
	if n > 0 {
		return utils.ErrCategoryInUse
	}

	if err := s.categoryRepo.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrCategoryNotFound
		}
		s.logger.Error("delete category", zap.Error(err))
		return utils.ErrDatabaseError
	}
	s.invalidate()
	return nil
}

// ensureNameFree rejects a name already used by a category other than self.
func (s *CategoryService) ensureNameFree(ctx context.Context, name string, self uuid.UUID) error {
	existing, err := s.categoryRepo.GetCategoryByName(ctx, name)
	if err != nil {
		s.logger.Error("get category by name", zap.Error(err))
		return utils.ErrDatabaseError
	}
	if existing != nil && existing.ID != self {
		return utils.ErrCategoryExists
	}
	return nil
}

func (s *CategoryService) invalidate() {
	s.cache.Delete(categoryListKey)
}

func toCategoryResponse(c *db_models.Category) response_models.CategoryResponse {
	return response_models.CategoryResponse{
		ID:   c.ID.String(),
		Name: c.Name,
	}
}
