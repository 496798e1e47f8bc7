package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wtsplinks/internal/models/db_models"
)

type CategoryRepositoryInterface interface {
	CreateCategory(ctx context.Context, category *db_models.Category) error
	UpdateCategory(ctx context.Context, category *db_models.Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	GetCategoryByID(ctx context.Context, id uuid.UUID) (*db_models.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*db_models.Category, error)
	ListCategories(ctx context.Context) ([]db_models.Category, error)
	CountGroups(ctx context.Context, id uuid.UUID) (int64, error)
}

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepositoryInterface {
	return &CategoryRepository{db: db}
}

func (c *CategoryRepository) CreateCategory(ctx context.Context, category *db_models.Category) error {
	return c.db.WithContext(ctx).Create(category).Error
}

func (c *CategoryRepository) UpdateCategory(ctx context.Context, category *db_models.Category) error {
	result := c.db.WithContext(ctx).
		Model(&db_models.Category{}).
		Where("id = ?", category.ID).
		Update("name", category.Name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (c *CategoryRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	result := c.db.WithContext(ctx).Delete(&db_models.Category{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (c *CategoryRepository) GetCategoryByID(ctx context.Context, id uuid.UUID) (*db_models.Category, error) {
	var category db_models.Category
	err := c.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (c *CategoryRepository) GetCategoryByName(ctx context.Context, name string) (*db_models.Category, error) {
	var category db_models.Category
	err := c.db.WithContext(ctx).First(&category, "lower(name) = lower(?)", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (c *CategoryRepository) ListCategories(ctx context.Context) ([]db_models.Category, error) {
	var categories []db_models.Category
	if err := c.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *CategoryRepository) CountGroups(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := c.db.WithContext(ctx).Model(&db_models.Group{}).Where("category_id = ?", id).Count(&n).Error
	return n, err
}
