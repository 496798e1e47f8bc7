package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wtsplinks/internal/ingest"
	"wtsplinks/internal/models/db_models"
)

type GroupRepository interface {
	CreateGroup(ctx context.Context, group *db_models.Group) (uuid.UUID, error)
	UpdateGroup(ctx context.Context, group *db_models.Group) error
	Delete(ctx context.Context, id uuid.UUID) error

	GetByID(ctx context.Context, id uuid.UUID) (*db_models.Group, error)
	List(ctx context.Context, categoryID *uuid.UUID, page, pageSize int) ([]db_models.Group, error)
	SearchText(ctx context.Context, query string, limit int) ([]db_models.Group, error)
	ListWithoutEmbedding(ctx context.Context, model string, limit int) ([]db_models.Group, error)

	// InsertRecord writes one decoded bulk-upload row as-is; the schema is the only validation.
	InsertRecord(ctx context.Context, table string, record ingest.Record) error
}

type groupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) CreateGroup(ctx context.Context, group *db_models.Group) (uuid.UUID, error) {
	if err := r.db.WithContext(ctx).Omit("Category").Create(group).Error; err != nil {
		return uuid.Nil, err
	}
	return group.ID, nil
}

func (r *groupRepository) UpdateGroup(ctx context.Context, group *db_models.Group) error {
	result := r.db.WithContext(ctx).
		Model(&db_models.Group{BaseModel: db_models.BaseModel{ID: group.ID}}).
		Omit("Category").
		Updates(map[string]interface{}{
			"name":        group.Name,
			"description": group.Description,
			"link":        group.Link,
			"category_id": group.CategoryID,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update group: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *groupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&db_models.Group{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *groupRepository) GetByID(ctx context.Context, id uuid.UUID) (*db_models.Group, error) {
	var group db_models.Group
	err := r.db.WithContext(ctx).
		Joins("Category").
		First(&group, "groups.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

// List returns groups with their category, ordered by category then name. A nil
// categoryID lists every category.
func (r *groupRepository) List(ctx context.Context, categoryID *uuid.UUID, page, pageSize int) ([]db_models.Group, error) {
	var groups []db_models.Group
	q := r.db.WithContext(ctx).Joins("Category")
	if categoryID != nil {
		q = q.Where("groups.category_id = ?", *categoryID)
	}
	err := q.
		Order("groups.category_id ASC").
		Order("groups.name ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *groupRepository) SearchText(ctx context.Context, query string, limit int) ([]db_models.Group, error) {
	var groups []db_models.Group
	pattern := "%" + escapeLike(query) + "%"
	err := r.db.WithContext(ctx).
		Joins("Category").
		Where("groups.name ILIKE ? OR groups.description ILIKE ?", pattern, pattern).
		Order("groups.name ASC").
		Limit(limit).
		Find(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *groupRepository) ListWithoutEmbedding(ctx context.Context, model string, limit int) ([]db_models.Group, error) {
	var groups []db_models.Group
	err := r.db.WithContext(ctx).
		Joins("Category").
		Where("NOT EXISTS (SELECT 1 FROM group_embeddings e WHERE e.group_id = groups.id AND e.model = ?)", model).
		Order("groups.created_at ASC").
		Limit(limit).
		Find(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *groupRepository) InsertRecord(ctx context.Context, table string, record ingest.Record) error {
	values := make(map[string]interface{}, len(record))
	for k, v := range record {
		values[k] = v
	}
	return r.db.WithContext(ctx).Table(table).Create(values).Error
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
