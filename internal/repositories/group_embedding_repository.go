package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"wtsplinks/internal/models/db_models"
)

// GroupMatch is a group row scored against a query vector.
type GroupMatch struct {
	ID           uuid.UUID
	Name         string
	Description  string
	Link         string
	CategoryID   uuid.UUID
	CategoryName string
	Similarity   float64
}

type IGroupEmbeddingRepository interface {
	Upsert(ctx context.Context, embedding *db_models.GroupEmbedding) error
	SearchByVector(ctx context.Context, vector pgvector.Vector, model string, limit int) ([]GroupMatch, error)
}

type GroupEmbeddingRepository struct {
	db *gorm.DB
}

func NewGroupEmbeddingRepository(db *gorm.DB) IGroupEmbeddingRepository {
	return &GroupEmbeddingRepository{db: db}
}

func (g *GroupEmbeddingRepository) Upsert(ctx context.Context, embedding *db_models.GroupEmbedding) error {
	return g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "group_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"model", "embedding", "created_at"}),
	}).Create(embedding).Error
}

// SearchByVector ranks groups by cosine similarity. Only vectors produced by the same
// model are compared so dimensions always agree.
func (g *GroupEmbeddingRepository) SearchByVector(ctx context.Context, vector pgvector.Vector, model string, limit int) ([]GroupMatch, error) {
	var results []GroupMatch

	query := `
        SELECT g.id, g.name, g.description, g.link, g.category_id,
               c.name AS category_name,
               1 - (e.embedding <=> ?) AS similarity
        FROM group_embeddings e
        JOIN groups g ON g.id = e.group_id AND g.deleted_at IS NULL
        LEFT JOIN categories c ON c.id = g.category_id
        WHERE e.model = ?
          AND 1 - (e.embedding <=> ?) > 0.3
        ORDER BY e.embedding <=> ?
        LIMIT ?
    `

	err := g.db.WithContext(ctx).Raw(query, vector, model, vector, vector, limit).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
