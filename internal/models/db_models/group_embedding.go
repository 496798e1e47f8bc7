package db_models

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type GroupEmbedding struct {
	GroupID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Model     string
	Embedding pgvector.Vector `gorm:"type:vector"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
}
