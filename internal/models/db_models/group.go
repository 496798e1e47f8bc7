package db_models

import "github.com/google/uuid"

type Group struct {
	BaseModel
	Name        string
	Description string
	Link        string
	CategoryID  uuid.UUID `gorm:"type:uuid;index"`
	Category    Category
}
