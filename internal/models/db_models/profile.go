package db_models

import "github.com/google/uuid"

// Profile holds the public-facing details of an account, one row per account.
type Profile struct {
	BaseModel
	AccountID uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Username  string
	FullName  string
	AvatarURL string
	Bio       string
	Private   bool
}
