package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"wtsplinks/internal/models/db_models"
)

type ProfileRepositoryInterface interface {
	FindByAccountID(ctx context.Context, accountID uuid.UUID) (*db_models.Profile, error)
	Upsert(ctx context.Context, profile *db_models.Profile) error
}

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepositoryInterface {
	return &ProfileRepository{db: db}
}

func (p *ProfileRepository) FindByAccountID(ctx context.Context, accountID uuid.UUID) (*db_models.Profile, error) {
	var profile db_models.Profile
	err := p.db.WithContext(ctx).First(&profile, "account_id = ?", accountID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// Upsert inserts the profile or overwrites the editable columns of the existing row.
func (p *ProfileRepository) Upsert(ctx context.Context, profile *db_models.Profile) error {
	return p.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "account_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"username", "full_name", "avatar_url", "bio", "private", "updated_at",
		}),
	}).Create(profile).Error
}
