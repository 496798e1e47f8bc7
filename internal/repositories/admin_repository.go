package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"wtsplinks/internal/models/db_models"
)

type AdminRepositoryInterface interface {
	FindByEmail(ctx context.Context, email string) (*db_models.Admin, error)
	Create(ctx context.Context, admin *db_models.Admin) error
}

type adminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepositoryInterface {
	return &adminRepository{db: db}
}

func (a *adminRepository) FindByEmail(ctx context.Context, email string) (*db_models.Admin, error) {
	var admin db_models.Admin
	err := a.db.WithContext(ctx).First(&admin, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

func (a *adminRepository) Create(ctx context.Context, admin *db_models.Admin) error {
	return a.db.WithContext(ctx).Create(admin).Error
}
