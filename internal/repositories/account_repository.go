package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wtsplinks/internal/models/db_models"
)

type AccountRepository interface {
	InsertTx(account *db_models.Account, ctx context.Context) error
	FindById(ctx context.Context, id string) (*db_models.Account, error)
	FindByEmail(ctx context.Context, email string) (*db_models.Account, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	List(ctx context.Context, page, pageSize int) ([]db_models.Account, error)
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{
		db: db,
	}
}

// InsertTx creates the account together with its empty profile row.
func (a *accountRepository) InsertTx(account *db_models.Account, ctx context.Context) error {
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Profile").Create(account).Error; err != nil {
			return err
		}
		profile := &db_models.Profile{AccountID: account.ID}
		if err := tx.Create(profile).Error; err != nil {
			return err
		}
		account.Profile = profile
		return nil
	})
}

func (a *accountRepository) FindByEmail(ctx context.Context, email string) (*db_models.Account, error) {
	var account db_models.Account
	err := a.db.WithContext(ctx).First(&account, "email = ?", email).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &account, nil
}

func (a *accountRepository) FindById(ctx context.Context, id string) (*db_models.Account, error) {
	var account db_models.Account
	err := a.db.WithContext(ctx).First(&account, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &account, nil
}

func (a *accountRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	result := a.db.WithContext(ctx).
		Model(&db_models.Account{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (a *accountRepository) List(ctx context.Context, page, pageSize int) ([]db_models.Account, error) {
	var accounts []db_models.Account
	err := a.db.WithContext(ctx).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}
