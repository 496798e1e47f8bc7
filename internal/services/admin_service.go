package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"wtsplinks/internal/models/db_models"
	"wtsplinks/internal/models/request_models"
	"wtsplinks/internal/models/response_models"
	"wtsplinks/internal/repositories"
	"wtsplinks/pkg/utils"
)

var ErrAdminExists = errors.New("admin already exists")

type AdminServiceInterface interface {
	Login(ctx context.Context, request request_models.AdminLoginRequest) (*response_models.AccountLoginResponse, error)
	CreateAdmin(ctx context.Context, email, password string) error
}

type AdminService struct {
	adminRepo repositories.AdminRepositoryInterface
	jwt       *utils.JWTManager
	logger    *zap.Logger
}

func NewAdminService(adminRepo repositories.AdminRepositoryInterface, jwt *utils.JWTManager, logger *zap.Logger) AdminServiceInterface {
	return &AdminService{
		adminRepo: adminRepo,
		jwt:       jwt,
		logger:    logger.Named("admin"),
	}
}

func (a *AdminService) Login(ctx context.Context, request request_models.AdminLoginRequest) (*response_models.AccountLoginResponse, error) {
	admin, err := a.adminRepo.FindByEmail(ctx, normalizeEmail(request.Email))
	if err != nil {
		a.logger.Error("find admin", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	if admin == nil {
		return nil, utils.ErrInvalidCredentials
	}
	if err := utils.ComparePasswords(admin.PasswordHash, request.Password); err != nil {
		a.logger.Warn("admin login rejected", zap.String("admin_id", admin.ID.String()))
		return nil, utils.ErrInvalidCredentials
	}

	token, expiresAt, err := a.jwt.CreateToken(admin.ID, db_models.RoleAdmin)
	if err != nil {
		return nil, err
	}

	return &response_models.AccountLoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
		Role:      db_models.RoleAdmin,
	}, nil
}

// CreateAdmin provisions an operator account. It is only reachable from the CLI.
func (a *AdminService) CreateAdmin(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if email == "" || len(password) < 6 {
		return utils.ErrInvalidCredentials
	}

	existing, err := a.adminRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existing != nil {
		return ErrAdminExists
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	if err := a.adminRepo.Create(ctx, &db_models.Admin{Email: email, PasswordHash: hash}); err != nil {
		a.logger.Error("create admin", zap.Error(err))
		return utils.ErrDatabaseError
	}
	return nil
}
