package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"wtsplinks/internal/models/db_models"
	"wtsplinks/internal/models/request_models"
	"wtsplinks/internal/models/response_models"
	"wtsplinks/internal/repositories"
	mem "wtsplinks/pkg/memcache"
	"wtsplinks/pkg/utils"
)

const (
	resetCodeLength = 6
	ResetCodeTTL    = 15 * time.Minute
)

type AccountServiceInterface interface {
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AccountLoginResponse, error)
	CreateAccount(ctx context.Context, request request_models.SignUpRequest) error
	Logout(tokenID string, expiresAt time.Time)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, request request_models.ResetPasswordRequest) error
	ListAccounts(ctx context.Context, page, pageSize int) ([]response_models.AccountResponse, error)
}

type AccountService struct {
	accountRepo repositories.AccountRepository
	mail        IMailService
	resetTokens mem.ResetTokenStore
	revoked     mem.RevokedTokenStore
	jwt         *utils.JWTManager
	logger      *zap.Logger
}

func NewAccountService(
	accountRepo repositories.AccountRepository,
	mail IMailService,
	resetTokens mem.ResetTokenStore,
	revoked mem.RevokedTokenStore,
	jwt *utils.JWTManager,
	logger *zap.Logger,
) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
		mail:        mail,
		resetTokens: resetTokens,
		revoked:     revoked,
		jwt:         jwt,
		logger:      logger.Named("account"),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AccountLoginResponse, error) {
	account, err := a.accountRepo.FindByEmail(ctx, normalizeEmail(request.Email))
	if err != nil {
		a.logger.Error("find account", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(account.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, expiresAt, err := a.jwt.CreateToken(account.ID, account.Role)
	if err != nil {
		a.logger.Error("create token", zap.Error(err))
		return nil, err
	}

	return &response_models.AccountLoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
		Role:      account.Role,
	}, nil
}

func (a *AccountService) CreateAccount(ctx context.Context, request request_models.SignUpRequest) error {
	email := normalizeEmail(request.Email)

	existingAccount, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		a.logger.Error("find account", zap.Error(err))
		return utils.ErrDatabaseError
	}
	if existingAccount != nil {
		return utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return err
	}

	newAccount := &db_models.Account{
		Name:         strings.TrimSpace(request.DisplayName),
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         db_models.RoleUser,
	}

	if err := a.accountRepo.InsertTx(newAccount, ctx); err != nil {
		a.logger.Error("insert account", zap.Error(err))
		return utils.ErrDatabaseError
	}

	a.logger.Info("account created", zap.String("account_id", newAccount.ID.String()))
	return nil
}

// Logout revokes the token until it would have expired anyway.
func (a *AccountService) Logout(tokenID string, expiresAt time.Time) {
	if tokenID == "" {
		return
	}
	a.revoked.Revoke(tokenID, expiresAt)
}

// ForgotPassword mails a reset code when the email is registered. Unknown emails and mail
// failures are not reported to the caller.
func (a *AccountService) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	account, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		a.logger.Error("find account", zap.Error(err))
		return utils.ErrDatabaseError
	}
	if account == nil {
		a.logger.Debug("reset requested for unknown email")
		return nil
	}

	code, err := utils.GenerateOtpCode(resetCodeLength)
	if err != nil {
		return err
	}
	a.resetTokens.Set(email, code, ResetCodeTTL)

	if err := a.mail.SendPasswordResetCode(email, code, ResetCodeTTL); err != nil {
		a.logger.Warn("send reset code", zap.String("account_id", account.ID.String()), zap.Error(err))
	}
	return nil
}

func (a *AccountService) ResetPassword(ctx context.Context, request request_models.ResetPasswordRequest) error {
	email := normalizeEmail(request.Email)

	if !a.resetTokens.Verify(email, strings.TrimSpace(request.Token)) {
		return utils.ErrInvalidToken
	}

	account, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		a.logger.Error("find account", zap.Error(err))
		return utils.ErrDatabaseError
	}
	if account == nil {
		return utils.ErrAccountNotFound
	}

	hashedPassword, err := utils.HashPassword(request.NewPassword)
	if err != nil {
		return err
	}
	if err := a.accountRepo.UpdatePassword(ctx, account.ID, hashedPassword); err != nil {
		a.logger.Error("update password", zap.Error(err))
		return utils.ErrDatabaseError
	}
	a.resetTokens.Invalidate(email)

	a.logger.Info("password reset", zap.String("account_id", account.ID.String()))
	return nil
}

func (a *AccountService) ListAccounts(ctx context.Context, page, pageSize int) ([]response_models.AccountResponse, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	accounts, err := a.accountRepo.List(ctx, page, pageSize)
	if err != nil {
		a.logger.Error("list accounts", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.AccountResponse, 0, len(accounts))
	for _, acc := range accounts {
		out = append(out, response_models.AccountResponse{
			ID:        acc.ID.String(),
			Name:      acc.Name,
			Email:     acc.Email,
			Role:      acc.Role,
			CreatedAt: acc.CreatedAt,
		})
	}
	return out, nil
}
