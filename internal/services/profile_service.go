package services

import (
	"context"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"wtsplinks/internal/models/db_models"
	"wtsplinks/internal/models/request_models"
	"wtsplinks/internal/models/response_models"
	"wtsplinks/internal/repositories"
	"wtsplinks/pkg/utils"
)

type ProfileServiceInterface interface {
	GetProfile(ctx context.Context, accountID uuid.UUID) (*response_models.ProfileResponse, error)
	UpdateProfile(ctx context.Context, accountID uuid.UUID, request request_models.UpdateProfileRequest) (*response_models.ProfileResponse, error)
}

type ProfileService struct {
	profileRepo repositories.ProfileRepositoryInterface
	logger      *zap.Logger
}

func NewProfileService(profileRepo repositories.ProfileRepositoryInterface, logger *zap.Logger) ProfileServiceInterface {
	return &ProfileService{
		profileRepo: profileRepo,
		logger:      logger.Named("profile"),
	}
}

// GetProfile returns an empty profile for accounts that never saved one.
func (p *ProfileService) GetProfile(ctx context.Context, accountID uuid.UUID) (*response_models.ProfileResponse, error) {
	profile, err := p.profileRepo.FindByAccountID(ctx, accountID)
	if err != nil {
		p.logger.Error("find profile", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	if profile == nil {
		return &response_models.ProfileResponse{}, nil
	}
	return toProfileResponse(profile), nil
}

func (p *ProfileService) UpdateProfile(ctx context.Context, accountID uuid.UUID, request request_models.UpdateProfileRequest) (*response_models.ProfileResponse, error) {
	avatar := strings.TrimSpace(request.AvatarURL)
	if avatar != "" && !isAbsoluteURL(avatar) {
		return nil, utils.ErrInvalidAvatarURL
	}

	profile := &db_models.Profile{
		AccountID: accountID,
		Username:  strings.TrimSpace(request.Username),
		FullName:  strings.TrimSpace(request.FullName),
		AvatarURL: avatar,
		Bio:       strings.TrimSpace(request.Bio),
		Private:   request.Private,
	}
	if err := p.profileRepo.Upsert(ctx, profile); err != nil {
		p.logger.Error("upsert profile", zap.String("account_id", accountID.String()), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	return toProfileResponse(profile), nil
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func toProfileResponse(p *db_models.Profile) *response_models.ProfileResponse {
	return &response_models.ProfileResponse{
		Username:  p.Username,
		FullName:  p.FullName,
		AvatarURL: p.AvatarURL,
		Bio:       p.Bio,
		Private:   p.Private,
		UpdatedAt: p.UpdatedAt,
	}
}
