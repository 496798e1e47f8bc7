package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wtsplinks/internal/models/request_models"
	"wtsplinks/internal/services"
	"wtsplinks/pkg/utils"
)

type ProfileController struct {
	profileService services.ProfileServiceInterface
}

func NewProfileController(profileService services.ProfileServiceInterface) *ProfileController {
	return &ProfileController{profileService: profileService}
}

// GetProfile godoc
// @Summary Get my profile
// @Tags Profile
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /profile [get]
func (p *ProfileController) GetProfile(c *gin.Context) {
	accountID, ok := callerID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid user")
		return
	}

	profile, err := p.profileService.GetProfile(c.Request.Context(), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, profile, "Profile fetched successfully")
}

// UpdateProfile godoc
// @Summary Update my profile
// @Description Create or overwrite the caller's profile. The avatar must be an absolute http(s) URL.
// @Tags Profile
// @Accept json
// @Produce json
// @Param request body request_models.UpdateProfileRequest true "Profile payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /profile [put]
func (p *ProfileController) UpdateProfile(c *gin.Context) {
	accountID, ok := callerID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid user")
		return
	}

	var req request_models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	profile, err := p.profileService.UpdateProfile(c.Request.Context(), accountID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, profile, "Profile updated successfully")
}
