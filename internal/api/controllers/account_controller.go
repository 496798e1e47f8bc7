package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"wtsplinks/internal/models/request_models"
	"wtsplinks/internal/services"
	"wtsplinks/pkg/middleware"
	"wtsplinks/pkg/utils"
)

type AccountController struct {
	accountService services.AccountServiceInterface
}

func NewAccountController(accountService services.AccountServiceInterface) *AccountController {
	return &AccountController{
		accountService: accountService,
	}
}

// Register godoc
// @Summary Register a new account
// @Description Create a new user account with an empty profile
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body request_models.SignUpRequest true "Account registration payload"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /accounts/register [post]
func (a *AccountController) Register(c *gin.Context) {
	var req request_models.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := a.accountService.CreateAccount(c.Request.Context(), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, nil, "Account created successfully")
}

// Login godoc
// @Summary Login to an account
// @Description Authenticate a user and return a token
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body request_models.LoginRequest true "Login payload"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /accounts/login [post]
func (a *AccountController) Login(c *gin.Context) {
	var req request_models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	token, err := a.accountService.Login(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, token, "Login successful")
}

// Logout godoc
// @Summary Logout
// @Description Revoke the presented token
// @Tags Accounts
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /accounts/logout [post]
func (a *AccountController) Logout(c *gin.Context) {
	exp, _ := c.Get(middleware.ContextTokenExp)
	expiresAt, _ := exp.(time.Time)

	a.accountService.Logout(c.GetString(middleware.ContextTokenID), expiresAt)
	utils.RespondSuccess(c, nil, "Logged out")
}

// ForgotPassword godoc
// @Summary Request a password reset
// @Description Sends a reset code to the email if it is registered
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body request_models.ForgotPasswordRequest true "Forgot password payload"
// @Success 200 {object} utils.APIResponse
// @Router /accounts/forgot-password [post]
func (a *AccountController) ForgotPassword(c *gin.Context) {
	var req request_models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := a.accountService.ForgotPassword(c.Request.Context(), req.Email); errors.Is(err, utils.ErrDatabaseError) {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "If the email exists, a reset code has been sent")
}

// ResetPassword godoc
// @Summary Reset password with a code
// @Description Resets the password using the code sent by email
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body request_models.ResetPasswordRequest true "Password reset payload"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /accounts/reset-password [post]
func (a *AccountController) ResetPassword(c *gin.Context) {
	var req request_models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := a.accountService.ResetPassword(c.Request.Context(), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Password has been reset successfully")
}
