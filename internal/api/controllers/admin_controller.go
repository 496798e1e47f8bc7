package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"wtsplinks/internal/models/request_models"
	"wtsplinks/internal/services"
	"wtsplinks/pkg/utils"
)

type AdminController struct {
	adminService   services.AdminServiceInterface
	accountService services.AccountServiceInterface
}

func NewAdminController(adminService services.AdminServiceInterface, accountService services.AccountServiceInterface) *AdminController {
	return &AdminController{
		adminService:   adminService,
		accountService: accountService,
	}
}

// Login godoc
// @Summary Admin login
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body request_models.AdminLoginRequest true "Admin credentials"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /admin/login [post]
func (a *AdminController) Login(c *gin.Context) {
	var req request_models.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	token, err := a.adminService.Login(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, token, "Login successful")
}

// ListUsers godoc
// @Summary List registered users
// @Tags Admin
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/users [get]
func (a *AdminController) ListUsers(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page parameter")
		return
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size parameter")
		return
	}

	accounts, err := a.accountService.ListAccounts(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, accounts, "Accounts fetched successfully")
}
