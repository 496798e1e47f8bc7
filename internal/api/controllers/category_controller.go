package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wtsplinks/internal/models/request_models"
	"wtsplinks/internal/services"
	"wtsplinks/pkg/utils"
)

type CategoryController struct {
	categoryService services.CategoryServiceInterface
}

func NewCategoryController(categoryService services.CategoryServiceInterface) *CategoryController {
	return &CategoryController{categoryService: categoryService}
}

// ListCategories godoc
// @Summary List categories
// @Tags Categories
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /categories [get]
func (cc *CategoryController) ListCategories(c *gin.Context) {
	categories, err := cc.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, categories, "Categories fetched successfully")
}

// GetCategory godoc
// @Summary Get a category
// @Tags Categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /categories/{id} [get]
func (cc *CategoryController) GetCategory(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Invalid category id")
		return
	}

	category, err := cc.categoryService.GetCategory(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, category, "Category fetched successfully")
}

// CreateCategory godoc
// @Summary Create a category
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body request_models.CategoryRequest true "Category payload"
// @Success 201 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/categories [post]
func (cc *CategoryController) CreateCategory(c *gin.Context) {
	var req request_models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	category, err := cc.categoryService.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, category, "Category created successfully")
}

// UpdateCategory godoc
// @Summary Rename a category
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param request body request_models.CategoryRequest true "Category payload"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/categories/{id} [put]
func (cc *CategoryController) UpdateCategory(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Invalid category id")
		return
	}

	var req request_models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	category, err := cc.categoryService.UpdateCategory(c.Request.Context(), id, req.Name)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, category, "Category updated successfully")
}

// DeleteCategory godoc
// @Summary Delete an empty category
// @Tags Admin
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/categories/{id} [delete]
func (cc *CategoryController) DeleteCategory(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Invalid category id")
		return
	}

	if err := cc.categoryService.DeleteCategory(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Category deleted successfully")
}
