package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"wtsplinks/internal/models/request_models"
	"wtsplinks/internal/services"
	"wtsplinks/pkg/utils"
)

type GroupController struct {
	groupService services.GroupServiceInterface
}

func NewGroupController(groupService services.GroupServiceInterface) *GroupController {
	return &GroupController{groupService: groupService}
}

// ListGroups godoc
// @Summary List groups
// @Description Groups ordered by category then name, optionally filtered by category
// @Tags Groups
// @Produce json
// @Param category_id query string false "Category ID"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(50)
// @Success 200 {object} utils.APIResponse
// @Router /groups [get]
func (g *GroupController) ListGroups(c *gin.Context) {
	var req request_models.ListGroupsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	var categoryID *uuid.UUID
	if req.CategoryID != "" {
		id := uuid.MustParse(req.CategoryID)
		categoryID = &id
	}

	g.list(c, categoryID, req.Page, req.PageSize)
}

// ListCategoryGroups godoc
// @Summary List the groups of a category
// @Tags Groups
// @Produce json
// @Param id path string true "Category ID"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(50)
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /categories/{id}/groups [get]
func (g *GroupController) ListCategoryGroups(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Invalid category id")
		return
	}

	var req request_models.ListGroupsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	g.list(c, &id, req.Page, req.PageSize)
}

func (g *GroupController) list(c *gin.Context, categoryID *uuid.UUID, page, pageSize int) {
	groups, err := g.groupService.ListGroups(c.Request.Context(), categoryID, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, groups, "Groups fetched successfully")
}

// GetGroup godoc
// @Summary Get a group
// @Tags Groups
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /groups/{id} [get]
func (g *GroupController) GetGroup(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Invalid group id")
		return
	}

	group, err := g.groupService.GetGroup(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, group, "Group fetched successfully")
}

// SearchGroups godoc
// @Summary Search groups
// @Description Semantic search when an embedding provider is configured, substring search otherwise
// @Tags Groups
// @Produce json
// @Param q query string true "Search text"
// @Param limit query int false "Max results" default(15)
// @Success 200 {object} utils.APIResponse
// @Router /groups/search [get]
func (g *GroupController) SearchGroups(c *gin.Context) {
	var req request_models.SearchGroupsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Query parameter q is required")
		return
	}

	groups, err := g.groupService.SearchGroups(c.Request.Context(), req.Query, req.Limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, groups, "Search completed")
}

// CreateGroup godoc
// @Summary Submit a group
// @Tags Groups
// @Accept json
// @Produce json
// @Param request body request_models.CreateGroupRequest true "Group payload"
// @Success 201 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /groups [post]
func (g *GroupController) CreateGroup(c *gin.Context) {
	var req request_models.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	group, err := g.groupService.CreateGroup(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, group, "Group created successfully")
}

// UpdateGroup godoc
// @Summary Update a group
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param request body request_models.UpdateGroupRequest true "Group payload"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/groups/{id} [put]
func (g *GroupController) UpdateGroup(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Invalid group id")
		return
	}

	var req request_models.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	group, err := g.groupService.UpdateGroup(c.Request.Context(), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, group, "Group updated successfully")
}

// DeleteGroup godoc
// @Summary Delete a group
// @Tags Admin
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/groups/{id} [delete]
func (g *GroupController) DeleteGroup(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Invalid group id")
		return
	}

	if err := g.groupService.DeleteGroup(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Group deleted successfully")
}

// Reindex godoc
// @Summary Embed groups that have no vector for the active model
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/groups/reindex [post]
func (g *GroupController) Reindex(c *gin.Context) {
	out, err := g.groupService.Reindex(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, "Reindex finished")
}
