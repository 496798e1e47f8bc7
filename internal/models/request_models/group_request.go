package request_models

type CreateGroupRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description" binding:"required"`
	Link        string `json:"link" binding:"required,url"`
	CategoryID  string `json:"category_id" binding:"required,uuid"`
}

type UpdateGroupRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description" binding:"required"`
	Link        string `json:"link" binding:"required,url"`
	CategoryID  string `json:"category_id" binding:"required,uuid"`
}

type ListGroupsRequest struct {
	CategoryID string `form:"category_id" binding:"omitempty,uuid"`
	Page       int    `form:"page,default=1" binding:"min=1"`
	PageSize   int    `form:"pageSize,default=50" binding:"min=1,max=200"`
}

type SearchGroupsRequest struct {
	Query string `form:"q" binding:"required"`
	Limit int    `form:"limit,default=15" binding:"min=1,max=50"`
}
