package request_models

type CategoryRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}
