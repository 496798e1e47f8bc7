package response_models

type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
