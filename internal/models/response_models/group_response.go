package response_models

type GroupResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Link         string  `json:"link"`
	CategoryID   string  `json:"category_id"`
	CategoryName string  `json:"category_name,omitempty"`
	Similarity   float64 `json:"similarity,omitempty"`
}

type ReindexResponse struct {
	Model   string `json:"model"`
	Indexed int    `json:"indexed"`
	Failed  int    `json:"failed"`
}
