package request_models

type UpdateProfileRequest struct {
	Username  string `json:"username" binding:"max=50"`
	FullName  string `json:"full_name" binding:"max=100"`
	AvatarURL string `json:"avatar_url"`
	Bio       string `json:"bio" binding:"max=500"`
	Private   bool   `json:"private"`
}
