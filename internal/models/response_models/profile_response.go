package response_models

type ProfileResponse struct {
	Username  string `json:"username"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url"`
	Bio       string `json:"bio"`
	Private   bool   `json:"private"`
	UpdatedAt int64  `json:"updated_at"`
}
