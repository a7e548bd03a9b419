package response_models

import "time"

type TokenResponse struct {
	Token string `json:"token"`
}

type ProfileResponse struct {
	ID          string                 `json:"id"`
	Email       string                 `json:"email"`
	Preferences map[string]interface{} `json:"preferences"`
	CreatedAt   time.Time              `json:"createdAt"`
}
