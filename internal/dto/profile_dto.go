package dto

import "time"

// UpdateProfileRequest writes caller-defined fields. Merge keeps fields not
// present in the request.
type UpdateProfileRequest struct {
	Fields map[string]interface{} `json:"fields" validate:"required"`
	Merge  bool                   `json:"merge"`
}

type ProfileResponse struct {
	UserId    string                 `json:"user_id"`
	Fields    map[string]interface{} `json:"fields"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}
