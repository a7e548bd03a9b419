package db_models

import (
	"gorm.io/datatypes"

	"wanderquest/internal/models/response_models"
)

type User struct {
	BaseModel
	Email       string            `gorm:"uniqueIndex;not null"`
	Password    string            `gorm:"not null"`
	Preferences datatypes.JSONMap `gorm:"type:jsonb;not null"`

	Itineraries []Itinerary `gorm:"constraint:OnDelete:CASCADE"`
}

// BuildProfileResponse drops the password hash.
func BuildProfileResponse(u *User) response_models.ProfileResponse {
	prefs := map[string]interface{}(u.Preferences)
	if prefs == nil {
		prefs = map[string]interface{}{}
	}
	return response_models.ProfileResponse{
		ID:          u.ID.String(),
		Email:       u.Email,
		Preferences: prefs,
		CreatedAt:   u.CreatedAt,
	}
}
