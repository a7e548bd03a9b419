package db_models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"wanderquest/internal/models/response_models"
	"wanderquest/pkg/utils"
)

type Itinerary struct {
	BaseModel
	UserID      uuid.UUID                     `gorm:"type:uuid;not null;index"`
	Title       string                        `gorm:"not null"`
	StartDate   time.Time                     `gorm:"type:date;not null"`
	EndDate     time.Time                     `gorm:"type:date;not null"`
	Budget      decimal.Decimal               `gorm:"type:decimal(10,2);not null"`
	Location    string                        `gorm:"not null"`
	Activities  datatypes.JSONSlice[Activity] `gorm:"type:jsonb;not null"`
	WeatherData datatypes.JSON                `gorm:"type:jsonb;not null"`
}

// Activity is stored inline in the itinerary's activities column.
type Activity struct {
	Day         int    `json:"day"`
	Name        string `json:"name"`
	Time        string `json:"time"`
	Description string `json:"description,omitempty"`
}

func BuildItineraryResponse(it *Itinerary) response_models.ItineraryResponse {
	activities := make([]response_models.ActivityResponse, 0, len(it.Activities))
	for _, a := range it.Activities {
		activities = append(activities, response_models.ActivityResponse{
			Day:         a.Day,
			Name:        a.Name,
			Time:        a.Time,
			Description: a.Description,
		})
	}
	return response_models.ItineraryResponse{
		ID:         it.ID.String(),
		UserID:     it.UserID.String(),
		Title:      it.Title,
		StartDate:  utils.FormatDate(it.StartDate),
		EndDate:    utils.FormatDate(it.EndDate),
		Budget:     it.Budget.StringFixed(2),
		Location:   it.Location,
		Activities: activities,
		CreatedAt:  it.CreatedAt,
		UpdatedAt:  it.UpdatedAt,
	}
}
