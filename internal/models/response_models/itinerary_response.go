package response_models

import "time"

type ItineraryResponse struct {
	ID         string             `json:"id"`
	UserID     string             `json:"userId"`
	Title      string             `json:"title"`
	StartDate  string             `json:"startDate"`
	EndDate    string             `json:"endDate"`
	Budget     string             `json:"budget"`
	Location   string             `json:"location"`
	Activities []ActivityResponse `json:"activities"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`

	// Filled by live enrichment on read paths.
	PlacesWithPhotos []PlaceSummary `json:"placesWithPhotos,omitempty"`
	Weather          []ForecastDay  `json:"weather,omitempty"`
}

type ActivityResponse struct {
	Day         int    `json:"day"`
	Name        string `json:"name"`
	Time        string `json:"time"`
	Description string `json:"description,omitempty"`
}

type ItineraryStats struct {
	TotalTrips    int      `json:"totalTrips"`
	UpcomingTrips int      `json:"upcomingTrips"`
	PastTrips     int      `json:"pastTrips"`
	TotalBudget   string   `json:"totalBudget"`
	Locations     []string `json:"locations"`
}
