package client

import "time"

type Profile struct {
	ID          string                 `json:"id"`
	Email       string                 `json:"email"`
	Preferences map[string]interface{} `json:"preferences"`
	CreatedAt   time.Time              `json:"createdAt"`
}

type Activity struct {
	Day         int    `json:"day"`
	Name        string `json:"name"`
	Time        string `json:"time"`
	Description string `json:"description,omitempty"`
}

type Place struct {
	Name             string  `json:"name"`
	FormattedAddress string  `json:"formatted_address"`
	Rating           float64 `json:"rating"`
	Photos           []struct {
		URL         string `json:"url"`
		FallbackURL string `json:"fallback_url"`
	} `json:"photos"`
}

type ForecastDay struct {
	Date        string  `json:"date"`
	Temperature float64 `json:"temperature"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

type Itinerary struct {
	ID               string        `json:"id"`
	UserID           string        `json:"userId"`
	Title            string        `json:"title"`
	StartDate        string        `json:"startDate"`
	EndDate          string        `json:"endDate"`
	Budget           string        `json:"budget"`
	Location         string        `json:"location"`
	Activities       []Activity    `json:"activities"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
	PlacesWithPhotos []Place       `json:"placesWithPhotos,omitempty"`
	Weather          []ForecastDay `json:"weather,omitempty"`
}

// ItineraryInput is the body of create and update.
type ItineraryInput struct {
	Title      string     `json:"title"`
	StartDate  string     `json:"startDate"`
	EndDate    string     `json:"endDate"`
	Budget     string     `json:"budget"`
	Location   string     `json:"location"`
	Activities []Activity `json:"activities"`
}

type Stats struct {
	TotalTrips    int      `json:"totalTrips"`
	UpcomingTrips int      `json:"upcomingTrips"`
	PastTrips     int      `json:"pastTrips"`
	TotalBudget   string   `json:"totalBudget"`
	Locations     []string `json:"locations"`
}

type ListOptions struct {
	Sort  string
	Order string
}
