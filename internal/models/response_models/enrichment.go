package response_models

type PlaceSummary struct {
	Name             string       `json:"name"`
	FormattedAddress string       `json:"formatted_address"`
	Rating           float64      `json:"rating"`
	Photos           []PlacePhoto `json:"photos"`
}

type PlacePhoto struct {
	URL         string `json:"url"`
	FallbackURL string `json:"fallback_url"`
}

// ForecastDay is the forecast slot picked for one calendar day.
type ForecastDay struct {
	Date        string  `json:"date"`
	Temperature float64 `json:"temperature"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}
