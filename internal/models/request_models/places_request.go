package request_models

type WeatherQuery struct {
	Location string `form:"location" binding:"required,notblank"`
}

type PlacesSearchQuery struct {
	Location    string `form:"location" binding:"required,notblank"`
	Preferences string `form:"preferences"`
}

type NearbyQuery struct {
	Location string `form:"location" binding:"required,notblank"`
	Type     string `form:"type"`
	Radius   int    `form:"radius" binding:"omitempty,min=1,max=50000"`
}

type CategoryQuery struct {
	Location string `form:"location" binding:"required,notblank"`
	Category string `form:"category" binding:"required,notblank"`
}
