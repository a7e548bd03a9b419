package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wanderquest/internal/models/request_models"
	"wanderquest/internal/services"
	"wanderquest/pkg/utils"
)

// PlacesController proxies the places and weather providers.
type PlacesController struct {
	places  services.PlacesProvider
	weather services.WeatherProvider
}

func NewPlacesController(places services.PlacesProvider, weather services.WeatherProvider) *PlacesController {
	return &PlacesController{
		places:  places,
		weather: weather,
	}
}

func respondPayload(c *gin.Context, body []byte) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// Weather godoc
// @Summary Five day forecast for a location
// @Tags Weather
// @Produce json
// @Param location query string true "City name"
// @Success 200 {object} object "OpenWeatherMap forecast payload"
// @Failure 404 {object} utils.APIError
// @Security BearerAuth
// @Router /weather [get]
func (p *PlacesController) Weather(c *gin.Context) {
	var query request_models.WeatherQuery
	if !bindQuery(c, &query) {
		return
	}

	body, err := p.weather.Forecast(c.Request.Context(), query.Location)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	respondPayload(c, body)
}

// Search godoc
// @Summary Text search for places
// @Tags Places
// @Produce json
// @Param location query string true "Location"
// @Param preferences query string false "What to look for"
// @Success 200 {object} object "Google Places payload"
// @Security BearerAuth
// @Router /places [get]
func (p *PlacesController) Search(c *gin.Context) {
	var query request_models.PlacesSearchQuery
	if !bindQuery(c, &query) {
		return
	}

	body, err := p.places.Search(c.Request.Context(), query.Location, query.Preferences)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	respondPayload(c, body)
}

// Nearby godoc
// @Summary Places near a coordinate
// @Tags Places
// @Produce json
// @Param location query string true "lat,lng"
// @Param type query string false "Place type"
// @Param radius query int false "Radius in meters"
// @Success 200 {object} object "Google Places payload"
// @Security BearerAuth
// @Router /places/nearby [get]
func (p *PlacesController) Nearby(c *gin.Context) {
	var query request_models.NearbyQuery
	if !bindQuery(c, &query) {
		return
	}

	body, err := p.places.Nearby(c.Request.Context(), query.Location, query.Type, query.Radius)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	respondPayload(c, body)
}

// Category godoc
// @Summary Places of a category around a location
// @Tags Places
// @Produce json
// @Param location query string true "Location"
// @Param category query string true "Category, e.g. restaurant"
// @Success 200 {object} object "Google Places payload"
// @Security BearerAuth
// @Router /places/category [get]
func (p *PlacesController) Category(c *gin.Context) {
	var query request_models.CategoryQuery
	if !bindQuery(c, &query) {
		return
	}

	body, err := p.places.Category(c.Request.Context(), query.Location, query.Category)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	respondPayload(c, body)
}

// Details godoc
// @Summary Place details
// @Tags Places
// @Produce json
// @Param placeId path string true "Google place id"
// @Success 200 {object} object "Google Places payload"
// @Failure 404 {object} utils.APIError
// @Security BearerAuth
// @Router /places/details/{placeId} [get]
func (p *PlacesController) Details(c *gin.Context) {
	body, err := p.places.Details(c.Request.Context(), c.Param("placeId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	respondPayload(c, body)
}

// Photo godoc
// @Summary Place photo bytes
// @Tags Places
// @Produce image/jpeg
// @Param ref path string true "Photo reference"
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /places/photos/{ref} [get]
func (p *PlacesController) Photo(c *gin.Context) {
	photo, err := p.places.Photo(c.Request.Context(), c.Param("ref"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, photo.ContentType, photo.Body)
}
