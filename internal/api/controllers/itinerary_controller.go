package controllers

import (
	"github.com/gin-gonic/gin"

	"wanderquest/internal/models/request_models"
	"wanderquest/internal/services"
	"wanderquest/pkg/utils"
)

type ItineraryController struct {
	itineraryService services.ItineraryServiceInterface
}

func NewItineraryController(itineraryService services.ItineraryServiceInterface) *ItineraryController {
	return &ItineraryController{
		itineraryService: itineraryService,
	}
}

// List godoc
// @Summary List the user's itineraries
// @Description Each itinerary carries up to three places with photos
// @Tags Itineraries
// @Produce json
// @Param sort query string false "createdAt, startDate, budget or title"
// @Param order query string false "asc or desc"
// @Success 200 {array} response_models.ItineraryResponse
// @Security BearerAuth
// @Router /itineraries [get]
func (i *ItineraryController) List(c *gin.Context) {
	userId, ok := requireUser(c)
	if !ok {
		return
	}
	var query request_models.ListItinerariesQuery
	if !bindQuery(c, &query) {
		return
	}

	itineraries, err := i.itineraryService.List(c.Request.Context(), userId, query)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, itineraries)
}

// Search godoc
// @Summary Search itineraries by title or location
// @Tags Itineraries
// @Produce json
// @Param q query string true "Search text"
// @Success 200 {array} response_models.ItineraryResponse
// @Security BearerAuth
// @Router /itineraries/search [get]
func (i *ItineraryController) Search(c *gin.Context) {
	userId, ok := requireUser(c)
	if !ok {
		return
	}
	var query request_models.SearchItinerariesQuery
	if !bindQuery(c, &query) {
		return
	}

	itineraries, err := i.itineraryService.Search(c.Request.Context(), userId, query.Q)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, itineraries)
}

// Upcoming godoc
// @Summary Itineraries starting today or later
// @Tags Itineraries
// @Produce json
// @Success 200 {array} response_models.ItineraryResponse
// @Security BearerAuth
// @Router /itineraries/upcoming [get]
func (i *ItineraryController) Upcoming(c *gin.Context) {
	userId, ok := requireUser(c)
	if !ok {
		return
	}

	itineraries, err := i.itineraryService.Upcoming(c.Request.Context(), userId)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, itineraries)
}

// Stats godoc
// @Summary Trip counts and total budget
// @Tags Itineraries
// @Produce json
// @Success 200 {object} response_models.ItineraryStats
// @Security BearerAuth
// @Router /itineraries/stats [get]
func (i *ItineraryController) Stats(c *gin.Context) {
	userId, ok := requireUser(c)
	if !ok {
		return
	}

	stats, err := i.itineraryService.Stats(c.Request.Context(), userId)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, stats)
}

// Get godoc
// @Summary Itinerary details
// @Description Includes up to five places and a five day forecast
// @Tags Itineraries
// @Produce json
// @Param id path string true "Itinerary ID"
// @Success 200 {object} response_models.ItineraryResponse
// @Failure 404 {object} utils.APIError
// @Security BearerAuth
// @Router /itineraries/{id} [get]
func (i *ItineraryController) Get(c *gin.Context) {
	userId, ok := requireUser(c)
	if !ok {
		return
	}

	itinerary, err := i.itineraryService.Get(c.Request.Context(), userId, c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, itinerary)
}

// Create godoc
// @Summary Create an itinerary
// @Tags Itineraries
// @Accept json
// @Produce json
// @Param request body request_models.ItineraryRequest true "Itinerary"
// @Success 201 {object} response_models.ItineraryResponse
// @Failure 400 {object} utils.APIError
// @Security BearerAuth
// @Example {json} Request Body Example:
//
//	{
//	  "title": "Paris",
//	  "startDate": "2025-06-01",
//	  "endDate": "2025-06-05",
//	  "budget": 1500,
//	  "location": "Paris, France",
//	  "activities": [{"day": 1, "name": "Louvre", "time": "10:00"}]
//	}
//
// @Router /itineraries [post]
func (i *ItineraryController) Create(c *gin.Context) {
	userId, ok := requireUser(c)
	if !ok {
		return
	}
	var req request_models.ItineraryRequest
	if !bindJSON(c, &req) {
		return
	}

	itinerary, err := i.itineraryService.Create(c.Request.Context(), userId, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, itinerary)
}

// Update godoc
// @Summary Replace an itinerary
// @Description Every field is overwritten, activities included
// @Tags Itineraries
// @Accept json
// @Produce json
// @Param id path string true "Itinerary ID"
// @Param request body request_models.ItineraryRequest true "Itinerary"
// @Success 200 {object} response_models.ItineraryResponse
// @Failure 404 {object} utils.APIError
// @Security BearerAuth
// @Router /itineraries/{id} [put]
func (i *ItineraryController) Update(c *gin.Context) {
	userId, ok := requireUser(c)
	if !ok {
		return
	}
	var req request_models.ItineraryRequest
	if !bindJSON(c, &req) {
		return
	}

	itinerary, err := i.itineraryService.Update(c.Request.Context(), userId, c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, itinerary)
}

// Delete godoc
// @Summary Delete an itinerary
// @Tags Itineraries
// @Produce json
// @Param id path string true "Itinerary ID"
// @Success 200 {object} utils.MessageResponse
// @Failure 404 {object} utils.APIError
// @Security BearerAuth
// @Router /itineraries/{id} [delete]
func (i *ItineraryController) Delete(c *gin.Context) {
	userId, ok := requireUser(c)
	if !ok {
		return
	}

	if err := i.itineraryService.Delete(c.Request.Context(), userId, c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondMessage(c, services.ItineraryDeletedMessage)
}
