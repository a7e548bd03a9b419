package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"wanderquest/internal/models/db_models"
	"wanderquest/internal/models/request_models"
	"wanderquest/internal/models/response_models"
	"wanderquest/internal/repositories"
	"wanderquest/pkg/utils"
	"wanderquest/pkg/validation"
)

const ItineraryDeletedMessage = "Itinerary deleted"

type ItineraryServiceInterface interface {
	List(ctx context.Context, userId uuid.UUID, query request_models.ListItinerariesQuery) ([]response_models.ItineraryResponse, error)
	Get(ctx context.Context, userId uuid.UUID, id string) (*response_models.ItineraryResponse, error)
	Create(ctx context.Context, userId uuid.UUID, request request_models.ItineraryRequest) (*response_models.ItineraryResponse, error)
	Update(ctx context.Context, userId uuid.UUID, id string, request request_models.ItineraryRequest) (*response_models.ItineraryResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id string) error
	Search(ctx context.Context, userId uuid.UUID, q string) ([]response_models.ItineraryResponse, error)
	Upcoming(ctx context.Context, userId uuid.UUID) ([]response_models.ItineraryResponse, error)
	Stats(ctx context.Context, userId uuid.UUID) (*response_models.ItineraryStats, error)
}

type ItineraryService struct {
	itineraryRepo repositories.ItineraryRepository
	enrichment    EnrichmentServiceInterface
	log           *zap.Logger
	now           func() time.Time
}

func NewItineraryService(itineraryRepo repositories.ItineraryRepository, enrichment EnrichmentServiceInterface, log *zap.Logger) ItineraryServiceInterface {
	return &ItineraryService{
		itineraryRepo: itineraryRepo,
		enrichment:    enrichment,
		log:           log.Named("itinerary"),
		now:           time.Now,
	}
}

func (s *ItineraryService) List(ctx context.Context, userId uuid.UUID, query request_models.ListItinerariesQuery) ([]response_models.ItineraryResponse, error) {
	opts := repositories.ListOptions{Sort: query.Sort}
	switch query.Order {
	case "desc":
		opts.Desc = true
	case "":
		opts.Desc = query.Sort == "createdAt"
	}

	itineraries, err := s.itineraryRepo.ListByUser(ctx, userId, opts)
	if err != nil {
		if errors.Is(err, repositories.ErrUnknownSort) {
			return nil, utils.NewValidationError("sort", "sort must be one of: createdAt startDate budget title")
		}
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	out := buildResponses(itineraries)
	s.enrichment.AnnotateList(ctx, out)
	return out, nil
}

func (s *ItineraryService) Get(ctx context.Context, userId uuid.UUID, id string) (*response_models.ItineraryResponse, error) {
	itinerary, err := s.findOwned(ctx, userId, id)
	if err != nil {
		return nil, err
	}

	resp := db_models.BuildItineraryResponse(itinerary)
	s.enrichment.AnnotateDetail(ctx, &resp)
	return &resp, nil
}

func (s *ItineraryService) Create(ctx context.Context, userId uuid.UUID, request request_models.ItineraryRequest) (*response_models.ItineraryResponse, error) {
	itinerary, err := toItinerary(request)
	if err != nil {
		return nil, err
	}
	itinerary.UserID = userId
	itinerary.WeatherData = datatypes.JSON(`{}`)

	if err := s.itineraryRepo.Create(ctx, itinerary); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	s.log.Info("itinerary created",
		zap.String("itinerary_id", itinerary.ID.String()),
		zap.String("user_id", userId.String()))
	resp := db_models.BuildItineraryResponse(itinerary)
	return &resp, nil
}

// Update replaces every editable field. Activities absent from the request
// are removed.
func (s *ItineraryService) Update(ctx context.Context, userId uuid.UUID, id string, request request_models.ItineraryRequest) (*response_models.ItineraryResponse, error) {
	itineraryId, err := uuid.Parse(id)
	if err != nil {
		return nil, utils.ErrItineraryNotFound
	}
	itinerary, err := toItinerary(request)
	if err != nil {
		return nil, err
	}

	updated, err := s.itineraryRepo.ReplaceByIdAndUser(ctx, itineraryId, userId, itinerary)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if updated == nil {
		return nil, utils.ErrItineraryNotFound
	}

	resp := db_models.BuildItineraryResponse(updated)
	return &resp, nil
}

func (s *ItineraryService) Delete(ctx context.Context, userId uuid.UUID, id string) error {
	itineraryId, err := uuid.Parse(id)
	if err != nil {
		return utils.ErrItineraryNotFound
	}

	deleted, err := s.itineraryRepo.DeleteByIdAndUser(ctx, itineraryId, userId)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if !deleted {
		return utils.ErrItineraryNotFound
	}

	s.log.Info("itinerary deleted",
		zap.String("itinerary_id", id),
		zap.String("user_id", userId.String()))
	return nil
}

func (s *ItineraryService) Search(ctx context.Context, userId uuid.UUID, q string) ([]response_models.ItineraryResponse, error) {
	if strings.TrimSpace(q) == "" {
		return nil, utils.NewValidationError("q", "q is required")
	}
	itineraries, err := s.itineraryRepo.SearchByUser(ctx, userId, q)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return buildResponses(itineraries), nil
}

func (s *ItineraryService) Upcoming(ctx context.Context, userId uuid.UUID) ([]response_models.ItineraryResponse, error) {
	itineraries, err := s.itineraryRepo.ListStartingFrom(ctx, userId, utils.Today(s.now()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return buildResponses(itineraries), nil
}

// Stats counts trips relative to today. A trip in progress is neither
// upcoming nor past.
func (s *ItineraryService) Stats(ctx context.Context, userId uuid.UUID) (*response_models.ItineraryStats, error) {
	itineraries, err := s.itineraryRepo.ListByUser(ctx, userId, repositories.ListOptions{Sort: "startDate"})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	today := utils.Today(s.now())
	stats := &response_models.ItineraryStats{
		TotalTrips: len(itineraries),
		Locations:  []string{},
	}
	total := decimal.Zero
	seen := map[string]bool{}

	for _, it := range itineraries {
		switch {
		case !it.StartDate.Before(today):
			stats.UpcomingTrips++
		case it.EndDate.Before(today):
			stats.PastTrips++
		}
		total = total.Add(it.Budget)

		key := strings.ToLower(strings.TrimSpace(it.Location))
		if !seen[key] {
			seen[key] = true
			stats.Locations = append(stats.Locations, it.Location)
		}
	}
	stats.TotalBudget = total.StringFixed(2)
	return stats, nil
}

// findOwned treats a malformed id like a missing one.
func (s *ItineraryService) findOwned(ctx context.Context, userId uuid.UUID, id string) (*db_models.Itinerary, error) {
	itineraryId, err := uuid.Parse(id)
	if err != nil {
		return nil, utils.ErrItineraryNotFound
	}

	itinerary, err := s.itineraryRepo.FindByIdAndUser(ctx, itineraryId, userId)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if itinerary == nil {
		return nil, utils.ErrItineraryNotFound
	}
	return itinerary, nil
}

func toItinerary(request request_models.ItineraryRequest) (*db_models.Itinerary, error) {
	verr := &utils.ValidationError{}
	add := func(field, msg string) {
		verr.Fields = append(verr.Fields, utils.FieldError{Field: field, Message: msg})
	}

	title := strings.TrimSpace(request.Title)
	if title == "" {
		add("title", "title is required")
	}
	start, err := utils.ParseISODate(request.StartDate)
	if err != nil {
		add("startDate", "startDate must be a valid ISO-8601 date")
	}
	end, err := utils.ParseISODate(request.EndDate)
	if err != nil {
		add("endDate", "endDate must be a valid ISO-8601 date")
	}
	budget, err := decimal.NewFromString(strings.TrimSpace(string(request.Budget)))
	switch {
	case err != nil:
		add("budget", "budget must be numeric")
	case !validation.BudgetInRange(budget):
		add("budget", fmt.Sprintf("budget must be less than %s", validation.MaxBudget))
	}
	location := strings.TrimSpace(request.Location)
	if location == "" {
		add("location", "location is required")
	}

	activities := make(datatypes.JSONSlice[db_models.Activity], 0, len(request.Activities))
	for i, a := range request.Activities {
		if a.Day < 1 {
			add(fmt.Sprintf("activities[%d].day", i), fmt.Sprintf("activities[%d].day must be at least 1", i))
		}
		if strings.TrimSpace(a.Name) == "" {
			add(fmt.Sprintf("activities[%d].name", i), fmt.Sprintf("activities[%d].name is required", i))
		}
		activities = append(activities, db_models.Activity{
			Day:         a.Day,
			Name:        strings.TrimSpace(a.Name),
			Time:        a.Time,
			Description: a.Description,
		})
	}

	if len(verr.Fields) > 0 {
		return nil, verr
	}
	return &db_models.Itinerary{
		Title:      title,
		StartDate:  start,
		EndDate:    end,
		Budget:     budget.Round(2),
		Location:   location,
		Activities: activities,
	}, nil
}

func buildResponses(itineraries []db_models.Itinerary) []response_models.ItineraryResponse {
	out := make([]response_models.ItineraryResponse, 0, len(itineraries))
	for i := range itineraries {
		out = append(out, db_models.BuildItineraryResponse(&itineraries[i]))
	}
	return out
}
