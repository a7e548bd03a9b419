package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"wanderquest/internal/config"
	"wanderquest/internal/metrics"
	"wanderquest/internal/models/response_models"
	"wanderquest/pkg/memcache"
)

// EnrichmentServiceInterface attaches live third-party data to itineraries.
// Failures never propagate: the affected itinerary is returned without the
// data that could not be fetched.
type EnrichmentServiceInterface interface {
	AnnotateList(ctx context.Context, itineraries []response_models.ItineraryResponse)
	AnnotateDetail(ctx context.Context, itinerary *response_models.ItineraryResponse)
}

type EnrichmentService struct {
	places  PlacesProvider
	weather WeatherProvider
	cfg     config.EnrichmentConfig
	log     *zap.Logger
	cache   memcache.Cache[[]response_models.PlaceSummary]
}

func NewEnrichmentService(places PlacesProvider, weather WeatherProvider, cfg config.EnrichmentConfig, log *zap.Logger) EnrichmentServiceInterface {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	s := &EnrichmentService{
		places:  places,
		weather: weather,
		cfg:     cfg,
		log:     log.Named("enrichment"),
	}
	if cfg.PlacesCacheTTL > 0 {
		s.cache = memcache.NewTTLCache[[]response_models.PlaceSummary](cfg.PlacesCacheTTL)
	}
	return s
}

func (s *EnrichmentService) AnnotateList(ctx context.Context, itineraries []response_models.ItineraryResponse) {
	var g errgroup.Group
	g.SetLimit(s.cfg.Concurrency)

	for i := range itineraries {
		it := &itineraries[i]
		g.Go(func() error {
			it.PlacesWithPhotos = s.findPlaces(ctx, it, s.cfg.ListPlaces)
			return nil
		})
	}
	_ = g.Wait()
}

func (s *EnrichmentService) AnnotateDetail(ctx context.Context, itinerary *response_models.ItineraryResponse) {
	var g errgroup.Group

	g.Go(func() error {
		itinerary.PlacesWithPhotos = s.findPlaces(ctx, itinerary, s.cfg.DetailPlaces)
		return nil
	})
	g.Go(func() error {
		days, err := s.weather.DailyForecast(ctx, itinerary.Location, s.cfg.ForecastDays)
		if err != nil {
			metrics.RecordEnrichmentFailure("weather")
			s.log.Warn("weather enrichment failed",
				zap.String("itinerary_id", itinerary.ID),
				zap.String("location", itinerary.Location),
				zap.Error(err))
			return nil
		}
		itinerary.Weather = days
		return nil
	})
	_ = g.Wait()
}

func (s *EnrichmentService) findPlaces(ctx context.Context, it *response_models.ItineraryResponse, limit int) []response_models.PlaceSummary {
	key := fmt.Sprintf("%s|%d", strings.ToLower(strings.TrimSpace(it.Location)), limit)
	if s.cache != nil {
		if places, ok := s.cache.Get(key); ok {
			return places
		}
	}

	places, err := s.places.FindPlaces(ctx, it.Location, s.cfg.Query, limit)
	if err != nil {
		metrics.RecordEnrichmentFailure("places")
		s.log.Warn("places enrichment failed",
			zap.String("itinerary_id", it.ID),
			zap.String("location", it.Location),
			zap.Error(err))
		return nil
	}
	if s.cache != nil {
		s.cache.Set(key, places)
	}
	return places
}
