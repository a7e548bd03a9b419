package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wanderquest/internal/config"
	"wanderquest/internal/models/response_models"
	"wanderquest/pkg/utils"
)

var testEnrichmentConfig = config.EnrichmentConfig{
	Query:        "tourist attractions",
	ListPlaces:   3,
	DetailPlaces: 5,
	ForecastDays: 5,
	Concurrency:  2,
}

func TestEnrichmentService_AnnotateListIsolatesFailures(t *testing.T) {
	places := &fakePlaces{failFor: map[string]bool{"Atlantis": true}}
	svc := NewEnrichmentService(places, &fakeWeather{}, testEnrichmentConfig, zap.NewNop())

	list := []response_models.ItineraryResponse{
		{ID: "1", Location: "Paris"},
		{ID: "2", Location: "Atlantis"},
		{ID: "3", Location: "Rome"},
	}
	svc.AnnotateList(context.Background(), list)

	assert.Len(t, list[0].PlacesWithPhotos, 3)
	assert.Nil(t, list[1].PlacesWithPhotos)
	assert.Len(t, list[2].PlacesWithPhotos, 3)
	assert.ElementsMatch(t, []string{"Paris", "Atlantis", "Rome"}, places.calls)
}

func TestEnrichmentService_AnnotateDetail(t *testing.T) {
	svc := NewEnrichmentService(&fakePlaces{}, &fakeWeather{}, testEnrichmentConfig, zap.NewNop())

	it := &response_models.ItineraryResponse{ID: "1", Location: "Paris"}
	svc.AnnotateDetail(context.Background(), it)

	assert.Len(t, it.PlacesWithPhotos, 5)
	require.Len(t, it.Weather, 5)
	assert.Equal(t, "2025-06-01", it.Weather[0].Date)
}

func TestEnrichmentService_AnnotateDetailWeatherFailure(t *testing.T) {
	svc := NewEnrichmentService(&fakePlaces{}, &fakeWeather{err: utils.ErrLocationNotFound}, testEnrichmentConfig, zap.NewNop())

	it := &response_models.ItineraryResponse{ID: "1", Location: "Nowhere"}
	svc.AnnotateDetail(context.Background(), it)

	assert.Len(t, it.PlacesWithPhotos, 5)
	assert.Nil(t, it.Weather)
}

func TestEnrichmentService_CachesPlacesPerLocation(t *testing.T) {
	cfg := testEnrichmentConfig
	cfg.PlacesCacheTTL = time.Minute
	places := &fakePlaces{failFor: map[string]bool{"Atlantis": true}}
	svc := NewEnrichmentService(places, &fakeWeather{}, cfg, zap.NewNop())

	first := []response_models.ItineraryResponse{{ID: "1", Location: "Paris"}, {ID: "2", Location: "Atlantis"}}
	svc.AnnotateList(context.Background(), first)
	second := []response_models.ItineraryResponse{{ID: "3", Location: " paris "}, {ID: "4", Location: "Atlantis"}}
	svc.AnnotateList(context.Background(), second)

	assert.Len(t, second[0].PlacesWithPhotos, 3)
	assert.Nil(t, second[1].PlacesWithPhotos)
	assert.ElementsMatch(t, []string{"Paris", "Atlantis", "Atlantis"}, places.calls)
}
