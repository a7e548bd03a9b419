package itinerary_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"wanderquest/internal/repositories"
	"wanderquest/internal/services"
)

var Module = fx.Provide(provideItineraryRepo, provideItineraryService)

func provideItineraryRepo(db *gorm.DB) repositories.ItineraryRepository {
	return repositories.NewItineraryRepository(db)
}

func provideItineraryService(itineraryRepo repositories.ItineraryRepository, enrichment services.EnrichmentServiceInterface, log *zap.Logger) services.ItineraryServiceInterface {

	return services.NewItineraryService(itineraryRepo, enrichment, log)
}
