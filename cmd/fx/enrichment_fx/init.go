package enrichment_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"wanderquest/internal/config"
	"wanderquest/internal/services"
)

var Module = fx.Provide(providePlaces, provideWeather, provideEnrichment)

func providePlaces(cfg config.PlacesConfig, log *zap.Logger) services.PlacesProvider {
	if cfg.APIKey == "" {
		log.Warn("GOOGLE_PLACES_API_KEY is empty, places requests will fail")
	}
	return services.NewGooglePlacesClient(cfg)
}

func provideWeather(cfg config.WeatherConfig, log *zap.Logger) services.WeatherProvider {
	if cfg.APIKey == "" {
		log.Warn("OPENWEATHER_API_KEY is empty, weather requests will fail")
	}
	return services.NewOpenWeatherClient(cfg)
}

func provideEnrichment(places services.PlacesProvider, weather services.WeatherProvider, cfg config.EnrichmentConfig, log *zap.Logger) services.EnrichmentServiceInterface {
	return services.NewEnrichmentService(places, weather, cfg, log)
}
