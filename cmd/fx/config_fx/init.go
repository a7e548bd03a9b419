package config_fx

import (
	"go.uber.org/fx"

	"wanderquest/internal/config"
)

var Module = fx.Options(
	fx.Provide(config.Load),
	fx.Provide(
		func(cfg *config.Config) config.ServerConfig { return cfg.Server },
		func(cfg *config.Config) config.DatabaseConfig { return cfg.Database },
		func(cfg *config.Config) config.AuthConfig { return cfg.Auth },
		func(cfg *config.Config) config.WeatherConfig { return cfg.Weather },
		func(cfg *config.Config) config.PlacesConfig { return cfg.Places },
		func(cfg *config.Config) config.EnrichmentConfig { return cfg.Enrichment },
		func(cfg *config.Config) config.LoggingConfig { return cfg.Logging },
	),
)
