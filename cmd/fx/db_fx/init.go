package db_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"wanderquest/internal/config"
	"wanderquest/internal/infra"
)

var Module = fx.Provide(
	provideDB)

func provideDB(lc fx.Lifecycle, cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	if cfg.AutoMigrate {
		if err := infra.MigrateUp(context.Background(), cfg.URL); err != nil {
			return nil, err
		}
		log.Info("migrations applied")
	}

	db, err := infra.InitPostgresql(cfg, log)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			infra.ClosePostgresql(db, log)
			return nil
		},
	})
	return db, nil
}
