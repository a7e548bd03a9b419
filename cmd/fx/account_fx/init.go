package account_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"wanderquest/internal/config"
	"wanderquest/internal/repositories"
	"wanderquest/internal/services"
	"wanderquest/pkg/utils"
)

var Module = fx.Provide(
	provideAccountService, provideUserRepo, provideTokenManager)

func provideUserRepo(db *gorm.DB) repositories.UserRepository {
	return repositories.NewUserRepository(db)
}

func provideTokenManager(cfg config.AuthConfig) *utils.TokenManager {
	return utils.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
}

func provideAccountService(userRepo repositories.UserRepository, tokens *utils.TokenManager, log *zap.Logger) services.AccountServiceInterface {
	return services.NewAccountService(userRepo, tokens, log)
}
