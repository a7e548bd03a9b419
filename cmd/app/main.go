package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"wanderquest/cmd/fx/account_fx"
	"wanderquest/cmd/fx/config_fx"
	"wanderquest/cmd/fx/controllers_fx"
	"wanderquest/cmd/fx/db_fx"
	"wanderquest/cmd/fx/enrichment_fx"
	"wanderquest/cmd/fx/itinerary_fx"
	"wanderquest/cmd/fx/logger_fx"
	"wanderquest/internal/api"
	"wanderquest/internal/api/controllers"
	"wanderquest/internal/config"
	"wanderquest/internal/infra"
	"wanderquest/pkg/utils"
)

func main() {
	app := fx.New(
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		config_fx.Module,
		logger_fx.Module,
		db_fx.Module,
		account_fx.Module,
		enrichment_fx.Module,
		itinerary_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, shutdowner fx.Shutdowner, cfg *config.Config, engine *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Info("starting HTTP server",
				zap.String("addr", srv.Addr),
				zap.String("environment", cfg.Server.Environment))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("server error", zap.Error(err))
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("stopping HTTP server")
			ctx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	})
}

func ProvideRouter(
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	tokens *utils.TokenManager,
	accountController *controllers.AccountController,
	itineraryController *controllers.ItineraryController,
	placesController *controllers.PlacesController) *gin.Engine {

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	return api.NewRouter(api.RouterParams{
		Log:         log,
		Tokens:      tokens,
		CORSOrigins: cfg.Server.CORSOrigins,
		Health: func(ctx context.Context) error {
			return infra.PingPostgresql(ctx, db)
		},
		Account:   accountController,
		Itinerary: itineraryController,
		Places:    placesController,
	})
}
