package controllers_fx

import (
	"go.uber.org/fx"

	"wanderquest/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewItineraryController),
	fx.Provide(controllers.NewPlacesController))
