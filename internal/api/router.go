package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"wanderquest/internal/api/controllers"
	"wanderquest/pkg/middleware"
	"wanderquest/pkg/utils"
	"wanderquest/pkg/validation"
)

// HealthCheck reports whether the service's dependencies are reachable.
type HealthCheck func(ctx context.Context) error

type RouterParams struct {
	Log         *zap.Logger
	Tokens      *utils.TokenManager
	CORSOrigins string
	Health      HealthCheck

	Account   *controllers.AccountController
	Itinerary *controllers.ItineraryController
	Places    *controllers.PlacesController
}

func NewRouter(p RouterParams) *gin.Engine {
	validation.Register()

	r := gin.New()
	r.Use(middleware.RecoveryMiddleware(p.Log))
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.LoggingMiddleware(p.Log))
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.CORSMiddleware(p.CORSOrigins))

	r.NoRoute(func(c *gin.Context) {
		utils.RespondError(c, http.StatusNotFound, "Not found")
	})

	r.GET("/health", healthHandler(p.Health))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	RegisterRoutes(r.Group("/api"), middleware.JWTAuthMiddleware(p.Tokens), p)

	return r
}

func RegisterRoutes(apiGroup *gin.RouterGroup, auth gin.HandlerFunc, p RouterParams) {
	authGroup := apiGroup.Group("/auth")
	authGroup.POST("/register", p.Account.Register)
	authGroup.POST("/login", p.Account.Login)
	authGroup.GET("/profile", auth, p.Account.GetProfile)
	authGroup.PUT("/profile", auth, p.Account.UpdateProfile)
	authGroup.PUT("/password", auth, p.Account.ChangePassword)

	itineraryGroup := apiGroup.Group("/itineraries", auth)
	itineraryGroup.GET("", p.Itinerary.List)
	itineraryGroup.POST("", p.Itinerary.Create)
	itineraryGroup.GET("/search", p.Itinerary.Search)
	itineraryGroup.GET("/upcoming", p.Itinerary.Upcoming)
	itineraryGroup.GET("/stats", p.Itinerary.Stats)
	itineraryGroup.GET("/:id", p.Itinerary.Get)
	itineraryGroup.PUT("/:id", p.Itinerary.Update)
	itineraryGroup.DELETE("/:id", p.Itinerary.Delete)

	apiGroup.GET("/weather", auth, p.Places.Weather)

	placesGroup := apiGroup.Group("/places", auth)
	placesGroup.GET("", p.Places.Search)
	placesGroup.GET("/nearby", p.Places.Nearby)
	placesGroup.GET("/category", p.Places.Category)
	placesGroup.GET("/details/:placeId", p.Places.Details)
	placesGroup.GET("/photos/:ref", p.Places.Photo)
}

func healthHandler(check HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			if err := check(c.Request.Context()); err != nil {
				utils.Logger(c).Warn("health check failed", zap.Error(err))
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
