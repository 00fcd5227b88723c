package main

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"vivubot/internal/api/controllers"
	"vivubot/internal/config"
	"vivubot/pkg/middleware"
)

type RouterParams struct {
	fx.In

	Config *config.Config
	Logger *zap.Logger

	Chat        *controllers.ChatController
	TravelPlans *controllers.TravelPlanController
	Destination *controllers.DestinationController
	Itinerary   *controllers.ItineraryController
	Route       *controllers.RouteController
	Preferences *controllers.PreferencesController
	Notify      *controllers.NotifyController
	Health      *controllers.HealthController
}

func ProvideRouter(p RouterParams) *gin.Engine {
	if !p.Config.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.TraceIDMiddleware(p.Logger))
	r.Use(middleware.RequestLogger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware(p.Config.AllowedOrigins))

	RegisterRoutes(r, p)

	return r
}

func RegisterRoutes(r *gin.Engine, p RouterParams) {
	secret := []byte(p.Config.JWTSecret)
	limiter := middleware.NewRateLimiter(p.Config.GenerateRatePerMinute)

	r.GET("/health", p.Health.Health)
	r.GET("/ws/destinations/:owner", p.Notify.WatchDestinations)
	r.POST("/generate-itinerary", middleware.OptionalJWTMiddleware(secret), limiter.Limit(), p.Itinerary.GenerateItinerary)

	api := r.Group("/api", middleware.OptionalJWTMiddleware(secret))

	chat := api.Group("/chat")
	chat.POST("/save-message", p.Chat.SaveMessage)
	chat.GET("/history/:sessionId", p.Chat.GetHistory)
	chat.GET("/sessions", p.Chat.ListSessions)
	chat.DELETE("/sessions/:sessionId", p.Chat.DeleteSession)

	plans := api.Group("/travel-plans")
	plans.GET("", p.TravelPlans.ListPlans)
	plans.POST("", p.TravelPlans.CreatePlan)
	plans.GET("/:id", p.TravelPlans.GetPlan)
	plans.PUT("/:id", p.TravelPlans.UpdatePlan)
	plans.DELETE("/:id", p.TravelPlans.DeletePlan)

	api.POST("/destination", p.Destination.GetDestination)
	api.POST("/destination/multi", limiter.Limit(), p.Destination.ExtractDestinations)
	api.POST("/route", p.Route.CalculateRoute)

	auth := api.Group("/auth", middleware.JWTAuthMiddleware(secret))
	auth.GET("/preferences", p.Preferences.GetPreferences)
	auth.PUT("/preferences", p.Preferences.UpdatePreferences)
}
