package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/handlers"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/middleware"
)

// SetupRateRoutes sets up routes for rate aggregation and serviceability.
// The quote limiter throttles the fan-out endpoints, which are the only
// ones that hit partner APIs.
func SetupRateRoutes(r *gin.RouterGroup, rateHandler *handlers.RateHandler, jwtSecret string, quoteLimiter gin.HandlerFunc) {
	rates := r.Group("/rates")
	if quoteLimiter != nil {
		rates.Use(quoteLimiter)
	}
	{
		// Anonymous callers are allowed; an attached seller token unlocks
		// seller-specific rate overrides.
		rates.POST("/calculate", middleware.OptionalAuth(jwtSecret), rateHandler.CalculateRates)
		rates.GET("/serviceability", rateHandler.CheckServiceability)
	}
}
