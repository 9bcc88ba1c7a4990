package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/handlers"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/middleware"
)

// SetupTariffRoutes sets up admin routes for rate card management
func SetupTariffRoutes(r *gin.RouterGroup, tariffHandler *handlers.TariffHandler, jwtSecret string) {
	admin := r.Group("/admin/rate-cards")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		admin.GET("", tariffHandler.ListRateCards)
		admin.POST("", tariffHandler.UpsertRateCard)
		admin.GET("/snapshot", tariffHandler.GetSnapshotInfo)
		admin.POST("/refresh", tariffHandler.RefreshSnapshot)
		admin.GET("/:id", tariffHandler.GetRateCard)
		admin.DELETE("/:id", tariffHandler.DeleteRateCard)
	}
}
