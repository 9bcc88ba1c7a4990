package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/handlers"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/middleware"
)

// SetupCourierRoutes sets up routes for the courier roster
func SetupCourierRoutes(r *gin.RouterGroup, courierHandler *handlers.CourierHandler, jwtSecret string) {
	couriers := r.Group("/couriers")
	{
		couriers.GET("", courierHandler.ListCouriers)
		couriers.GET("/:code", courierHandler.GetCourier)
	}

	admin := r.Group("/admin/couriers")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		admin.PUT("", courierHandler.UpsertCourier)
		admin.PATCH("/:code/active", courierHandler.SetCourierActive)
	}
}
