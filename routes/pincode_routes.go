package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/handlers"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/middleware"
)

// SetupPincodeRoutes sets up routes for the pincode directory
func SetupPincodeRoutes(r *gin.RouterGroup, pincodeHandler *handlers.PincodeHandler, jwtSecret string) {
	pincodes := r.Group("/pincodes")
	{
		pincodes.GET("/stats", pincodeHandler.DirectoryStats)
		pincodes.GET("/:pincode", pincodeHandler.LookupPincode)
	}

	admin := r.Group("/admin/pincodes")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		admin.POST("/import", pincodeHandler.ImportPincodes)
	}
}
