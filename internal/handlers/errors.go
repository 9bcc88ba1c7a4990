package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/models"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/utils"
)

// handleServiceError translates service failures onto the API envelope.
// Caller faults map to 400, backing-store outages to 503, everything else
// to 500.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case models.IsInvalidRequest(err):
		var invalid *models.InvalidRequestError
		errors.As(err, &invalid)
		if invalid.Field != "" {
			utils.ValidationErrorResponse(c, map[string]string{invalid.Field: invalid.Message})
			return
		}
		utils.BadRequestResponse(c, invalid.Message)
	case models.IsInfrastructure(err):
		utils.ServiceUnavailableResponse(c, "A backing store is temporarily unavailable")
	default:
		utils.ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}
