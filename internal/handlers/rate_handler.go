package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/middleware"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/models"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/services"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/utils"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/validators"
)

type RateHandler struct {
	rateService services.RateService
}

func NewRateHandler(rateService services.RateService) *RateHandler {
	return &RateHandler{
		rateService: rateService,
	}
}

// CalculateRates prices one shipment across every active courier and mode.
// An empty quote list with diagnostics is still a 200.
func (h *RateHandler) CalculateRates(c *gin.Context) {
	var request validators.RateCalculationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateRateCalculation(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.ToMap())
		return
	}

	// Sellers get their negotiated overrides; anonymous callers are priced
	// on the global rate card.
	sellerID := middleware.SellerIDFromContext(c)

	result, err := h.rateService.ComputeRates(c.Request.Context(), request.ToShipmentRequest(sellerID))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Rates calculated successfully", result)
}

// CheckServiceability reports per-courier serviceability for a lane without
// pricing it.
func (h *RateHandler) CheckServiceability(c *gin.Context) {
	var query validators.ServiceabilityQueryRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.BadRequestResponse(c, "Invalid query: "+err.Error())
		return
	}

	if errs := validators.ValidateServiceabilityQuery(&query); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.ToMap())
		return
	}

	lane := &services.ProbeLane{
		PickupPincode:   query.PickupPincode,
		DeliveryPincode: query.DeliveryPincode,
	}
	if query.Mode != "" {
		lane.Modes = []models.ServiceMode{models.ServiceMode(query.Mode)}
	}

	results, classification, err := h.rateService.CheckLane(c.Request.Context(), lane)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response := map[string]interface{}{
		"zone":           classification.Zone,
		"zone_defaulted": classification.Defaulted,
		"serviceability": results,
	}

	utils.SuccessResponse(c, "Serviceability checked successfully", response)
}
