package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/middleware"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/models"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/services"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/utils"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/pkg/logger"
)

type CourierHandler struct {
	courierService services.CourierService
	audit          *logger.AuditLogger
}

func NewCourierHandler(courierService services.CourierService, audit *logger.AuditLogger) *CourierHandler {
	return &CourierHandler{
		courierService: courierService,
		audit:          audit,
	}
}

// ListCouriers returns the courier roster. Pass active=true to restrict the
// list to couriers currently participating in rate aggregation.
func (h *CourierHandler) ListCouriers(c *gin.Context) {
	var (
		couriers []*models.Courier
		err      error
	)

	if c.Query("active") == "true" {
		couriers, err = h.courierService.ListActiveCouriers(c.Request.Context())
	} else {
		couriers, err = h.courierService.ListCouriers(c.Request.Context())
	}
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Couriers retrieved successfully", map[string]interface{}{
		"couriers": couriers,
	})
}

// GetCourier retrieves one courier by canonical code or display name.
func (h *CourierHandler) GetCourier(c *gin.Context) {
	courier, err := h.courierService.GetCourier(c.Request.Context(), c.Param("code"))
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "Courier")
			return
		}
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Courier retrieved successfully", courier)
}

// UpsertCourier creates or updates a courier roster entry.
func (h *CourierHandler) UpsertCourier(c *gin.Context) {
	var request struct {
		Code           string   `json:"code"`
		Name           string   `json:"name"`
		IsActive       *bool    `json:"is_active"`
		SupportsCOD    bool     `json:"supports_cod"`
		SupportedModes []string `json:"supported_modes"`
		ProbeTimeoutMS int      `json:"probe_timeout_ms"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	modes := make([]models.ServiceMode, 0, len(request.SupportedModes))
	for _, mode := range request.SupportedModes {
		modes = append(modes, models.ServiceMode(mode))
	}

	// New entries default to active unless the caller says otherwise.
	active := true
	if request.IsActive != nil {
		active = *request.IsActive
	}

	courier := &models.Courier{
		Code:           models.CourierCode(strings.ToUpper(strings.TrimSpace(request.Code))),
		Name:           request.Name,
		IsActive:       active,
		SupportsCOD:    request.SupportsCOD,
		SupportedModes: modes,
		ProbeTimeoutMS: request.ProbeTimeoutMS,
	}

	if err := h.courierService.UpsertCourier(c.Request.Context(), courier); err != nil {
		handleServiceError(c, err)
		return
	}

	h.audit.LogAction("upsert", "courier", middleware.SellerIDFromContext(c), map[string]interface{}{
		"courier": string(courier.Code),
	})

	utils.SuccessResponse(c, "Courier saved successfully", courier)
}

// SetCourierActive toggles a courier's participation in rate aggregation.
func (h *CourierHandler) SetCourierActive(c *gin.Context) {
	var request struct {
		Active *bool `json:"active"`
	}

	if err := c.ShouldBindJSON(&request); err != nil || request.Active == nil {
		utils.BadRequestResponse(c, "Request body must include an active flag")
		return
	}

	if err := h.courierService.SetCourierActive(c.Request.Context(), c.Param("code"), *request.Active); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "Courier")
			return
		}
		handleServiceError(c, err)
		return
	}

	h.audit.LogCourierToggle(c.Param("code"), *request.Active, middleware.SellerIDFromContext(c))

	utils.SuccessResponse(c, "Courier active flag updated", map[string]interface{}{
		"code":   c.Param("code"),
		"active": *request.Active,
	})
}
