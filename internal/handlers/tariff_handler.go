package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/middleware"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/models"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/repositories/interfaces"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/services"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/utils"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/validators"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/pkg/logger"
)

type TariffHandler struct {
	tariffService services.TariffService
	audit         *logger.AuditLogger
}

func NewTariffHandler(tariffService services.TariffService, audit *logger.AuditLogger) *TariffHandler {
	return &TariffHandler{
		tariffService: tariffService,
		audit:         audit,
	}
}

// ListRateCards returns rate card rows filtered by the query parameters.
func (h *TariffHandler) ListRateCards(c *gin.Context) {
	filter := &interfaces.TariffFilter{
		Mode:     c.Query("mode"),
		Zone:     c.Query("zone"),
		Scope:    c.Query("scope"),
		SellerID: c.Query("seller_id"),
	}

	// The courier filter accepts the canonical code or a display name.
	if courier := c.Query("courier"); courier != "" {
		code, ok := models.CourierFromName(courier)
		if !ok {
			utils.BadRequestResponse(c, "Unknown courier: "+courier)
			return
		}
		filter.Courier = string(code)
	}

	params := utils.GetPaginationParams(c)
	rows, total, err := h.tariffService.ListRateCards(c.Request.Context(), filter, params)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	meta := &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	}

	response := map[string]interface{}{
		"rate_cards": rows,
	}

	utils.SuccessResponseWithMeta(c, "Rate cards retrieved successfully", response, meta)
}

// GetRateCard retrieves one rate card row by id.
func (h *TariffHandler) GetRateCard(c *gin.Context) {
	row, err := h.tariffService.GetRateCard(c.Request.Context(), c.Param("id"))
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "Rate card")
			return
		}
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Rate card retrieved successfully", row)
}

// UpsertRateCard creates or replaces the row for one rate card cell.
func (h *TariffHandler) UpsertRateCard(c *gin.Context) {
	var request validators.RateCardUpsertRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateRateCardUpsert(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.ToMap())
		return
	}

	row := request.ToTariffRow()
	if err := h.tariffService.UpsertRateCard(c.Request.Context(), row); err != nil {
		handleServiceError(c, err)
		return
	}

	h.audit.LogTariffChange("upsert", row.Key().String(), string(row.Scope), row.SellerID, middleware.SellerIDFromContext(c))

	utils.SuccessResponse(c, "Rate card saved successfully", row)
}

// DeleteRateCard removes one rate card row by id.
func (h *TariffHandler) DeleteRateCard(c *gin.Context) {
	id := c.Param("id")
	if err := h.tariffService.DeleteRateCard(c.Request.Context(), id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "Rate card")
			return
		}
		handleServiceError(c, err)
		return
	}

	h.audit.LogAction("delete", "rate_card", middleware.SellerIDFromContext(c), map[string]interface{}{
		"rate_card_id": id,
	})

	utils.SuccessResponse(c, "Rate card deleted successfully", nil)
}

// RefreshSnapshot reloads the tariff snapshot from the store immediately
// instead of waiting for the next scheduled refresh.
func (h *TariffHandler) RefreshSnapshot(c *gin.Context) {
	if err := h.tariffService.RefreshNow(c.Request.Context()); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Tariff snapshot refreshed", h.tariffService.SnapshotInfo())
}

// GetSnapshotInfo describes the snapshot currently serving lookups.
func (h *TariffHandler) GetSnapshotInfo(c *gin.Context) {
	utils.SuccessResponse(c, "Tariff snapshot info retrieved", h.tariffService.SnapshotInfo())
}
