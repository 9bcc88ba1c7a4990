package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/middleware"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/models"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/services"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/utils"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/pkg/logger"
)

type PincodeHandler struct {
	pincodeService services.PincodeService
	audit          *logger.AuditLogger
}

func NewPincodeHandler(pincodeService services.PincodeService, audit *logger.AuditLogger) *PincodeHandler {
	return &PincodeHandler{
		pincodeService: pincodeService,
		audit:          audit,
	}
}

// LookupPincode returns the directory record for one pincode.
func (h *PincodeHandler) LookupPincode(c *gin.Context) {
	record, err := h.pincodeService.Lookup(c.Request.Context(), c.Param("pincode"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if record == nil {
		utils.NotFoundResponse(c, "Pincode")
		return
	}

	utils.SuccessResponse(c, "Pincode retrieved successfully", record)
}

// ImportPincodes bulk-loads directory rows.
func (h *PincodeHandler) ImportPincodes(c *gin.Context) {
	var request struct {
		Records []*models.PincodeRecord `json:"records"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	written, err := h.pincodeService.Import(c.Request.Context(), request.Records)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	h.audit.LogAction("import", "pincodes", middleware.SellerIDFromContext(c), map[string]interface{}{
		"received": len(request.Records),
		"written":  written,
	})

	response := map[string]interface{}{
		"received": len(request.Records),
		"written":  written,
	}

	utils.SuccessResponse(c, "Pincode records imported successfully", response)
}

// DirectoryStats reports the size of the pincode directory.
func (h *PincodeHandler) DirectoryStats(c *gin.Context) {
	count, err := h.pincodeService.Count(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Pincode directory stats retrieved", map[string]interface{}{
		"total_pincodes": count,
	})
}
