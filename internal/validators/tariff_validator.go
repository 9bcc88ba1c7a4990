package validators

import (
	"math"

	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/models"
)

type RateCardUpsertRequest struct {
	Courier           string  `json:"courier" validate:"required,courier_code"`
	Mode              string  `json:"mode" validate:"required,service_mode"`
	Zone              string  `json:"zone" validate:"required,zone"`
	SlabKG            float64 `json:"slab_kg" validate:"required,gt=0,lte=100"`
	SellerID          string  `json:"seller_id" validate:"omitempty,object_id"`
	BaseRate          float64 `json:"base_rate" validate:"required,rate_amount"`
	AdditionalRate    float64 `json:"additional_rate" validate:"omitempty,rate_amount"`
	CODFlatFee        float64 `json:"cod_flat_fee" validate:"omitempty,rate_amount"`
	CODPercent        float64 `json:"cod_percent" validate:"omitempty,gte=0,lte=10"`
	MinimumBillableKG float64 `json:"minimum_billable_kg" validate:"omitempty,gte=0,lte=100"`
	EstimatedDays     int     `json:"estimated_days" validate:"omitempty,gte=1,lte=30"`
}

func ValidateRateCardUpsert(req *RateCardUpsertRequest) ValidationErrors {
	errors := ValidateStruct(req)

	// Slabs sit on half kilogram boundaries.
	if req.SlabKG > 0 && !isHalfKGMultiple(req.SlabKG) {
		errors = append(errors, ValidationError{
			Field:   "slab_kg",
			Message: "Slab must be a multiple of 0.5 kg",
		})
	}

	if req.MinimumBillableKG > 0 && !isHalfKGMultiple(req.MinimumBillableKG) {
		errors = append(errors, ValidationError{
			Field:   "minimum_billable_kg",
			Message: "Minimum billable weight must be a multiple of 0.5 kg",
		})
	}

	return errors
}

// ToTariffRow maps a validated request onto the domain type. Scope is
// derived from whether a seller is attached.
func (r *RateCardUpsertRequest) ToTariffRow() *models.TariffRow {
	scope := models.TariffScopeGlobal
	if r.SellerID != "" {
		scope = models.TariffScopeSeller
	}

	return &models.TariffRow{
		Courier:           models.CourierCode(r.Courier),
		Mode:              models.ServiceMode(r.Mode),
		Zone:              models.Zone(r.Zone),
		SlabKG:            r.SlabKG,
		Scope:             scope,
		SellerID:          r.SellerID,
		BaseRate:          r.BaseRate,
		AdditionalRate:    r.AdditionalRate,
		CODFlatFee:        r.CODFlatFee,
		CODPercent:        r.CODPercent,
		MinimumBillableKG: r.MinimumBillableKG,
		EstimatedDays:     r.EstimatedDays,
	}
}

func isHalfKGMultiple(v float64) bool {
	scaled := v * 2
	return math.Abs(scaled-math.Round(scaled)) < 1e-9
}
