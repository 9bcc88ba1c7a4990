package validators

import (
	"fmt"

	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/models"
)

type RateCalculationRequest struct {
	PickupPincode   string   `json:"pickup_pincode" validate:"required,pincode"`
	DeliveryPincode string   `json:"delivery_pincode" validate:"required,pincode"`
	WeightKG        float64  `json:"weight_kg" validate:"required,weight_kg"`
	LengthCM        float64  `json:"length_cm" validate:"omitempty,dimension_cm"`
	WidthCM         float64  `json:"width_cm" validate:"omitempty,dimension_cm"`
	HeightCM        float64  `json:"height_cm" validate:"omitempty,dimension_cm"`
	DeclaredValue   float64  `json:"declared_value" validate:"omitempty,gte=0,lte=500000"`
	PaymentMode     string   `json:"payment_mode" validate:"required,payment_mode"`
	Modes           []string `json:"modes" validate:"omitempty,max=2,dive,service_mode"`
}

type ServiceabilityQueryRequest struct {
	PickupPincode   string `json:"pickup_pincode" form:"pickup_pincode" validate:"required,pincode"`
	DeliveryPincode string `json:"delivery_pincode" form:"delivery_pincode" validate:"required,pincode"`
	Mode            string `json:"mode" form:"mode" validate:"omitempty,service_mode"`
}

func ValidateRateCalculation(req *RateCalculationRequest) ValidationErrors {
	errors := ValidateStruct(req)

	// Dimensions are all or nothing; a partial box cannot be priced.
	dims := []struct {
		name  string
		value float64
	}{
		{"length_cm", req.LengthCM},
		{"width_cm", req.WidthCM},
		{"height_cm", req.HeightCM},
	}

	anySet := false
	for _, d := range dims {
		if d.value > 0 {
			anySet = true
			break
		}
	}

	if anySet {
		for _, d := range dims {
			if d.value <= 0 {
				errors = append(errors, ValidationError{
					Field:   d.name,
					Message: "All three dimensions are required when any is provided",
				})
			}
		}
	}

	// Validate duplicate modes
	seen := make(map[string]bool, len(req.Modes))
	for i, mode := range req.Modes {
		if seen[mode] {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("modes[%d]", i),
				Message: "Duplicate service mode",
			})
		}
		seen[mode] = true
	}

	return errors
}

func ValidateServiceabilityQuery(req *ServiceabilityQueryRequest) ValidationErrors {
	return ValidateStruct(req)
}

// ToShipmentRequest maps a validated request onto the domain type.
func (r *RateCalculationRequest) ToShipmentRequest(sellerID string) *models.ShipmentRequest {
	modes := make([]models.ServiceMode, 0, len(r.Modes))
	for _, m := range r.Modes {
		modes = append(modes, models.ServiceMode(m))
	}

	return &models.ShipmentRequest{
		PickupPincode:   r.PickupPincode,
		DeliveryPincode: r.DeliveryPincode,
		WeightKG:        r.WeightKG,
		Dimensions: models.Dimensions{
			LengthCM: r.LengthCM,
			WidthCM:  r.WidthCM,
			HeightCM: r.HeightCM,
		},
		DeclaredValue: r.DeclaredValue,
		PaymentMode:   models.PaymentMode(r.PaymentMode),
		Modes:         modes,
		SellerID:      sellerID,
	}
}
