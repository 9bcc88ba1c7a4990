package models

type PaymentMode string

const (
	PaymentPrepaid PaymentMode = "prepaid"
	PaymentCOD     PaymentMode = "cod"
)

func (m PaymentMode) IsValid() bool {
	return m == PaymentPrepaid || m == PaymentCOD
}

// Dimensions are the declared package dimensions in centimeters.
type Dimensions struct {
	LengthCM float64 `json:"length_cm" bson:"length_cm" validate:"gte=0"`
	WidthCM  float64 `json:"width_cm" bson:"width_cm" validate:"gte=0"`
	HeightCM float64 `json:"height_cm" bson:"height_cm" validate:"gte=0"`
}

func (d Dimensions) IsZero() bool {
	return d.LengthCM == 0 && d.WidthCM == 0 && d.HeightCM == 0
}

// ShipmentRequest describes one rate inquiry. SellerID is empty for anonymous
// callers, who are priced on the global rate card only.
type ShipmentRequest struct {
	PickupPincode   string        `json:"pickup_pincode" validate:"required,pincode"`
	DeliveryPincode string        `json:"delivery_pincode" validate:"required,pincode"`
	WeightKG        float64       `json:"weight_kg" validate:"required,gt=0"`
	Dimensions      Dimensions    `json:"dimensions"`
	DeclaredValue   float64       `json:"declared_value" validate:"gte=0"`
	PaymentMode     PaymentMode   `json:"payment_mode" validate:"required,payment_mode"`
	Modes           []ServiceMode `json:"modes,omitempty" validate:"omitempty,dive,service_mode"`
	SellerID        string        `json:"-"`
}

// RequestedModes defaults to every service mode when the caller does not
// narrow the request.
func (r *ShipmentRequest) RequestedModes() []ServiceMode {
	if len(r.Modes) == 0 {
		return AllServiceModes
	}
	return r.Modes
}
