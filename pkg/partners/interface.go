package partners

import (
	"context"
	"time"
)

// Adapter answers serviceability questions for one courier partner.
type Adapter interface {
	Code() string
	CheckServiceability(ctx context.Context, request *ServiceabilityRequest) (*ServiceabilityResponse, error)
}

type ServiceabilityRequest struct {
	PickupPincode   string `json:"pickup_pincode"`
	DeliveryPincode string `json:"delivery_pincode"`
	Mode            string `json:"mode"`
	CODRequired     bool   `json:"cod_required"`
}

type ServiceabilityResponse struct {
	Serviceable bool   `json:"serviceable"`
	CODAllowed  bool   `json:"cod_allowed"`
	Reason      string `json:"reason,omitempty"`
}

// AdapterConfig carries the per-partner connection settings.
type AdapterConfig struct {
	BaseURL           string
	APIKey            string
	Timeout           time.Duration
	RequestsPerSecond float64
}
