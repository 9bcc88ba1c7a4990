package partners

import (
	"context"
	"regexp"
)

var staticPincodePattern = regexp.MustCompile(`^[1-8][0-9]{5}$`)

// StaticAdapter answers serviceability offline from fixed rules. It
// stands in for partners without configured credentials so local
// environments produce quotes without network calls.
type StaticAdapter struct {
	code       string
	modes      map[string]bool
	codSupport bool
	denyListed map[string]bool
}

func NewStaticAdapter(code string, supportedModes []string, codSupport bool, denyListed []string) *StaticAdapter {
	modes := make(map[string]bool, len(supportedModes))
	for _, mode := range supportedModes {
		modes[mode] = true
	}

	deny := make(map[string]bool, len(denyListed))
	for _, pincode := range denyListed {
		deny[pincode] = true
	}

	return &StaticAdapter{
		code:       code,
		modes:      modes,
		codSupport: codSupport,
		denyListed: deny,
	}
}

func (s *StaticAdapter) Code() string {
	return s.code
}

func (s *StaticAdapter) CheckServiceability(ctx context.Context, request *ServiceabilityRequest) (*ServiceabilityResponse, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if !staticPincodePattern.MatchString(request.PickupPincode) ||
		!staticPincodePattern.MatchString(request.DeliveryPincode) {
		return &ServiceabilityResponse{
			Serviceable: false,
			Reason:      "pincode outside coverage",
		}, nil
	}

	if s.denyListed[request.DeliveryPincode] {
		return &ServiceabilityResponse{
			Serviceable: false,
			Reason:      "pincode not covered",
		}, nil
	}

	if len(s.modes) > 0 && !s.modes[request.Mode] {
		return &ServiceabilityResponse{
			Serviceable: false,
			Reason:      "mode not supported",
		}, nil
	}

	if request.CODRequired && !s.codSupport {
		return &ServiceabilityResponse{
			Serviceable: false,
			CODAllowed:  false,
			Reason:      "cod not available",
		}, nil
	}

	return &ServiceabilityResponse{
		Serviceable: true,
		CODAllowed:  s.codSupport,
	}, nil
}
