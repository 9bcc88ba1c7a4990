package models

import "errors"

// Infrastructure failures are fatal to a request and distinguishable from an
// empty business result.
var (
	ErrPincodeStoreUnavailable = errors.New("pincode store unavailable")
	ErrTariffStoreUnavailable  = errors.New("tariff store unavailable")
)

// InvalidRequestError rejects a malformed shipment request before any lookup
// or probing happens.
type InvalidRequestError struct {
	Field   string
	Message string
}

func (e *InvalidRequestError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func NewInvalidRequestError(field, message string) *InvalidRequestError {
	return &InvalidRequestError{Field: field, Message: message}
}

// IsInvalidRequest reports whether err is a caller-fault validation error.
func IsInvalidRequest(err error) bool {
	var ire *InvalidRequestError
	return errors.As(err, &ire)
}

// IsInfrastructure reports whether err is a backing-store failure.
func IsInfrastructure(err error) bool {
	return errors.Is(err, ErrPincodeStoreUnavailable) || errors.Is(err, ErrTariffStoreUnavailable)
}
