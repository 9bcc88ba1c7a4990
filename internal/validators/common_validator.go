package validators

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/models"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Register custom validation functions
	validate.RegisterValidation("object_id", validateObjectID)
	validate.RegisterValidation("pincode", validatePincode)
	validate.RegisterValidation("payment_mode", validatePaymentMode)
	validate.RegisterValidation("service_mode", validateServiceMode)
	validate.RegisterValidation("courier_code", validateCourierCode)
	validate.RegisterValidation("zone", validateZone)
	validate.RegisterValidation("rate_amount", validateRateAmount)
	validate.RegisterValidation("weight_kg", validateWeightKG)
	validate.RegisterValidation("dimension_cm", validateDimensionCM)
}

// Common validation errors
var (
	ErrInvalidObjectID    = errors.New("invalid object ID format")
	ErrInvalidPincode     = errors.New("invalid pincode format")
	ErrInvalidPaymentMode = errors.New("invalid payment mode")
	ErrInvalidServiceMode = errors.New("invalid service mode")
	ErrInvalidCourierCode = errors.New("invalid courier code")
	ErrInvalidZone        = errors.New("invalid zone")
	ErrInvalidRateAmount  = errors.New("invalid rate amount")
	ErrInvalidWeight      = errors.New("invalid weight value")
	ErrInvalidDimension   = errors.New("invalid dimension value")
)

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag,omitempty"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var messages []string
	for _, err := range v {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

// ToMap flattens errors into a field to message map for API responses.
func (v ValidationErrors) ToMap() map[string]string {
	m := make(map[string]string, len(v))
	for _, err := range v {
		if _, ok := m[err.Field]; !ok {
			m[err.Field] = err.Message
		}
	}
	return m
}

// ValidateStruct validates a struct and returns detailed errors
func ValidateStruct(s interface{}) ValidationErrors {
	var validationErrors ValidationErrors

	err := validate.Struct(s)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			validationError := ValidationError{
				Field:   err.Field(),
				Tag:     err.Tag(),
				Value:   fmt.Sprintf("%v", err.Value()),
				Message: getErrorMessage(err),
			}
			validationErrors = append(validationErrors, validationError)
		}
	}

	return validationErrors
}

func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", err.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", err.Field(), err.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
	case "object_id":
		return "Invalid ID format"
	case "pincode":
		return "Pincode must be a six digit Indian postal code"
	case "payment_mode":
		return "Payment mode must be prepaid or cod"
	case "service_mode":
		return "Service mode must be surface or air"
	case "courier_code":
		return "Unknown courier code"
	case "zone":
		return "Unknown zone"
	case "rate_amount":
		return "Rate amount out of range"
	case "weight_kg":
		return "Weight must be between 0.01 and 100 kg"
	case "dimension_cm":
		return "Dimension must be between 0 and 300 cm"
	default:
		return fmt.Sprintf("Validation failed for %s", err.Field())
	}
}

// Custom validation functions
func validateObjectID(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // Let required tag handle empty values
	}
	_, err := primitive.ObjectIDFromHex(value)
	return err == nil
}

func validatePincode(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return pincodeRegex.MatchString(value)
}

func validatePaymentMode(fl validator.FieldLevel) bool {
	return models.PaymentMode(fl.Field().String()).IsValid()
}

func validateServiceMode(fl validator.FieldLevel) bool {
	return models.ServiceMode(fl.Field().String()).IsValid()
}

func validateCourierCode(fl validator.FieldLevel) bool {
	return models.CourierCode(fl.Field().String()).IsValid()
}

func validateZone(fl validator.FieldLevel) bool {
	return models.Zone(fl.Field().String()).IsValid()
}

func validateRateAmount(fl validator.FieldLevel) bool {
	amount := fl.Field().Float()
	return amount >= 0 && amount <= 100000
}

func validateWeightKG(fl validator.FieldLevel) bool {
	weight := fl.Field().Float()
	return weight > 0 && weight <= 100
}

func validateDimensionCM(fl validator.FieldLevel) bool {
	dim := fl.Field().Float()
	return dim >= 0 && dim <= 300
}

var pincodeRegex = regexp.MustCompile(`^[1-9][0-9]{5}$`)
