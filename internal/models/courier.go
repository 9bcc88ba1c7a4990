package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CourierCode string

const (
	CourierDelhivery   CourierCode = "DELHIVERY"
	CourierBlueDart    CourierCode = "BLUEDART"
	CourierDTDC        CourierCode = "DTDC"
	CourierXpressbees  CourierCode = "XPRESSBEES"
	CourierEcomExpress CourierCode = "ECOM_EXPRESS"
)

// AllCourierCodes is the closed roster of couriers the platform integrates.
var AllCourierCodes = []CourierCode{
	CourierDelhivery,
	CourierBlueDart,
	CourierDTDC,
	CourierXpressbees,
	CourierEcomExpress,
}

func (c CourierCode) IsValid() bool {
	switch c {
	case CourierDelhivery, CourierBlueDart, CourierDTDC, CourierXpressbees, CourierEcomExpress:
		return true
	}
	return false
}

func (c CourierCode) DisplayName() string {
	switch c {
	case CourierDelhivery:
		return "Delhivery"
	case CourierBlueDart:
		return "Blue Dart"
	case CourierDTDC:
		return "DTDC"
	case CourierXpressbees:
		return "Xpressbees"
	case CourierEcomExpress:
		return "Ecom Express"
	default:
		return string(c)
	}
}

// courierNames folds every display-name spelling seen in partner payloads and
// rate cards onto the canonical code.
var courierNames = map[string]CourierCode{
	"delhivery":    CourierDelhivery,
	"bluedart":     CourierBlueDart,
	"blue dart":    CourierBlueDart,
	"blue-dart":    CourierBlueDart,
	"bluedart air": CourierBlueDart,
	"dtdc":         CourierDTDC,
	"xpressbees":   CourierXpressbees,
	"xpress bees":  CourierXpressbees,
	"ecom express": CourierEcomExpress,
	"ecomexpress":  CourierEcomExpress,
	"ecom":         CourierEcomExpress,
}

// CourierFromName resolves a courier code from a canonical code or any known
// display-name spelling.
func CourierFromName(name string) (CourierCode, bool) {
	trimmed := strings.TrimSpace(name)
	if code := CourierCode(strings.ToUpper(trimmed)); code.IsValid() {
		return code, true
	}
	code, ok := courierNames[strings.ToLower(trimmed)]
	return code, ok
}

type ServiceMode string

const (
	ModeSurface ServiceMode = "surface"
	ModeAir     ServiceMode = "air"
)

var AllServiceModes = []ServiceMode{ModeSurface, ModeAir}

func (m ServiceMode) IsValid() bool {
	return m == ModeSurface || m == ModeAir
}

func (m ServiceMode) DisplayName() string {
	switch m {
	case ModeSurface:
		return "Surface"
	case ModeAir:
		return "Air"
	default:
		return string(m)
	}
}

// Courier is the per-partner configuration document.
type Courier struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Code           CourierCode        `json:"code" bson:"code" validate:"required,courier_code"`
	Name           string             `json:"name" bson:"name" validate:"required"`
	IsActive       bool               `json:"is_active" bson:"is_active"`
	SupportsCOD    bool               `json:"supports_cod" bson:"supports_cod"`
	SupportedModes []ServiceMode      `json:"supported_modes" bson:"supported_modes"`
	ProbeTimeoutMS int                `json:"probe_timeout_ms,omitempty" bson:"probe_timeout_ms,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

func (c *Courier) SupportsMode(mode ServiceMode) bool {
	for _, m := range c.SupportedModes {
		if m == mode {
			return true
		}
	}
	return false
}

// ProbeTimeout returns the per-courier probe budget, falling back to
// def when unset.
func (c *Courier) ProbeTimeout(def time.Duration) time.Duration {
	if c.ProbeTimeoutMS <= 0 {
		return def
	}
	return time.Duration(c.ProbeTimeoutMS) * time.Millisecond
}
