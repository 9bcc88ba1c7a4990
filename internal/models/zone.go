package models

import "strings"

type Zone string

const (
	ZoneWithinCity   Zone = "within_city"
	ZoneWithinState  Zone = "within_state"
	ZoneWithinRegion Zone = "within_region"
	ZoneMetro        Zone = "metro_to_metro"
	ZoneRestOfIndia  Zone = "rest_of_india"
	ZoneSpecial      Zone = "special"
)

func (z Zone) IsValid() bool {
	switch z {
	case ZoneWithinCity, ZoneWithinState, ZoneWithinRegion, ZoneMetro, ZoneRestOfIndia, ZoneSpecial:
		return true
	}
	return false
}

func (z Zone) DisplayName() string {
	switch z {
	case ZoneWithinCity:
		return "Within City"
	case ZoneWithinState:
		return "Within State"
	case ZoneWithinRegion:
		return "Within Region"
	case ZoneMetro:
		return "Metro to Metro"
	case ZoneRestOfIndia:
		return "Rest of India"
	case ZoneSpecial:
		return "Special Zone"
	default:
		return string(z)
	}
}

// SpecialZoneStates lists the states priced as the special zone regardless of
// any other geographic relationship between origin and destination.
var SpecialZoneStates = map[string]bool{
	"arunachal pradesh":           true,
	"assam":                       true,
	"manipur":                     true,
	"meghalaya":                   true,
	"mizoram":                     true,
	"nagaland":                    true,
	"sikkim":                      true,
	"tripura":                     true,
	"jammu and kashmir":           true,
	"ladakh":                      true,
	"himachal pradesh":            true,
	"andaman and nicobar islands": true,
}

// MetroCities is the fixed metro set used for metro-to-metro pricing.
var MetroCities = map[string]bool{
	"delhi":     true,
	"new delhi": true,
	"mumbai":    true,
	"kolkata":   true,
	"chennai":   true,
	"bengaluru": true,
	"bangalore": true,
	"hyderabad": true,
	"ahmedabad": true,
	"pune":      true,
}

// StateRegions maps each state to its macro-region for the optional
// within-region pricing tier.
var StateRegions = map[string]string{
	"delhi":                       "north",
	"haryana":                     "north",
	"punjab":                      "north",
	"chandigarh":                  "north",
	"uttarakhand":                 "north",
	"uttar pradesh":               "north",
	"rajasthan":                   "north",
	"himachal pradesh":            "north",
	"jammu and kashmir":           "north",
	"ladakh":                      "north",
	"andhra pradesh":              "south",
	"telangana":                   "south",
	"karnataka":                   "south",
	"kerala":                      "south",
	"tamil nadu":                  "south",
	"puducherry":                  "south",
	"lakshadweep":                 "south",
	"bihar":                       "east",
	"jharkhand":                   "east",
	"odisha":                      "east",
	"west bengal":                 "east",
	"andaman and nicobar islands": "east",
	"arunachal pradesh":           "northeast",
	"assam":                       "northeast",
	"manipur":                     "northeast",
	"meghalaya":                   "northeast",
	"mizoram":                     "northeast",
	"nagaland":                    "northeast",
	"sikkim":                      "northeast",
	"tripura":                     "northeast",
	"goa":                         "west",
	"gujarat":                     "west",
	"maharashtra":                 "west",
	"dadra and nagar haveli":      "west",
	"daman and diu":               "west",
	"chhattisgarh":                "central",
	"madhya pradesh":              "central",
}

// NormalizePlace canonicalises a city or state name for comparison.
func NormalizePlace(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, "&", "and")
	return strings.Join(strings.Fields(s), " ")
}

// IsSpecialZoneState reports whether the given state belongs to the special
// pricing zone.
func IsSpecialZoneState(state string) bool {
	return SpecialZoneStates[NormalizePlace(state)]
}

// IsMetroCity reports whether the given city belongs to the metro set.
func IsMetroCity(city string) bool {
	return MetroCities[NormalizePlace(city)]
}

// RegionOf returns the macro-region for a state, or "" when unmapped.
func RegionOf(state string) string {
	return StateRegions[NormalizePlace(state)]
}
