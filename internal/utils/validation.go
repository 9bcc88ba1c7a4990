package utils

import "regexp"

var pincodeRegex = regexp.MustCompile(`^[1-9][0-9]{5}$`)

// IsValidPincode reports whether s is a six digit Indian postal code.
// Pincodes never start with zero.
func IsValidPincode(s string) bool {
	return pincodeRegex.MatchString(s)
}
