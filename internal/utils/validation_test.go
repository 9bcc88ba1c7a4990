package utils

import "testing"

func TestIsValidPincode(t *testing.T) {
	tests := []struct {
		pincode string
		want    bool
	}{
		{"400001", true},
		{"110001", true},
		{"999999", true},
		{"012345", false},
		{"40001", false},
		{"4000011", false},
		{"40000a", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidPincode(tt.pincode); got != tt.want {
			t.Errorf("IsValidPincode(%q) = %v, want %v", tt.pincode, got, tt.want)
		}
	}
}
