package utils

import "testing"

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{118, 118},
		{22.8599, 22.86},
		{5.9994, 6},
		{39.3294, 39.33},
		{-2.344, -2.34},
		{-2.346, -2.35},
	}

	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCeilToHalfKG(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{0.1, 0.5},
		{0.2, 0.5},
		{0.5, 0.5},
		{0.50001, 1.0},
		{1.2, 1.5},
		{2.0, 2.0},
		{5.4, 5.5},
	}

	for _, tt := range tests {
		if got := CeilToHalfKG(tt.in); got != tt.want {
			t.Errorf("CeilToHalfKG(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestHalfKGUnits(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{-1, 0},
		{0, 0},
		{0.2, 1},
		{0.5, 1},
		{0.7, 2},
		{1.0, 2},
		{2.3, 5},
	}

	for _, tt := range tests {
		if got := HalfKGUnits(tt.in); got != tt.want {
			t.Errorf("HalfKGUnits(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
