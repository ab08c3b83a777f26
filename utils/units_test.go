package utils

import (
	"math"
	"testing"
)

func TestPoundsToKg(t *testing.T) {
	if got := PoundsToKg(175); math.Abs(got-79.3786) > 1e-9 {
		t.Errorf("PoundsToKg(175) = %v, want 79.3786", got)
	}
}

func TestFeetInchesToCm(t *testing.T) {
	// 5'10" is 70 total inches.
	if got := FeetInchesToCm(5, 10); math.Abs(got-177.8) > 1e-9 {
		t.Errorf("FeetInchesToCm(5, 10) = %v, want 177.8", got)
	}
	if got := FeetInchesToCm(6, 0); math.Abs(got-182.88) > 1e-9 {
		t.Errorf("FeetInchesToCm(6, 0) = %v, want 182.88", got)
	}
}
