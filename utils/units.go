package utils

// Unit conversions used by goal estimation. Inputs arrive in US customary
// units; the Mifflin-St Jeor formula wants kilograms and centimeters.

const lbsPerKg = 0.453592

func PoundsToKg(lbs float64) float64 {
	return lbs * lbsPerKg
}

func FeetInchesToCm(feet, inches int) float64 {
	return float64(feet*12+inches) * 2.54
}
