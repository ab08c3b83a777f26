package utils

import "math"

// RoundSigFigs rounds to n significant digits. The photo-recognition path
// reports nutrients at 3 significant digits, which is a different policy
// from the ledger's fixed 2-decimal truncation; keep them separate.
func RoundSigFigs(x float64, n int) float64 {
	if x == 0 || n <= 0 {
		return 0
	}
	magnitude := math.Ceil(math.Log10(math.Abs(x)))
	power := float64(n) - magnitude
	scale := math.Pow(10, power)
	return math.Round(x*scale) / scale
}
