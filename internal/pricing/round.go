package pricing

import "math"

// roundEpsilon absorbs binary representation error for values that sit on a
// decimal boundary (10.67 stored as 10.669999999999998).
const roundEpsilon = 1e-10

// RoundUp rounds value up (ceiling) to the given number of decimal places.
// Negative values follow plain ceiling semantics and move toward zero.
func RoundUp(value float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Ceil((value-roundEpsilon)*factor) / factor
}
