package pricing

// Price is the outcome of pricing a base price against a single fee rate.
type Price struct {
	Surcharge  float64
	FinalPrice float64
}

// CalcFinalPrice returns the surcharge and final price that leave the merchant
// with basePrice after the card fee and the Simples Nacional tax are deducted.
//
// feePercent is a percent (8.52 for 8.52%), simplesRate a fraction (0.05 for 5%).
// Both outputs are rounded up to decimals places.
//
// The combined rate feePercent/100 + simplesRate must stay below 1. Otherwise
// the denominator is zero or negative and the result is negative, infinite or
// NaN; no guard is applied here.
func CalcFinalPrice(basePrice, feePercent, simplesRate float64, decimals int) Price {
	f := feePercent / 100

	// Only the fee rate enters the numerator; the tax rate only narrows the margin.
	delta := (f * basePrice) / (1 - (f + simplesRate))
	final := basePrice + delta

	return Price{
		Surcharge:  RoundUp(delta, decimals),
		FinalPrice: RoundUp(final, decimals),
	}
}
