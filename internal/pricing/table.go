package pricing

import (
	"slices"
)

// BuildComparisonTable prices every tier of the issuer table for basePrice and
// returns the results ordered by installment count.
//
// The output always holds one result per tier, nothing is filtered or merged.
// Tiers with the same installment count keep their input order.
func BuildComparisonTable(basePrice float64, table IssuerTable, simplesRate float64) []CalcResult {
	results := make([]CalcResult, 0, len(table.Tiers))

	for _, tier := range table.Tiers {
		results = append(results, priceTier(basePrice, tier, simplesRate))
	}

	slices.SortStableFunc(results, func(a, b CalcResult) int {
		return a.Installments - b.Installments
	})

	return results
}

func priceTier(basePrice float64, tier FeeTier, simplesRate float64) CalcResult {
	p := CalcFinalPrice(basePrice, tier.Total, simplesRate, DefaultDecimals)

	// A single payment is the final price itself, never re-rounded.
	perInstallment := p.FinalPrice
	if tier.Installments != 1 {
		perInstallment = RoundUp(p.FinalPrice/float64(tier.Installments), DefaultDecimals)
	}

	return CalcResult{
		Installments:     tier.Installments,
		FeePercent:       tier.Total,
		Surcharge:        p.Surcharge,
		FinalPrice:       p.FinalPrice,
		PerInstallment:   perInstallment,
		ExtraPaidPercent: RoundUp((p.FinalPrice/basePrice-1)*100, DefaultDecimals),
	}
}
