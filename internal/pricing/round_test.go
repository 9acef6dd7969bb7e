package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/parcelas/internal/pricing"
)

func TestRoundUp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		decimals int
		want     float64
	}{
		{name: "BoundaryRepresentationError", value: 10.669999999999998, decimals: 2, want: 10.67},
		{name: "ExactBoundary", value: 10.67, decimals: 2, want: 10.67},
		{name: "JustAboveBoundary", value: 10.671, decimals: 2, want: 10.68},
		{name: "Surcharge", value: 9.851988899167436, decimals: 2, want: 9.86},
		{name: "WholeNumber", value: 100, decimals: 2, want: 100},
		{name: "ZeroDecimals", value: 2.1, decimals: 0, want: 3},
		{name: "ThreeDecimals", value: 1.0001, decimals: 3, want: 1.001},
		{name: "NegativeMovesTowardZero", value: -1.234, decimals: 2, want: -1.23},
		{name: "NegativeExact", value: -5.5, decimals: 2, want: -5.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pricing.RoundUp(tt.value, tt.decimals))
		})
	}
}

func TestRoundUp_NeverBelowValue(t *testing.T) {
	for i := 1; i <= 5000; i++ {
		x := float64(i) * 0.0137

		got := pricing.RoundUp(x, 2)

		assert.GreaterOrEqual(t, got, x-1e-9, "value %v", x)
		assert.Less(t, got, x+0.01, "value %v", x)
	}
}
