package pricing

import (
	"encoding/json"
)

const (
	// DefaultSimplesRate is the Simples Nacional rate used when none is configured (5%).
	DefaultSimplesRate = 0.05
	// DefaultDecimals is the number of decimal places used for monetary rounding.
	DefaultDecimals = 2
)

// FeeTier is a single installment tier of an issuer fee table.
// Percentages are whole-number scaled (8.52 means 8.52%).
type FeeTier struct {
	Installments int     `json:"installments"`
	MDR          float64 `json:"mdr"`
	RR           float64 `json:"rr"`
	// Total is conventionally MDR + RR but is trusted as supplied.
	Total float64 `json:"total"`
}

// IssuerTable is the fee table of one card issuer.
type IssuerTable struct {
	Issuer  string    `json:"issuer"`
	Updated string    `json:"updated,omitempty"` // ISO-8601 date
	Tiers   []FeeTier `json:"parcelas"`
}

// UnmarshalJSON accepts the tier list under either "parcelas" or "tiers".
func (t *IssuerTable) UnmarshalJSON(data []byte) error {
	var raw struct {
		Issuer   string    `json:"issuer"`
		Updated  string    `json:"updated"`
		Parcelas []FeeTier `json:"parcelas"`
		Tiers    []FeeTier `json:"tiers"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	t.Issuer = raw.Issuer
	t.Updated = raw.Updated

	t.Tiers = raw.Parcelas
	if t.Tiers == nil {
		t.Tiers = raw.Tiers
	}

	return nil
}

// CalcResult is the computed price of one installment tier.
type CalcResult struct {
	Installments     int     `json:"installments"`
	FeePercent       float64 `json:"fee_percent"`
	Surcharge        float64 `json:"surcharge"`
	FinalPrice       float64 `json:"final_price"`
	PerInstallment   float64 `json:"per_installment"`
	ExtraPaidPercent float64 `json:"extra_paid_percent"`
}
