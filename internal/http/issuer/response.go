package issuer

import (
	"github.com/MrJamesThe3rd/parcelas/internal/pricing"
)

type tierResponse struct {
	Installments int     `json:"installments"`
	MDR          float64 `json:"mdr"`
	RR           float64 `json:"rr"`
	Total        float64 `json:"total"`
}

type tableResponse struct {
	Issuer  string         `json:"issuer"`
	Updated string         `json:"updated,omitempty"`
	Tiers   []tierResponse `json:"parcelas"`
}

type summaryResponse struct {
	Issuer  string `json:"issuer"`
	Updated string `json:"updated,omitempty"`
	Tiers   int    `json:"tiers"`
}

func toResponse(t pricing.IssuerTable) tableResponse {
	tiers := make([]tierResponse, 0, len(t.Tiers))
	for _, tier := range t.Tiers {
		tiers = append(tiers, tierResponse{
			Installments: tier.Installments,
			MDR:          tier.MDR,
			RR:           tier.RR,
			Total:        tier.Total,
		})
	}

	return tableResponse{
		Issuer:  t.Issuer,
		Updated: t.Updated,
		Tiers:   tiers,
	}
}

func toSummaryList(tables []pricing.IssuerTable) []summaryResponse {
	responses := make([]summaryResponse, 0, len(tables))
	for _, t := range tables {
		responses = append(responses, summaryResponse{
			Issuer:  t.Issuer,
			Updated: t.Updated,
			Tiers:   len(t.Tiers),
		})
	}

	return responses
}
