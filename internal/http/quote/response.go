package quote

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/parcelas/internal/money"
	"github.com/MrJamesThe3rd/parcelas/internal/quote"
)

type resultResponse struct {
	Installments     int     `json:"installments"`
	FeePercent       float64 `json:"fee_percent"`
	Surcharge        float64 `json:"surcharge"`
	FinalPrice       float64 `json:"final_price"`
	PerInstallment   float64 `json:"per_installment"`
	ExtraPaidPercent float64 `json:"extra_paid_percent"`
	Label            string  `json:"label"`
}

type quoteResponse struct {
	ID          uuid.UUID        `json:"id"`
	Issuer      string           `json:"issuer"`
	Updated     string           `json:"updated,omitempty"`
	BasePrice   float64          `json:"base_price"`
	SimplesRate float64          `json:"simples_rate"`
	Results     []resultResponse `json:"results"`
	CreatedAt   time.Time        `json:"created_at"`
}

func toResponse(q *quote.Quote) quoteResponse {
	results := make([]resultResponse, 0, len(q.Results))
	for _, r := range q.Results {
		results = append(results, resultResponse{
			Installments:     r.Installments,
			FeePercent:       r.FeePercent,
			Surcharge:        r.Surcharge,
			FinalPrice:       r.FinalPrice,
			PerInstallment:   r.PerInstallment,
			ExtraPaidPercent: r.ExtraPaidPercent,
			Label:            money.FormatBRL(r.PerInstallment),
		})
	}

	return quoteResponse{
		ID:          q.ID,
		Issuer:      q.Issuer,
		Updated:     q.Updated,
		BasePrice:   q.BasePrice,
		SimplesRate: q.SimplesRate,
		Results:     results,
		CreatedAt:   q.CreatedAt,
	}
}
