package quote

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/parcelas/internal/pricing"
)

// Quote is the installment comparison for one price and issuer.
type Quote struct {
	ID          uuid.UUID
	Issuer      string
	Updated     string // date of the fee table used
	BasePrice   float64
	SimplesRate float64
	Results     []pricing.CalcResult
	CreatedAt   time.Time
}

// Selected returns the result for the given installment count.
func (q *Quote) Selected(installments int) (pricing.CalcResult, bool) {
	for _, r := range q.Results {
		if r.Installments == installments {
			return r, true
		}
	}

	return pricing.CalcResult{}, false
}
