package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MrJamesThe3rd/parcelas/internal/money"
	"github.com/MrJamesThe3rd/parcelas/internal/quote"
)

var csvHeader = []string{
	"installments", "fee_percent", "surcharge", "final_price", "per_installment", "extra_paid_percent",
}

// Service renders quotes for sharing outside the app.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Summary renders a quote as plain text, one line per installment option,
// ready to paste into a message to the customer.
func (s *Service) Summary(q *quote.Quote) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s - %s", q.Issuer, money.FormatBRL(q.BasePrice))

	if q.Updated != "" {
		fmt.Fprintf(&sb, " (tabela de %s)", q.Updated)
	}

	sb.WriteString("\n")

	for _, r := range q.Results {
		fmt.Fprintf(&sb, "%dx de %s | total %s | acréscimo %s (+%s)\n",
			r.Installments,
			money.FormatBRL(r.PerInstallment),
			money.FormatBRL(r.FinalPrice),
			money.FormatBRL(r.Surcharge),
			money.FormatPercent(r.ExtraPaidPercent),
		)
	}

	return sb.String()
}

// WriteCSV writes the quote results as CSV with dot decimals.
func (s *Service) WriteCSV(w io.Writer, q *quote.Quote) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, r := range q.Results {
		record := []string{
			strconv.Itoa(r.Installments),
			formatFloat(r.FeePercent),
			formatFloat(r.Surcharge),
			formatFloat(r.FinalPrice),
			formatFloat(r.PerInstallment),
			formatFloat(r.ExtraPaidPercent),
		}

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing %dx: %w", r.Installments, err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}

	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
