package export_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/parcelas/internal/export"
	"github.com/MrJamesThe3rd/parcelas/internal/pricing"
	"github.com/MrJamesThe3rd/parcelas/internal/quote"
)

func sampleQuote() *quote.Quote {
	return &quote.Quote{
		Issuer:      "Visa",
		Updated:     "2025-06-02",
		BasePrice:   100,
		SimplesRate: 0.05,
		Results: []pricing.CalcResult{
			{Installments: 1, FeePercent: 3.15, Surcharge: 3.5, FinalPrice: 103.5, PerInstallment: 103.5, ExtraPaidPercent: 3.5},
			{Installments: 3, FeePercent: 8.52, Surcharge: 9.86, FinalPrice: 109.86, PerInstallment: 36.62, ExtraPaidPercent: 9.86},
		},
	}
}

func TestService_Summary(t *testing.T) {
	got := export.NewService().Summary(sampleQuote())

	want := "Visa - R$ 100,00 (tabela de 2025-06-02)\n" +
		"1x de R$ 103,50 | total R$ 103,50 | acréscimo R$ 3,50 (+3,50 %)\n" +
		"3x de R$ 36,62 | total R$ 109,86 | acréscimo R$ 9,86 (+9,86 %)\n"

	assert.Equal(t, want, got)
}

func TestService_Summary_NoUpdated(t *testing.T) {
	q := sampleQuote()
	q.Updated = ""
	q.Results = nil

	assert.Equal(t, "Visa - R$ 100,00\n", export.NewService().Summary(q))
}

func TestService_WriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.NewService().WriteCSV(&buf, sampleQuote()))

	want := "installments,fee_percent,surcharge,final_price,per_installment,extra_paid_percent\n" +
		"1,3.15,3.50,103.50,103.50,3.50\n" +
		"3,8.52,9.86,109.86,36.62,9.86\n"

	assert.Equal(t, want, buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestService_WriteCSV_WriterError(t *testing.T) {
	err := export.NewService().WriteCSV(failingWriter{}, sampleQuote())
	assert.ErrorContains(t, err, "disk full")
}
