package view

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/parcelas/internal/export"
	"github.com/MrJamesThe3rd/parcelas/internal/issuer"
	"github.com/MrJamesThe3rd/parcelas/internal/pricing"
	"github.com/MrJamesThe3rd/parcelas/internal/quote"
	"github.com/MrJamesThe3rd/parcelas/internal/settings"
)

func testRegistry() *issuer.Registry {
	return issuer.NewRegistry([]pricing.IssuerTable{
		{
			Issuer:  "Visa",
			Updated: "2025-06-02",
			Tiers: []pricing.FeeTier{
				{Installments: 1, MDR: 3.15, Total: 3.15},
				{Installments: 2, MDR: 3.79, RR: 0.69, Total: 4.48},
				{Installments: 3, MDR: 3.79, RR: 1.39, Total: 5.18},
			},
		},
	})
}

func testQuote(t *testing.T) *quote.Quote {
	t.Helper()

	q, err := quote.NewService(testRegistry()).Calculate(t.Context(), quote.Request{
		Issuer:      "Visa",
		Price:       100,
		SimplesRate: 0.05,
	})
	require.NoError(t, err)

	return q
}

func TestCalculatorModel_SelectTier(t *testing.T) {
	session := &Session{Settings: settings.Default()}
	registry := testRegistry()
	m := NewCalculatorModel(registry, quote.NewService(registry), session)

	q := testQuote(t)

	updated, _ := m.Update(quoteResultMsg{quote: q})
	m = updated.(CalculatorModel)

	require.Equal(t, calcStateResults, m.state)
	assert.Same(t, q, session.LastQuote)
	assert.Len(t, m.table.Rows(), 3)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(CalculatorModel)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(CalculatorModel)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(CalculatorModel)

	require.Equal(t, calcStateDetail, m.state)
	assert.Equal(t, 3, m.selected.Installments)
	assert.Equal(t, 35.26, m.selected.PerInstallment)
	assert.Contains(t, m.View(), "3x de R$ 35,26")

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(CalculatorModel)
	assert.Equal(t, calcStateResults, m.state)
}

func TestCalculatorModel_Error(t *testing.T) {
	session := &Session{Settings: settings.Default()}
	registry := testRegistry()
	m := NewCalculatorModel(registry, quote.NewService(registry), session)

	updated, _ := m.Update(quoteResultMsg{err: quote.ErrInvalidPrice})
	m = updated.(CalculatorModel)

	assert.Equal(t, calcStateForm, m.state)
	assert.Nil(t, session.LastQuote)
	assert.Contains(t, m.View(), quote.ErrInvalidPrice.Error())
}

func TestValidatePrice(t *testing.T) {
	assert.NoError(t, validatePrice("1.234,56"))
	assert.NoError(t, validatePrice("99.90"))
	assert.ErrorIs(t, validatePrice("0"), quote.ErrInvalidPrice)
	assert.ErrorIs(t, validatePrice("abc"), quote.ErrInvalidPrice)
	assert.ErrorIs(t, validatePrice(""), quote.ErrInvalidPrice)
}

func TestErrorText(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), quote.ErrIssuerRequired)

	assert.Equal(t, quote.ErrIssuerRequired.Error(), errorText(wrapped))
	assert.Equal(t, "boom", errorText(errors.New("boom")))
}

func TestSettingsModel(t *testing.T) {
	session := &Session{Settings: settings.Default()}
	m := NewSettingsModel(session)

	m.input.SetValue("6,5")
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(SettingsModel)

	require.NoError(t, m.err)
	assert.Equal(t, 6.5, session.Settings.SimplesPercent)

	m.input.SetValue("120")
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(SettingsModel)

	assert.ErrorIs(t, m.err, settings.ErrInvalidPercent)
	assert.Equal(t, 6.5, session.Settings.SimplesPercent)
}

func TestWriteQuoteFile(t *testing.T) {
	q := testQuote(t)
	q.CreatedAt = time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC)

	dir := filepath.Join(t.TempDir(), "exports")

	path, err := writeQuoteFile(export.NewService(), q, dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "parcelas-visa-20250610-143000.csv"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "3,5.18,5.77,105.77,35.26,5.77", lines[3])
}

func TestExportModel_NoQuote(t *testing.T) {
	m := NewExportModel(export.NewService(), &Session{Settings: settings.Default()})

	assert.Nil(t, m.Init())
	assert.Contains(t, m.View(), "No quote to export yet")
}
