package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/parcelas/internal/issuer"
	"github.com/MrJamesThe3rd/parcelas/internal/money"
	"github.com/MrJamesThe3rd/parcelas/internal/pricing"
	"github.com/MrJamesThe3rd/parcelas/internal/quote"
)

type calcState int

const (
	calcStateForm calcState = iota
	calcStateCalculating
	calcStateResults
	calcStateDetail
)

// calcInput is bound to the form fields and outlives model copies.
type calcInput struct {
	issuer string
	price  string
}

type CalculatorModel struct {
	CommonModel
	registry     *issuer.Registry
	quoteService *quote.Service
	session      *Session

	state    calcState
	form     *huh.Form
	input    *calcInput
	table    table.Model
	quote    *quote.Quote
	selected pricing.CalcResult
	err      error
}

func NewCalculatorModel(registry *issuer.Registry, quoteSvc *quote.Service, session *Session) CalculatorModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Installments", Width: 12},
			{Title: "Each", Width: 14},
			{Title: "Total", Width: 14},
			{Title: "Surcharge", Width: 14},
			{Title: "Extra", Width: 10},
		}),
		table.WithFocused(true),
		table.WithHeight(13),
	)
	t.SetStyles(tableStyles())

	m := CalculatorModel{
		registry:     registry,
		quoteService: quoteSvc,
		session:      session,
		input:        &calcInput{},
		table:        t,
	}

	if names := registry.Names(); len(names) > 0 {
		m.input.issuer = names[0]
	}

	m.form = m.buildForm()

	return m
}

func (m CalculatorModel) Title() string { return "Calculate" }

func (m CalculatorModel) ShortHelp() string {
	switch m.state {
	case calcStateResults:
		return "↑/↓: move | Enter: select | n: new quote | Esc: back"
	case calcStateDetail:
		return "Esc: back to table"
	}

	return "Esc: back | Enter: confirm"
}

func (m CalculatorModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m CalculatorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(min(13, max(3, msg.Height-10)))

		return m, nil

	case quoteResultMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = calcStateForm
			m.form = m.buildForm()

			return m, m.form.Init()
		}

		m.err = nil
		m.quote = msg.quote
		m.session.LastQuote = msg.quote
		m.table.SetRows(quoteRows(msg.quote))
		m.table.GotoTop()
		m.table.Focus()
		m.state = calcStateResults

		return m, nil
	}

	switch m.state {
	case calcStateForm:
		return m.updateForm(msg)
	case calcStateResults:
		return m.updateResults(msg)
	case calcStateDetail:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && (keyMsg.Type == tea.KeyEsc || keyMsg.Type == tea.KeyEnter) {
			m.state = calcStateResults
		}
	}

	return m, nil
}

func (m CalculatorModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = calcStateCalculating

	return m, m.calculateCmd()
}

func (m CalculatorModel) updateResults(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "n":
			m.state = calcStateForm
			m.form = m.buildForm()

			return m, m.form.Init()
		case "enter":
			if r, ok := m.selectedResult(); ok {
				m.selected = r
				m.state = calcStateDetail
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m CalculatorModel) selectedResult() (pricing.CalcResult, bool) {
	row := m.table.SelectedRow()
	if row == nil || m.quote == nil {
		return pricing.CalcResult{}, false
	}

	n, err := strconv.Atoi(strings.TrimSuffix(row[0], "x"))
	if err != nil {
		return pricing.CalcResult{}, false
	}

	return m.quote.Selected(n)
}

func (m CalculatorModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("issuer").
				Title("Card issuer").
				Options(huh.NewOptions(m.registry.Names()...)...).
				Value(&m.input.issuer).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return quote.ErrIssuerRequired
					}

					return nil
				}),

			huh.NewInput().
				Key("price").
				Title("Cash price").
				Placeholder("1.234,56").
				Value(&m.input.price).
				Validate(validatePrice),
		),
	).WithWidth(40).WithShowHelp(false)
}

func validatePrice(s string) error {
	v, err := money.ParseAmount(s)
	if err != nil || v <= 0 {
		return quote.ErrInvalidPrice
	}

	return nil
}

func (m CalculatorModel) View() string {
	switch m.state {
	case calcStateForm:
		return m.viewForm()
	case calcStateCalculating:
		return pageStyle.Render("Calculating...")
	case calcStateResults:
		return m.viewResults()
	case calcStateDetail:
		return m.viewDetail()
	}

	return ""
}

func (m CalculatorModel) viewForm() string {
	if m.registry.Len() == 0 {
		return pageStyle.Render(errorStyle.Render("No issuer tables loaded.") + "\n\n" + helpStyle.Render("Esc: back"))
	}

	header := titleStyle.Render("Installment calculator") +
		helpStyle.Render(fmt.Sprintf("  Simples %s", money.FormatPercent(m.session.Settings.SimplesPercent)))

	parts := []string{header, ""}

	if m.err != nil {
		parts = append(parts, errorStyle.Render(errorText(m.err)), "")
	}

	parts = append(parts, m.form.View())

	return pageStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m CalculatorModel) viewResults() string {
	header := titleStyle.Render(fmt.Sprintf("%s - %s", m.quote.Issuer, money.FormatBRL(m.quote.BasePrice)))
	if m.quote.Updated != "" {
		header += helpStyle.Render("  table of " + m.quote.Updated)
	}

	return pageStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		m.table.View(),
		"",
		helpStyle.Render(m.ShortHelp()),
	))
}

func (m CalculatorModel) viewDetail() string {
	r := m.selected

	lines := []string{
		titleStyle.Render(fmt.Sprintf("%dx de %s", r.Installments, money.FormatBRL(r.PerInstallment))),
		"",
		fmt.Sprintf("Issuer:        %s", m.quote.Issuer),
		fmt.Sprintf("Cash price:    %s", money.FormatBRL(m.quote.BasePrice)),
		fmt.Sprintf("Final price:   %s", money.FormatBRL(r.FinalPrice)),
		fmt.Sprintf("Surcharge:     %s", money.FormatBRL(r.Surcharge)),
		fmt.Sprintf("Extra paid:    +%s", money.FormatPercent(r.ExtraPaidPercent)),
		fmt.Sprintf("Issuer fee:    %s", money.FormatPercent(r.FeePercent)),
		"",
		helpStyle.Render(m.ShortHelp()),
	}

	return pageStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func quoteRows(q *quote.Quote) []table.Row {
	rows := make([]table.Row, 0, len(q.Results))
	for _, r := range q.Results {
		rows = append(rows, table.Row{
			fmt.Sprintf("%dx", r.Installments),
			money.FormatBRL(r.PerInstallment),
			money.FormatBRL(r.FinalPrice),
			money.FormatBRL(r.Surcharge),
			"+" + money.FormatPercent(r.ExtraPaidPercent),
		})
	}

	return rows
}

// errorText shortens wrapped validation errors to the message shown to the user.
func errorText(err error) string {
	for _, sentinel := range []error{quote.ErrIssuerRequired, quote.ErrInvalidPrice, quote.ErrInvalidSimplesRate} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}

	return err.Error()
}

type quoteResultMsg struct {
	quote *quote.Quote
	err   error
}

func (m CalculatorModel) calculateCmd() tea.Cmd {
	name := m.input.issuer
	raw := m.input.price
	rate := m.session.Settings.SimplesRate()

	return func() tea.Msg {
		price, err := money.ParseAmount(raw)
		if err != nil {
			return quoteResultMsg{err: quote.ErrInvalidPrice}
		}

		ctx, cancel := StoreCtx()
		defer cancel()

		q, err := m.quoteService.Calculate(ctx, quote.Request{
			Issuer:      name,
			Price:       price,
			SimplesRate: rate,
		})

		return quoteResultMsg{quote: q, err: err}
	}
}
