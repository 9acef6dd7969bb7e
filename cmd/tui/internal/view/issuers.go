package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/parcelas/internal/issuer"
	"github.com/MrJamesThe3rd/parcelas/internal/pricing"
)

type IssuersModel struct {
	CommonModel
	registry *issuer.Registry
	list     list.Model
}

func NewIssuersModel(registry *issuer.Registry) IssuersModel {
	tables := registry.Tables()

	items := make([]list.Item, 0, len(tables))
	for _, t := range tables {
		items = append(items, issuerItem{table: t})
	}

	l := list.New(items, list.NewDefaultDelegate(), 60, 20)
	l.Title = fmt.Sprintf("Issuer tables (%d)", len(items))
	l.SetShowHelp(false)

	return IssuersModel{
		registry: registry,
		list:     l,
	}
}

func (m IssuersModel) Title() string     { return "Issuers" }
func (m IssuersModel) ShortHelp() string { return "↑/↓: move | /: filter | Esc: back" }

func (m IssuersModel) Init() tea.Cmd {
	return nil
}

func (m IssuersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-6)

		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc && m.list.FilterState() == list.Unfiltered {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m IssuersModel) View() string {
	return pageStyle.Render(m.list.View() + "\n" + helpStyle.Render(m.ShortHelp()))
}

type issuerItem struct {
	table pricing.IssuerTable
}

func (i issuerItem) Title() string { return i.table.Issuer }

func (i issuerItem) Description() string {
	updated := i.table.Updated
	if updated == "" {
		updated = "unknown date"
	}

	maxInstallments := 0
	for _, t := range i.table.Tiers {
		maxInstallments = max(maxInstallments, t.Installments)
	}

	return fmt.Sprintf("%d tiers, up to %dx | updated %s", len(i.table.Tiers), maxInstallments, updated)
}

func (i issuerItem) FilterValue() string { return i.table.Issuer }
