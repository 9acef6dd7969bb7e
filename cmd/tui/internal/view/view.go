package view

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/parcelas/internal/quote"
	"github.com/MrJamesThe3rd/parcelas/internal/settings"
)

// View is the interface that all TUI screens implement.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// Session is shared by every view for the lifetime of the program.
// Nothing in it is persisted.
type Session struct {
	Settings  settings.Settings
	LastQuote *quote.Quote
}

var (
	pageStyle    = lipgloss.NewStyle().Padding(1)
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)
