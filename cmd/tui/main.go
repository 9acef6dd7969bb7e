package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/parcelas/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/parcelas/internal/config"
	"github.com/MrJamesThe3rd/parcelas/internal/export"
	"github.com/MrJamesThe3rd/parcelas/internal/importer"
	"github.com/MrJamesThe3rd/parcelas/internal/issuer"
	"github.com/MrJamesThe3rd/parcelas/internal/issuer/store"
	"github.com/MrJamesThe3rd/parcelas/internal/money"
	"github.com/MrJamesThe3rd/parcelas/internal/quote"
)

type model struct {
	registry      *issuer.Registry
	issuerService *issuer.Service
	quoteService  *quote.Service
	importService *importer.Service
	exportService *export.Service
	session       *view.Session
	appName       string

	currentView View

	calcView     view.CalculatorModel
	issuersView  view.IssuersModel
	importView   view.ImportModel
	settingsView view.SettingsModel
	exportView   view.ExportModel
}

type View int

const (
	ViewMenu     View = 0
	ViewCalc     View = 1
	ViewIssuers  View = 2
	ViewImport   View = 3
	ViewSettings View = 4
	ViewExport   View = 5
)

func initialModel() (model, func() error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	defaults, err := cfg.Settings()
	if err != nil {
		slog.Error("invalid tax settings", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	repo, closeRepo, err := store.Open(ctx, cfg)
	if err != nil {
		slog.Error("failed to open issuer tables", "error", err)
		os.Exit(1)
	}

	issuerSvc := issuer.NewService(repo)

	registry, err := issuerSvc.Load(ctx)
	if err != nil {
		slog.Error("failed to load issuer tables", "error", err)
		_ = closeRepo()
		os.Exit(1)
	}

	session := &view.Session{Settings: defaults}

	return model{
		registry:      registry,
		issuerService: issuerSvc,
		quoteService:  quote.NewService(registry),
		importService: importer.NewService(),
		exportService: export.NewService(),
		session:       session,
		appName:       cfg.App.Name,
		currentView:   ViewMenu,
	}, closeRepo
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewCalc
				m.calcView = view.NewCalculatorModel(m.registry, m.quoteService, m.session)

				return m, m.calcView.Init()
			case "2":
				m.currentView = ViewIssuers
				m.issuersView = view.NewIssuersModel(m.registry)

				return m, m.issuersView.Init()
			case "3":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.issuerService, m.importService)

				return m, m.importView.Init()
			case "4":
				m.currentView = ViewSettings
				m.settingsView = view.NewSettingsModel(m.session)

				return m, m.settingsView.Init()
			case "5":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.exportService, m.session)

				return m, m.exportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewCalc:
		var newModel tea.Model
		newModel, cmd = m.calcView.Update(msg)
		m.calcView = newModel.(view.CalculatorModel)
	case ViewIssuers:
		var newModel tea.Model
		newModel, cmd = m.issuersView.Update(msg)
		m.issuersView = newModel.(view.IssuersModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewSettings:
		var newModel tea.Model
		newModel, cmd = m.settingsView.Update(msg)
		m.settingsView = newModel.(view.SettingsModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		last := "none"
		if q := m.session.LastQuote; q != nil {
			last = q.Issuer + " " + money.FormatBRL(q.BasePrice)
		}

		return lipgloss.NewStyle().Padding(2).Render(
			m.appName + "\n\n" +
				"1. Calculate\n" +
				"2. Issuers\n" +
				"3. Import Table\n" +
				"4. Settings (Simples " + money.FormatPercent(m.session.Settings.SimplesPercent) + ")\n" +
				"5. Export Last Quote (" + last + ")\n\n" +
				"q. Quit",
		)
	case ViewCalc:
		return m.calcView.View()
	case ViewIssuers:
		return m.issuersView.View()
	case ViewImport:
		return m.importView.View()
	case ViewSettings:
		return m.settingsView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func main() {
	m, closeRepo := initialModel()
	defer closeRepo()

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		closeRepo()
		os.Exit(1)
	}
}
