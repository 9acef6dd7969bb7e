package view

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/parcelas/internal/importer"
	"github.com/MrJamesThe3rd/parcelas/internal/issuer"
)

const importTimeout = 30 * time.Second

type importState int

const (
	importStateFilePick importState = iota
	importStateOptions
	importStateImporting
	importStateResult
)

type importInput struct {
	format importer.Format
	issuer string
}

type ImportModel struct {
	CommonModel
	issuerService *issuer.Service
	importService *importer.Service

	state      importState
	filePicker filepicker.Model
	path       string
	form       *huh.Form
	input      *importInput

	status string
	err    error
}

func NewImportModel(issuerSvc *issuer.Service, impSvc *importer.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".json"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		issuerService: issuerSvc,
		importService: impSvc,
		filePicker:    fp,
		input:         &importInput{},
	}
}

func (m ImportModel) Title() string { return "Import Table" }

func (m ImportModel) ShortHelp() string {
	if m.state == importStateResult {
		return "Esc: back"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

	case tableImportedMsg:
		m.state = importStateResult
		m.err = msg.err

		switch {
		case errors.Is(msg.err, issuer.ErrReadOnly):
			m.status = "Built-in tables are read-only. Set TABLES_DIR or TABLES_SOURCE=postgres to import."
		case msg.err != nil:
			m.status = fmt.Sprintf("Error: %v", msg.err)
		default:
			m.status = fmt.Sprintf("Saved %s (%d tiers). Restart to use the new table.", msg.issuer, msg.tiers)
		}

		return m, nil
	}

	switch m.state {
	case importStateFilePick:
		return m.updateFilePick(msg)
	case importStateOptions:
		return m.updateOptions(msg)
	}

	return m, nil
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateOptions, importStateResult:
		m.state = importStateFilePick
		m.err = nil
		m.status = ""

		return m, m.filePicker.Init()
	}

	return m, Back
}

func (m ImportModel) updateFilePick(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.path = path
		m.input.format = importer.FormatFromPath(path)
		m.input.issuer = ""
		m.form = m.buildForm()
		m.state = importStateOptions

		return m, m.form.Init()
	}

	return m, cmd
}

func (m ImportModel) updateOptions(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = importStateImporting
	m.status = fmt.Sprintf("Importing from %s...", m.path)

	return m, m.importCmd(m.path, *m.input)
}

func (m ImportModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[importer.Format]().
				Key("format").
				Title("Format").
				Options(
					huh.NewOption("CSV", importer.FormatCSV),
					huh.NewOption("JSON", importer.FormatJSON),
				).
				Value(&m.input.format),

			huh.NewInput().
				Key("issuer").
				Title("Issuer name").
				Description("Leave empty to use the name in the file").
				Value(&m.input.issuer),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateFilePick:
		return pageStyle.Render(
			fmt.Sprintf("Select a fee table to import (.csv or .json):\n\n%s", m.filePicker.View()),
		)
	case importStateOptions:
		return pageStyle.Render(titleStyle.Render(m.path) + "\n\n" + m.form.View())
	case importStateImporting:
		return pageStyle.Render(m.status)
	case importStateResult:
		style := successStyle
		if m.err != nil {
			style = errorStyle
		}

		return pageStyle.Render(style.Render(m.status) + "\n\n" + helpStyle.Render("(Esc to go back)"))
	}

	return ""
}

type tableImportedMsg struct {
	issuer string
	tiers  int
	err    error
}

func (m ImportModel) importCmd(path string, in importInput) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return tableImportedMsg{err: err}
		}
		defer f.Close()

		table, err := m.importService.Import(in.format, in.issuer, f)
		if err != nil {
			return tableImportedMsg{err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		if err := m.issuerService.Import(ctx, table); err != nil {
			return tableImportedMsg{err: err}
		}

		return tableImportedMsg{issuer: table.Issuer, tiers: len(table.Tiers)}
	}
}
