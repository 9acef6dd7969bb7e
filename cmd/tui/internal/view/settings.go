package view

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/parcelas/internal/money"
	"github.com/MrJamesThe3rd/parcelas/internal/settings"
)

type SettingsModel struct {
	CommonModel
	session *Session

	input  textinput.Model
	status string
	err    error
}

func NewSettingsModel(session *Session) SettingsModel {
	ti := textinput.New()
	ti.Prompt = "Simples Nacional (%): "
	ti.Placeholder = "5,00"
	ti.CharLimit = 6
	ti.Width = 8
	ti.SetValue(strconv.FormatFloat(session.Settings.SimplesPercent, 'f', 2, 64))
	ti.Focus()

	return SettingsModel{
		session: session,
		input:   ti,
	}
}

func (m SettingsModel) Title() string     { return "Settings" }
func (m SettingsModel) ShortHelp() string { return "Enter: save | Esc: back" }

func (m SettingsModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			return m, Back
		case tea.KeyEnter:
			percent, err := settings.ParsePercent(m.input.Value())
			if err != nil {
				m.err = err
				m.status = ""

				return m, nil
			}

			m.session.Settings, _ = settings.New(percent)
			m.err = nil
			m.status = fmt.Sprintf("Simples rate set to %s for this session.", money.FormatPercent(percent))

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m SettingsModel) View() string {
	s := titleStyle.Render("Settings") + "\n\n" + m.input.View() + "\n\n"

	switch {
	case m.err != nil:
		s += errorStyle.Render(m.err.Error())
	case m.status != "":
		s += successStyle.Render(m.status)
	default:
		s += helpStyle.Render("Applied to new quotes until the program exits.")
	}

	return pageStyle.Render(s + "\n\n" + helpStyle.Render(m.ShortHelp()))
}
