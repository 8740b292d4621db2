package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrorModal is a standalone program for startup errors (bad settings file,
// unwritable data directory) shown before the chat view exists.
type ErrorModal struct {
	title string
	err   error
	hint  string

	width  int
	height int
}

func NewErrorModal(title string, err error, hint string) ErrorModal {
	return ErrorModal{
		title: title,
		err:   err,
		hint:  hint,
	}
}

func (m ErrorModal) Init() tea.Cmd {
	return nil
}

func (m ErrorModal) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "esc", "ctrl+c", "q":
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m ErrorModal) View() string {
	if m.width < 20 || m.height < 10 {
		return "Terminal too small"
	}

	modalWidth := 64
	if m.width < modalWidth+10 {
		modalWidth = m.width - 10
	}

	ruled := lipgloss.NewStyle().
		Width(modalWidth).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor)

	titleSection := lipgloss.NewStyle().
		Bold(true).
		Foreground(dangerColor).
		Align(lipgloss.Center).
		Width(modalWidth).
		Render(m.title)

	body := []string{""}
	if m.err != nil {
		body = append(body, strings.Split(m.err.Error(), "\n")...)
	}
	if m.hint != "" {
		body = append(body, "", DimStyle.Render(m.hint))
	}
	body = append(body, "")

	messageSection := ruled.Align(lipgloss.Center).Render(strings.Join(body, "\n"))

	footerSection := ruled.
		Foreground(dimColor).
		Align(lipgloss.Center).
		Render("Press Enter to quit")

	content := lipgloss.JoinVertical(lipgloss.Left, titleSection, messageSection, footerSection)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
