package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func renderAboutModal(a AppView, width, height int) string {
	var sb strings.Builder

	titleStyle := lipgloss.NewStyle().
		Foreground(successColor).
		Bold(true)

	labelStyle := lipgloss.NewStyle().
		Foreground(accentColor).
		Bold(true)

	valueStyle := lipgloss.NewStyle().
		Foreground(dimColor)

	row := func(label, value string) {
		sb.WriteString(labelStyle.Render(fmt.Sprintf("%-10s", label)))
		sb.WriteString(valueStyle.Render(value))
		sb.WriteString("\n")
	}

	sb.WriteString(titleStyle.Render(appTitle))
	sb.WriteString("\n\n")

	endpoint := a.dataModel.Endpoint()
	if endpoint == "" {
		endpoint = "not configured"
	}

	row("Version:", a.dataModel.Version)
	row("License:", a.dataModel.License)
	row("Session:", a.dataModel.SessionID)
	row("Webhook:", endpoint)
	row("Messages:", fmt.Sprintf("%d", a.dataModel.Conversation.Len()))
	row("Config:", a.dataModel.Config.ConfigDirectory)

	sb.WriteString("\n")
	sb.WriteString(valueStyle.Render(fmt.Sprintf("Press %s or %s to close", a.keys().DisplayActionKey("dismiss"), a.keys().DisplayActionKey("about"))))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(1, 2)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, boxStyle.Render(sb.String()))
}
