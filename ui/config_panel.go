package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"calchat/config"
)

// Title, input and footer lines
const configPanelHeight = 3

func (a *AppView) openConfigPanel() {
	a.closeAllModals()
	a.showConfig = true
	a.configInput.SetValue(a.dataModel.Endpoint())
	a.configInput.CursorEnd()
	a.syncInputState()
	a.layout()
}

func (a *AppView) closeConfigPanel() {
	a.showConfig = false
	a.syncInputState()
	a.layout()
}

func (a AppView) renderConfigPanel() string {
	title := TitleStyle.Render("Webhook configuration") +
		DimStyle.Render("  (kept for this run only)")

	footer := FormatFooter("Enter", "Save", "Esc", "Close")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		a.configInput.View(),
		footer,
	)
}

// handleConfigPanelUpdate routes keys to the URL input while the panel is open.
// Enter applies the URL; the panel closes once a non-empty URL is saved.
func (a AppView) handleConfigPanelUpdate(msg tea.KeyMsg) (AppView, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEnter:
		a.dataModel.SetEndpoint(a.configInput.Value())
		if config.DebugLog != nil {
			config.DebugLog.Info().Bool("configured", a.dataModel.Configured()).Msg("[UI] webhook URL saved")
		}
		if a.dataModel.Configured() {
			a.closeConfigPanel()
		}
		a.configInput.SetValue(a.dataModel.Endpoint())
		return a, nil

	case a.keys().Matches(msg.String(), "dismiss"), a.keys().Matches(msg.String(), "webhook_config"):
		a.closeConfigPanel()
		return a, nil
	}

	var cmd tea.Cmd
	a.configInput, cmd = a.configInput.Update(msg)
	return a, cmd
}
