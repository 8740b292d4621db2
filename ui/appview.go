package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"calchat/config"
	appmodel "calchat/model"
)

const (
	appTitle      = "Calendar Assistant"
	thinkingLabel = "Assistant is thinking..."
	inputHint     = "Type your message here..."
	disabledHint  = "Configure a webhook URL first (Alt+W)..."
)

type AppView struct {
	// Reference to core data model
	dataModel *appmodel.Model

	// UI Components
	viewport viewport.Model
	textarea textarea.Model

	// Window state
	width  int
	height int
	ready  bool

	// Loading spinner shown while a turn is in flight
	loadingSpinner spinner.Model

	// Rendered markdown per message ID. Messages without an entry are shown as plain text.
	rendered map[string]string

	showHelp  bool
	showAbout bool

	// Webhook configuration panel
	showConfig  bool
	configInput textinput.Model

	showMessageSearch      bool
	messageSearchInput     textinput.Model
	messageSearchResults   []appmodel.SearchMatch
	selectedSearchIdx      int
	messageSearchScrollIdx int

	highlightedMessageIdx int
	highlightFlashCount   int

	// One-line note in the status bar (clipboard feedback)
	statusNote string
}

func NewAppView(cfg *config.Config, hook appmodel.Webhook, version, license string) AppView {
	ta := textarea.New()
	ta.Placeholder = inputHint
	ta.Focus()
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.SetWidth(80)

	// Custom KeyMap: Alt+Enter for newline, Enter alone does nothing (handled separately)
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter"))

	// Set dynamic prompt: "> " for first line, "| " for subsequent lines
	ta.SetPromptFunc(2, func(lineIdx int) string {
		if lineIdx == 0 {
			return "> "
		}
		return "| "
	})

	vp := viewport.New(0, 0)

	configInput := textinput.New()
	configInput.Prompt = "Webhook URL: "
	configInput.Placeholder = "https://your-n8n-instance.com/webhook/..."
	configInput.CharLimit = 2048

	messageSearchInput := textinput.New()
	messageSearchInput.Prompt = "Search: "
	messageSearchInput.CharLimit = 100

	loadingSpinner := spinner.New()
	loadingSpinner.Spinner = spinner.Dot
	loadingSpinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("15")) // Bright white

	if cfg.Keybindings == nil {
		cfg.Keybindings = config.DefaultKeybindings()
	}

	dataModel := appmodel.NewModel(cfg, hook, version, license)

	a := AppView{
		dataModel:             dataModel,
		textarea:              ta,
		viewport:              vp,
		loadingSpinner:        loadingSpinner,
		rendered:              make(map[string]string),
		configInput:           configInput,
		messageSearchInput:    messageSearchInput,
		highlightedMessageIdx: -1,
	}

	// Without an endpoint nothing can be sent, so start on the configuration panel
	if !dataModel.Configured() {
		a.openConfigPanel()
	}
	a.syncInputState()

	return a
}

func (a AppView) Init() tea.Cmd {
	// Don't render markdown here - wait for WindowSizeMsg to get correct width
	return tea.Batch(textarea.Blink, textinput.Blink)
}

func (a AppView) keys() *config.KeyBindingsConfig {
	return a.dataModel.Config.Keybindings
}

func (a AppView) View() string {
	if !a.ready {
		return "Loading " + appTitle + "..."
	}

	// Modal rendering order: help always on top, then about, then search
	if a.showHelp {
		return a.renderHelpModal(a.width, a.height)
	}

	if a.showAbout {
		return renderAboutModal(a, a.width, a.height)
	}

	if a.showMessageSearch {
		return renderMessageSearch(a, a.messageSearchInput, a.messageSearchResults, a.selectedSearchIdx, a.messageSearchScrollIdx, a.width, a.height)
	}

	sections := []string{a.renderHeader(), ""}

	if a.showConfig {
		sections = append(sections, a.renderConfigPanel())
	}

	sections = append(sections, a.viewport.View())

	if a.dataModel.Sending() {
		sections = append(sections, fmt.Sprintf("%s %s", a.loadingSpinner.View(), DimStyle.Render(thinkingLabel)))
	}

	if a.dataModel.Banner != "" {
		sections = append(sections, a.renderBanner())
	}

	sections = append(sections, a.textarea.View(), a.renderStatusBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader draws "Calendar Assistant - Connected"
func (a AppView) renderHeader() string {
	title := AssistantStyle.Bold(true).Render(appTitle)

	status := NotConfiguredStyle.Render(" - Not configured")
	if a.dataModel.Configured() {
		status = ConnectedStyle.Render(" - Connected")
	}

	return title + status
}

func (a AppView) renderStatusBar() string {
	kb := a.keys()

	if a.statusNote != "" {
		return StatusStyle.Render(a.statusNote)
	}

	// Status bar with bold user green descriptions (main chat uses user green)
	descStyle := lipgloss.NewStyle().Foreground(successColor).Bold(true)
	statusBar := fmt.Sprintf("%s %s  %s %s  %s %s  %s %s  Alt+Enter %s  Enter %s  %s %s",
		kb.DisplayActionKey("quit"), descStyle.Render("Quit"),
		kb.DisplayActionKey("webhook_config"), descStyle.Render("Webhook"),
		kb.DisplayActionKey("search_messages"), descStyle.Render("Search"),
		kb.DisplayActionKey("help"), descStyle.Render("Help"),
		descStyle.Render("New Line"),
		descStyle.Render("Send"),
		kb.DisplayActionKey("yank_last_response"), descStyle.Render("Copy"),
	)
	return StatusStyle.Render(statusBar)
}

// layout recomputes the viewport height from the sections currently shown
func (a *AppView) layout() {
	if a.width == 0 || a.height == 0 {
		return
	}

	// Title (1), separator (1), textarea (3), status bar (1)
	reserved := 6
	if a.showConfig {
		reserved += configPanelHeight
	}
	if a.dataModel.Sending() {
		reserved++
	}
	if a.dataModel.Banner != "" {
		reserved++
	}

	viewportHeight := a.height - reserved
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	a.viewport.Width = a.width
	a.viewport.Height = viewportHeight
	a.textarea.SetWidth(a.width)
	a.configInput.Width = a.width - len(a.configInput.Prompt) - 4
}

// syncInputState focuses the input that should receive keystrokes. The
// message box is blurred while a panel is open or a turn is in flight.
func (a *AppView) syncInputState() {
	if a.showConfig {
		a.textarea.Blur()
		a.configInput.Focus()
		return
	}
	a.configInput.Blur()

	if a.dataModel.Configured() {
		a.textarea.Placeholder = inputHint
	} else {
		a.textarea.Placeholder = disabledHint
	}

	if a.dataModel.Sending() || !a.dataModel.Configured() {
		a.textarea.Blur()
		return
	}
	a.textarea.Focus()
}

func (a *AppView) closeAllModals() {
	a.showHelp = false
	a.showAbout = false
	a.showMessageSearch = false

	if a.messageSearchInput.Focused() {
		a.messageSearchInput.Blur()
	}
}
