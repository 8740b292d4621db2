package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"calchat/config"
	appmodel "calchat/model"
)

// Update is the single state transition function. Every change to the view
// or the data model goes through here.
func (a AppView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	// Update spinner FIRST to handle TickMsg before anything else
	if a.dataModel.Sending() {
		a.loadingSpinner, cmd = a.loadingSpinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		firstSize := !a.ready
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.layout()
		a.updateViewportContent(true)

		// Render the greeting once the width is known
		if firstSize {
			return a, a.renderPending()
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg, cmds)

	case replyMsg:
		appended := a.dataModel.ApplyReply(msg)
		a.syncInputState()
		a.layout()
		a.updateViewportContent(true)

		if appended.Sender == appmodel.SenderAssistant {
			return a, a.renderMarkdownAsync(appended.ID, appended.Text)
		}
		return a, nil

	case markdownRenderedMsg:
		a.rendered[msg.MessageID] = msg.Rendered
		a.updateViewportContent(a.highlightedMessageIdx < 0)
		return a, nil

	case clipboardCopiedMsg:
		if msg.Err != nil {
			a.statusNote = fmt.Sprintf("Copy failed: %v", msg.Err)
		} else {
			a.statusNote = fmt.Sprintf("Copied %s to clipboard", msg.What)
		}
		return a, nil

	case flashTickMsg:
		return a.handleFlashTick()
	}

	return a, tea.Batch(cmds...)
}

func (a AppView) handleKey(msg tea.KeyMsg, cmds []tea.Cmd) (tea.Model, tea.Cmd) {
	kb := a.keys()
	keyStr := msg.String()

	// Any key clears the previous clipboard note
	a.statusNote = ""

	// PRIORITY 0: Always-global shortcuts
	if keyStr == "ctrl+c" || kb.Matches(keyStr, "quit") {
		if config.DebugLog != nil {
			config.DebugLog.Debug().Str("key", keyStr).Msg("[UI] quit requested")
		}
		return a, tea.Quit
	}

	if kb.Matches(keyStr, "help") {
		a.showHelp = !a.showHelp
		return a, nil
	}

	// PRIORITY 1: Modal input handlers
	if a.showHelp {
		if kb.Matches(keyStr, "dismiss") {
			a.showHelp = false
		}
		return a, nil
	}

	if kb.Matches(keyStr, "about") {
		open := !a.showAbout
		a.closeAllModals()
		a.showAbout = open
		return a, nil
	}

	if a.showAbout {
		if kb.Matches(keyStr, "dismiss") {
			a.showAbout = false
		}
		return a, nil
	}

	if a.showMessageSearch {
		return a.handleMessageSearchUpdate(msg)
	}

	if a.showConfig {
		return a.handleConfigPanelUpdate(msg)
	}

	// PRIORITY 2: Modal toggles and chat actions
	switch {
	case kb.Matches(keyStr, "webhook_config"):
		a.openConfigPanel()
		return a, textinput.Blink

	case kb.Matches(keyStr, "search_messages"):
		a.closeAllModals()
		a.showMessageSearch = true
		a.messageSearchInput.SetValue("")
		a.messageSearchResults = nil
		a.selectedSearchIdx = 0
		a.messageSearchScrollIdx = 0
		a.messageSearchInput.Focus()
		return a, nil

	case kb.Matches(keyStr, "dismiss"):
		if a.dataModel.Banner != "" {
			a.dataModel.DismissBanner()
			a.layout()
		}
		return a, nil

	case kb.Matches(keyStr, "yank_last_response"):
		return a, a.dataModel.CopyLastReply()

	case kb.Matches(keyStr, "yank_conversation"):
		return a, a.dataModel.CopyTranscript()

	case kb.Matches(keyStr, "clear_input"):
		a.textarea.Reset()
		return a, nil

	case kb.Matches(keyStr, "scroll_down"):
		a.viewport.SetYOffset(a.viewport.YOffset + 1)
		return a, nil

	case kb.Matches(keyStr, "scroll_up"):
		a.viewport.SetYOffset(a.viewport.YOffset - 1)
		return a, nil

	case kb.Matches(keyStr, "half_page_down"):
		a.viewport.HalfViewDown()
		return a, nil

	case kb.Matches(keyStr, "half_page_up"):
		a.viewport.HalfViewUp()
		return a, nil

	case kb.Matches(keyStr, "page_down"):
		a.viewport.ViewDown()
		return a, nil

	case kb.Matches(keyStr, "page_up"):
		a.viewport.ViewUp()
		return a, nil

	case kb.Matches(keyStr, "scroll_to_top"):
		a.viewport.GotoTop()
		return a, nil

	case kb.Matches(keyStr, "scroll_to_bottom"):
		a.viewport.GotoBottom()
		return a, nil
	}

	// Handle Enter for sending messages - DON'T let textarea process it
	// But allow Alt+Enter to pass through for newlines
	if msg.Type == tea.KeyEnter && !msg.Alt {
		return a.submit()
	}

	// Update textarea only while it accepts input
	if a.textarea.Focused() {
		var cmd tea.Cmd
		a.textarea, cmd = a.textarea.Update(msg)
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

// submit sends the textarea content. Refused sends leave the input untouched.
func (a AppView) submit() (tea.Model, tea.Cmd) {
	text := a.textarea.Value()

	if !a.dataModel.CanSend(text) {
		if !a.dataModel.Configured() && !a.dataModel.Sending() {
			a.openConfigPanel()
		}
		return a, nil
	}

	if config.DebugLog != nil {
		config.DebugLog.Debug().Int("length", len(text)).Msg("Enter pressed - sending message")
	}

	sendCmd := a.dataModel.Submit(text)
	a.textarea.Reset()
	a.syncInputState()
	a.layout()
	a.updateViewportContent(true)

	// Send the request and start the spinner animation
	return a, tea.Batch(sendCmd, a.loadingSpinner.Tick)
}
