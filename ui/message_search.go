package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	appmodel "calchat/model"
)

const flashInterval = 300 * time.Millisecond

func renderMessageSearch(a AppView, searchInput textinput.Model, results []appmodel.SearchMatch, selectedIdx, scrollIdx, width, height int) string {
	modalWidth := width - 4
	if modalWidth > 100 {
		modalWidth = 100
	}

	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(dimColor).
		Padding(1, 2)

	title := TitleStyle.Render("Search Conversation")
	searchView := searchInput.View()

	var resultsView strings.Builder
	if len(results) == 0 {
		if searchInput.Value() == "" {
			resultsView.WriteString(DimStyle.Render("Type to search messages..."))
		} else {
			resultsView.WriteString(DimStyle.Render("No matches found"))
		}
	} else {
		maxVisibleResults := searchVisibleResults(height)

		startIdx := scrollIdx
		endIdx := scrollIdx + maxVisibleResults
		if endIdx > len(results) {
			endIdx = len(results)
		}

		resultsView.WriteString(fmt.Sprintf("Found %d matches:\n\n", len(results)))

		if startIdx > 0 {
			resultsView.WriteString(DimStyle.Render(fmt.Sprintf("↑ %d more above\n\n", startIdx)))
		}

		for i := startIdx; i < endIdx; i++ {
			match := results[i]

			matchText := fmt.Sprintf("%s %s\n  %s",
				senderStyle(match.Sender).Render(match.Sender.DisplayName()),
				DimStyle.Render(match.Timestamp.Format(timestampLayout)),
				match.Preview,
			)

			if i == selectedIdx {
				matchText = SelectedStyle.Render("> " + matchText)
			} else {
				matchText = "  " + matchText
			}

			resultsView.WriteString(matchText + "\n\n")
		}

		if endIdx < len(results) {
			resultsView.WriteString(DimStyle.Render(fmt.Sprintf("↓ %d more below", len(results)-endIdx)))
		}
	}

	kb := a.keys()
	navKeys := kb.DisplayActionKey("scroll_down") + "/" + kb.DisplayActionKey("scroll_up")
	footer := FormatFooter("Type", "to search", navKeys, "Navigate", "Enter", "Jump to", "Esc", "Close")

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		"",
		searchView,
		"",
		resultsView.String(),
		"",
		footer,
	)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		modalStyle.Width(modalWidth).Render(content))
}

// searchVisibleResults is how many results fit in the search modal
func searchVisibleResults(height int) int {
	// Border(2) + Padding(2) + Title(1) + Blank(1) + SearchInput(1) + Blank(1) +
	// "Found X matches:"(1) + Blank(1) + Footer(1) + Blank(1) = 12 lines,
	// plus room for the two scroll indicators
	availableLines := height - 12 - 4
	if availableLines < 3 {
		availableLines = 3
	}

	// Previews are a single truncated line: header + preview + blank
	visible := availableLines / 3
	if visible < 1 {
		visible = 1
	}
	return visible
}

func (a AppView) handleMessageSearchUpdate(msg tea.KeyMsg) (AppView, tea.Cmd) {
	kb := a.keys()
	keyStr := msg.String()

	switch {
	case kb.Matches(keyStr, "dismiss"):
		a.closeAllModals()
		return a, nil

	case keyStr == "up" || kb.Matches(keyStr, "scroll_up"):
		if a.selectedSearchIdx > 0 {
			a.selectedSearchIdx--
		}
		if a.selectedSearchIdx < a.messageSearchScrollIdx {
			a.messageSearchScrollIdx = a.selectedSearchIdx
		}
		return a, nil

	case keyStr == "down" || kb.Matches(keyStr, "scroll_down"):
		if a.selectedSearchIdx < len(a.messageSearchResults)-1 {
			a.selectedSearchIdx++
		}
		if visible := searchVisibleResults(a.height); a.selectedSearchIdx >= a.messageSearchScrollIdx+visible {
			a.messageSearchScrollIdx = a.selectedSearchIdx - visible + 1
		}
		return a, nil

	case msg.Type == tea.KeyEnter:
		if a.selectedSearchIdx < 0 || a.selectedSearchIdx >= len(a.messageSearchResults) {
			return a, nil
		}
		match := a.messageSearchResults[a.selectedSearchIdx]
		a.closeAllModals()
		a.jumpToMessage(match.MessageIndex)

		return a, tea.Tick(flashInterval, func(time.Time) tea.Msg {
			return flashTickMsg{}
		})
	}

	var cmd tea.Cmd
	a.messageSearchInput, cmd = a.messageSearchInput.Update(msg)
	a.messageSearchResults = a.dataModel.Search(a.messageSearchInput.Value())
	a.selectedSearchIdx = 0
	a.messageSearchScrollIdx = 0
	return a, cmd
}

// jumpToMessage highlights a message and centers it in the viewport
func (a *AppView) jumpToMessage(messageIdx int) {
	a.highlightedMessageIdx = messageIdx
	a.highlightFlashCount = 1
	a.updateViewportContent(false)

	offset := a.messageLineOffset(messageIdx) - a.viewport.Height/2
	if maxOffset := a.viewport.TotalLineCount() - a.viewport.Height; offset > maxOffset {
		offset = maxOffset
	}
	if offset < 0 {
		offset = 0
	}
	a.viewport.SetYOffset(offset)
}

// messageLineOffset counts the viewport lines before message idx
func (a AppView) messageLineOffset(idx int) int {
	all := a.dataModel.Conversation.All()
	if idx > len(all) {
		idx = len(all)
	}

	lines := 0
	for i := 0; i < idx; i++ {
		msg := all[i]
		body := msg.Text
		if r, ok := a.rendered[msg.ID]; ok {
			body = r
		}
		// header line + body lines + blank separator
		lines += 2 + strings.Count(body, "\n") + 1
	}
	return lines
}

func (a AppView) handleFlashTick() (AppView, tea.Cmd) {
	if a.highlightFlashCount > 0 && a.highlightFlashCount < 6 {
		a.highlightFlashCount++
		a.updateViewportContent(false)
		return a, tea.Tick(flashInterval, func(time.Time) tea.Msg {
			return flashTickMsg{}
		})
	}
	a.highlightedMessageIdx = -1
	a.highlightFlashCount = 0
	a.updateViewportContent(false)
	return a, nil
}
