package model

import (
	"errors"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

var errNothingToCopy = errors.New("nothing to copy yet")

// CopyLastReply copies the most recent assistant message
func (m *Model) CopyLastReply() tea.Cmd {
	last, ok := m.Conversation.LastFrom(SenderAssistant)
	return func() tea.Msg {
		if !ok {
			return ClipboardCopiedMsg{What: "last reply", Err: errNothingToCopy}
		}
		return ClipboardCopiedMsg{What: "last reply", Err: clipboard.WriteAll(last.Text)}
	}
}

// CopyTranscript copies the whole conversation
func (m *Model) CopyTranscript() tea.Cmd {
	text := m.Transcript()
	return func() tea.Msg {
		return ClipboardCopiedMsg{What: "conversation", Err: clipboard.WriteAll(text)}
	}
}
