package model

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"calchat/config"
	"calchat/webhook"
)

// SendToWebhook returns the command that runs one exchange off the UI
// goroutine. State is captured up front; the command never touches Model.
func (m *Model) SendToWebhook(userMsg Message) tea.Cmd {
	hook := m.Webhook
	endpoint := m.Endpoint()
	req := webhook.NewRequest(userMsg.Text, m.SessionID, userMsg.Timestamp)

	return func() tea.Msg {
		if config.DebugLog != nil {
			config.DebugLog.Debug().Str("request_id", userMsg.ID).Str("endpoint", endpoint).Msg("sendToWebhook goroutine started")
		}

		// No deadline: a request runs until the transport gives up.
		reply, err := hook.Send(context.Background(), endpoint, req)
		return ReplyMsg{
			RequestID: userMsg.ID,
			Reply:     reply,
			Err:       err,
		}
	}
}
