package model

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"calchat/config"
)

// FailureNotice is appended as a system message when a turn fails.
const FailureNotice = "Error: Could not reach the assistant. Please check your webhook URL and try again."

// Phase is the per-turn state: Idle -> Sending -> Idle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSending
)

func (p Phase) String() string {
	switch p {
	case PhaseSending:
		return "sending"
	default:
		return "idle"
	}
}

// Model holds the application state. It is only mutated from the Bubble Tea
// update loop, so it needs no locking.
type Model struct {
	// Core dependencies
	Config  *config.Config
	Webhook Webhook

	// Application data
	Conversation *Conversation
	SessionID    string

	// Runtime state (not UI)
	Phase  Phase
	Banner string

	endpoint string

	// Application metadata
	Version string
	License string
}

// NewModel creates the state for one run. The endpoint is seeded from config
// and the greeting, when configured, is the first assistant message.
func NewModel(cfg *config.Config, hook Webhook, version, license string) *Model {
	m := &Model{
		Config:       cfg,
		Webhook:      hook,
		Conversation: NewConversation(),
		SessionID:    NewSessionID(time.Now()),
		Phase:        PhaseIdle,
		Version:      version,
		License:      license,
	}

	if cfg != nil {
		m.SetEndpoint(cfg.WebhookURL)
		if cfg.Greeting != "" {
			m.Conversation.Append(SenderAssistant, cfg.Greeting)
		}
	}

	if config.DebugLog != nil {
		config.DebugLog.Debug().
			Str("session_id", m.SessionID).
			Bool("configured", m.Configured()).
			Msg("[Model] NewModel")
	}

	return m
}

// SetEndpoint replaces the webhook URL. It is held in memory only.
func (m *Model) SetEndpoint(url string) {
	m.endpoint = strings.TrimSpace(url)
}

func (m *Model) Endpoint() string {
	return m.endpoint
}

// Configured reports whether an endpoint is set; without one sending is disabled.
func (m *Model) Configured() bool {
	return m.endpoint != ""
}

func (m *Model) Sending() bool {
	return m.Phase == PhaseSending
}

// CanSend reports whether text may be submitted now: it has non-space content,
// an endpoint is configured, and no other turn is in flight.
func (m *Model) CanSend(text string) bool {
	return strings.TrimSpace(text) != "" && m.Configured() && !m.Sending()
}

// Submit starts a turn. It appends the user message, enters Sending and
// returns the command that performs the request. It returns nil and changes
// nothing when CanSend is false; a submit during Sending is dropped, not queued.
func (m *Model) Submit(text string) tea.Cmd {
	if !m.CanSend(text) {
		if config.DebugLog != nil {
			config.DebugLog.Debug().
				Bool("configured", m.Configured()).
				Stringer("phase", m.Phase).
				Msg("[Model] Submit ignored")
		}
		return nil
	}

	userMsg := m.Conversation.Append(SenderUser, text)
	m.Phase = PhaseSending
	m.Banner = ""

	return m.SendToWebhook(userMsg)
}

// ApplyReply settles the in-flight turn and returns the message it appended:
// the reply as an assistant message, or FailureNotice as a system message
// with the raw error moved to Banner.
func (m *Model) ApplyReply(msg ReplyMsg) Message {
	m.Phase = PhaseIdle

	if msg.Err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Error().Err(msg.Err).Str("request_id", msg.RequestID).Msg("[Model] webhook turn failed")
		}
		m.Banner = fmt.Sprintf("Failed to send message: %v", msg.Err)
		return m.Conversation.Append(SenderSystem, FailureNotice)
	}

	if config.DebugLog != nil {
		config.DebugLog.Debug().Str("request_id", msg.RequestID).Int("reply_len", len(msg.Reply)).Msg("[Model] webhook turn succeeded")
	}
	return m.Conversation.Append(SenderAssistant, msg.Reply)
}

func (m *Model) DismissBanner() {
	m.Banner = ""
}

// Transcript renders the whole conversation as plain text for the clipboard
func (m *Model) Transcript() string {
	var b strings.Builder
	for _, msg := range m.Conversation.All() {
		fmt.Fprintf(&b, "[%s] %s:\n%s\n\n", msg.Timestamp.Format("15:04"), msg.Sender.DisplayName(), msg.Text)
	}
	return b.String()
}
