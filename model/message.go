package model

import "time"

// Sender identifies who produced a message
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
	SenderSystem    Sender = "system"
)

// DisplayName is the label shown next to a message in the conversation view
func (s Sender) DisplayName() string {
	switch s {
	case SenderUser:
		return "You"
	case SenderAssistant:
		return "Assistant"
	default:
		return "System"
	}
}

// Message is one conversation entry. Messages are immutable once appended.
type Message struct {
	ID        string
	Sender    Sender
	Text      string
	Timestamp time.Time
}
