package model

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is the append-only, in-memory message log of one run.
// Insertion order is display order.
type Conversation struct {
	messages []Message

	now   func() time.Time
	newID func() string
}

func NewConversation() *Conversation {
	return &Conversation{
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Append stores a new message and returns it. Timestamps never go backwards:
// a clock step back reuses the previous message's timestamp.
func (c *Conversation) Append(sender Sender, text string) Message {
	ts := c.now()
	if n := len(c.messages); n > 0 && ts.Before(c.messages[n-1].Timestamp) {
		ts = c.messages[n-1].Timestamp
	}

	msg := Message{
		ID:        c.newID(),
		Sender:    sender,
		Text:      text,
		Timestamp: ts,
	}
	c.messages = append(c.messages, msg)
	return msg
}

// All returns a copy of the messages in insertion order
func (c *Conversation) All() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *Conversation) Len() int {
	return len(c.messages)
}

// Last returns the most recent message
func (c *Conversation) Last() (Message, bool) {
	if len(c.messages) == 0 {
		return Message{}, false
	}
	return c.messages[len(c.messages)-1], true
}

// LastFrom returns the most recent message from sender
func (c *Conversation) LastFrom(sender Sender) (Message, bool) {
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Sender == sender {
			return c.messages[i], true
		}
	}
	return Message{}, false
}
