package model

// ReplyMsg settles the in-flight webhook turn.
type ReplyMsg struct {
	RequestID string // ID of the user message that started the turn
	Reply     string
	Err       error
}

type MarkdownRenderedMsg struct {
	MessageID string
	Rendered  string
}

type ClipboardCopiedMsg struct {
	What string
	Err  error
}

type FlashTickMsg struct{}
