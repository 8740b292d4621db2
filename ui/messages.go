package ui

import (
	"calchat/model"
)

type Message = model.Message

// Message type aliases - these are defined in the model package
type replyMsg = model.ReplyMsg
type markdownRenderedMsg = model.MarkdownRenderedMsg
type clipboardCopiedMsg = model.ClipboardCopiedMsg
type flashTickMsg = model.FlashTickMsg
