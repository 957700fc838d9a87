package ui

import (
	"tabchat/model"
)

// Message type aliases - these are defined in model package
type Message = model.Message

type chatResultMsg = model.ChatResultMsg
type markdownRenderedMsg = model.MarkdownRenderedMsg
type clipboardCopiedMsg = model.ClipboardCopiedMsg
