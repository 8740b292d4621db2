package ui

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	markdown "github.com/MichaelMure/go-term-markdown"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	gomarkdown "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"

	"calchat/config"
	appmodel "calchat/model"
)

const timestampLayout = "[3:04 PM]"

// go-term-markdown marks code block lines with this bar
const codeBar = "┃"

var (
	inlineCodeRegex = regexp.MustCompile(`(?s)\x1b\[44;3m(.*?)\x1b\[0m`)
	mdLinkRegex     = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^\)]+)\)`)
	urlRegex        = regexp.MustCompile(`(https?://[^\s]+)`)
)

const (
	ansiReset     = "\x1b[0m"
	ansiRed       = "\x1b[31m"
	ansiGreenBold = "\x1b[32;1m"
	ansiDarkGray  = "\x1b[90m"
)

func (a *AppView) updateViewportContent(gotoBottom bool) {
	messages := a.dataModel.Conversation.All()
	if len(messages) == 0 {
		a.viewport.SetContent(DimStyle.Render("No messages yet. Say hello!"))
		return
	}

	var content strings.Builder

	for i, msg := range messages {
		highlightPrefix := ""
		if i == a.highlightedMessageIdx && a.highlightFlashCount%2 == 1 {
			highlightPrefix = HighlightStyle.Render(">>> ")
		}

		timestamp := DimStyle.Render(msg.Timestamp.Format(timestampLayout))
		role := senderStyle(msg.Sender).Render(msg.Sender.DisplayName())

		body := msg.Text
		if r, ok := a.rendered[msg.ID]; ok {
			body = r
		}

		switch msg.Sender {
		case appmodel.SenderUser:
			content.WriteString(formatUserMessage(highlightPrefix, timestamp, role, body))
		case appmodel.SenderSystem:
			content.WriteString(fmt.Sprintf("%s%s %s\n%s\n\n", highlightPrefix, timestamp, role, SystemStyle.Render(body)))
		default:
			content.WriteString(fmt.Sprintf("%s%s %s\n%s\n\n", highlightPrefix, timestamp, role, body))
		}
	}

	a.viewport.SetContent(content.String())
	if gotoBottom {
		a.viewport.GotoBottom()
	}
}

func senderStyle(s appmodel.Sender) lipgloss.Style {
	switch s {
	case appmodel.SenderUser:
		return UserStyle
	case appmodel.SenderAssistant:
		return AssistantStyle
	default:
		return DimStyle
	}
}

// formatUserMessage prefixes every line of a user message with a green bar
func formatUserMessage(highlightPrefix, timestamp, role, content string) string {
	bar := ansiGreenBold + codeBar + ansiReset

	var result strings.Builder
	result.WriteString(fmt.Sprintf("%s%s %s %s\n", highlightPrefix, bar, timestamp, role))
	for _, line := range strings.Split(content, "\n") {
		result.WriteString(fmt.Sprintf("%s %s\n", bar, line))
	}
	result.WriteString("\n")

	return result.String()
}

// renderMarkdownAsync renders an assistant reply off the update loop. The
// result arrives as a markdownRenderedMsg keyed by message ID.
func (a AppView) renderMarkdownAsync(messageID, content string) tea.Cmd {
	width := a.width
	return func() tea.Msg {
		startTime := time.Now()

		rendered := renderMarkdown(content, width)

		if config.DebugLog != nil {
			config.DebugLog.Debug().
				Str("message_id", messageID).
				Int("length", len(content)).
				Dur("elapsed", time.Since(startTime)).
				Msg("markdown rendered")
		}

		return markdownRenderedMsg{
			MessageID: messageID,
			Rendered:  rendered,
		}
	}
}

func renderMarkdown(content string, width int) string {
	if width < 20 {
		width = 20
	}

	// Links are shown as bare URLs so the terminal can make them clickable
	content = mdLinkRegex.ReplaceAllString(content, "$2")

	ext := markdown.Extensions() &^ parser.Autolink
	p := parser.NewWithExtensions(ext)
	r := markdown.NewRenderer(width-4, 0)
	doc := p.Parse([]byte(content))
	out := string(gomarkdown.Render(doc, r))

	out = inlineCodeRegex.ReplaceAllString(out, ansiRed+"$1"+ansiReset)
	out = colorURLs(out)
	out = frameCodeBlocks(out, width)

	return strings.TrimRight(out, "\n")
}

// colorURLs paints bare URLs red outside code blocks
func colorURLs(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if !strings.Contains(line, codeBar) {
			lines[i] = urlRegex.ReplaceAllString(line, ansiRed+"$1"+ansiReset)
		}
	}
	return strings.Join(lines, "\n")
}

// frameCodeBlocks replaces the renderer's per-line bar with a gray frame
// labelled [code] above and below each block.
func frameCodeBlocks(s string, width int) string {
	lineLen := width - 4
	if lineLen < 8 {
		lineLen = 8
	}

	label := "[code]"
	left := (lineLen - len(label)) / 2
	top := ansiDarkGray + strings.Repeat("━", left) + ansiReset + label +
		ansiDarkGray + strings.Repeat("━", lineLen-len(label)-left) + ansiReset
	bottom := ansiDarkGray + strings.Repeat("━", lineLen) + ansiReset

	var out []string
	inBlock := false

	for _, line := range strings.Split(s, "\n") {
		isCode := strings.Contains(line, codeBar)
		switch {
		case isCode && !inBlock:
			inBlock = true
			out = append(out, "", top, "", stripCodeBar(line))
		case isCode:
			out = append(out, stripCodeBar(line))
		case inBlock:
			inBlock = false
			out = append(out, "", bottom, "", line)
		default:
			out = append(out, line)
		}
	}
	if inBlock {
		out = append(out, "", bottom, "")
	}

	return strings.Join(out, "\n")
}

func stripCodeBar(line string) string {
	idx := strings.Index(line, codeBar)
	if idx < 0 {
		return line
	}
	rest := line[idx+len(codeBar):]
	return strings.TrimPrefix(rest, " ")
}

// renderPending starts markdown renders for assistant messages that have none yet
func (a AppView) renderPending() tea.Cmd {
	var cmds []tea.Cmd
	for _, msg := range a.dataModel.Conversation.All() {
		if msg.Sender != appmodel.SenderAssistant {
			continue
		}
		if _, ok := a.rendered[msg.ID]; ok {
			continue
		}
		cmds = append(cmds, a.renderMarkdownAsync(msg.ID, msg.Text))
	}
	return tea.Batch(cmds...)
}
