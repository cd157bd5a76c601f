package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Role identifies who produced a console entry.
type Role string

const (
	UserRole   Role = "you"
	ToolRole   Role = "tool"
	SystemRole Role = "system"
	DocRole    Role = "doc"
)

// DisplayMessage represents an entry as displayed in the TUI.
type DisplayMessage struct {
	Role      Role
	Content   string
	Timestamp time.Time

	ToolName string
	IsError  bool
	Duration time.Duration
}

// MessageList holds the console display state.
type MessageList struct {
	messages []DisplayMessage
	offset   int // scroll offset (lines from bottom)
}

// NewMessageList creates an empty message list.
func NewMessageList() MessageList {
	return MessageList{}
}

// Count returns the number of messages.
func (ml *MessageList) Count() int {
	return len(ml.messages)
}

// Add appends a message with the given role and content.
func (ml *MessageList) Add(role Role, content string) {
	ml.messages = append(ml.messages, DisplayMessage{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	})
	ml.scrollToBottom()
}

// AddToolResult adds the outcome of a tool call.
func (ml *MessageList) AddToolResult(toolName, output string, isError bool, took time.Duration) {
	ml.messages = append(ml.messages, DisplayMessage{
		Role:      ToolRole,
		Content:   output,
		Timestamp: time.Now(),
		ToolName:  toolName,
		IsError:   isError,
		Duration:  took,
	})
	ml.scrollToBottom()
}

// Clear removes every message.
func (ml *MessageList) Clear() {
	ml.messages = nil
	ml.offset = 0
}

func (ml *MessageList) scrollToBottom() {
	ml.offset = 0
}

// ScrollUp moves the viewport up.
func (ml *MessageList) ScrollUp(lines int) {
	if lines <= 0 {
		return
	}
	ml.offset += lines
}

// ScrollDown moves the viewport down.
func (ml *MessageList) ScrollDown(lines int) {
	if lines <= 0 {
		return
	}
	ml.offset -= lines
	if ml.offset < 0 {
		ml.offset = 0
	}
}

// View renders the message list within the given dimensions.
func (ml *MessageList) View(width, height int) string {
	if len(ml.messages) == 0 {
		empty := dimStyle.Render("Type a tool call such as \"tree src 2\", or help for usage.")
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, empty)
	}

	var rendered []string
	for _, msg := range ml.messages {
		rendered = append(rendered, renderDisplayMessage(msg, width))
	}

	content := strings.Join(rendered, "\n\n")

	// Truncate to fit height (simple approach: split to lines, take last N)
	allLines := strings.Split(content, "\n")
	lineCount := len(allLines)
	if height < 1 {
		return ""
	}

	maxOffset := max(0, lineCount-height)
	if ml.offset > maxOffset {
		ml.offset = maxOffset
	}
	start := max(0, lineCount-height-ml.offset)
	end := min(start+height, lineCount)

	visible := allLines[start:end]
	result := strings.Join(visible, "\n")

	// Pad to fill height
	currentLines := strings.Count(result, "\n") + 1
	if currentLines < height {
		result += strings.Repeat("\n", height-currentLines)
	}

	return result
}

func renderDisplayMessage(msg DisplayMessage, width int) string {
	contentWidth := max(20, width-4)

	switch msg.Role {
	case ToolRole:
		style := toolResultStyle
		if msg.IsError {
			style = toolErrorStyle
		}
		label := style.Render(fmt.Sprintf("  %s", msg.ToolName))
		took := timestampStyle.Render(msg.Duration.Round(time.Millisecond).String())
		// directory output is column aligned, so it is not re-wrapped
		body := toolOutputStyle.Render(msg.Content)
		if msg.IsError {
			body = errorStyle.PaddingLeft(2).Width(contentWidth).Render(msg.Content)
		}
		return label + "  " + took + "\n" + body

	case DocRole:
		return renderMarkdown(msg.Content, contentWidth)

	case UserRole:
		ts := timestampStyle.Render(msg.Timestamp.Format("15:04:05"))
		return userMsgStyle.Render("> "+msg.Content) + "  " + ts

	default:
		return dimStyle.Width(contentWidth).Render("  " + msg.Content)
	}
}
