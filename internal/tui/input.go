package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	rw "github.com/mattn/go-runewidth"
)

// maxInputRows caps how far a long command line soft-wraps before the
// textarea scrolls.
const maxInputRows = 4

// inputChrome is the border and padding around the textarea.
const inputChrome = 6

// Input is the console command line. A command is one logical line: enter
// submits it, and the box only grows while a long line soft-wraps.
type Input struct {
	textArea textarea.Model
	focused  bool
	width    int // outer width, applied on the next Update
}

// NewInput creates the command line.
func NewInput() Input {
	ta := textarea.New()
	ta.Placeholder = "ls, tree src 2, create_directory build ..."
	ta.Focus()
	ta.CharLimit = 1024
	ta.MaxHeight = maxInputRows
	ta.ShowLineNumbers = false
	ta.Prompt = "> "
	ta.SetHeight(1)

	// enter belongs to the Submit binding
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithDisabled())
	// ctrl+t toggles the mode
	ta.KeyMap.TransposeCharacterBackward = key.NewBinding(key.WithDisabled())

	focused, blurred := textarea.DefaultStyles()
	focused.Prompt = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	focused.Text = lipgloss.NewStyle().Foreground(colorText)
	focused.Placeholder = lipgloss.NewStyle().Foreground(colorDim)
	focused.CursorLine = lipgloss.NewStyle()
	blurred.Prompt = lipgloss.NewStyle().Foreground(colorDim)
	blurred.Text = lipgloss.NewStyle().Foreground(colorDim)
	blurred.Placeholder = lipgloss.NewStyle().Foreground(colorDim)
	ta.FocusedStyle = focused
	ta.BlurredStyle = blurred

	return Input{textArea: ta, focused: true}
}

// Update forwards msg to the textarea and refits the box to the wrapped
// command.
func (i *Input) Update(msg tea.Msg) tea.Cmd {
	i.applyWidth()
	// At full height the textarea never scrolls while a keystroke wraps the
	// line onto a new row; fit shrinks it afterwards.
	i.textArea.SetHeight(maxInputRows)

	var cmd tea.Cmd
	i.textArea, cmd = i.textArea.Update(msg)
	i.fit()
	return cmd
}

// SetWidth records the outer width. Model.View works on a copy, so the width
// is applied to the textarea during Update and SetValue.
func (i *Input) SetWidth(width int) {
	i.width = width
}

func (i *Input) applyWidth() {
	if i.width > 0 {
		i.textArea.SetWidth(i.width - inputChrome)
	}
}

// fit sizes the textarea to the rows the current command wraps onto.
func (i *Input) fit() {
	i.textArea.SetHeight(min(maxInputRows, wrappedRows(i.textArea.Value(), i.textArea.Width())))
}

// View renders the command line with a border colored by mode.
func (i *Input) View(width int, mode Mode) string {
	i.textArea.SetWidth(width - inputChrome)

	border := colorRead
	if mode == WriteMode {
		border = colorWrite
	}
	style := inputBorderStyle
	if i.focused {
		style = inputFocusedBorderStyle
	}
	return style.BorderForeground(border).Width(width - 4).Render(i.textArea.View())
}

// Value returns the command typed so far.
func (i *Input) Value() string {
	return i.textArea.Value()
}

// SetValue replaces the command, as when recalling an earlier line.
func (i *Input) SetValue(s string) {
	i.applyWidth()
	i.textArea.SetHeight(maxInputRows)
	i.textArea.SetValue(s)
	i.fit()
}

// Reset clears the command and shrinks the box to one row.
func (i *Input) Reset() {
	i.textArea.Reset()
	i.textArea.SetHeight(1)
}

func (i *Input) Focus() tea.Cmd {
	i.focused = true
	return i.textArea.Focus()
}

func (i *Input) Blur() {
	i.focused = false
	i.textArea.Blur()
}

// Height is the rendered height including the border.
func (i *Input) Height() int {
	return i.textArea.Height() + 2
}

// wrappedRows counts the rows a command occupies at the given wrap width.
// The textarea wraps a row once it reaches width and keeps a trailing cursor
// cell, so a full row already spills onto the next one.
func wrappedRows(text string, width int) int {
	if width <= 0 {
		return max(1, strings.Count(text, "\n")+1)
	}
	rows := 0
	for _, line := range strings.Split(text, "\n") {
		rows += rw.StringWidth(line)/width + 1
	}
	return max(1, rows)
}
