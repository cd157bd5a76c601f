package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

// outer width 26 leaves a wrap width of 18 once the border and the
// two-cell prompt are taken off.
const testInputWidth = 26

func newSizedInput(t *testing.T) Input {
	t.Helper()
	input := NewInput()
	input.SetWidth(testInputWidth)
	input.View(testInputWidth, ReadMode)
	if w := input.textArea.Width(); w != 18 {
		t.Fatalf("wrap width = %d, want 18", w)
	}
	return input
}

func typeText(input *Input, s string) {
	for _, ch := range s {
		input.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{ch}})
	}
}

func TestInputEnterDoesNotInsertNewline(t *testing.T) {
	input := newSizedInput(t)
	typeText(&input, "ls")
	input.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if got := input.Value(); got != "ls" {
		t.Errorf("Value = %q, want %q", got, "ls")
	}
	if input.Height() != 3 {
		t.Errorf("Height = %d, want a single row plus border", input.Height())
	}
}

func TestInputCtrlTLeavesText(t *testing.T) {
	input := newSizedInput(t)
	typeText(&input, "ab")
	input.Update(tea.KeyMsg{Type: tea.KeyCtrlT})

	if got := input.Value(); got != "ab" {
		t.Errorf("Value = %q, ctrl+t should not transpose", got)
	}
}

func TestInputLongCommandWraps(t *testing.T) {
	input := newSizedInput(t)
	cmd := "create_directory build/out"
	typeText(&input, cmd)

	if rows := input.textArea.Height(); rows != 2 {
		t.Errorf("rows = %d, want 2 for a %d cell command", rows, len(cmd))
	}
	rendered := input.View(testInputWidth, ReadMode)
	if !strings.Contains(rendered, "create_direct") {
		t.Errorf("start of command scrolled away:\n%s", rendered)
	}
}

func TestInputSetValueAndReset(t *testing.T) {
	input := newSizedInput(t)

	input.SetValue("tree src 2")
	if input.Value() != "tree src 2" || input.Height() != 3 {
		t.Errorf("short recall: value %q height %d", input.Value(), input.Height())
	}

	input.SetValue(strings.Repeat("x", 100))
	if input.Height() != maxInputRows+2 {
		t.Errorf("long recall height = %d, want capped at %d", input.Height(), maxInputRows+2)
	}

	input.Reset()
	if input.Value() != "" || input.Height() != 3 {
		t.Errorf("after Reset: value %q height %d", input.Value(), input.Height())
	}
}

func TestWrappedRows(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  int
	}{
		{"empty", "", 18, 1},
		{"short", "ls src", 18, 1},
		{"one short of width", strings.Repeat("a", 17), 18, 1},
		{"full row spills", strings.Repeat("a", 18), 18, 2},
		{"two full rows", strings.Repeat("a", 36), 18, 3},
		{"wide runes", strings.Repeat("界", 9), 18, 2},
		{"no width", "tree", 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wrappedRows(tt.text, tt.width); got != tt.want {
				t.Errorf("wrappedRows(%q, %d) = %d, want %d", tt.text, tt.width, got, tt.want)
			}
		})
	}
}
