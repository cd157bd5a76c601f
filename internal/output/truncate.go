package output

import "strings"

const (
	ListMaxLines = 100
	TreeMaxLines = 200

	TruncationMarker = "... (output truncated)"
)

// Truncate normalizes line endings, trims text and keeps at most maxLines lines, appending
// TruncationMarker on its own line when anything was dropped.
func Truncate(text string, maxLines int) string {
	out, _ := Truncated(text, maxLines)
	return out
}

// Truncated is Truncate that also reports whether lines were dropped.
func Truncated(text string, maxLines int) (string, bool) {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	if maxLines <= 0 || text == "" {
		return text, false
	}
	lines := strings.Split(text, "\n")
	if len(lines) <= maxLines {
		return text, false
	}
	kept := append(lines[:maxLines:maxLines], TruncationMarker)
	return strings.Join(kept, "\n"), true
}
