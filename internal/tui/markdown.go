package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// renderers caches one glamour renderer per wrap width.
var renderers sync.Map

func markdownRenderer(width int) *glamour.TermRenderer {
	if r, ok := renderers.Load(width); ok {
		return r.(*glamour.TermRenderer)
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithEnvironmentConfig(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	renderers.Store(width, renderer)
	return renderer
}

// renderMarkdown renders content wrapped to width. It falls back to the raw
// text when glamour cannot render it.
func renderMarkdown(content string, width int) string {
	if strings.TrimSpace(content) == "" {
		return content
	}
	renderer := markdownRenderer(max(0, width))
	if renderer == nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(rendered, "\n")
}
