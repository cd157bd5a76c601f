package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StatusBarView renders the bottom status bar.
func StatusBarView(mode Mode, backend string, width int, running string, awaiting bool) string {
	sep := statusSepStyle.Render(" | ")

	items := []string{
		fmt.Sprintf("%s %s", statusKeyStyle.Render("mode:"), statusDescStyle.Render(mode.String())),
		fmt.Sprintf("%s %s", statusKeyStyle.Render("backend:"), statusDescStyle.Render(backend)),
	}

	switch {
	case awaiting:
		items = append(items,
			fmt.Sprintf("%s %s", statusKeyStyle.Render("y"), statusDescStyle.Render("allow")),
			fmt.Sprintf("%s %s", statusKeyStyle.Render("a"), statusDescStyle.Render("allow for session")),
			fmt.Sprintf("%s %s", statusKeyStyle.Render("n"), statusDescStyle.Render("deny")),
		)
	case running != "":
		items = append(items, runningStatusStyle.Render("running "+running+"..."))
	}

	items = append(items,
		fmt.Sprintf("%s %s", statusKeyStyle.Render("enter"), statusDescStyle.Render("run")),
		fmt.Sprintf("%s %s", statusKeyStyle.Render("ctrl+t"), statusDescStyle.Render("toggle")),
		fmt.Sprintf("%s %s", statusKeyStyle.Render("ctrl+c"), statusDescStyle.Render("quit")),
	)

	return statusBarStyle.Width(width).
		Align(lipgloss.Center).
		Render(strings.Join(items, sep))
}
