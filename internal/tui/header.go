package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// HeaderView renders the top header bar showing the logo and persistent status.
func HeaderView(mode Mode, workDir string, calls int, width int) string {
	logo := logoStyle.Render("dirtools")

	modeLabel := modeReadStyle.Render("READ")
	if mode == WriteMode {
		modeLabel = modeWriteStyle.Render("WRITE")
	}

	printer := message.NewPrinter(language.English)
	dirLabel := fmt.Sprintf("%s %s", statusKeyStyle.Render("root:"), statusDescStyle.Render(workDir))
	callsLabel := fmt.Sprintf("%s %s", statusKeyStyle.Render("calls:"), statusDescStyle.Render(printer.Sprintf("%d", calls)))
	right := fmt.Sprintf("%s  %s", dirLabel, callsLabel)

	left := fmt.Sprintf("%s  %s", logo, modeLabel)
	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}

	bar := fmt.Sprintf("%s%*s%s", left, gap, "", right)
	return headerStyle.Width(width).Render(bar)
}
