package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// Render formats the summary for the terminal.
func (s Summary) Render() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Reconciliation complete"))
	b.WriteString("\n")
	b.WriteString(successStyle.Render(fmt.Sprintf("  Matched:    %d", s.Matched)))
	b.WriteString("\n")
	b.WriteString(warningStyle.Render(fmt.Sprintf("  Unmatched:  %d", s.Unmatched)))
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render(fmt.Sprintf("  Excluded:   %d (payments and credits)", s.Excluded)))
	b.WriteString("\n")
	if s.Skipped > 0 {
		b.WriteString(subtleStyle.Render(fmt.Sprintf("  Skipped:    %d (unparseable rows)", s.Skipped)))
		b.WriteString("\n")
	}
	b.WriteString(subtleStyle.Render(fmt.Sprintf("  Receipts indexed: %d", s.Indexed)))
	b.WriteString("\n")

	return b.String()
}
