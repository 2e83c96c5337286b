package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ctt011/folio/internal/highlight"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED"))

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#E5E7EB"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#10B981"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	linkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6"))

	pillStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D1D5DB")).
			Padding(0, 1)

	activePillStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#111827")).
			Background(lipgloss.Color("#10B981")).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9CA3AF")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FBBF24")).
			Padding(0, 1)

	lineNumberStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4B5563"))
)

// tokenStyles colours highlighted source in the terminal the way the
// syntax-* classes do in the browser.
var tokenStyles = map[highlight.Kind]lipgloss.Style{
	highlight.Keyword: lipgloss.NewStyle().Foreground(lipgloss.Color("#C678DD")).Bold(true),
	highlight.Type:    lipgloss.NewStyle().Foreground(lipgloss.Color("#E5C07B")),
	highlight.Comment: lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Italic(true),
	highlight.String:  lipgloss.NewStyle().Foreground(lipgloss.Color("#98C379")),
	highlight.Number:  lipgloss.NewStyle().Foreground(lipgloss.Color("#D19A66")),
}

// codeLine renders one source line with terminal colours.
func codeLine(line, lang string) string {
	if !highlight.Supported(lang) {
		return line
	}
	var b strings.Builder
	for _, tok := range highlight.Tokenize(line) {
		if style, ok := tokenStyles[tok.Kind]; ok {
			b.WriteString(style.Render(tok.Text))
		} else {
			b.WriteString(tok.Text)
		}
	}
	return b.String()
}
