package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorSecondary = lipgloss.Color("#06B6D4")
	colorSuccess   = lipgloss.Color("#10B981")
	colorWarning   = lipgloss.Color("#F59E0B")
	colorError     = lipgloss.Color("#EF4444")
	colorMuted     = lipgloss.Color("#6B7280")
	colorWhite     = lipgloss.Color("#F9FAFB")
)

var (
	styleLogo      = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	styleTitle     = styleLogo
	styleHeading   = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
	styleSubtitle  = lipgloss.NewStyle().Foreground(colorMuted)
	styleStatusBar = styleSubtitle
	styleSelected  = lipgloss.NewStyle().Foreground(colorSecondary).Bold(true)
	styleWarning   = lipgloss.NewStyle().Foreground(colorWarning)
	styleNotice    = lipgloss.NewStyle().Foreground(colorSuccess)
	styleFailure   = lipgloss.NewStyle().Foreground(colorError)

	styleBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)
)

// truncate shortens s to n bytes, ending in "..." when cut.
func truncate(s string, n int) string {
	switch {
	case len(s) <= n:
		return s
	case n <= 3:
		return s[:n]
	default:
		return s[:n-3] + "..."
	}
}

// boxWidth caps a box at limit columns on narrow terminals.
func (a *App) boxWidth(limit int) int {
	if a.width > 0 && a.width-4 < limit {
		return a.width - 4
	}
	return limit
}

// framed draws content in a box at most width columns wide.
func (a *App) framed(width int, border lipgloss.TerminalColor, content string) string {
	return styleBox.Copy().Width(a.boxWidth(width)).BorderForeground(border).Render(content)
}

// stack centers each non-empty block on its own row, separated by a blank
// line, and centers the result vertically.
func (a *App) stack(blocks ...string) string {
	rows := make([]string, 0, len(blocks))
	for _, block := range blocks {
		if block != "" {
			rows = append(rows, lipgloss.PlaceHorizontal(a.width, lipgloss.Center, block))
		}
	}
	return a.centerVertically(strings.Join(rows, "\n\n"))
}

func (a *App) centerVertically(content string) string {
	pad := (a.height - strings.Count(content, "\n") - 1) / 2
	if pad <= 0 {
		return content
	}
	return strings.Repeat("\n", pad) + content
}
