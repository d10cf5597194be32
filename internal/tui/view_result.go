package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderResult() string {
	var b strings.Builder
	res := a.state.result

	// What was asked
	heading := a.state.template
	if heading == "" {
		heading = a.state.mode.String()
	}
	if res.Framework != "" {
		heading += " / " + res.Framework
	}
	title := styleTitle.Render(fmt.Sprintf("%s for %s", heading, a.state.targetModel))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n")

	tokens := styleSubtitle.Render(tokenSummary(res.Prompt, a.state.targetModel))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, tokens))
	b.WriteString("\n\n")

	resultBox := styleBox.Copy().
		Width(a.boxWidth(80)).
		BorderForeground(colorPrimary).
		Render(a.state.viewport.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, resultBox))
	b.WriteString("\n\n")

	if res.Warning != "" {
		warning := styleWarning.Render(res.Warning)
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, warning))
		b.WriteString("\n")
	}
	if a.state.notice != "" {
		notice := styleNotice.Render(a.state.notice)
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, notice))
		b.WriteString("\n")
	}

	// Status bar
	raw := "Raw"
	if a.state.showRaw {
		raw = "Rendered"
	}
	status := styleStatusBar.Render(fmt.Sprintf("[c] Copy  [r] %s  [j/k] Scroll  [n] New prompt  [Esc] Menu", raw))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))

	return a.centerVertically(b.String())
}
