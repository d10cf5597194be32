package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/promptme/internal/models"
)

// listWindow returns the bounds of at most size items around cursor.
func listWindow(cursor, total, size int) (int, int) {
	if size <= 0 || total <= size {
		return 0, total
	}
	start := cursor - size/2
	if start < 0 {
		start = 0
	}
	if start+size > total {
		start = total - size
	}
	return start, start + size
}

func (a *App) listHeight() int {
	if a.height == 0 {
		return 0
	}
	return max(5, a.height-12)
}

func (a *App) renderTemplates() string {
	var b strings.Builder

	title := styleTitle.Render("Choose a template")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	var lines []string
	start, end := listWindow(a.state.choiceCursor, len(a.state.choices), a.listHeight())
	for i := start; i < end; i++ {
		c := a.state.choices[i]
		name := c.name
		if !c.builtin {
			name += " *"
		}
		line := fmt.Sprintf("%-36s %s", truncate(name, 36), truncate(c.desc, 34))
		if i == a.state.choiceCursor {
			lines = append(lines, styleSelected.Render("> "+line))
		} else {
			lines = append(lines, styleSubtitle.Render("  "+line))
		}
	}

	listBox := styleBox.Copy().
		Width(a.boxWidth(80)).
		Render(strings.Join(lines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, listBox))
	b.WriteString("\n\n")

	if a.state.library.Count() > 0 {
		hint := styleSubtitle.Render("* from your template library")
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, hint))
		b.WriteString("\n\n")
	}

	instructions := styleStatusBar.Render("[j/k] Navigate  [Enter] Select  [Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}

func (a *App) renderModels() string {
	var b strings.Builder

	title := styleTitle.Render("Which model is the prompt for?")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	all := models.All()
	var lines []string
	start, end := listWindow(a.state.modelCursor, len(all), a.listHeight())
	for i := start; i < end; i++ {
		m := all[i]
		line := fmt.Sprintf("%-16s %s", m.ID, m.Name)
		if i == a.state.modelCursor {
			lines = append(lines, styleSelected.Render("> "+line))
		} else {
			lines = append(lines, styleSubtitle.Render("  "+line))
		}
	}

	listBox := styleBox.Copy().
		Width(a.boxWidth(60)).
		Render(strings.Join(lines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, listBox))
	b.WriteString("\n\n")

	// Strategies for the highlighted model
	if a.state.modelCursor < len(all) {
		if s := all[a.state.modelCursor].Strategies; len(s) > 0 {
			tip := styleSubtitle.Render(truncate("Tip: "+s[0], 80))
			b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, tip))
			b.WriteString("\n\n")
		}
	}

	instructions := styleStatusBar.Render("[j/k] Navigate  [Enter] Generate  [Esc] Cancel")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}
