package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/promptme/internal/config"
)

const logo = `
 ___  ___  ___  __  __  ___  _____  __  __  ___
| _ \| _ \/ _ \|  \/  || _ \|_   _||  \/  || __|
|  _/|   / (_) | |\/| ||  _/  | |  | |\/| || _|
|_|  |_|_\\___/|_|  |_||_|    |_|  |_|  |_||___|
`

func (a *App) renderWelcome() string {
	// Logo
	logoRendered := styleLogo.Render(logo)

	// Subtitle
	subtitle := styleSubtitle.Render("Structured prompts for any model")

	// Menu
	var lines []string
	for i, item := range menu {
		if i == a.state.menuSelected {
			lines = append(lines, styleSelected.Render(fmt.Sprintf("> %-22s %s", item.label, item.desc)))
		} else {
			lines = append(lines, styleSubtitle.Render(fmt.Sprintf("  %-22s %s", item.label, item.desc)))
		}
	}
	menuBox := styleBox.Copy().
		Width(a.boxWidth(76)).
		Render(strings.Join(lines, "\n"))

	// Combine main content
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		logoRendered,
		subtitle,
		"",
		menuBox,
		"",
		a.providerStatus(),
	)

	// Center content on screen (leave room for status bar)
	mainArea := lipgloss.Place(
		a.width,
		a.height-2,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)

	// Status bar centered at bottom
	statusBar := styleStatusBar.Render("[j/k] Navigate  [Enter] Select  [?] Help  [Esc] Quit")
	statusLine := lipgloss.PlaceHorizontal(a.width, lipgloss.Center, statusBar)

	return lipgloss.JoinVertical(lipgloss.Left, mainArea, statusLine)
}

// providerStatus is a one-line summary of the completion service.
func (a *App) providerStatus() string {
	name := a.state.config.Provider
	if p := config.GetProvider(name); p != nil {
		name = p.Name
	}

	switch {
	case a.state.providerReady:
		return lipgloss.NewStyle().Foreground(colorSuccess).
			Render(fmt.Sprintf("%s (%s) ready", name, a.state.config.Model))
	case a.state.providerError != nil:
		return styleWarning.Render(truncate(
			fmt.Sprintf("%s unavailable, prompts are built locally: %v", name, a.state.providerError), 90))
	default:
		return styleSubtitle.Render("Connecting to " + name + "...")
	}
}
