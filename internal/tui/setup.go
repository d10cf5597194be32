package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sant0-9/promptme/internal/config"
)

// First-run wizard steps.
const (
	stepProvider = 0
	stepAPIKey   = 1
)

func (a *App) handleSetupKey(msg tea.KeyMsg) tea.Cmd {
	if a.state.setupStep == stepAPIKey {
		switch {
		case key.Matches(msg, keys.Cancel):
			a.state.setupStep = stepProvider
			a.state.apiKeyInput.Reset()
		case key.Matches(msg, keys.Enter):
			a.state.config.APIKey = a.state.apiKeyInput.Value()
			a.state.apiKeyInput.Reset()
			return a.finishSetup()
		}
		return nil
	}

	switch {
	case key.Matches(msg, keys.Cancel):
		a.quitting = true
		return tea.Quit
	case key.Matches(msg, keys.Up):
		a.state.selectedProvider = max(a.state.selectedProvider-1, 0)
	case key.Matches(msg, keys.Down):
		a.state.selectedProvider = min(a.state.selectedProvider+1, len(config.Providers)-1)
	case key.Matches(msg, keys.Enter):
		info := config.Providers[a.state.selectedProvider]
		a.state.config.Provider = info.ID
		a.state.config.Model = info.DefaultModel
		if !info.NeedsAPIKey {
			return a.finishSetup()
		}
		a.state.setupStep = stepAPIKey
		a.state.apiKeyInput.Focus()
		return textinput.Blink
	}
	return nil
}

// finishSetup saves a snapshot of the wizard's config.
func (a *App) finishSetup() tea.Cmd {
	cfg := *a.state.config
	return func() tea.Msg {
		if err := cfg.Save(); err != nil {
			return setupErrorMsg{err}
		}
		return setupCompleteMsg{}
	}
}

func (a *App) renderSetup() string {
	if a.state.setupStep == stepAPIKey {
		return a.renderSetupKey()
	}
	return a.renderSetupProvider()
}

func (a *App) renderSetupProvider() string {
	rows := make([]string, len(config.Providers))
	for i, p := range config.Providers {
		if i == a.state.selectedProvider {
			rows[i] = styleSelected.Render(fmt.Sprintf("> [x] %-12s %s", p.Name, p.Description))
			continue
		}
		rows[i] = styleSubtitle.Render(fmt.Sprintf("  [ ] %-12s %s", p.Name, p.Description))
	}

	return a.stack(
		styleLogo.Render(logo),
		styleHeading.Render("Welcome! Choose the LLM that polishes your prompts:"),
		a.framed(56, colorMuted, strings.Join(rows, "\n")),
		styleSubtitle.Render("Every prompt can still be built offline if the service is down."),
		styleStatusBar.Render("[j/k] Navigate  [Enter] Select  [Esc] Quit"),
	)
}

func (a *App) renderSetupKey() string {
	p := config.GetProvider(a.state.config.Provider)
	if p == nil {
		return a.renderSetupProvider()
	}

	var hints []string
	if p.SignupURL != "" {
		hints = append(hints, "Get one at: "+p.SignupURL)
	}
	if p.APIKeyEnv != "" {
		hints = append(hints, "Or leave blank and set "+p.APIKeyEnv)
	}
	var hint string
	if len(hints) > 0 {
		hint = styleSubtitle.Render(strings.Join(hints, "\n"))
	}

	return a.stack(
		styleLogo.Render(logo),
		styleHeading.Render(fmt.Sprintf("Enter your %s API key:", p.Name)),
		hint,
		a.framed(60, colorSecondary, a.state.apiKeyInput.View()),
		styleStatusBar.Render("[Enter] Continue  [Esc] Back"),
	)
}
