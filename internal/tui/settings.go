package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/promptme/internal/config"
	"github.com/sant0-9/promptme/internal/models"
)

// Settings panes. The empty pane is the overview.
const (
	paneProvider = "provider"
	paneModel    = "model"
	paneTarget   = "target"
	paneAPIKey   = "apikey"
)

// picker is a single-choice list that edits one config field.
type picker struct {
	title   string
	note    string
	options []string
	current string
	apply   func(cfg *config.Config, i int)
}

// activePicker returns the list for the open pane, or nil when the pane is not a
// list.
func (a *App) activePicker() *picker {
	cfg := a.state.config

	switch a.state.settingsMode {
	case paneProvider:
		p := &picker{title: "Select Provider", current: cfg.Provider}
		for _, info := range config.Providers {
			p.options = append(p.options, info.ID)
		}
		p.apply = func(c *config.Config, i int) {
			info := config.Providers[i]
			if info.ID == c.Provider {
				return
			}
			c.Provider = info.ID
			c.Model = info.DefaultModel
			c.BaseURL = ""
		}
		return p

	case paneModel:
		info := config.GetProvider(cfg.Provider)
		if info == nil {
			return nil
		}
		return &picker{
			title:   "Select Model",
			note:    "Provider: " + info.Name,
			options: info.Models,
			current: cfg.Model,
			apply:   func(c *config.Config, i int) { c.Model = info.Models[i] },
		}

	case paneTarget:
		all := models.All()
		p := &picker{
			title:   "Default Target Model",
			note:    "Prompts are formatted for this model unless you pick another",
			current: cfg.TargetModel,
		}
		for _, m := range all {
			p.options = append(p.options, m.ID)
		}
		p.apply = func(c *config.Config, i int) { c.TargetModel = all[i].ID }
		return p
	}
	return nil
}

func (a *App) openPane(pane string) tea.Cmd {
	a.state.settingsMode = pane
	a.state.settingsSelected = 0

	if pane == paneAPIKey {
		a.state.apiKeyInput.Focus()
		return textinput.Blink
	}
	if p := a.activePicker(); p != nil {
		a.state.settingsSelected = indexOf(p.options, p.current)
	}
	return nil
}

func (a *App) closePane() {
	a.state.settingsMode = ""
	a.state.apiKeyInput.Reset()
}

func (a *App) handleSettingsKey(msg tea.KeyMsg) tea.Cmd {
	switch a.state.settingsMode {
	case "":
		return a.handleSettingsOverviewKey(msg)
	case paneAPIKey:
		switch {
		case key.Matches(msg, keys.Cancel):
			a.closePane()
		case key.Matches(msg, keys.Enter):
			a.state.config.APIKey = a.state.apiKeyInput.Value()
			a.closePane()
			return a.saveSettings()
		}
		return nil
	}

	p := a.activePicker()
	if p == nil || key.Matches(msg, keys.Cancel) {
		a.closePane()
		return nil
	}

	switch {
	case key.Matches(msg, keys.Up):
		if a.state.settingsSelected > 0 {
			a.state.settingsSelected--
		}
	case key.Matches(msg, keys.Down):
		if a.state.settingsSelected < len(p.options)-1 {
			a.state.settingsSelected++
		}
	case key.Matches(msg, keys.Enter):
		p.apply(a.state.config, a.state.settingsSelected)
		a.closePane()
		return a.saveSettings()
	}
	return nil
}

func (a *App) handleSettingsOverviewKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Cancel):
		a.state.notice = ""
		a.view = viewWelcome
	case key.Matches(msg, keys.Provider):
		return a.openPane(paneProvider)
	case key.Matches(msg, keys.Model):
		return a.openPane(paneModel)
	case key.Matches(msg, keys.Target):
		return a.openPane(paneTarget)
	case key.Matches(msg, keys.APIKey):
		return a.openPane(paneAPIKey)
	case key.Matches(msg, keys.Optimize):
		a.state.config.Optimize = !a.state.config.Optimize
		return a.saveSettings()
	}
	return nil
}

// saveSettings writes a snapshot of the config so later edits do not race
// the write.
func (a *App) saveSettings() tea.Cmd {
	cfg := *a.state.config
	return func() tea.Msg {
		if err := cfg.Save(); err != nil {
			return setupErrorMsg{err}
		}
		return settingsSavedMsg{}
	}
}

func (a *App) renderSettings() string {
	if a.state.settingsMode == paneAPIKey {
		return a.stack(
			styleTitle.Render("Update API Key"),
			styleSubtitle.Render("Leave blank to use the provider's environment variable"),
			a.framed(50, colorPrimary, a.state.apiKeyInput.View()),
			styleStatusBar.Render("[Enter] Save  [Esc] Cancel"),
		)
	}
	if p := a.activePicker(); p != nil {
		return a.renderPicker(p)
	}
	return a.renderSettingsOverview()
}

func (a *App) renderPicker(p *picker) string {
	lines := make([]string, len(p.options))
	for i, opt := range p.options {
		if opt == p.current {
			opt += " (current)"
		}
		if i == a.state.settingsSelected {
			lines[i] = styleSelected.Render("> " + opt)
		} else {
			lines[i] = "  " + opt
		}
	}

	var note string
	if p.note != "" {
		note = styleSubtitle.Render(p.note)
	}
	return a.stack(
		styleTitle.Render(p.title),
		note,
		a.framed(50, colorMuted, strings.Join(lines, "\n")),
		styleStatusBar.Render("[Up/Down] Navigate  [Enter] Select  [Esc] Cancel"),
	)
}

func (a *App) renderSettingsOverview() string {
	cfg := a.state.config

	provider := cfg.Provider
	if info := config.GetProvider(cfg.Provider); info != nil {
		provider = info.Name
	}
	optimize := "off"
	if cfg.Optimize {
		optimize = "on"
	}

	rows := [][2]string{
		{"Provider", provider},
		{"Model", cfg.Model},
		{"API Key", maskKey(cfg.APIKey)},
		{"Optimize", optimize},
		{"Target model", cfg.TargetModel},
	}
	var current []string
	for _, r := range rows {
		current = append(current, fmt.Sprintf(" %-13s %s", r[0]+":", r[1]))
	}

	var actions []string
	for _, b := range []key.Binding{keys.Provider, keys.Model, keys.Target, keys.APIKey, keys.Optimize} {
		actions = append(actions, fmt.Sprintf(" [%s] %s", b.Help().Key, b.Help().Desc))
	}

	var status string
	if a.state.notice != "" {
		status = lipgloss.JoinVertical(lipgloss.Center,
			styleNotice.Render(a.state.notice),
			a.providerStatus(),
		)
	}

	return a.stack(
		styleTitle.Render("Settings"),
		a.framed(50, colorMuted, strings.Join(current, "\n")),
		a.framed(50, colorMuted, strings.Join(actions, "\n")),
		status,
		styleStatusBar.Render("[Esc] Back"),
	)
}

// maskKey keeps the first and last four characters of long keys.
func maskKey(k string) string {
	switch {
	case k == "":
		return "Not set"
	case len(k) <= 8:
		return "****"
	default:
		return k[:4] + "****" + k[len(k)-4:]
	}
}
