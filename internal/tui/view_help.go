package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

var helpModes = []string{
	"  Craft     Pick a template, answer its questions, get a",
	"            CRAFT prompt (Context, Role, Audience, Format,",
	"            Tone, Task) formatted for the target model",
	"  Quick     Describe a need in one line; vague requests",
	"            get a few follow-up questions first",
	"  Enhance   Improve a prompt you already wrote",
	"  Library   Your own templates in TEMPLATE.md files",
	"  Settings  Provider, model, API key and target model",
}

func helpLines(bindings []key.Binding) string {
	lines := make([]string, len(bindings))
	for i, b := range bindings {
		h := b.Help()
		lines[i] = fmt.Sprintf("  %-14s %s", h.Key, h.Desc)
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderHelp() string {
	return a.stack(
		styleTitle.Render("Help"),
		a.framed(60, colorMuted, strings.Join(helpModes, "\n")),
		styleSubtitle.Render("Keyboard Shortcuts"),
		a.framed(60, colorMuted, helpLines(keys.shortcuts())),
		styleStatusBar.Render("[Esc] Back"),
	)
}
