package tui

import (
	"fmt"
	"strings"
)

func (a *App) renderLibrary() string {
	var body string
	if a.state.library.Count() == 0 {
		dir := "the templates directory"
		if a.state.library != nil {
			dir = a.state.library.Dir()
		}
		body = a.framed(70, colorMuted, styleSubtitle.Render(fmt.Sprintf(
			"No templates yet.\n\nPress [n] to generate one, or create them in:\n%s\n\nEach template is a folder with TEMPLATE.md", dir)))
	} else {
		var lines []string
		for i, meta := range a.state.library.All() {
			if i == a.state.libraryCursor {
				lines = append(lines, styleSelected.Render("> "+meta.Name))
			} else {
				lines = append(lines, "  "+meta.Name)
			}
			if meta.Description != "" {
				lines = append(lines, styleSubtitle.Render("    "+truncate(meta.Description, 60)))
			}
			if len(meta.Questions) > 0 {
				lines = append(lines, styleSubtitle.Render("    "+pluralQuestions(len(meta.Questions))))
			}
		}
		body = a.framed(70, colorPrimary, strings.Join(lines, "\n"))
	}

	var status string
	switch {
	case a.state.libraryError != nil:
		status = styleFailure.Render("Error: " + a.state.libraryError.Error())
	case a.state.notice != "":
		status = styleNotice.Render(a.state.notice)
	}

	return a.stack(
		styleLogo.Render("Template Library"),
		styleSubtitle.Render("Your own templates, used next to the built-in ones"),
		body,
		status,
		styleStatusBar.Render("[j/k] Navigate  [Enter] Use  [n] New template  [Esc] Back"),
	)
}
