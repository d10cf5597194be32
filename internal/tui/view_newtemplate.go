package tui

func (a *App) renderNewTemplate() string {
	title := styleLogo.Render("Create New Template")
	desc := styleSubtitle.Render("Describe the kind of prompt the template should produce")

	if a.state.generating {
		return a.stack(
			title,
			desc,
			a.framed(70, colorSecondary, a.state.spinner.View()+" Generating template..."),
			styleStatusBar.Render("Generating..."),
		)
	}

	var failure string
	border := colorPrimary
	if a.state.libraryError != nil {
		failure = a.framed(70, colorError, "Error: "+a.state.libraryError.Error())
		border = colorMuted
	}
	return a.stack(
		title,
		desc,
		failure,
		a.framed(70, border, a.state.input.View()),
		styleSubtitle.Render(`Examples: "release notes for a software version" or "a cover letter for a job"`),
		styleStatusBar.Render("[Enter] Create  [Esc] Cancel"),
	)
}
