package tui

import (
	"fmt"
	"strings"
)

func (a *App) renderQuestions() string {
	heading := a.state.template
	if a.state.mode == modeQuick {
		heading = "A few details will sharpen your prompt"
	}
	header := strings.Join([]string{
		styleTitle.Render(heading),
		styleSubtitle.Render(fmt.Sprintf("Question %d of %d", a.state.questionIndex+1, len(a.state.questions))),
	}, "\n")

	return a.stack(
		header,
		styleHeading.Render(a.state.questions[a.state.questionIndex]),
		a.framed(70, colorPrimary, a.state.input.View()),
		styleStatusBar.Render("[Enter] Next  [Shift+Tab] Previous  [Esc] Cancel"),
	)
}

func (a *App) renderQuery() string {
	var examples string
	if a.state.mode == modeQuick {
		examples = styleSubtitle.Render(`Examples: "explain recursion to a beginner" or "write a story about a lighthouse"`)
	}
	return a.stack(
		styleTitle.Render(a.state.mode.String()),
		a.framed(70, colorPrimary, a.state.input.View()),
		examples,
		styleStatusBar.Render("[Enter] Continue  [Esc] Cancel"),
	)
}
