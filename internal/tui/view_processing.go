package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/promptme/internal/pipeline"
)

// stagesFor lists the pipeline stages a mode goes through.
func (a *App) stagesFor() []pipeline.Stage {
	switch a.state.mode {
	case modeEnhance:
		return []pipeline.Stage{pipeline.StageOptimizing}
	case modeQuick:
		return []pipeline.Stage{pipeline.StageOptimizing, pipeline.StageAssembling, pipeline.StageFormatting}
	}

	stages := []pipeline.Stage{pipeline.StageAssembling, pipeline.StageFormatting}
	if a.state.config.Optimize {
		stages = []pipeline.Stage{pipeline.StageAssembling, pipeline.StageOptimizing, pipeline.StageFormatting}
	}
	return stages
}

func (a *App) renderProcessing() string {
	var b strings.Builder

	// Title
	title := styleTitle.Render("Building your prompt")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	subject := a.state.template
	if subject == "" {
		subject = a.state.query
	}
	if subject != "" {
		info := styleSubtitle.Render(fmt.Sprintf("> %s for %s", truncate(subject, 50), a.state.targetModel))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, info))
		b.WriteString("\n\n")
	}

	// Progress stages
	current := pipeline.Stage(-1)
	if a.state.progress != nil {
		current = a.state.progress.Stage
	}
	stages := a.stagesFor()

	var stageLines []string
	for _, stage := range stages {
		var icon string
		var style lipgloss.Style

		switch {
		case current == pipeline.StageDone || isBefore(stage, current, stages):
			icon = "[x]"
			style = lipgloss.NewStyle().Foreground(colorSuccess)
		case stage == current:
			icon = "[" + a.state.spinner.View() + "]"
			style = styleSelected
		default:
			icon = "[ ]"
			style = lipgloss.NewStyle().Foreground(colorMuted)
		}

		stageLines = append(stageLines, style.Render(fmt.Sprintf("  %s  %s", icon, stage)))
	}

	stagesBox := styleBox.Copy().
		Width(a.boxWidth(50)).
		Render(strings.Join(stageLines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, stagesBox))
	b.WriteString("\n\n")

	// Message
	msg := "Starting..."
	if a.state.progress != nil && a.state.progress.Message != "" {
		msg = a.state.progress.Message
	}
	elapsed := time.Since(a.state.processingStart).Round(time.Second)
	status := styleSubtitle.Render(fmt.Sprintf("%s %s (%s)", a.state.spinner.View(), truncate(msg, 50), elapsed))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))
	b.WriteString("\n\n")

	instructions := styleStatusBar.Render("[Esc] Cancel")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}

// isBefore reports whether stage comes before current in order.
func isBefore(stage, current pipeline.Stage, order []pipeline.Stage) bool {
	for _, s := range order {
		if s == current {
			return false
		}
		if s == stage {
			return true
		}
	}
	return false
}
