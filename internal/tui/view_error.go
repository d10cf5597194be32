package tui

import "strings"

func (a *App) renderError() string {
	msg := "Unknown error"
	if a.state.err != nil {
		msg = a.state.err.Error()
	}

	var hints string
	if suggestions := suggestionsFor(msg); len(suggestions) > 0 {
		hints = a.framed(60, colorMuted, "Suggestions:\n"+strings.Join(suggestions, "\n"))
	}
	return a.stack(
		styleFailure.Bold(true).Render("Something went wrong"),
		a.framed(60, colorError, msg),
		hints,
		styleStatusBar.Render("[Enter] Menu  [Esc] Back"),
	)
}

var errorHints = []struct {
	needles []string
	hints   []string
}{
	{
		[]string{"api key", "401", "unauthorized"},
		[]string{"Check your API key in ~/.config/promptme/config.yaml", "Or set it in .env next to the config"},
	},
	{
		[]string{"connection", "connect", "timeout"},
		[]string{"Check your internet connection", "Or try using Ollama for offline mode"},
	},
	{
		[]string{"ollama"},
		[]string{"Make sure Ollama is running: ollama serve", "Or switch to a cloud provider in settings"},
	},
	{
		[]string{"rate limit", "429"},
		[]string{"You've hit the API rate limit", "Wait a moment and try again"},
	},
	{
		[]string{"permission denied"},
		[]string{"Check that ~/.config/promptme is writable"},
	},
	{
		[]string{"follow-up"},
		[]string{"Start a new quick prompt and answer at least one question"},
	},
}

// suggestionsFor returns the hints of the first entry matching msg.
func suggestionsFor(msg string) []string {
	msg = strings.ToLower(msg)
	for _, e := range errorHints {
		for _, n := range e.needles {
			if strings.Contains(msg, n) {
				return e.hints
			}
		}
	}
	return nil
}
