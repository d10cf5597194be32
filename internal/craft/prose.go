package craft

import (
	"regexp"
	"strings"
)

var (
	quotedText  = regexp.MustCompile(`(?s)"""(.*?)"""`)
	dotSpaceDot = regexp.MustCompile(`\.[ \t]+\.`)
)

// Prose condenses a record into a single instruction without section
// headers. Quoted text is moved into its own "Here is the text to work
// with:" block, which is kept exactly as written, and trailing point or
// guideline lists are kept on their own lines. The result ends in terminal
// punctuation.
func Prose(r Record) string {
	var b strings.Builder
	var lead []string

	if ctx := strings.TrimSpace(r.Context); ctx != "" {
		if m := quotedText.FindStringSubmatchIndex(ctx); m != nil {
			rest := tidyProse(ctx[:m[0]] + ctx[m[1]:])
			if rest != "" {
				lead = append(lead, rest)
			}
			lead = append(lead, "Here is the text to work with:")
			if text := strings.Trim(ctx[m[2]:m[3]], "\n"); strings.TrimSpace(text) != "" {
				lead = append(lead, text)
			}
		} else {
			b.WriteString(ctx)
			b.WriteString(" ")
		}
	}

	for _, s := range []string{r.Role, r.Audience, r.Format, r.Tone} {
		if s = strings.TrimSpace(s); s != "" {
			b.WriteString(s)
			b.WriteString(" ")
		}
	}

	if task := strings.TrimSpace(r.Task); task != "" {
		b.WriteString(splitTask(task))
	}

	out := tidyProse(b.String())
	if out != "" {
		switch out[len(out)-1] {
		case '.', '!', '?', '\n':
		default:
			out += "."
		}
		lead = append(lead, out)
	}
	return strings.Join(lead, "\n\n")
}

func splitTask(task string) string {
	for _, marker := range []struct{ split, label string }{
		{"specific points:", "Include these specific points:"},
		{"specific guidelines:", "Follow these guidelines:"},
	} {
		head, tail, ok := strings.Cut(task, marker.split)
		if !ok {
			continue
		}
		head = strings.TrimSpace(head)
		head = strings.TrimSuffix(head, "Include these")
		head = strings.TrimSuffix(head, "Follow these")
		return strings.TrimSpace(head) + "\n\n" + marker.label + "\n" + strings.TrimSpace(tail) + "\n"
	}
	return task + " "
}

// tidyProse flattens line breaks inside paragraphs while keeping blank-line
// separated blocks.
func tidyProse(s string) string {
	paragraphs := strings.Split(s, "\n\n")
	out := paragraphs[:0]
	for _, p := range paragraphs {
		lines := strings.Split(p, "\n")
		for i, l := range lines {
			lines[i] = strings.TrimSpace(spaceRun.ReplaceAllString(l, " "))
		}
		p = strings.TrimSpace(strings.Join(lines, "\n"))
		p = dotSpaceDot.ReplaceAllString(p, ".")
		p = spaceBeforeDot.ReplaceAllString(p, ".")
		p = collapseDoubleDots(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n\n")
}

// Wrap builds a record around raw text for the named template. Text
// transformation templates get their dedicated fragments; everything else
// is treated as a general request.
func Wrap(text, name string) Record {
	text = strings.TrimSpace(text)
	quoted := quote + text + quote

	t, ok := Lookup(name)
	if !ok {
		t = Other
	}

	switch t {
	case Professional:
		return Record{
			Context:  "I need to rewrite the following text in a more professional tone:\n\n" + quoted,
			Role:     "You are an expert editor specializing in professional business communication.",
			Audience: "The text is intended for a professional business audience.",
			Format:   "Rewrite the text using professional language, proper grammar, and formal structure.",
			Tone:     "Use a formal, professional tone that conveys competence and authority.",
			Task:     "Please rewrite the provided text to sound more professional while maintaining its original meaning.",
		}
	case Simplify:
		return Record{
			Context:  "I need to simplify the following text while preserving all important information:\n\n" + quoted,
			Role:     "You are an expert in clear communication and simplifying complex information.",
			Audience: "The text should be understandable to a general audience with basic comprehension.",
			Format:   "Maintain the original meaning while using simpler language and structure.",
			Tone:     "Use a clear, straightforward tone that is easy to understand.",
			Task:     "Please simplify the provided text while preserving all important information.",
		}
	case Soften:
		return Record{
			Context:  "I need to rewrite the following text to sound more diplomatic and positive:\n\n" + quoted,
			Role:     "You are an expert in diplomatic and tactful communication.",
			Audience: "The message needs to maintain a positive relationship with the recipient.",
			Format:   "Rewrite using more diplomatic, positive language while preserving the core message.",
			Tone:     "Use a warm, empathetic, and positive tone.",
			Task:     "Please rewrite the provided text to sound more diplomatic and constructive while conveying the same information.",
		}
	case Analyze:
		return Record{
			Context:  "I need to analyze the following text:\n\n" + quoted,
			Role:     "You are an expert analyst with strong critical thinking and evaluation skills.",
			Audience: "The analysis should be appropriate for someone seeking objective insights.",
			Format:   "Provide a structured analysis with key points, themes, strengths, weaknesses, and recommendations.",
			Tone:     "Use an objective, analytical tone that is balanced and evidence-based.",
			Task:     "Please analyze the provided text, identifying its key elements, strengths, weaknesses, and implications.",
		}
	default:
		return Record{
			Context:  "I need help with the following: " + text,
			Role:     "You are an expert AI assistant with deep knowledge in relevant domains.",
			Audience: "Your response should be clear and helpful for someone seeking assistance.",
			Format:   "Provide a clear, well-structured response with appropriate formatting.",
			Tone:     "Use a helpful, informative tone.",
			Task:     "Please respond to my request effectively, providing comprehensive and useful information.",
		}
	}
}
