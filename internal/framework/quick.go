package framework

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sant0-9/promptme/internal/intent"
)

// Result is the outcome of the free-text quick path.
type Result struct {
	Framework string
	Prompt    string
	Questions []string
	Analysis  *intent.Analysis
}

// NeedsFollowUp reports whether the prompt is a list of clarifying questions
// rather than a finished prompt.
func (r Result) NeedsFollowUp() bool {
	return len(r.Questions) > 0
}

// Generate analyses query and either asks clarifying questions or renders
// the model's framework prompt.
func Generate(modelID, query string) Result {
	a := intent.Analyze(query)
	if a.NeedsFollowUp {
		return Result{
			Prompt:    ClarifyingPrompt(a.FollowUpQuestions),
			Questions: a.FollowUpQuestions,
			Analysis:  a,
		}
	}
	return render(modelID, query, a)
}

// GenerateWithContext renders the framework prompt for a query that has
// already been merged with follow-up answers. The intent guidance still
// comes from the original query.
func GenerateWithContext(modelID, original, merged string) Result {
	return render(modelID, merged, intent.Analyze(original))
}

func render(modelID, query string, original *intent.Analysis) Result {
	f := Select(modelID)
	prompt := f.Generate(query, intent.Analyze(query), capabilities(modelID))
	prompt = AddIntent(prompt, original)
	return Result{
		Framework: f.Name,
		Prompt:    AdjustForModel(prompt, modelID),
		Analysis:  original,
	}
}

// ClarifyingPrompt numbers the questions under a short instruction.
func ClarifyingPrompt(questions []string) string {
	var b strings.Builder
	b.WriteString("Before proceeding, please ask the following clarifying questions:")
	for i, q := range questions {
		fmt.Fprintf(&b, "\n%d. %s", i+1, q)
	}
	return b.String()
}

var (
	politeLead   = regexp.MustCompile(`(?i)^(can you |please |could you |would you )`)
	answerLead   = regexp.MustCompile(`(?i)^(the |it should be |i want |i need |make it )`)
	trailingMark = regexp.MustCompile(`[.!?]+$`)
)

// MergeQueryAndContext folds follow-up answers into the query as one
// sentence. Answers are taken in question order so the result is stable.
func MergeQueryAndContext(query string, answers map[string]string) string {
	merged := politeLead.ReplaceAllString(strings.TrimSpace(query), "")
	merged = trailingMark.ReplaceAllString(merged, "")

	questions := make([]string, 0, len(answers))
	for q := range answers {
		questions = append(questions, q)
	}
	sort.Strings(questions)

	var points []string
	for _, q := range questions {
		p := strings.TrimSpace(answerLead.ReplaceAllString(strings.TrimSpace(answers[q]), ""))
		if p != "" {
			points = append(points, p)
		}
	}

	if len(points) > 0 {
		context := points[0]
		if len(points) > 1 {
			context = strings.Join(points[:len(points)-1], ", ") + " and " + points[len(points)-1]
		}

		lower := strings.ToLower(merged)
		mentioned := false
		for _, p := range points {
			if strings.Contains(lower, strings.ToLower(p)) {
				mentioned = true
				break
			}
		}

		if !mentioned {
			if strings.Contains(lower, "write") || strings.Contains(lower, "create") || strings.Contains(lower, "generate") {
				merged += " that is " + context
			} else {
				merged += " with " + context
			}
		}
	}

	merged = strings.TrimSpace(merged) + "."
	r, size := utf8.DecodeRuneInString(merged)
	return string(unicode.ToUpper(r)) + merged[size:]
}
