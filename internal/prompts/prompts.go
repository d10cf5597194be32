package prompts

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
)

//go:embed optimize.md
var Optimize string

//go:embed enhance.md
var Enhance string

//go:embed enhance_input.md
var EnhanceInput string

//go:embed refine_query.md
var RefineQuery string

//go:embed library_generate.md
var LibraryGenerate string

// BuildOptimizePrompt returns the system prompt used to polish a CRAFT
// prompt for targetModel.
func BuildOptimizePrompt(targetModel string) string {
	return fill(Optimize, "{{model}}", targetModel)
}

// BuildEnhancePrompt returns the system prompt used to enhance a free-form
// prompt written for template.
func BuildEnhancePrompt(targetModel, template string) string {
	return fill(Enhance, "{{model}}", targetModel, "{{template}}", template)
}

// BuildEnhanceInputPrompt returns the system prompt for enhancing raw user
// input before it is placed in a CRAFT record.
func BuildEnhanceInputPrompt() string {
	return strings.TrimSpace(EnhanceInput)
}

// BuildRefineQueryPrompt returns the system prompt for merging a query
// with its follow-up answers.
func BuildRefineQueryPrompt() string {
	return strings.TrimSpace(RefineQuery)
}

// BuildLibraryGeneratePrompt returns the instruction for authoring a new
// library template from a description.
func BuildLibraryGeneratePrompt(description string) string {
	return fill(LibraryGenerate, "{{description}}", description)
}

// EnhanceUserMessage quotes the prompt being enhanced.
func EnhanceUserMessage(prompt string) string {
	return fmt.Sprintf("Original prompt: \"%s\"", prompt)
}

// EnhanceInputUserMessage quotes the raw input being enhanced.
func EnhanceInputUserMessage(input string) string {
	return fmt.Sprintf("Enhance this prompt for better AI response: \"%s\"", input)
}

// RefineQueryUserMessage lists the follow-up answers under the original
// query. Questions are sorted so the message is stable.
func RefineQueryUserMessage(query string, answers map[string]string) string {
	questions := make([]string, 0, len(answers))
	for q := range answers {
		questions = append(questions, q)
	}
	sort.Strings(questions)

	var sb strings.Builder
	sb.WriteString("Original Query: ")
	sb.WriteString(query)
	sb.WriteString("\n\nAdditional Context:\n")
	for _, q := range questions {
		sb.WriteString(fmt.Sprintf("%s: %s\n", q, answers[q]))
	}
	sb.WriteString("\nPlease create an enhanced, well-written query combining all this information.")
	return sb.String()
}

func fill(tmpl string, oldnew ...string) string {
	return strings.TrimSpace(strings.NewReplacer(oldnew...).Replace(tmpl))
}
