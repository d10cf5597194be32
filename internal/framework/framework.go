package framework

import (
	"fmt"
	"strings"

	"github.com/sant0-9/promptme/internal/intent"
	"github.com/sant0-9/promptme/internal/models"
)

// Framework turns a query into a structured prompt.
type Framework struct {
	Name     string
	generate func(query string, a *intent.Analysis, caps []string) string
}

// Generate renders the framework prompt for query.
func (f Framework) Generate(query string, a *intent.Analysis, caps []string) string {
	return f.generate(query, a, caps)
}

func bullets(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}

func opt(prefix, v string) string {
	if v == "" {
		return ""
	}
	return prefix + v
}

var RISEN = Framework{
	Name: "RISEN",
	generate: func(query string, a *intent.Analysis, caps []string) string {
		var b strings.Builder
		fmt.Fprintf(&b, "Role: I want you to act as an expert AI assistant%s.\n\n",
			opt(" with deep knowledge in ", a.Domain))
		fmt.Fprintf(&b, "Input: %s\n\n", query)
		b.WriteString("Steps:\n1. Analyze the query thoroughly\n2. Consider the context and requirements")
		b.WriteString(opt("\n   - Target audience: ", a.Audience))
		b.WriteString(opt("\n   - Tone: ", a.Tone))
		b.WriteString(opt("\n   - Format: ", a.Format))
		b.WriteString(opt("\n   - Purpose: ", a.Purpose))
		b.WriteString("\n3. Apply domain-specific knowledge\n4. Generate a comprehensive response\n5. Review and refine the output\n\n")
		if len(caps) > 0 {
			fmt.Fprintf(&b, "Notice: Consider these key points from your capabilities:\n%s\n\n", bullets(caps))
		}
		b.WriteString("Please provide your response based on this framework.")
		return b.String()
	},
}

var CRAFT = Framework{
	Name: "CRAFT",
	generate: func(query string, a *intent.Analysis, caps []string) string {
		var b strings.Builder
		b.WriteString("Context: You are an AI assistant")
		b.WriteString(opt(" specializing in ", a.Domain))
		if len(caps) > 0 {
			fmt.Fprintf(&b, " with the following capabilities:\n%s", bullets(caps))
		} else {
			b.WriteString(".")
		}
		fmt.Fprintf(&b, "\n\nRole: Expert AI assistant%s\n\n", opt(" in ", a.Domain))
		fmt.Fprintf(&b, "Audience: %s", either(a.Audience, "User seeking assistance with their query"))
		b.WriteString(opt("\nTone: ", a.Tone))
		fmt.Fprintf(&b, "\n\nFormat: %s", either(a.Format, "Clear, structured response with appropriate formatting"))
		b.WriteString(opt("\nPurpose: ", a.Purpose))
		fmt.Fprintf(&b, "\n\nTask: %s\n\nPlease provide your response based on these parameters.", query)
		return b.String()
	},
}

var RTF = Framework{
	Name: "RTF",
	generate: func(query string, a *intent.Analysis, caps []string) string {
		var b strings.Builder
		fmt.Fprintf(&b, "Role: Expert AI assistant%s", opt(" in ", a.Domain))
		if len(caps) > 0 {
			fmt.Fprintf(&b, " with these capabilities:\n%s", bullets(caps))
		}
		fmt.Fprintf(&b, "\n\nTask: %s\n\n", query)
		b.WriteString("Format: Provide a clear, well-structured response that:\n- Addresses the query directly")
		b.WriteString(opt("\n- Is tailored for ", a.Audience))
		if a.Tone != "" {
			fmt.Fprintf(&b, "\n- Uses a %s tone", a.Tone)
		}
		if a.Format != "" {
			fmt.Fprintf(&b, "\n- Follows %s format", a.Format)
		}
		b.WriteString(opt("\n- Achieves the purpose of ", a.Purpose))
		b.WriteString("\n- Uses appropriate formatting\n- Follows best practices for this type of task")
		return b.String()
	},
}

func either(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// Select picks the framework suited to a model. Larger reasoning models get
// RISEN, Claude and Copilot get CRAFT and everything else, including
// unknown models, gets RTF.
func Select(modelID string) Framework {
	switch strings.ToLower(strings.TrimSpace(modelID)) {
	case "gpt-4", "gpt-4-turbo", "gpt-4o", "o1", "gemini-pro", "gemini-ultra":
		return RISEN
	case "claude-3-opus", "claude-3-sonnet", "claude-3-haiku", "copilot":
		return CRAFT
	default:
		return RTF
	}
}

var intentAddenda = map[intent.Kind]string{
	intent.KindQuestion: "Approach this question with:\n1. Clear, direct answer\n2. Supporting explanation\n3. Relevant examples\n4. Additional context if needed",
	intent.KindCreative: "Creative Guidelines:\n1. Original and engaging content\n2. Appropriate tone and style\n3. Clear structure and flow\n4. Target audience consideration",
	intent.KindAnalysis: "Analysis Framework:\n1. Systematic examination\n2. Key factors identification\n3. Evidence-based evaluation\n4. Clear conclusions",
	intent.KindCode:     "Code Development:\n1. Clear requirements understanding\n2. Efficient implementation\n3. Best practices adherence\n4. Documentation and comments",
}

// AddIntent appends the guidance block for the analysed intent, if any.
func AddIntent(prompt string, a *intent.Analysis) string {
	addendum, ok := intentAddenda[a.Intent]
	if !ok {
		return prompt
	}
	return prompt + "\n\n" + addendum
}

// AdjustForModel applies model conventions that go beyond the plain
// prefix/suffix wrap: Gemini gets an expert preamble and Copilot gets
// every line commented out.
func AdjustForModel(prompt, modelID string) string {
	switch strings.ToLower(strings.TrimSpace(modelID)) {
	case "gemini-pro", "gemini-ultra":
		return "You are an expert AI assistant. " + prompt
	case "copilot":
		return "// " + strings.ReplaceAll(prompt, "\n", "\n// ")
	default:
		return prompt
	}
}

func capabilities(modelID string) []string {
	m, ok := models.Lookup(modelID)
	if !ok {
		return nil
	}
	return m.Capabilities
}
