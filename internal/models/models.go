package models

import "strings"

// Wrap is the text placed around a prompt for a particular model.
type Wrap struct {
	Prefix string
	Suffix string
}

// Empty reports whether the wrap adds nothing.
func (w Wrap) Empty() bool {
	return w.Prefix == "" && w.Suffix == ""
}

// Info describes a target chat model.
type Info struct {
	ID           string
	Name         string
	Family       string
	Capabilities []string
	Limitations  []string
	Strategies   []string
	Wrap         Wrap
}

var dialogue = Wrap{Prefix: "Human: ", Suffix: "\n\nAssistant: "}

var catalog = []Info{
	{
		ID:           "gpt-3.5-turbo",
		Name:         "GPT-3.5 Turbo",
		Family:       "ChatGPT",
		Capabilities: []string{"Fast response", "Cost-effective", "Good for general tasks"},
		Limitations:  []string{"Less nuanced understanding", "May hallucinate facts"},
		Strategies:   []string{"Be clear and concise", "Provide context"},
	},
	{
		ID:           "gpt-4",
		Name:         "GPT-4",
		Family:       "ChatGPT",
		Capabilities: []string{"More nuanced understanding", "Better reasoning", "Handles complex tasks"},
		Limitations:  []string{"More expensive", "Slower response times"},
		Strategies:   []string{"Provide detailed instructions", "Break down complex tasks"},
	},
	{
		ID:           "gpt-4-turbo",
		Name:         "GPT-4 Turbo",
		Family:       "ChatGPT",
		Capabilities: []string{"Fastest response", "Most cost-effective", "Good for general tasks"},
		Limitations:  []string{"Less nuanced understanding than GPT-4", "May hallucinate facts"},
		Strategies:   []string{"Be clear and concise", "Provide context"},
	},
	{
		ID:           "gpt-4o",
		Name:         "GPT-4o",
		Family:       "ChatGPT",
		Capabilities: []string{"Advanced reasoning", "Complex task handling", "Detailed analysis"},
		Limitations:  []string{"Higher cost", "May be slower"},
		Strategies:   []string{"Use structured prompts", "Provide detailed context"},
	},
	{
		ID:           "o1",
		Name:         "o1",
		Family:       "ChatGPT",
		Capabilities: []string{"Advanced reasoning", "Complex task handling", "Detailed analysis"},
		Limitations:  []string{"Higher cost", "May be slower"},
		Strategies:   []string{"Use structured prompts", "Provide detailed context"},
	},
	{
		ID:           "o1-mini",
		Name:         "o1-mini",
		Family:       "ChatGPT",
		Capabilities: []string{"Fast responses", "Efficient processing", "Good for simple tasks"},
		Limitations:  []string{"Less complex reasoning", "Smaller context window", "Simpler outputs"},
		Strategies:   []string{"Keep prompts concise", "Focus on single tasks", "Use direct instructions"},
	},
	{
		ID:           "o3-mini",
		Name:         "o3-mini",
		Family:       "ChatGPT",
		Capabilities: []string{"Fast responses", "Efficient processing", "Good for simple tasks"},
		Limitations:  []string{"Less complex reasoning", "Smaller context window", "Simpler outputs"},
		Strategies:   []string{"Keep prompts concise", "Focus on single tasks", "Use direct instructions"},
	},
	{
		ID:           "o3-mini-high",
		Name:         "o3-mini-high",
		Family:       "ChatGPT",
		Capabilities: []string{"Advanced reasoning", "Complex task handling", "Detailed analysis"},
		Limitations:  []string{"Higher cost", "May be slower"},
		Strategies:   []string{"Use structured prompts", "Provide detailed context"},
	},
	{
		ID:           "claude-3-opus",
		Name:         "Claude 3 Opus",
		Family:       "Claude",
		Capabilities: []string{"Most advanced reasoning", "Exceptional analysis", "Complex task handling", "200K context window"},
		Limitations:  []string{"Higher cost", "May be slower for simple tasks", "Limited availability"},
		Strategies:   []string{"Use detailed system prompts", "Leverage multi-step reasoning", "Include comprehensive context"},
		Wrap:         dialogue,
	},
	{
		ID:           "claude-3-sonnet",
		Name:         "Claude 3 Sonnet",
		Family:       "Claude",
		Capabilities: []string{"Strong reasoning", "Good balance of speed/quality", "Large context window", "Multimodal"},
		Limitations:  []string{"Less powerful than Opus", "Medium processing speed", "Cost considerations"},
		Strategies:   []string{"Balance detail with efficiency", "Use clear structured prompts", "Include visual context when relevant"},
		Wrap:         dialogue,
	},
	{
		ID:           "claude-3-haiku",
		Name:         "Claude 3 Haiku",
		Family:       "Claude",
		Capabilities: []string{"Fast responses", "Efficient processing", "Good for simple tasks", "Cost-effective"},
		Limitations:  []string{"Less complex reasoning", "Smaller context window", "Simpler outputs"},
		Strategies:   []string{"Keep prompts concise", "Focus on single tasks", "Use direct instructions"},
		Wrap:         dialogue,
	},
	{
		ID:           "pplx-7b-online",
		Name:         "Perplexity 7B Online",
		Family:       "Perplexity",
		Capabilities: []string{"Real-time information", "Web search integration", "Quick responses", "Current events"},
		Limitations:  []string{"Limited reasoning depth", "May need fact verification", "Context window constraints"},
		Strategies:   []string{"Include search requirements", "Ask for current information", "Request source citations"},
	},
	{
		ID:           "pplx-70b-online",
		Name:         "Perplexity 70B Online",
		Family:       "Perplexity",
		Capabilities: []string{"Advanced reasoning", "Strong analysis", "Web search", "Detailed responses"},
		Limitations:  []string{"Higher latency", "Cost considerations", "May be verbose"},
		Strategies:   []string{"Combine search and analysis", "Request structured outputs", "Ask for source validation"},
	},
	{
		ID:           "gemini-pro",
		Name:         "Gemini Pro",
		Family:       "Gemini",
		Capabilities: []string{"Strong reasoning", "Code generation", "Multimodal understanding", "Creative tasks"},
		Limitations:  []string{"Inconsistent performance", "Limited context window", "May need specific formatting"},
		Strategies:   []string{"Use clear formatting", "Provide example outputs", "Include visual context"},
	},
	{
		ID:           "gemini-ultra",
		Name:         "Gemini Ultra",
		Family:       "Gemini",
		Capabilities: []string{"Advanced reasoning", "Complex problem solving", "Multimodal excellence", "Detailed analysis"},
		Limitations:  []string{"Higher cost", "Limited availability", "May be slower"},
		Strategies:   []string{"Leverage multimodal inputs", "Use structured reasoning", "Include detailed context"},
	},
	{
		ID:           "copilot",
		Name:         "GitHub Copilot",
		Family:       "Copilot",
		Capabilities: []string{"Code expertise", "Technical documentation", "Development workflows", "Real-time suggestions"},
		Limitations:  []string{"Focused on development", "Limited general knowledge", "Code-centric responses"},
		Strategies:   []string{"Use technical context", "Include code examples", "Specify development environment"},
	},
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// All returns every known model in catalog order.
func All() []Info {
	return append([]Info{}, catalog...)
}

// Lookup finds a model by ID, ignoring case and surrounding whitespace.
func Lookup(id string) (Info, bool) {
	id = normalizeID(id)
	for _, m := range catalog {
		if m.ID == id {
			return m, true
		}
	}
	return Info{}, false
}

// Known reports whether id is in the catalog.
func Known(id string) bool {
	_, ok := Lookup(id)
	return ok
}

// WrapFor returns the wrap for a model. Unknown models get an empty wrap.
func WrapFor(id string) Wrap {
	m, _ := Lookup(id)
	return m.Wrap
}
