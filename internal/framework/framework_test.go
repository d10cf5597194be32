package framework

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const blogQuery = "Write a technical blog post that will explain our new API to developers"

func TestSelect(t *testing.T) {
	tests := []struct {
		model string
		want  string
	}{
		{"gpt-4o", "RISEN"},
		{"gemini-ultra", "RISEN"},
		{"claude-3-haiku", "CRAFT"},
		{"copilot", "CRAFT"},
		{"gpt-3.5-turbo", "RTF"},
		{"pplx-70b-online", "RTF"},
		{"some-new-model", "RTF"},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			assert.Equal(t, tt.want, Select(tt.model).Name)
		})
	}
}

func TestGenerateAsksFollowUp(t *testing.T) {
	res := Generate("gpt-4o", "fix this")

	require.True(t, res.NeedsFollowUp())
	assert.Len(t, res.Questions, 3)
	assert.Empty(t, res.Framework)
	assert.True(t, strings.HasPrefix(res.Prompt, "Before proceeding, please ask the following clarifying questions:\n1. "))
	assert.Contains(t, res.Prompt, "\n3. What tone would you like?")
}

func TestGenerateRISEN(t *testing.T) {
	res := Generate("gpt-4o", blogQuery)

	require.False(t, res.NeedsFollowUp())
	assert.Equal(t, "RISEN", res.Framework)
	assert.True(t, strings.HasPrefix(res.Prompt, "Role: I want you to act as an expert AI assistant with deep knowledge in software development."))
	assert.Contains(t, res.Prompt, "Input: "+blogQuery)
	assert.Contains(t, res.Prompt, "   - Target audience: technical professionals")
	assert.Contains(t, res.Prompt, "- Advanced reasoning")
	assert.True(t, strings.HasSuffix(res.Prompt, "4. Target audience consideration"))
}

func TestGenerateCRAFT(t *testing.T) {
	res := Generate("claude-3-opus", blogQuery)

	assert.Equal(t, "CRAFT", res.Framework)
	assert.Contains(t, res.Prompt, "Audience: technical professionals\nTone: technical yet accessible")
	assert.Contains(t, res.Prompt, "Format: blog post\nPurpose: explanation")
	assert.Contains(t, res.Prompt, "- 200K context window")
}

func TestGenerateModelAdjustments(t *testing.T) {
	gemini := Generate("gemini-pro", blogQuery)
	assert.True(t, strings.HasPrefix(gemini.Prompt, "You are an expert AI assistant. Role:"))

	copilot := Generate("copilot", blogQuery)
	for _, line := range strings.Split(copilot.Prompt, "\n") {
		assert.True(t, strings.HasPrefix(line, "//"), line)
	}
}

func TestGenerateUnknownModel(t *testing.T) {
	res := Generate("llama-3", blogQuery)

	assert.Equal(t, "RTF", res.Framework)
	assert.NotContains(t, res.Prompt, "capabilities")
	assert.Contains(t, res.Prompt, "- Is tailored for technical professionals")
	assert.Contains(t, res.Prompt, "- Follows blog post format")
}

func TestGenerateWithContext(t *testing.T) {
	res := GenerateWithContext("claude-3-opus", "fix this", "Fix this bug in my Go code with examples.")

	assert.Equal(t, "CRAFT", res.Framework)
	assert.Equal(t, "fix this", res.Analysis.Query)
	assert.Contains(t, res.Prompt, "Task: Fix this bug in my Go code with examples.")
	assert.NotContains(t, res.Prompt, "Guidelines")
	assert.False(t, res.NeedsFollowUp())
}

func TestMergeQueryAndContext(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		answers map[string]string
		want    string
	}{
		{
			name:    "creation verb",
			query:   "Can you write a poem?",
			answers: map[string]string{"Tone?": "It should be funny"},
			want:    "Write a poem that is funny.",
		},
		{
			name:    "several answers in question order",
			query:   "explain recursion",
			answers: map[string]string{"b": "examples", "a": "the beginners"},
			want:    "Explain recursion with beginners and examples.",
		},
		{
			name:    "three answers",
			query:   "plan a trip",
			answers: map[string]string{"1": "Lisbon", "2": "May", "3": "two people"},
			want:    "Plan a trip with Lisbon, May and two people.",
		},
		{
			name:    "already mentioned",
			query:   "Write a funny poem",
			answers: map[string]string{"Tone?": "funny"},
			want:    "Write a funny poem.",
		},
		{
			name:  "no answers",
			query: "please summarize this!!",
			want:  "Summarize this.",
		},
		{
			name:    "blank answers ignored",
			query:   "draft a memo",
			answers: map[string]string{"x": "  "},
			want:    "Draft a memo.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MergeQueryAndContext(tt.query, tt.answers))
		})
	}
}
