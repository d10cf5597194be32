package intent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		wantIntent    Kind
		wantTopic     Topic
		wantFormat    string
		wantAudience  string
		wantTone      string
		wantPurpose   string
		wantDomain    string
		wantFollowUp  bool
		wantQuestions int
	}{
		{
			name:          "too vague",
			query:         "fix this",
			wantIntent:    KindOther,
			wantTopic:     TopicGeneral,
			wantFollowUp:  true,
			wantQuestions: 3,
		},
		{
			name:          "question",
			query:         "How do I reverse a linked list?",
			wantIntent:    KindQuestion,
			wantTopic:     TopicGeneral,
			wantFollowUp:  true,
			wantQuestions: 3,
		},
		{
			name:          "cover letter for a law firm",
			query:         "Write a cover letter for a law firm",
			wantIntent:    KindCreative,
			wantTopic:     TopicCreative,
			wantFormat:    "cover letter",
			wantAudience:  "law firm hiring team",
			wantTone:      "professional and formal",
			wantDomain:    "legal",
			wantFollowUp:  true,
			wantQuestions: 1,
		},
		{
			name:         "complete technical blog request",
			query:        "Write a technical blog post that will explain our new API to developers",
			wantIntent:   KindCreative,
			wantTopic:    TopicTechnical,
			wantFormat:   "blog post",
			wantAudience: "technical professionals",
			wantTone:     "technical yet accessible",
			wantPurpose:  "explanation",
			wantDomain:   "software development",
		},
		{
			name:          "report analysis",
			query:         "Analyze our quarterly sales report",
			wantIntent:    KindAnalysis,
			wantTopic:     TopicBusiness,
			wantFormat:    "report",
			wantDomain:    "business",
			wantFollowUp:  true,
			wantQuestions: 2,
		},
		{
			name:          "code",
			query:         "Debug the function that crashes",
			wantIntent:    KindCode,
			wantTopic:     TopicTechnical,
			wantDomain:    "software development",
			wantFollowUp:  true,
			wantQuestions: 2,
		},
		{
			name:        "explanation is not an intent",
			query:       "Explain how photosynthesis works",
			wantIntent:  KindOther,
			wantTopic:   TopicGeneral,
			wantPurpose: "explanation",
		},
		{
			name:        "explain request",
			query:       "explain quantum computing to me",
			wantIntent:  KindOther,
			wantTopic:   TopicGeneral,
			wantPurpose: "explanation",
		},
		{
			name:          "list request",
			query:         "list the planets",
			wantIntent:    KindOther,
			wantTopic:     TopicGeneral,
			wantFollowUp:  true,
			wantQuestions: 3,
		},
		{
			name:          "british spelling is not an analysis verb",
			query:         "Analyse the results",
			wantIntent:    KindOther,
			wantTopic:     TopicGeneral,
			wantFollowUp:  true,
			wantQuestions: 3,
		},
		{
			name:          "topic keyword inside a word",
			query:         "Find the capital of France",
			wantIntent:    KindOther,
			wantTopic:     TopicGeneral,
			wantFollowUp:  true,
			wantQuestions: 3,
		},
		{
			name:          "prefix without word boundary",
			query:         "however you want",
			wantIntent:    KindOther,
			wantTopic:     TopicGeneral,
			wantFollowUp:  true,
			wantQuestions: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Analyze(tt.query)

			assert.Equal(t, tt.query, got.Query)
			assert.Equal(t, tt.wantIntent, got.Intent)
			assert.Equal(t, tt.wantTopic, got.Topic)
			assert.Equal(t, tt.wantFormat, got.Format)
			assert.Equal(t, tt.wantAudience, got.Audience)
			assert.Equal(t, tt.wantTone, got.Tone)
			assert.Equal(t, tt.wantPurpose, got.Purpose)
			assert.Equal(t, tt.wantDomain, got.Domain)
			assert.Equal(t, tt.wantFollowUp, got.NeedsFollowUp)
			assert.Len(t, got.FollowUpQuestions, tt.wantQuestions)
		})
	}
}

func TestAnalyzeVagueQuery(t *testing.T) {
	got := Analyze("fix this")

	assert.Empty(t, got.Keywords)
	assert.Equal(t, 1, got.Complexity)
	assert.True(t, got.NeedsFollowUp)
	assert.Equal(t, []string{
		"What is the main goal or purpose?",
		"Who is the intended audience?",
		"What tone would you like? (e.g., 'formal', 'casual', 'technical')",
	}, got.FollowUpQuestions)
}

func TestAnalyzeCoverLetterAsksForRole(t *testing.T) {
	got := Analyze("Write a cover letter for a law firm")
	require.Len(t, got.FollowUpQuestions, 1)
	assert.Contains(t, got.FollowUpQuestions[0], "role")
	assert.Equal(t, []string{"purpose"}, got.Missing())
}

func TestKeywords(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"fix this", []string{}},
		{"How do I reverse a linked list?", []string{"reverse", "linked", "list"}},
		{"Please summarize THESE quarterly results, thanks!", []string{"summarize", "quarterly", "results", "thanks"}},
		{"", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, Analyze(tt.query).Keywords)
		})
	}
}

func TestComplexity(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"empty", "", 1},
		{"short", "fix this", 1},
		{"intensity words", "Give a detailed and comprehensive overview", 3},
		{"eleven words", strings.Repeat("word ", 11), 2},
		{"clamped", strings.Repeat("thorough ", 60), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Analyze(tt.query).Complexity)
		})
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	queries := []string{
		"fix this",
		"Write a technical blog post that will explain our new API to developers",
		"Compare the market strategy of two companies in a detailed report",
	}
	for _, q := range queries {
		assert.Equal(t, Analyze(q), Analyze(q))
	}
}

func TestRuleGroupsAreNamed(t *testing.T) {
	for _, g := range groups {
		require.NotEmpty(t, g.name)
		for _, r := range g.rules {
			assert.NotEmpty(t, r.name, g.name)
			assert.NotNil(t, r.when, r.name)
			assert.NotNil(t, r.apply, r.name)
		}
	}
}
