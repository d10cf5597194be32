package craft

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProseLiftsQuotedText(t *testing.T) {
	r, err := Build("Simplify this text", Answers{QText: "hello   world"})
	require.NoError(t, err)

	out := Prose(r)

	assert.True(t, strings.HasPrefix(out, "I need to simplify this text below:\n\nHere is the text to work with:\n\nhello   world\n\n"))
	assert.NotContains(t, out, `"""`)
	assert.NotContains(t, out, "##")
	assert.True(t, strings.HasSuffix(out, "Simplify the provided text."))
}

func TestProseKeepsQuotedTextVerbatim(t *testing.T) {
	text := "  indented line\nsecond   line \n\n\nafter blanks .."
	out := Prose(Wrap(text, "Analyze this text"))

	assert.Contains(t, out, "Here is the text to work with:\n\n"+strings.TrimSpace(text)+"\n\n")
	assert.True(t, strings.HasPrefix(out, "I need to analyze the following text:\n\n"))
	assert.True(t, strings.HasSuffix(out, "implications."))

	r := Record{Context: "Fix this:\n\n\"\"\"\n  a  b\n\"\"\""}
	assert.Equal(t, "Fix this:\n\nHere is the text to work with:\n\n  a  b", Prose(r))
}

func TestProseSplitsSpecificPoints(t *testing.T) {
	r, err := Build("Draft an email", Answers{
		QEmailPurpose:   "the launch",
		QSpecificPoints: "budget and timeline",
	})
	require.NoError(t, err)

	out := Prose(r)

	assert.Contains(t, out, "Write a complete email about the launch.\n\nInclude these specific points:\nbudget and timeline")
	assert.True(t, strings.HasSuffix(out, "timeline."))
}

func TestProseSplitsGuidelines(t *testing.T) {
	r, err := Build("Make this sound more professional", Answers{
		QText:            "hey",
		QStyleGuidelines: "no slang",
	})
	require.NoError(t, err)

	assert.Contains(t, Prose(r), "\n\nFollow these guidelines:\nno slang.")
}

func TestProseTerminalPunctuation(t *testing.T) {
	tests := []struct {
		name string
		r    Record
		want string
	}{
		{
			name: "adds period",
			r:    Record{Role: "You are terse", Task: "Answer briefly"},
			want: "You are terse Answer briefly.",
		},
		{
			name: "keeps question mark",
			r:    Record{Task: "Can you help?"},
			want: "Can you help?",
		},
		{
			name: "collapses dots",
			r:    Record{Role: "Be brief .", Task: "Go.."},
			want: "Be brief. Go.",
		},
		{
			name: "empty record",
			r:    Record{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Prose(tt.r))
		})
	}
}

func TestWrap(t *testing.T) {
	r := Wrap("  my draft  ", "simplify")
	assert.Contains(t, r.Context, `"""my draft"""`)
	assert.Equal(t, "Please simplify the provided text while preserving all important information.", r.Task)
	assert.True(t, r.Complete())

	fallback := Wrap("plan a party", "Draft an email")
	assert.Equal(t, "I need help with the following: plan a party", fallback.Context)
	assert.True(t, fallback.Complete())

	unknown := Wrap("x", "no such template")
	assert.Equal(t, fallback.Role, unknown.Role)
}
