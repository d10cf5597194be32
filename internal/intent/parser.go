package intent

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

// query is the normalised input every rule looks at.
type query struct {
	raw   string
	lower string
}

func (q query) has(substrings ...string) bool {
	for _, s := range substrings {
		if strings.Contains(q.lower, s) {
			return true
		}
	}
	return false
}

func (q query) matches(re *regexp.Regexp) bool {
	return re.MatchString(q.lower)
}

// rule pairs a predicate with the effect applied when it holds.
type rule struct {
	name  string
	when  func(q query) bool
	apply func(a *Analysis)
}

// group is an ordered list of rules. When firstMatch is set evaluation stops
// at the first rule that holds.
type group struct {
	name       string
	firstMatch bool
	rules      []rule
}

func re(pattern string) *regexp.Regexp {
	return regexp.MustCompile(pattern)
}

func matching(r *regexp.Regexp) func(q query) bool {
	return func(q query) bool { return q.matches(r) }
}

func containing(all ...string) func(q query) bool {
	return func(q query) bool {
		for _, s := range all {
			if !strings.Contains(q.lower, s) {
				return false
			}
		}
		return true
	}
}

func setIntent(k Kind) func(a *Analysis) {
	return func(a *Analysis) { a.Intent = k }
}

func setUnset(field func(a *Analysis) *string, v string) func(a *Analysis) {
	return func(a *Analysis) {
		if p := field(a); *p == "" {
			*p = v
		}
	}
}

func audience(a *Analysis) *string { return &a.Audience }
func tone(a *Analysis) *string     { return &a.Tone }
func domain(a *Analysis) *string   { return &a.Domain }
func format(a *Analysis) *string   { return &a.Format }
func purpose(a *Analysis) *string  { return &a.Purpose }

func all(effects ...func(a *Analysis)) func(a *Analysis) {
	return func(a *Analysis) {
		for _, e := range effects {
			e(a)
		}
	}
}

func setTopic(t Topic, d string) func(a *Analysis) {
	return func(a *Analysis) {
		a.Topic = t
		if a.Domain == "" {
			a.Domain = d
		}
	}
}

// groups run in this order. Extraction effects never overwrite a field an
// earlier rule already set, so order decides precedence.
var groups = []group{
	{
		name:       "intent",
		firstMatch: true,
		rules: []rule{
			{"question", matching(re(`^(how|what|why|when|where|who|can|could|would|will)\b`)), setIntent(KindQuestion)},
			{"creative", matching(re(`^(write|create|generate|make|design)\b`)), setIntent(KindCreative)},
			{"analysis", matching(re(`^(analyze|examine|evaluate|assess|compare)\b`)), setIntent(KindAnalysis)},
			{"code", matching(re(`^(code|program|implement|debug|function)\b`)), setIntent(KindCode)},
		},
	},
	{
		name:       "audience",
		firstMatch: true,
		rules: []rule{
			{"cover letter for a law firm", containing("cover letter", "law firm"), all(
				setUnset(audience, "law firm hiring team"),
				setUnset(tone, "professional and formal"),
				setUnset(domain, "legal"),
			)},
			{"cover letter for a tech company", containing("cover letter", "tech company"), all(
				setUnset(audience, "tech company recruiters"),
				setUnset(tone, "professional with technical focus"),
				setUnset(domain, "technology"),
			)},
			{"cover letter", containing("cover letter"), all(
				setUnset(audience, "hiring managers"),
				setUnset(tone, "professional"),
			)},
			{"technical blog", containing("blog", "technical"), all(
				setUnset(audience, "technical professionals"),
				setUnset(tone, "technical yet accessible"),
			)},
			{"blog", containing("blog"), all(
				setUnset(audience, "general readers"),
				setUnset(tone, "conversational"),
			)},
		},
	},
	{
		name: "format",
		rules: []rule{
			{"blog post", containing("blog post"), setUnset(format, "blog post")},
			{"cover letter", containing("cover letter"), setUnset(format, "cover letter")},
			{"email", containing("email"), setUnset(format, "email")},
			{"report", containing("report"), setUnset(format, "report")},
			{"written message", matching(re(`\b(write|draft|compose|create)\b.*\b(email|message|letter)\b`)), setUnset(format, "email")},
			{"written post", matching(re(`\b(write|create|draft)\b.*\b(blog|article|post)\b`)), setUnset(format, "blog post")},
			{"written report", matching(re(`\b(write|create|draft)\b.*\b(report|summary|analysis)\b`)), setUnset(format, "report")},
		},
	},
	{
		name:       "purpose",
		firstMatch: true,
		rules: []rule{
			{"explanation", containing("explain"), setUnset(purpose, "explanation")},
			{"persuasion", func(q query) bool { return q.has("convince", "persuade") }, setUnset(purpose, "persuasion")},
			{"comparison", containing("compare"), setUnset(purpose, "comparison")},
			{"summary", containing("summarize"), setUnset(purpose, "summary")},
		},
	},
	{
		name:       "topic",
		firstMatch: true,
		rules: []rule{
			{"technical", matching(re(`\b(code|program|api|function|bug|error|database|algorithm)`)), setTopic(TopicTechnical, "software development")},
			{"creative", matching(re(`\b(story|article|blog|essay|content|write|creative)`)), setTopic(TopicCreative, "content creation")},
			{"business", matching(re(`\b(business|market|strategy|customer|profit|sales)`)), setTopic(TopicBusiness, "business")},
			{"academic", matching(re(`\b(research|study|theory|analysis|academic|paper)`)), setTopic(TopicAcademic, "academia")},
		},
	},
}

var intensity = re(`(?i)\b(complex|detailed|comprehensive|thorough)\b`)

var stopwords = map[string]bool{
	"this": true, "that": true, "these": true, "those": true, "with": true,
	"from": true, "into": true, "onto": true, "about": true, "have": true,
	"been": true, "were": true, "what": true, "when": true, "where": true,
	"which": true, "while": true, "your": true, "yours": true, "they": true,
	"them": true, "their": true, "there": true, "then": true, "than": true,
	"will": true, "would": true, "could": true, "should": true, "please": true,
	"some": true, "also": true, "just": true, "very": true,
}

// Analyze classifies a free-text query. It never fails and is deterministic:
// the same query always yields the same analysis.
func Analyze(text string) *Analysis {
	a := New(text)
	q := query{raw: text, lower: strings.ToLower(strings.TrimSpace(text))}

	for _, g := range groups {
		for _, r := range g.rules {
			if !r.when(q) {
				continue
			}
			r.apply(a)
			if g.firstMatch {
				break
			}
		}
	}

	a.Keywords = keywords(q.lower)
	a.Complexity = complexity(q.raw)
	a.NeedsFollowUp = needsFollowUp(a)
	if a.NeedsFollowUp {
		a.FollowUpQuestions = followUpQuestions(a)
	}

	return a
}

// keywords returns the words longer than three characters that are not
// stopwords, in query order.
func keywords(lower string) []string {
	out := []string{}
	for _, w := range strings.Fields(lower) {
		w = strings.Trim(w, ".,!?;:\"'()[]{}")
		if utf8.RuneCountInString(w) <= 3 || stopwords[w] {
			continue
		}
		out = append(out, w)
	}
	return out
}

// complexity is ceil(words/10) plus one per intensity word, clamped to 1..5.
func complexity(raw string) int {
	words := len(strings.Fields(raw))
	score := int(math.Ceil(float64(words)/10)) + len(intensity.FindAllString(raw, -1))
	return min(5, max(1, score))
}

// required lists the fields a format needs before a prompt can be written.
var required = map[string][]string{
	"email":        {"audience", "purpose", "tone"},
	"cover letter": {"audience", "purpose", "tone"},
	"blog post":    {"audience", "tone", "purpose"},
	"report":       {"audience", "purpose", "domain"},
}

func (a *Analysis) field(name string) string {
	switch name {
	case "audience":
		return a.Audience
	case "purpose":
		return a.Purpose
	case "tone":
		return a.Tone
	case "domain":
		return a.Domain
	case "format":
		return a.Format
	}
	return ""
}

// Missing returns the required fields of the detected format that are still
// empty, in check order.
func (a *Analysis) Missing() []string {
	var out []string
	for _, f := range required[a.Format] {
		if a.field(f) == "" {
			out = append(out, f)
		}
	}
	return out
}

func needsFollowUp(a *Analysis) bool {
	if _, ok := required[a.Format]; ok {
		return len(a.Missing()) > 0
	}

	if len(a.Keywords) < 5 && a.Format == "" && a.Purpose == "" {
		return true
	}
	if a.Audience != "" && a.Tone != "" && a.Format != "" && a.Purpose != "" {
		return false
	}

	switch {
	case a.Intent == KindCreative && (a.Audience == "" || a.Tone == ""):
		return true
	case a.Intent == KindAnalysis && (a.Purpose == "" || a.Domain == ""):
		return true
	case a.Topic == TopicTechnical && a.Domain == "":
		return true
	}
	return false
}
