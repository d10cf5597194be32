package intent

// Kind is what the user is asking for, judged from the first word.
type Kind string

const (
	KindQuestion Kind = "question"
	KindCreative Kind = "creative"
	KindAnalysis Kind = "analysis"
	KindCode     Kind = "code"
	KindOther    Kind = "other"
)

// Topic is the broad subject area of a query.
type Topic string

const (
	TopicTechnical Topic = "technical"
	TopicCreative  Topic = "creative"
	TopicBusiness  Topic = "business"
	TopicAcademic  Topic = "academic"
	TopicGeneral   Topic = "general"
)

// Analysis holds everything the heuristics could infer from a free-text query.
// Optional fields stay empty when no rule matched.
type Analysis struct {
	Query      string   `yaml:"query" json:"query"`
	Intent     Kind     `yaml:"intent" json:"intent"`
	Topic      Topic    `yaml:"topic" json:"topic"`
	Keywords   []string `yaml:"keywords" json:"keywords"`
	Complexity int      `yaml:"complexity" json:"complexity"`

	Audience string `yaml:"audience,omitempty" json:"audience,omitempty"`
	Purpose  string `yaml:"purpose,omitempty" json:"purpose,omitempty"`
	Domain   string `yaml:"domain,omitempty" json:"domain,omitempty"`
	Format   string `yaml:"format,omitempty" json:"format,omitempty"`
	Tone     string `yaml:"tone,omitempty" json:"tone,omitempty"`

	NeedsFollowUp     bool     `yaml:"needs_follow_up" json:"needs_follow_up"`
	FollowUpQuestions []string `yaml:"follow_up_questions,omitempty" json:"follow_up_questions,omitempty"`
}

// New creates an empty analysis for a query with every classification at
// its default.
func New(query string) *Analysis {
	return &Analysis{
		Query:      query,
		Intent:     KindOther,
		Topic:      TopicGeneral,
		Keywords:   []string{},
		Complexity: 1,
	}
}
