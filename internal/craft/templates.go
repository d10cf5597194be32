package craft

import "strings"

// Template is one of the built-in prompt templates.
type Template int

const (
	Professional Template = iota
	Simplify
	Soften
	Analyze
	Email
	Memo
	Letter
	Workout
	Investment
	Other

	numTemplates
)

// Follow-up questions shared by several templates.
const (
	QText             = "Provide the text"
	QPrompt           = "Enter your prompt"
	QIndustry         = "What industry or context is this for?"
	QStyleGuidelines  = "Are there specific style guidelines to follow?"
	QIntendedAudience = "Who is the intended audience?"
	QAnalysisPurpose  = "What is the primary purpose of this analysis?"
	QReadingLevel     = "What is the target audience's reading level?"
	QTechnicalTerms   = "Are there any technical terms that need special attention?"
	QSimplifyGoal     = "What is the primary goal of simplification?"
	QEmailRecipient   = "Who is the recipient of the email?"
	QEmailPurpose     = "What is the primary purpose of the email?"
	QEmailTone        = "What tone would you like the email to have?"
	QSpecificPoints   = "Are there any specific points you want to include?"
	QMemoRecipient    = "Who is the memo addressed to?"
	QMemoTopic        = "What is the main topic of the memo?"
	QMemoInfo         = "What key information needs to be communicated?"
	QMemoTone         = "What is the desired tone (formal, casual, urgent)?"
	QLetterKind       = "Is this a personal or professional letter?"
	QLetterRecipient  = "Who is the recipient?"
	QLetterPurpose    = "What is the primary purpose of the letter?"
	QLetterTone       = "What tone would you like to convey?"
	QFitnessGoals     = "What are your fitness goals?"
	QLimitations      = "Do you have any physical limitations?"
	QDaysPerWeek      = "How many days per week can you commit?"
	QEquipment        = "What equipment do you have access to?"
	QAccountType      = "What type of investment account? (retirement, brokerage, etc.)"
	QGuidelines       = "Are there specific guidelines you want me to follow?"
	QRiskTolerance    = "Is your risk tolerance low, medium, or high?"
)

type definition struct {
	key       string
	name      string
	primary   string
	questions []string
	build     func(name string, a Answers) Record
}

var definitions = [numTemplates]definition{
	Professional: {
		key:       "professional",
		name:      "Make this sound more professional",
		primary:   QText,
		questions: []string{QText, QIndustry, QStyleGuidelines, QIntendedAudience},
		build:     professional,
	},
	Simplify: {
		key:       "simplify",
		name:      "Simplify this text",
		primary:   QText,
		questions: []string{QText, QReadingLevel, QTechnicalTerms, QSimplifyGoal},
		build:     simplify,
	},
	Soften: {
		key:       "soften",
		name:      "Soften this language (make it sound nicer)",
		primary:   QText,
		questions: []string{QText},
		build:     soften,
	},
	Analyze: {
		key:       "analyze",
		name:      "Analyze this text",
		primary:   QText,
		questions: []string{QText, QIndustry, QAnalysisPurpose},
		build:     analyze,
	},
	Email: {
		key:       "email",
		name:      "Draft an email",
		questions: []string{QEmailRecipient, QEmailPurpose, QEmailTone, QSpecificPoints},
		build:     email,
	},
	Memo: {
		key:       "memo",
		name:      "Draft a memo",
		questions: []string{QMemoRecipient, QMemoTopic, QSpecificPoints, QMemoInfo, QMemoTone},
		build:     memo,
	},
	Letter: {
		key:       "letter",
		name:      "Write a letter",
		questions: []string{QLetterKind, QLetterRecipient, QLetterPurpose, QSpecificPoints, QLetterTone},
		build:     letter,
	},
	Workout: {
		key:       "workout",
		name:      "Develop a workout plan",
		questions: []string{QFitnessGoals, QLimitations, QDaysPerWeek, QEquipment},
		build:     workout,
	},
	Investment: {
		key:       "investment",
		name:      "Help me with my investment portfolio",
		questions: []string{QAccountType, QGuidelines, QRiskTolerance},
		build:     investment,
	},
	Other: {
		key:     "other",
		name:    "Other",
		primary: QPrompt,
		build:   other,
	},
}

// Templates returns the built-in templates in display order.
func Templates() []Template {
	out := make([]Template, 0, numTemplates)
	for t := Template(0); t < numTemplates; t++ {
		out = append(out, t)
	}
	return out
}

// Lookup finds a built-in template by display name or short key,
// ignoring case and surrounding whitespace.
func Lookup(name string) (Template, bool) {
	name = strings.TrimSpace(name)
	for t := Template(0); t < numTemplates; t++ {
		d := definitions[t]
		if strings.EqualFold(d.name, name) || strings.EqualFold(d.key, name) {
			return t, true
		}
	}
	return 0, false
}

func (t Template) valid() bool {
	return t >= 0 && t < numTemplates
}

// Name returns the display name, e.g. "Draft an email".
func (t Template) Name() string {
	if !t.valid() {
		return ""
	}
	return definitions[t].name
}

// Key returns the short identifier used on the command line.
func (t Template) Key() string {
	if !t.valid() {
		return ""
	}
	return definitions[t].key
}

func (t Template) String() string {
	return t.Name()
}

// Questions returns a copy of the template's ordered follow-up questions.
func (t Template) Questions() []string {
	if !t.valid() {
		return []string{}
	}
	return append([]string{}, definitions[t].questions...)
}

// PrimaryInput is the question carrying the user's own text, or "" when
// the template has none.
func (t Template) PrimaryInput() string {
	if !t.valid() {
		return ""
	}
	return definitions[t].primary
}

// Inputs returns every question a user should be asked, primary input first.
func (t Template) Inputs() []string {
	qs := t.Questions()
	p := t.PrimaryInput()
	if p == "" {
		return qs
	}
	for _, q := range qs {
		if q == p {
			return qs
		}
	}
	return append([]string{p}, qs...)
}

// IsTextTransform reports whether the template rewrites user supplied text.
func (t Template) IsTextTransform() bool {
	return t.PrimaryInput() == QText
}

// Build assembles the record for the template. Sections the fragments leave
// blank are filled with generic text so every section is populated.
func (t Template) Build(answers Answers) Record {
	if !t.valid() {
		return Generic("", answers)
	}
	d := definitions[t]
	return d.build(d.name, answers).WithDefaults(d.name)
}
