package craft

import (
	"errors"
	"strings"
)

// ErrMissingTemplate is returned when a record is requested without a template name.
var ErrMissingTemplate = errors.New("template is required")

// Sections lists the CRAFT section names in prompt order.
var Sections = []string{"Context", "Role", "Audience", "Format", "Tone", "Task"}

// Record is a prompt split into the six CRAFT sections.
type Record struct {
	Context  string `json:"context" yaml:"context"`
	Role     string `json:"role" yaml:"role"`
	Audience string `json:"audience" yaml:"audience"`
	Format   string `json:"format" yaml:"format"`
	Tone     string `json:"tone" yaml:"tone"`
	Task     string `json:"task" yaml:"task"`
}

func (r *Record) fields() []*string {
	return []*string{&r.Context, &r.Role, &r.Audience, &r.Format, &r.Tone, &r.Task}
}

// Get returns the section with the given name (case-insensitive).
func (r Record) Get(section string) string {
	if p := r.field(section); p != nil {
		return *p
	}
	return ""
}

// Set replaces a section. It reports false for unknown section names.
func (r *Record) Set(section, value string) bool {
	p := r.field(section)
	if p == nil {
		return false
	}
	*p = value
	return true
}

func (r *Record) field(section string) *string {
	fields := r.fields()
	for i, name := range Sections {
		if strings.EqualFold(name, strings.TrimSpace(section)) {
			return fields[i]
		}
	}
	return nil
}

// Complete reports whether every section has content.
func (r Record) Complete() bool {
	for _, f := range r.fields() {
		if strings.TrimSpace(*f) == "" {
			return false
		}
	}
	return true
}

// WithDefaults fills blank sections with the generic fragments for name.
func (r Record) WithDefaults(name string) Record {
	generic := Generic(name, nil)
	dst, src := r.fields(), generic.fields()
	for i := range dst {
		if strings.TrimSpace(*dst[i]) == "" {
			*dst[i] = *src[i]
		}
	}
	return r
}

// Answers maps a follow-up question to the user's answer.
type Answers map[string]string

// Get returns the trimmed answer to q. Missing and blank answers are "".
func (a Answers) Get(q string) string {
	if a == nil {
		return ""
	}
	return strings.TrimSpace(a[q])
}

// Has reports whether q has a non-blank answer.
func (a Answers) Has(q string) bool {
	return a.Get(q) != ""
}

// Present returns the non-blank answers.
func (a Answers) Present() Answers {
	out := Answers{}
	for q := range a {
		if v := a.Get(q); v != "" {
			out[q] = v
		}
	}
	return out
}

// Build assembles a record for the named template. Unknown templates get
// generic fragments built from the lower-cased template name.
func Build(name string, answers Answers) (Record, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Record{}, ErrMissingTemplate
	}
	if t, ok := Lookup(name); ok {
		return t.Build(answers), nil
	}
	return Generic(name, answers), nil
}

// Questions returns the follow-up questions for the named template, or an
// empty list when the template is unknown.
func Questions(name string) []string {
	t, ok := Lookup(name)
	if !ok {
		return []string{}
	}
	return t.Questions()
}
