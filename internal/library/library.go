package library

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/sant0-9/promptme/internal/craft"
)

// FileName is the template file inside each template directory.
const FileName = "TEMPLATE.md"

// ErrNoFrontmatter is returned for template files without a YAML header.
var ErrNoFrontmatter = errors.New("invalid template format: missing frontmatter")

// Metadata is the lightweight index entry loaded at startup
type Metadata struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Questions   []string `yaml:"questions,omitempty"`
	Path        string   `yaml:"-"` // Full path to TEMPLATE.md
	DirPath     string   `yaml:"-"` // Directory containing the template
}

// Template is a user-defined CRAFT template loaded on demand.
type Template struct {
	Metadata
	Body string // CRAFT sections with {{answer}} / {{has}} actions
}

// LoadMetadata reads only the frontmatter of a template file.
func LoadMetadata(path string) (*Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	front, _, err := split(string(content))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var meta Metadata
	if err := yaml.Unmarshal([]byte(front), &meta); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	meta.Path = path
	meta.DirPath = filepath.Dir(path)

	return &meta, nil
}

// Load reads the entire template including body.
func Load(meta *Metadata) (*Template, error) {
	content, err := os.ReadFile(meta.Path)
	if err != nil {
		return nil, err
	}

	t, err := Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", meta.Path, err)
	}

	// Directory name and index entry win over a missing frontmatter name.
	t.Metadata.Path = meta.Path
	t.Metadata.DirPath = meta.DirPath
	if t.Name == "" {
		t.Name = meta.Name
	}
	return t, nil
}

// Parse reads a TEMPLATE.md document and validates its body.
func Parse(content string) (*Template, error) {
	front, body, err := split(content)
	if err != nil {
		return nil, err
	}

	var meta Metadata
	if err := yaml.Unmarshal([]byte(front), &meta); err != nil {
		return nil, err
	}

	t := &Template{Metadata: meta, Body: body}
	if _, err := t.parse(nil); err != nil {
		return nil, err
	}
	return t, nil
}

// split separates the frontmatter from the body. The document must start
// with a "---" line.
func split(content string) (front, body string, err error) {
	content = strings.TrimPrefix(content, "\ufeff")
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return "", "", ErrNoFrontmatter
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			front = strings.Join(lines[1:i], "\n")
			body = strings.TrimSpace(strings.Join(lines[i+1:], "\n"))
			return front, body, nil
		}
	}
	return "", "", ErrNoFrontmatter
}

func (t *Template) parse(answers craft.Answers) (*template.Template, error) {
	return template.New(t.Name).
		Option("missingkey=zero").
		Funcs(template.FuncMap{
			"answer": answers.Get,
			"has":    answers.Has,
		}).
		Parse(t.Body)
}

// Build renders the body with answers and reads the CRAFT sections back.
// Sections the body leaves out get the generic fragments for the name.
func (t *Template) Build(answers craft.Answers) (craft.Record, error) {
	tmpl, err := t.parse(answers)
	if err != nil {
		return craft.Record{}, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, nil); err != nil {
		return craft.Record{}, fmt.Errorf("render template %s: %w", t.Name, err)
	}

	return craft.ExtractSections(buf.String()).WithDefaults(t.Name), nil
}

// Marshal renders the template back to TEMPLATE.md form.
func (t *Template) Marshal() ([]byte, error) {
	front, err := yaml.Marshal(&t.Metadata)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(front)
	buf.WriteString("---\n\n")
	buf.WriteString(t.Body)
	buf.WriteString("\n")
	return buf.Bytes(), nil
}
