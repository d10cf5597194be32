package library

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/sant0-9/promptme/internal/llm"
	"github.com/sant0-9/promptme/internal/prompts"
)

// ErrMissingName is returned when a generated template has no usable name.
var ErrMissingName = errors.New("template name not found in frontmatter")

// Generator creates new templates using the completion service.
type Generator struct {
	provider llm.Provider
	model    string
	index    *Index
}

// NewGenerator creates a generator that saves into idx.
func NewGenerator(provider llm.Provider, model string, idx *Index) *Generator {
	return &Generator{
		provider: provider,
		model:    model,
		index:    idx,
	}
}

// Generate creates a new template from a description and saves it.
func (g *Generator) Generate(ctx context.Context, description string) (*Template, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	resp, err := g.provider.Complete(ctx, &llm.CompletionRequest{
		Model: g.model,
		Messages: []llm.Message{
			{Role: "user", Content: prompts.BuildLibraryGeneratePrompt(description)},
		},
		MaxTokens:   2000,
		Temperature: 0.7,
	})
	if err != nil {
		return nil, err
	}

	t, err := Parse(stripFence(resp.Content))
	if err != nil {
		return nil, err
	}

	t.Name = sanitizeName(t.Name)
	if t.Name == "" {
		return nil, ErrMissingName
	}

	if err := Save(g.index, t); err != nil {
		return nil, err
	}
	return t, nil
}

var (
	invalidNameChars = regexp.MustCompile(`[^a-z0-9-]`)
	hyphenRun        = regexp.MustCompile(`-+`)
)

func sanitizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "-")
	name = strings.ReplaceAll(name, "_", "-")
	name = invalidNameChars.ReplaceAllString(name, "")
	name = hyphenRun.ReplaceAllString(name, "-")
	return strings.Trim(name, "-")
}

// Save writes t to <index dir>/<name>/TEMPLATE.md and registers it.
func Save(idx *Index, t *Template) error {
	dir := filepath.Join(idx.Dir(), t.Name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	t.Path = filepath.Join(dir, FileName)
	t.DirPath = dir

	data, err := t.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(t.Path, data, 0644); err != nil {
		return err
	}

	meta := t.Metadata
	idx.Add(&meta)
	return nil
}
