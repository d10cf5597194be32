package pipeline

import (
	"errors"

	"go.uber.org/zap"

	"github.com/sant0-9/promptme/internal/craft"
	"github.com/sant0-9/promptme/internal/library"
	"github.com/sant0-9/promptme/internal/optimizer"
)

var (
	ErrMissingModel  = errors.New("model is required")
	ErrMissingPrompt = errors.New("prompt is required")
	ErrMissingQuery  = errors.New("query is required")
)

// Warnings attached to results that fell back to a local rendering.
const (
	WarnOptimizeFailed = "Failed to optimize prompt, using original"
	WarnEnhanceFailed  = "Failed to enhance with the completion service, using basic enhancement"
	WarnRefineFailed   = "Failed to refine query, using local merge"
	WarnNoService      = "No completion service configured, using original"
	WarnTemplateFailed = "Failed to render library template, using generic prompt"
)

// Stage represents a pipeline stage
type Stage int

const (
	StageAssembling Stage = iota
	StageEnhancingInput
	StageOptimizing
	StageFormatting
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageAssembling:
		return "Assembling"
	case StageEnhancingInput:
		return "Enhancing input"
	case StageOptimizing:
		return "Optimizing"
	case StageFormatting:
		return "Formatting"
	case StageDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// Progress represents pipeline progress
type Progress struct {
	Stage   Stage
	Message string
}

// Result is a finished prompt, or the follow-up questions to ask first.
type Result struct {
	Prompt string
	// Original is the prompt before optimization and model wrapping.
	Original          string
	Record            *craft.Record
	Framework         string
	FollowUpQuestions []string
	// Warning is set when a completion call failed and a fallback was used.
	Warning string
}

// NeedsFollowUp reports whether the caller should ask FollowUpQuestions
// before a final prompt can be produced.
func (r *Result) NeedsFollowUp() bool {
	return len(r.FollowUpQuestions) > 0
}

// Pipeline turns template answers and free-text queries into prompts.
type Pipeline struct {
	optimizer  *optimizer.Optimizer
	library    *library.Index
	logger     *zap.Logger
	onProgress func(Progress)
}

type Option func(*Pipeline)

// WithOptimizer enables completion-service polishing. Without it every
// request is rendered locally.
func WithOptimizer(o *optimizer.Optimizer) Option {
	return func(p *Pipeline) { p.optimizer = o }
}

// WithLibrary makes user-defined templates available by name.
func WithLibrary(idx *library.Index) Option {
	return func(p *Pipeline) { p.library = idx }
}

func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// New creates a pipeline.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetProgressCallback sets the progress callback
func (p *Pipeline) SetProgressCallback(fn func(Progress)) {
	p.onProgress = fn
}

func (p *Pipeline) progress(stage Stage, msg string) {
	if p.onProgress != nil {
		p.onProgress(Progress{Stage: stage, Message: msg})
	}
}

// FollowUpQuestions returns the questions for a built-in or library
// template, or an empty list.
func (p *Pipeline) FollowUpQuestions(name string) []string {
	if _, ok := craft.Lookup(name); ok {
		return craft.Questions(name)
	}
	if meta := p.library.Get(name); meta != nil {
		return append([]string{}, meta.Questions...)
	}
	return []string{}
}

// build assembles the record for name. A library template that fails to
// load or render is reported as an error so callers can pick a fallback.
func (p *Pipeline) build(name string, answers craft.Answers) (craft.Record, error) {
	if _, ok := craft.Lookup(name); !ok {
		if meta := p.library.Get(name); meta != nil {
			t, err := library.Load(meta)
			if err != nil {
				return craft.Record{}, err
			}
			return t.Build(answers)
		}
	}
	return craft.Build(name, answers)
}
