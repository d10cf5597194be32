package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/sant0-9/promptme/internal/craft"
	"github.com/sant0-9/promptme/internal/framework"
	"github.com/sant0-9/promptme/internal/models"
)

const (
	DefaultEnhanceTemplate = "Make this sound more professional"
	DefaultEnhanceModel    = "gpt-4o"
)

// CraftRequest asks for a template prompt written for Model.
type CraftRequest struct {
	Model    string
	Template string
	Answers  craft.Answers
	// Optimize polishes the prompt through the completion service.
	Optimize bool
}

// Craft assembles the CRAFT prompt for a template, optionally polishes it
// and applies the model's wrapping. A failed polish falls back to the
// assembled prompt with a warning.
func (p *Pipeline) Craft(ctx context.Context, req CraftRequest) (*Result, error) {
	if strings.TrimSpace(req.Model) == "" {
		return nil, ErrMissingModel
	}
	if strings.TrimSpace(req.Template) == "" {
		return nil, craft.ErrMissingTemplate
	}

	log := p.logger.With(zap.String("template", req.Template), zap.String("model", req.Model))
	answers := req.Answers
	var warning string

	if t, ok := craft.Lookup(req.Template); ok && t == craft.Other && req.Optimize && p.optimizer != nil {
		p.progress(StageEnhancingInput, "Enhancing your prompt...")
		answers = p.enhanceInput(ctx, log, t.PrimaryInput(), answers)
	}

	p.progress(StageAssembling, "Assembling CRAFT prompt...")
	rec, err := p.build(req.Template, answers)
	if err != nil {
		if errors.Is(err, craft.ErrMissingTemplate) {
			return nil, err
		}
		log.Warn("library template failed", zap.Error(err))
		rec = craft.Generic(req.Template, answers)
		warning = WarnTemplateFailed
	}
	flat := craft.Flatten(rec)
	prompt := flat

	if req.Optimize {
		if p.optimizer == nil {
			warning = WarnNoService
		} else {
			p.progress(StageOptimizing, "Optimizing for "+req.Model+"...")
			optimized, err := p.optimizer.Optimize(ctx, flat, req.Model)
			if err != nil {
				log.Warn("optimize failed, using original", zap.Error(err))
				warning = WarnOptimizeFailed
			} else {
				prompt = optimized
			}
		}
	}

	p.progress(StageFormatting, "Applying model formatting...")
	prompt = models.FormatOnce(prompt, req.Model)

	p.progress(StageDone, "Prompt ready")
	log.Debug("craft prompt generated", zap.Int("length", len(prompt)), zap.Bool("fallback", warning != ""))

	return &Result{
		Prompt:   prompt,
		Original: flat,
		Record:   &rec,
		Warning:  warning,
	}, nil
}

// enhanceInput replaces the primary input with its enhanced form. The raw
// input is kept when the service fails.
func (p *Pipeline) enhanceInput(ctx context.Context, log *zap.Logger, key string, answers craft.Answers) craft.Answers {
	raw := answers.Get(key)
	if raw == "" {
		return answers
	}

	enhanced, err := p.optimizer.EnhanceInput(ctx, raw)
	if err != nil {
		log.Warn("input enhancement failed, using raw input", zap.Error(err))
		return answers
	}

	out := craft.Answers{}
	for q, a := range answers {
		out[q] = a
	}
	out[key] = enhanced
	return out
}

// AdvancedRequest asks for follow-up questions or a condensed prose prompt.
type AdvancedRequest struct {
	Template string
	Answers  craft.Answers
	// Generate renders the prompt; otherwise only the questions are returned.
	Generate bool
}

// Advanced either returns the template's follow-up questions or renders the
// record as a single prose instruction, all locally.
func (p *Pipeline) Advanced(_ context.Context, req AdvancedRequest) (*Result, error) {
	if strings.TrimSpace(req.Template) == "" {
		return nil, craft.ErrMissingTemplate
	}

	if !req.Generate {
		return &Result{FollowUpQuestions: p.FollowUpQuestions(req.Template)}, nil
	}

	p.progress(StageAssembling, "Assembling prompt...")
	rec, err := p.build(req.Template, req.Answers)
	if err != nil {
		if errors.Is(err, craft.ErrMissingTemplate) {
			return nil, err
		}
		p.logger.Warn("library template failed", zap.String("template", req.Template), zap.Error(err))
		p.progress(StageDone, "Prompt ready")
		return &Result{
			Prompt:  detailsPrompt(req.Template, req.Answers),
			Warning: WarnTemplateFailed,
		}, nil
	}

	p.progress(StageDone, "Prompt ready")
	return &Result{
		Prompt:   craft.Prose(rec),
		Original: craft.Flatten(rec),
		Record:   &rec,
	}, nil
}

// detailsPrompt lists the answers under a one-line expert instruction.
func detailsPrompt(template string, answers craft.Answers) string {
	present := answers.Present()
	questions := make([]string, 0, len(present))
	for q := range present {
		questions = append(questions, q)
	}
	sort.Strings(questions)

	var b strings.Builder
	fmt.Fprintf(&b, "As an expert in %s, please help me with the following details:", strings.TrimSpace(template))
	for _, q := range questions {
		fmt.Fprintf(&b, "\n- %s: %s", q, present[q])
	}
	return b.String()
}

// EnhanceRequest asks for a free-form prompt to be improved.
type EnhanceRequest struct {
	Prompt   string
	Template string
	Model    string
	// Structured wraps the prompt in a CRAFT record before polishing.
	Structured bool
}

// Enhance improves a free-form prompt. Without a working completion
// service the prompt is returned in a basic enhancement sentence.
func (p *Pipeline) Enhance(ctx context.Context, req EnhanceRequest) (*Result, error) {
	text := strings.TrimSpace(req.Prompt)
	if text == "" {
		return nil, ErrMissingPrompt
	}
	template := strings.TrimSpace(req.Template)
	if template == "" {
		template = DefaultEnhanceTemplate
	}
	model := strings.TrimSpace(req.Model)
	if model == "" {
		model = DefaultEnhanceModel
	}

	basic := fmt.Sprintf("I need assistance with the following: %s. Please provide a detailed, well-structured response.", text)

	if p.optimizer == nil {
		return &Result{Prompt: basic, Original: req.Prompt, Warning: WarnNoService}, nil
	}

	p.progress(StageOptimizing, "Enhancing prompt...")
	enhanced, err := p.optimizer.Enhance(ctx, text, template, model, req.Structured)
	if err != nil {
		p.logger.Warn("enhance failed, using basic enhancement",
			zap.String("template", template), zap.String("model", model), zap.Error(err))
		return &Result{Prompt: basic, Original: req.Prompt, Warning: WarnEnhanceFailed}, nil
	}

	p.progress(StageDone, "Prompt ready")
	return &Result{Prompt: enhanced, Original: req.Prompt}, nil
}

// QuickRequest asks for a framework prompt from a free-text query.
// Answers are the replies to a previous round of follow-up questions.
type QuickRequest struct {
	Model   string
	Query   string
	Answers map[string]string
}

// Quick analyses a query and either returns clarifying questions or the
// model's framework prompt. With answers the query is first refined by the
// completion service, or merged locally when that is unavailable.
func (p *Pipeline) Quick(ctx context.Context, req QuickRequest) (*Result, error) {
	model := strings.TrimSpace(req.Model)
	if model == "" {
		return nil, ErrMissingModel
	}
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, ErrMissingQuery
	}

	answers := craft.Answers(req.Answers).Present()
	if len(answers) == 0 {
		p.progress(StageAssembling, "Analyzing query...")
		res := framework.Generate(model, query)
		if res.NeedsFollowUp() {
			return &Result{
				Prompt:            res.Prompt,
				Original:          query,
				FollowUpQuestions: res.Questions,
			}, nil
		}
		return p.finishQuick(query, model, res, ""), nil
	}

	var warning string
	merged := framework.MergeQueryAndContext(query, answers)
	if p.optimizer != nil {
		p.progress(StageOptimizing, "Refining query...")
		refined, err := p.optimizer.RefineQuery(ctx, query, answers)
		if err != nil {
			p.logger.Warn("refine failed, using local merge", zap.Error(err))
			warning = WarnRefineFailed
		} else {
			merged = refined
		}
	}

	p.progress(StageAssembling, "Building framework prompt...")
	return p.finishQuick(query, model, framework.GenerateWithContext(model, query, merged), warning), nil
}

func (p *Pipeline) finishQuick(query, model string, res framework.Result, warning string) *Result {
	p.progress(StageFormatting, "Applying model formatting...")
	out := &Result{
		Prompt:    models.FormatOnce(res.Prompt, model),
		Original:  query,
		Framework: res.Framework,
		Warning:   warning,
	}
	p.progress(StageDone, "Prompt ready")
	return out
}
