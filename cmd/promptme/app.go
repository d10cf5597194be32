package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sant0-9/promptme/internal/config"
	"github.com/sant0-9/promptme/internal/craft"
	"github.com/sant0-9/promptme/internal/library"
	"github.com/sant0-9/promptme/internal/llm"
	"github.com/sant0-9/promptme/internal/optimizer"
	"github.com/sant0-9/promptme/internal/pipeline"
	"github.com/sant0-9/promptme/internal/tui"
)

// providerFactory is replaced in tests.
var providerFactory = llm.NewProvider

// newProvider returns the configured completion service, or nil when
// running offline or the provider cannot be created.
func newProvider() llm.Provider {
	if offline {
		return nil
	}
	p, err := providerFactory(cfg)
	if err != nil {
		logger.Warn("completion service unavailable", zap.String("provider", cfg.Provider), zap.Error(err))
		return nil
	}
	return p
}

func openLibrary() (*library.Index, error) {
	dir, err := config.TemplatesDir()
	if err != nil {
		return nil, err
	}
	idx, err := library.NewIndex(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load template library: %w", err)
	}
	return idx, nil
}

// newPipeline wires the library and, when available, the completion service.
func newPipeline(provider llm.Provider) (*pipeline.Pipeline, error) {
	idx, err := openLibrary()
	if err != nil {
		return nil, err
	}

	opts := []pipeline.Option{
		pipeline.WithLibrary(idx),
		pipeline.WithLogger(logger),
	}
	if provider != nil {
		opts = append(opts, pipeline.WithOptimizer(optimizer.New(provider, cfg.Model)))
	}

	p := pipeline.New(opts...)
	if verbose {
		p.SetProgressCallback(func(pr pipeline.Progress) {
			logger.Debug(pr.Message, zap.Stringer("stage", pr.Stage))
		})
	}
	return p, nil
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// parseAnswers turns repeated "question=answer" flags into answers. The
// question may be given as its text (case-insensitive) or its 1-based
// number in questions.
func parseAnswers(questions []string, raw []string) (craft.Answers, error) {
	answers := craft.Answers{}
	for _, kv := range raw {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("invalid answer %q: expected question=answer", kv)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("invalid answer %q: empty question", kv)
		}

		if n, err := strconv.Atoi(key); err == nil {
			if n < 1 || n > len(questions) {
				return nil, fmt.Errorf("question %d out of range (1-%d)", n, len(questions))
			}
			key = questions[n-1]
		} else {
			for _, q := range questions {
				if strings.EqualFold(q, key) {
					key = q
					break
				}
			}
		}
		answers[key] = strings.TrimSpace(value)
	}
	return answers, nil
}

// templateInputs lists every question a template asks, for numbering answers.
func templateInputs(p *pipeline.Pipeline, name string) []string {
	if t, ok := craft.Lookup(name); ok {
		return t.Inputs()
	}
	return p.FollowUpQuestions(name)
}

func runTUI(cmd *cobra.Command, args []string) error {
	idx, err := openLibrary()
	if err != nil {
		return err
	}

	app := tui.NewApp(tui.Options{
		Config:     cfg,
		NeedsSetup: !config.Exists(),
		Library:    idx,
		Logger:     logger,
	})
	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	app.SetProgram(p)

	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func printWarning(cmd *cobra.Command, res *pipeline.Result) {
	if res.Warning != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", res.Warning)
	}
}
