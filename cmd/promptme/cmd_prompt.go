package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sant0-9/promptme/internal/craft"
	"github.com/sant0-9/promptme/internal/document"
	"github.com/sant0-9/promptme/internal/intent"
	"github.com/sant0-9/promptme/internal/pipeline"
)

var clipboardWriteAll = clipboard.WriteAll

var (
	buildAnswers  []string
	buildModel    string
	buildOptimize bool
	buildCopy     bool
	buildFile     string

	advancedAnswers []string

	quickAnswers []string
	quickModel   string

	enhanceTemplate   string
	enhanceModel      string
	enhanceStructured bool
	enhanceFile       string
)

var templatesCmd = &cobra.Command{
	Use:   "templates [name]",
	Short: "List templates or show a template's questions",
	RunE:  runTemplates,
}

var buildCmd = &cobra.Command{
	Use:   "build <template>",
	Short: "Build a CRAFT prompt from a template and answers",
	Long: `Build assembles the CRAFT prompt for a built-in or library template.

Answers are passed as repeated --answer flags. The question may be its full
text or its number from "promptme templates <name>":

  promptme build email --answer 1="the design team" --answer 2="project kickoff"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBuild,
}

var advancedCmd = &cobra.Command{
	Use:   "advanced <template>",
	Short: "Show follow-up questions or render a condensed prose prompt",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAdvanced,
}

var quickCmd = &cobra.Command{
	Use:   "quick <query>",
	Short: "Generate a framework prompt from a free-text request",
	Long: `Quick analyzes a free-text request and picks the prompt framework that
suits the target model (RISEN, CRAFT or RTF). Vague requests return clarifying
questions; answer them with --answer and run again.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuick,
}

var enhanceCmd = &cobra.Command{
	Use:   "enhance [prompt|-]",
	Short: "Improve an existing prompt",
	RunE:  runEnhance,
}

func init() {
	buildCmd.Flags().StringArrayVarP(&buildAnswers, "answer", "a", nil, "Answer as question=answer (repeatable)")
	buildCmd.Flags().StringVarP(&buildModel, "model", "m", "", "Target model (default from config)")
	buildCmd.Flags().BoolVar(&buildOptimize, "optimize", false, "Polish the prompt with the completion service (default from config)")
	buildCmd.Flags().BoolVar(&buildCopy, "copy", false, "Copy the prompt to the clipboard")
	buildCmd.Flags().StringVarP(&buildFile, "file", "f", "", "Read the template's text input from a file")

	advancedCmd.Flags().StringArrayVarP(&advancedAnswers, "answer", "a", nil, "Answer as question=answer (repeatable)")

	quickCmd.Flags().StringArrayVarP(&quickAnswers, "answer", "a", nil, "Answer to a clarifying question (repeatable)")
	quickCmd.Flags().StringVarP(&quickModel, "model", "m", "", "Target model (default from config)")

	enhanceCmd.Flags().StringVarP(&enhanceTemplate, "template", "t", "", "Enhancement goal (default: "+pipeline.DefaultEnhanceTemplate+")")
	enhanceCmd.Flags().StringVarP(&enhanceModel, "model", "m", "", "Target model (default from config)")
	enhanceCmd.Flags().BoolVar(&enhanceStructured, "structured", false, "Structure the prompt as CRAFT before enhancing")
	enhanceCmd.Flags().StringVarP(&enhanceFile, "file", "f", "", "Read the prompt from a file")
}

func runTemplates(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	idx, err := openLibrary()
	if err != nil {
		return err
	}
	p := pipeline.New(pipeline.WithLibrary(idx))

	if len(args) > 0 {
		name := strings.Join(args, " ")
		questions := templateInputs(p, name)
		if len(questions) == 0 {
			return fmt.Errorf("unknown template: %s", name)
		}
		if t, ok := craft.Lookup(name); ok {
			name = t.Name()
		}
		fmt.Fprintln(out, name)
		fmt.Fprintln(out)
		printNumbered(out, questions)
		return nil
	}

	fmt.Fprintln(out, "Built-in templates:")
	for _, t := range craft.Templates() {
		fmt.Fprintf(out, "  %-13s %s (%s)\n", t.Key(), t.Name(), pluralQuestions(len(t.Inputs())))
	}

	if idx.Count() > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Library templates:")
		for _, meta := range idx.All() {
			fmt.Fprintf(out, "  %s (%s)\n", meta.Name, pluralQuestions(len(meta.Questions)))
		}
	}
	return nil
}

func runBuild(cmd *cobra.Command, args []string) error {
	name := strings.Join(args, " ")
	p, err := newPipeline(newProvider())
	if err != nil {
		return err
	}

	answers, err := parseAnswers(templateInputs(p, name), buildAnswers)
	if err != nil {
		return err
	}
	if buildFile != "" {
		if err := answerFromFile(answers, name, buildFile); err != nil {
			return err
		}
	}

	model := buildModel
	if model == "" {
		model = cfg.TargetModel
	}
	optimize := cfg.Optimize
	if cmd.Flags().Changed("optimize") {
		optimize = buildOptimize
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	res, err := p.Craft(ctx, pipeline.CraftRequest{
		Model:    model,
		Template: name,
		Answers:  answers,
		Optimize: optimize,
	})
	if err != nil {
		return err
	}

	printWarning(cmd, res)
	fmt.Fprintln(cmd.OutOrStdout(), res.Prompt)

	if buildCopy {
		if err := clipboardWriteAll(res.Prompt); err != nil {
			return fmt.Errorf("failed to copy prompt: %w", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Copied to clipboard.")
	}
	return nil
}

func runAdvanced(cmd *cobra.Command, args []string) error {
	name := strings.Join(args, " ")
	p, err := newPipeline(nil)
	if err != nil {
		return err
	}

	answers, err := parseAnswers(templateInputs(p, name), advancedAnswers)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	res, err := p.Advanced(ctx, pipeline.AdvancedRequest{
		Template: name,
		Answers:  answers,
		Generate: len(answers) > 0,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if res.Prompt == "" {
		if len(res.FollowUpQuestions) == 0 {
			return fmt.Errorf("unknown template: %s", name)
		}
		printNumbered(out, res.FollowUpQuestions)
		return nil
	}

	printWarning(cmd, res)
	fmt.Fprintln(out, res.Prompt)
	return nil
}

func runQuick(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	p, err := newPipeline(newProvider())
	if err != nil {
		return err
	}

	answers, err := parseAnswers(intent.Analyze(query).FollowUpQuestions, quickAnswers)
	if err != nil {
		return err
	}

	model := quickModel
	if model == "" {
		model = cfg.TargetModel
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	res, err := p.Quick(ctx, pipeline.QuickRequest{
		Model:   model,
		Query:   query,
		Answers: answers,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if res.NeedsFollowUp() {
		fmt.Fprintln(out, "Your request needs a few more details:")
		fmt.Fprintln(out)
		printNumbered(out, res.FollowUpQuestions)
		fmt.Fprintln(out)
		fmt.Fprintln(out, `Answer with --answer <number>="..." and run again.`)
		return nil
	}

	printWarning(cmd, res)
	if verbose && res.Framework != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Framework: %s\n", res.Framework)
	}
	fmt.Fprintln(out, res.Prompt)
	return nil
}

func runEnhance(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	if enhanceFile != "" {
		doc, err := document.Load(enhanceFile)
		if err != nil {
			return err
		}
		text = doc.Content
	} else if text == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read prompt: %w", err)
		}
		text = string(data)
	}

	p, err := newPipeline(newProvider())
	if err != nil {
		return err
	}

	model := enhanceModel
	if model == "" {
		model = cfg.TargetModel
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	res, err := p.Enhance(ctx, pipeline.EnhanceRequest{
		Prompt:     text,
		Template:   enhanceTemplate,
		Model:      model,
		Structured: enhanceStructured,
	})
	if errors.Is(err, pipeline.ErrMissingPrompt) {
		return fmt.Errorf("%w: pass the prompt as an argument, with --file, or - to read stdin", err)
	}
	if err != nil {
		return err
	}

	printWarning(cmd, res)
	fmt.Fprintln(cmd.OutOrStdout(), res.Prompt)
	return nil
}

// answerFromFile fills the template's text input with a file's content.
func answerFromFile(answers craft.Answers, name, path string) error {
	t, ok := craft.Lookup(name)
	if !ok || t.PrimaryInput() == "" {
		return fmt.Errorf("template %q does not take a text input", name)
	}
	doc, err := document.Load(path)
	if err != nil {
		return err
	}
	logger.Debug("loaded input file",
		zap.String("path", doc.Metadata.SourcePath),
		zap.String("size", doc.Metadata.FileSizeHuman()),
		zap.Int("words", doc.Metadata.WordCount))
	answers[t.PrimaryInput()] = doc.Content
	return nil
}

func printNumbered(w io.Writer, items []string) {
	for i, item := range items {
		fmt.Fprintf(w, "%d. %s\n", i+1, item)
	}
}

func pluralQuestions(n int) string {
	if n == 1 {
		return "1 question"
	}
	return fmt.Sprintf("%d questions", n)
}
