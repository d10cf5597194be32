package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sant0-9/promptme/internal/craft"
	"github.com/sant0-9/promptme/internal/framework"
	"github.com/sant0-9/promptme/internal/intent"
	"github.com/sant0-9/promptme/internal/library"
	"github.com/sant0-9/promptme/internal/models"
)

var errNoService = errors.New("this command needs a completion service; run promptme to configure one")

var (
	analyzeOutput string
	formatUnwrap  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <query>",
	Short: "Show what the heuristics infer from a request",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAnalyze,
}

var formatCmd = &cobra.Command{
	Use:   "format <model> [text]",
	Short: "Apply (or remove) a model's prompt wrapping",
	Long: `Format wraps text the way the target model expects. Without a text argument
the text is read from stdin. Text that is already wrapped is left unchanged.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFormat,
}

var modelsCmd = &cobra.Command{
	Use:   "models [id]",
	Short: "List target models or show one model's details",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runModels,
}

var suggestCmd = &cobra.Command{
	Use:   "suggest <request>",
	Short: "Suggest the template that best fits a request",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSuggest,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "yaml", "Output format (yaml or json)")
	formatCmd.Flags().BoolVar(&formatUnwrap, "unformat", false, "Remove the model's wrapping instead")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	a := intent.Analyze(strings.Join(args, " "))
	out := cmd.OutOrStdout()

	switch strings.ToLower(analyzeOutput) {
	case "yaml", "yml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(a); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	default:
		return fmt.Errorf("unknown output format: %s", analyzeOutput)
	}
}

func runFormat(cmd *cobra.Command, args []string) error {
	model := args[0]
	var text string
	if len(args) > 1 {
		text = strings.Join(args[1:], " ")
	} else {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read text: %w", err)
		}
		text = strings.TrimRight(string(data), "\n")
	}

	if !models.Known(model) {
		logger.Debug("unknown model, text left unchanged", zap.String("model", model))
	}

	if formatUnwrap {
		fmt.Fprintln(cmd.OutOrStdout(), models.Unformat(text, model))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), models.FormatOnce(text, model))
	return nil
}

func runModels(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		for _, m := range models.All() {
			fmt.Fprintf(out, "  %-16s %-22s %-10s %-6s %.1f\n",
				m.ID, m.Name, m.Family, framework.Select(m.ID).Name, models.Average(m.ID))
		}
		return nil
	}

	m, ok := models.Lookup(args[0])
	if !ok {
		return fmt.Errorf("unknown model: %s", args[0])
	}

	fmt.Fprintf(out, "%s (%s)\n", m.Name, m.ID)
	fmt.Fprintf(out, "Framework: %s\n", framework.Select(m.ID).Name)
	printList(out, "Capabilities", m.Capabilities)
	printList(out, "Limitations", m.Limitations)
	printList(out, "Strategies", m.Strategies)

	scores := models.Scores(m.ID)
	if len(scores) > 0 {
		names := make([]string, 0, len(scores))
		for name := range scores {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Fprintln(out, "\nScores:")
		for _, name := range names {
			fmt.Fprintf(out, "  %-16s %.1f\n", name, scores[name])
		}
		fmt.Fprintf(out, "  %-16s %.1f\n", "Average", models.Average(m.ID))
	}
	return nil
}

func printList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(w, "  - %s\n", item)
	}
}

func runSuggest(cmd *cobra.Command, args []string) error {
	provider := newProvider()
	if provider == nil {
		return errNoService
	}
	idx, err := openLibrary()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	match, err := library.NewMatcher(provider, cfg.Model, idx).Match(ctx, strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("failed to match template: %w", err)
	}

	out := cmd.OutOrStdout()
	if match == nil {
		fmt.Fprintln(out, "No template fits this request. Try: promptme quick \"...\"")
		return nil
	}

	name := match.Name
	if t, ok := craft.Lookup(name); ok {
		name = fmt.Sprintf("%s (%s)", t.Name(), t.Key())
	}
	fmt.Fprintf(out, "%s  confidence %.0f%%\n", name, match.Confidence*100)
	return nil
}
