package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sant0-9/promptme/internal/library"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage your own templates",
	Long: `Library templates live in <config dir>/templates/<name>/TEMPLATE.md: YAML
frontmatter (name, description, questions) followed by the six CRAFT sections.

Subcommands:
  list   - List library templates
  show   - Print a template file
  new    - Have the completion service write a template from a description`,
	RunE: runLibraryList,
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List library templates",
	RunE:  runLibraryList,
}

var libraryShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a library template",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryShow,
}

var libraryNewCmd = &cobra.Command{
	Use:   "new <description>",
	Short: "Generate a template from a description",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLibraryNew,
}

func init() {
	libraryCmd.AddCommand(libraryListCmd, libraryShowCmd, libraryNewCmd)
}

func runLibraryList(cmd *cobra.Command, args []string) error {
	idx, err := openLibrary()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if idx.Count() == 0 {
		fmt.Fprintf(out, "No library templates in %s.\n", idx.Dir())
		fmt.Fprintln(out, `Create one with: promptme library new "..."`)
		return nil
	}

	for _, meta := range idx.All() {
		fmt.Fprintf(out, "%s\n  %s\n", meta.Name, meta.Description)
	}
	return nil
}

func runLibraryShow(cmd *cobra.Command, args []string) error {
	idx, err := openLibrary()
	if err != nil {
		return err
	}

	meta := idx.Get(args[0])
	if meta == nil {
		return fmt.Errorf("unknown library template: %s", args[0])
	}
	t, err := library.Load(meta)
	if err != nil {
		return err
	}
	data, err := t.Marshal()
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

func runLibraryNew(cmd *cobra.Command, args []string) error {
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

	t, err := library.NewGenerator(provider, cfg.Model, idx).Generate(ctx, strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("failed to generate template: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created template %q in %s\n", t.Name, t.DirPath)
	return nil
}
