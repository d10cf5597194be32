package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sant0-9/promptme/internal/pipeline"
	"github.com/sant0-9/promptme/internal/tasks"
)

var taskFlags struct {
	name        string
	model       string
	query       string
	schedule    string
	disabled    bool
	enabled     bool
	concurrency int
}

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Manage scheduled prompt tasks",
	Long: `Scheduled tasks regenerate a quick prompt on a cron schedule.

Schedules are standard 5-field cron expressions evaluated in UTC, or one of
the presets: every minute, every 5 minutes, every 10 minutes, every 15 minutes,
every 30 minutes, hourly, daily, weekly, monthly, yearly.

Subcommands:
  list    - List tasks
  show    - Show a task and its last prompt
  add     - Create a task
  update  - Change a task
  rm      - Delete a task
  run     - Run one task now, or every due task
  serve   - Run due tasks every minute until interrupted`,
	RunE: runTasksList,
}

var tasksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	RunE:  runTasksList,
}

var tasksShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTasksShow,
}

var tasksAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a task",
	RunE:  runTasksAdd,
}

var tasksUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTasksUpdate,
}

var tasksRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	RunE:    runTasksRm,
}

var tasksRunCmd = &cobra.Command{
	Use:   "run [id]",
	Short: "Run a task now, or every due task",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTasksRun,
}

var tasksServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run due tasks every minute until interrupted",
	RunE:  runTasksServe,
}

func init() {
	tasksAddCmd.Flags().StringVar(&taskFlags.name, "name", "", "Task name (required)")
	tasksAddCmd.Flags().StringVar(&taskFlags.model, "model", "", "Target model (default from config)")
	tasksAddCmd.Flags().StringVar(&taskFlags.query, "query", "", "Request to generate a prompt for (required)")
	tasksAddCmd.Flags().StringVar(&taskFlags.schedule, "schedule", "daily", "Cron expression or preset")
	tasksAddCmd.Flags().BoolVar(&taskFlags.disabled, "disabled", false, "Create the task paused")

	tasksUpdateCmd.Flags().StringVar(&taskFlags.name, "name", "", "New name")
	tasksUpdateCmd.Flags().StringVar(&taskFlags.model, "model", "", "New target model")
	tasksUpdateCmd.Flags().StringVar(&taskFlags.query, "query", "", "New request")
	tasksUpdateCmd.Flags().StringVar(&taskFlags.schedule, "schedule", "", "New cron expression or preset")
	tasksUpdateCmd.Flags().BoolVar(&taskFlags.enabled, "enabled", true, "Enable or pause the task")

	tasksServeCmd.Flags().IntVar(&taskFlags.concurrency, "concurrency", 4, "Tasks generated in parallel")

	tasksCmd.AddCommand(
		tasksListCmd,
		tasksShowCmd,
		tasksAddCmd,
		tasksUpdateCmd,
		tasksRmCmd,
		tasksRunCmd,
		tasksServeCmd,
	)
}

// openTaskStore opens the store named by the config. The returned close
// function is never nil.
func openTaskStore() (tasks.Store, func() error, error) {
	driver := "sqlite"
	if cfg.Tasks != nil && cfg.Tasks.Driver != "" {
		driver = strings.ToLower(cfg.Tasks.Driver)
	}

	switch driver {
	case "memory":
		logger.Warn("using in-memory task store, tasks are lost on exit")
		return tasks.NewMemoryStore(), func() error { return nil }, nil
	case "sqlite":
		path, err := cfg.TasksPath()
		if err != nil {
			return nil, nil, err
		}
		store, err := tasks.NewSQLiteStore(path)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown task store driver: %s", driver)
	}
}

func withTaskService(fn func(*tasks.Service) error) error {
	store, closeStore, err := openTaskStore()
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("failed to close task store", zap.Error(err))
		}
	}()
	return fn(tasks.NewService(store))
}

// resolveSchedule maps a preset label such as "daily" to its cron
// expression and returns anything else unchanged.
func resolveSchedule(s string) string {
	s = strings.TrimSpace(s)
	for _, f := range tasks.Frequencies {
		if f.Value != tasks.CustomSchedule && strings.EqualFold(f.Label, s) {
			return f.Value
		}
	}
	return s
}

// taskGenerator produces a task's prompt through the quick path. A vague
// query yields the clarifying-questions prompt, which is stored as is.
func taskGenerator(p *pipeline.Pipeline) tasks.Generator {
	return func(ctx context.Context, t *tasks.Task) (string, error) {
		res, err := p.Quick(ctx, pipeline.QuickRequest{Model: t.Model, Query: t.Query})
		if err != nil {
			return "", err
		}
		if res.Warning != "" {
			logger.Warn("task prompt used a fallback", zap.String("task", t.ID), zap.String("warning", res.Warning))
		}
		return res.Prompt, nil
	}
}

func newRunner(service *tasks.Service, opts ...tasks.RunnerOption) (*tasks.Runner, error) {
	p, err := newPipeline(newProvider())
	if err != nil {
		return nil, err
	}
	opts = append([]tasks.RunnerOption{tasks.WithLogger(logger)}, opts...)
	return tasks.NewRunner(service, taskGenerator(p), opts...), nil
}

func runTasksList(cmd *cobra.Command, args []string) error {
	return withTaskService(func(s *tasks.Service) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		list, err := s.List(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(list) == 0 {
			fmt.Fprintln(out, "No scheduled tasks. Create one with: promptme tasks add --name ... --query ...")
			return nil
		}
		for _, t := range list {
			status := "paused"
			if t.Enabled {
				status = "next " + formatRunTime(t.NextRun)
			}
			fmt.Fprintf(out, "%s  %-20s %-14s %-12s %s\n", t.ID, truncate(t.Name, 20), t.Schedule, t.Model, status)
		}
		return nil
	})
}

func runTasksShow(cmd *cobra.Command, args []string) error {
	return withTaskService(func(s *tasks.Service) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		t, err := s.Get(ctx, args[0])
		if err != nil {
			return fmt.Errorf("task %s: %w", args[0], err)
		}

		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(t); err != nil {
			return err
		}
		return enc.Close()
	})
}

func runTasksAdd(cmd *cobra.Command, args []string) error {
	model := taskFlags.model
	if model == "" {
		model = cfg.TargetModel
	}
	enabled := !taskFlags.disabled

	return withTaskService(func(s *tasks.Service) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		t, err := s.Create(ctx, tasks.CreateRequest{
			Name:     taskFlags.name,
			Model:    model,
			Query:    taskFlags.query,
			Schedule: resolveSchedule(taskFlags.schedule),
			Enabled:  &enabled,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created task %s (%s)\n", t.ID, t.Name)
		if t.Enabled {
			fmt.Fprintf(cmd.OutOrStdout(), "Next run: %s\n", formatRunTime(t.NextRun))
		}
		return nil
	})
}

func runTasksUpdate(cmd *cobra.Command, args []string) error {
	var p tasks.Patch
	flags := cmd.Flags()
	if flags.Changed("name") {
		p.Name = &taskFlags.name
	}
	if flags.Changed("model") {
		p.Model = &taskFlags.model
	}
	if flags.Changed("query") {
		p.Query = &taskFlags.query
	}
	if flags.Changed("schedule") {
		schedule := resolveSchedule(taskFlags.schedule)
		p.Schedule = &schedule
	}
	if flags.Changed("enabled") {
		p.Enabled = &taskFlags.enabled
	}

	return withTaskService(func(s *tasks.Service) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		t, err := s.Update(ctx, args[0], p)
		if err != nil {
			return fmt.Errorf("task %s: %w", args[0], err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s (%s)\n", t.ID, t.Name)
		return nil
	})
}

func runTasksRm(cmd *cobra.Command, args []string) error {
	return withTaskService(func(s *tasks.Service) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		if err := s.Delete(ctx, args[0]); err != nil {
			return fmt.Errorf("task %s: %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s\n", args[0])
		return nil
	})
}

func runTasksRun(cmd *cobra.Command, args []string) error {
	return withTaskService(func(s *tasks.Service) error {
		runner, err := newRunner(s)
		if err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		out := cmd.OutOrStdout()
		if len(args) == 1 {
			t, err := runner.RunNow(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(out, t.LastPrompt)
			return nil
		}

		n, err := runner.RunDue(ctx, time.Now().UTC())
		fmt.Fprintf(out, "Ran %d due %s.\n", n, pluralTasks(n))
		return err
	})
}

func runTasksServe(cmd *cobra.Command, args []string) error {
	return withTaskService(func(s *tasks.Service) error {
		runner, err := newRunner(s, tasks.WithConcurrency(taskFlags.concurrency))
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintln(cmd.ErrOrStderr(), "Running scheduled tasks. Press Ctrl+C to stop.")
		return runner.Start(ctx)
	})
}

func formatRunTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.UTC().Format("2006-01-02 15:04 UTC")
}

func pluralTasks(n int) string {
	if n == 1 {
		return "task"
	}
	return "tasks"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
