package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Generator produces the prompt for one run of a task.
type Generator func(ctx context.Context, t *Task) (string, error)

const defaultConcurrency = 4

// Runner executes due tasks. It checks the store once a minute while
// started, and can also be driven directly with RunDue.
type Runner struct {
	service     *Service
	generate    Generator
	logger      *zap.Logger
	concurrency int
}

type RunnerOption func(*Runner)

func WithLogger(l *zap.Logger) RunnerOption {
	return func(r *Runner) { r.logger = l }
}

// WithConcurrency bounds how many tasks run at once.
func WithConcurrency(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

func NewRunner(service *Service, generate Generator, opts ...RunnerOption) *Runner {
	r := &Runner{
		service:     service,
		generate:    generate,
		logger:      zap.NewNop(),
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunDue runs every enabled task whose NextRun is at or before now and
// returns how many runs were recorded. A failed generation is logged and the
// task is still rescheduled so it does not fire again on the next tick. A
// run that cannot be recorded does not stop the others; those errors are
// joined into the returned error.
func (r *Runner) RunDue(ctx context.Context, now time.Time) (int, error) {
	all, err := r.service.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	var due []*Task
	for _, t := range all {
		if t.Due(now) {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return 0, nil
	}

	var (
		g    errgroup.Group
		ran  atomic.Int64
		mu   sync.Mutex
		errs []error
	)
	g.SetLimit(r.concurrency)
	for _, t := range due {
		g.Go(func() error {
			if _, err := r.run(ctx, t, now); err != nil {
				r.logger.Error("task run not recorded", zap.String("task", t.ID), zap.Error(err))
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
				return nil
			}
			ran.Add(1)
			return nil
		})
	}
	_ = g.Wait()
	return int(ran.Load()), errors.Join(errs...)
}

// RunNow runs a single task immediately, whatever its schedule.
func (r *Runner) RunNow(ctx context.Context, id string) (*Task, error) {
	t, err := r.service.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	prompt, err := r.generate(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("task %s: %w", t.Name, err)
	}
	return r.service.Record(ctx, t.ID, time.Now(), prompt)
}

func (r *Runner) run(ctx context.Context, t *Task, now time.Time) (*Task, error) {
	log := r.logger.With(zap.String("task", t.ID), zap.String("name", t.Name))

	start := time.Now()
	prompt, err := r.generate(ctx, t)
	if err != nil {
		log.Warn("task generation failed", zap.Error(err))
		prompt = ""
	} else {
		log.Info("task ran", zap.Duration("took", time.Since(start)), zap.Int("length", len(prompt)))
	}

	updated, err := r.service.Record(ctx, t.ID, now, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to record run of %s: %w", t.ID, err)
	}
	return updated, nil
}

// Start checks for due tasks every minute until ctx is cancelled, then
// waits for running tasks to finish.
func (r *Runner) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))
	_, err := c.AddFunc("* * * * *", func() {
		n, err := r.RunDue(ctx, time.Now().UTC())
		if err != nil {
			r.logger.Error("scheduled run failed", zap.Int("recorded", n), zap.Error(err))
			return
		}
		if n > 0 {
			r.logger.Debug("scheduled run finished", zap.Int("tasks", n))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule runner: %w", err)
	}

	r.logger.Info("task runner started", zap.Int("concurrency", r.concurrency))
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	r.logger.Info("task runner stopped")
	return nil
}
