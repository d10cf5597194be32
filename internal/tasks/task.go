package tasks

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("task not found")
	ErrMissingField    = errors.New("missing required field")
	ErrInvalidSchedule = errors.New("invalid cron schedule")
)

// Task is a prompt generated on a cron schedule.
type Task struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Model    string `json:"model" yaml:"model"`
	Query    string `json:"query" yaml:"query"`
	Schedule string `json:"schedule" yaml:"schedule"`
	Enabled  bool   `json:"enabled" yaml:"enabled"`

	CreatedAt time.Time `json:"createdAt" yaml:"created_at"`
	// LastRun and NextRun are zero when the task never ran or is disabled.
	LastRun    time.Time `json:"lastRun,omitempty" yaml:"last_run,omitempty"`
	NextRun    time.Time `json:"nextRun,omitempty" yaml:"next_run,omitempty"`
	LastPrompt string    `json:"lastPrompt,omitempty" yaml:"last_prompt,omitempty"`
}

// Due reports whether the task should run at now.
func (t *Task) Due(now time.Time) bool {
	return t.Enabled && !t.NextRun.IsZero() && !t.NextRun.After(now)
}

// Store persists tasks. Implementations are safe for concurrent use and
// return copies, never shared pointers.
type Store interface {
	Create(ctx context.Context, t *Task) error
	Get(ctx context.Context, id string) (*Task, error)
	List(ctx context.Context) ([]*Task, error)
	Update(ctx context.Context, t *Task) error
	Delete(ctx context.Context, id string) error
}

// Frequency is a preset schedule offered to users.
type Frequency struct {
	Label string
	Value string
}

// CustomSchedule marks a user-entered cron expression.
const CustomSchedule = "custom"

var Frequencies = []Frequency{
	{Label: "Every minute", Value: "*/1 * * * *"},
	{Label: "Every 5 minutes", Value: "*/5 * * * *"},
	{Label: "Every 10 minutes", Value: "*/10 * * * *"},
	{Label: "Every 15 minutes", Value: "*/15 * * * *"},
	{Label: "Every 30 minutes", Value: "0,30 * * * *"},
	{Label: "Hourly", Value: "0 * * * *"},
	{Label: "Daily", Value: "0 0 * * *"},
	{Label: "Weekly", Value: "0 0 * * 0"},
	{Label: "Monthly", Value: "0 0 1 * *"},
	{Label: "Yearly", Value: "0 0 1 1 *"},
	{Label: "Custom", Value: CustomSchedule},
}
