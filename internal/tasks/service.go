package tasks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// NextRun returns the first time after from that schedule fires.
func NextRun(schedule string, from time.Time) (time.Time, error) {
	if strings.TrimSpace(schedule) == CustomSchedule {
		return time.Time{}, fmt.Errorf("%w: pick a preset or enter a cron expression", ErrInvalidSchedule)
	}
	sched, err := cron.ParseStandard(schedule)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrInvalidSchedule, schedule, err)
	}
	return sched.Next(from), nil
}

// Service validates task changes and keeps NextRun in step with the
// schedule.
type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{
		store: store,
		now:   time.Now,
	}
}

// CreateRequest describes a new task. Enabled defaults to true.
type CreateRequest struct {
	Name     string
	Model    string
	Query    string
	Schedule string
	Enabled  *bool
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*Task, error) {
	required := []struct{ field, value string }{
		{"name", req.Name},
		{"model", req.Model},
		{"query", req.Query},
		{"schedule", req.Schedule},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingField, r.field)
		}
	}

	now := s.now().UTC()
	t := &Task{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		Model:     strings.TrimSpace(req.Model),
		Query:     strings.TrimSpace(req.Query),
		Schedule:  strings.TrimSpace(req.Schedule),
		Enabled:   req.Enabled == nil || *req.Enabled,
		CreatedAt: now,
	}

	next, err := NextRun(t.Schedule, now)
	if err != nil {
		return nil, err
	}
	if t.Enabled {
		t.NextRun = next
	}

	if err := s.store.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Patch holds the fields to change; nil fields are left alone.
type Patch struct {
	Name     *string
	Model    *string
	Query    *string
	Schedule *string
	Enabled  *bool
}

// Update applies p. NextRun is recomputed when the schedule changes or the
// task is re-enabled, and cleared when it is disabled.
func (s *Service) Update(ctx context.Context, id string, p Patch) (*Task, error) {
	t, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	set := func(dst *string, v *string, field string) error {
		if v == nil {
			return nil
		}
		if strings.TrimSpace(*v) == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, field)
		}
		*dst = strings.TrimSpace(*v)
		return nil
	}
	if err := set(&t.Name, p.Name, "name"); err != nil {
		return nil, err
	}
	if err := set(&t.Model, p.Model, "model"); err != nil {
		return nil, err
	}
	if err := set(&t.Query, p.Query, "query"); err != nil {
		return nil, err
	}

	reschedule := false
	if p.Schedule != nil && strings.TrimSpace(*p.Schedule) != t.Schedule {
		if err := set(&t.Schedule, p.Schedule, "schedule"); err != nil {
			return nil, err
		}
		reschedule = true
	}
	if p.Enabled != nil && *p.Enabled != t.Enabled {
		t.Enabled = *p.Enabled
		reschedule = true
	}

	if reschedule {
		next, err := NextRun(t.Schedule, s.now().UTC())
		if err != nil {
			return nil, err
		}
		t.NextRun = time.Time{}
		if t.Enabled {
			t.NextRun = next
		}
	}

	if err := s.store.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Record stores the outcome of a run at ran and schedules the next one.
func (s *Service) Record(ctx context.Context, id string, ran time.Time, prompt string) (*Task, error) {
	t, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	t.LastRun = ran.UTC()
	if prompt != "" {
		t.LastPrompt = prompt
	}
	next, err := NextRun(t.Schedule, t.LastRun)
	if err != nil {
		return nil, err
	}
	if t.Enabled {
		t.NextRun = next
	}

	if err := s.store.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Task, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Task, error) {
	return s.store.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
