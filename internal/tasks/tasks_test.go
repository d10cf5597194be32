package tasks

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

var clock = time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	db, err := NewSQLiteStore(filepath.Join(t.TempDir(), "data", "tasks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": db,
	}
}

func newService(store Store) *Service {
	s := NewService(store)
	s.now = func() time.Time { return clock }
	return s
}

func TestStore(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			first := &Task{
				ID: "b", Name: "standup", Model: "gpt-4o", Query: "summarize my day",
				Schedule: "0 9 * * *", Enabled: true, CreatedAt: clock,
				NextRun: clock.Add(time.Hour),
			}
			second := &Task{
				ID: "a", Name: "weekly", Model: "claude-3-opus", Query: "plan the week",
				Schedule: "0 0 * * 0", CreatedAt: clock.Add(time.Minute),
			}
			require.NoError(t, store.Create(ctx, first))
			require.NoError(t, store.Create(ctx, second))
			assert.Error(t, store.Create(ctx, first))

			got, err := store.Get(ctx, "b")
			require.NoError(t, err)
			assert.Equal(t, "standup", got.Name)
			assert.True(t, got.Enabled)
			assert.True(t, got.CreatedAt.Equal(clock))
			assert.True(t, got.NextRun.Equal(clock.Add(time.Hour)))
			assert.True(t, got.LastRun.IsZero())

			_, err = store.Get(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)

			list, err := store.List(ctx)
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, "b", list[0].ID)
			assert.Equal(t, "a", list[1].ID)

			got.LastPrompt = "done"
			got.LastRun = clock
			require.NoError(t, store.Update(ctx, got))
			again, err := store.Get(ctx, "b")
			require.NoError(t, err)
			assert.Equal(t, "done", again.LastPrompt)
			assert.True(t, again.LastRun.Equal(clock))

			assert.ErrorIs(t, store.Update(ctx, &Task{ID: "missing"}), ErrNotFound)

			require.NoError(t, store.Delete(ctx, "a"))
			assert.ErrorIs(t, store.Delete(ctx, "a"), ErrNotFound)
			list, err = store.List(ctx)
			require.NoError(t, err)
			assert.Len(t, list, 1)
		})
	}
}

func TestStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Create(ctx, &Task{ID: "x", Name: "one"}))

	got, err := store.Get(ctx, "x")
	require.NoError(t, err)
	got.Name = "changed"

	again, err := store.Get(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, "one", again.Name)
}

func TestSQLiteStorePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tasks.db")

	db, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, db.Create(ctx, &Task{ID: "x", Name: "kept", CreatedAt: clock}))
	require.NoError(t, db.Close())

	db, err = NewSQLiteStore(path)
	require.NoError(t, err)
	defer db.Close()

	got, err := db.Get(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, "kept", got.Name)
}

func TestNextRun(t *testing.T) {
	tests := []struct {
		schedule string
		want     time.Time
	}{
		{"*/5 * * * *", time.Date(2026, 10, 16, 9, 35, 0, 0, time.UTC)},
		{"0,30 * * * *", time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)},
		{"0 * * * *", time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)},
		{"0 0 * * *", time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)},
		{"0 0 * * 0", time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)},
		{"0 0 1 * *", time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)},
		{"0 0 1 1 *", time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := NextRun(tt.schedule, clock)
		require.NoError(t, err, tt.schedule)
		assert.Equal(t, tt.want, got, tt.schedule)
	}

	for _, bad := range []string{CustomSchedule, "every day", "* * *", "61 * * * *"} {
		_, err := NextRun(bad, clock)
		assert.ErrorIs(t, err, ErrInvalidSchedule, bad)
	}
}

func TestFrequenciesParse(t *testing.T) {
	for _, f := range Frequencies {
		if f.Value == CustomSchedule {
			continue
		}
		_, err := NextRun(f.Value, clock)
		assert.NoError(t, err, f.Label)
	}
}

func TestServiceCreate(t *testing.T) {
	ctx := context.Background()
	svc := newService(NewMemoryStore())

	task, err := svc.Create(ctx, CreateRequest{
		Name: " standup ", Model: "gpt-4o", Query: "summarize", Schedule: "*/15 * * * *",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "standup", task.Name)
	assert.True(t, task.Enabled)
	assert.Equal(t, clock, task.CreatedAt)
	assert.Equal(t, clock.Add(15*time.Minute), task.NextRun)

	disabled := false
	task, err = svc.Create(ctx, CreateRequest{
		Name: "off", Model: "gpt-4o", Query: "q", Schedule: "0 0 * * *", Enabled: &disabled,
	})
	require.NoError(t, err)
	assert.False(t, task.Enabled)
	assert.True(t, task.NextRun.IsZero())

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestServiceCreateValidation(t *testing.T) {
	svc := newService(NewMemoryStore())
	valid := CreateRequest{Name: "n", Model: "m", Query: "q", Schedule: "0 * * * *"}

	tests := []struct {
		name   string
		modify func(*CreateRequest)
		want   error
		field  string
	}{
		{"missing name", func(r *CreateRequest) { r.Name = " " }, ErrMissingField, "name"},
		{"missing model", func(r *CreateRequest) { r.Model = "" }, ErrMissingField, "model"},
		{"missing query", func(r *CreateRequest) { r.Query = "" }, ErrMissingField, "query"},
		{"missing schedule", func(r *CreateRequest) { r.Schedule = "" }, ErrMissingField, "schedule"},
		{"custom placeholder", func(r *CreateRequest) { r.Schedule = CustomSchedule }, ErrInvalidSchedule, ""},
		{"bad cron", func(r *CreateRequest) { r.Schedule = "soon" }, ErrInvalidSchedule, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.modify(&req)
			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, tt.want)
			if tt.field != "" {
				assert.Contains(t, err.Error(), tt.field)
			}
		})
	}
}

func TestServiceUpdate(t *testing.T) {
	ctx := context.Background()
	svc := newService(NewMemoryStore())
	task, err := svc.Create(ctx, CreateRequest{Name: "n", Model: "m", Query: "q", Schedule: "0 * * * *"})
	require.NoError(t, err)

	name := "renamed"
	got, err := svc.Update(ctx, task.ID, Patch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Name)
	assert.Equal(t, task.NextRun, got.NextRun)

	schedule := "*/5 * * * *"
	got, err = svc.Update(ctx, task.ID, Patch{Schedule: &schedule})
	require.NoError(t, err)
	assert.Equal(t, clock.Add(5*time.Minute), got.NextRun)

	off := false
	got, err = svc.Update(ctx, task.ID, Patch{Enabled: &off})
	require.NoError(t, err)
	assert.False(t, got.Enabled)
	assert.True(t, got.NextRun.IsZero())

	on := true
	got, err = svc.Update(ctx, task.ID, Patch{Enabled: &on})
	require.NoError(t, err)
	assert.Equal(t, clock.Add(5*time.Minute), got.NextRun)

	blank := ""
	_, err = svc.Update(ctx, task.ID, Patch{Query: &blank})
	assert.ErrorIs(t, err, ErrMissingField)

	bad := "whenever"
	_, err = svc.Update(ctx, task.ID, Patch{Schedule: &bad})
	assert.ErrorIs(t, err, ErrInvalidSchedule)

	stored, err := svc.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "q", stored.Query)
	assert.Equal(t, "*/5 * * * *", stored.Schedule)

	_, err = svc.Update(ctx, "missing", Patch{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRunnerRunDue(t *testing.T) {
	ctx := context.Background()
	svc := newService(NewMemoryStore())

	hourly, err := svc.Create(ctx, CreateRequest{Name: "hourly", Model: "m", Query: "hour", Schedule: "0 * * * *"})
	require.NoError(t, err)
	daily, err := svc.Create(ctx, CreateRequest{Name: "daily", Model: "m", Query: "day", Schedule: "0 0 * * *"})
	require.NoError(t, err)

	var calls atomic.Int32
	runner := NewRunner(svc, func(_ context.Context, t *Task) (string, error) {
		calls.Add(1)
		return "prompt for " + t.Query, nil
	}, WithConcurrency(2))

	now := time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)
	n, err := runner.RunDue(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.EqualValues(t, 1, calls.Load())

	got, err := svc.Get(ctx, hourly.ID)
	require.NoError(t, err)
	assert.Equal(t, "prompt for hour", got.LastPrompt)
	assert.Equal(t, now, got.LastRun)
	assert.Equal(t, now.Add(time.Hour), got.NextRun)

	got, err = svc.Get(ctx, daily.ID)
	require.NoError(t, err)
	assert.True(t, got.LastRun.IsZero())

	n, err = runner.RunDue(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRunnerReschedulesFailedRun(t *testing.T) {
	ctx := context.Background()
	svc := newService(NewMemoryStore())
	task, err := svc.Create(ctx, CreateRequest{Name: "n", Model: "m", Query: "q", Schedule: "0 * * * *"})
	require.NoError(t, err)

	runner := NewRunner(svc, func(context.Context, *Task) (string, error) {
		return "", errors.New("no service")
	})

	now := time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)
	n, err := runner.RunDue(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := svc.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Empty(t, got.LastPrompt)
	assert.Equal(t, now.Add(time.Hour), got.NextRun)
}

func TestRunnerRunDueKeepsOthersOnRecordError(t *testing.T) {
	ctx := context.Background()
	svc := newService(NewMemoryStore())

	gone, err := svc.Create(ctx, CreateRequest{Name: "gone", Model: "m", Query: "gone", Schedule: "0 * * * *"})
	require.NoError(t, err)
	kept, err := svc.Create(ctx, CreateRequest{Name: "kept", Model: "m", Query: "kept", Schedule: "0 * * * *"})
	require.NoError(t, err)

	deleted := make(chan struct{})
	runner := NewRunner(svc, func(ctx context.Context, t *Task) (string, error) {
		if t.ID == gone.ID {
			defer close(deleted)
			return "lost", svc.Delete(ctx, t.ID)
		}
		<-deleted
		time.Sleep(20 * time.Millisecond)
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return "ok", nil
	}, WithConcurrency(2))

	now := time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)
	n, err := runner.RunDue(ctx, now)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, n)

	got, err := svc.Get(ctx, kept.ID)
	require.NoError(t, err)
	assert.Equal(t, "ok", got.LastPrompt)
	assert.Equal(t, now.Add(time.Hour), got.NextRun)
}

func TestRunnerRunNow(t *testing.T) {
	ctx := context.Background()
	svc := newService(NewMemoryStore())
	task, err := svc.Create(ctx, CreateRequest{Name: "n", Model: "m", Query: "q", Schedule: "0 0 1 1 *"})
	require.NoError(t, err)

	runner := NewRunner(svc, func(context.Context, *Task) (string, error) { return "now", nil })
	got, err := runner.RunNow(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "now", got.LastPrompt)
	assert.False(t, got.LastRun.IsZero())

	failing := NewRunner(svc, func(context.Context, *Task) (string, error) { return "", errors.New("boom") })
	_, err = failing.RunNow(ctx, task.ID)
	assert.Error(t, err)

	_, err = runner.RunNow(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRunnerStartStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	runner := NewRunner(newService(NewMemoryStore()), func(context.Context, *Task) (string, error) {
		return "", nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runner.Start(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("runner did not stop")
	}
}
