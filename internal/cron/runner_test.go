package cronrunner

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestRunnerAdd(t *testing.T) {
	t.Run("invalid_spec", func(t *testing.T) {
		r := New(zap.NewNop(), context.Background())
		if _, err := r.Add("bad", "not a schedule", func(context.Context) {}); err == nil {
			t.Error("expected error for invalid spec")
		}
		if _, err := r.Add("five_fields", "*/15 * * * *", func(context.Context) {}); err == nil {
			t.Error("expected error for spec without seconds field")
		}
	})

	t.Run("valid_spec", func(t *testing.T) {
		r := New(nil, nil)
		if _, err := r.Add("sweep", "0 */15 * * * *", func(context.Context) {}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.Entries() != 1 {
			t.Errorf("expected 1 entry, got %d", r.Entries())
		}
	})
}

func TestRunnerRunsJobs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32
	var sawCtx atomic.Bool
	r := New(zap.NewNop(), ctx)
	if _, err := r.Add("tick", "* * * * * *", func(jobCtx context.Context) {
		if jobCtx == ctx {
			sawCtx.Store(true)
		}
		runs.Add(1)
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r.Start()
	deadline := time.Now().Add(3 * time.Second)
	for runs.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}
	r.Stop()

	if runs.Load() == 0 {
		t.Fatal("expected job to run at least once")
	}
	if !sawCtx.Load() {
		t.Error("expected job to receive the base context")
	}
}

func TestRunnerRecoversPanics(t *testing.T) {
	var runs atomic.Int32
	r := New(zap.NewNop(), context.Background())
	if _, err := r.Add("panics", "* * * * * *", func(context.Context) {
		runs.Add(1)
		panic("boom")
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r.Start()
	deadline := time.Now().Add(3 * time.Second)
	for runs.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}
	r.Stop()

	if runs.Load() == 0 {
		t.Fatal("expected panicking job to have run")
	}
}
