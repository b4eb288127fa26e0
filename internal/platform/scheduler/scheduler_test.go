package scheduler

import (
	"context"
	"errors"
	"testing"
)

func TestRunAllInvokesEveryEntry(t *testing.T) {
	sched := New(nil, nil)
	var calls []string
	entries := []EntryPoint{
		{Name: "first", Spec: "@daily", Run: func(context.Context) (int, error) {
			calls = append(calls, "first")
			return 2, nil
		}},
		{Name: "second", Spec: "@daily", Run: func(context.Context) (int, error) {
			calls = append(calls, "second")
			return 0, errors.New("boom")
		}},
		{Name: "third", Spec: "@daily", Run: func(context.Context) (int, error) {
			calls = append(calls, "third")
			return 1, nil
		}},
	}

	sched.RunAll(context.Background(), entries)

	if len(calls) != 3 {
		t.Fatalf("expected all entries to run, got %v", calls)
	}
	if calls[0] != "first" || calls[1] != "second" || calls[2] != "third" {
		t.Fatalf("expected registration order, got %v", calls)
	}
}

func TestRegisterRejectsBadSpec(t *testing.T) {
	sched := New(nil, nil)
	err := sched.Register(EntryPoint{
		Name: "broken",
		Spec: "not a cron spec",
		Run:  func(context.Context) (int, error) { return 0, nil },
	})
	if err == nil {
		t.Fatalf("expected invalid spec to be rejected")
	}
}
