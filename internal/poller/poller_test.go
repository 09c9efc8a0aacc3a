package poller

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestEligible(t *testing.T) {
	for _, status := range []string{"queued", "processing"} {
		if !Eligible(status) {
			t.Errorf("status %q should keep polling active", status)
		}
	}
	for _, status := range []string{"completed", "failed", "uploaded", ""} {
		if Eligible(status) {
			t.Errorf("status %q should stop polling", status)
		}
	}
}

func TestRunStopsImmediatelyOnTerminalStatus(t *testing.T) {
	calls := 0
	p := New(time.Hour, func(ctx context.Context) (string, error) {
		calls++
		return "completed", nil
	})

	status, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != "completed" || calls != 1 {
		t.Errorf("status = %q after %d calls, want completed after 1", status, calls)
	}
	if p.State() != StateStopped {
		t.Errorf("state = %v, want StateStopped", p.State())
	}
}

func TestRunPollsUntilStatusLeavesEligibleSet(t *testing.T) {
	statuses := []string{"queued", "processing", "processing", "completed"}
	calls := 0
	p := New(time.Millisecond, func(ctx context.Context) (string, error) {
		s := statuses[calls]
		calls++
		return s, nil
	})

	status, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != "completed" {
		t.Errorf("status = %q, want completed", status)
	}
	if calls != len(statuses) {
		t.Errorf("fetch called %d times, want %d", calls, len(statuses))
	}
}

func TestRunRetriesAfterFetchErrors(t *testing.T) {
	calls := 0
	p := New(time.Millisecond, func(ctx context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("transient")
		}
		return "failed", nil
	})

	status, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("transient fetch errors must not end the watch: %v", err)
	}
	if status != "failed" || calls != 3 {
		t.Errorf("status = %q after %d calls, want failed after 3", status, calls)
	}
}

func TestRunHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := New(time.Hour, func(ctx context.Context) (string, error) {
		return "processing", nil
	})

	done := make(chan struct{})
	var err error
	go func() {
		_, err = p.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
