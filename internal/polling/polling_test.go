package polling_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mkidawa/smAIcznego/internal/polling"
)

func TestWaitImmediateSuccess(t *testing.T) {
	p := polling.Poller{Interval: time.Hour, Timeout: time.Hour}

	calls := 0
	err := p.Wait(context.Background(), func(context.Context) (bool, error) {
		calls++
		return true, nil
	})
	if err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected a single check before any tick, got %d", calls)
	}
}

func TestWaitEventualSuccess(t *testing.T) {
	p := polling.Poller{Interval: 5 * time.Millisecond, Timeout: time.Second}

	calls := 0
	err := p.Wait(context.Background(), func(context.Context) (bool, error) {
		calls++
		return calls >= 3, nil
	})
	if err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	if calls != 3 {
		t.Errorf("Expected 3 checks, got %d", calls)
	}
}

func TestWaitTimeout(t *testing.T) {
	p := polling.Poller{Interval: 5 * time.Millisecond, Timeout: 20 * time.Millisecond}

	err := p.Wait(context.Background(), func(context.Context) (bool, error) {
		return false, nil
	})
	if !errors.Is(err, polling.ErrTimeout) {
		t.Fatalf("Expected ErrTimeout, got %v", err)
	}
}

func TestWaitPropagatesCheckError(t *testing.T) {
	p := polling.Poller{Interval: time.Hour, Timeout: time.Hour}

	wantErr := errors.New("backend gone")
	err := p.Wait(context.Background(), func(context.Context) (bool, error) {
		return false, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("Expected check error, got %v", err)
	}
}

func TestWaitHonorsContext(t *testing.T) {
	p := polling.Poller{Interval: time.Hour, Timeout: time.Hour}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- p.Wait(ctx, func(context.Context) (bool, error) {
			return false, nil
		})
	}()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after cancellation")
	}
}

func TestProgressCapsBeforeCompletion(t *testing.T) {
	timeout := 100 * time.Millisecond

	// Far past the budget but not done: capped at 90.
	start := time.Now().Add(-time.Hour)
	if got := polling.Progress(start, timeout, false); got != 90 {
		t.Errorf("Expected capped progress 90, got %d", got)
	}

	if got := polling.Progress(time.Now(), timeout, true); got != 100 {
		t.Errorf("Expected 100 when done, got %d", got)
	}

	if got := polling.Progress(time.Now(), timeout, false); got > 10 {
		t.Errorf("Expected early progress near 0, got %d", got)
	}
}
