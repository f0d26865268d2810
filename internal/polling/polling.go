package polling

import (
	"context"
	"errors"
	"time"
)

// ErrTimeout is returned when the overall polling budget lapses before the
// checked operation reaches a terminal state. The underlying operation is
// left as-is; it may still complete later.
var ErrTimeout = errors.New("polling timed out")

// CheckFunc inspects the polled operation once. done=true stops polling;
// a non-nil error stops polling and is returned to the caller.
type CheckFunc func(ctx context.Context) (done bool, err error)

// Poller repeats a check on a fixed interval until it reports done, fails,
// or the timeout lapses.
type Poller struct {
	Interval time.Duration
	Timeout  time.Duration
}

// Wait runs check immediately and then on every interval tick. It honors
// ctx cancellation in addition to the time-based budget.
func (p Poller) Wait(ctx context.Context, check CheckFunc) error {
	deadline := time.Now().Add(p.Timeout)

	done, err := check(ctx)
	if err != nil {
		return err
	}
	if done {
		return nil
	}

	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if time.Now().After(deadline) {
				return ErrTimeout
			}
			done, err := check(ctx)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		}
	}
}

// Progress estimates completion as the elapsed fraction of the timeout
// budget, capped at 90 until the operation is terminal, then snapped to 100.
// A UX heuristic, not a correctness signal.
func Progress(start time.Time, timeout time.Duration, done bool) int {
	if done {
		return 100
	}
	if timeout <= 0 {
		return 0
	}
	pct := int(float64(time.Since(start)) / float64(timeout) * 100)
	if pct > 90 {
		pct = 90
	}
	if pct < 0 {
		pct = 0
	}
	return pct
}
