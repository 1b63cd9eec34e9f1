package fetch

import (
	"context"
	"time"
)

// Backoff decides how long to wait before retry attempt n (1-based).
type Backoff interface {
	Delay(attempt int) time.Duration
}

// FixedBackoff waits the same duration between every attempt.
type FixedBackoff time.Duration

func (b FixedBackoff) Delay(int) time.Duration { return time.Duration(b) }

// ExponentialBackoff doubles the base delay per attempt, capped at Max.
type ExponentialBackoff struct {
	Base time.Duration
	Max  time.Duration
}

func (b ExponentialBackoff) Delay(attempt int) time.Duration {
	d := b.Base
	for i := 1; i < attempt; i++ {
		d *= 2
		if b.Max > 0 && d >= b.Max {
			return b.Max
		}
	}
	return d
}

type retryState int

const (
	stateAttempting retryState = iota
	stateRetrying
	stateSucceeded
	stateFailed
)

// RetryPolicy runs an attempt function until it succeeds, fails permanently,
// or exhausts MaxRetries. It is independent of HTTP so the policy can be
// tested against synthetic attempt outcomes.
type RetryPolicy struct {
	MaxRetries     int           // retries after the first attempt
	Backoff        Backoff       // delay between transient retries
	RateLimitDelay time.Duration // delay after a 429 before resuming
}

// Run invokes attempt until the state machine reaches Succeeded or Failed.
// attempt must return nil or a *Error; the returned *Error has Attempts
// stamped with the number of attempts performed.
func (p RetryPolicy) Run(ctx context.Context, attempt func(ctx context.Context) *Error) *Error {
	state := stateAttempting
	attempts := 0
	var last *Error

	for {
		switch state {
		case stateAttempting:
			attempts++
			last = attempt(ctx)
			if last == nil {
				state = stateSucceeded
				break
			}
			switch {
			case last.Kind == Permanent:
				state = stateFailed
			case attempts > p.MaxRetries:
				state = stateFailed
			default:
				state = stateRetrying
			}

		case stateRetrying:
			delay := time.Duration(0)
			if last.Kind == RateLimited {
				delay = p.RateLimitDelay
			} else if p.Backoff != nil {
				delay = p.Backoff.Delay(attempts)
			}
			if err := sleep(ctx, delay); err != nil {
				last = &Error{Kind: Permanent, URL: last.URL, Attempts: attempts, Err: err}
				state = stateFailed
				break
			}
			state = stateAttempting

		case stateSucceeded:
			return nil

		case stateFailed:
			last.Attempts = attempts
			return last
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
