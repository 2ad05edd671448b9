package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable marks a backend that could not be reached.
var ErrUnavailable = errors.New("cache backend unavailable")

// transientError marks a failure worth retrying.
type transientError struct{ err error }

func (e transientError) Error() string { return e.err.Error() }
func (e transientError) Unwrap() error { return e.err }

// Transient marks err as retryable by Backoff.Do. A nil err stays nil.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return transientError{err}
}

// IsTransient reports whether err, or an error it wraps, was marked with
// Transient.
func IsTransient(err error) bool {
	var t transientError
	return errors.As(err, &t)
}

// Backoff retries transient backend failures with exponentially growing
// pauses. Generation itself is never retried; only cache I/O is.
type Backoff struct {
	Attempts int           // total tries, including the first
	Initial  time.Duration // pause after the first failure
	Max      time.Duration // upper bound on a single pause; zero means none
}

// DefaultBackoff makes three attempts, pausing 100ms then 200ms.
var DefaultBackoff = Backoff{Attempts: 3, Initial: 100 * time.Millisecond, Max: time.Second}

// Do calls fn until it succeeds, returns a non-transient error, the attempts
// run out or ctx is done. It returns fn's last error, or ctx.Err().
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	pause := b.Initial
	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil || !IsTransient(err) || attempt >= b.Attempts {
			return err
		}

		t := time.NewTimer(pause)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		pause *= 2
		if b.Max > 0 && pause > b.Max {
			pause = b.Max
		}
	}
}
