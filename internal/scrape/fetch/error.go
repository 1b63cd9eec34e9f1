package fetch

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	// Transient failures (timeouts, resets, 5xx) are worth retrying.
	Transient ErrorKind = iota
	// Permanent failures (4xx other than 429) will not improve with retries.
	Permanent
	// RateLimited means the site asked us to back off (429).
	RateLimited
)

func (k ErrorKind) String() string {
	switch k {
	case Transient:
		return "transient"
	case Permanent:
		return "permanent"
	case RateLimited:
		return "rate-limited"
	}
	return "unknown"
}

// Error is the typed failure returned by Client.Fetch after the retry policy
// has run its course.
type Error struct {
	Kind     ErrorKind
	URL      string
	Status   int       // last HTTP status, 0 if the request never completed
	Attempts int       // attempts actually performed
	Err      error     // underlying cause, may be nil for pure status failures
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s after %d attempt(s): %v", e.URL, e.Kind, e.Attempts, e.Err)
	}
	return fmt.Sprintf("fetch %s: %s after %d attempt(s): status %d", e.URL, e.Kind, e.Attempts, e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the error kind from any error returned by Fetch.
// Non-fetch errors (e.g. context cancellation) report Permanent so callers
// stop immediately.
func KindOf(err error) ErrorKind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return Permanent
}
