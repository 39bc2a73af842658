// Package retry implements the bounded exponential backoff every outbound
// collaborator call uses. It never retries
// validation/not-found style failures — callers classify those themselves by
// returning a non-nil, non-retryable error from their own logic and simply
// not calling Do again.
package retry

import (
	"context"
	"time"
)

// Delays is the fixed backoff schedule applied between attempts: after the
// first attempt fails, wait 1s; after the second, 2s; after the third, 4s;
// the fourth attempt is the last one, with no further wait.
var Delays = []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}

// Permanent marks an error from a 4xx-style outbound response as a
// "Permanent external" failure: surfaced immediately, never
// retried.
type Permanent interface {
	Permanent() bool
}

// Do runs fn up to len(Delays)+1 times, sleeping the fixed schedule between
// attempts. It stops early and returns nil on the first success, returns
// immediately on an error satisfying Permanent, and returns the last error
// if every attempt fails. A cancelled ctx aborts immediately.
func Do(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 0; ; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if p, ok := err.(Permanent); ok && p.Permanent() {
			return err
		}
		if attempt >= len(Delays) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(Delays[attempt]):
		}
	}
}
