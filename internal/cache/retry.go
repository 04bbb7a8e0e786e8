package cache

import (
	"context"
	"time"

	"github.com/runoshun/taskline/internal/domain"
)

// Retry limits.
const (
	MaxQueryRetries    = 3
	MaxMutationRetries = 1
	BaseBackoff        = time.Second
	MaxBackoff         = 30 * time.Second
)

// RetryPolicy reports whether a call that has failed failures times (counting
// the failure err) should be retried.
type RetryPolicy func(failures int, err error) bool

// ShouldRetryQuery retries server and unclassified errors up to MaxQueryRetries
// times. Client and network errors are never retried.
func ShouldRetryQuery(failures int, err error) bool {
	return retryable(err) && failures <= MaxQueryRetries
}

// ShouldRetryMutation retries server and unclassified errors once.
func ShouldRetryMutation(failures int, err error) bool {
	return retryable(err) && failures <= MaxMutationRetries
}

func retryable(err error) bool {
	switch domain.Classify(err) {
	case domain.KindServer, domain.KindUnknown:
		return true
	default:
		return false
	}
}

// Backoff returns the wait before retry number retry (1-based):
// 1s, 2s, 4s, 8s ... capped at MaxBackoff.
func Backoff(retry int) time.Duration {
	if retry < 1 {
		retry = 1
	}
	d := BaseBackoff
	for i := 1; i < retry; i++ {
		d *= 2
		if d >= MaxBackoff {
			return MaxBackoff
		}
	}
	return d
}

func runWithRetry(ctx context.Context, c *Client, name string, policy RetryPolicy, fn func(ctx context.Context) (any, error)) (any, error) {
	for failures := 1; ; failures++ {
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		if ctx.Err() != nil || !policy(failures, err) {
			return nil, err
		}
		wait := Backoff(failures)
		c.log.Debug("retrying", "call", name, "failures", failures, "wait", wait, "error", err)
		if serr := c.sleep(ctx, wait); serr != nil {
			return nil, err
		}
	}
}
