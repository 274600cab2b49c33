package llm

import (
	"context"
	"errors"
	"net"
	"time"

	"google.golang.org/api/googleapi"
)

// RetryPolicy bounds retries of transient model-call failures with
// exponential backoff.
type RetryPolicy struct {
	MaxRetries uint64
	Backoff    time.Duration
}

// Transient reports whether the error is worth retrying. Rate limits,
// server-side failures, and network timeouts are transient; everything else
// (including context cancellation) is permanent.
func Transient(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 408, 429, 500, 502, 503, 504:
			return true
		}
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	return false
}
