package otlpcommon

import (
	"context"
	"net/http"
	"testing"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func grpcUnavailableErr() error {
	return status.Error(codes.Unavailable, "collector unavailable")
}

// TestRetryPolicySucceedsAfterTransientFailures is §8 scenario 5 verbatim:
// maxRetries=3, baseDelay=100ms, the collector returns 503 twice then 200;
// export succeeds after 3 attempts with elapsed wall time >= 100ms + 200ms.
func TestRetryPolicySucceedsAfterTransientFailures(t *testing.T) {
	policy := RetryPolicy{BaseDelay: 100 * time.Millisecond, MaxDelay: time.Second, MaxRetries: 3}

	attempts := 0
	start := time.Now()
	err := policy.Do(context.Background(), func(ctx context.Context) (time.Duration, error) {
		attempts++
		if attempts < 3 {
			return 0, &HTTPStatusError{StatusCode: http.StatusServiceUnavailable}
		}
		return 0, nil
	})
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("Do() = %v, want nil", err)
	}
	if attempts != 3 {
		t.Fatalf("attempts = %d, want 3", attempts)
	}
	if elapsed < 300*time.Millisecond {
		t.Fatalf("elapsed = %s, want >= 300ms (100ms + 200ms per §8 scenario 5)", elapsed)
	}
}

func TestRetryPolicyStopsOnNonRetryableStatus(t *testing.T) {
	policy := RetryPolicy{BaseDelay: time.Millisecond, MaxDelay: time.Millisecond, MaxRetries: 5}

	attempts := 0
	err := policy.Do(context.Background(), func(ctx context.Context) (time.Duration, error) {
		attempts++
		return 0, &HTTPStatusError{StatusCode: http.StatusBadRequest}
	})

	if err == nil {
		t.Fatal("Do() = nil, want PermanentError")
	}
	var perm *PermanentError
	if !asPermanentError(err, &perm) {
		t.Fatalf("err = %v, want *PermanentError", err)
	}
	if attempts != 1 {
		t.Fatalf("attempts = %d, want 1 (no retry on permanent error)", attempts)
	}
}

func TestRetryPolicyExhaustsMaxRetries(t *testing.T) {
	policy := RetryPolicy{BaseDelay: time.Millisecond, MaxDelay: time.Millisecond, MaxRetries: 2}

	attempts := 0
	err := policy.Do(context.Background(), func(ctx context.Context) (time.Duration, error) {
		attempts++
		return 0, &HTTPStatusError{StatusCode: http.StatusServiceUnavailable}
	})

	if err == nil {
		t.Fatal("Do() = nil, want error after exhausting retries")
	}
	if attempts != 3 {
		t.Fatalf("attempts = %d, want 3 (1 initial + 2 retries)", attempts)
	}
}

func TestIsRetryableGRPCCodes(t *testing.T) {
	if !IsRetryable(grpcUnavailableErr()) {
		t.Fatal("Unavailable should be retryable")
	}
}

func asPermanentError(err error, target **PermanentError) bool {
	pe, ok := err.(*PermanentError)
	if ok {
		*target = pe
	}
	return ok
}
