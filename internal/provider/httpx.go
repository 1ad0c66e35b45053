package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/roberta039/flight-search-3/internal/cache"
	"github.com/roberta039/flight-search-3/internal/logger"
)

var (
	// ErrUnauthorized signals an expired or invalid credential; clients
	// refresh their token once and retry before giving up.
	ErrUnauthorized = errors.New("provider rejected credentials")
	// ErrRateLimited signals an upstream 429 that survived the retry budget.
	ErrRateLimited = errors.New("provider rate limit exceeded")
)

// StatusError is a non-retryable upstream HTTP failure.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Status, e.Body)
}

// RetryPolicy bounds the transport's transient-failure handling: up to
// MaxAttempts tries with exponential backoff between them.
type RetryPolicy struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:    3,
		InitialBackoff: 500 * time.Millisecond,
		MaxBackoff:     5 * time.Second,
	}
}

// transport wraps one provider's HTTP calls with the advisory limiter
// protocol (wait, then record one call per real request), bounded retries
// for transient failures, and Retry-After handling on 429.
type transport struct {
	client  *http.Client
	limiter *cache.RateLimiter
	retry   RetryPolicy
	log     logger.Logger
}

func newTransport(timeout time.Duration, limiter *cache.RateLimiter, retry RetryPolicy, log logger.Logger) *transport {
	return &transport{
		client:  &http.Client{Timeout: timeout},
		limiter: limiter,
		retry:   retry,
		log:     log,
	}
}

// getJSON runs build -> do -> decode with the full retry protocol. build is
// invoked per attempt so request bodies are never reused. A 401/403 returns
// ErrUnauthorized without retrying; token refresh is the caller's job.
func (t *transport) getJSON(ctx context.Context, build func(ctx context.Context) (*http.Request, error), out any) error {
	backoff := t.retry.InitialBackoff
	var lastErr error

	for attempt := 1; attempt <= t.retry.MaxAttempts; attempt++ {
		if attempt > 1 {
			if err := sleepCtx(ctx, backoff); err != nil {
				return err
			}
			backoff = minDuration(backoff*2, t.retry.MaxBackoff)
		}

		if t.limiter != nil {
			if wait := t.limiter.WaitTime(); wait > 0 {
				t.log.Debug("rate limit backoff", logger.Duration("wait", wait))
				if err := sleepCtx(ctx, wait); err != nil {
					return err
				}
			}
		}

		req, err := build(ctx)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}

		if t.limiter != nil {
			t.limiter.RecordCall()
		}

		resp, err := t.client.Do(req)
		if err != nil {
			// Timeouts and connection resets are transient.
			lastErr = err
			t.log.Warn("request failed",
				logger.Int("attempt", attempt),
				logger.Error(err))
			continue
		}

		done, err := t.handleResponse(resp, out)
		if done {
			return err
		}
		lastErr = err

		// 429 overrides the exponential schedule when upstream told us
		// how long to wait.
		if retryAfter := retryAfterHint(resp); retryAfter > 0 {
			backoff = retryAfter
		}
	}

	return fmt.Errorf("giving up after %d attempts: %w", t.retry.MaxAttempts, lastErr)
}

// handleResponse decodes or classifies one response. done=false means the
// caller should retry.
func (t *transport) handleResponse(resp *http.Response, out any) (done bool, err error) {
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		t.log.Warn("upstream rate limited", logger.Int("status", resp.StatusCode))
		return false, ErrRateLimited

	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return true, ErrUnauthorized

	case resp.StatusCode >= 500:
		return false, &StatusError{Status: resp.StatusCode}

	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return true, &StatusError{Status: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return true, fmt.Errorf("decode response: %w", err)
	}
	return true, nil
}

// retryAfterHint reads the Retry-After header as delay seconds.
func retryAfterHint(resp *http.Response) time.Duration {
	raw := resp.Header.Get("Retry-After")
	if raw == "" {
		return 0
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return 0
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
