package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/roberta039/flight-search-3/internal/logger"
)

func fastRetry() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
	}
}

func getReq(url string) func(ctx context.Context) (*http.Request, error) {
	return func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	}
}

func TestTransportRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	tr := newTransport(time.Second, nil, fastRetry(), logger.Nop())

	var out struct {
		OK bool `json:"ok"`
	}
	if err := tr.getJSON(context.Background(), getReq(srv.URL), &out); err != nil {
		t.Fatalf("getJSON() error = %v", err)
	}
	if !out.OK {
		t.Error("response not decoded")
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("upstream called %d times, want 3", got)
	}
}

func TestTransportGivesUpAfterMaxAttempts(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	tr := newTransport(time.Second, nil, fastRetry(), logger.Nop())

	var out struct{}
	err := tr.getJSON(context.Background(), getReq(srv.URL), &out)
	if err == nil {
		t.Fatal("getJSON() error = nil, want failure")
	}
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Status != http.StatusInternalServerError {
		t.Errorf("getJSON() error = %v, want wrapped 500 StatusError", err)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("upstream called %d times, want 3", got)
	}
}

func TestTransportDoesNotRetryUnauthorized(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	tr := newTransport(time.Second, nil, fastRetry(), logger.Nop())

	var out struct{}
	err := tr.getJSON(context.Background(), getReq(srv.URL), &out)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("getJSON() error = %v, want ErrUnauthorized", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("upstream called %d times, want 1 (no retry on auth failure)", got)
	}
}

func TestTransportRetriesRateLimited(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	tr := newTransport(time.Second, nil, fastRetry(), logger.Nop())

	var out struct{}
	if err := tr.getJSON(context.Background(), getReq(srv.URL), &out); err != nil {
		t.Fatalf("getJSON() error = %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("upstream called %d times, want 2", got)
	}
}

func TestParseLocalTimeStripsOffsets(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
	}{
		{"2025-08-15T10:30:00", time.Date(2025, 8, 15, 10, 30, 0, 0, time.UTC)},
		{"2025-08-15T10:30:00Z", time.Date(2025, 8, 15, 10, 30, 0, 0, time.UTC)},
		{"2025-08-15T10:30:00+03:00", time.Date(2025, 8, 15, 10, 30, 0, 0, time.UTC)},
		{"2025-08-15T10:30:00-05:00", time.Date(2025, 8, 15, 10, 30, 0, 0, time.UTC)},
		{"2025-08-15T10:30", time.Date(2025, 8, 15, 10, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		got, err := parseLocalTime(tt.raw)
		if err != nil {
			t.Errorf("parseLocalTime(%q) error = %v", tt.raw, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("parseLocalTime(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}

	if _, err := parseLocalTime("yesterday"); err == nil {
		t.Error("parseLocalTime accepted garbage input")
	}
}
