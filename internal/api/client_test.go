package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"
)

// TestNewClient tests client construction with various options.
func TestNewClient(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		c := NewClient("https://api.example.com", "test-agent")

		if c.baseURL != "https://api.example.com" {
			t.Errorf("baseURL = %q, want %q", c.baseURL, "https://api.example.com")
		}
		if c.userAgent != "test-agent" {
			t.Errorf("userAgent = %q, want %q", c.userAgent, "test-agent")
		}
		if c.httpClient.Timeout != 30*time.Second {
			t.Errorf("Timeout = %v, want %v", c.httpClient.Timeout, 30*time.Second)
		}
		if c.maxAttempts != 3 {
			t.Errorf("maxAttempts = %d, want %d", c.maxAttempts, 3)
		}
		if c.cooldown != 65*time.Second {
			t.Errorf("cooldown = %v, want %v", c.cooldown, 65*time.Second)
		}
		if c.logger == nil {
			t.Error("logger should not be nil")
		}
	})

	t.Run("with timeout option", func(t *testing.T) {
		c := NewClient("https://api.example.com", "", WithTimeout(5*time.Second))
		if c.httpClient.Timeout != 5*time.Second {
			t.Errorf("Timeout = %v, want %v", c.httpClient.Timeout, 5*time.Second)
		}
	})

	t.Run("with retry option", func(t *testing.T) {
		c := NewClient("https://api.example.com", "", WithRetry(5, 2*time.Second))
		if c.maxAttempts != 5 {
			t.Errorf("maxAttempts = %d, want %d", c.maxAttempts, 5)
		}
		if c.cooldown != 2*time.Second {
			t.Errorf("cooldown = %v, want %v", c.cooldown, 2*time.Second)
		}
	})

	t.Run("with logger option", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		c := NewClient("https://api.example.com", "", WithLogger(logger))
		if c.logger != logger {
			t.Error("logger not set correctly")
		}
	})

	t.Run("with custom HTTP client", func(t *testing.T) {
		customClient := &http.Client{Timeout: 10 * time.Second}
		c := NewClient("https://api.example.com", "", WithHTTPClient(customClient))
		if c.httpClient != customClient {
			t.Error("custom HTTP client not set")
		}
	})
}

// TestAPIError tests the APIError type.
func TestAPIError(t *testing.T) {
	t.Run("Error method", func(t *testing.T) {
		err := &APIError{
			StatusCode: 404,
			Message:    "Not Found",
			Body:       []byte(`{"error": "coin not found"}`),
		}
		expected := "coingecko api error 404: Not Found"
		if err.Error() != expected {
			t.Errorf("Error() = %q, want %q", err.Error(), expected)
		}
	})

	t.Run("IsRetryable only for 429", func(t *testing.T) {
		tests := []struct {
			code     int
			expected bool
		}{
			{429, true},
			{500, false},
			{502, false},
			{503, false},
			{400, false},
			{401, false},
			{404, false},
			{200, false},
		}

		for _, tt := range tests {
			err := &APIError{StatusCode: tt.code}
			if got := err.IsRetryable(); got != tt.expected {
				t.Errorf("IsRetryable() for status %d = %v, want %v", tt.code, got, tt.expected)
			}
		}
	})
}

// TestDoWithRetry tests the bounded rate-limit retry loop.
func TestDoWithRetry(t *testing.T) {
	t.Run("succeeds after rate limits", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) <= 2 {
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			w.Write([]byte(`{"ok": true}`))
		}))
		defer server.Close()

		c := NewClient(server.URL, "", WithRetry(3, time.Millisecond))
		body, err := c.doWithRetry(context.Background(), "/test", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(body) != `{"ok": true}` {
			t.Errorf("body = %q, want %q", body, `{"ok": true}`)
		}
		if calls.Load() != 3 {
			t.Errorf("calls = %d, want 3", calls.Load())
		}
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		c := NewClient(server.URL, "", WithRetry(3, time.Millisecond))
		_, err := c.doWithRetry(context.Background(), "/test", nil)
		if err == nil {
			t.Fatal("expected error after sustained rate limiting")
		}
		if calls.Load() != 3 {
			t.Errorf("calls = %d, want 3", calls.Load())
		}

		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("error %v should wrap *APIError", err)
		}
		if apiErr.StatusCode != http.StatusTooManyRequests {
			t.Errorf("StatusCode = %d, want 429", apiErr.StatusCode)
		}
	})

	t.Run("does not retry other statuses", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		c := NewClient(server.URL, "", WithRetry(3, time.Millisecond))
		_, err := c.doWithRetry(context.Background(), "/test", nil)
		if err == nil {
			t.Fatal("expected error")
		}
		if calls.Load() != 1 {
			t.Errorf("calls = %d, want 1 (no retry on 500)", calls.Load())
		}
	})

	t.Run("does not retry transport errors", func(t *testing.T) {
		c := NewClient("http://127.0.0.1:0", "", WithRetry(3, time.Millisecond))
		_, err := c.doWithRetry(context.Background(), "/test", nil)
		if err == nil {
			t.Fatal("expected transport error")
		}
	})

	t.Run("cancellable during cooldown", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		c := NewClient(server.URL, "", WithRetry(3, time.Hour))

		errCh := make(chan error, 1)
		go func() {
			_, err := c.doWithRetry(ctx, "/test", nil)
			errCh <- err
		}()

		time.Sleep(50 * time.Millisecond)
		cancel()

		select {
		case err := <-errCh:
			if !errors.Is(err, context.Canceled) {
				t.Errorf("error = %v, want context.Canceled", err)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("doWithRetry did not return after cancellation")
		}
	})

	t.Run("sends identification header", func(t *testing.T) {
		var gotAgent string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAgent = r.Header.Get("User-Agent")
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		c := NewClient(server.URL, "Mozilla/5.0 (CryptoGameDataFetcher/1.1)")
		if _, err := c.doWithRetry(context.Background(), "/test", nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotAgent != "Mozilla/5.0 (CryptoGameDataFetcher/1.1)" {
			t.Errorf("User-Agent = %q, want identification header", gotAgent)
		}
	})
}
