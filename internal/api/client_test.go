package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestGetUserStats(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/users/stats" {
			t.Errorf("path = %q, want /api/users/stats", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"points_today": 450, "heartbeats": 6, "rank": "silver"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "tok-123")
	stats, err := client.GetUserStats(context.Background())
	if err != nil {
		t.Fatalf("GetUserStats failed: %v", err)
	}

	if stats.PointsToday != 450 {
		t.Errorf("PointsToday = %d, want 450", stats.PointsToday)
	}
	if stats.Heartbeats != 6 {
		t.Errorf("Heartbeats = %d, want 6", stats.Heartbeats)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
}

func TestGetUserStats_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"points_today": 75, "heartbeats": 1}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "tok",
		WithRetries(3, time.Millisecond),
	)

	stats, err := client.GetUserStats(context.Background())
	if err != nil {
		t.Fatalf("GetUserStats failed: %v", err)
	}
	if stats.PointsToday != 75 {
		t.Errorf("PointsToday = %d, want 75", stats.PointsToday)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("server called %d times, want 3", got)
	}
}

func TestGetUserStats_NoRetryOnClientError(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL, "bad-token",
		WithRetries(3, time.Millisecond),
	)

	_, err := client.GetUserStats(context.Background())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want 401", apiErr.StatusCode)
	}
	if apiErr.IsRetryable() {
		t.Error("401 should not be retryable")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("server called %d times, want 1", got)
	}
}

func TestGetUserStats_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, "tok",
		WithRetries(5, time.Hour), // Retry wait far longer than the test
	)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := client.GetUserStats(ctx)
	if err == nil {
		t.Fatal("expected error")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("cancellation took %v, want prompt", elapsed)
	}
}
