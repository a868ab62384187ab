package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	if m.Counter == nil {
		t.Fatal("expected counter metric to have Counter field")
	}
	return m.GetCounter().GetValue()
}

func histogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T does not implement prometheus.Metric", o)
	}
	var m dto.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("histogram Write() error: %v", err)
	}
	if m.Histogram == nil {
		t.Fatal("expected histogram metric to have Histogram field")
	}
	return m.GetHistogram().GetSampleCount()
}

func TestMetrics_RequestAndRefresh(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case pathProfile:
			if r.Header.Get("Authorization") != "Bearer AT2" {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"detail": "token expired"})
				return
			}
			json.NewEncoder(w).Encode(testUserJSON())
		case pathRefresh:
			json.NewEncoder(w).Encode(map[string]string{"access": "AT2"})
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}))
	defer server.Close()

	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	store := newAuthedStore(t, "AT1", "RT1")
	client := NewClient(store,
		WithBaseURL(server.URL),
		WithLogger(testLogger()),
		WithMetrics(metrics),
	)

	if _, err := client.Profile(context.Background()); err != nil {
		t.Fatalf("Profile() error: %v", err)
	}

	// First attempt 401, refresh POST, retried GET 200.
	if got := counterValue(t, metrics.RequestsTotal.WithLabelValues(http.MethodGet, "401")); got != 1 {
		t.Errorf("requests_total{GET,401} = %v, want 1", got)
	}
	if got := counterValue(t, metrics.RequestsTotal.WithLabelValues(http.MethodGet, "200")); got != 1 {
		t.Errorf("requests_total{GET,200} = %v, want 1", got)
	}
	if got := counterValue(t, metrics.RefreshTotal.WithLabelValues("success")); got != 1 {
		t.Errorf("token_refresh_total{success} = %v, want 1", got)
	}
	if got := histogramCount(t, metrics.RequestDuration.WithLabelValues(http.MethodGet)); got != 2 {
		t.Errorf("request_duration_seconds{GET} samples = %v, want 2", got)
	}
}

func TestMetrics_CacheCounters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]string{})
	}))
	defer server.Close()

	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	store := newAuthedStore(t, "AT1", "RT1")
	client := NewClient(store,
		WithBaseURL(server.URL),
		WithLogger(testLogger()),
		WithMetrics(metrics),
		WithCacheTTL(time.Minute),
	)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := client.Tags(ctx); err != nil {
			t.Fatalf("Tags() error: %v", err)
		}
	}

	if got := counterValue(t, metrics.CacheMissTotal); got != 1 {
		t.Errorf("cache misses = %v, want 1", got)
	}
	if got := counterValue(t, metrics.CacheHitsTotal); got != 2 {
		t.Errorf("cache hits = %v, want 2", got)
	}
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics
	m.request(http.MethodGet, "200", time.Millisecond)
	m.refresh("success")
	m.cacheHit()
	m.cacheMiss()
}
