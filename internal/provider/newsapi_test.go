package provider

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"trading-assistant/internal/domain"

	"go.opentelemetry.io/otel/trace/noop"
)

func TestNewsAPIFetchHeadlines(t *testing.T) {
	p := NewNewsAPIProvider("news-key", noop.NewTracerProvider().Tracer("test"))
	p.baseURL = "http://example/v2"
	p.now = func() time.Time { return time.Date(2026, 2, 13, 9, 0, 0, 0, time.UTC) }
	p.client = &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/v2/everything" {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		q := req.URL.Query()
		if q.Get("from") != "2026-02-13" || q.Get("pageSize") != "5" || q.Get("sortBy") != "publishedAt" {
			t.Fatalf("unexpected query: %s", req.URL.RawQuery)
		}
		if q.Get("q") != newsAPIQuery {
			t.Fatalf("unexpected search query: %s", q.Get("q"))
		}
		if req.Header.Get("X-Api-Key") != "news-key" {
			t.Fatalf("expected api key header")
		}
		return jsonResponse(http.StatusOK, `{"articles":[
			{"title":"Bitcoin climbs","source":{"name":"Wire"},"url":"https://x/1","publishedAt":"2026-02-13T08:00:00Z"},
			{"title":"","source":{"name":"Empty"}}
		]}`), nil
	})}

	headlines, err := p.FetchHeadlines(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(headlines) != 1 {
		t.Fatalf("expected 1 headline, got %d", len(headlines))
	}
	if headlines[0].Title != "Bitcoin climbs" || headlines[0].Source != "Wire" {
		t.Fatalf("unexpected headline: %+v", headlines[0])
	}
}

func TestNewsAPIWithoutKey(t *testing.T) {
	p := NewNewsAPIProvider("", noop.NewTracerProvider().Tracer("test"))
	if p.Configured() {
		t.Fatalf("expected provider without key to be unconfigured")
	}
	if _, err := p.FetchHeadlines(context.Background()); !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestNewsAPIErrorStatus(t *testing.T) {
	p := NewNewsAPIProvider("news-key", noop.NewTracerProvider().Tracer("test"))
	p.client = &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusUnauthorized, `{"status":"error"}`), nil
	})}
	if _, err := p.FetchHeadlines(context.Background()); err == nil {
		t.Fatalf("expected error for unauthorized response")
	}
}
