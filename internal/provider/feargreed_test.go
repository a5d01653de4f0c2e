package provider

import (
	"context"
	"net/http"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace/noop"
)

func newTestMoodProvider(fn roundTripFunc) *FearGreedProvider {
	p := NewFearGreedProvider(noop.NewTracerProvider().Tracer("test"))
	p.baseURL = "http://example/"
	p.client = &http.Client{Transport: fn}
	return p
}

func TestFearGreedFetchMood(t *testing.T) {
	p := newTestMoodProvider(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/fng/" {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		return jsonResponse(http.StatusOK, `{"data":[{"value":"72","value_classification":"Greed","timestamp":"1739440800"}]}`), nil
	})

	mood, err := p.FetchMood(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mood.Value != 72 || mood.Classification != "Greed" {
		t.Fatalf("unexpected mood: %+v", mood)
	}
	if mood.Timestamp.Unix() != 1739440800 {
		t.Fatalf("unexpected timestamp: %v", mood.Timestamp)
	}
}

func TestFearGreedFetchMoodEmpty(t *testing.T) {
	p := newTestMoodProvider(func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"data":[]}`), nil
	})
	if _, err := p.FetchMood(context.Background()); err == nil {
		t.Fatalf("expected error for empty payload")
	}
}

func TestFearGreedFetchMoodReusesReadingUntilRefresh(t *testing.T) {
	calls := 0
	p := newTestMoodProvider(func(*http.Request) (*http.Response, error) {
		calls++
		return jsonResponse(http.StatusOK, `{"data":[{"value":"30","value_classification":"Fear","timestamp":"1739440800","time_until_update":"600"}]}`), nil
	})
	now := time.Date(2025, 2, 13, 10, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if _, err := p.FetchMood(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if calls != 1 {
		t.Fatalf("expected a single request before the refresh time, got %d", calls)
	}

	now = now.Add(11 * time.Minute)
	if _, err := p.FetchMood(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected a refresh after time_until_update, got %d requests", calls)
	}
}

func TestFearGreedFetchMoodServesLastReadingOnFailure(t *testing.T) {
	fail := false
	p := newTestMoodProvider(func(*http.Request) (*http.Response, error) {
		if fail {
			return jsonResponse(http.StatusBadGateway, `upstream down`), nil
		}
		return jsonResponse(http.StatusOK, `{"data":[{"value":"81","value_classification":"Extreme Greed","timestamp":"1739440800"}]}`), nil
	})
	now := time.Date(2025, 2, 13, 10, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return now }

	if _, err := p.FetchMood(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fail = true
	now = now.Add(2 * moodFallbackTTL)
	mood, err := p.FetchMood(context.Background())
	if err != nil {
		t.Fatalf("expected the last reading, got error %v", err)
	}
	if mood.Value != 81 || mood.Classification != "Extreme Greed" {
		t.Fatalf("unexpected mood: %+v", mood)
	}
}

func TestFearGreedFetchMoodRejectsBadStatus(t *testing.T) {
	p := newTestMoodProvider(func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusTooManyRequests, `slow down`), nil
	})
	if _, err := p.FetchMood(context.Background()); err == nil {
		t.Fatalf("expected error for 429 answer")
	}
}

func TestFearGreedFetchMoodFillsMissingClassification(t *testing.T) {
	p := newTestMoodProvider(func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"data":[{"value":"50","timestamp":"1739440800"}]}`), nil
	})
	mood, err := p.FetchMood(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mood.Classification != "Neutral" {
		t.Fatalf("expected Neutral, got %q", mood.Classification)
	}
}

func TestMoodClassification(t *testing.T) {
	cases := map[int]string{
		0:   "Extreme Fear",
		24:  "Extreme Fear",
		25:  "Fear",
		46:  "Fear",
		47:  "Neutral",
		54:  "Neutral",
		55:  "Greed",
		75:  "Greed",
		76:  "Extreme Greed",
		100: "Extreme Greed",
	}
	for value, want := range cases {
		if got := MoodClassification(value); got != want {
			t.Errorf("MoodClassification(%d) = %q, want %q", value, got, want)
		}
	}
}
