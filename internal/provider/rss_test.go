package provider

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"trading-assistant/internal/domain"

	"go.opentelemetry.io/otel/trace/noop"
)

func TestRSSFetchHeadlines(t *testing.T) {
	feeds := map[string]string{
		"https://a.example/rss": `<?xml version="1.0"?><rss version="2.0"><channel><title>Alpha Wire</title>` +
			`<item><title>ETH adoption rises</title><link>https://a.example/eth</link><pubDate>Fri, 13 Feb 2026 10:00:00 +0000</pubDate></item>` +
			`<item><title>  </title></item>` +
			`</channel></rss>`,
		"https://b.example/rss": `<?xml version="1.0"?><rss version="2.0"><channel><title>Beta Daily</title>` +
			`<item><title>Fed holds rates</title><link>https://b.example/fed</link><pubDate>Fri, 13 Feb 2026 12:00:00 +0000</pubDate></item>` +
			`</channel></rss>`,
	}
	p := NewRSSProvider([]string{"https://a.example/rss", " ", "https://b.example/rss", "https://down.example/rss"}, noop.NewTracerProvider().Tracer("test"))
	p.client = &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		body, ok := feeds[req.URL.String()]
		if !ok {
			return nil, errors.New("dial failed")
		}
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(bytes.NewBufferString(body)),
			Header:     make(http.Header),
		}, nil
	})}

	items, err := p.FetchHeadlines(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 headlines, got %d", len(items))
	}
	if items[0].Title != "Fed holds rates" || items[0].Source != "Beta Daily" {
		t.Fatalf("expected newest headline first, got %+v", items[0])
	}
	if items[1].URL != "https://a.example/eth" {
		t.Fatalf("unexpected second headline: %+v", items[1])
	}
}

func TestRSSFetchHeadlinesUnconfigured(t *testing.T) {
	p := NewRSSProvider(nil, noop.NewTracerProvider().Tracer("test"))
	if _, err := p.FetchHeadlines(context.Background()); !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
