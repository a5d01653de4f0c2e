package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"trading-assistant/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const (
	newsAPIBaseURL = "https://newsapi.org/v2"
	newsAPIQuery   = "finance OR bitcoin OR stock market OR federal reserve OR inflation"
	newsAPITimeout = 12 * time.Second
	newsPageSize   = 5
)

// NewsAPIProvider fetches the latest market headlines from newsapi.org.
type NewsAPIProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
	tracer  trace.Tracer
	now     func() time.Time
}

func NewNewsAPIProvider(apiKey string, tracer trace.Tracer) *NewsAPIProvider {
	return &NewsAPIProvider{
		client:  &http.Client{Timeout: newsAPITimeout},
		baseURL: newsAPIBaseURL,
		apiKey:  strings.TrimSpace(apiKey),
		tracer:  tracer,
		now:     time.Now,
	}
}

// Configured reports whether an API key is present.
func (p *NewsAPIProvider) Configured() bool {
	return p != nil && p.apiKey != ""
}

// FetchHeadlines returns today's most recent English finance headlines.
func (p *NewsAPIProvider) FetchHeadlines(ctx context.Context) ([]domain.Headline, error) {
	ctx, span := p.tracer.Start(ctx, "newsapi.fetch-headlines")
	defer span.End()

	if !p.Configured() {
		return nil, fmt.Errorf("newsapi: %w", domain.ErrUnavailable)
	}

	q := url.Values{}
	q.Set("q", newsAPIQuery)
	q.Set("from", p.now().UTC().Format("2006-01-02"))
	q.Set("language", "en")
	q.Set("sortBy", "publishedAt")
	q.Set("pageSize", strconv.Itoa(newsPageSize))
	endpoint := strings.TrimRight(p.baseURL, "/") + "/everything?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Api-Key", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("newsapi error %d: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Articles []struct {
			Title  string `json:"title"`
			URL    string `json:"url"`
			Source struct {
				Name string `json:"name"`
			} `json:"source"`
			PublishedAt string `json:"publishedAt"`
		} `json:"articles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode newsapi response: %w", err)
	}

	headlines := make([]domain.Headline, 0, len(payload.Articles))
	for _, a := range payload.Articles {
		title := sanitizeText(a.Title, 300)
		if title == "" {
			continue
		}
		published, _ := time.Parse(time.RFC3339, a.PublishedAt)
		headlines = append(headlines, domain.Headline{
			Title:       title,
			Source:      sanitizeText(a.Source.Name, 120),
			URL:         sanitizeText(a.URL, 500),
			PublishedAt: published.UTC(),
		})
	}
	return headlines, nil
}

func sanitizeText(in string, maxLen int) string {
	in = strings.Join(strings.Fields(in), " ")
	if maxLen > 0 && len(in) > maxLen {
		in = in[:maxLen]
	}
	return in
}
