package provider

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"trading-assistant/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

// RSSProvider reads headlines from plain RSS feeds. It backs the news
// intent when no NewsAPI key is configured.
type RSSProvider struct {
	client *http.Client
	tracer trace.Tracer
	feeds  []string
}

func NewRSSProvider(feeds []string, tracer trace.Tracer) *RSSProvider {
	clean := make([]string, 0, len(feeds))
	for _, f := range feeds {
		if f = strings.TrimSpace(f); f != "" {
			clean = append(clean, f)
		}
	}
	return &RSSProvider{
		client: &http.Client{Timeout: newsAPITimeout},
		tracer: tracer,
		feeds:  clean,
	}
}

func (p *RSSProvider) Configured() bool {
	return p != nil && len(p.feeds) > 0
}

// FetchHeadlines collects up to five headlines across the configured feeds,
// newest first. A failing feed is skipped unless every feed fails.
func (p *RSSProvider) FetchHeadlines(ctx context.Context) ([]domain.Headline, error) {
	ctx, span := p.tracer.Start(ctx, "rss.fetch-headlines")
	defer span.End()

	if !p.Configured() {
		return nil, fmt.Errorf("rss: %w", domain.ErrUnavailable)
	}

	var (
		all     []domain.Headline
		lastErr error
	)
	for _, feed := range p.feeds {
		items, err := p.FetchFeed(ctx, feed, newsPageSize)
		if err != nil {
			lastErr = err
			continue
		}
		all = append(all, items...)
	}
	if len(all) == 0 && lastErr != nil {
		return nil, lastErr
	}

	sortHeadlines(all)
	if len(all) > newsPageSize {
		all = all[:newsPageSize]
	}
	return all, nil
}

func (p *RSSProvider) FetchFeed(ctx context.Context, feedURL string, maxItems int) ([]domain.Headline, error) {
	feedURL = strings.TrimSpace(feedURL)
	if feedURL == "" {
		return nil, fmt.Errorf("feed url is required")
	}
	if maxItems <= 0 {
		maxItems = newsPageSize
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/rss+xml, application/xml, text/xml")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("rss fetch error %d: %s", resp.StatusCode, string(body))
	}

	var rss struct {
		Channel struct {
			Title string `xml:"title"`
			Items []struct {
				Title   string `xml:"title"`
				Link    string `xml:"link"`
				PubDate string `xml:"pubDate"`
			} `xml:"item"`
		} `xml:"channel"`
	}
	if err := xml.NewDecoder(resp.Body).Decode(&rss); err != nil {
		return nil, fmt.Errorf("decode rss payload: %w", err)
	}

	channel := sanitizeText(rss.Channel.Title, 120)
	out := make([]domain.Headline, 0, min(maxItems, len(rss.Channel.Items)))
	for _, row := range rss.Channel.Items {
		if len(out) >= maxItems {
			break
		}
		title := sanitizeText(row.Title, 300)
		if title == "" {
			continue
		}
		out = append(out, domain.Headline{
			Title:       title,
			Source:      channel,
			URL:         sanitizeText(row.Link, 500),
			PublishedAt: parseRSSDate(row.PubDate),
		})
	}
	return out, nil
}

func sortHeadlines(items []domain.Headline) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PublishedAt.After(items[j].PublishedAt)
	})
}

func parseRSSDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	layouts := []string{time.RFC1123Z, time.RFC1123, time.RFC822Z, time.RFC822, time.RFC3339}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
