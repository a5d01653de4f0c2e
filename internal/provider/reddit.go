package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"trading-assistant/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const (
	redditBaseURL   = "https://www.reddit.com"
	redditUserAgent = "trading-assistant/1.0"
)

// RedditProvider turns hot posts from crypto subreddits into headlines. It
// is the last source in the news chain.
type RedditProvider struct {
	client     *http.Client
	baseURL    string
	userAgent  string
	tracer     trace.Tracer
	subreddits []string
}

func NewRedditProvider(subreddits []string, tracer trace.Tracer) *RedditProvider {
	clean := make([]string, 0, len(subreddits))
	for _, s := range subreddits {
		s = strings.TrimPrefix(strings.TrimSpace(s), "r/")
		if s != "" {
			clean = append(clean, s)
		}
	}
	return &RedditProvider{
		client:     &http.Client{Timeout: newsAPITimeout},
		baseURL:    redditBaseURL,
		userAgent:  redditUserAgent,
		tracer:     tracer,
		subreddits: clean,
	}
}

func (p *RedditProvider) Configured() bool {
	return p != nil && len(p.subreddits) > 0
}

// FetchHeadlines merges hot posts across subreddits, newest first. Stickied
// posts are skipped since they are usually moderator notices.
func (p *RedditProvider) FetchHeadlines(ctx context.Context) ([]domain.Headline, error) {
	ctx, span := p.tracer.Start(ctx, "reddit.fetch-headlines")
	defer span.End()

	if !p.Configured() {
		return nil, fmt.Errorf("reddit: %w", domain.ErrUnavailable)
	}

	var (
		all     []domain.Headline
		lastErr error
	)
	for _, sub := range p.subreddits {
		items, err := p.FetchHot(ctx, sub, newsPageSize*2)
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

func (p *RedditProvider) FetchHot(ctx context.Context, subreddit string, limit int) ([]domain.Headline, error) {
	subreddit = strings.TrimSpace(subreddit)
	if subreddit == "" {
		return nil, fmt.Errorf("subreddit is required")
	}
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	base := strings.TrimRight(p.baseURL, "/")
	u := fmt.Sprintf("%s/r/%s/hot.json?limit=%d", base, url.PathEscape(subreddit), limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("reddit API error %d: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Data struct {
			Children []struct {
				Data struct {
					Title      string  `json:"title"`
					CreatedUTC float64 `json:"created_utc"`
					Permalink  string  `json:"permalink"`
					URL        string  `json:"url"`
					Stickied   bool    `json:"stickied"`
				} `json:"data"`
			} `json:"children"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode reddit response: %w", err)
	}

	headlines := make([]domain.Headline, 0, len(payload.Data.Children))
	for _, row := range payload.Data.Children {
		post := row.Data
		title := sanitizeText(post.Title, 300)
		if title == "" || post.Stickied {
			continue
		}
		link := strings.TrimSpace(post.URL)
		if permalink := strings.TrimSpace(post.Permalink); permalink != "" {
			link = base + permalink
		}
		headlines = append(headlines, domain.Headline{
			Title:       title,
			Source:      "r/" + subreddit,
			URL:         sanitizeText(link, 500),
			PublishedAt: time.Unix(int64(post.CreatedUTC), 0).UTC(),
		})
	}
	return headlines, nil
}
