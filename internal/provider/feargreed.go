package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"trading-assistant/internal/domain"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	fearGreedBaseURL = "https://api.alternative.me"
	fearGreedTimeout = 10 * time.Second

	// moodFallbackTTL applies when the index does not say when it refreshes.
	moodFallbackTTL = time.Hour
)

// FearGreedProvider reads the crypto Fear & Greed index shown next to news
// headlines. The index moves once a day, so a reading is reused until the
// API's advertised refresh time, and the last good reading is served when a
// refresh fails.
type FearGreedProvider struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
	breaker *gobreaker.CircuitBreaker
	now     func() time.Time

	mu        sync.Mutex
	cached    *domain.MarketMood
	freshTill time.Time
}

func NewFearGreedProvider(tracer trace.Tracer) *FearGreedProvider {
	return &FearGreedProvider{
		client:  &http.Client{},
		baseURL: fearGreedBaseURL,
		tracer:  tracer,
		breaker: newProviderBreaker("feargreed"),
		now:     time.Now,
	}
}

// FetchMood returns the current market mood.
func (p *FearGreedProvider) FetchMood(ctx context.Context) (*domain.MarketMood, error) {
	ctx, span := p.tracer.Start(ctx, "feargreed.fetch-mood")
	defer span.End()

	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	if p.cached != nil && now.Before(p.freshTill) {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		mood := *p.cached
		return &mood, nil
	}

	mood, ttl, err := p.fetch(ctx)
	if err != nil {
		span.RecordError(err)
		if p.cached != nil {
			log.Debug().Err(err).Time("reading", p.cached.Timestamp).Msg("fear & greed refresh failed, serving last reading")
			stale := *p.cached
			return &stale, nil
		}
		return nil, err
	}
	p.cached = mood
	p.freshTill = now.Add(ttl)
	out := *mood
	return &out, nil
}

func (p *FearGreedProvider) fetch(ctx context.Context) (*domain.MarketMood, time.Duration, error) {
	ctx, cancel := context.WithTimeout(ctx, fearGreedTimeout)
	defer cancel()

	out, err := p.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(p.baseURL, "/")+"/fng/?limit=1", nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := p.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
		}
		return io.ReadAll(resp.Body)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("fetch fear & greed index: %w", err)
	}

	var payload struct {
		Data []struct {
			Value           string `json:"value"`
			Classification  string `json:"value_classification"`
			Timestamp       string `json:"timestamp"`
			TimeUntilUpdate string `json:"time_until_update"`
		} `json:"data"`
	}
	if err := json.Unmarshal(out.([]byte), &payload); err != nil {
		return nil, 0, fmt.Errorf("decode fear & greed response: %w", err)
	}
	if len(payload.Data) == 0 {
		return nil, 0, errors.New("fear & greed response has no rows")
	}

	row := payload.Data[0]
	value, err := strconv.Atoi(strings.TrimSpace(row.Value))
	if err != nil {
		return nil, 0, fmt.Errorf("parse fear & greed value: %w", err)
	}
	if value < 0 || value > 100 {
		return nil, 0, fmt.Errorf("fear & greed value %d out of range", value)
	}

	mood := &domain.MarketMood{Value: value, Classification: strings.TrimSpace(row.Classification)}
	if mood.Classification == "" {
		mood.Classification = MoodClassification(value)
	}
	if ts, err := strconv.ParseInt(strings.TrimSpace(row.Timestamp), 10, 64); err == nil {
		if ts > 1_000_000_000_000 {
			ts /= 1000
		}
		mood.Timestamp = time.Unix(ts, 0).UTC()
	}

	ttl := moodFallbackTTL
	if secs, err := strconv.Atoi(strings.TrimSpace(row.TimeUntilUpdate)); err == nil && secs > 0 {
		ttl = time.Duration(secs) * time.Second
	}
	return mood, ttl, nil
}

// MoodClassification names the index band a value falls in.
func MoodClassification(value int) string {
	switch {
	case value <= 24:
		return "Extreme Fear"
	case value <= 46:
		return "Fear"
	case value <= 54:
		return "Neutral"
	case value <= 75:
		return "Greed"
	default:
		return "Extreme Greed"
	}
}
