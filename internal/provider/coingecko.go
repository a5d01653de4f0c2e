package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"trading-assistant/internal/domain"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

const coingeckoBaseURL = "https://api.coingecko.com/api/v3"

const (
	snapshotTimeout  = 15 * time.Second
	seriesTimeout    = 10 * time.Second
	directoryTimeout = 10 * time.Second

	// SeriesThrottle is the minimum gap between a market_chart response and
	// the next market_chart request.
	SeriesThrottle = 200 * time.Millisecond
)

// StatusError is a non-200 answer from the provider.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("coingecko API error %d: %s", e.Code, e.Body)
}

// CoinGeckoProvider fetches coin snapshots, market charts and the coin
// directory from the CoinGecko API. Calls are single-attempt.
type CoinGeckoProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
	tracer  trace.Tracer
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

// NewCoinGeckoProvider creates a provider whose market_chart requests each
// trail the previous response by SeriesThrottle. An empty baseURL selects the public endpoint.
func NewCoinGeckoProvider(baseURL, apiKey string, tracer trace.Tracer) *CoinGeckoProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = coingeckoBaseURL
	}
	return &CoinGeckoProvider{
		client:  &http.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  strings.TrimSpace(apiKey),
		tracer:  tracer,
		limiter: rate.NewLimiter(rate.Every(SeriesThrottle), 1),
		breaker: newProviderBreaker("coingecko"),
	}
}

func newProviderBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// 4xx answers are the provider working correctly (unknown coin, bad query).
		IsSuccessful: func(err error) bool {
			var statusErr *StatusError
			if errors.As(err, &statusErr) {
				return statusErr.Code < 500 && statusErr.Code != http.StatusTooManyRequests
			}
			return err == nil
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
		},
	})
}

// FetchSnapshot fetches the full coin payload including tickers, community
// and developer data. Any failure is reported as domain.ErrNotFound.
func (p *CoinGeckoProvider) FetchSnapshot(ctx context.Context, coinID string) (*domain.CoinSnapshot, error) {
	ctx, span := p.tracer.Start(ctx, "coingecko.fetch-snapshot")
	defer span.End()

	coinID = strings.ToLower(strings.TrimSpace(coinID))
	span.SetAttributes(attribute.String("coin.id", coinID))
	if coinID == "" {
		return nil, fmt.Errorf("fetch snapshot: empty coin id: %w", domain.ErrNotFound)
	}

	q := url.Values{}
	q.Set("localization", "false")
	q.Set("tickers", "true")
	q.Set("market_data", "true")
	q.Set("community_data", "true")
	q.Set("developer_data", "true")
	q.Set("sparkline", "false")
	endpoint := fmt.Sprintf("%s/coins/%s?%s", p.baseURL, url.PathEscape(coinID), q.Encode())

	ctx, cancel := context.WithTimeout(ctx, snapshotTimeout)
	defer cancel()

	body, err := p.doRequest(ctx, endpoint)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "snapshot fetch failed")
		return nil, fmt.Errorf("fetch snapshot for %s: %v: %w", coinID, err, domain.ErrNotFound)
	}

	var snap domain.CoinSnapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot for %s: %v: %w", coinID, err, domain.ErrNotFound)
	}
	if snap.ID == "" && snap.Name == "" {
		return nil, fmt.Errorf("snapshot for %s has no identity: %w", coinID, domain.ErrNotFound)
	}
	return &snap, nil
}

// FetchSeries fetches the market_chart history for the given window. Any
// failure, including a chart with no usable price points, is reported as
// domain.ErrEmptySeries.
func (p *CoinGeckoProvider) FetchSeries(ctx context.Context, coinID string, days int) (*domain.PriceSeries, error) {
	ctx, span := p.tracer.Start(ctx, "coingecko.fetch-series")
	defer span.End()
	span.SetAttributes(attribute.String("coin.id", coinID), attribute.Int("days", days))

	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("throttle wait: %v: %w", err, domain.ErrEmptySeries)
	}

	endpoint := fmt.Sprintf("%s/coins/%s/market_chart?vs_currency=usd&days=%s",
		p.baseURL, url.PathEscape(coinID), strconv.Itoa(days))

	ctx, cancel := context.WithTimeout(ctx, seriesTimeout)
	defer cancel()

	body, err := p.doRequest(ctx, endpoint)
	// Spend a token once the answer is in so the next request trails this
	// response by at least SeriesThrottle.
	p.limiter.Reserve()
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("fetch series for %s (%dd): %v: %w", coinID, days, err, domain.ErrEmptySeries)
	}

	var raw struct {
		Prices       [][]float64 `json:"prices"`
		TotalVolumes [][]float64 `json:"total_volumes"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parse series for %s (%dd): %v: %w", coinID, days, err, domain.ErrEmptySeries)
	}

	series := &domain.PriceSeries{
		CoinID:  coinID,
		Days:    days,
		Prices:  toPricePoints(raw.Prices),
		Volumes: toPricePoints(raw.TotalVolumes),
	}
	if len(series.Prices) == 0 {
		return nil, fmt.Errorf("series for %s (%dd): %w", coinID, days, domain.ErrEmptySeries)
	}
	return series, nil
}

// FetchCoinDirectory lists every coin id known to the provider.
func (p *CoinGeckoProvider) FetchCoinDirectory(ctx context.Context) ([]domain.CoinListing, error) {
	ctx, span := p.tracer.Start(ctx, "coingecko.fetch-directory")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, directoryTimeout)
	defer cancel()

	body, err := p.doRequest(ctx, p.baseURL+"/coins/list")
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("fetch coin directory: %w", err)
	}

	var listings []domain.CoinListing
	if err := json.Unmarshal(body, &listings); err != nil {
		return nil, fmt.Errorf("parse coin directory: %w", err)
	}
	return listings, nil
}

func (p *CoinGeckoProvider) doRequest(ctx context.Context, endpoint string) ([]byte, error) {
	out, err := p.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		if p.apiKey != "" {
			req.Header.Set("x-cg-demo-api-key", p.apiKey)
		}

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
		return nil, err
	}
	return out.([]byte), nil
}

// toPricePoints converts [timestamp_ms, value] pairs, dropping malformed
// entries and ordering by time.
func toPricePoints(raw [][]float64) []domain.PricePoint {
	points := make([]domain.PricePoint, 0, len(raw))
	for _, pt := range raw {
		if len(pt) < 2 {
			continue
		}
		points = append(points, domain.PricePoint{
			Time:  time.UnixMilli(int64(pt[0])).UTC(),
			Value: pt[1],
		})
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Time.Before(points[j].Time)
	})
	return points
}
