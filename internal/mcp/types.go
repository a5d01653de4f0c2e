package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"trading-assistant/internal/domain"
	"trading-assistant/internal/tokenomics"
)

const maxQueryLength = 500

type Analyzer interface {
	Analyze(ctx context.Context, coinID string, investment float64) (*tokenomics.Report, error)
}

type Resolver interface {
	Resolve(ctx context.Context, text string) (domain.Resolution, error)
}

type Predictor interface {
	Predict(ctx context.Context, pair, interval string) (*domain.Prediction, error)
}

type NewsSource interface {
	FetchHeadlines(ctx context.Context) ([]domain.Headline, error)
}

// Services are the collaborators exposed as tools. Predictor and News may
// be nil; their tools then report the feature as unavailable.
type Services struct {
	Analyzer  Analyzer
	Resolver  Resolver
	Predictor Predictor
	News      NewsSource
}

type tokenomicsAnalyzeInput struct {
	Coin   string  `json:"coin" jsonschema:"coin name, symbol or CoinGecko id, e.g. eth or solana"`
	Amount float64 `json:"amount,omitempty" jsonschema:"hypothetical investment in USD, defaults to 1000"`
}

type tokenomicsAnalyzeOutput struct {
	CoinID     string                `json:"coin_id"`
	TokenName  string                `json:"token_name"`
	Investment float64               `json:"investment"`
	Resolution domain.Resolution     `json:"resolution"`
	Risk       domain.RiskAssessment `json:"risk"`
	Groups     []string              `json:"groups"`
	Metrics    []domain.Metric       `json:"metrics"`
}

type tokenResolveInput struct {
	Query string `json:"query" jsonschema:"free text mentioning a coin"`
}

type tokenResolveOutput struct {
	Resolution domain.Resolution `json:"resolution"`
	Defaulted  bool              `json:"defaulted"`
}

type intentClassifyInput struct {
	Message string `json:"message" jsonschema:"user chat message"`
}

type intentClassifyOutput struct {
	Intent     string  `json:"intent"`
	Investment float64 `json:"investment,omitempty"`
	Pair       string  `json:"pair,omitempty"`
	Timeframe  string  `json:"timeframe,omitempty"`
}

type predictionAnalyzeInput struct {
	Pair      string `json:"pair" jsonschema:"trading pair, e.g. BTCUSDT"`
	Timeframe string `json:"timeframe,omitempty" jsonschema:"candle interval: 5m, 15m, 1h, 4h or 1d"`
}

type predictionAnalyzeOutput struct {
	Symbol      string              `json:"symbol"`
	Timeframe   string              `json:"timeframe"`
	Bias        string              `json:"bias"`
	Strength    float64             `json:"strength"`
	Confluences []domain.Confluence `json:"confluences"`
	Plan        string              `json:"plan"`
}

type newsHeadlinesInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of headlines, default 5"`
}

type headline struct {
	Title       string `json:"title"`
	Source      string `json:"source"`
	URL         string `json:"url,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
}

type newsHeadlinesOutput struct {
	Headlines []headline `json:"headlines"`
}

func normalizeQuery(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%s is required", field)
	}
	if len(value) > maxQueryLength {
		return "", fmt.Errorf("%s must be at most %d characters", field, maxQueryLength)
	}
	return value, nil
}

func normalizeAmount(amount float64) (float64, error) {
	switch {
	case amount == 0:
		return tokenomics.DefaultInvestment, nil
	case amount < 0:
		return 0, fmt.Errorf("amount must be positive")
	default:
		return amount, nil
	}
}

func normalizeNewsLimit(limit int) int {
	if limit <= 0 {
		return 5
	}
	if limit > 20 {
		return 20
	}
	return limit
}

func toHeadlines(in []domain.Headline, limit int) []headline {
	if len(in) > limit {
		in = in[:limit]
	}
	out := make([]headline, 0, len(in))
	for _, h := range in {
		item := headline{Title: h.Title, Source: h.Source, URL: h.URL}
		if !h.PublishedAt.IsZero() {
			item.PublishedAt = h.PublishedAt.UTC().Format(time.RFC3339)
		}
		out = append(out, item)
	}
	return out
}
