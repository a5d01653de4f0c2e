package tokenomics

import (
	"strconv"
	"strings"

	"trading-assistant/internal/domain"
)

const (
	maxTickersScanned = 50

	// unlistedScore marks a coin with no exchange tickers at all.
	unlistedScore = "Low"
)

// Liquidity summarises exchange coverage from the snapshot tickers.
type Liquidity struct {
	ExchangeCount int     `json:"exchange_count"`
	TopExchange   string  `json:"top_exchange"`
	TotalVolume   float64 `json:"total_volume"`
	Score         string  `json:"score"`
}

// DeriveLiquidity tallies distinct exchanges and converted USD volume over
// the first fifty tickers. The top exchange is the one with the largest
// summed volume; ties keep the first seen. A coin with no tickers scores
// "Low" and reports no exchange volume.
func DeriveLiquidity(tickers []domain.Ticker) Liquidity {
	if len(tickers) == 0 {
		return Liquidity{TopExchange: notAvailable, Score: unlistedScore}
	}
	if len(tickers) > maxTickersScanned {
		tickers = tickers[:maxTickersScanned]
	}

	var (
		order   []string
		volumes = make(map[string]float64)
		total   float64
	)
	for _, t := range tickers {
		name := strings.TrimSpace(t.Market.Name)
		if name == "" {
			name = "Unknown"
		}
		vol := t.ConvertedVolume.USD().Or(0)
		if _, seen := volumes[name]; !seen {
			order = append(order, name)
		}
		volumes[name] += vol
		total += vol
	}

	l := Liquidity{
		ExchangeCount: len(order),
		TopExchange:   notAvailable,
		TotalVolume:   total,
		Score:         LiquidityScore(len(order), total),
	}
	best := -1.0
	for _, name := range order {
		if volumes[name] > best {
			best = volumes[name]
			l.TopExchange = name
		}
	}
	return l
}

// LiquidityScore tiers exchange count and volume; both bounds are inclusive.
func LiquidityScore(exchanges int, volume float64) string {
	switch {
	case exchanges >= 20 && volume >= 100e6:
		return "Excellent"
	case exchanges >= 10 && volume >= 10e6:
		return "Good"
	case exchanges >= 5 && volume >= 1e6:
		return "Fair"
	default:
		return "Poor"
	}
}

func (Liquidity) GroupName() string { return "liquidity" }

func (l Liquidity) Entries() []domain.Metric {
	entries := []domain.Metric{
		{Key: KeyExchangeCount, Value: strconv.Itoa(l.ExchangeCount)},
		{Key: KeyTopExchange, Value: l.TopExchange},
	}
	if l.ExchangeCount > 0 {
		entries = append(entries, domain.Metric{Key: KeyExchangeVolume, Value: usdMillions(l.TotalVolume)})
	}
	return append(entries, domain.Metric{Key: KeyLiquidityScore, Value: l.Score})
}
