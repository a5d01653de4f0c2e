package provider

import (
	"math"
	"sort"
	"time"

	"trading-assistant/internal/domain"
)

// BuildCandles buckets a market_chart series into OHLC candles of the given
// interval. Each candle takes the volume sample closest to its close time.
func BuildCandles(series *domain.PriceSeries, symbol, interval string) []*domain.Candle {
	if series == nil || len(series.Prices) == 0 {
		return nil
	}

	intervalDuration := IntervalDuration(interval)
	if intervalDuration == 0 {
		return nil
	}

	prices := append([]domain.PricePoint(nil), series.Prices...)
	sort.SliceStable(prices, func(i, j int) bool {
		return prices[i].Time.Before(prices[j].Time)
	})

	type bucket struct {
		open, high, low, close float64
		openTime               time.Time
	}

	buckets := make(map[int64]*bucket)
	for _, pt := range prices {
		start := pt.Time.Truncate(intervalDuration)
		key := start.UnixMilli()
		b, exists := buckets[key]
		if !exists {
			buckets[key] = &bucket{open: pt.Value, high: pt.Value, low: pt.Value, close: pt.Value, openTime: start}
			continue
		}
		b.high = math.Max(b.high, pt.Value)
		b.low = math.Min(b.low, pt.Value)
		b.close = pt.Value
	}

	keys := make([]int64, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	candles := make([]*domain.Candle, 0, len(keys))
	for _, k := range keys {
		b := buckets[k]
		candles = append(candles, &domain.Candle{
			Symbol:   symbol,
			Interval: interval,
			OpenTime: b.openTime.UTC(),
			Open:     b.open,
			High:     b.high,
			Low:      b.low,
			Close:    b.close,
			Volume:   closestVolume(series.Volumes, b.openTime.Add(intervalDuration)),
		})
	}
	return candles
}

func closestVolume(volumes []domain.PricePoint, target time.Time) float64 {
	if len(volumes) == 0 {
		return 0
	}
	closest := volumes[0]
	minDiff := time.Duration(math.MaxInt64)
	for _, v := range volumes {
		diff := v.Time.Sub(target)
		if diff < 0 {
			diff = -diff
		}
		if diff < minDiff {
			minDiff = diff
			closest = v
		}
	}
	return closest.Value
}

// IntervalDuration returns the candle width for a supported interval, or 0.
func IntervalDuration(interval string) time.Duration {
	switch interval {
	case "5m":
		return 5 * time.Minute
	case "15m":
		return 15 * time.Minute
	case "1h":
		return time.Hour
	case "4h":
		return 4 * time.Hour
	case "1d":
		return 24 * time.Hour
	default:
		return 0
	}
}

// ChartDaysForInterval picks a market_chart window whose granularity can
// feed candles of the interval: 1 day gives ~5 minute samples, up to 90
// days gives hourly samples, beyond that samples are daily.
func ChartDaysForInterval(interval string) int {
	switch interval {
	case "5m", "15m":
		return 1
	case "1h":
		return 7
	case "4h":
		return 30
	default:
		return 365
	}
}
