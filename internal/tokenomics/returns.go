package tokenomics

import (
	"math"

	"trading-assistant/internal/domain"

	"gonum.org/v1/gonum/stat"
)

// RiskFreeRate is the fixed annual rate used for Sharpe ratios.
const RiskFreeRate = 0.02

const (
	daysPerYear       = 365
	volumeTrendWindow = 7
)

// ComputeReturns derives return metrics from an ordered price series over
// windowDays. It reports false when fewer than two prices are available, in
// which case every metric is unavailable rather than zero. Non-positive
// prices are dropped before any log return is taken.
func ComputeReturns(prices []float64, windowDays int) (domain.ReturnMetrics, bool) {
	prices = positive(prices)
	if len(prices) < 2 || windowDays <= 0 {
		return domain.ReturnMetrics{}, false
	}

	logReturns := make([]float64, 0, len(prices)-1)
	for i := 0; i+1 < len(prices); i++ {
		logReturns = append(logReturns, math.Log(prices[i+1]/prices[i]))
	}

	first, last := prices[0], prices[len(prices)-1]
	growth := last / first

	_, std := stat.PopMeanStdDev(logReturns, nil)
	volatility := std * math.Sqrt(daysPerYear) * 100

	m := domain.ReturnMetrics{
		TotalReturn:      (growth - 1) * 100,
		AnnualizedReturn: (math.Pow(growth, float64(daysPerYear)/float64(windowDays)) - 1) * 100,
		Volatility:       volatility,
		MaxDrawdown:      maxDrawdown(prices),
	}
	if volatility > 0 {
		m.SharpeRatio = (m.AnnualizedReturn/100 - RiskFreeRate) / (volatility / 100)
	}
	return m, true
}

func positive(values []float64) []float64 {
	out := values[:0:0]
	for _, v := range values {
		if v > 0 && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

// maxDrawdown tracks the running peak left to right and returns the largest
// fall from it as a positive percentage.
func maxDrawdown(prices []float64) float64 {
	peak := prices[0]
	var worst float64
	for _, p := range prices {
		if p > peak {
			peak = p
		}
		if dd := (peak - p) / peak * 100; dd > worst {
			worst = dd
		}
	}
	return worst
}

// ComputeVolumeTrend compares the mean of the last seven samples with the
// seven before them, or with the overall mean when fewer than fourteen
// samples exist.
func ComputeVolumeTrend(volumes []float64) domain.VolumeTrend {
	if len(volumes) < volumeTrendWindow {
		return domain.VolumeTrend{Direction: domain.TrendUnknown}
	}

	avg := stat.Mean(volumes, nil)
	n := len(volumes)
	recent := stat.Mean(volumes[n-volumeTrendWindow:], nil)
	older := avg
	if n >= 2*volumeTrendWindow {
		older = stat.Mean(volumes[n-2*volumeTrendWindow:n-volumeTrendWindow], nil)
	}

	direction := domain.TrendStable
	switch {
	case recent > older*1.1:
		direction = domain.TrendIncreasing
	case recent < older*0.9:
		direction = domain.TrendDecreasing
	}
	return domain.VolumeTrend{Average: avg, Direction: direction}
}
