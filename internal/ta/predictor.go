package ta

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"trading-assistant/internal/domain"
	"trading-assistant/internal/provider"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	rsiPeriod        = 14
	macdFastPeriod   = 12
	macdSlowPeriod   = 26
	macdSignalPeriod = 9
	bollingerPeriod  = 20
	bollingerStdDevs = 2.0
	trendFastPeriod  = 20
	trendSlowPeriod  = 50
	volumeWindow     = 20
	volumeZThreshold = 2.0
	atrPeriod        = 14

	// MinCandles is the shortest history a prediction is computed from.
	MinCandles = macdSlowPeriod + macdSignalPeriod
)

// IndicatorTrend compares a fast and a slow EMA of the closes.
const IndicatorTrend = "ema_trend"

var (
	ErrUnsupportedTimeframe = errors.New("unsupported timeframe")
	ErrUnknownPair          = errors.New("unknown trading pair")
	ErrNotEnoughCandles     = errors.New("not enough candles")
)

var quoteAssets = []string{"USDT", "BUSD", "USDC", "USD"}

// SeriesSource supplies the market_chart history candles are built from.
type SeriesSource interface {
	FetchSeries(ctx context.Context, coinID string, days int) (*domain.PriceSeries, error)
}

// CoinMapper turns the base asset of a pair into a provider coin id.
type CoinMapper interface {
	Resolve(ctx context.Context, text string) (domain.Resolution, error)
}

// Predictor produces a confluence-based directional bias for a trading pair.
type Predictor struct {
	tracer trace.Tracer
	series SeriesSource
	coins  CoinMapper
}

func NewPredictor(tracer trace.Tracer, series SeriesSource, coins CoinMapper) *Predictor {
	return &Predictor{tracer: tracer, series: series, coins: coins}
}

// Predict fetches history for pair, buckets it into interval candles and
// analyses the most recent candle.
func (p *Predictor) Predict(ctx context.Context, pair, interval string) (*domain.Prediction, error) {
	ctx, span := p.tracer.Start(ctx, "ta.predict")
	defer span.End()
	span.SetAttributes(attribute.String("pair", pair), attribute.String("interval", interval))

	if provider.IntervalDuration(interval) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedTimeframe, interval)
	}

	base := BaseAsset(pair)
	res, err := p.coins.Resolve(ctx, base)
	if err != nil {
		return nil, err
	}
	if res.Defaulted() && base != "btc" {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPair, pair)
	}

	series, err := p.series.FetchSeries(ctx, res.CoinID, provider.ChartDaysForInterval(interval))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "history unavailable")
		return nil, fmt.Errorf("fetch history for %s: %w", pair, err)
	}

	candles := provider.BuildCandles(series, strings.ToUpper(pair), interval)
	return Analyze(candles, strings.ToUpper(pair), interval)
}

// BaseAsset strips the quote currency from an exchange pair and lowercases it.
func BaseAsset(pair string) string {
	upper := strings.ToUpper(strings.TrimSpace(pair))
	for _, q := range quoteAssets {
		if len(upper) > len(q) && strings.HasSuffix(upper, q) {
			return strings.ToLower(strings.TrimSuffix(upper, q))
		}
	}
	return strings.ToLower(upper)
}

// Analyze evaluates every indicator on the latest candle and combines them
// into a bias. Strength runs from 50 (no edge) to 100 (all signals agree).
func Analyze(in []*domain.Candle, symbol, interval string) (*domain.Prediction, error) {
	candles := normalizeCandles(in)
	if len(candles) < MinCandles {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrNotEnoughCandles, len(candles), MinCandles)
	}

	closes := make([]float64, len(candles))
	volumes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
		volumes[i] = c.Volume
	}

	confluences := make([]domain.Confluence, 0, 5)
	for _, eval := range []func([]float64, []float64) (domain.Confluence, bool){
		evalRSI, evalMACD, evalBollinger, evalTrend, evalVolume,
	} {
		if c, ok := eval(closes, volumes); ok {
			confluences = append(confluences, c)
		}
	}

	bias, strength := Bias(confluences)
	latest := candles[len(candles)-1]
	return &domain.Prediction{
		Symbol:      symbol,
		Timeframe:   interval,
		Bias:        bias,
		Strength:    strength,
		Confluences: confluences,
		Plan:        tradingPlan(bias, strength, latest.Close, ATR(candles, atrPeriod), confluences),
		Latest:      &latest,
	}, nil
}

// Bias nets long against short confluences.
func Bias(confluences []domain.Confluence) (domain.SignalDirection, float64) {
	if len(confluences) == 0 {
		return domain.DirectionHold, 50
	}
	score := 0
	for _, c := range confluences {
		switch c.Direction {
		case domain.DirectionLong:
			score++
		case domain.DirectionShort:
			score--
		}
	}
	strength := math.Round((50+50*math.Abs(float64(score))/float64(len(confluences)))*10) / 10
	switch {
	case score > 0:
		return domain.DirectionLong, strength
	case score < 0:
		return domain.DirectionShort, strength
	default:
		return domain.DirectionHold, 50
	}
}

// BiasLabel is the trader-facing name of a direction.
func BiasLabel(d domain.SignalDirection) string {
	switch d {
	case domain.DirectionLong:
		return "Bullish"
	case domain.DirectionShort:
		return "Bearish"
	default:
		return "Neutral"
	}
}

func evalRSI(closes, _ []float64) (domain.Confluence, bool) {
	series := RSISeries(closes, rsiPeriod)
	if len(series) == 0 {
		return domain.Confluence{}, false
	}
	rsi := series[len(series)-1]
	c := domain.Confluence{Indicator: domain.IndicatorRSI, Direction: domain.DirectionHold}
	switch {
	case rsi < 30:
		c.Direction = domain.DirectionLong
		c.Details = fmt.Sprintf("RSI %.2f is oversold (below 30)", rsi)
	case rsi > 70:
		c.Direction = domain.DirectionShort
		c.Details = fmt.Sprintf("RSI %.2f is overbought (above 70)", rsi)
	default:
		c.Details = fmt.Sprintf("RSI %.2f is neutral", rsi)
	}
	return c, true
}

func evalMACD(closes, _ []float64) (domain.Confluence, bool) {
	macdLine, signalLine := MACDSeries(closes, macdFastPeriod, macdSlowPeriod, macdSignalPeriod)
	n := len(macdLine)
	if n < 2 {
		return domain.Confluence{}, false
	}
	prevDelta := macdLine[n-2] - signalLine[n-2]
	currDelta := macdLine[n-1] - signalLine[n-1]

	c := domain.Confluence{Indicator: domain.IndicatorMACD}
	switch {
	case prevDelta <= 0 && currDelta > 0:
		c.Direction = domain.DirectionLong
		c.Details = fmt.Sprintf("MACD bullish crossover (%.4f)", currDelta)
	case prevDelta >= 0 && currDelta < 0:
		c.Direction = domain.DirectionShort
		c.Details = fmt.Sprintf("MACD bearish crossover (%.4f)", currDelta)
	case currDelta > 0:
		c.Direction = domain.DirectionLong
		c.Details = fmt.Sprintf("MACD above signal line (%.4f)", currDelta)
	case currDelta < 0:
		c.Direction = domain.DirectionShort
		c.Details = fmt.Sprintf("MACD below signal line (%.4f)", currDelta)
	default:
		c.Direction = domain.DirectionHold
		c.Details = "MACD flat on signal line"
	}
	return c, true
}

func evalBollinger(closes, _ []float64) (domain.Confluence, bool) {
	_, upper, lower := BollingerSeries(closes, bollingerPeriod, bollingerStdDevs)
	n := len(closes)
	if n < bollingerPeriod || math.IsNaN(upper[n-1]) {
		return domain.Confluence{}, false
	}
	last := closes[n-1]
	c := domain.Confluence{Indicator: domain.IndicatorBollinger, Direction: domain.DirectionHold}
	width := upper[n-1] - lower[n-1]
	switch {
	case last < lower[n-1]:
		c.Direction = domain.DirectionLong
		c.Details = "price closed below the lower Bollinger band"
	case last > upper[n-1]:
		c.Direction = domain.DirectionShort
		c.Details = "price closed above the upper Bollinger band"
	case width > 0:
		c.Details = fmt.Sprintf("price inside the bands (%.0f%% of range)", (last-lower[n-1])/width*100)
	default:
		c.Details = "bands have no width"
	}
	return c, true
}

func evalTrend(closes, _ []float64) (domain.Confluence, bool) {
	if len(closes) < trendSlowPeriod {
		return domain.Confluence{}, false
	}
	fast := EMASeries(closes, trendFastPeriod)
	slow := EMASeries(closes, trendSlowPeriod)
	f, s := fast[len(fast)-1], slow[len(slow)-1]

	c := domain.Confluence{Indicator: IndicatorTrend, Direction: domain.DirectionHold, Details: "EMA20 flat on EMA50"}
	switch {
	case f > s:
		c.Direction = domain.DirectionLong
		c.Details = fmt.Sprintf("EMA%d above EMA%d (uptrend)", trendFastPeriod, trendSlowPeriod)
	case f < s:
		c.Direction = domain.DirectionShort
		c.Details = fmt.Sprintf("EMA%d below EMA%d (downtrend)", trendFastPeriod, trendSlowPeriod)
	}
	return c, true
}

// evalVolume only reports when the latest volume is anomalous.
func evalVolume(closes, volumes []float64) (domain.Confluence, bool) {
	n := len(volumes)
	if n < volumeWindow+1 {
		return domain.Confluence{}, false
	}
	mean, std := MeanStd(volumes[n-1-volumeWindow : n-1])
	if std == 0 {
		return domain.Confluence{}, false
	}
	z := (volumes[n-1] - mean) / std
	if z < volumeZThreshold {
		return domain.Confluence{}, false
	}

	c := domain.Confluence{Indicator: domain.IndicatorVolumeZ, Direction: domain.DirectionHold}
	switch {
	case closes[n-1] > closes[n-2]:
		c.Direction = domain.DirectionLong
	case closes[n-1] < closes[n-2]:
		c.Direction = domain.DirectionShort
	}
	c.Details = fmt.Sprintf("volume spike z=%.2f", z)
	return c, true
}

func tradingPlan(bias domain.SignalDirection, strength, price, atr float64, confluences []domain.Confluence) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Bias: %s (%.1f%% confidence)\n", BiasLabel(bias), strength)
	switch bias {
	case domain.DirectionLong:
		fmt.Fprintf(&sb, "Entry: around %.4f\n", price)
		fmt.Fprintf(&sb, "Stop loss: %.4f\n", price-1.5*atr)
		fmt.Fprintf(&sb, "Target: %.4f\n", price+3*atr)
	case domain.DirectionShort:
		fmt.Fprintf(&sb, "Entry: around %.4f\n", price)
		fmt.Fprintf(&sb, "Stop loss: %.4f\n", price+1.5*atr)
		fmt.Fprintf(&sb, "Target: %.4f\n", price-3*atr)
	default:
		sb.WriteString("No clear edge. Wait for the signals to line up before entering.\n")
	}
	sb.WriteString("Signals:\n")
	for _, c := range confluences {
		fmt.Fprintf(&sb, "- [%s] %s\n", BiasLabel(c.Direction), c.Details)
	}
	sb.WriteString("Educational only, not financial advice. Size positions so a stop-out is affordable.")
	return sb.String()
}

func normalizeCandles(in []*domain.Candle) []domain.Candle {
	out := make([]domain.Candle, 0, len(in))
	for _, c := range in {
		if c == nil {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].OpenTime.Before(out[j].OpenTime)
	})
	return out
}
