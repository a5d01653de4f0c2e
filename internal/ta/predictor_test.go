package ta

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"trading-assistant/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

var start = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func risingCandles(n int) []*domain.Candle {
	out := make([]*domain.Candle, n)
	for i := range out {
		price := 100 + float64(i)
		out[i] = &domain.Candle{
			OpenTime: start.Add(time.Duration(i) * time.Hour),
			Open:     price, High: price, Low: price, Close: price,
			Volume: 10,
		}
	}
	return out
}

func TestAnalyzeSteadyUptrend(t *testing.T) {
	pred, err := Analyze(risingCandles(60), "BTCUSDT", "1h")
	require.NoError(t, err)

	byIndicator := make(map[string]domain.Confluence)
	for _, c := range pred.Confluences {
		byIndicator[c.Indicator] = c
	}
	require.Len(t, pred.Confluences, 4, "flat volume yields no volume signal")
	assert.Equal(t, domain.DirectionShort, byIndicator[domain.IndicatorRSI].Direction)
	assert.Equal(t, domain.DirectionLong, byIndicator[domain.IndicatorMACD].Direction)
	assert.Equal(t, domain.DirectionHold, byIndicator[domain.IndicatorBollinger].Direction)
	assert.Equal(t, domain.DirectionLong, byIndicator[IndicatorTrend].Direction)

	assert.Equal(t, domain.DirectionLong, pred.Bias)
	assert.Equal(t, 62.5, pred.Strength)
	assert.Equal(t, "BTCUSDT", pred.Symbol)
	require.NotNil(t, pred.Latest)
	assert.Equal(t, 159.0, pred.Latest.Close)
	assert.True(t, strings.HasPrefix(pred.Plan, "Bias: Bullish (62.5% confidence)\nEntry: around 159.0000"))
	assert.Contains(t, pred.Plan, "not financial advice")
}

func TestAnalyzeSortsCandlesAndSkipsNil(t *testing.T) {
	candles := risingCandles(40)
	candles[0], candles[39] = candles[39], candles[0]
	candles = append(candles, nil)

	pred, err := Analyze(candles, "BTCUSDT", "1h")
	require.NoError(t, err)
	assert.Equal(t, 139.0, pred.Latest.Close)
}

func TestAnalyzeVolumeSpike(t *testing.T) {
	candles := risingCandles(40)
	for i, c := range candles {
		if i%2 == 0 {
			c.Volume = 9
		} else {
			c.Volume = 11
		}
	}
	candles[len(candles)-1].Volume = 100

	pred, err := Analyze(candles, "BTCUSDT", "1h")
	require.NoError(t, err)

	var spike *domain.Confluence
	for i := range pred.Confluences {
		if pred.Confluences[i].Indicator == domain.IndicatorVolumeZ {
			spike = &pred.Confluences[i]
		}
	}
	require.NotNil(t, spike)
	assert.Equal(t, domain.DirectionLong, spike.Direction)
	assert.Contains(t, spike.Details, "volume spike")
}

func TestAnalyzeNotEnoughCandles(t *testing.T) {
	_, err := Analyze(risingCandles(MinCandles-1), "BTCUSDT", "1h")
	assert.ErrorIs(t, err, ErrNotEnoughCandles)
}

func TestBias(t *testing.T) {
	long := domain.Confluence{Direction: domain.DirectionLong}
	short := domain.Confluence{Direction: domain.DirectionShort}
	hold := domain.Confluence{Direction: domain.DirectionHold}

	cases := []struct {
		name     string
		in       []domain.Confluence
		bias     domain.SignalDirection
		strength float64
	}{
		{"none", nil, domain.DirectionHold, 50},
		{"all long", []domain.Confluence{long, long}, domain.DirectionLong, 100},
		{"all short", []domain.Confluence{short, short, short}, domain.DirectionShort, 100},
		{"tie", []domain.Confluence{long, short, hold}, domain.DirectionHold, 50},
		{"two of three", []domain.Confluence{long, long, short}, domain.DirectionLong, 66.7},
	}
	for _, tc := range cases {
		bias, strength := Bias(tc.in)
		assert.Equal(t, tc.bias, bias, tc.name)
		assert.Equal(t, tc.strength, strength, tc.name)
	}
}

func TestBiasLabel(t *testing.T) {
	assert.Equal(t, "Bullish", BiasLabel(domain.DirectionLong))
	assert.Equal(t, "Bearish", BiasLabel(domain.DirectionShort))
	assert.Equal(t, "Neutral", BiasLabel(domain.DirectionHold))
}

func TestBaseAsset(t *testing.T) {
	assert.Equal(t, "btc", BaseAsset("BTCUSDT"))
	assert.Equal(t, "eth", BaseAsset("ethbusd"))
	assert.Equal(t, "sol", BaseAsset("SOLUSD"))
	assert.Equal(t, "usdt", BaseAsset("USDT"))
}

func TestIndicatorsEdgeCases(t *testing.T) {
	assert.Nil(t, RSISeries([]float64{1, 2}, 14))
	flat := RSISeries([]float64{5, 5, 5, 5}, 2)
	assert.True(t, math.IsNaN(flat[0]))
	assert.Equal(t, 50.0, flat[3])

	mean, std := MeanStd([]float64{9, 11})
	assert.Equal(t, 10.0, mean)
	assert.Equal(t, 1.0, std)

	candles := []domain.Candle{
		{High: 10, Low: 8, Close: 9},
		{High: 12, Low: 9, Close: 11},
		{High: 11, Low: 7, Close: 8},
	}
	assert.Equal(t, 3.5, ATR(candles, 14))
}

type fakeSeries struct {
	series *domain.PriceSeries
	err    error
	coinID string
	days   int
}

func (f *fakeSeries) FetchSeries(_ context.Context, coinID string, days int) (*domain.PriceSeries, error) {
	f.coinID, f.days = coinID, days
	return f.series, f.err
}

type fakeMapper map[string]domain.Resolution

func (m fakeMapper) Resolve(_ context.Context, text string) (domain.Resolution, error) {
	if res, ok := m[text]; ok {
		return res, nil
	}
	return domain.Resolution{CoinID: "bitcoin", Source: domain.ResolvedByDefault}, nil
}

func hourlySeries(n int) *domain.PriceSeries {
	s := &domain.PriceSeries{}
	for i := 0; i < n; i++ {
		at := start.Add(time.Duration(i) * time.Hour)
		s.Prices = append(s.Prices, domain.PricePoint{Time: at, Value: 100 + float64(i)})
		s.Volumes = append(s.Volumes, domain.PricePoint{Time: at, Value: 10})
	}
	return s
}

func newTestPredictor(series SeriesSource) *Predictor {
	mapper := fakeMapper{"eth": {CoinID: "ethereum", Source: domain.ResolvedByAlias}}
	return NewPredictor(noop.NewTracerProvider().Tracer("test"), series, mapper)
}

func TestPredictFetchesMatchingWindow(t *testing.T) {
	src := &fakeSeries{series: hourlySeries(60)}
	pred, err := newTestPredictor(src).Predict(context.Background(), "ETHUSDT", "1h")
	require.NoError(t, err)

	assert.Equal(t, "ethereum", src.coinID)
	assert.Equal(t, 7, src.days)
	assert.Equal(t, "ETHUSDT", pred.Symbol)
	assert.Equal(t, "1h", pred.Timeframe)
	assert.Equal(t, domain.DirectionLong, pred.Bias)
}

func TestPredictDefaultPairUsesBitcoin(t *testing.T) {
	src := &fakeSeries{series: hourlySeries(60)}
	_, err := newTestPredictor(src).Predict(context.Background(), "BTCUSDT", "4h")
	require.ErrorIs(t, err, ErrNotEnoughCandles, "60 hourly samples make 15 four-hour candles")
	assert.Equal(t, "bitcoin", src.coinID)
	assert.Equal(t, 30, src.days)
}

func TestPredictErrors(t *testing.T) {
	_, err := newTestPredictor(&fakeSeries{}).Predict(context.Background(), "BTCUSDT", "1m")
	assert.ErrorIs(t, err, ErrUnsupportedTimeframe)

	_, err = newTestPredictor(&fakeSeries{}).Predict(context.Background(), "ZZZUSDT", "1h")
	assert.ErrorIs(t, err, ErrUnknownPair)

	boom := errors.New("boom")
	_, err = newTestPredictor(&fakeSeries{err: boom}).Predict(context.Background(), "ETHUSDT", "1h")
	assert.ErrorIs(t, err, boom)
}
