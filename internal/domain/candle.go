package domain

import "time"

// Candle represents a single OHLCV candle for an asset at a given interval.
type Candle struct {
	Symbol   string    `json:"symbol"`
	Interval string    `json:"interval"`
	OpenTime time.Time `json:"open_time"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	Volume   float64   `json:"volume"`
}

// SupportedIntervals are the candle intervals the prediction module can build.
var SupportedIntervals = []string{"5m", "15m", "1h", "4h", "1d"}

// PricePoint is one sample of a market_chart series.
type PricePoint struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

// PriceSeries is the price and volume history of one coin over a fixed window.
type PriceSeries struct {
	CoinID  string       `json:"coin_id"`
	Days    int          `json:"days"`
	Prices  []PricePoint `json:"prices"`
	Volumes []PricePoint `json:"volumes"`
}

func (s *PriceSeries) PriceValues() []float64 {
	return pointValues(s.Prices)
}

func (s *PriceSeries) VolumeValues() []float64 {
	return pointValues(s.Volumes)
}

func pointValues(points []PricePoint) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Value
	}
	return out
}
