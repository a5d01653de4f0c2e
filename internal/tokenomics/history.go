package tokenomics

import (
	"fmt"

	"trading-assistant/internal/domain"
)

// History is the per-timeframe return and volume analysis. Windows whose
// series could not be fetched are simply absent.
type History struct {
	Timeframes []domain.TimeframeAnalysis `json:"timeframes"`
}

// Returns looks up the metrics of a timeframe by label.
func (h History) Returns(label string) (*domain.ReturnMetrics, bool) {
	for i := range h.Timeframes {
		if h.Timeframes[i].Timeframe.Label == label {
			r := h.Timeframes[i].Returns
			return &r, true
		}
	}
	return nil, false
}

func (History) GroupName() string { return "historical_analysis" }

func (h History) Entries() []domain.Metric {
	entries := make([]domain.Metric, 0, len(h.Timeframes)*6)
	for _, tf := range h.Timeframes {
		label, r := tf.Timeframe.Label, tf.Returns
		entries = append(entries,
			domain.Metric{Key: KeyPrefixPerformance + label, Value: fmt.Sprintf("%+.2f%% (Vol: %.1f%%)", r.TotalReturn, r.Volatility)},
			domain.Metric{Key: KeyPrefixCAGR + label, Value: signedPercent(r.AnnualizedReturn)},
			domain.Metric{Key: KeyPrefixSharpe + label, Value: fmt.Sprintf("%.2f", r.SharpeRatio)},
			domain.Metric{Key: KeyPrefixDrawdown + label, Value: fmt.Sprintf("-%.2f%%", r.MaxDrawdown)},
			domain.Metric{Key: KeyPrefixAvgVolume + label, Value: usdMillions(tf.Volume.Average)},
			domain.Metric{Key: KeyPrefixVolumeTrend + label, Value: string(tf.Volume.Direction)},
		)
	}
	return entries
}
