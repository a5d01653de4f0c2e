package domain

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when the market-data provider has no usable
	// snapshot for a coin. It aborts the whole analysis.
	ErrNotFound = errors.New("coin not found")
	// ErrEmptySeries marks a history sub-fetch that produced nothing usable.
	ErrEmptySeries = errors.New("empty price series")
	// ErrUnavailable is returned by optional collaborators that are not configured.
	ErrUnavailable = errors.New("capability unavailable")
	// ErrDuplicateMetric is returned when two metric groups define the same key.
	ErrDuplicateMetric = errors.New("duplicate metric key")
)

type SignalDirection string

const (
	DirectionLong  SignalDirection = "long"
	DirectionShort SignalDirection = "short"
	DirectionHold  SignalDirection = "hold"
)

const (
	IndicatorRSI       = "rsi"
	IndicatorMACD      = "macd"
	IndicatorBollinger = "bollinger"
	IndicatorVolumeZ   = "volume_zscore"
)

// RiskLevel is one of the five ordered risk tiers, 1 being the safest.
type RiskLevel int

const (
	RiskLevel1 RiskLevel = 1
	RiskLevel2 RiskLevel = 2
	RiskLevel3 RiskLevel = 3
	RiskLevel4 RiskLevel = 4
	RiskLevel5 RiskLevel = 5
)

func (r RiskLevel) IsValid() bool {
	return r >= RiskLevel1 && r <= RiskLevel5
}

func (r RiskLevel) String() string {
	switch r {
	case RiskLevel1:
		return "RELATIVELY LOW RISK"
	case RiskLevel2:
		return "LOW-MODERATE RISK"
	case RiskLevel3:
		return "MODERATE RISK"
	case RiskLevel4:
		return "HIGH RISK"
	case RiskLevel5:
		return "EXTREMELY HIGH RISK"
	default:
		return "UNKNOWN RISK"
	}
}

// RiskAssessment is derived from a snapshot and its 30-day return metrics.
type RiskAssessment struct {
	Score          int       `json:"score"`
	Level          RiskLevel `json:"level"`
	Factors        []string  `json:"factors"`
	Recommendation string    `json:"recommendation"`
}

// Timeframe is a lookback window for historical analysis.
type Timeframe struct {
	Label string `json:"label"`
	Days  int    `json:"days"`
}

// AnalysisTimeframes are fetched in this order for every analysis.
var AnalysisTimeframes = []Timeframe{
	{Label: "7d", Days: 7},
	{Label: "30d", Days: 30},
	{Label: "90d", Days: 90},
	{Label: "1y", Days: 365},
}

type ReturnMetrics struct {
	TotalReturn      float64 `json:"total_return"`
	AnnualizedReturn float64 `json:"annualized_return"`
	Volatility       float64 `json:"volatility"`
	SharpeRatio      float64 `json:"sharpe_ratio"`
	MaxDrawdown      float64 `json:"max_drawdown"`
}

type TrendDirection string

const (
	TrendIncreasing TrendDirection = "Increasing"
	TrendDecreasing TrendDirection = "Decreasing"
	TrendStable     TrendDirection = "Stable"
	TrendUnknown    TrendDirection = "Unknown"
)

type VolumeTrend struct {
	Average   float64        `json:"average"`
	Direction TrendDirection `json:"direction"`
}

// TimeframeAnalysis holds the derived metrics of one successfully fetched window.
type TimeframeAnalysis struct {
	Timeframe Timeframe     `json:"timeframe"`
	Returns   ReturnMetrics `json:"returns"`
	Volume    VolumeTrend   `json:"volume"`
}

// Capabilities lists which optional collaborators are wired in.
type Capabilities struct {
	Narrative  bool `json:"narrative"`
	News       bool `json:"news"`
	Prediction bool `json:"prediction"`
	MonteCarlo bool `json:"monte_carlo"`
	Storage    bool `json:"storage"`
}

type ResolutionSource string

const (
	ResolvedByAlias   ResolutionSource = "alias"
	ResolvedByFuzzy   ResolutionSource = "fuzzy"
	ResolvedByDefault ResolutionSource = "default"
)

// Resolution is the outcome of mapping free text to a provider coin id.
// Source is ResolvedByDefault when nothing matched and CoinID fell back to bitcoin.
type Resolution struct {
	CoinID string           `json:"coin_id"`
	Source ResolutionSource `json:"source"`
	Match  string           `json:"match,omitempty"`
	Score  int              `json:"score,omitempty"`
}

func (r Resolution) Defaulted() bool {
	return r.Source == ResolvedByDefault
}

type Intent string

const (
	IntentPrediction Intent = "prediction"
	IntentTokenomics Intent = "tokenomics"
	IntentNews       Intent = "news"
	IntentMonteCarlo Intent = "montecarlo"
	IntentPortfolio  Intent = "portfolio"
	IntentGeneric    Intent = "generic"
)

type Headline struct {
	Title       string    `json:"title"`
	Source      string    `json:"source"`
	URL         string    `json:"url,omitempty"`
	PublishedAt time.Time `json:"published_at,omitempty"`
}

// Confluence is one technical-analysis signal feeding a prediction bias.
type Confluence struct {
	Indicator string          `json:"indicator"`
	Direction SignalDirection `json:"direction"`
	Details   string          `json:"details"`
}

type Prediction struct {
	Symbol      string          `json:"symbol"`
	Timeframe   string          `json:"timeframe"`
	Bias        SignalDirection `json:"bias"`
	Strength    float64         `json:"strength"`
	Confluences []Confluence    `json:"confluences"`
	Plan        string          `json:"plan"`
	Latest      *Candle         `json:"latest,omitempty"`
}

type PortfolioAllocation struct {
	Asset      string  `json:"asset"`
	Percentage int     `json:"percentage"`
	Amount     float64 `json:"amount"`
}

// MarketMood is the crypto Fear & Greed reading shown next to news.
type MarketMood struct {
	Value          int       `json:"value"`
	Classification string    `json:"classification"`
	Timestamp      time.Time `json:"timestamp"`
}
