package tokenomics

import (
	"time"

	"trading-assistant/internal/domain"
)

// Report is a complete tokenomics analysis: the typed category groups and
// the flat display record merged from them.
type Report struct {
	CoinID      string                `json:"coin_id"`
	GeneratedAt time.Time             `json:"generated_at"`
	Basic       BasicInfo             `json:"basic"`
	Market      MarketValuation       `json:"market"`
	Supply      SupplyEconomics       `json:"supply"`
	Performance PricePerformance      `json:"performance"`
	Liquidity   Liquidity             `json:"liquidity"`
	Community   Community             `json:"community"`
	Position    RiskPosition          `json:"position"`
	History     History               `json:"history"`
	Record      *domain.MetricRecord  `json:"record"`
	Risk        domain.RiskAssessment `json:"-"`
}

// DeriveAll turns a snapshot and its per-timeframe analyses into a Report.
// Risk is scored from the 30-day window when present. The only error is
// domain.ErrDuplicateMetric, which means two groups claim the same key.
func DeriveAll(snap *domain.CoinSnapshot, analyses []domain.TimeframeAnalysis, investment float64, now time.Time) (*Report, error) {
	history := History{Timeframes: analyses}
	returns30d, _ := history.Returns("30d")
	risk := ScoreRisk(snap, returns30d, now)

	r := &Report{
		CoinID:      snap.ID,
		GeneratedAt: now.UTC(),
		Basic:       DeriveBasicInfo(snap),
		Market:      DeriveMarketValuation(snap, investment),
		Supply:      DeriveSupplyEconomics(snap),
		Performance: DerivePricePerformance(snap),
		Liquidity:   DeriveLiquidity(snap.Tickers),
		Community:   DeriveCommunity(snap),
		Position:    DeriveRiskPosition(snap, risk),
		History:     history,
		Risk:        risk,
	}

	record := domain.NewMetricRecord()
	for _, g := range r.groups() {
		if err := record.Merge(g); err != nil {
			return nil, err
		}
	}
	r.Record = record
	return r, nil
}

func (r *Report) groups() []domain.MetricGroup {
	return []domain.MetricGroup{
		r.Basic,
		r.Market,
		r.Supply,
		r.Performance,
		r.Liquidity,
		r.Community,
		r.Position,
		r.History,
	}
}

// TokenName is the display name used in chat replies.
func (r *Report) TokenName() string {
	return r.Basic.Name
}
