package tokenomics

import (
	"fmt"
	"math"

	"trading-assistant/internal/domain"
)

// releaseHorizonYears spreads not-yet-circulating supply over an assumed
// four-year release for the inflation estimate.
const releaseHorizonYears = 4

// SupplyEconomics describes issuance, dilution and distribution.
type SupplyEconomics struct {
	Circulating        float64        `json:"circulating"`
	Total              float64        `json:"total"`
	Max                domain.Decimal `json:"max"`
	CirculatingPercent domain.Decimal `json:"circulating_percent"`
	InflationRate      float64        `json:"inflation_rate"`
	Model              string         `json:"model"`
	UnreleasedValue    float64        `json:"unreleased_value"`
	FutureDilution     float64        `json:"future_dilution"`
	ReleaseTimeline    string         `json:"release_timeline"`
	Distribution       string         `json:"distribution"`
}

func DeriveSupplyEconomics(snap *domain.CoinSnapshot) SupplyEconomics {
	md := snap.MarketData
	circ := md.CirculatingSupply.Or(0)
	total := md.TotalSupply.Or(0)
	maxSupply := md.MaxSupply.Or(0)
	price := md.CurrentPrice.USD().Or(0)

	s := SupplyEconomics{
		Circulating:     circ,
		Total:           total,
		InflationRate:   InflationRate(circ, total, maxSupply),
		ReleaseTimeline: "Unknown",
		Model:           "Unknown Supply Model",
		Distribution:    SupplyDistribution(circ, maxSupply),
	}
	if maxSupply > 0 {
		s.Max = domain.Dec(maxSupply)
	}
	if total > 0 {
		s.CirculatingPercent = domain.Dec(circ / total * 100)
	}

	switch {
	case maxSupply <= 0:
		s.Model = SupplyModel(0, total, circ)
	case total > 0 && circ > 0:
		unreleased := maxSupply - circ
		s.UnreleasedValue = unreleased * price
		s.FutureDilution = unreleased / circ * 100
		s.Model = SupplyModel(maxSupply, total, circ)
		s.ReleaseTimeline = "No immediate release pressure"
		if total > circ {
			s.ReleaseTimeline = "Immediate to medium-term release risk"
		}
	}
	return s
}

// InflationRate estimates annual supply growth from the supply still to be
// released. Tokens at or above 99% of max supply count as fully diluted.
// The result is capped at 100.
func InflationRate(circulating, total, maxSupply float64) float64 {
	if circulating <= 0 || total <= 0 {
		return 0
	}
	if maxSupply > 0 && circulating >= maxSupply*0.99 {
		return 0
	}
	remaining := total - circulating
	if remaining <= 0 {
		return 0
	}
	annual := remaining / releaseHorizonYears
	return math.Min(annual/circulating*100, 100)
}

// SupplyModel classifies issuance. A zero maxSupply means no cap.
func SupplyModel(maxSupply, total, circulating float64) string {
	switch {
	case maxSupply <= 0:
		return "Inflationary (No Max Supply)"
	case maxSupply == total && total == circulating:
		return "Fixed Supply (Fully Circulating)"
	case maxSupply == total:
		return "Fixed Supply (Gradual Release)"
	case total < maxSupply:
		return "Controlled Emission Model"
	default:
		return "Unknown Supply Model"
	}
}

// SupplyDistribution buckets circulating supply relative to max supply.
func SupplyDistribution(circulating, maxSupply float64) string {
	if circulating <= 0 {
		return "No data available"
	}
	if maxSupply <= 0 {
		return "Ongoing emission (no max supply)"
	}
	share := circulating / maxSupply * 100
	switch {
	case share >= 95:
		return "Fully distributed (>95% of max supply)"
	case share >= 70:
		return "Mostly distributed (70-95% of max supply)"
	case share >= 40:
		return "Partially distributed (40-70% of max supply)"
	default:
		return "Early distribution phase (<40% of max supply)"
	}
}

func (SupplyEconomics) GroupName() string { return "supply_economics" }

func (s SupplyEconomics) Entries() []domain.Metric {
	total := notAvailable
	if s.Total > 0 {
		total = supplyCount(s.Total)
	}
	maxSupply := "Unlimited"
	if s.Max.Set {
		maxSupply = supplyCount(s.Max.Value)
	}
	circPct := notAvailable
	if s.CirculatingPercent.Set && s.CirculatingPercent.Value != 0 {
		circPct = percent(s.CirculatingPercent.Value, 2)
	}

	return []domain.Metric{
		{Key: KeyCirculatingSupply, Value: supplyCount(s.Circulating)},
		{Key: KeyTotalSupply, Value: total},
		{Key: KeyMaxSupply, Value: maxSupply},
		{Key: KeyCirculatingPercentage, Value: circPct},
		{Key: KeyInflationRate, Value: fmt.Sprintf("%.2f%% annually", s.InflationRate)},
		{Key: KeySupplyModel, Value: s.Model},
		{Key: KeyUnreleasedValue, Value: usdScaled(s.UnreleasedValue)},
		{Key: KeyFutureDilution, Value: percent(s.FutureDilution, 1)},
		{Key: KeyReleaseTimeline, Value: s.ReleaseTimeline},
		{Key: KeySupplyDistribution, Value: s.Distribution},
	}
}
