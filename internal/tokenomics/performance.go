package tokenomics

import "trading-assistant/internal/domain"

// PricePerformance holds short-term changes and all-time extremes.
type PricePerformance struct {
	Change1h    domain.Decimal `json:"change_1h"`
	Change24h   domain.Decimal `json:"change_24h"`
	Change7d    domain.Decimal `json:"change_7d"`
	Change30d   domain.Decimal `json:"change_30d"`
	Change1y    domain.Decimal `json:"change_1y"`
	ATH         float64        `json:"ath"`
	ATHDate     string         `json:"ath_date"`
	DistanceATH float64        `json:"distance_ath"`
	ATL         float64        `json:"atl"`
	ATLDate     string         `json:"atl_date"`
	DistanceATL float64        `json:"distance_atl"`
}

func DerivePricePerformance(snap *domain.CoinSnapshot) PricePerformance {
	md := snap.MarketData
	return PricePerformance{
		Change1h:    md.PriceChangePercentage1hInCur.USD(),
		Change24h:   md.PriceChangePercentage24hInCur.USD(),
		Change7d:    md.PriceChangePercentage7dInCur.USD(),
		Change30d:   md.PriceChangePercentage30dInCur.USD(),
		Change1y:    md.PriceChangePercentage1yInCur.USD(),
		ATH:         md.ATH.USD().Or(0),
		ATHDate:     datePart(md.ATHDate["usd"]),
		DistanceATH: md.ATHChangePercentage.USD().Or(0),
		ATL:         md.ATL.USD().Or(0),
		ATLDate:     datePart(md.ATLDate["usd"]),
		DistanceATL: md.ATLChangePercentage.USD().Or(0),
	}
}

// changeOrNA renders a percentage change; absent or exactly zero changes
// are shown as N/A.
func changeOrNA(d domain.Decimal) string {
	if !d.Set || d.Value == 0 {
		return notAvailable
	}
	return signedPercent(d.Value)
}

func (PricePerformance) GroupName() string { return "price_performance" }

func (p PricePerformance) Entries() []domain.Metric {
	return []domain.Metric{
		{Key: KeyPriceChange1h, Value: changeOrNA(p.Change1h)},
		{Key: KeyPriceChange24h, Value: changeOrNA(p.Change24h)},
		{Key: KeyPriceChange7d, Value: changeOrNA(p.Change7d)},
		{Key: KeyPriceChange30d, Value: changeOrNA(p.Change30d)},
		{Key: KeyPriceChange1y, Value: changeOrNA(p.Change1y)},
		{Key: KeyATH, Value: usdPrice(p.ATH)},
		{Key: KeyATHDate, Value: p.ATHDate},
		{Key: KeyDistanceATH, Value: signedPercent(p.DistanceATH)},
		{Key: KeyATL, Value: usdPrice(p.ATL)},
		{Key: KeyATLDate, Value: p.ATLDate},
		{Key: KeyDistanceATL, Value: signedPercent(p.DistanceATL)},
	}
}
