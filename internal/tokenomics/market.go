package tokenomics

import (
	"fmt"

	"trading-assistant/internal/domain"
)

// MarketValuation covers price, capitalisation and dilution-adjusted value.
type MarketValuation struct {
	Price              float64        `json:"price"`
	MarketCap          float64        `json:"market_cap"`
	Rank               domain.Decimal `json:"rank"`
	Volume24h          float64        `json:"volume_24h"`
	VolumeToMcap       float64        `json:"volume_to_mcap"`
	FDV                float64        `json:"fdv"`
	MaxFDV             domain.Decimal `json:"max_fdv"`
	InvestmentAmount   float64        `json:"investment_amount"`
	InvestmentTokens   float64        `json:"investment_tokens"`
	Category           string         `json:"category"`
	PriceRangePosition float64        `json:"price_range_position"`
}

func DeriveMarketValuation(snap *domain.CoinSnapshot, investment float64) MarketValuation {
	md := snap.MarketData
	price := md.CurrentPrice.USD().Or(0)
	mcap := md.MarketCap.USD().Or(0)
	total := md.TotalSupply.Or(0)
	maxSupply := md.MaxSupply.Or(0)

	m := MarketValuation{
		Price:              price,
		MarketCap:          mcap,
		Rank:               md.MarketCapRank,
		Volume24h:          md.TotalVolume.USD().Or(0),
		InvestmentAmount:   investment,
		Category:           MarketCapCategory(mcap),
		PriceRangePosition: PriceRangePosition(price, md.ATH.USD().Or(0), md.ATL.USD().Or(0)),
	}
	m.VolumeToMcap = VolumeToMcap(m.Volume24h, mcap)

	m.FDV = mcap
	if total > 0 {
		m.FDV = total * price
	}
	if maxSupply > 0 {
		m.MaxFDV = domain.Dec(maxSupply * price)
	}
	if price > 0 {
		m.InvestmentTokens = investment / price
	}
	return m
}

// VolumeToMcap is the 24h volume as a percentage of market cap, or 0 when
// the market cap is not positive.
func VolumeToMcap(volume, mcap float64) float64 {
	if mcap <= 0 {
		return 0
	}
	return volume / mcap * 100
}

func MarketCapCategory(mcap float64) string {
	switch {
	case mcap >= 10e9:
		return "Large Cap (>$10B)"
	case mcap >= 2e9:
		return "Mid Cap ($2B-$10B)"
	case mcap >= 300e6:
		return "Small Cap ($300M-$2B)"
	case mcap >= 50e6:
		return "Micro Cap ($50M-$300M)"
	default:
		return "Nano Cap (<$50M)"
	}
}

// PriceRangePosition locates price between the all-time low and high as a
// percentage. It is 0 unless both extremes are strictly positive.
func PriceRangePosition(price, ath, atl float64) float64 {
	if ath <= 0 || atl <= 0 || ath == atl {
		return 0
	}
	return (price - atl) / (ath - atl) * 100
}

func (MarketValuation) GroupName() string { return "market_valuation" }

func (m MarketValuation) Entries() []domain.Metric {
	rank := notAvailable
	if m.Rank.Set {
		rank = fmt.Sprintf("%d", int64(m.Rank.Value))
	}
	fdvRatio := notAvailable
	if m.MarketCap > 0 {
		fdvRatio = printer.Sprintf("%.2fx", m.FDV/m.MarketCap)
	}

	entries := []domain.Metric{
		{Key: KeyCurrentPrice, Value: usdPrice(m.Price)},
		{Key: KeyMarketCap, Value: usdScaled(m.MarketCap)},
		{Key: KeyMarketCapRank, Value: rank},
		{Key: KeyVolume24h, Value: usdScaled(m.Volume24h)},
		{Key: KeyVolumeToMcap, Value: percent(m.VolumeToMcap, 2)},
		{Key: KeyFDV, Value: usdScaled(m.FDV)},
	}
	if m.MaxFDV.Set {
		entries = append(entries, domain.Metric{Key: KeyMaxFDV, Value: usdScaled(m.MaxFDV.Value)})
	}
	return append(entries,
		domain.Metric{Key: KeyFDVToMcap, Value: fdvRatio},
		domain.Metric{Key: KeyInvestmentTokens, Value: printer.Sprintf("%.6f tokens", m.InvestmentTokens)},
		domain.Metric{Key: KeyMarketCapCategory, Value: m.Category},
		domain.Metric{Key: KeyPriceRangePosition, Value: fmt.Sprintf("%.1f%% between ATL and ATH", m.PriceRangePosition)},
	)
}
