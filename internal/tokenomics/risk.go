package tokenomics

import (
	"fmt"
	"strings"
	"time"

	"trading-assistant/internal/domain"
)

const noRiskFactors = "No major risk factors identified"

var recommendations = map[domain.RiskLevel]string{
	domain.RiskLevel5: "NOT RECOMMENDED - Only for experienced traders with high risk tolerance",
	domain.RiskLevel4: "HIGH RISK - Maximum 2-5% of portfolio, expect high volatility",
	domain.RiskLevel3: "MODERATE RISK - Consider 5-10% of portfolio allocation",
	domain.RiskLevel2: "LOW-MODERATE RISK - Suitable for 10-20% portfolio allocation",
	domain.RiskLevel1: "RELATIVELY SAFE - Can consider larger allocation (20%+ of crypto portfolio)",
}

// ScoreRisk adds independent contributions from market cap, circulating
// ratio, liquidity, 30-day volatility and token age. returns30d may be nil
// when the 30-day window could not be fetched; volatility then adds nothing.
func ScoreRisk(snap *domain.CoinSnapshot, returns30d *domain.ReturnMetrics, now time.Time) domain.RiskAssessment {
	md := snap.MarketData
	mcap := md.MarketCap.USD().Or(0)
	circ := md.CirculatingSupply.Or(0)
	total := md.TotalSupply.Or(0)
	volume := md.TotalVolume.USD().Or(0)

	var (
		score   int
		factors []string
	)
	add := func(points int, factor string) {
		score += points
		if factor != "" {
			factors = append(factors, factor)
		}
	}

	switch {
	case mcap < 50e6:
		add(25, "Very Low Market Cap (<$50M)")
	case mcap < 300e6:
		add(15, "Low Market Cap (<$300M)")
	case mcap < 2e9:
		add(5, "")
	}

	if total > 0 && circ > 0 {
		switch ratio := circ / total * 100; {
		case ratio < 50:
			add(20, "Low Circulating Supply (<50%)")
		case ratio < 80:
			add(10, "")
		}
	}

	switch ratio := VolumeToMcap(volume, mcap); {
	case ratio < 0.5:
		add(20, "Very Low Liquidity (<0.5% vol/mcap)")
	case ratio < 2:
		add(10, "Low Liquidity (<2% vol/mcap)")
	}

	if returns30d != nil {
		switch vol := returns30d.Volatility; {
		case vol > 100:
			add(25, "Extremely High Volatility (>100%)")
		case vol > 50:
			add(15, "High Volatility (>50%)")
		}
	}

	if age, ok := tokenAgeDays(snap.GenesisDate, now); ok {
		switch {
		case age < 365:
			add(15, "New Token (<1 year old)")
		case age < 730:
			add(5, "")
		}
	}

	level := RiskLevelForScore(score)
	return domain.RiskAssessment{
		Score:          score,
		Level:          level,
		Factors:        factors,
		Recommendation: recommendations[level],
	}
}

// RiskLevelForScore maps an additive score onto the five tiers.
func RiskLevelForScore(score int) domain.RiskLevel {
	switch {
	case score >= 60:
		return domain.RiskLevel5
	case score >= 40:
		return domain.RiskLevel4
	case score >= 20:
		return domain.RiskLevel3
	case score >= 10:
		return domain.RiskLevel2
	default:
		return domain.RiskLevel1
	}
}

func tokenAgeDays(genesis string, now time.Time) (int, bool) {
	genesis = strings.TrimSpace(genesis)
	if genesis == "" {
		return 0, false
	}
	var (
		t   time.Time
		err error
	)
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err = time.Parse(layout, genesis); err == nil {
			return int(now.Sub(t).Hours() / 24), true
		}
	}
	return 0, false
}

// RiskPosition combines the risk assessment with the coin's competitive
// standing by rank and category.
type RiskPosition struct {
	Risk            domain.RiskAssessment `json:"risk"`
	PrimaryCategory string                `json:"primary_category"`
	MarketPosition  string                `json:"market_position"`
	Rank            int                   `json:"rank"`
	Categories      []string              `json:"categories"`
}

const unrankedSentinel = 999

func DeriveRiskPosition(snap *domain.CoinSnapshot, risk domain.RiskAssessment) RiskPosition {
	rank := unrankedSentinel
	if r := snap.MarketData.MarketCapRank; r.Set && r.Value > 0 {
		rank = int(r.Value)
	}

	categories := make([]string, 0, len(snap.Categories))
	for _, c := range snap.Categories {
		if c = strings.TrimSpace(c); c != "" {
			categories = append(categories, c)
		}
	}
	primary := "Unknown"
	if len(categories) > 0 {
		primary = categories[0]
	}

	return RiskPosition{
		Risk:            risk,
		PrimaryCategory: primary,
		MarketPosition:  MarketPosition(rank),
		Rank:            rank,
		Categories:      categories,
	}
}

func MarketPosition(rank int) string {
	switch {
	case rank <= 10:
		return "Top 10 - Blue Chip Crypto"
	case rank <= 50:
		return "Top 50 - Established Project"
	case rank <= 100:
		return "Top 100 - Mid-tier Project"
	case rank <= 500:
		return "Top 500 - Emerging Project"
	default:
		return "Outside Top 500 - Speculative"
	}
}

func (RiskPosition) GroupName() string { return "risk_competitive" }

func (r RiskPosition) Entries() []domain.Metric {
	factors := noRiskFactors
	if len(r.Risk.Factors) > 0 {
		factors = strings.Join(r.Risk.Factors, "; ")
	}
	rank := "Unranked"
	if r.Rank < unrankedSentinel {
		rank = fmt.Sprintf("#%d", r.Rank)
	}
	all := r.PrimaryCategory
	if len(r.Categories) > 1 {
		top := r.Categories
		if len(top) > 5 {
			top = top[:5]
		}
		all = strings.Join(top, ", ")
	}

	return []domain.Metric{
		{Key: KeyRiskLevel, Value: r.Risk.Level.String()},
		{Key: KeyRiskScore, Value: fmt.Sprintf("%d/100", r.Risk.Score)},
		{Key: KeyRiskFactors, Value: factors},
		{Key: KeyRecommendation, Value: r.Risk.Recommendation},
		{Key: KeyPrimaryCategory, Value: r.PrimaryCategory},
		{Key: KeyMarketPosition, Value: r.MarketPosition},
		{Key: KeyCompetitiveRank, Value: rank},
		{Key: KeyAllCategories, Value: all},
	}
}
