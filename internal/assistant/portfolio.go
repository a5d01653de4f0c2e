package assistant

import (
	"errors"
	"math"
	"strings"

	"trading-assistant/internal/domain"
	"trading-assistant/internal/intent"
)

var ErrInvalidCapital = errors.New("capital must be positive")

type slice struct {
	asset string
	pct   int
}

var allocations = map[string][]slice{
	intent.RiskLow: {
		{"Bitcoin (BTC)", 45},
		{"Ethereum (ETH)", 30},
		{"Top Altcoins", 15},
		{"Learning / Cash", 10},
	},
	intent.RiskMedium: {
		{"Bitcoin (BTC)", 35},
		{"Ethereum (ETH)", 25},
		{"Strong Altcoins", 25},
		{"High Risk / Learning", 15},
	},
	intent.RiskHigh: {
		{"Bitcoin (BTC)", 25},
		{"Ethereum (ETH)", 20},
		{"Altcoins", 35},
		{"High Risk", 20},
	},
}

// BuildBeginnerPortfolio splits capital across the educational allocation
// for the risk profile. Unknown profiles are treated as high risk.
func BuildBeginnerPortfolio(capital float64, risk string) ([]domain.PortfolioAllocation, error) {
	if capital <= 0 || math.IsNaN(capital) || math.IsInf(capital, 0) {
		return nil, ErrInvalidCapital
	}
	table, ok := allocations[risk]
	if !ok {
		table = allocations[intent.RiskHigh]
	}
	out := make([]domain.PortfolioAllocation, 0, len(table))
	for _, sl := range table {
		out = append(out, domain.PortfolioAllocation{
			Asset:      sl.asset,
			Percentage: sl.pct,
			Amount:     math.Round(capital*float64(sl.pct)) / 100,
		})
	}
	return out, nil
}

// RenderPortfolio formats an allocation as the markdown reply.
func RenderPortfolio(capital float64, allocation []domain.PortfolioAllocation) string {
	var sb strings.Builder
	printer.Fprintf(&sb, "### 📊 Beginner Portfolio (Capital: $%.2f)\n\n", capital)
	for _, a := range allocation {
		printer.Fprintf(&sb, "- **%s** → $%.2f (%d%%)\n", a.Asset, a.Amount, a.Percentage)
	}
	sb.WriteString("\n📌 **Rules:**\n")
	sb.WriteString("• Risk max **1–2% per trade**\n")
	sb.WriteString("• No leverage for beginners\n")
	sb.WriteString("• Focus on learning consistency, not fast money\n")
	sb.WriteString("\nWould you like me to:\n")
	sb.WriteString("1️⃣ Adjust this for trading instead of investing?\n")
	sb.WriteString("2️⃣ Pick specific coins?\n")
	sb.WriteString("3️⃣ Simulate outcomes using Monte Carlo?")
	return sb.String()
}
