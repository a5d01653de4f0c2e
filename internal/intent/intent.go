package intent

import (
	"regexp"
	"strconv"
	"strings"

	"trading-assistant/internal/domain"
)

// DefaultInvestment is assumed when a tokenomics request names no amount.
const DefaultInvestment = 1000.0

// Portfolio risk profiles.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

var (
	predictionKeywords = []string{
		"predict", "forecast", "next move", "price prediction",
		"where will", "target price", "technical analysis", "trend",
		"analysis", "chart", "bullish", "bearish", "support", "resistance",
	}
	tokenomicsKeywords = []string{
		"tokenomics", "supply", "fdv", "market cap", "circulating",
		"should i invest", "inflation rate", "token economics", "coin analysis",
		"comprehensive analysis", "full analysis", "detailed analysis",
	}
	newsKeywords       = []string{"news", "market", "happening"}
	monteCarloKeywords = []string{"monte carlo", "simulation"}
	portfolioKeywords  = []string{"portfolio", "allocate", "allocation", "diversify"}
	highRiskKeywords   = []string{"high risk", "aggressive", "risky"}
	mediumRiskKeywords = []string{"medium risk", "moderate", "balanced"}

	amountPattern = regexp.MustCompile(`\$?(\d+(?:,\d{3})*(?:\.\d{2})?)`)
)

// Classify routes free text to one intent. Prediction keywords win over
// everything else, so "trend analysis" is never a tokenomics request.
// Tokenomics, news, Monte Carlo and portfolio follow in that order; anything
// else is generic chat.
func Classify(text string) domain.Intent {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, predictionKeywords):
		return domain.IntentPrediction
	case containsAny(lower, tokenomicsKeywords):
		return domain.IntentTokenomics
	case containsAny(lower, newsKeywords):
		return domain.IntentNews
	case containsAny(lower, monteCarloKeywords):
		return domain.IntentMonteCarlo
	case IsPortfolioRequest(lower):
		return domain.IntentPortfolio
	default:
		return domain.IntentGeneric
	}
}

// IsPortfolioRequest reports whether the text explicitly asks for a
// portfolio or allocation and names an amount, e.g. "build a portfolio with
// $500". Mentioning money alone ("I have a question") stays generic chat.
func IsPortfolioRequest(text string) bool {
	if !containsAny(strings.ToLower(text), portfolioKeywords) {
		return false
	}
	_, ok := ExtractCapital(text)
	return ok
}

// RiskAppetite maps wording like "aggressive" or "moderate" to one of the
// portfolio risk profiles. Beginners default to low.
func RiskAppetite(text string) string {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, highRiskKeywords):
		return RiskHigh
	case containsAny(lower, mediumRiskKeywords):
		return RiskMedium
	default:
		return RiskLow
	}
}

// ExtractInvestmentAmount returns the first dollar-like amount in text,
// e.g. "$1,500.00" or "250". ok is false when there is none and the default
// should be used.
func ExtractInvestmentAmount(text string) (float64, bool) {
	m := amountPattern.FindStringSubmatch(text)
	if m == nil {
		return DefaultInvestment, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil || v <= 0 {
		return DefaultInvestment, false
	}
	return v, true
}

// ExtractCapital returns the first amount in text, used as the starting
// capital of a portfolio request. Zero is returned as found so callers can
// reject it.
func ExtractCapital(text string) (float64, bool) {
	m := amountPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
