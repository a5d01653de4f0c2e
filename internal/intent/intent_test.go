package intent

import (
	"testing"

	"trading-assistant/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		text string
		want domain.Intent
	}{
		{"give me a trend analysis for BTC", domain.IntentPrediction},
		{"Predict BTC price movement 15m", domain.IntentPrediction},
		{"is ETH bullish right now?", domain.IntentPrediction},
		{"Full tokenomics analysis for Ethereum", domain.IntentPrediction},
		{"What's the circulating supply of ETH?", domain.IntentTokenomics},
		{"Should I invest in Solana?", domain.IntentTokenomics},
		{"market cap of dogecoin", domain.IntentTokenomics},
		{"What's happening in the market?", domain.IntentNews},
		{"any crypto news today", domain.IntentNews},
		{"run a monte carlo for my strategy", domain.IntentMonteCarlo},
		{"build a portfolio, I have $500", domain.IntentPortfolio},
		{"how do I diversify rs 2000?", domain.IntentPortfolio},
		{"I have $500, where do I start?", domain.IntentGeneric},
		{"help me diversify", domain.IntentGeneric},
		{"I have a question: what is staking?", domain.IntentGeneric},
		{"what does capital preservation mean for beginners?", domain.IntentGeneric},
		{"I have heard about stablecoins, explain them", domain.IntentGeneric},
		{"what are the trading hours of exchanges", domain.IntentGeneric},
		{"hello there", domain.IntentGeneric},
		{"", domain.IntentGeneric},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.text))
		})
	}
}

func TestClassifyPredictionBeatsEveryOtherKeyword(t *testing.T) {
	for _, text := range []string{
		"tokenomics and support levels",
		"news about the bitcoin chart",
		"monte carlo forecast",
		"portfolio resistance",
	} {
		assert.Equal(t, domain.IntentPrediction, Classify(text), text)
	}
}

func TestExtractInvestmentAmount(t *testing.T) {
	v, ok := ExtractInvestmentAmount("tokenomics for bitcoin with $1,500.50 investment")
	assert.True(t, ok)
	assert.InDelta(t, 1500.50, v, 1e-9)

	v, ok = ExtractInvestmentAmount("supply of eth if I put in 250")
	assert.True(t, ok)
	assert.InDelta(t, 250, v, 1e-9)

	v, ok = ExtractInvestmentAmount("circulating supply of eth")
	assert.False(t, ok)
	assert.Equal(t, DefaultInvestment, v)

	v, ok = ExtractInvestmentAmount("put $0 in")
	assert.False(t, ok)
	assert.Equal(t, DefaultInvestment, v)
}

func TestExtractCapital(t *testing.T) {
	v, ok := ExtractCapital("I have 500 dollars and 2 hours")
	assert.True(t, ok)
	assert.Equal(t, 500.0, v)

	v, ok = ExtractCapital("starting with $1,000")
	assert.True(t, ok)
	assert.Equal(t, 1000.0, v)

	v, ok = ExtractCapital("I have $0")
	assert.True(t, ok)
	assert.Zero(t, v)

	_, ok = ExtractCapital("I have some money")
	assert.False(t, ok)
}

func TestExtractTradingPair(t *testing.T) {
	cases := map[string]string{
		"Predict BTC price movement":           "BTCUSDT",
		"where will solana go":                 "SOLUSDT",
		"forecast for near protocol":           "NEARUSDT",
		"stop levels for chainlink":            "LINKUSDT",
		"chart of the internet computer token": "ICPUSDT",
		"what is the trend":                    DefaultTradingPair,
	}
	for text, want := range cases {
		assert.Equal(t, want, ExtractTradingPair(text), text)
	}
}

func TestExtractTimeframe(t *testing.T) {
	cases := map[string]string{
		"predict btc 15m":             "15m",
		"predict btc 5m":              "5m",
		"eth on the 4h chart":         "4h",
		"one 1 hour candle":           "1h",
		"daily outlook for sol":       "1d",
		"what happens today on chart": DefaultTimeframe,
		"forecast":                    DefaultTimeframe,
	}
	for text, want := range cases {
		assert.Equal(t, want, ExtractTimeframe(text), text)
	}
}

func TestIsPortfolioRequest(t *testing.T) {
	assert.True(t, IsPortfolioRequest("How should I allocate $300?"))
	assert.True(t, IsPortfolioRequest("Portfolio for 1,500"))
	assert.False(t, IsPortfolioRequest("How should I allocate?"))
	assert.False(t, IsPortfolioRequest("my capital is $300"))
	assert.False(t, IsPortfolioRequest("the years ahead"))
}

func TestRiskAppetite(t *testing.T) {
	assert.Equal(t, RiskHigh, RiskAppetite("I have $500, go aggressive"))
	assert.Equal(t, RiskMedium, RiskAppetite("moderate portfolio for $900"))
	assert.Equal(t, RiskLow, RiskAppetite("I have $500"))
}
