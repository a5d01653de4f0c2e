package intent

import (
	"regexp"
	"strings"
)

const (
	DefaultTradingPair = "BTCUSDT"
	DefaultTimeframe   = "15m"
)

type mapping struct {
	value string
	re    *regexp.Regexp
}

func newMappings(pairs ...string) []mapping {
	out := make([]mapping, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, mapping{
			value: pairs[i+1],
			re:    regexp.MustCompile(`\b` + regexp.QuoteMeta(pairs[i]) + `\b`),
		})
	}
	return out
}

// Matched as whole words in table order; the first hit wins.
var tradingPairs = newMappings(
	"btc", "BTCUSDT", "bitcoin", "BTCUSDT", "xbt", "BTCUSDT",
	"eth", "ETHUSDT", "ethereum", "ETHUSDT",
	"bnb", "BNBUSDT", "binance", "BNBUSDT",
	"sol", "SOLUSDT", "solana", "SOLUSDT",
	"ada", "ADAUSDT", "cardano", "ADAUSDT",
	"avax", "AVAXUSDT", "avalanche", "AVAXUSDT",
	"dot", "DOTUSDT", "polkadot", "DOTUSDT",
	"atom", "ATOMUSDT", "cosmos", "ATOMUSDT",
	"near", "NEARUSDT", "near protocol", "NEARUSDT",
	"algo", "ALGOUSDT", "algorand", "ALGOUSDT",
	"apt", "APTUSDT", "aptos", "APTUSDT",
	"sui", "SUIUSDT", "sui network", "SUIUSDT",
	"matic", "MATICUSDT", "polygon", "MATICUSDT",
	"op", "OPUSDT", "optimism", "OPUSDT",
	"arb", "ARBUSDT", "arbitrum", "ARBUSDT",
	"imx", "IMXUSDT", "immutable", "IMXUSDT",
	"doge", "DOGEUSDT", "dogecoin", "DOGEUSDT",
	"shib", "SHIBUSDT", "shiba", "SHIBUSDT", "shiba inu", "SHIBUSDT",
	"pepe", "PEPEUSDT", "pepe coin", "PEPEUSDT",
	"floki", "FLOKIUSDT", "floki inu", "FLOKIUSDT",
	"usdt", "USDTUSDT", "tether", "USDTUSDT",
	"usdc", "USDCUSDT", "usd coin", "USDCUSDT",
	"dai", "DAIUSDT",
	"busd", "BUSDUSDT", "binance usd", "BUSDUSDT",
	"tusd", "TUSDUSDT", "trueusd", "TUSDUSDT",
	"xrp", "XRPUSDT", "ripple", "XRPUSDT",
	"ltc", "LTCUSDT", "litecoin", "LTCUSDT",
	"link", "LINKUSDT", "chainlink", "LINKUSDT",
	"uni", "UNIUSDT", "uniswap", "UNIUSDT",
	"aave", "AAVEUSDT",
	"comp", "COMPUSDT", "compound", "COMPUSDT",
	"sand", "SANDUSDT", "sandbox", "SANDUSDT",
	"mana", "MANAUSDT", "decentraland", "MANAUSDT",
	"axs", "AXSUSDT", "axie", "AXSUSDT",
	"rndr", "RNDRUSDT", "render", "RNDRUSDT",
	"gala", "GALAUSDT",
	"fil", "FILUSDT", "filecoin", "FILUSDT",
	"icp", "ICPUSDT", "internet computer", "ICPUSDT",
	"hbar", "HBARUSDT", "hedera", "HBARUSDT",
)

var timeframes = newMappings(
	"1m", "1m", "1 minute", "1m", "1min", "1m",
	"5m", "5m", "5 minute", "5m", "5min", "5m",
	"15m", "15m", "15 minute", "15m", "15min", "15m",
	"1h", "1h", "1 hour", "1h", "1hr", "1h", "hourly", "1h",
	"4h", "4h", "4 hour", "4h", "4hr", "4h",
	"1d", "1d", "daily", "1d", "day", "1d",
)

// ExtractTradingPair maps a coin mention to its USDT pair, BTCUSDT when
// nothing is mentioned.
func ExtractTradingPair(text string) string {
	return firstMatch(text, tradingPairs, DefaultTradingPair)
}

// ExtractTimeframe picks the candle interval of a prediction request,
// 15m by default.
func ExtractTimeframe(text string) string {
	return firstMatch(text, timeframes, DefaultTimeframe)
}

func firstMatch(text string, table []mapping, def string) string {
	lower := strings.ToLower(text)
	for _, m := range table {
		if m.re.MatchString(lower) {
			return m.value
		}
	}
	return def
}
