package resolver

type alias struct {
	key    string
	coinID string
}

// Checked in order, so short symbols listed early win over longer names
// that contain them ("wbtc" resolves to bitcoin through "btc").
var aliases = []alias{
	{"btc", "bitcoin"}, {"bitcoin", "bitcoin"},
	{"eth", "ethereum"}, {"ethereum", "ethereum"},
	{"ada", "cardano"}, {"cardano", "cardano"},
	{"sol", "solana"}, {"solana", "solana"},
	{"doge", "dogecoin"}, {"dogecoin", "dogecoin"},
	{"shib", "shiba-inu"}, {"shiba", "shiba-inu"},
	{"matic", "polygon"}, {"polygon", "polygon"},
	{"avax", "avalanche-2"}, {"avalanche", "avalanche-2"},
	{"dot", "polkadot"}, {"polkadot", "polkadot"},
	{"link", "chainlink"}, {"chainlink", "chainlink"},
	{"uni", "uniswap"}, {"uniswap", "uniswap"},
	{"xrp", "ripple"}, {"ripple", "ripple"},
	{"ltc", "litecoin"}, {"litecoin", "litecoin"},
	{"bnb", "binancecoin"}, {"binance", "binancecoin"},
	{"usdt", "tether"}, {"tether", "tether"},
	{"usdc", "usd-coin"},
	{"steth", "staked-ether"},
	{"ton", "the-open-network"},
	{"trx", "tron"},
	{"wbtc", "wrapped-bitcoin"},
	{"leo", "leo-token"},
	{"pepe", "pepe"},
	{"near", "near"},
	{"dai", "dai"},
	{"kas", "kaspa"},
	{"icp", "internet-computer"},
	{"apt", "aptos"},
	{"pol", "polymath"},
	{"render", "render-token"},
	{"arb", "arbitrum"},
	{"vechain", "vechain"}, {"vet", "vechain"},
	{"algo", "algorand"},
	{"imx", "immutable-x"},
	{"op", "optimism"},
	{"inj", "injective-protocol"},
	{"fil", "filecoin"},
	{"hbar", "hedera-hashgraph"},
	{"sui", "sui"},
	{"atom", "cosmos"},
	{"grt", "the-graph"},
	{"rune", "thorchain"},
	{"sei", "sei-network"},
	{"tia", "celestia"},
	{"aave", "aave"},
	{"floki", "floki"},
	{"rndr", "render-token"},
	{"busd", "binance-usd"},
	{"tusd", "true-usd"},
	{"compound", "compound-governance-token"},
	{"sandbox", "the-sandbox"},
	{"decentraland", "decentraland"},
	{"axie", "axie-infinity"},
}

// Ticker symbols that also occur inside ordinary words ("comp" in
// "company", "mana" in "manage"). They match only a query that is exactly
// the symbol, which is how trading pair bases arrive.
var exactSymbols = map[string]string{
	"comp": "compound-governance-token",
	"sand": "the-sandbox",
	"mana": "decentraland",
	"axs":  "axie-infinity",
	"gala": "gala",
}
