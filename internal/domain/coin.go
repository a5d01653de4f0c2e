package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Decimal is an optional number decoded leniently from provider payloads.
// JSON numbers and numeric strings set it; null, absent or malformed values
// leave it unset so formatters can degrade instead of failing the decode.
type Decimal struct {
	Value float64
	Set   bool
}

func Dec(v float64) Decimal {
	return Decimal{Value: v, Set: true}
}

func (d *Decimal) UnmarshalJSON(b []byte) error {
	*d = Decimal{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	raw := string(b)
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		raw = strings.TrimSpace(s)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	*d = Decimal{Value: v, Set: true}
	return nil
}

func (d Decimal) MarshalJSON() ([]byte, error) {
	if !d.Set {
		return []byte("null"), nil
	}
	return json.Marshal(d.Value)
}

// Or returns the value, or def when unset.
func (d Decimal) Or(def float64) float64 {
	if !d.Set {
		return def
	}
	return d.Value
}

// Positive reports whether the value is set and strictly greater than zero.
func (d Decimal) Positive() bool {
	return d.Set && d.Value > 0
}

// CurrencyMap holds per-currency values such as {"usd": 97000}.
type CurrencyMap map[string]Decimal

func (m CurrencyMap) USD() Decimal {
	if m == nil {
		return Decimal{}
	}
	return m["usd"]
}

type CoinLinks struct {
	Homepage []string `json:"homepage"`
}

type CoinDescription struct {
	EN string `json:"en"`
}

type MarketData struct {
	CurrentPrice                  CurrencyMap       `json:"current_price"`
	MarketCap                     CurrencyMap       `json:"market_cap"`
	MarketCapRank                 Decimal           `json:"market_cap_rank"`
	TotalVolume                   CurrencyMap       `json:"total_volume"`
	CirculatingSupply             Decimal           `json:"circulating_supply"`
	TotalSupply                   Decimal           `json:"total_supply"`
	MaxSupply                     Decimal           `json:"max_supply"`
	ATH                           CurrencyMap       `json:"ath"`
	ATHChangePercentage           CurrencyMap       `json:"ath_change_percentage"`
	ATHDate                       map[string]string `json:"ath_date"`
	ATL                           CurrencyMap       `json:"atl"`
	ATLChangePercentage           CurrencyMap       `json:"atl_change_percentage"`
	ATLDate                       map[string]string `json:"atl_date"`
	PriceChangePercentage1hInCur  CurrencyMap       `json:"price_change_percentage_1h_in_currency"`
	PriceChangePercentage24hInCur CurrencyMap       `json:"price_change_percentage_24h_in_currency"`
	PriceChangePercentage7dInCur  CurrencyMap       `json:"price_change_percentage_7d_in_currency"`
	PriceChangePercentage30dInCur CurrencyMap       `json:"price_change_percentage_30d_in_currency"`
	PriceChangePercentage1yInCur  CurrencyMap       `json:"price_change_percentage_1y_in_currency"`
	LastUpdated                   string            `json:"last_updated"`
}

type CommunityData struct {
	TwitterFollowers         Decimal `json:"twitter_followers"`
	RedditSubscribers        Decimal `json:"reddit_subscribers"`
	TelegramChannelUserCount Decimal `json:"telegram_channel_user_count"`
}

type DeveloperData struct {
	Forks             Decimal `json:"forks"`
	Stars             Decimal `json:"stars"`
	Subscribers       Decimal `json:"subscribers"`
	CommitCount4Weeks Decimal `json:"commit_count_4_weeks"`
}

type TickerMarket struct {
	Name string `json:"name"`
}

type Ticker struct {
	Base            string       `json:"base"`
	Target          string       `json:"target"`
	Market          TickerMarket `json:"market"`
	ConvertedVolume CurrencyMap  `json:"converted_volume"`
}

// CoinSnapshot is the point-in-time provider payload for one asset.
type CoinSnapshot struct {
	ID                 string          `json:"id"`
	Symbol             string          `json:"symbol"`
	Name               string          `json:"name"`
	AssetPlatformID    string          `json:"asset_platform_id"`
	ContractAddress    string          `json:"contract_address"`
	GenesisDate        string          `json:"genesis_date"`
	BlockTimeInMinutes Decimal         `json:"block_time_in_minutes"`
	HashingAlgorithm   string          `json:"hashing_algorithm"`
	Categories         []string        `json:"categories"`
	Description        CoinDescription `json:"description"`
	Links              CoinLinks       `json:"links"`
	MarketData         MarketData      `json:"market_data"`
	CommunityData      CommunityData   `json:"community_data"`
	DeveloperData      DeveloperData   `json:"developer_data"`
	Tickers            []Ticker        `json:"tickers"`
}

// CoinListing is one entry of the provider coin directory.
type CoinListing struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}
