package tokenomics

import (
	"strconv"
	"strings"

	"trading-assistant/internal/domain"
)

// BasicInfo identifies the token and its chain.
type BasicInfo struct {
	Name             string `json:"name"`
	Symbol           string `json:"symbol"`
	Description      string `json:"description"`
	Website          string `json:"website"`
	Blockchain       string `json:"blockchain"`
	ContractAddress  string `json:"contract_address"`
	GenesisDate      string `json:"genesis_date"`
	BlockTimeMinutes string `json:"block_time_minutes"`
	HashingAlgorithm string `json:"hashing_algorithm"`
	LastUpdated      string `json:"last_updated"`
}

func DeriveBasicInfo(snap *domain.CoinSnapshot) BasicInfo {
	info := BasicInfo{
		Name:             snap.Name,
		Symbol:           strings.ToUpper(snap.Symbol),
		Description:      cleanDescription(snap.Description.EN),
		Website:          homepage(snap.Links.Homepage),
		Blockchain:       platformName(snap.AssetPlatformID),
		ContractAddress:  snap.ContractAddress,
		GenesisDate:      orNA(snap.GenesisDate),
		BlockTimeMinutes: notAvailable,
		HashingAlgorithm: orNA(snap.HashingAlgorithm),
		LastUpdated:      datePart(snap.MarketData.LastUpdated),
	}
	if strings.TrimSpace(info.Name) == "" {
		info.Name = "Unknown"
	}
	if strings.TrimSpace(info.ContractAddress) == "" {
		info.ContractAddress = "Native Token"
	}
	if snap.BlockTimeInMinutes.Set {
		info.BlockTimeMinutes = strconv.FormatFloat(snap.BlockTimeInMinutes.Value, 'f', -1, 64)
	}
	return info
}

// homepage joins the first two non-empty homepage links.
func homepage(links []string) string {
	if len(links) > 2 {
		links = links[:2]
	}
	kept := make([]string, 0, len(links))
	for _, l := range links {
		if l = strings.TrimSpace(l); l != "" {
			kept = append(kept, l)
		}
	}
	if len(kept) == 0 {
		return notAvailable
	}
	return strings.Join(kept, ", ")
}

func (BasicInfo) GroupName() string { return "basic_info" }

func (b BasicInfo) Entries() []domain.Metric {
	return []domain.Metric{
		{Key: KeyTokenName, Value: b.Name},
		{Key: KeySymbol, Value: b.Symbol},
		{Key: KeyDescription, Value: b.Description},
		{Key: KeyWebsite, Value: b.Website},
		{Key: KeyBlockchain, Value: b.Blockchain},
		{Key: KeyContractAddress, Value: b.ContractAddress},
		{Key: KeyGenesisDate, Value: b.GenesisDate},
		{Key: KeyBlockTime, Value: b.BlockTimeMinutes},
		{Key: KeyHashing, Value: b.HashingAlgorithm},
		{Key: KeyLastUpdated, Value: b.LastUpdated},
	}
}
