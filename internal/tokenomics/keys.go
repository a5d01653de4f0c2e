package tokenomics

// Metric keys of the unified record. Each key belongs to exactly one group.
const (
	KeyTokenName       = "Token_Name"
	KeySymbol          = "Symbol"
	KeyDescription     = "Description"
	KeyWebsite         = "Website"
	KeyBlockchain      = "Blockchain"
	KeyContractAddress = "Contract_Address"
	KeyGenesisDate     = "Genesis_Date"
	KeyBlockTime       = "Block_Time_Minutes"
	KeyHashing         = "Hashing_Algorithm"
	KeyLastUpdated     = "Market_Data_Last_Updated"

	KeyCurrentPrice       = "Current_Price"
	KeyMarketCap          = "Market_Cap"
	KeyMarketCapRank      = "Market_Cap_Rank"
	KeyVolume24h          = "24h_Volume"
	KeyVolumeToMcap       = "Volume_to_MCap_Ratio"
	KeyFDV                = "Fully_Diluted_Valuation"
	KeyMaxFDV             = "Max_Fully_Diluted_Valuation"
	KeyFDVToMcap          = "FDV_to_MCap_Ratio"
	KeyInvestmentTokens   = "Investment_Tokens"
	KeyMarketCapCategory  = "Market_Cap_Category"
	KeyPriceRangePosition = "Price_Range_Position"

	KeyCirculatingSupply     = "Circulating_Supply"
	KeyTotalSupply           = "Total_Supply"
	KeyMaxSupply             = "Max_Supply"
	KeyCirculatingPercentage = "Circulating_Percentage"
	KeyInflationRate         = "Supply_Inflation_Rate"
	KeySupplyModel           = "Supply_Model"
	KeyUnreleasedValue       = "Unreleased_Token_Value"
	KeyFutureDilution        = "Future_Dilution_Risk"
	KeyReleaseTimeline       = "Token_Release_Timeline"
	KeySupplyDistribution    = "Supply_Distribution"

	KeyPriceChange1h  = "Price_Change_1h"
	KeyPriceChange24h = "Price_Change_24h"
	KeyPriceChange7d  = "Price_Change_7d"
	KeyPriceChange30d = "Price_Change_30d"
	KeyPriceChange1y  = "Price_Change_1y"
	KeyATH            = "All_Time_High"
	KeyATHDate        = "ATH_Date"
	KeyDistanceATH    = "Distance_from_ATH"
	KeyATL            = "All_Time_Low"
	KeyATLDate        = "ATL_Date"
	KeyDistanceATL    = "Distance_from_ATL"

	KeyExchangeCount  = "Exchange_Count"
	KeyTopExchange    = "Top_Exchange"
	KeyExchangeVolume = "Total_Exchange_Volume"
	KeyLiquidityScore = "Liquidity_Score"

	KeyTwitterFollowers   = "Twitter_Followers"
	KeyRedditSubscribers  = "Reddit_Subscribers"
	KeyTelegramUsers      = "Telegram_Users"
	KeySocialScore        = "Social_Media_Score"
	KeyGitHubStars        = "GitHub_Stars"
	KeyGitHubForks        = "GitHub_Forks"
	KeyGitHubCommits      = "GitHub_Commits_4w"
	KeyGitHubContributors = "GitHub_Contributors"
	KeyDevelopment        = "Development_Activity"

	KeyRiskLevel       = "Risk_Level"
	KeyRiskScore       = "Risk_Score"
	KeyRiskFactors     = "Risk_Factors"
	KeyRecommendation  = "Investment_Recommendation"
	KeyPrimaryCategory = "Primary_Category"
	KeyMarketPosition  = "Market_Position"
	KeyCompetitiveRank = "Competitive_Rank"
	KeyAllCategories   = "All_Categories"
)

// Per-timeframe key prefixes; the timeframe label is appended, e.g. CAGR_30d.
const (
	KeyPrefixPerformance = "Performance_"
	KeyPrefixCAGR        = "CAGR_"
	KeyPrefixSharpe      = "Sharpe_Ratio_"
	KeyPrefixDrawdown    = "Max_Drawdown_"
	KeyPrefixAvgVolume   = "Avg_Volume_"
	KeyPrefixVolumeTrend = "Volume_Trend_"
)
