package advisor

import (
	"encoding/json"
	"fmt"
	"strings"

	"trading-assistant/internal/domain"
	"trading-assistant/internal/tokenomics"
)

const assistantPersona = `You are Nunno, a friendly AI tutor that teaches trading and investing to complete beginners in very simple language.
The user's name is %s. Tailor every explanation to someone new to markets.

You have built-in tools for tokenomics analysis, price prediction, market news, beginner portfolios and Monte Carlo simulation. When a question could use one of them, say so and offer to run it.

Rules:
- Explain each metric in plain words and say why it matters.
- Never refuse beginner financial education questions. Give educational examples, models and sample allocations, not personal financial advice.
- When asked about capital, allocation or what to do with money, educate with a structured example plan.
- If something is unclear, ask a follow-up question instead of refusing.
- Tone: simple, calm, beginner-friendly. Format with headings, bullet points and emojis.`

// BuildSystemPrompt returns the persona that opens every conversation.
func BuildSystemPrompt(userName string) string {
	if strings.TrimSpace(userName) == "" {
		userName = "User"
	}
	return fmt.Sprintf(assistantPersona, userName)
}

// keyMetric selects one record entry for the narrative prompt.
type keyMetric struct {
	label string
	keys  []string
}

var narrativeMetrics = []keyMetric{
	{"Token", []string{tokenomics.KeyTokenName, tokenomics.KeySymbol}},
	{"Price", []string{tokenomics.KeyCurrentPrice}},
	{"Market_Cap", []string{tokenomics.KeyMarketCap}},
	{"Rank", []string{tokenomics.KeyMarketCapRank}},
	{"Supply_Model", []string{tokenomics.KeySupplyModel}},
	{"Circulating_Percentage", []string{tokenomics.KeyCirculatingPercentage}},
	{"FDV_Ratio", []string{tokenomics.KeyFDVToMcap}},
	{"Risk_Level", []string{tokenomics.KeyRiskLevel}},
	{"Liquidity_Score", []string{tokenomics.KeyLiquidityScore}},
	{"Social_Score", []string{tokenomics.KeySocialScore}},
	{"Development_Activity", []string{tokenomics.KeyDevelopment}},
	{"Investment_Recommendation", []string{tokenomics.KeyRecommendation}},
}

// BuildNarrativePrompt embeds the key metrics of record as indented JSON,
// in a fixed order, followed by the five points the explanation covers.
func BuildNarrativePrompt(record *domain.MetricRecord, userName string) (string, error) {
	if strings.TrimSpace(userName) == "" {
		userName = "User"
	}

	summary := domain.NewMetricRecord()
	if err := summary.Merge(narrativeSummary{record}); err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode key metrics: %w", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Explain this tokenomics analysis to %s in simple, beginner-friendly terms.\n", userName)
	sb.WriteString("Break down what each metric means and why it matters for investors:\n\n")
	sb.Write(data)
	sb.WriteString("\n\nFocus on:\n")
	sb.WriteString("1. What the price and market cap tell us\n")
	sb.WriteString("2. Why supply metrics matter (inflation/deflation)\n")
	sb.WriteString("3. What the risk assessment means\n")
	sb.WriteString("4. How liquidity affects trading\n")
	sb.WriteString("5. Whether this looks like a good investment opportunity\n\n")
	sb.WriteString("Keep it conversational and educational, not financial advice.")
	return sb.String(), nil
}

type narrativeSummary struct {
	record *domain.MetricRecord
}

func (narrativeSummary) GroupName() string { return "narrative_summary" }

func (n narrativeSummary) Entries() []domain.Metric {
	out := make([]domain.Metric, 0, len(narrativeMetrics))
	for _, km := range narrativeMetrics {
		values := make([]string, 0, len(km.keys))
		for _, k := range km.keys {
			values = append(values, n.record.Value(k, "N/A"))
		}
		v := values[0]
		if len(values) == 2 {
			v = fmt.Sprintf("%s (%s)", values[0], values[1])
		}
		out = append(out, domain.Metric{Key: km.label, Value: v})
	}
	return out
}

// BuildNewsPrompt asks for a beginner explanation of the headlines.
func BuildNewsPrompt(headlines []domain.Headline) string {
	var sb strings.Builder
	sb.WriteString("Explain these news headlines in simple terms for a beginner trader:\n")
	sb.WriteString(FormatHeadlines(headlines))
	return sb.String()
}

// FormatHeadlines renders one "- title (source)" line per headline.
func FormatHeadlines(headlines []domain.Headline) string {
	lines := make([]string, 0, len(headlines))
	for _, h := range headlines {
		if h.Source != "" {
			lines = append(lines, fmt.Sprintf("- %s (%s)", h.Title, h.Source))
		} else {
			lines = append(lines, "- "+h.Title)
		}
	}
	return strings.Join(lines, "\n")
}
