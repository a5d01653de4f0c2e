package domain

import (
	"encoding/json"
	"time"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type TurnKind string

const (
	KindText       TurnKind = "text"
	KindTokenomics TurnKind = "tokenomics"
	KindPrediction TurnKind = "prediction"
	KindNews       TurnKind = "news"
	KindMonteCarlo TurnKind = "montecarlo"
	KindPortfolio  TurnKind = "portfolio"
	KindChart      TurnKind = "chart"
)

// ChatMessage is a role/content pair as sent to the language model.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ConversationTurn is one message of a conversation. Payload carries the
// kind-specific structured result as JSON.
type ConversationTurn struct {
	Role      Role            `json:"role"`
	Kind      TurnKind        `json:"kind"`
	Content   string          `json:"content"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// TokenomicsPayload is the structured result of a tokenomics turn.
type TokenomicsPayload struct {
	CoinID     string        `json:"coin_id"`
	TokenName  string        `json:"token_name"`
	Investment float64       `json:"investment"`
	Resolution Resolution    `json:"resolution"`
	Metrics    *MetricRecord `json:"metrics"`
	Narrative  string        `json:"narrative"`
}

type NewsPayload struct {
	Headlines []Headline  `json:"headlines"`
	Mood      *MarketMood `json:"mood,omitempty"`
}

type PortfolioPayload struct {
	Capital    float64               `json:"capital"`
	Risk       string                `json:"risk"`
	Allocation []PortfolioAllocation `json:"allocation"`
}
