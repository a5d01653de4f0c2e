package assistant

import (
	"encoding/json"
	"fmt"

	"trading-assistant/internal/advisor"
	"trading-assistant/internal/domain"
	"trading-assistant/internal/ta"
)

// MaxHistoryMessages bounds the model input, system prompt included.
const MaxHistoryMessages = 20

// TrimHistory keeps a leading system message plus the newest
// MaxHistoryMessages-1 messages.
func TrimHistory(messages []domain.ChatMessage) []domain.ChatMessage {
	if len(messages) <= MaxHistoryMessages {
		return messages
	}
	if messages[0].Role == domain.RoleSystem {
		out := make([]domain.ChatMessage, 0, MaxHistoryMessages)
		out = append(out, messages[0])
		return append(out, messages[len(messages)-(MaxHistoryMessages-1):]...)
	}
	return messages[len(messages)-MaxHistoryMessages:]
}

// Flatten renders stored turns as plain chat messages, opened by the persona
// system prompt. Structured assistant turns become short text summaries.
func Flatten(userName string, turns []domain.ConversationTurn) []domain.ChatMessage {
	out := make([]domain.ChatMessage, 0, len(turns)+1)
	out = append(out, domain.ChatMessage{Role: domain.RoleSystem, Content: advisor.BuildSystemPrompt(userName)})
	for _, t := range turns {
		switch t.Role {
		case domain.RoleSystem:
			continue
		case domain.RoleAssistant:
			out = append(out, domain.ChatMessage{Role: domain.RoleAssistant, Content: flattenAssistant(t)})
		default:
			out = append(out, domain.ChatMessage{Role: domain.RoleUser, Content: t.Content})
		}
	}
	return out
}

func flattenAssistant(t domain.ConversationTurn) string {
	if len(t.Payload) == 0 {
		return t.Content
	}
	switch t.Kind {
	case domain.KindTokenomics:
		var p struct {
			TokenName string `json:"token_name"`
			Narrative string `json:"narrative"`
		}
		if json.Unmarshal(t.Payload, &p) != nil {
			return t.Content
		}
		name := p.TokenName
		if name == "" {
			name = "token"
		}
		summary := fmt.Sprintf("Comprehensive tokenomics analysis completed for %s.", name)
		if p.Narrative == "" {
			return summary
		}
		return summary + "\n\nAI Explanation: " + p.Narrative
	case domain.KindPrediction:
		var p domain.Prediction
		if json.Unmarshal(t.Payload, &p) != nil {
			return t.Content
		}
		return fmt.Sprintf("Prediction for %s: Bias %s, Strength %.1f\nPlan:\n%s", p.Symbol, ta.BiasLabel(p.Bias), p.Strength, p.Plan)
	case domain.KindNews:
		var p domain.NewsPayload
		if json.Unmarshal(t.Payload, &p) != nil {
			return t.Content
		}
		return "News headlines:\n" + advisor.FormatHeadlines(p.Headlines)
	default:
		return t.Content
	}
}
