package bot

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"trading-assistant/internal/domain"
	"trading-assistant/internal/tokenomics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type stubAssistant struct {
	turn domain.ConversationTurn
	err  error

	gotID, gotUser, gotText string
}

func (s *stubAssistant) Handle(_ context.Context, id, user, text string) (domain.ConversationTurn, error) {
	s.gotID, s.gotUser, s.gotText = id, user, text
	return s.turn, s.err
}

func TestStartTelegramBotSkipsWithoutToken(t *testing.T) {
	tb, err := StartTelegramBot("", &stubAssistant{})
	require.NoError(t, err)
	assert.Nil(t, tb)
}

func TestCommandText(t *testing.T) {
	cases := []struct {
		cmd   string
		args  []string
		text  string
		usage bool
	}{
		{"/analyze", []string{"eth"}, "tokenomics of eth", false},
		{"/analyze", nil, "", true},
		{"/predict", []string{"BTCUSDT", "4h"}, "predict BTCUSDT 4h", false},
		{"/predict", nil, "", true},
		{"/news", nil, "latest market news", false},
		{"/portfolio", []string{"$500", "Medium"}, "build a portfolio, I have $500 medium risk", false},
		{"/portfolio", []string{"250"}, "build a portfolio, I have $250", false},
		{"/portfolio", nil, "", true},
	}
	for _, tc := range cases {
		text, usage := CommandText(tc.cmd, tc.args)
		assert.Equal(t, tc.text, text, tc.cmd)
		assert.Equal(t, tc.usage, usage != "", tc.cmd)
	}
}

func TestConversationID(t *testing.T) {
	assert.Equal(t, "tg-42", ConversationID(42))
	assert.Equal(t, "tg--100123", ConversationID(-100123))
}

func TestReply(t *testing.T) {
	asst := &stubAssistant{turn: domain.ConversationTurn{Kind: domain.KindText, Content: "Hello Ada"}}
	b := New(asst)

	assert.Equal(t, "Hello Ada", b.Reply(context.Background(), "tg-1", "Ada", "hi"))
	assert.Equal(t, "tg-1", asst.gotID)
	assert.Equal(t, "Ada", asst.gotUser)
	assert.Equal(t, "hi", asst.gotText)

	asst.err = errors.New("boom")
	assert.Contains(t, b.Reply(context.Background(), "tg-1", "Ada", "hi"), "something went wrong")
}

func TestFormatTurnTokenomics(t *testing.T) {
	snap := &domain.CoinSnapshot{ID: "bitcoin", Name: "Bitcoin", Symbol: "btc"}
	report, err := tokenomics.DeriveAll(snap, nil, 1000, testNow)
	require.NoError(t, err)

	payload, err := json.Marshal(domain.TokenomicsPayload{
		CoinID:    "bitcoin",
		TokenName: "Bitcoin",
		Metrics:   report.Record,
		Narrative: "Bitcoin is digital gold.",
	})
	require.NoError(t, err)

	out := FormatTurn(domain.ConversationTurn{
		Kind:    domain.KindTokenomics,
		Content: "Analysis completed for Bitcoin.",
		Payload: payload,
	})
	assert.True(t, strings.HasPrefix(out, "Analysis completed for Bitcoin.\n"))
	assert.Contains(t, out, "Risk Level: ")
	assert.Contains(t, out, "Investment Recommendation: ")
	assert.True(t, strings.HasSuffix(out, "Bitcoin is digital gold."))
}

func TestFormatTurnPredictionAndFallback(t *testing.T) {
	payload, _ := json.Marshal(domain.Prediction{Symbol: "BTCUSDT", Plan: "Wait for a pullback."})
	out := FormatTurn(domain.ConversationTurn{Kind: domain.KindPrediction, Content: "Done.", Payload: payload})
	assert.Equal(t, "Done.\n\nWait for a pullback.", out)

	out = FormatTurn(domain.ConversationTurn{Kind: domain.KindTokenomics, Content: "plain", Payload: json.RawMessage(`{`)})
	assert.Equal(t, "plain", out)

	assert.Equal(t, "hi", FormatTurn(domain.ConversationTurn{Kind: domain.KindNews, Content: "hi"}))
}

func TestSplitMessage(t *testing.T) {
	text := strings.Repeat("a", 6) + "\n" + strings.Repeat("b", 6)
	assert.Equal(t, []string{"aaaaaa", "bbbbbb"}, splitMessage(text, 10))
	assert.Equal(t, []string{"abcd", "ef"}, splitMessage("abcdef", 4))
	assert.Nil(t, splitMessage("", 4))
}

func TestSplitMessageKeepsRunesWhole(t *testing.T) {
	assert.Equal(t, []string{"é", "é", "é"}, splitMessage("ééé", 3))
	assert.Equal(t, []string{"🚀"}, splitMessage("🚀", 2))

	text := strings.Repeat("📈 prix élevé ", 40)
	parts := splitMessage(text, 7)
	for _, part := range parts {
		assert.True(t, utf8.ValidString(part), "chunk %q is not valid UTF-8", part)
	}
	assert.Equal(t, text, strings.Join(parts, ""))
}
