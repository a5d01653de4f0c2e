package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"trading-assistant/internal/domain"
	"trading-assistant/internal/tokenomics"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"
)

const (
	replyTimeout = 90 * time.Second
	// Telegram rejects messages above 4096 characters.
	maxMessageLen = 4000
)

const welcome = `Hi %s! I'm your beginner crypto trading assistant.

/analyze <coin> - full tokenomics and risk analysis
/predict <pair> [timeframe] - technical bias, e.g. /predict BTCUSDT 4h
/news - latest market headlines
/portfolio <amount> [low|medium|high] - beginner allocation

Or just ask me anything. Educational only, not financial advice.`

// Assistant answers one chat message.
type Assistant interface {
	Handle(ctx context.Context, conversationID, userName, text string) (domain.ConversationTurn, error)
}

// Bot adapts Telegram updates to the assistant.
type Bot struct {
	assistant Assistant
}

func New(assistant Assistant) *Bot {
	return &Bot{assistant: assistant}
}

// StartTelegramBot starts long polling in the background and returns the
// running bot. An empty token disables the bot and returns nil.
func StartTelegramBot(token string, assistant Assistant) (*tele.Bot, error) {
	if token == "" {
		log.Info().Msg("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return nil, nil
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	tb, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	New(assistant).Register(tb)

	log.Info().Str("username", tb.Me.Username).Msg("telegram bot started")
	go tb.Start()
	return tb, nil
}

// Register wires the command and text handlers.
func (b *Bot) Register(tb *tele.Bot) {
	tb.Handle("/start", func(c tele.Context) error {
		return c.Send(fmt.Sprintf(welcome, displayName(c.Sender())))
	})
	tb.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})
	for _, cmd := range []string{"/analyze", "/predict", "/news", "/portfolio"} {
		cmd := cmd
		tb.Handle(cmd, func(c tele.Context) error {
			text, usage := CommandText(cmd, c.Args())
			if usage != "" {
				return c.Send(usage)
			}
			return b.respond(c, text)
		})
	}
	tb.Handle(tele.OnText, func(c tele.Context) error {
		return b.respond(c, c.Text())
	})
}

func (b *Bot) respond(c tele.Context, text string) error {
	ctx, cancel := context.WithTimeout(context.Background(), replyTimeout)
	defer cancel()

	_ = c.Notify(tele.Typing)
	reply := b.Reply(ctx, ConversationID(c.Chat().ID), displayName(c.Sender()), text)
	for _, part := range splitMessage(reply, maxMessageLen) {
		if err := c.Send(part); err != nil {
			return err
		}
	}
	return nil
}

// Reply runs the assistant and renders its turn as plain text.
func (b *Bot) Reply(ctx context.Context, conversationID, userName, text string) string {
	turn, err := b.assistant.Handle(ctx, conversationID, userName, text)
	if err != nil {
		log.Warn().Err(err).Str("conversation_id", conversationID).Msg("telegram reply failed")
		return "Sorry, something went wrong. Please try again."
	}
	return FormatTurn(turn)
}

func ConversationID(chatID int64) string {
	return fmt.Sprintf("tg-%d", chatID)
}

// CommandText turns a slash command into the message the assistant routes.
// usage is set when the arguments are missing.
func CommandText(cmd string, args []string) (text, usage string) {
	joined := strings.TrimSpace(strings.Join(args, " "))
	switch cmd {
	case "/analyze":
		if joined == "" {
			return "", "Usage: /analyze bitcoin"
		}
		return "tokenomics of " + joined, ""
	case "/predict":
		if len(args) == 0 {
			return "", "Usage: /predict BTCUSDT 4h"
		}
		return "predict " + joined, ""
	case "/news":
		return "latest market news", ""
	case "/portfolio":
		if len(args) == 0 {
			return "", "Usage: /portfolio 500 medium"
		}
		amount := strings.TrimPrefix(args[0], "$")
		risk := ""
		if len(args) > 1 {
			risk = " " + strings.ToLower(args[1]) + " risk"
		}
		return fmt.Sprintf("build a portfolio, I have $%s%s", amount, risk), ""
	default:
		return joined, ""
	}
}

// FormatTurn renders the structured part of a turn for chat clients that
// only show text.
func FormatTurn(turn domain.ConversationTurn) string {
	switch turn.Kind {
	case domain.KindTokenomics:
		var p domain.TokenomicsPayload
		if len(turn.Payload) == 0 || json.Unmarshal(turn.Payload, &p) != nil || p.Metrics == nil {
			return turn.Content
		}
		var sb strings.Builder
		sb.WriteString(turn.Content)
		sb.WriteString("\n")
		for _, key := range []string{
			tokenomics.KeyCurrentPrice,
			tokenomics.KeyMarketCap,
			tokenomics.KeyMarketCapRank,
			tokenomics.KeyCirculatingPercentage,
			tokenomics.KeySupplyModel,
			tokenomics.KeyLiquidityScore,
			tokenomics.KeyRiskLevel,
			tokenomics.KeyRecommendation,
		} {
			if v, ok := p.Metrics.Get(key); ok {
				fmt.Fprintf(&sb, "\n%s: %s", strings.ReplaceAll(key, "_", " "), v)
			}
		}
		if p.Narrative != "" {
			sb.WriteString("\n\n")
			sb.WriteString(p.Narrative)
		}
		return sb.String()
	case domain.KindPrediction:
		var p domain.Prediction
		if len(turn.Payload) == 0 || json.Unmarshal(turn.Payload, &p) != nil {
			return turn.Content
		}
		return turn.Content + "\n\n" + p.Plan
	default:
		return turn.Content
	}
}

func displayName(u *tele.User) string {
	if u == nil {
		return "there"
	}
	if u.FirstName != "" {
		return u.FirstName
	}
	if u.Username != "" {
		return u.Username
	}
	return "there"
}

func splitMessage(text string, limit int) []string {
	var parts []string
	for len(text) > limit {
		cut := strings.LastIndex(text[:limit], "\n")
		if cut <= 0 {
			cut = limit
			for cut > 0 && !utf8.RuneStart(text[cut]) {
				cut--
			}
			if cut == 0 {
				_, cut = utf8.DecodeRuneInString(text)
			}
		}
		parts = append(parts, text[:cut])
		text = strings.TrimLeft(text[cut:], "\n")
	}
	if text != "" {
		parts = append(parts, text)
	}
	return parts
}
