package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"trading-assistant/internal/advisor"
	"trading-assistant/internal/domain"
	"trading-assistant/internal/intent"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	predictionUnavailable = "Price prediction isn't enabled on this server yet. Ask me about tokenomics, news or a beginner portfolio instead."
	newsUnavailable       = "Market news isn't configured on this server."
	newsFailed            = "Sorry, I couldn't fetch the latest market news right now. Please try again in a few minutes."
	chatUnavailable       = "The AI tutor isn't configured on this server, but I can still run tokenomics analysis, predictions and beginner portfolios."
)

var printer = message.NewPrinter(language.English)

func (s *Service) predict(ctx context.Context, req request) (domain.ConversationTurn, error) {
	if s.Predictor == nil {
		return domain.ConversationTurn{Content: predictionUnavailable}, nil
	}
	pair := intent.ExtractTradingPair(req.text)
	tf := intent.ExtractTimeframe(req.text)

	pred, err := s.Predictor.Predict(ctx, pair, tf)
	if err != nil {
		if ctx.Err() != nil {
			return domain.ConversationTurn{}, ctx.Err()
		}
		log.Warn().Err(err).Str("pair", pair).Str("timeframe", tf).Msg("prediction failed")
		return domain.ConversationTurn{Content: fmt.Sprintf("Prediction error: %v", err)}, nil
	}
	return withPayload(domain.ConversationTurn{
		Kind:    domain.KindPrediction,
		Content: fmt.Sprintf("Completed technical analysis for %s on %s timeframe.", pred.Symbol, pred.Timeframe),
	}, pred), nil
}

func (s *Service) tokenomics(ctx context.Context, req request) (domain.ConversationTurn, error) {
	investment, _ := intent.ExtractInvestmentAmount(req.text)

	res, err := s.Resolver.Resolve(ctx, req.text)
	if err != nil {
		return domain.ConversationTurn{}, err
	}

	report, err := s.Analyzer.Analyze(ctx, res.CoinID, investment)
	if err != nil {
		if ctx.Err() != nil {
			return domain.ConversationTurn{}, ctx.Err()
		}
		if !errors.Is(err, domain.ErrNotFound) {
			log.Error().Err(err).Str("coin_id", res.CoinID).Msg("tokenomics analysis failed")
		}
		return domain.ConversationTurn{
			Content: fmt.Sprintf("Sorry, couldn't find comprehensive tokenomics data for '%s'. Try a different coin name or symbol.", res.CoinID),
		}, nil
	}

	narrative := advisor.NarrativeUnavailable
	if s.Advisor != nil {
		narrative = s.Advisor.Explain(ctx, report.Record, req.userName)
	}
	if s.Analyses != nil {
		if err := s.Analyses.SaveAnalysis(ctx, report); err != nil {
			log.Warn().Err(err).Str("coin_id", report.CoinID).Msg("failed to log analysis")
		}
	}

	name := report.TokenName()
	return withPayload(domain.ConversationTurn{
		Kind:    domain.KindTokenomics,
		Content: printer.Sprintf("Comprehensive tokenomics analysis completed for %s with $%.2f investment.", name, investment),
	}, domain.TokenomicsPayload{
		CoinID:     report.CoinID,
		TokenName:  name,
		Investment: investment,
		Resolution: res,
		Metrics:    report.Record,
		Narrative:  narrative,
	}), nil
}

func (s *Service) news(ctx context.Context, req request) (domain.ConversationTurn, error) {
	if s.News == nil {
		return domain.ConversationTurn{Content: newsUnavailable}, nil
	}
	headlines, err := s.News.FetchHeadlines(ctx)
	if err != nil || len(headlines) == 0 {
		if ctx.Err() != nil {
			return domain.ConversationTurn{}, ctx.Err()
		}
		log.Warn().Err(err).Int("headlines", len(headlines)).Msg("news unavailable")
		return domain.ConversationTurn{Content: newsFailed}, nil
	}

	payload := domain.NewsPayload{Headlines: headlines}
	if s.Mood != nil {
		if mood, err := s.Mood.FetchMood(ctx); err == nil {
			payload.Mood = mood
		} else {
			log.Debug().Err(err).Msg("market mood unavailable")
		}
	}

	content := "News headlines:\n" + advisor.FormatHeadlines(headlines)
	if s.Advisor != nil && s.Advisor.Configured() {
		summary, err := s.Advisor.SummarizeNews(ctx, req.messages(), headlines)
		if err != nil {
			log.Warn().Err(err).Msg("news summary failed")
		} else {
			content = summary
		}
	}
	return withPayload(domain.ConversationTurn{Kind: domain.KindNews, Content: content}, payload), nil
}

func (s *Service) monteCarlo(ctx context.Context, _ request) (domain.ConversationTurn, error) {
	summary, err := s.MonteCarlo.Simulate(ctx, MonteCarloSimulations)
	if err != nil {
		if ctx.Err() != nil {
			return domain.ConversationTurn{}, ctx.Err()
		}
		return domain.ConversationTurn{Content: fmt.Sprintf("Monte Carlo simulation error: %v", err)}, nil
	}
	return domain.ConversationTurn{Kind: domain.KindMonteCarlo, Content: summary}, nil
}

func (s *Service) portfolio(req request) domain.ConversationTurn {
	capital, ok := intent.ExtractCapital(req.text)
	if !ok {
		return domain.ConversationTurn{Content: "How much capital are you starting with? (Example: $500)"}
	}

	risk := intent.RiskAppetite(req.text)
	allocation, err := BuildBeginnerPortfolio(capital, risk)
	if err != nil {
		return domain.ConversationTurn{Content: "Please enter a valid capital amount."}
	}
	return withPayload(domain.ConversationTurn{
		Kind:    domain.KindPortfolio,
		Content: RenderPortfolio(capital, allocation),
	}, domain.PortfolioPayload{Capital: capital, Risk: risk, Allocation: allocation})
}

func (s *Service) chat(ctx context.Context, req request) (domain.ConversationTurn, error) {
	if s.Advisor == nil || !s.Advisor.Configured() {
		return domain.ConversationTurn{Content: chatUnavailable}, nil
	}
	reply, err := s.Advisor.Chat(ctx, req.messages(domain.ChatMessage{Role: domain.RoleUser, Content: req.text}))
	if err != nil {
		if ctx.Err() != nil {
			return domain.ConversationTurn{}, ctx.Err()
		}
		log.Warn().Err(err).Msg("chat failed")
		return domain.ConversationTurn{Content: fmt.Sprintf("Sorry, I couldn't reach the AI tutor: %v", err)}, nil
	}
	return domain.ConversationTurn{Content: reply}, nil
}

// withPayload attaches v as the turn's structured payload. Encoding failures
// leave the text reply intact.
func withPayload(turn domain.ConversationTurn, v any) domain.ConversationTurn {
	data, err := json.Marshal(v)
	if err != nil {
		log.Warn().Err(err).Str("kind", string(turn.Kind)).Msg("failed to encode turn payload")
		return turn
	}
	turn.Payload = data
	return turn
}
