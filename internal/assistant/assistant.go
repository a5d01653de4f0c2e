package assistant

import (
	"context"
	"errors"
	"strings"
	"time"

	"trading-assistant/internal/domain"
	"trading-assistant/internal/intent"
	"trading-assistant/internal/tokenomics"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// MonteCarloSimulations is the number of simulated trades per request.
const MonteCarloSimulations = 1000

var ErrEmptyMessage = errors.New("message is empty")

type Resolver interface {
	Resolve(ctx context.Context, text string) (domain.Resolution, error)
}

type Analyzer interface {
	Analyze(ctx context.Context, coinID string, investment float64) (*tokenomics.Report, error)
}

type Advisor interface {
	Configured() bool
	Explain(ctx context.Context, record *domain.MetricRecord, userName string) string
	Chat(ctx context.Context, messages []domain.ChatMessage) (string, error)
	SummarizeNews(ctx context.Context, history []domain.ChatMessage, headlines []domain.Headline) (string, error)
}

type NewsSource interface {
	FetchHeadlines(ctx context.Context) ([]domain.Headline, error)
}

type MoodSource interface {
	FetchMood(ctx context.Context) (*domain.MarketMood, error)
}

type Predictor interface {
	Predict(ctx context.Context, pair, interval string) (*domain.Prediction, error)
}

// MonteCarlo runs trade simulations and summarises the outcome as text.
type MonteCarlo interface {
	Simulate(ctx context.Context, simulations int) (string, error)
}

// ConversationStore persists turns per conversation. Recent returns the
// newest limit turns, oldest first.
type ConversationStore interface {
	Append(ctx context.Context, conversationID string, turn domain.ConversationTurn) error
	Recent(ctx context.Context, conversationID string, limit int) ([]domain.ConversationTurn, error)
}

// AnalysisLog keeps a record of completed tokenomics analyses.
type AnalysisLog interface {
	SaveAnalysis(ctx context.Context, report *tokenomics.Report) error
}

// IntentRecorder counts routed messages.
type IntentRecorder interface {
	ObserveIntent(intent string)
}

// Deps wires the collaborators. Resolver, Analyzer and Store are required;
// every other field may be nil and disables its capability.
type Deps struct {
	Resolver   Resolver
	Analyzer   Analyzer
	Store      ConversationStore
	Advisor    Advisor
	News       NewsSource
	Mood       MoodSource
	Predictor  Predictor
	MonteCarlo MonteCarlo
	Analyses   AnalysisLog
	Metrics    IntentRecorder
}

// Service routes each user message to the matching feature and records the
// exchange in the conversation.
type Service struct {
	Deps
	tracer trace.Tracer
	now    func() time.Time
}

func NewService(tracer trace.Tracer, deps Deps) *Service {
	return &Service{Deps: deps, tracer: tracer, now: time.Now}
}

func (s *Service) Capabilities() domain.Capabilities {
	return domain.Capabilities{
		Narrative:  s.Advisor != nil && s.Advisor.Configured(),
		News:       s.News != nil,
		Prediction: s.Predictor != nil,
		MonteCarlo: s.MonteCarlo != nil,
		Storage:    isPersistent(s.Store),
	}
}

func isPersistent(store ConversationStore) bool {
	p, ok := store.(interface{ Persistent() bool })
	return ok && p.Persistent()
}

// Handle answers one user message. Feature failures become apologetic
// replies; only an empty message or a cancelled context is an error.
func (s *Service) Handle(ctx context.Context, conversationID, userName, text string) (domain.ConversationTurn, error) {
	ctx, span := s.tracer.Start(ctx, "assistant.handle")
	defer span.End()

	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ConversationTurn{}, ErrEmptyMessage
	}

	history := s.recent(ctx, conversationID)
	s.append(ctx, conversationID, domain.ConversationTurn{
		Role:      domain.RoleUser,
		Kind:      domain.KindText,
		Content:   text,
		CreatedAt: s.now().UTC(),
	})

	req := request{userName: userName, text: text, history: history}
	kind := s.route(text)
	span.SetAttributes(attribute.String("intent", string(kind)))
	if s.Metrics != nil {
		s.Metrics.ObserveIntent(string(kind))
	}

	var (
		turn domain.ConversationTurn
		err  error
	)
	switch kind {
	case domain.IntentPrediction:
		turn, err = s.predict(ctx, req)
	case domain.IntentTokenomics:
		turn, err = s.tokenomics(ctx, req)
	case domain.IntentNews:
		turn, err = s.news(ctx, req)
	case domain.IntentMonteCarlo:
		turn, err = s.monteCarlo(ctx, req)
	case domain.IntentPortfolio:
		turn = s.portfolio(req)
	default:
		turn, err = s.chat(ctx, req)
	}
	if err != nil {
		span.RecordError(err)
		return domain.ConversationTurn{}, err
	}

	turn.Role = domain.RoleAssistant
	turn.CreatedAt = s.now().UTC()
	if turn.Kind == "" {
		turn.Kind = domain.KindText
	}
	s.append(ctx, conversationID, turn)

	log.Info().
		Str("conversation_id", conversationID).
		Str("intent", string(kind)).
		Str("kind", string(turn.Kind)).
		Msg("assistant reply")
	return turn, nil
}

// History returns the stored turns of a conversation, oldest first.
func (s *Service) History(ctx context.Context, conversationID string, limit int) ([]domain.ConversationTurn, error) {
	if limit <= 0 || limit > MaxHistoryMessages {
		limit = MaxHistoryMessages
	}
	return s.Store.Recent(ctx, conversationID, limit)
}

// route demotes Monte Carlo requests to plain chat when no simulator is
// plugged in.
func (s *Service) route(text string) domain.Intent {
	kind := intent.Classify(text)
	if kind == domain.IntentMonteCarlo && s.MonteCarlo == nil {
		return domain.IntentGeneric
	}
	return kind
}

func (s *Service) recent(ctx context.Context, conversationID string) []domain.ConversationTurn {
	turns, err := s.Store.Recent(ctx, conversationID, MaxHistoryMessages-1)
	if err != nil {
		log.Warn().Err(err).Str("conversation_id", conversationID).Msg("conversation history unavailable")
		return nil
	}
	return turns
}

func (s *Service) append(ctx context.Context, conversationID string, turn domain.ConversationTurn) {
	if err := s.Store.Append(ctx, conversationID, turn); err != nil {
		log.Warn().Err(err).Str("conversation_id", conversationID).Msg("failed to store conversation turn")
	}
}

type request struct {
	userName string
	text     string
	history  []domain.ConversationTurn
}

// messages builds the model input: persona, trimmed history, then extra.
func (r request) messages(extra ...domain.ChatMessage) []domain.ChatMessage {
	msgs := Flatten(r.userName, r.history)
	msgs = append(msgs, extra...)
	return TrimHistory(msgs)
}
