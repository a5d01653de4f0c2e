// Package app wires the assistant's collaborators from configuration. The
// server, MCP and CLI binaries share it so they expose the same engine.
package app

import (
	"trading-assistant/internal/advisor"
	"trading-assistant/internal/assistant"
	"trading-assistant/internal/cache"
	"trading-assistant/internal/config"
	"trading-assistant/internal/db"
	"trading-assistant/internal/observability"
	"trading-assistant/internal/provider"
	"trading-assistant/internal/repository"
	"trading-assistant/internal/resolver"
	"trading-assistant/internal/ta"
	"trading-assistant/internal/tokenomics"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"
)

// Components holds every wired collaborator. Optional ones are nil
// interfaces when their configuration is missing.
type Components struct {
	Market    *provider.CoinGeckoProvider
	Resolver  *resolver.Resolver
	Analyzer  *tokenomics.Analyzer
	Advisor   *advisor.Service
	News      assistant.NewsSource
	Mood      assistant.MoodSource
	Predictor assistant.Predictor
	Store     assistant.ConversationStore
	Analyses  *repository.AnalysisRepository
	Metrics   *observability.Metrics
	Assistant *assistant.Service
}

// Wire builds the components. It reads db.Pool and cache.Client, so call it
// after InitPostgres and InitRedis; either may have left its client nil.
func Wire(cfg *config.Config, tracer trace.Tracer, metrics *observability.Metrics) *Components {
	c := &Components{Metrics: metrics}

	c.Market = provider.NewCoinGeckoProvider(cfg.CoinGeckoBaseURL, cfg.CoinGeckoAPIKey, tracer)

	var store cache.Store
	if cache.Client != nil {
		store = cache.Client
	}
	c.Resolver = resolver.New(tracer, c.Market, store)

	var recorder tokenomics.Recorder
	if metrics != nil {
		recorder = metrics
	}
	c.Analyzer = tokenomics.NewAnalyzer(c.Market, tracer, recorder)

	var llm advisor.LLMClient
	if cfg.AIAPIKey != "" {
		llm = advisor.NewOpenAIClient(cfg.AIAPIKey, cfg.AIBaseURL)
	}
	c.Advisor = advisor.NewService(tracer, llm, cfg.AIModel)

	if feed := provider.NewNewsFeed(
		provider.NewNewsAPIProvider(cfg.NewsAPIKey, tracer),
		provider.NewRSSProvider(cfg.RSSFeeds, tracer),
		provider.NewRedditProvider(cfg.RedditSubreddits, tracer),
	); feed != nil {
		c.News = feed
	}
	c.Mood = provider.NewFearGreedProvider(tracer)

	if cfg.PredictionEnabled {
		c.Predictor = ta.NewPredictor(tracer, c.Market, c.Resolver)
	}

	if db.Pool != nil {
		c.Store = repository.NewConversationRepository(db.Pool, tracer)
		c.Analyses = repository.NewAnalysisRepository(db.Pool, tracer)
	} else {
		log.Warn().Msg("DATABASE_URL not set, conversations are kept in memory")
		c.Store = repository.NewMemoryConversationStore()
	}

	deps := assistant.Deps{
		Resolver:  c.Resolver,
		Analyzer:  c.Analyzer,
		Store:     c.Store,
		Advisor:   c.Advisor,
		News:      c.News,
		Mood:      c.Mood,
		Predictor: c.Predictor,
	}
	if c.Analyses != nil {
		deps.Analyses = c.Analyses
	}
	if metrics != nil {
		deps.Metrics = metrics
	}
	c.Assistant = assistant.NewService(tracer, deps)

	caps := c.Assistant.Capabilities()
	log.Info().
		Bool("narrative", caps.Narrative).
		Bool("news", caps.News).
		Bool("prediction", caps.Prediction).
		Bool("storage", caps.Storage).
		Msg("assistant wired")
	return c
}
