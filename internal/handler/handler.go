package handler

import (
	"context"
	"net/http"

	"trading-assistant/internal/domain"
	"trading-assistant/internal/repository"
	"trading-assistant/internal/tokenomics"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

// Assistant is the conversational entry point.
type Assistant interface {
	Handle(ctx context.Context, conversationID, userName, text string) (domain.ConversationTurn, error)
	History(ctx context.Context, conversationID string, limit int) ([]domain.ConversationTurn, error)
	Capabilities() domain.Capabilities
}

type Analyzer interface {
	Analyze(ctx context.Context, coinID string, investment float64) (*tokenomics.Report, error)
}

type Narrator interface {
	Explain(ctx context.Context, record *domain.MetricRecord, userName string) string
}

type Resolver interface {
	Resolve(ctx context.Context, text string) (domain.Resolution, error)
}

type AnalysisHistory interface {
	LatestAnalysis(ctx context.Context, coinID string) (*repository.AnalysisSummary, error)
}

// Deps are the services behind the API. Narrator and Analyses may be nil.
type Deps struct {
	Assistant Assistant
	Analyzer  Analyzer
	Narrator  Narrator
	Resolver  Resolver
	Analyses  AnalysisHistory
}

type Handler struct {
	tracer trace.Tracer
	Deps
}

func New(tracer trace.Tracer, deps Deps) *Handler {
	return &Handler{tracer: tracer, Deps: deps}
}

// RegisterRoutes mounts the public probes at the root and the /api group
// behind APIKeyAuth. metrics may be nil.
func (h *Handler) RegisterRoutes(r *gin.Engine, apiKey string, metrics http.Handler) {
	r.GET("/health", h.Health)
	if metrics != nil {
		r.GET("/metrics", gin.WrapH(metrics))
	}

	api := r.Group("/api", APIKeyAuth(apiKey))
	api.GET("/capabilities", h.Capabilities)
	api.POST("/chat", h.Chat)
	api.GET("/conversations/:id", h.GetConversation)
	api.GET("/tokenomics/:coin", h.GetTokenomics)
	api.GET("/analyses/:coin", h.GetLatestAnalysis)
	api.GET("/resolve", h.Resolve)
	api.GET("/intent", h.Intent)
}
