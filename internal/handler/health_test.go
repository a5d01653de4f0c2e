package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"trading-assistant/internal/assistant"
	"trading-assistant/internal/domain"
	"trading-assistant/internal/repository"
	"trading-assistant/internal/tokenomics"
	"trading-assistant/pkg/tracing"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	h := New(noop.NewTracerProvider().Tracer("test"), Deps{})
	r.GET("/health", h.Health)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "healthy" || body["version"] != tracing.Version {
		t.Errorf("unexpected body: %v", body)
	}
}

// --- stubs shared by the handler tests ---

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type stubAssistant struct {
	turn  domain.ConversationTurn
	err   error
	caps  domain.Capabilities
	turns []domain.ConversationTurn

	gotID, gotUser, gotText string
	gotLimit                int
}

func (s *stubAssistant) Handle(_ context.Context, id, user, text string) (domain.ConversationTurn, error) {
	s.gotID, s.gotUser, s.gotText = id, user, text
	if s.err != nil {
		return domain.ConversationTurn{}, s.err
	}
	if text == "   " {
		return domain.ConversationTurn{}, assistant.ErrEmptyMessage
	}
	return s.turn, nil
}

func (s *stubAssistant) History(_ context.Context, id string, limit int) ([]domain.ConversationTurn, error) {
	s.gotID, s.gotLimit = id, limit
	return s.turns, s.err
}

func (s *stubAssistant) Capabilities() domain.Capabilities { return s.caps }

type stubAnalyzer struct {
	err        error
	coinID     string
	investment float64
}

func (s *stubAnalyzer) Analyze(_ context.Context, coinID string, investment float64) (*tokenomics.Report, error) {
	s.coinID, s.investment = coinID, investment
	if s.err != nil {
		return nil, s.err
	}
	snap := &domain.CoinSnapshot{ID: coinID, Name: "Bitcoin", Symbol: "btc"}
	return tokenomics.DeriveAll(snap, nil, investment, testNow)
}

type stubNarrator struct{ user string }

func (s *stubNarrator) Explain(_ context.Context, _ *domain.MetricRecord, user string) string {
	s.user = user
	return "Bitcoin is digital gold."
}

type stubResolver struct {
	res domain.Resolution
	err error
}

func (s stubResolver) Resolve(context.Context, string) (domain.Resolution, error) {
	return s.res, s.err
}

type stubAnalyses struct {
	summary *repository.AnalysisSummary
	err     error
}

func (s stubAnalyses) LatestAnalysis(context.Context, string) (*repository.AnalysisSummary, error) {
	return s.summary, s.err
}

func newTestRouter(deps Deps, apiKey string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	New(noop.NewTracerProvider().Tracer("test"), deps).RegisterRoutes(r, apiKey, nil)
	return r
}
