package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"trading-assistant/internal/domain"
	"trading-assistant/internal/tokenomics"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/trace/noop"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type stubAnalyzer struct {
	coinID     string
	investment float64
}

func (s *stubAnalyzer) Analyze(_ context.Context, coinID string, investment float64) (*tokenomics.Report, error) {
	s.coinID, s.investment = coinID, investment
	snap := &domain.CoinSnapshot{ID: coinID, Name: "Ethereum", Symbol: "eth"}
	return tokenomics.DeriveAll(snap, nil, investment, testNow)
}

type stubResolver struct{ query string }

func (s *stubResolver) Resolve(_ context.Context, text string) (domain.Resolution, error) {
	s.query = text
	return domain.Resolution{CoinID: "ethereum", Source: domain.ResolvedByAlias, Match: "eth"}, nil
}

type stubPredictor struct{ pair, interval string }

func (s *stubPredictor) Predict(_ context.Context, pair, interval string) (*domain.Prediction, error) {
	s.pair, s.interval = pair, interval
	return &domain.Prediction{Symbol: pair, Timeframe: interval, Bias: domain.SignalDirection("Bullish"), Strength: 75, Plan: "Buy dips."}, nil
}

type stubNews struct{ err error }

func (s stubNews) FetchHeadlines(context.Context) ([]domain.Headline, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []domain.Headline{{Title: "A", Source: "S", PublishedAt: testNow}, {Title: "B", Source: "S"}}, nil
}

func connectInMemory(t *testing.T, ctx context.Context, svc Services) *sdkmcp.ClientSession {
	t.Helper()
	srv := NewServer(noop.NewTracerProvider().Tracer("test"), svc, ServerConfig{RequestTimeout: time.Second})

	clientTransport, serverTransport := sdkmcp.NewInMemoryTransports()
	runCtx, cancel := context.WithCancel(ctx)
	t.Cleanup(cancel)
	go func() { _ = srv.Run(runCtx, serverTransport) }()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "mcp-test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func decodeStructured(t *testing.T, res *sdkmcp.CallToolResult, out any) {
	t.Helper()
	b, err := json.Marshal(res.StructuredContent)
	if err != nil {
		t.Fatalf("marshal structured content: %v", err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		t.Fatalf("decode structured content: %v", err)
	}
}

func TestToolsListAndTokenomics(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	analyzer := &stubAnalyzer{}
	resolver := &stubResolver{}
	session := connectInMemory(t, ctx, Services{Analyzer: analyzer, Resolver: resolver})

	tools, err := session.ListTools(ctx, &sdkmcp.ListToolsParams{})
	if err != nil {
		t.Fatalf("list tools failed: %v", err)
	}
	if len(tools.Tools) != 5 {
		t.Fatalf("expected 5 tools, got %d", len(tools.Tools))
	}

	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "tokenomics_analyze",
		Arguments: map[string]any{"coin": "eth", "amount": 250},
	})
	if err != nil {
		t.Fatalf("call tool failed: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %+v", res.Content)
	}
	if resolver.query != "eth" || analyzer.coinID != "ethereum" || analyzer.investment != 250 {
		t.Fatalf("unexpected calls: %q %q %v", resolver.query, analyzer.coinID, analyzer.investment)
	}

	var out tokenomicsAnalyzeOutput
	decodeStructured(t, res, &out)
	if out.TokenName != "Ethereum" || len(out.Metrics) == 0 || out.Metrics[0].Key != tokenomics.KeyTokenName {
		t.Fatalf("unexpected output: %+v", out)
	}
}

func TestToolsDefaultAmountAndValidation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	analyzer := &stubAnalyzer{}
	session := connectInMemory(t, ctx, Services{Analyzer: analyzer, Resolver: &stubResolver{}})

	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{Name: "tokenomics_analyze", Arguments: map[string]any{"coin": "eth"}})
	if err != nil || res.IsError {
		t.Fatalf("unexpected failure: %v %+v", err, res)
	}
	if analyzer.investment != tokenomics.DefaultInvestment {
		t.Fatalf("expected default investment, got %v", analyzer.investment)
	}

	for _, args := range []map[string]any{
		{"coin": "   "},
		{"coin": "eth", "amount": -5},
	} {
		res, err = session.CallTool(ctx, &sdkmcp.CallToolParams{Name: "tokenomics_analyze", Arguments: args})
		if err != nil {
			t.Fatalf("unexpected protocol error: %v", err)
		}
		if !res.IsError {
			t.Fatalf("expected tool-level validation error for %v", args)
		}
	}
}

func TestIntentAndResolveTools(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	session := connectInMemory(t, ctx, Services{Resolver: &stubResolver{}})

	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "intent_classify",
		Arguments: map[string]any{"message": "predict eth on the 4h"},
	})
	if err != nil || res.IsError {
		t.Fatalf("unexpected failure: %v %+v", err, res)
	}
	var classified intentClassifyOutput
	decodeStructured(t, res, &classified)
	if classified.Intent != string(domain.IntentPrediction) || classified.Pair != "ETHUSDT" || classified.Timeframe != "4h" {
		t.Fatalf("unexpected classification: %+v", classified)
	}

	res, err = session.CallTool(ctx, &sdkmcp.CallToolParams{Name: "token_resolve", Arguments: map[string]any{"query": "eth"}})
	if err != nil || res.IsError {
		t.Fatalf("unexpected failure: %v %+v", err, res)
	}
	var resolved tokenResolveOutput
	decodeStructured(t, res, &resolved)
	if resolved.Resolution.CoinID != "ethereum" || resolved.Defaulted {
		t.Fatalf("unexpected resolution: %+v", resolved)
	}
}

func TestOptionalTools(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	predictor := &stubPredictor{}
	session := connectInMemory(t, ctx, Services{Predictor: predictor, News: stubNews{}})

	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "prediction_analyze",
		Arguments: map[string]any{"pair": "solusdt", "timeframe": "1h"},
	})
	if err != nil || res.IsError {
		t.Fatalf("unexpected failure: %v %+v", err, res)
	}
	if predictor.pair != "SOLUSDT" || predictor.interval != "1h" {
		t.Fatalf("unexpected predict call: %s %s", predictor.pair, predictor.interval)
	}

	res, err = session.CallTool(ctx, &sdkmcp.CallToolParams{Name: "news_headlines", Arguments: map[string]any{"limit": 1}})
	if err != nil || res.IsError {
		t.Fatalf("unexpected failure: %v %+v", err, res)
	}
	var news newsHeadlinesOutput
	decodeStructured(t, res, &news)
	if len(news.Headlines) != 1 || news.Headlines[0].PublishedAt != "2025-06-01T12:00:00Z" {
		t.Fatalf("unexpected headlines: %+v", news.Headlines)
	}

	bare := connectInMemory(t, ctx, Services{News: stubNews{err: errors.New("down")}})
	calls := []*sdkmcp.CallToolParams{
		{Name: "prediction_analyze", Arguments: map[string]any{"pair": "BTCUSDT"}},
		{Name: "news_headlines", Arguments: map[string]any{"limit": 3}},
	}
	for _, call := range calls {
		res, err = bare.CallTool(ctx, call)
		if err != nil {
			t.Fatalf("%s: unexpected protocol error: %v", call.Name, err)
		}
		if !res.IsError {
			t.Fatalf("%s: expected tool error", call.Name)
		}
	}
}

func TestSpanName(t *testing.T) {
	req := &sdkmcp.CallToolRequest{Params: &sdkmcp.CallToolParamsRaw{Name: "token_resolve"}}
	if got := spanName("tools/call", req); got != "mcp.tool.token_resolve" {
		t.Fatalf("unexpected span name %q", got)
	}
	if got := spanName("tools/list", nil); got != "mcp.tools.list" {
		t.Fatalf("unexpected span name %q", got)
	}
}
