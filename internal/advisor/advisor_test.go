package advisor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"trading-assistant/internal/domain"

	"github.com/openai/openai-go"
	"go.opentelemetry.io/otel/trace/noop"
)

func testRecord() *domain.MetricRecord {
	rec := domain.NewMetricRecord()
	_ = rec.Merge(staticGroup{
		{Key: "Token_Name", Value: "Bitcoin"},
		{Key: "Symbol", Value: "BTC"},
		{Key: "Current_Price", Value: "$64,000.00000000"},
		{Key: "Risk_Level", Value: "RELATIVELY LOW RISK"},
	})
	return rec
}

func newTestService(llm LLMClient) *Service {
	return NewService(noop.NewTracerProvider().Tracer("test"), llm, "")
}

func reply(content string) *openai.ChatCompletion {
	return &openai.ChatCompletion{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: content}},
		},
	}
}

func TestExplainHappyPath(t *testing.T) {
	llm := &stubLLMClient{response: reply("  Bitcoin is the largest coin.  ")}
	svc := newTestService(llm)

	got := svc.Explain(context.Background(), testRecord(), "Ada")
	if got != "Bitcoin is the largest coin." {
		t.Fatalf("unexpected narrative %q", got)
	}
	if len(llm.calls) != 1 {
		t.Fatalf("expected one LLM call, got %d", len(llm.calls))
	}
	params := llm.calls[0]
	if params.Model != DefaultModel {
		t.Fatalf("expected default model, got %s", params.Model)
	}
	if !params.MaxTokens.Valid() || params.MaxTokens.Value != narrativeMaxTokens {
		t.Fatalf("expected max_tokens=%d", narrativeMaxTokens)
	}
	if len(params.Messages) != 1 || params.Messages[0].OfUser == nil {
		t.Fatalf("expected a single user message, got %d", len(params.Messages))
	}
	prompt := params.Messages[0].OfUser.Content.OfString.Value
	if !strings.Contains(prompt, "Explain this tokenomics analysis to Ada") {
		t.Fatalf("prompt missing user name: %s", prompt)
	}
	if !strings.Contains(prompt, `"Token": "Bitcoin (BTC)"`) {
		t.Fatalf("prompt missing key metrics: %s", prompt)
	}
}

func TestExplainWithoutKey(t *testing.T) {
	svc := newTestService(nil)
	if got := svc.Explain(context.Background(), testRecord(), "Ada"); got != NarrativeUnavailable {
		t.Fatalf("expected unavailable message, got %q", got)
	}
	if svc.Configured() {
		t.Fatal("service without a client must report unconfigured")
	}
}

func TestExplainWithoutData(t *testing.T) {
	llm := &stubLLMClient{response: reply("never")}
	svc := newTestService(llm)
	if got := svc.Explain(context.Background(), domain.NewMetricRecord(), "Ada"); got != NarrativeUnavailable {
		t.Fatalf("expected unavailable message, got %q", got)
	}
	if len(llm.calls) != 0 {
		t.Fatal("empty record must not reach the model")
	}
}

func TestExplainLLMErrorIsText(t *testing.T) {
	svc := newTestService(&stubLLMClient{err: errors.New("api down")})
	got := svc.Explain(context.Background(), testRecord(), "Ada")
	if !strings.HasPrefix(got, "Unable to generate explanation") || !strings.Contains(got, "api down") {
		t.Fatalf("expected explanatory failure text, got %q", got)
	}
}

func TestExplainNoChoices(t *testing.T) {
	svc := newTestService(&stubLLMClient{response: &openai.ChatCompletion{}})
	got := svc.Explain(context.Background(), testRecord(), "Ada")
	if !strings.Contains(got, "no choices") {
		t.Fatalf("expected no-choices failure text, got %q", got)
	}
}

func TestChatMapsRoles(t *testing.T) {
	llm := &stubLLMClient{response: reply("hi")}
	svc := NewService(noop.NewTracerProvider().Tracer("test"), llm, "gpt-4o-mini")

	_, err := svc.Chat(context.Background(), []domain.ChatMessage{
		{Role: domain.RoleSystem, Content: "persona"},
		{Role: domain.RoleUser, Content: "hello"},
		{Role: domain.RoleAssistant, Content: "hey"},
		{Role: domain.RoleUser, Content: "what is a wallet?"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	msgs := llm.calls[0].Messages
	if len(msgs) != 4 || msgs[0].OfSystem == nil || msgs[1].OfUser == nil || msgs[2].OfAssistant == nil || msgs[3].OfUser == nil {
		t.Fatal("roles not preserved in order")
	}
	if llm.calls[0].MaxTokens.Valid() {
		t.Fatal("chat should not cap max tokens")
	}
	if llm.calls[0].Model != "gpt-4o-mini" {
		t.Fatalf("expected configured model, got %s", llm.calls[0].Model)
	}
}

func TestChatUnconfigured(t *testing.T) {
	_, err := newTestService(nil).Chat(context.Background(), nil)
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestChatLLMError(t *testing.T) {
	_, err := newTestService(&stubLLMClient{err: errors.New("rate limited")}).Chat(context.Background(), nil)
	if err == nil || !strings.Contains(err.Error(), "rate limited") {
		t.Fatalf("expected wrapped LLM error, got %v", err)
	}
}

func TestSummarizeNewsAppendsPrompt(t *testing.T) {
	llm := &stubLLMClient{response: reply("Rates went up.")}
	svc := newTestService(llm)
	history := []domain.ChatMessage{{Role: domain.RoleSystem, Content: "persona"}}

	got, err := svc.SummarizeNews(context.Background(), history, []domain.Headline{
		{Title: "Fed holds rates", Source: "Reuters"},
		{Title: "Bitcoin ETF inflows rise"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Rates went up." {
		t.Fatalf("unexpected summary %q", got)
	}
	msgs := llm.calls[0].Messages
	if len(msgs) != 2 {
		t.Fatalf("expected history plus prompt, got %d messages", len(msgs))
	}
	prompt := msgs[1].OfUser.Content.OfString.Value
	want := "Explain these news headlines in simple terms for a beginner trader:\n- Fed holds rates (Reuters)\n- Bitcoin ETF inflows rise"
	if prompt != want {
		t.Fatalf("unexpected news prompt:\n%s", prompt)
	}
	if len(history) != 1 {
		t.Fatal("history slice must not be modified")
	}
}

func TestSummarizeNewsWithoutHeadlines(t *testing.T) {
	if _, err := newTestService(&stubLLMClient{response: reply("x")}).SummarizeNews(context.Background(), nil, nil); err == nil {
		t.Fatal("expected error without headlines")
	}
}

// --- stubs ---

type stubLLMClient struct {
	response *openai.ChatCompletion
	err      error
	calls    []openai.ChatCompletionNewParams
}

func (s *stubLLMClient) CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	s.calls = append(s.calls, params)
	return s.response, s.err
}

type staticGroup []domain.Metric

func (staticGroup) GroupName() string          { return "static" }
func (g staticGroup) Entries() []domain.Metric { return g }
