package advisor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"trading-assistant/internal/domain"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	DefaultModel   = "meta-llama/llama-3.2-11b-vision-instruct"

	// NarrativeUnavailable replaces the explanation when no model is
	// configured or there is nothing to explain.
	NarrativeUnavailable = "Unable to generate explanation - API key not configured or no data available."

	narrativeMaxTokens = 1000
	requestTimeout     = 30 * time.Second
)

// LLMClient abstracts the OpenAI chat completions API for testability.
type LLMClient interface {
	CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)
}

// Service talks to an OpenAI-compatible chat endpoint. A nil LLMClient is a
// valid, unconfigured service: Explain degrades to NarrativeUnavailable and
// the other calls return domain.ErrUnavailable.
type Service struct {
	tracer trace.Tracer
	llm    LLMClient
	model  string
}

func NewService(tracer trace.Tracer, llm LLMClient, model string) *Service {
	if model == "" {
		model = DefaultModel
	}
	return &Service{tracer: tracer, llm: llm, model: model}
}

func (s *Service) Configured() bool {
	return s != nil && s.llm != nil
}

// Explain asks the model for a beginner-level walk through of the key
// metrics. Failures never propagate: the caller always gets displayable text.
func (s *Service) Explain(ctx context.Context, record *domain.MetricRecord, userName string) string {
	if !s.Configured() || record == nil || record.Len() == 0 {
		return NarrativeUnavailable
	}
	ctx, span := s.tracer.Start(ctx, "advisor.explain")
	defer span.End()

	prompt, err := BuildNarrativePrompt(record, userName)
	if err != nil {
		span.RecordError(err)
		return NarrativeUnavailable
	}

	reply, err := s.complete(ctx, []domain.ChatMessage{{Role: domain.RoleUser, Content: prompt}}, narrativeMaxTokens)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "narrative unavailable")
		log.Warn().Err(err).Msg("tokenomics narrative failed")
		return fmt.Sprintf("Unable to generate explanation: %v", err)
	}
	return reply
}

// Chat sends the flattened conversation as-is and returns the reply.
func (s *Service) Chat(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	if !s.Configured() {
		return "", fmt.Errorf("chat: %w", domain.ErrUnavailable)
	}
	ctx, span := s.tracer.Start(ctx, "advisor.chat")
	defer span.End()

	reply, err := s.complete(ctx, messages, 0)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("advisor unavailable: %w", err)
	}
	return reply, nil
}

// SummarizeNews appends a request to explain the headlines to the running
// conversation.
func (s *Service) SummarizeNews(ctx context.Context, history []domain.ChatMessage, headlines []domain.Headline) (string, error) {
	if len(headlines) == 0 {
		return "", fmt.Errorf("summarize news: no headlines")
	}
	messages := make([]domain.ChatMessage, 0, len(history)+1)
	messages = append(messages, history...)
	messages = append(messages, domain.ChatMessage{Role: domain.RoleUser, Content: BuildNewsPrompt(headlines)})
	return s.Chat(ctx, messages)
}

func (s *Service) complete(ctx context.Context, messages []domain.ChatMessage, maxTokens int64) (string, error) {
	ctx, span := s.tracer.Start(ctx, "advisor.llm-call")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.model", s.model),
		attribute.Int("llm.message_count", len(messages)),
	)

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Model:    s.model,
		Messages: toParams(messages),
	}
	if maxTokens > 0 {
		params.MaxTokens = openai.Int(maxTokens)
	}

	completion, err := s.llm.CreateChatCompletion(ctx, params)
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no choices in LLM response")
	}

	reply := strings.TrimSpace(completion.Choices[0].Message.Content)
	span.SetAttributes(attribute.Int("llm.reply_length", len(reply)))
	return reply, nil
}

func toParams(messages []domain.ChatMessage) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case domain.RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case domain.RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}

// openaiClient wraps the official SDK's chat completions service.
type openaiClient struct {
	client openai.Client
}

// NewOpenAIClient targets any OpenAI-compatible endpoint. Requests are
// single-attempt.
func NewOpenAIClient(apiKey, baseURL string) LLMClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
	)
	return &openaiClient{client: client}
}

func (c *openaiClient) CreateChatCompletion(
	ctx context.Context,
	params openai.ChatCompletionNewParams,
) (*openai.ChatCompletion, error) {
	return c.client.Chat.Completions.New(ctx, params)
}
