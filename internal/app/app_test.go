package app

import (
	"testing"

	"trading-assistant/internal/config"
	"trading-assistant/internal/domain"
	"trading-assistant/internal/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestWireWithOptionalFeatures(t *testing.T) {
	cfg := &config.Config{
		AIAPIKey:          "sk-test",
		RSSFeeds:          []string{"https://example.com/rss"},
		PredictionEnabled: true,
	}
	c := Wire(cfg, noop.NewTracerProvider().Tracer("test"), observability.NewMetrics())

	require.NotNil(t, c.Assistant)
	assert.NotNil(t, c.News)
	assert.NotNil(t, c.Predictor)
	assert.Nil(t, c.Analyses)
	assert.Equal(t, domain.Capabilities{Narrative: true, News: true, Prediction: true}, c.Assistant.Capabilities())
}

func TestWireMinimal(t *testing.T) {
	c := Wire(&config.Config{}, noop.NewTracerProvider().Tracer("test"), nil)

	assert.Nil(t, c.News)
	assert.Nil(t, c.Predictor)
	assert.NotNil(t, c.Store)
	assert.False(t, c.Advisor.Configured())
	assert.Equal(t, domain.Capabilities{}, c.Assistant.Capabilities())
}
