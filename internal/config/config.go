package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// DefaultRSSFeeds back the news intent when no NewsAPI key is set.
var DefaultRSSFeeds = []string{
	"https://www.coindesk.com/arc/outboundfeeds/rss/",
	"https://cointelegraph.com/rss",
}

type Config struct {
	LogLevel  string
	LogFormat string

	Port        int
	APIKey      string
	CORSOrigins []string

	TelegramBotToken string
	DatabaseURL      string
	RedisURL         string

	CoinGeckoBaseURL string
	CoinGeckoAPIKey  string

	AIAPIKey  string
	AIBaseURL string
	AIModel   string

	NewsAPIKey       string
	RSSFeeds         []string
	RedditSubreddits []string

	PredictionEnabled bool

	MCPTransport          string
	MCPHTTPBind           string
	MCPHTTPPort           int
	MCPAuthToken          string
	MCPRequestTimeoutSecs int
	MCPRateLimitPerMin    int
}

// Load reads the environment. Missing optional services are logged and
// leave their capability disabled; Load itself never fails.
func Load() *Config {
	cfg := &Config{
		LogLevel:         strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL"))),
		LogFormat:        strings.ToLower(strings.TrimSpace(os.Getenv("LOG_FORMAT"))),
		APIKey:           strings.TrimSpace(os.Getenv("API_KEY")),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         os.Getenv("REDIS_URL"),
		CoinGeckoBaseURL: strings.TrimSpace(os.Getenv("COINGECKO_BASE_URL")),
		CoinGeckoAPIKey:  strings.TrimSpace(os.Getenv("COINGECKO_API_KEY")),
		AIBaseURL:        strings.TrimSpace(os.Getenv("AI_BASE_URL")),
		AIModel:          strings.TrimSpace(os.Getenv("AI_MODEL")),
		NewsAPIKey:       strings.TrimSpace(os.Getenv("NEWS_API_KEY")),
		MCPAuthToken:     os.Getenv("MCP_AUTH_TOKEN"),
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "json"
	}

	cfg.Port = envInt("PORT", 8080)
	if cfg.APIKey == "" {
		log.Warn().Msg("API_KEY not set, /api routes are unauthenticated")
	}
	cfg.CORSOrigins = splitList(os.Getenv("CORS_ORIGINS"))
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}

	if cfg.TelegramBotToken == "" {
		log.Warn().Msg("TELEGRAM_BOT_TOKEN not set, telegram bot disabled")
	}
	if cfg.DatabaseURL == "" {
		log.Warn().Msg("DATABASE_URL not set, conversations kept in memory")
	}
	if cfg.RedisURL == "" {
		log.Warn().Msg("REDIS_URL not set, defaulting to localhost:6379")
		cfg.RedisURL = "localhost:6379"
	}

	cfg.AIAPIKey = strings.TrimSpace(os.Getenv("OPENROUTER_API_KEY"))
	if cfg.AIAPIKey == "" {
		cfg.AIAPIKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	}
	if cfg.AIAPIKey == "" {
		log.Warn().Msg("OPENROUTER_API_KEY not set, AI explanations disabled")
	}

	if cfg.NewsAPIKey == "" {
		log.Warn().Msg("NEWS_API_KEY not set, news falls back to RSS feeds")
	}
	cfg.RSSFeeds = splitList(os.Getenv("RSS_FEEDS"))
	if len(cfg.RSSFeeds) == 0 {
		cfg.RSSFeeds = append([]string(nil), DefaultRSSFeeds...)
	}
	cfg.RedditSubreddits = splitList(os.Getenv("REDDIT_SUBREDDITS"))

	cfg.PredictionEnabled = envBool("PREDICTION_ENABLED", true)

	cfg.MCPTransport = strings.ToLower(strings.TrimSpace(os.Getenv("MCP_TRANSPORT")))
	if cfg.MCPTransport == "" {
		cfg.MCPTransport = "stdio"
	}
	if cfg.MCPTransport != "stdio" && cfg.MCPTransport != "http" {
		log.Warn().Str("value", cfg.MCPTransport).Msg("unsupported MCP_TRANSPORT, defaulting to stdio")
		cfg.MCPTransport = "stdio"
	}

	cfg.MCPHTTPBind = strings.TrimSpace(os.Getenv("MCP_HTTP_BIND"))
	if cfg.MCPHTTPBind == "" {
		cfg.MCPHTTPBind = "127.0.0.1"
	}
	cfg.MCPHTTPPort = envInt("MCP_HTTP_PORT", 8090)
	cfg.MCPRequestTimeoutSecs = envInt("MCP_REQUEST_TIMEOUT_SECS", 30)
	cfg.MCPRateLimitPerMin = envInt("MCP_RATE_LIMIT_PER_MIN", 60)

	return cfg
}

func envInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Warn().Str("key", key).Str("value", v).Int("default", def).Msg("invalid integer, using default")
		return def
	}
	return n
}

func envBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("invalid boolean, using default")
		return def
	}
	return b
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
