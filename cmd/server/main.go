package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trading-assistant/internal/app"
	"trading-assistant/internal/bot"
	"trading-assistant/internal/cache"
	"trading-assistant/internal/config"
	"trading-assistant/internal/db"
	"trading-assistant/internal/handler"
	"trading-assistant/internal/job"
	"trading-assistant/internal/migrate"
	"trading-assistant/internal/observability"
	"trading-assistant/pkg/logging"
	"trading-assistant/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "trading-assistant/docs"
)

var (
	loadEnvFunc       = godotenv.Load
	loadConfigFunc    = config.Load
	initPostgresFunc  = db.InitPostgres
	runMigrationsFunc = func(ctx context.Context) (int, error) {
		return migrate.Run(ctx, db.Pool)
	}
	initRedisFunc          = cache.InitRedis
	initTracerFunc         = tracing.InitTracer
	wireFunc               = app.Wire
	startTelegramBotFunc   = bot.StartTelegramBot
	startDirectoryJobFunc  = func(ctx context.Context, j *job.DirectoryJob) { go j.Start(ctx) }
	newRouterFunc          = gin.New
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           Trading Assistant API
// @version         1.0
// @description     Beginner crypto trading assistant: tokenomics and risk analysis, predictions, news and chat.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
func main() {
	_ = loadEnvFunc()

	cfg := loadConfigFunc()
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := initPostgresFunc(ctx, cfg.DatabaseURL); err != nil {
		log.Warn().Err(err).Msg("postgres unavailable, falling back to in-memory conversations")
	}
	if db.Pool != nil {
		applied, err := runMigrationsFunc(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
		log.Info().Int("applied", applied).Msg("migrations up to date")
	}
	defer db.Close()

	if err := initRedisFunc(ctx, cfg.RedisURL); err != nil {
		log.Warn().Err(err).Msg("redis unavailable, caching in process only")
	}

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracer")
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Error().Err(err).Msg("error shutting down tracer provider")
		}
	}()

	metrics := observability.NewMetrics()
	c := wireFunc(cfg, tracer, metrics)
	startDirectoryJobFunc(ctx, job.NewDirectoryJob(tracer, c.Resolver, 0))

	tb, err := startTelegramBotFunc(cfg.TelegramBotToken, c.Assistant)
	if err != nil {
		log.Error().Err(err).Msg("telegram bot disabled")
	}
	if tb != nil {
		defer tb.Stop()
	}

	deps := handler.Deps{
		Assistant: c.Assistant,
		Analyzer:  c.Analyzer,
		Narrator:  c.Advisor,
		Resolver:  c.Resolver,
	}
	if c.Analyses != nil {
		deps.Analyses = c.Analyses
	}
	h := handler.New(tracer, deps)

	r := newRouterFunc()
	r.Use(gin.Recovery())
	r.Use(handler.CORS(cfg.CORSOrigins))
	r.Use(otelgin.Middleware(tracing.ServiceName))
	r.Use(metrics.Middleware())

	h.RegisterRoutes(r, cfg.APIKey, metrics.Handler())
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Info().Msg("shutting down server")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return
	}

	log.Info().Msg("server exiting")
}
