package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"trading-assistant/internal/bot"
	"trading-assistant/internal/config"
	"trading-assistant/internal/job"

	"github.com/gin-gonic/gin"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	tele "gopkg.in/telebot.v3"
)

func TestMainBootstrap(t *testing.T) {
	gin.SetMode(gin.TestMode)
	restore := stubServerDeps()
	defer restore()

	var served *http.Server
	httpStarted := make(chan struct{})
	startHTTPServerFunc = func(srv *http.Server) error {
		served = srv
		close(httpStarted)
		return http.ErrServerClosed
	}
	var telegramToken string
	startTelegramBotFunc = func(token string, _ bot.Assistant) (*tele.Bot, error) {
		telegramToken = token
		return nil, nil
	}
	waitForSignalFunc = func(<-chan os.Signal) { <-httpStarted }

	done := make(chan struct{})
	go func() {
		main()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("main did not exit")
	}

	if telegramToken != "tg-token" {
		t.Fatalf("expected telegram token to be passed, got %q", telegramToken)
	}
	if served == nil || served.Addr != ":9099" {
		t.Fatalf("unexpected server: %+v", served)
	}

	w := httptest.NewRecorder()
	served.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected health 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	served.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected metrics 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	served.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/capabilities", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected api key to be enforced, got %d", w.Code)
	}
}

func stubServerDeps() func() {
	origLoadEnv := loadEnvFunc
	origLoadConfig := loadConfigFunc
	origInitPostgres := initPostgresFunc
	origRunMigrations := runMigrationsFunc
	origInitRedis := initRedisFunc
	origInitTracer := initTracerFunc
	origWire := wireFunc
	origStartTelegram := startTelegramBotFunc
	origStartDirectoryJob := startDirectoryJobFunc
	origNewRouter := newRouterFunc
	origSetupSignal := setupSignalNotify
	origWait := waitForSignalFunc
	origStartHTTP := startHTTPServerFunc
	origShutdownHTTP := shutdownHTTPServerFunc

	loadEnvFunc = func(...string) error { return nil }
	loadConfigFunc = func() *config.Config {
		return &config.Config{
			LogLevel:         "error",
			Port:             9099,
			APIKey:           "secret",
			CORSOrigins:      []string{"*"},
			TelegramBotToken: "tg-token",
		}
	}
	initPostgresFunc = func(context.Context, string) error { return nil }
	runMigrationsFunc = func(context.Context) (int, error) { return 0, nil }
	initRedisFunc = func(context.Context, string) error { return nil }
	initTracerFunc = func(ctx context.Context) (*sdktrace.TracerProvider, trace.Tracer, error) {
		tp := sdktrace.NewTracerProvider()
		return tp, tp.Tracer("test"), nil
	}
	startTelegramBotFunc = func(string, bot.Assistant) (*tele.Bot, error) { return nil, nil }
	startDirectoryJobFunc = func(context.Context, *job.DirectoryJob) {}
	newRouterFunc = func(...gin.OptionFunc) *gin.Engine { return gin.New() }
	setupSignalNotify = func(c chan<- os.Signal, sig ...os.Signal) {}
	waitForSignalFunc = func(<-chan os.Signal) {}
	startHTTPServerFunc = func(*http.Server) error { return http.ErrServerClosed }
	shutdownHTTPServerFunc = func(*http.Server, context.Context) error { return nil }

	return func() {
		loadEnvFunc = origLoadEnv
		loadConfigFunc = origLoadConfig
		initPostgresFunc = origInitPostgres
		runMigrationsFunc = origRunMigrations
		initRedisFunc = origInitRedis
		initTracerFunc = origInitTracer
		wireFunc = origWire
		startTelegramBotFunc = origStartTelegram
		startDirectoryJobFunc = origStartDirectoryJob
		newRouterFunc = origNewRouter
		setupSignalNotify = origSetupSignal
		waitForSignalFunc = origWait
		startHTTPServerFunc = origStartHTTP
		shutdownHTTPServerFunc = origShutdownHTTP
	}
}
