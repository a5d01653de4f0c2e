// Package mcp exposes the tokenomics engine as Model Context Protocol tools.
package mcp

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const defaultRequestTimeout = 30 * time.Second

type ServerConfig struct {
	RequestTimeout time.Duration
	Version        string
}

func NewServer(tracer trace.Tracer, svc Services, cfg ServerConfig) *sdkmcp.Server {
	requestTimeout := cfg.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}
	version := cfg.Version
	if version == "" {
		version = "1.0.0"
	}

	srv := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "trading-assistant-mcp",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: "Use these tools to resolve coins, analyze tokenomics and risk, read market news and get technical bias for trading pairs. Output is educational, not financial advice.",
		Logger:       slog.Default(),
	})

	srv.AddReceivingMiddleware(timeoutMiddleware(requestTimeout))
	if tracer != nil {
		srv.AddReceivingMiddleware(tracingMiddleware(tracer))
	}

	registerTools(srv, svc)
	return srv
}

func NewHTTPTransportHandler(server *sdkmcp.Server, cfg HTTPHandlerConfig) http.Handler {
	base := sdkmcp.NewStreamableHTTPHandler(func(*http.Request) *sdkmcp.Server {
		return server
	}, &sdkmcp.StreamableHTTPOptions{})
	return wrapHTTPHandler(base, cfg)
}

func timeoutMiddleware(timeout time.Duration) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if timeout <= 0 {
				return next(ctx, method, req)
			}
			timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			return next(timeoutCtx, method, req)
		}
	}
}

func tracingMiddleware(tracer trace.Tracer) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			ctx, span := tracer.Start(ctx, spanName(method, req))
			span.SetAttributes(attribute.String("mcp.method", method))
			defer span.End()

			if callReq, ok := req.(*sdkmcp.CallToolRequest); ok {
				span.SetAttributes(attribute.String("mcp.tool", strings.TrimSpace(callReq.Params.Name)))
			}

			result, err := next(ctx, method, req)
			if err != nil {
				span.RecordError(err)
			}
			return result, err
		}
	}
}

func spanName(method string, req sdkmcp.Request) string {
	if method == "tools/call" {
		if callReq, ok := req.(*sdkmcp.CallToolRequest); ok {
			if name := strings.TrimSpace(callReq.Params.Name); name != "" {
				return "mcp.tool." + name
			}
		}
		return "mcp.tool.call"
	}
	return "mcp." + strings.ReplaceAll(method, "/", ".")
}
