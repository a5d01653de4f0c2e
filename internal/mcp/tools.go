package mcp

import (
	"context"
	"fmt"
	"strings"

	"trading-assistant/internal/domain"
	"trading-assistant/internal/intent"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerTools(server *mcp.Server, svc Services) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "tokenomics_analyze",
		Description: "Resolve a coin and run the full tokenomics and risk analysis",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in tokenomicsAnalyzeInput) (*mcp.CallToolResult, tokenomicsAnalyzeOutput, error) {
		if svc.Analyzer == nil || svc.Resolver == nil {
			return nil, tokenomicsAnalyzeOutput{}, fmt.Errorf("tokenomics service unavailable")
		}
		coin, err := normalizeQuery("coin", in.Coin)
		if err != nil {
			return nil, tokenomicsAnalyzeOutput{}, err
		}
		amount, err := normalizeAmount(in.Amount)
		if err != nil {
			return nil, tokenomicsAnalyzeOutput{}, err
		}
		res, err := svc.Resolver.Resolve(ctx, coin)
		if err != nil {
			return nil, tokenomicsAnalyzeOutput{}, err
		}
		report, err := svc.Analyzer.Analyze(ctx, res.CoinID, amount)
		if err != nil {
			return nil, tokenomicsAnalyzeOutput{}, err
		}
		return nil, tokenomicsAnalyzeOutput{
			CoinID:     report.CoinID,
			TokenName:  report.TokenName(),
			Investment: amount,
			Resolution: res,
			Risk:       report.Risk,
			Groups:     report.Record.Groups(),
			Metrics:    report.Record.Entries(),
		}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "token_resolve",
		Description: "Map free text to a CoinGecko coin id via aliases and fuzzy matching",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in tokenResolveInput) (*mcp.CallToolResult, tokenResolveOutput, error) {
		if svc.Resolver == nil {
			return nil, tokenResolveOutput{}, fmt.Errorf("resolver unavailable")
		}
		q, err := normalizeQuery("query", in.Query)
		if err != nil {
			return nil, tokenResolveOutput{}, err
		}
		res, err := svc.Resolver.Resolve(ctx, q)
		if err != nil {
			return nil, tokenResolveOutput{}, err
		}
		return nil, tokenResolveOutput{Resolution: res, Defaulted: res.Defaulted()}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "intent_classify",
		Description: "Classify a chat message into the feature the assistant would route it to",
	}, func(_ context.Context, _ *mcp.CallToolRequest, in intentClassifyInput) (*mcp.CallToolResult, intentClassifyOutput, error) {
		msg, err := normalizeQuery("message", in.Message)
		if err != nil {
			return nil, intentClassifyOutput{}, err
		}
		kind := intent.Classify(msg)
		out := intentClassifyOutput{Intent: string(kind)}
		switch kind {
		case domain.IntentTokenomics:
			if amount, ok := intent.ExtractInvestmentAmount(msg); ok {
				out.Investment = amount
			}
		case domain.IntentPrediction:
			out.Pair = intent.ExtractTradingPair(msg)
			out.Timeframe = intent.ExtractTimeframe(msg)
		}
		return nil, out, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "prediction_analyze",
		Description: "Technical-analysis bias and trade plan for a trading pair",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in predictionAnalyzeInput) (*mcp.CallToolResult, predictionAnalyzeOutput, error) {
		if svc.Predictor == nil {
			return nil, predictionAnalyzeOutput{}, fmt.Errorf("prediction unavailable")
		}
		pair, err := normalizeQuery("pair", in.Pair)
		if err != nil {
			return nil, predictionAnalyzeOutput{}, err
		}
		if upper := strings.ToUpper(pair); strings.HasSuffix(upper, "USDT") {
			pair = upper
		} else {
			pair = intent.ExtractTradingPair(pair)
		}
		pred, err := svc.Predictor.Predict(ctx, pair, intent.ExtractTimeframe(in.Timeframe))
		if err != nil {
			return nil, predictionAnalyzeOutput{}, err
		}
		return nil, predictionAnalyzeOutput{
			Symbol:      pred.Symbol,
			Timeframe:   pred.Timeframe,
			Bias:        string(pred.Bias),
			Strength:    pred.Strength,
			Confluences: pred.Confluences,
			Plan:        pred.Plan,
		}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "news_headlines",
		Description: "Latest crypto market headlines",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in newsHeadlinesInput) (*mcp.CallToolResult, newsHeadlinesOutput, error) {
		if svc.News == nil {
			return nil, newsHeadlinesOutput{}, fmt.Errorf("news unavailable")
		}
		items, err := svc.News.FetchHeadlines(ctx)
		if err != nil {
			return nil, newsHeadlinesOutput{}, err
		}
		return nil, newsHeadlinesOutput{Headlines: toHeadlines(items, normalizeNewsLimit(in.Limit))}, nil
	})
}
