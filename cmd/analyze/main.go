package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"trading-assistant/internal/app"
	"trading-assistant/internal/cache"
	"trading-assistant/internal/config"
	"trading-assistant/internal/domain"
	"trading-assistant/internal/intent"
	"trading-assistant/internal/tokenomics"
	"trading-assistant/pkg/logging"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace/noop"
)

type analyzer interface {
	Analyze(ctx context.Context, coinID string, investment float64) (*tokenomics.Report, error)
}

type resolver interface {
	Resolve(ctx context.Context, text string) (domain.Resolution, error)
}

type narrator interface {
	Explain(ctx context.Context, record *domain.MetricRecord, userName string) string
}

type predictor interface {
	Predict(ctx context.Context, pair, interval string) (*domain.Prediction, error)
}

type engine struct {
	analyzer  analyzer
	resolver  resolver
	narrator  narrator
	predictor predictor
}

var buildEngineFunc = func(ctx context.Context) (*engine, error) {
	_ = godotenv.Load()
	cfg := config.Load()
	logging.SetupWriter(os.Stderr, cfg.LogLevel, "console")

	if err := cache.InitRedis(ctx, cfg.RedisURL); err != nil {
		log.Debug().Err(err).Msg("redis unavailable")
	}
	c := app.Wire(cfg, noop.NewTracerProvider().Tracer("analyze"), nil)
	e := &engine{analyzer: c.Analyzer, resolver: c.Resolver, narrator: c.Advisor}
	if c.Predictor != nil {
		e.predictor = c.Predictor
	}
	return e, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal().Err(err).Msg("analyze failed")
	}
}

func newRootCmd() *cobra.Command {
	var e *engine
	root := &cobra.Command{
		Use:           "analyze",
		Short:         "Run the tokenomics engine from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if e != nil {
				return nil
			}
			built, err := buildEngineFunc(cmd.Context())
			if err != nil {
				return err
			}
			e = built
			return nil
		},
	}
	engineOf := func() *engine { return e }

	root.AddCommand(
		newTokenomicsCmd(engineOf),
		newResolveCmd(engineOf),
		newIntentCmd(),
		newPredictCmd(engineOf),
	)
	return root
}

func newTokenomicsCmd(engineOf func() *engine) *cobra.Command {
	var (
		amount  float64
		asJSON  bool
		explain bool
		name    string
	)
	cmd := &cobra.Command{
		Use:   "tokenomics <coin>",
		Short: "Full tokenomics and risk analysis for a coin name, symbol or id",
		Example: `  analyze tokenomics eth
  analyze tokenomics solana --amount 500 --explain
  analyze tokenomics bitcoin --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if amount <= 0 {
				return fmt.Errorf("--amount must be positive")
			}
			e := engineOf()
			ctx := cmd.Context()

			res, err := e.resolver.Resolve(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			if res.Defaulted() {
				log.Warn().Str("query", strings.Join(args, " ")).Msg("no coin matched, analyzing bitcoin")
			}
			report, err := e.analyzer.Analyze(ctx, res.CoinID, amount)
			if err != nil {
				return fmt.Errorf("analyze %s: %w", res.CoinID, err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report.Record)
			}
			if err := writeRecord(out, report.Record); err != nil {
				return err
			}
			if explain && e.narrator != nil {
				fmt.Fprintf(out, "\n%s\n", e.narrator.Explain(ctx, report.Record, name))
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&amount, "amount", tokenomics.DefaultInvestment, "Hypothetical investment in USD")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the ordered metric record as JSON")
	cmd.Flags().BoolVar(&explain, "explain", false, "Append the AI explanation")
	cmd.Flags().StringVar(&name, "name", "there", "Name used in the explanation")
	return cmd
}

func newResolveCmd(engineOf func() *engine) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <text>",
		Short: "Show which coin id a piece of text maps to",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := engineOf().resolver.Resolve(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s", res.CoinID, res.Source)
			if res.Match != "" {
				fmt.Fprintf(cmd.OutOrStdout(), ", matched %q", res.Match)
			}
			if res.Score > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), ", score %d", res.Score)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ")")
			return nil
		},
	}
}

func newIntentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "intent <message>",
		Short: "Classify a chat message",
		Args:  cobra.MinimumNArgs(1),
		// Classification is pure; skip wiring the engine.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			msg := strings.Join(args, " ")
			kind := intent.Classify(msg)
			fmt.Fprintln(cmd.OutOrStdout(), kind)
			switch kind {
			case domain.IntentTokenomics:
				if amount, ok := intent.ExtractInvestmentAmount(msg); ok {
					fmt.Fprintf(cmd.OutOrStdout(), "investment: %.2f\n", amount)
				}
			case domain.IntentPrediction:
				fmt.Fprintf(cmd.OutOrStdout(), "pair: %s\ntimeframe: %s\n", intent.ExtractTradingPair(msg), intent.ExtractTimeframe(msg))
			}
			return nil
		},
	}
}

func newPredictCmd(engineOf func() *engine) *cobra.Command {
	var timeframe string
	cmd := &cobra.Command{
		Use:   "predict <pair>",
		Short: "Technical bias and trade plan for a trading pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := engineOf()
			if e.predictor == nil {
				return fmt.Errorf("prediction is disabled (PREDICTION_ENABLED=false)")
			}
			pair := strings.ToUpper(args[0])
			if !strings.HasSuffix(pair, "USDT") {
				pair = intent.ExtractTradingPair(args[0])
			}
			pred, err := e.predictor.Predict(cmd.Context(), pair, intent.ExtractTimeframe(timeframe))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s: %s (strength %.1f)\n", pred.Symbol, pred.Timeframe, pred.Bias, pred.Strength)
			for _, c := range pred.Confluences {
				fmt.Fprintf(out, "  %-10s %-8s %s\n", c.Indicator, c.Direction, c.Details)
			}
			fmt.Fprintf(out, "\n%s\n", pred.Plan)
			return nil
		},
	}
	cmd.Flags().StringVarP(&timeframe, "timeframe", "t", intent.DefaultTimeframe, "Candle interval: 5m, 15m, 1h, 4h or 1d")
	return cmd
}

func writeRecord(w io.Writer, record *domain.MetricRecord) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, m := range record.Entries() {
		fmt.Fprintf(tw, "%s\t%s\n", strings.ReplaceAll(m.Key, "_", " "), m.Value)
	}
	return tw.Flush()
}
