package tokenomics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trading-assistant/internal/domain"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultInvestment is used when a request names no amount.
const DefaultInvestment = 1000.0

// MarketData is the provider boundary the analyzer needs.
type MarketData interface {
	FetchSnapshot(ctx context.Context, coinID string) (*domain.CoinSnapshot, error)
	FetchSeries(ctx context.Context, coinID string, days int) (*domain.PriceSeries, error)
}

// Recorder receives analysis outcomes for metrics.
type Recorder interface {
	ObserveAnalysis(outcome string, elapsed time.Duration)
	ObserveSeriesSkipped(timeframe string)
}

type noopRecorder struct{}

func (noopRecorder) ObserveAnalysis(string, time.Duration) {}
func (noopRecorder) ObserveSeriesSkipped(string)           {}

// Analyzer runs the fetch, derive and score pipeline for one coin.
type Analyzer struct {
	market   MarketData
	tracer   trace.Tracer
	recorder Recorder
	now      func() time.Time
}

func NewAnalyzer(market MarketData, tracer trace.Tracer, recorder Recorder) *Analyzer {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &Analyzer{market: market, tracer: tracer, recorder: recorder, now: time.Now}
}

// Analyze fetches the snapshot and every analysis timeframe sequentially and
// derives the report. A missing snapshot returns domain.ErrNotFound; failed
// timeframes are left out of the report.
func (a *Analyzer) Analyze(ctx context.Context, coinID string, investment float64) (*Report, error) {
	ctx, span := a.tracer.Start(ctx, "tokenomics.analyze")
	defer span.End()
	span.SetAttributes(attribute.String("coin.id", coinID), attribute.Float64("investment", investment))

	start := a.now()
	if investment <= 0 {
		investment = DefaultInvestment
	}

	snap, err := a.market.FetchSnapshot(ctx, coinID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "snapshot unavailable")
		a.recorder.ObserveAnalysis(outcomeFor(err), a.now().Sub(start))
		if !errors.Is(err, domain.ErrNotFound) {
			err = fmt.Errorf("%v: %w", err, domain.ErrNotFound)
		}
		return nil, err
	}

	analyses := a.analyzeHistory(ctx, snap.ID, coinID)

	report, err := DeriveAll(snap, analyses, investment, a.now())
	if err != nil {
		a.recorder.ObserveAnalysis("error", a.now().Sub(start))
		return nil, fmt.Errorf("derive metrics for %s: %w", coinID, err)
	}

	log.Info().
		Str("coin_id", coinID).
		Int("timeframes", len(analyses)).
		Int("risk_score", report.Risk.Score).
		Dur("elapsed", a.now().Sub(start)).
		Msg("tokenomics analysis complete")
	a.recorder.ObserveAnalysis("ok", a.now().Sub(start))
	return report, nil
}

func (a *Analyzer) analyzeHistory(ctx context.Context, snapshotID, requested string) []domain.TimeframeAnalysis {
	id := snapshotID
	if id == "" {
		id = requested
	}

	analyses := make([]domain.TimeframeAnalysis, 0, len(domain.AnalysisTimeframes))
	for _, tf := range domain.AnalysisTimeframes {
		series, err := a.market.FetchSeries(ctx, id, tf.Days)
		if err != nil {
			log.Debug().Err(err).Str("coin_id", id).Str("timeframe", tf.Label).Msg("skipping timeframe")
			a.recorder.ObserveSeriesSkipped(tf.Label)
			continue
		}
		returns, ok := ComputeReturns(series.PriceValues(), tf.Days)
		if !ok {
			a.recorder.ObserveSeriesSkipped(tf.Label)
			continue
		}
		analyses = append(analyses, domain.TimeframeAnalysis{
			Timeframe: tf,
			Returns:   returns,
			Volume:    ComputeVolumeTrend(series.VolumeValues()),
		})
	}
	return analyses
}

func outcomeFor(err error) string {
	if errors.Is(err, domain.ErrNotFound) {
		return "not_found"
	}
	return "error"
}
