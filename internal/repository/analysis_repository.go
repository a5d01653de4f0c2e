package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"trading-assistant/internal/domain"
	"trading-assistant/internal/tokenomics"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// AnalysisSummary is one logged tokenomics analysis.
type AnalysisSummary struct {
	ID        int64                `json:"id"`
	CoinID    string               `json:"coin_id"`
	RiskScore int                  `json:"risk_score"`
	RiskLevel domain.RiskLevel     `json:"risk_level"`
	Record    *domain.MetricRecord `json:"record"`
	CreatedAt time.Time            `json:"created_at"`
}

// AnalysisRepository logs completed tokenomics analyses.
type AnalysisRepository struct {
	pool   PgxPool
	tracer trace.Tracer
}

func NewAnalysisRepository(pool PgxPool, tracer trace.Tracer) *AnalysisRepository {
	return &AnalysisRepository{pool: pool, tracer: tracer}
}

func (r *AnalysisRepository) SaveAnalysis(ctx context.Context, report *tokenomics.Report) error {
	ctx, span := r.tracer.Start(ctx, "analysis-repo.save")
	defer span.End()

	if report == nil || report.Record == nil {
		return errors.New("save analysis: empty report")
	}
	span.SetAttributes(attribute.String("coin.id", report.CoinID))

	record, err := json.Marshal(report.Record)
	if err != nil {
		return fmt.Errorf("encode metric record: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO tokenomics_analyses (coin_id, risk_score, risk_level, record, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		report.CoinID, report.Risk.Score, int(report.Risk.Level), string(record), report.GeneratedAt,
	)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("insert analysis: %w", err)
	}
	return nil
}

// LatestAnalysis returns the most recent logged analysis for coinID, or
// domain.ErrNotFound.
func (r *AnalysisRepository) LatestAnalysis(ctx context.Context, coinID string) (*AnalysisSummary, error) {
	ctx, span := r.tracer.Start(ctx, "analysis-repo.latest")
	defer span.End()
	span.SetAttributes(attribute.String("coin.id", coinID))

	var (
		s      AnalysisSummary
		level  int
		record []byte
	)
	err := r.pool.QueryRow(ctx,
		`SELECT id, coin_id, risk_score, risk_level, record, created_at
		 FROM tokenomics_analyses
		 WHERE coin_id = $1
		 ORDER BY created_at DESC
		 LIMIT 1`,
		coinID,
	).Scan(&s.ID, &s.CoinID, &s.RiskScore, &level, &record, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("analysis for %s: %w", coinID, domain.ErrNotFound)
	}
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query analysis: %w", err)
	}

	s.RiskLevel = domain.RiskLevel(level)
	s.CreatedAt = s.CreatedAt.UTC()
	s.Record = domain.NewMetricRecord()
	if err := json.Unmarshal(record, s.Record); err != nil {
		return nil, fmt.Errorf("decode metric record: %w", err)
	}
	return &s, nil
}
