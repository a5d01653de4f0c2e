package repository

import (
	"context"
	"fmt"
	"time"

	"trading-assistant/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ConversationRepository stores conversation turns in Postgres.
type ConversationRepository struct {
	pool   PgxPool
	tracer trace.Tracer
}

func NewConversationRepository(pool PgxPool, tracer trace.Tracer) *ConversationRepository {
	return &ConversationRepository{pool: pool, tracer: tracer}
}

func (r *ConversationRepository) Persistent() bool { return true }

func (r *ConversationRepository) Append(ctx context.Context, conversationID string, turn domain.ConversationTurn) error {
	ctx, span := r.tracer.Start(ctx, "conversation-repo.append")
	defer span.End()
	span.SetAttributes(attribute.String("conversation.id", conversationID))

	if turn.Kind == "" {
		turn.Kind = domain.KindText
	}
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now().UTC()
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO conversation_turns (conversation_id, role, kind, content, payload, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		conversationID, string(turn.Role), string(turn.Kind), turn.Content, nullableJSON(turn.Payload), turn.CreatedAt,
	)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("append conversation turn: %w", err)
	}
	return nil
}

// Recent returns the newest limit turns, oldest first.
func (r *ConversationRepository) Recent(ctx context.Context, conversationID string, limit int) ([]domain.ConversationTurn, error) {
	ctx, span := r.tracer.Start(ctx, "conversation-repo.recent")
	defer span.End()
	span.SetAttributes(attribute.String("conversation.id", conversationID), attribute.Int("limit", limit))

	rows, err := r.pool.Query(ctx,
		`SELECT role, kind, content, payload, created_at
		 FROM conversation_turns
		 WHERE conversation_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2`,
		conversationID, limit,
	)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query conversation turns: %w", err)
	}
	defer rows.Close()

	var turns []domain.ConversationTurn
	for rows.Next() {
		var (
			role, kind, content string
			payload             []byte
			ts                  time.Time
		)
		if err := rows.Scan(&role, &kind, &content, &payload, &ts); err != nil {
			return nil, fmt.Errorf("scan conversation turn: %w", err)
		}
		turns = append(turns, domain.ConversationTurn{
			Role:      domain.Role(role),
			Kind:      domain.TurnKind(kind),
			Content:   content,
			Payload:   payload,
			CreatedAt: ts.UTC(),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate conversation turns: %w", err)
	}

	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
	return turns, nil
}

func nullableJSON(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}
