package repository

import (
	"context"
	"sync"
	"time"

	"trading-assistant/internal/domain"
)

// MaxMemoryTurns caps each in-memory conversation.
const MaxMemoryTurns = 200

// MemoryConversationStore keeps conversations in process memory. It is used
// when no database is configured and loses everything on restart.
type MemoryConversationStore struct {
	mu    sync.RWMutex
	turns map[string][]domain.ConversationTurn
}

func NewMemoryConversationStore() *MemoryConversationStore {
	return &MemoryConversationStore{turns: make(map[string][]domain.ConversationTurn)}
}

func (s *MemoryConversationStore) Persistent() bool { return false }

func (s *MemoryConversationStore) Append(_ context.Context, conversationID string, turn domain.ConversationTurn) error {
	if turn.Kind == "" {
		turn.Kind = domain.KindText
	}
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	list := append(s.turns[conversationID], turn)
	if len(list) > MaxMemoryTurns {
		list = append([]domain.ConversationTurn(nil), list[len(list)-MaxMemoryTurns:]...)
	}
	s.turns[conversationID] = list
	return nil
}

func (s *MemoryConversationStore) Recent(_ context.Context, conversationID string, limit int) ([]domain.ConversationTurn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.turns[conversationID]
	if limit > 0 && len(list) > limit {
		list = list[len(list)-limit:]
	}
	return append([]domain.ConversationTurn(nil), list...), nil
}
