package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Turn is one exchange in a conversation.
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

const maxSessionTurns = 20

// SessionStore keeps per-conversation history in Redis, keyed by
// company and phone number, with a TTL so abandoned sessions evict
// themselves.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &SessionStore{client: client, ttl: ttl}
}

func sessionKey(companyID uuid.UUID, phone string) string {
	return fmt.Sprintf("agent:session:%s:%s", companyID, phone)
}

func (s *SessionStore) History(ctx context.Context, companyID uuid.UUID, phone string) ([]Turn, error) {
	raw, err := s.client.Get(ctx, sessionKey(companyID, phone)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var turns []Turn
	if err := json.Unmarshal([]byte(raw), &turns); err != nil {
		return nil, err
	}
	return turns, nil
}

func (s *SessionStore) Append(ctx context.Context, companyID uuid.UUID, phone string, turns ...Turn) error {
	history, err := s.History(ctx, companyID, phone)
	if err != nil {
		return err
	}

	history = append(history, turns...)
	if len(history) > maxSessionTurns {
		history = history[len(history)-maxSessionTurns:]
	}

	raw, err := json.Marshal(history)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(companyID, phone), raw, s.ttl).Err()
}

func (s *SessionStore) Clear(ctx context.Context, companyID uuid.UUID, phone string) error {
	return s.client.Del(ctx, sessionKey(companyID, phone)).Err()
}
