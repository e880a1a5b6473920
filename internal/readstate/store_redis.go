package readstate

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists read-state sets as Redis sets, one key per operator.
// Alert IDs are deterministic, so re-marking after a re-evaluation is a
// plain SADD no-op.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore constructs a Redis-backed read-state store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func key(userID string) string {
	return "vigil:read:" + userID
}

func (s *RedisStore) MarkRead(ctx context.Context, userID, alertID string) error {
	if err := s.client.SAdd(ctx, key(userID), alertID).Err(); err != nil {
		return fmt.Errorf("mark alert read: %w", err)
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context, userID string) (map[string]struct{}, error) {
	ids, err := s.client.SMembers(ctx, key(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("list read alerts: %w", err)
	}
	out := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out, nil
}
