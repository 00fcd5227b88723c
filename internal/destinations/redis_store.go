package destinations

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "vivu:destinations:"

// RedisStore shares the list between processes: a set guards the names and a
// list keeps insertion order.
type RedisStore struct {
	client *redis.Client
	owner  string
}

func NewRedisStore(client *redis.Client, owner string) *RedisStore {
	return &RedisStore{client: client, owner: owner}
}

func (s *RedisStore) Load(ctx context.Context) ([]Record, error) {
	vals, err := s.client.LRange(ctx, s.listKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis lrange: %w", err)
	}

	records := make([]Record, 0, len(vals))
	for _, v := range vals {
		var rec Record
		if err := json.Unmarshal([]byte(v), &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal destination: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *RedisStore) Add(ctx context.Context, rec Record) error {
	added, err := s.client.SAdd(ctx, s.setKey(), rec.Key()).Result()
	if err != nil {
		return fmt.Errorf("redis sadd: %w", err)
	}
	if added == 0 {
		return nil
	}

	val, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if err := s.client.RPush(ctx, s.listKey(), val).Err(); err != nil {
		// keep the set consistent with the list
		s.client.SRem(ctx, s.setKey(), rec.Key())
		return fmt.Errorf("redis rpush: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.listKey(), s.setKey()).Err()
}

func (s *RedisStore) listKey() string { return keyPrefix + s.owner + ":list" }
func (s *RedisStore) setKey() string  { return keyPrefix + s.owner + ":names" }
