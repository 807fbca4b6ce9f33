package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"evcharge-service/internal/domain/entity"
	"evcharge-service/internal/domain/repository"
)

// RedisActiveSessionStore caches in-progress charging sessions in Redis
// for quick dashboard access between check-in and completion.
type RedisActiveSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisActiveSessionStore returns a redis-backed store
func NewRedisActiveSessionStore(client *redis.Client, ttl time.Duration) repository.ActiveSessionStore {
	return &RedisActiveSessionStore{client: client, ttl: ttl}
}

func (s *RedisActiveSessionStore) key(bookingID string) string {
	return fmt.Sprintf("sessions:active:%s", bookingID)
}

// Save caches an active session
func (s *RedisActiveSessionStore) Save(ctx context.Context, session *entity.ActiveSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(session.BookingID), data, s.ttl).Err()
}

// Get returns a cached session, (nil, nil) when none exists
func (s *RedisActiveSessionStore) Get(ctx context.Context, bookingID string) (*entity.ActiveSession, error) {
	result, err := s.client.Get(ctx, s.key(bookingID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var session entity.ActiveSession
	if err := json.Unmarshal([]byte(result), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Delete evicts a cached session
func (s *RedisActiveSessionStore) Delete(ctx context.Context, bookingID string) error {
	return s.client.Del(ctx, s.key(bookingID)).Err()
}
