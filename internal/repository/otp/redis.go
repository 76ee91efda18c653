package otp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cafe-storefront/internal/domain"
	"github.com/go-redis/redis/v8"
)

type redisStore struct {
	client *redis.Client
}

// NewRedis returns a Store backed by redis so codes survive restarts and can
// be shared across instances.
func NewRedis(client *redis.Client) Store {
	return &redisStore{client: client}
}

func key(phone string) string {
	return "otp:" + phone
}

func (s *redisStore) Get(ctx context.Context, phone string) (*Record, error) {
	data, err := s.client.Get(ctx, key(phone)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("otp redis get: %w", err)
	}

	var rec Record
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("otp redis decode: %w", err)
	}
	return &rec, nil
}

func (s *redisStore) Set(ctx context.Context, phone string, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("otp redis encode: %w", err)
	}

	// TTL is a backstop twice the expiry window; the verifier checks the
	// recorded expiry itself so it can distinguish Expired from NotFound.
	ttl := 2 * time.Until(rec.Expiry)
	if ttl <= 0 {
		ttl = time.Minute
	}
	if err := s.client.Set(ctx, key(phone), data, ttl).Err(); err != nil {
		return fmt.Errorf("otp redis set: %w", err)
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, phone string) error {
	if err := s.client.Del(ctx, key(phone)).Err(); err != nil {
		return fmt.Errorf("otp redis delete: %w", err)
	}
	return nil
}
