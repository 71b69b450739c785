package state

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/scanme/authflow/internal/verification/entity"
	"github.com/sethvargo/go-retry"
)

const (
	redisSessionKey = "authflow:session"
	redisTokenKey   = "authflow:vtoken:"
)

// Redis is a Store backed by a Redis instance, sharing state across
// processes on the same account.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a Redis-backed store and verifies connectivity with a
// short fibonacci-backoff ping. Entries expire after ttl; zero means no
// expiry.
func NewRedis(ctx context.Context, client *redis.Client, ttl time.Duration) (*Redis, error) {
	backoff := retry.WithMaxRetries(3, retry.NewFibonacci(200*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Redis{client: client, ttl: ttl}, nil
}

func (r *Redis) Establish(ctx context.Context, s entity.Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, redisSessionKey, raw, r.ttl).Err()
}

func (r *Redis) Load(ctx context.Context) (entity.Session, error) {
	raw, err := r.client.Get(ctx, redisSessionKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return entity.Session{}, nil
	}
	if err != nil {
		return entity.Session{}, err
	}

	var s entity.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return entity.Session{}, err
	}
	return s, nil
}

func (r *Redis) Clear(ctx context.Context) error {
	return r.client.Del(ctx, redisSessionKey).Err()
}

func (r *Redis) StashVerificationToken(ctx context.Context, p entity.Purpose, token string) error {
	return r.client.Set(ctx, redisTokenKey+p.String(), token, r.ttl).Err()
}

func (r *Redis) VerificationToken(ctx context.Context, p entity.Purpose) (string, error) {
	val, err := r.client.Get(ctx, redisTokenKey+p.String()).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (r *Redis) ClearVerificationToken(ctx context.Context, p entity.Purpose) error {
	return r.client.Del(ctx, redisTokenKey+p.String()).Err()
}
