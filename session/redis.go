package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"golang.org/x/oauth2"

	"mailsift/config"
	"mailsift/models"
	"mailsift/utils"
)

const redisKeyPrefix = "session:"

// redisSession is the stored shape; the oauth2 token has to survive the
// round-trip so it is serialized explicitly rather than through the
// Session's json tags.
type redisSession struct {
	ID        string          `json:"id"`
	Token     *oauth2.Token   `json:"token"`
	User      models.UserInfo `json:"user"`
	CreatedAt time.Time       `json:"created_at"`
}

// RedisStore backs the session store with Redis, using key TTLs instead of
// explicit sweeps. Sessions survive process restarts for as long as the TTL
// allows, which is an acceptable superset of the in-memory behavior.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(cfg config.RedisConfig, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		ttl: ttl,
	}
}

func (s *RedisStore) Create(ctx context.Context, token *oauth2.Token, user models.UserInfo) (string, error) {
	id, err := utils.GenerateSessionID()
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(redisSession{
		ID:        id,
		Token:     token,
		User:      user,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode session: %w", err)
	}

	if err := s.client.Set(ctx, redisKeyPrefix+id, payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return id, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*models.Session, error) {
	payload, err := s.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var stored redisSession
	if err := json.Unmarshal(payload, &stored); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}

	return &models.Session{
		ID:        stored.ID,
		Token:     stored.Token,
		User:      stored.User,
		CreatedAt: stored.CreatedAt,
	}, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, redisKeyPrefix+id).Err()
}

// Sweep is a no-op: Redis evicts sessions through key TTLs.
func (s *RedisStore) Sweep(ctx context.Context) int {
	return 0
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
