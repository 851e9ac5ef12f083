package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/iaww/iaww-server-go/internal/config"
	"github.com/iaww/iaww-server-go/internal/game"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps encoded games under <prefix>:game:<id> and tracks their
// IDs in the <prefix>:games set. Games expire after the configured TTL of
// inactivity; zero keeps them forever.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore connects and pings the server.
func NewRedisStore(ctx context.Context, cfg config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Addr, err)
	}
	return NewRedisStoreWithClient(client, cfg.Prefix, cfg.TTL), nil
}

// NewRedisStoreWithClient wraps an existing client.
func NewRedisStoreWithClient(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = "iaww"
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) gameKey(id uuid.UUID) string {
	return s.prefix + ":game:" + id.String()
}

func (s *RedisStore) indexKey() string {
	return s.prefix + ":games"
}

func (s *RedisStore) Get(ctx context.Context, id uuid.UUID) (*game.Game, error) {
	data, err := s.client.Get(ctx, s.gameKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find game: %w", err)
	}
	return game.Decode(data)
}

func (s *RedisStore) Put(ctx context.Context, g *game.Game) error {
	data, err := game.Encode(g)
	if err != nil {
		return err
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.gameKey(g.ID), data, s.ttl)
		pipe.SAdd(ctx, s.indexKey(), g.ID.String())
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id uuid.UUID) error {
	var deleted *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		deleted = pipe.Del(ctx, s.gameKey(id))
		pipe.SRem(ctx, s.indexKey(), id.String())
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}
	if deleted.Val() == 0 {
		return ErrNotFound
	}
	return nil
}

// List decodes every indexed game. IDs whose key has expired are dropped
// from the index.
func (s *RedisStore) List(ctx context.Context) ([]Summary, error) {
	ids, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	out := make([]Summary, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		g, err := s.Get(ctx, id)
		if errors.Is(err, ErrNotFound) {
			s.client.SRem(ctx, s.indexKey(), raw)
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, summarize(g))
	}
	sortSummaries(out)
	return out, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
