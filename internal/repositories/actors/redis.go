package actors

import (
	"context"
	"encoding/json"
	"fmt"

	dnderr "github.com/KirkDiggler/dnd-rules-engine/internal/errors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const (
	actorKeyPrefix = "actor:"
	scopeActorsKey = "scope:%s:actors"
)

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient
}

// redisRepository implements Repository using Redis
type redisRepository struct {
	client redis.UniversalClient
}

// NewRedisRepository creates a new Redis-backed actor repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg.Client == nil {
		panic("redis client is required")
	}
	return &redisRepository{client: cfg.Client}
}

func actorKey(id string) string {
	return actorKeyPrefix + id
}

func scopeKey(scope string) string {
	return fmt.Sprintf(scopeActorsKey, scope)
}

// Get retrieves an actor snapshot by id
func (r *redisRepository) Get(ctx context.Context, id string) (*Data, error) {
	raw, err := r.client.Get(ctx, actorKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, dnderr.NotFoundf("actor %q not found", id)
		}
		return nil, dnderr.Wrap(err, "failed to get actor")
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, dnderr.Wrap(err, "failed to deserialize actor")
	}
	return &data, nil
}

// GetBatch fans out a Get per id and fails if any is missing
func (r *redisRepository) GetBatch(ctx context.Context, ids []string) ([]*Data, error) {
	out := make([]*Data, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			data, err := r.Get(ctx, id)
			if err != nil {
				return err
			}
			out[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Save stores an actor snapshot and maintains the scope index
func (r *redisRepository) Save(ctx context.Context, data *Data) error {
	if data == nil || data.ID == "" {
		return dnderr.InvalidArgument("actor data requires an id")
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return dnderr.Wrap(err, "failed to serialize actor")
	}

	// A scope change must drop the old index entry
	existing, err := r.Get(ctx, data.ID)
	if err != nil && !dnderr.IsNotFound(err) {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, actorKey(data.ID), raw, 0)
	if existing != nil && existing.Scope != "" && existing.Scope != data.Scope {
		pipe.SRem(ctx, scopeKey(existing.Scope), data.ID)
	}
	if data.Scope != "" {
		pipe.SAdd(ctx, scopeKey(data.Scope), data.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return dnderr.Wrap(err, "failed to save actor")
	}
	return nil
}

// Delete removes an actor snapshot and its scope index entry
func (r *redisRepository) Delete(ctx context.Context, id string) error {
	existing, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, actorKey(id))
	if existing.Scope != "" {
		pipe.SRem(ctx, scopeKey(existing.Scope), id)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return dnderr.Wrap(err, "failed to delete actor")
	}
	return nil
}

// ListScope returns the actor ids indexed under a scope
func (r *redisRepository) ListScope(ctx context.Context, scope string) ([]string, error) {
	ids, err := r.client.SMembers(ctx, scopeKey(scope)).Result()
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to list scope actors")
	}
	return ids, nil
}
