package actors

import (
	"context"
	"encoding/json"
	"sync"

	dnderr "github.com/KirkDiggler/dnd-rules-engine/internal/errors"
)

// inMemoryRepository implements Repository with a mutex-guarded map,
// for tests and single-process demos
type inMemoryRepository struct {
	mu     sync.RWMutex
	actors map[string][]byte
	scopes map[string]map[string]bool
}

// NewInMemoryRepository creates an empty in-memory repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		actors: make(map[string][]byte),
		scopes: make(map[string]map[string]bool),
	}
}

func (r *inMemoryRepository) Get(_ context.Context, id string) (*Data, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	raw, ok := r.actors[id]
	if !ok {
		return nil, dnderr.NotFoundf("actor %q not found", id)
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, dnderr.Wrap(err, "failed to deserialize actor")
	}
	return &data, nil
}

func (r *inMemoryRepository) GetBatch(ctx context.Context, ids []string) ([]*Data, error) {
	out := make([]*Data, 0, len(ids))
	for _, id := range ids {
		data, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, data)
	}
	return out, nil
}

func (r *inMemoryRepository) Save(_ context.Context, data *Data) error {
	if data == nil || data.ID == "" {
		return dnderr.InvalidArgument("actor data requires an id")
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return dnderr.Wrap(err, "failed to serialize actor")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Drop any stale scope index entry before re-indexing
	for scope, members := range r.scopes {
		if members[data.ID] && scope != data.Scope {
			delete(members, data.ID)
		}
	}

	r.actors[data.ID] = raw
	if data.Scope != "" {
		if r.scopes[data.Scope] == nil {
			r.scopes[data.Scope] = make(map[string]bool)
		}
		r.scopes[data.Scope][data.ID] = true
	}
	return nil
}

func (r *inMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.actors[id]; !ok {
		return dnderr.NotFoundf("actor %q not found", id)
	}
	delete(r.actors, id)
	for _, members := range r.scopes {
		delete(members, id)
	}
	return nil
}

func (r *inMemoryRepository) ListScope(_ context.Context, scope string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []string
	for id := range r.scopes[scope] {
		ids = append(ids, id)
	}
	return ids, nil
}
