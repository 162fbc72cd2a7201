// Package run stores clustering runs as JSON values in Redis/Valkey with a
// bounded lifetime.
package run

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/clustex/internal/db"
	"github.com/kailas-cloud/clustex/internal/domain"
	domrun "github.com/kailas-cloud/clustex/internal/domain/run"
)

// store is the consumer interface for run persistence (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// Repo implements usecase/run.Repository.
type Repo struct {
	store     store
	keyPrefix string
	ttl       time.Duration
}

// New creates a run repository. ttl bounds how long a run stays retrievable;
// zero means no expiration.
func New(s store, keyPrefix string, ttl time.Duration) *Repo {
	return &Repo{store: s, keyPrefix: keyPrefix, ttl: ttl}
}

// Save persists a run.
func (r *Repo) Save(ctx context.Context, rn domrun.Run) error {
	data, err := json.Marshal(buildJSONRun(rn))
	if err != nil {
		return fmt.Errorf("marshal run: %w", err)
	}

	key := r.key(rn.ID)
	if r.ttl > 0 {
		if err := r.store.SetWithTTL(ctx, key, data, r.ttl); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
		return nil
	}
	if err := r.store.Set(ctx, key, data); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Get returns a run by id.
func (r *Repo) Get(ctx context.Context, id string) (domrun.Run, error) {
	key := r.key(id)
	data, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domrun.Run{}, domain.ErrRunNotFound
		}
		return domrun.Run{}, fmt.Errorf("get %s: %w", key, err)
	}

	var j jsonRun
	if err := json.Unmarshal(data, &j); err != nil {
		return domrun.Run{}, fmt.Errorf("unmarshal run %s: %w", id, err)
	}
	rn, err := j.toDomain()
	if err != nil {
		return domrun.Run{}, fmt.Errorf("decode run %s: %w", id, err)
	}
	return rn, nil
}

// Delete removes a run. Deleting an unknown run is reported as not found so
// the caller can distinguish expiry from a bad id.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := r.key(id)
	ok, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("exists %s: %w", key, err)
	}
	if !ok {
		return domain.ErrRunNotFound
	}
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

func (r *Repo) key(id string) string {
	return r.keyPrefix + "run:" + id
}
