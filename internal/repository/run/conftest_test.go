package run

import (
	"context"
	"testing"
	"time"

	"github.com/kailas-cloud/clustex/internal/domain/clustering"
	domrun "github.com/kailas-cloud/clustex/internal/domain/run"
)

const testKeyPrefix = "clustex:"

// mockStore implements the consumer interface for tests.
type mockStore struct {
	getFn        func(ctx context.Context, key string) ([]byte, error)
	setFn        func(ctx context.Context, key string, value []byte) error
	setWithTTLFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	delFn        func(ctx context.Context, key string) error
	existsFn     func(ctx context.Context, key string) (bool, error)
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, nil
}

func (m *mockStore) Set(ctx context.Context, key string, value []byte) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value)
	}
	return nil
}

func (m *mockStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setWithTTLFn != nil {
		return m.setWithTTLFn(ctx, key, value, ttl)
	}
	return nil
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func (m *mockStore) Exists(ctx context.Context, key string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, key)
	}
	return true, nil
}

func testRun(t *testing.T) domrun.Run {
	t.Helper()
	return domrun.Run{
		ID:        "run-1",
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Params:    clustering.Params{NgramMin: 3, NgramMax: 5, Eps: 0.3, MinPoints: 2},
		K:         1,
		Documents: []domrun.DocumentRecord{
			{ID: "a", Raw: "hello world", Label: 0},
			{ID: "b", Raw: "Hello World!", Label: 0},
			{ID: "c", Raw: "unrelated", Label: clustering.Noise},
		},
		Groups: map[int][]string{
			0:                {"a", "b"},
			clustering.Noise: {"c"},
		},
		Distances: []clustering.DistanceRecord{
			{DocumentID: "a", Distance: 0},
			{DocumentID: "b", Distance: 0},
			{DocumentID: "c", Distance: 1},
		},
	}
}
