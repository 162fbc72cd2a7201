package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/clustex/internal/domain/clustering"
	"github.com/kailas-cloud/clustex/internal/domain/document"
	domrun "github.com/kailas-cloud/clustex/internal/domain/run"
)

// mockRunService implements RunService for handler tests.
type mockRunService struct {
	createFn  func(ctx context.Context, docs []document.Document, p clustering.Params, k int) (domrun.Run, error)
	getFn     func(ctx context.Context, id string) (domrun.Run, error)
	deleteFn  func(ctx context.Context, id string) error
	archiveFn func(ctx context.Context, id string) ([]byte, error)
}

func (m *mockRunService) Create(
	ctx context.Context, docs []document.Document, p clustering.Params, k int,
) (domrun.Run, error) {
	if m.createFn != nil {
		return m.createFn(ctx, docs, p, k)
	}
	return domrun.Run{}, nil
}

func (m *mockRunService) Get(ctx context.Context, id string) (domrun.Run, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return domrun.Run{}, nil
}

func (m *mockRunService) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockRunService) Archive(ctx context.Context, id string) ([]byte, error) {
	if m.archiveFn != nil {
		return m.archiveFn(ctx, id)
	}
	return nil, nil
}

type mockPinger struct {
	pingErr error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.pingErr }

func newTestRouter(svc *mockRunService, pinger *mockPinger) http.Handler {
	if pinger == nil {
		pinger = &mockPinger{}
	}
	r := chi.NewRouter()
	NewServer(svc, pinger, zap.NewNop()).RegisterRoutes(r)
	return r
}

func newTestRouterWithLimits(svc *mockRunService, maxDocuments int) http.Handler {
	r := chi.NewRouter()
	NewServer(svc, &mockPinger{}, zap.NewNop()).
		WithLimits(maxDocuments, 0).
		RegisterRoutes(r)
	return r
}

func sampleRun() domrun.Run {
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
