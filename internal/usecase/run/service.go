// Package run orchestrates clustering runs: it drives the batch pipeline,
// assigns run identifiers, persists results for later retrieval and
// instruments each run with logging and metrics.
package run

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/clustex/internal/archive"
	"github.com/kailas-cloud/clustex/internal/domain/clustering"
	"github.com/kailas-cloud/clustex/internal/domain/document"
	domrun "github.com/kailas-cloud/clustex/internal/domain/run"
	"github.com/kailas-cloud/clustex/internal/metrics"
	"github.com/kailas-cloud/clustex/internal/usecase/neighbors"
	"github.com/kailas-cloud/clustex/internal/usecase/pipeline"
)

// Service creates and retrieves clustering runs.
type Service struct {
	repo    Repository
	logger  *zap.Logger
	workers int
	now     func() time.Time
	newID   func() string
}

// New creates a run service.
func New(repo Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
}

// WithWorkers caps the worker pools of the pipeline stages; 0 means NumCPU.
func (s *Service) WithWorkers(n int) *Service {
	s.workers = n
	return s
}

// Create validates the corpus and parameters, runs the full pipeline and
// persists the result. When k > 0 the k-distance diagnostic is computed over
// the same run; k = 0 skips it.
func (s *Service) Create(
	ctx context.Context, docs []document.Document, p clustering.Params, k int,
) (domrun.Run, error) {
	start := s.now()
	opts := pipeline.Options{Workers: s.workers}

	// An out-of-range k must fail before the clustering pipeline spends any
	// O(N²) effort on the corpus.
	if k > 0 {
		if err := neighbors.ValidateK(k, len(docs)); err != nil {
			metrics.RunsTotal.WithLabelValues(metrics.StatusRejected).Inc()
			return domrun.Run{}, err
		}
	}

	outcome, err := pipeline.Cluster(docs, p, opts)
	if err != nil {
		metrics.RunsTotal.WithLabelValues(metrics.StatusRejected).Inc()
		return domrun.Run{}, err
	}

	var distances []clustering.DistanceRecord
	if k > 0 {
		distances, err = pipeline.KDistances(docs, k, p, opts)
		if err != nil {
			metrics.RunsTotal.WithLabelValues(metrics.StatusRejected).Inc()
			return domrun.Run{}, err
		}
	}

	p.ApplyDefaults()
	records := make([]domrun.DocumentRecord, len(docs))
	for i, d := range docs {
		records[i] = domrun.DocumentRecord{ID: d.ID(), Raw: d.Raw(), Label: outcome.Labels[i]}
	}

	r := domrun.Run{
		ID:        s.newID(),
		CreatedAt: start.UTC(),
		Params:    p,
		K:         k,
		Documents: records,
		Groups:    outcome.Groups,
		Distances: distances,
	}

	if err := s.repo.Save(ctx, r); err != nil {
		metrics.RunsTotal.WithLabelValues(metrics.StatusError).Inc()
		return domrun.Run{}, fmt.Errorf("save run %s: %w", r.ID, err)
	}

	elapsed := s.now().Sub(start)
	metrics.RunsTotal.WithLabelValues(metrics.StatusOK).Inc()
	metrics.RunDuration.Observe(elapsed.Seconds())
	metrics.CorpusDocuments.Observe(float64(len(docs)))
	metrics.ClustersFound.Observe(float64(r.ClusterCount()))
	metrics.NoiseDocuments.Observe(float64(r.NoiseCount()))

	s.logger.Info("clustering run completed",
		zap.String("run_id", r.ID),
		zap.Int("documents", len(docs)),
		zap.Int("clusters", r.ClusterCount()),
		zap.Int("noise", r.NoiseCount()),
		zap.Float64("eps", p.Eps),
		zap.Int("min_points", p.MinPoints),
		zap.Duration("elapsed", elapsed),
	)

	return r, nil
}

// Get returns a stored run by id.
func (s *Service) Get(ctx context.Context, id string) (domrun.Run, error) {
	r, err := s.repo.Get(ctx, id)
	if err != nil {
		return domrun.Run{}, fmt.Errorf("get run %s: %w", id, err)
	}
	return r, nil
}

// Delete removes a stored run before its TTL expires.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete run %s: %w", id, err)
	}
	s.logger.Info("clustering run deleted", zap.String("run_id", id))
	return nil
}

// Archive returns a ZIP of a stored run, with one cluster_<label> folder per
// cluster and a noise folder for unclustered documents.
func (s *Service) Archive(ctx context.Context, id string) ([]byte, error) {
	r, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}
	data, err := archive.Build(r)
	if err != nil {
		return nil, fmt.Errorf("build archive for run %s: %w", id, err)
	}
	return data, nil
}
