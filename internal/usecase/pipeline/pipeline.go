// Package pipeline wires normalization, vectorization, density clustering
// and partitioning into one synchronous batch computation. It holds no state
// between calls; every invocation is independent and side-effect-free.
package pipeline

import (
	"github.com/kailas-cloud/clustex/internal/domain/clustering"
	"github.com/kailas-cloud/clustex/internal/domain/document"
	"github.com/kailas-cloud/clustex/internal/usecase/density"
	"github.com/kailas-cloud/clustex/internal/usecase/neighbors"
	"github.com/kailas-cloud/clustex/internal/usecase/vectorize"
)

// Outcome is the full result of one clustering computation.
type Outcome struct {
	// Labels are index-aligned with the input documents; clustering.Noise
	// marks documents reachable from no core point.
	Labels []int
	// Groups maps each label to its document ids in input order.
	Groups map[int][]string
}

// Options tunes the pipeline without affecting its results.
type Options struct {
	// Workers caps the worker pools of all parallel stages; 0 means NumCPU.
	Workers int
}

// Cluster validates the corpus and parameters, then runs the whole pipeline:
// vectorize (fit on the whole corpus), density-cluster, partition.
func Cluster(docs []document.Document, p clustering.Params, opts Options) (Outcome, error) {
	p.ApplyDefaults()
	if err := p.Validate(); err != nil {
		return Outcome{}, err
	}
	if err := document.ValidateBatch(docs); err != nil {
		return Outcome{}, err
	}

	vecs, _ := vectorize.New(p.NgramMin, p.NgramMax).
		WithWorkers(opts.Workers).
		FitTransform(normalizedTexts(docs))

	labels, err := density.New(p.Eps, p.MinPoints).
		WithWorkers(opts.Workers).
		Cluster(vecs)
	if err != nil {
		return Outcome{}, err
	}

	return Outcome{
		Labels: labels,
		Groups: clustering.Partition(ids(docs), labels),
	}, nil
}

// KDistances validates the corpus and parameters, then computes the sorted
// k-th neighbor distance diagnostic over the same vector space the clusterer
// uses.
func KDistances(
	docs []document.Document, k int, p clustering.Params, opts Options,
) ([]clustering.DistanceRecord, error) {
	p.ApplyDefaults()
	if err := p.ValidateNgrams(); err != nil {
		return nil, err
	}
	if err := document.ValidateBatch(docs); err != nil {
		return nil, err
	}
	if err := neighbors.ValidateK(k, len(docs)); err != nil {
		return nil, err
	}

	vecs, _ := vectorize.New(p.NgramMin, p.NgramMax).
		WithWorkers(opts.Workers).
		FitTransform(normalizedTexts(docs))

	return neighbors.New().
		WithWorkers(opts.Workers).
		KthDistances(ids(docs), vecs, k)
}

func normalizedTexts(docs []document.Document) []string {
	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Normalized()
	}
	return texts
}

func ids(docs []document.Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.ID()
	}
	return out
}
