// Package clustex groups text documents into clusters of structurally
// similar documents: character n-gram TF-IDF vectors, density-based
// clustering under cosine distance, plus a k-distance diagnostic for eps
// selection.
//
// The engine is a pure batch computation. It accepts (id, text) pairs and a
// small set of numeric parameters, and returns cluster groupings and
// diagnostic distances; it performs no I/O and keeps no state between calls.
package clustex

import (
	"errors"

	"github.com/kailas-cloud/clustex/internal/domain"
	"github.com/kailas-cloud/clustex/internal/domain/clustering"
	"github.com/kailas-cloud/clustex/internal/domain/document"
	"github.com/kailas-cloud/clustex/internal/usecase/pipeline"
)

// Noise is the label of documents reachable from no core point.
const Noise = clustering.Noise

// Sentinel errors returned by the engine.
var (
	// ErrConfiguration signals an invalid parameter combination (eps <= 0,
	// min_points < 1, k out of range, duplicate ids, empty corpus).
	ErrConfiguration = domain.ErrConfiguration
	// ErrInvalidInput signals that supplied documents failed validation;
	// use errors.As with *ValidationError for the full offender list.
	ErrInvalidInput = domain.ErrInvalidInput
)

// ValidationError lists every offending document of a rejected batch.
type ValidationError = domain.ValidationError

// Document is one input: a unique non-empty id and already-decoded text.
type Document struct {
	ID   string
	Text string
}

// Params controls a clustering run. The n-gram range defaults to [3, 5]
// when both bounds are zero; Eps and MinPoints are always explicit.
type Params struct {
	NgramMin  int
	NgramMax  int
	Eps       float64
	MinPoints int
}

// Result is the outcome of one clustering run.
type Result struct {
	// Labels maps every document id to its cluster label (Noise for the
	// noise bucket).
	Labels map[string]int
	// Clusters maps each label to its document ids in input order. Every
	// input id appears in exactly one group.
	Clusters map[int][]string
}

// DistanceRecord reports the cosine distance from one document to its k-th
// nearest neighbor.
type DistanceRecord struct {
	DocumentID string
	Distance   float64
}

// Cluster partitions the documents into clusters plus a noise bucket.
func Cluster(docs []Document, p Params) (Result, error) {
	outcome, err := pipeline.Cluster(toDomain(docs), clustering.Params(p), pipeline.Options{})
	if err != nil {
		return Result{}, err
	}

	labels := make(map[string]int, len(docs))
	for i, d := range docs {
		labels[d.ID] = outcome.Labels[i]
	}
	return Result{Labels: labels, Clusters: outcome.Groups}, nil
}

// KDistances returns, for every document, the cosine distance to its k-th
// nearest neighbor (1-indexed, self excluded), sorted ascending. The sorted
// curve is the elbow plot input used to choose eps by inspection; the engine
// never derives eps itself. Requires 1 <= k <= len(docs)-1.
func KDistances(docs []Document, k int, p Params) ([]DistanceRecord, error) {
	records, err := pipeline.KDistances(toDomain(docs), k, clustering.Params(p), pipeline.Options{})
	if err != nil {
		return nil, err
	}

	out := make([]DistanceRecord, len(records))
	for i, rec := range records {
		out[i] = DistanceRecord{DocumentID: rec.DocumentID, Distance: rec.Distance}
	}
	return out, nil
}

// IsConfiguration reports whether err is a parameter/configuration failure.
func IsConfiguration(err error) bool { return errors.Is(err, ErrConfiguration) }

func toDomain(docs []Document) []document.Document {
	out := make([]document.Document, len(docs))
	for i, d := range docs {
		out[i] = document.New(d.ID, d.Text)
	}
	return out
}
