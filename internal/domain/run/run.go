// Package run defines the clustering run aggregate persisted between the
// initial computation and later retrieval (result, diagnostics, archive).
package run

import (
	"time"

	"github.com/kailas-cloud/clustex/internal/domain/clustering"
)

// DocumentRecord keeps what the archive and result views need per document:
// the identifier, the original text and the assigned label.
type DocumentRecord struct {
	ID    string
	Raw   string
	Label int
}

// Run is one completed clustering run. Immutable once stored.
type Run struct {
	ID        string
	CreatedAt time.Time
	Params    clustering.Params
	K         int // k used for the distance diagnostic; 0 when skipped
	Documents []DocumentRecord
	Groups    map[int][]string
	Distances []clustering.DistanceRecord
}

// ClusterCount returns the number of clusters, excluding the noise bucket.
func (r Run) ClusterCount() int {
	n := len(r.Groups)
	if _, ok := r.Groups[clustering.Noise]; ok {
		n--
	}
	return n
}

// NoiseCount returns the size of the noise bucket.
func (r Run) NoiseCount() int {
	return len(r.Groups[clustering.Noise])
}
