// Package neighbors computes the k-th nearest neighbor distance per document
// under the cosine metric. The sorted output is the elbow curve a human
// inspects to choose eps; the engine never derives eps from it.
package neighbors

import (
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/kailas-cloud/clustex/internal/domain"
	"github.com/kailas-cloud/clustex/internal/domain/clustering"
	"github.com/kailas-cloud/clustex/internal/domain/vector"
)

// Estimator computes exact k-th neighbor distances with an O(N²) scan.
// Rows are distributed across a worker pool; each worker writes only its own
// output slots against the shared immutable vector matrix.
type Estimator struct {
	workers int
}

// New creates an estimator.
func New() *Estimator {
	return &Estimator{workers: runtime.NumCPU()}
}

// WithWorkers overrides the worker count.
func (e *Estimator) WithWorkers(n int) *Estimator {
	if n > 0 {
		e.workers = n
	}
	return e
}

// ValidateK checks the neighbor rank against the corpus size. Callers run it
// before any vectorization so an out-of-range k never costs O(N²) work.
func ValidateK(k, n int) error {
	if k < 1 {
		return fmt.Errorf("%w: k must be >= 1, got %d", domain.ErrConfiguration, k)
	}
	if k > n-1 {
		return fmt.Errorf(
			"%w: k=%d requires at least %d documents, got %d",
			domain.ErrConfiguration, k, k+1, n,
		)
	}
	return nil
}

// KthDistances returns, for every document, the cosine distance to its k-th
// nearest neighbor (1-indexed, self excluded), sorted ascending by distance.
// Requires 1 <= k <= N-1; anything else is a configuration failure rather
// than a meaningless result.
func (e *Estimator) KthDistances(
	ids []string, vecs []vector.Sparse, k int,
) ([]clustering.DistanceRecord, error) {
	n := len(vecs)
	if err := ValidateK(k, n); err != nil {
		return nil, err
	}

	records := make([]clustering.DistanceRecord, n)

	workers := e.workers
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	rows := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			dists := make([]float64, 0, n-1)
			for i := range rows {
				dists = dists[:0]
				for j := 0; j < n; j++ {
					if j == i {
						continue
					}
					dists = append(dists, vector.CosineDistance(vecs[i], vecs[j]))
				}
				sort.Float64s(dists)
				records[i] = clustering.DistanceRecord{
					DocumentID: ids[i],
					Distance:   dists[k-1],
				}
			}
		}()
	}
	for i := 0; i < n; i++ {
		rows <- i
	}
	close(rows)
	wg.Wait()

	// Ascending by distance, input order breaking ties, for a stable curve.
	sort.SliceStable(records, func(a, b int) bool {
		return records[a].Distance < records[b].Distance
	})
	return records, nil
}
