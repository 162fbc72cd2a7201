// Package density implements density-based clustering (DBSCAN semantics)
// under cosine distance, as an explicit state machine over point roles so
// label assignment order and tie-breaking are reproducible.
package density

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/kailas-cloud/clustex/internal/domain"
	"github.com/kailas-cloud/clustex/internal/domain/clustering"
	"github.com/kailas-cloud/clustex/internal/domain/vector"
)

// unvisited marks a point not yet reached by any cluster expansion.
// Distinct from clustering.Noise: a noise point has been visited and found
// unreachable from every core point (it may still be absorbed as a border
// point later).
const unvisited = -2

// Clusterer assigns every document a cluster label or the noise marker.
type Clusterer struct {
	eps       float64
	minPoints int
	workers   int
}

// New creates a clusterer with the given neighborhood radius and core
// threshold.
func New(eps float64, minPoints int) *Clusterer {
	return &Clusterer{eps: eps, minPoints: minPoints, workers: runtime.NumCPU()}
}

// WithWorkers overrides the worker count for the neighborhood precomputation.
func (c *Clusterer) WithWorkers(n int) *Clusterer {
	if n > 0 {
		c.workers = n
	}
	return c
}

// Cluster labels every vector. It is pure and total over valid vectors:
// all-zero vectors cannot fail it, they are simply maximally distant from
// everything (including other all-zero vectors) and behave as isolated
// points.
//
// A point is core when at least minPoints points (itself included) lie
// within eps. Clusters are discovered in input order: the first unassigned
// core point starts a new cluster, numbered sequentially from 0, and the
// cluster absorbs every point reachable through core neighborhoods. Border
// points keep the first cluster that reaches them; they are never
// reassigned. Points reachable from no core point are labeled Noise.
func (c *Clusterer) Cluster(vecs []vector.Sparse) ([]int, error) {
	if c.eps <= 0 {
		return nil, fmt.Errorf("%w: eps must be > 0, got %g", domain.ErrConfiguration, c.eps)
	}
	if c.minPoints < 1 {
		return nil, fmt.Errorf("%w: min_points must be >= 1, got %d", domain.ErrConfiguration, c.minPoints)
	}

	n := len(vecs)
	neighborhoods := c.neighborhoods(vecs)

	labels := make([]int, n)
	for i := range labels {
		labels[i] = unvisited
	}

	next := 0
	queue := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if labels[i] != unvisited {
			continue
		}
		if len(neighborhoods[i]) < c.minPoints {
			labels[i] = clustering.Noise
			continue
		}

		label := next
		next++
		labels[i] = label

		queue = append(queue[:0], neighborhoods[i]...)
		for head := 0; head < len(queue); head++ {
			j := queue[head]
			if labels[j] == clustering.Noise {
				// Border point: absorbed into the first cluster reaching it.
				labels[j] = label
				continue
			}
			if labels[j] != unvisited {
				continue
			}
			labels[j] = label
			if len(neighborhoods[j]) >= c.minPoints {
				queue = append(queue, neighborhoods[j]...)
			}
		}
	}

	return labels, nil
}

// neighborhoods returns, per point, the indices within eps in ascending
// index order, always including the point itself. Cosine distance is
// symmetric, so each row could be derived from a triangular computation;
// rows are instead computed independently so they parallelize without
// shared writes.
func (c *Clusterer) neighborhoods(vecs []vector.Sparse) [][]int {
	n := len(vecs)
	neighborhoods := make([][]int, n)

	workers := c.workers
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
			for i := range rows {
				nbrs := make([]int, 0, 4)
				for j := 0; j < n; j++ {
					if j == i {
						// A point is always in its own neighborhood, even
						// when its vector is zero and its self-distance is
						// maximal by the zero-vector convention.
						nbrs = append(nbrs, j)
						continue
					}
					if vector.CosineDistance(vecs[i], vecs[j]) <= c.eps {
						nbrs = append(nbrs, j)
					}
				}
				neighborhoods[i] = nbrs
			}
		}()
	}
	for i := 0; i < n; i++ {
		rows <- i
	}
	close(rows)
	wg.Wait()

	return neighborhoods
}
