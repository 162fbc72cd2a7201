// Package clustering holds the label model shared by the density clusterer,
// the partitioner and the run service.
package clustering

import "sort"

// Noise is the label of a document reachable from no core point.
const Noise = -1

// DistanceRecord reports the distance from one document to its k-th nearest
// neighbor. Diagnostic only: it feeds the elbow curve a human inspects to
// choose eps, and is never consumed by the clusterer.
type DistanceRecord struct {
	DocumentID string  `json:"document_id"`
	Distance   float64 `json:"distance"`
}

// Partition groups document ids by assigned label, preserving the original
// input order within each group. Every id lands in exactly one group.
func Partition(ids []string, labels []int) map[int][]string {
	groups := make(map[int][]string)
	for i, id := range ids {
		groups[labels[i]] = append(groups[labels[i]], id)
	}
	return groups
}

// Labels returns the group labels of a partition in ascending order,
// with Noise last when present.
func Labels(groups map[int][]string) []int {
	labels := make([]int, 0, len(groups))
	hasNoise := false
	for l := range groups {
		if l == Noise {
			hasNoise = true
			continue
		}
		labels = append(labels, l)
	}
	sort.Ints(labels)
	if hasNoise {
		labels = append(labels, Noise)
	}
	return labels
}
