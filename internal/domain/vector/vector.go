// Package vector provides the sparse vector representation used by the
// TF-IDF vectorizer and both distance-based stages.
package vector

import "math"

// Sparse maps a vocabulary index to a non-negative weight.
// A nil or empty map is the zero vector, which is legal: a document may share
// no n-grams with the corpus vocabulary.
type Sparse map[int]float64

// IsZero reports whether the vector has no non-zero components.
func (v Sparse) IsZero() bool { return len(v) == 0 }

// Dot returns the dot product with another sparse vector.
// Iterates the smaller map.
func (v Sparse) Dot(o Sparse) float64 {
	if len(o) < len(v) {
		v, o = o, v
	}
	var sum float64
	for idx, w := range v {
		if ow, ok := o[idx]; ok {
			sum += w * ow
		}
	}
	return sum
}

// Norm returns the Euclidean (L2) norm.
func (v Sparse) Norm() float64 {
	var sum float64
	for _, w := range v {
		sum += w * w
	}
	return math.Sqrt(sum)
}

// Normalize scales the vector to unit L2 norm in place.
// The zero vector stays zero.
func (v Sparse) Normalize() {
	n := v.Norm()
	if n == 0 {
		return
	}
	for idx, w := range v {
		v[idx] = w / n
	}
}

// CosineDistance returns 1 - cosine similarity between two sparse vectors.
// Cosine similarity is undefined (0/0) when either vector is zero; by
// convention such pairs are treated as maximally distant, so zero-content
// documents behave as isolated points and are never spuriously close to
// each other.
func CosineDistance(a, b Sparse) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 1
	}
	sim := a.Dot(b) / (na * nb)
	// Clamp float drift so distances stay within [0, 1] for non-negative weights.
	if sim > 1 {
		sim = 1
	}
	if sim < 0 {
		sim = 0
	}
	return 1 - sim
}
