// Package vectorize builds character n-gram TF-IDF vectors over a corpus.
package vectorize

import (
	"math"
	"runtime"
	"sync"

	"github.com/kailas-cloud/clustex/internal/domain/vector"
)

// Vocabulary maps an n-gram token to its dense column index. Indices are
// assigned in first-seen order over the corpus and are stable for the
// lifetime of one run; a new FitTransform produces an independent vocabulary.
type Vocabulary map[string]int

// Vectorizer converts normalized documents into L2-normalized TF-IDF vectors
// over character n-grams.
type Vectorizer struct {
	minN    int
	maxN    int
	workers int
}

// New creates a vectorizer for the given n-gram range.
// The range is assumed validated (params validation happens up front).
func New(minN, maxN int) *Vectorizer {
	return &Vectorizer{minN: minN, maxN: maxN, workers: runtime.NumCPU()}
}

// WithWorkers overrides the tokenization worker count.
func (v *Vectorizer) WithWorkers(n int) *Vectorizer {
	if n > 0 {
		v.workers = n
	}
	return v
}

// FitTransform tokenizes every document, fits the vocabulary over the whole
// corpus and returns one vector per document in input order, plus the fitted
// vocabulary.
//
// Tokenization fans out across a worker pool; each worker owns disjoint
// output slots, so no locking is needed. The vocabulary fit is a barrier:
// it only starts once every token multiset is known.
//
// Weights: tf(d,t) is the raw count of t in d's n-gram multiset,
// idf(t) = ln((1+N)/(1+df(t))) + 1 (smoothed, so a corpus of size 1 still
// yields a valid vector), weight = tf × idf, then each vector is divided by
// its Euclidean norm. A document sharing no n-grams with the vocabulary
// yields the zero vector, which downstream stages accept.
func (v *Vectorizer) FitTransform(texts []string) ([]vector.Sparse, Vocabulary) {
	n := len(texts)
	tokens := make([][]string, n)

	workers := v.workers
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				tokens[i] = ngrams(texts[i], v.minN, v.maxN)
			}
		}()
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	// Vocabulary fit: first-seen order over the corpus in input order.
	vocab := make(Vocabulary)
	df := make([]int, 0)
	counts := make([]map[int]int, n)
	for i := 0; i < n; i++ {
		tf := make(map[int]int, len(tokens[i]))
		for _, tok := range tokens[i] {
			idx, ok := vocab[tok]
			if !ok {
				idx = len(vocab)
				vocab[tok] = idx
				df = append(df, 0)
			}
			tf[idx]++
		}
		for idx := range tf {
			df[idx]++
		}
		counts[i] = tf
	}

	idf := make([]float64, len(df))
	for idx, d := range df {
		idf[idx] = math.Log(float64(1+n)/float64(1+d)) + 1
	}

	vectors := make([]vector.Sparse, n)
	for i := 0; i < n; i++ {
		vec := make(vector.Sparse, len(counts[i]))
		for idx, tf := range counts[i] {
			vec[idx] = float64(tf) * idf[idx]
		}
		vec.Normalize()
		vectors[i] = vec
	}

	return vectors, vocab
}
