package clustering

import (
	"fmt"

	"github.com/kailas-cloud/clustex/internal/domain"
)

// Default character n-gram range. These are the only implicit defaults the
// engine carries; eps and min_points are always explicit.
const (
	DefaultNgramMin = 3
	DefaultNgramMax = 5
)

// Params holds the parameters of one clustering run.
type Params struct {
	NgramMin  int
	NgramMax  int
	Eps       float64
	MinPoints int
}

// ApplyDefaults fills the n-gram range when unset.
func (p *Params) ApplyDefaults() {
	if p.NgramMin == 0 && p.NgramMax == 0 {
		p.NgramMin = DefaultNgramMin
		p.NgramMax = DefaultNgramMax
	}
}

// ValidateNgrams checks only the n-gram range, the part of the parameters
// the distance diagnostic shares with clustering.
func (p Params) ValidateNgrams() error {
	if p.NgramMin < 1 {
		return fmt.Errorf("%w: ngram_min must be >= 1, got %d", domain.ErrConfiguration, p.NgramMin)
	}
	if p.NgramMax < p.NgramMin {
		return fmt.Errorf("%w: ngram_max must be >= ngram_min, got [%d, %d]",
			domain.ErrConfiguration, p.NgramMin, p.NgramMax)
	}
	return nil
}

// Validate checks the full parameter combination.
func (p Params) Validate() error {
	if err := p.ValidateNgrams(); err != nil {
		return err
	}
	if p.Eps <= 0 {
		return fmt.Errorf("%w: eps must be > 0, got %g", domain.ErrConfiguration, p.Eps)
	}
	if p.MinPoints < 1 {
		return fmt.Errorf("%w: min_points must be >= 1, got %d", domain.ErrConfiguration, p.MinPoints)
	}
	return nil
}
