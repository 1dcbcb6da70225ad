package forward

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// Contaminate returns a copy of values with zero-mean Gaussian noise of the
// given standard deviation added to each sample. A stddev <= 0 returns an
// unmodified copy. src may be nil to use the global source; tests pass a
// seeded one.
func Contaminate(values []float64, stddev float64, src rand.Source) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	if stddev <= 0 {
		return out
	}

	dist := distuv.Normal{Mu: 0, Sigma: stddev, Src: src}
	for i := range out {
		out[i] += dist.Rand()
	}
	return out
}
