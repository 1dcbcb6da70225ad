package forward

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/floats"

	"moulder/internal/model"
)

// Bridge connects the editing engine to the evaluator. It owns the
// measurement points, the error level, and the last predicted curve. The
// editor calls Recompute after every committed mutation; on evaluator
// failure the previous curve is kept and the error is returned, so the model
// stays editable while the data display goes stale.
type Bridge struct {
	eval       Evaluator
	x, z       []float64
	errorLevel float64
	noiseSrc   rand.Source

	clean     []float64 // last evaluator output, before contamination
	predicted []float64
}

// NewBridge creates a bridge around an evaluator with the given measurement
// points. The predicted curve starts as all zeros.
func NewBridge(eval Evaluator, x, z []float64) *Bridge {
	return &Bridge{
		eval:      eval,
		x:         x,
		z:         z,
		clean:     make([]float64, len(x)),
		predicted: make([]float64, len(x)),
	}
}

// SetMeasurementPoints replaces the observation points. The caller is
// responsible for triggering a recompute afterwards.
func (b *Bridge) SetMeasurementPoints(x, z []float64) {
	b.x = x
	b.z = z
}

// MeasurementPoints returns the current observation points.
func (b *Bridge) MeasurementPoints() (x, z []float64) {
	return b.x, b.z
}

// SetErrorLevel sets the noise standard deviation and re-derives the
// predicted curve from the last clean evaluation, so moving the error slider
// does not re-run the evaluator. Zero restores the clean curve.
func (b *Bridge) SetErrorLevel(level float64) {
	b.errorLevel = level
	b.applyNoise()
}

// ErrorLevel returns the current noise standard deviation.
func (b *Bridge) ErrorLevel() float64 {
	return b.errorLevel
}

// SetNoiseSource sets the random source used for contamination. Mainly for
// reproducible tests; nil uses the global source.
func (b *Bridge) SetNoiseSource(src rand.Source) {
	b.noiseSrc = src
}

// Recompute evaluates the forward model for the current polygon set and
// refreshes the predicted curve, contaminating it when an error level is
// set. On failure the previous curve is retained.
func (b *Bridge) Recompute(set *model.Set) error {
	values, err := b.eval.Evaluate(b.x, b.z, set.All())
	if err != nil {
		return err
	}
	b.clean = values
	b.applyNoise()
	return nil
}

// applyNoise rebuilds the predicted curve from the clean one.
func (b *Bridge) applyNoise() {
	if b.errorLevel > 0 {
		b.predicted = Contaminate(b.clean, b.errorLevel, b.noiseSrc)
	} else {
		b.predicted = b.clean
	}
}

// Predicted returns the latest predicted curve, one value per measurement
// point.
func (b *Bridge) Predicted() []float64 {
	return b.predicted
}

// CurveLimits returns display limits for the predicted curve, padded by 20%
// the way the data axis autoscales. Falls back to ±1 for a flat zero curve.
func (b *Bridge) CurveLimits() (lo, hi float64) {
	if len(b.predicted) == 0 {
		return -1, 1
	}
	lo = 1.2 * floats.Min(b.predicted)
	hi = 1.2 * floats.Max(b.predicted)
	if lo == 0 && hi == 0 {
		return -1, 1
	}
	if lo > 0 {
		lo = 0
	}
	if hi < 0 {
		hi = 0
	}
	return lo, hi
}
