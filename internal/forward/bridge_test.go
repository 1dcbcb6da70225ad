package forward

import (
	"errors"
	"math"
	"testing"

	"golang.org/x/exp/rand"

	"moulder/internal/model"
)

// stubEvaluator returns a fixed curve, or an error when failing is set.
type stubEvaluator struct {
	curve   []float64
	failing bool
	calls   int
}

var errStub = errors.New("stub failure")

func (s *stubEvaluator) Evaluate(x, z []float64, polygons []*model.Polygon) ([]float64, error) {
	s.calls++
	if s.failing {
		return nil, errStub
	}
	out := make([]float64, len(s.curve))
	copy(out, s.curve)
	return out, nil
}

func TestBridgeStartsAtZero(t *testing.T) {
	b := NewBridge(&stubEvaluator{}, []float64{0, 1, 2}, []float64{0, 0, 0})
	pred := b.Predicted()
	if len(pred) != 3 {
		t.Fatalf("predicted length = %d, want 3", len(pred))
	}
	for i, v := range pred {
		if v != 0 {
			t.Errorf("point %d: %g, want 0", i, v)
		}
	}
}

func TestBridgeRecompute(t *testing.T) {
	eval := &stubEvaluator{curve: []float64{1, 2, 3}}
	b := NewBridge(eval, []float64{0, 1, 2}, []float64{0, 0, 0})
	set := model.NewSet(-2000, 2000)

	if err := b.Recompute(set); err != nil {
		t.Fatal(err)
	}
	if eval.calls != 1 {
		t.Errorf("evaluator calls = %d, want 1", eval.calls)
	}
	for i, want := range eval.curve {
		if b.Predicted()[i] != want {
			t.Errorf("point %d: %g, want %g", i, b.Predicted()[i], want)
		}
	}
}

func TestBridgeFailureKeepsPreviousCurve(t *testing.T) {
	eval := &stubEvaluator{curve: []float64{1, 2, 3}}
	b := NewBridge(eval, []float64{0, 1, 2}, []float64{0, 0, 0})
	set := model.NewSet(-2000, 2000)

	if err := b.Recompute(set); err != nil {
		t.Fatal(err)
	}
	eval.failing = true
	if err := b.Recompute(set); !errors.Is(err, errStub) {
		t.Fatalf("err = %v, want stub failure", err)
	}
	for i, want := range eval.curve {
		if b.Predicted()[i] != want {
			t.Errorf("point %d: %g, want previous value %g", i, b.Predicted()[i], want)
		}
	}
}

func TestBridgeContaminatesWithErrorLevel(t *testing.T) {
	eval := &stubEvaluator{curve: []float64{10, 10, 10, 10}}
	b := NewBridge(eval, make([]float64, 4), make([]float64, 4))
	b.SetErrorLevel(2)
	b.SetNoiseSource(rand.NewSource(1))
	set := model.NewSet(-2000, 2000)

	if err := b.Recompute(set); err != nil {
		t.Fatal(err)
	}
	same := true
	for _, v := range b.Predicted() {
		if v != 10 {
			same = false
		}
	}
	if same {
		t.Error("predicted curve should be contaminated")
	}
}

func TestSetErrorLevelReusesCleanCurve(t *testing.T) {
	eval := &stubEvaluator{curve: []float64{10, 10, 10}}
	b := NewBridge(eval, make([]float64, 3), make([]float64, 3))
	b.SetNoiseSource(rand.NewSource(7))
	if err := b.Recompute(model.NewSet(-2000, 2000)); err != nil {
		t.Fatal(err)
	}

	calls := eval.calls
	b.SetErrorLevel(3)
	if eval.calls != calls {
		t.Errorf("evaluator calls = %d, want unchanged on error-level move", eval.calls)
	}
	changed := false
	for _, v := range b.Predicted() {
		if v != 10 {
			changed = true
		}
	}
	if !changed {
		t.Error("error level change should contaminate the clean curve")
	}

	b.SetErrorLevel(0)
	for i, v := range b.Predicted() {
		if v != 10 {
			t.Errorf("point %d = %g, want the clean value restored", i, v)
		}
	}
}

func TestCurveLimitsPadding(t *testing.T) {
	eval := &stubEvaluator{curve: []float64{-5, 0, 10}}
	b := NewBridge(eval, make([]float64, 3), make([]float64, 3))
	if err := b.Recompute(model.NewSet(-2000, 2000)); err != nil {
		t.Fatal(err)
	}
	lo, hi := b.CurveLimits()
	if math.Abs(lo-(-6)) > 1e-12 || math.Abs(hi-12) > 1e-12 {
		t.Errorf("limits = (%g, %g), want (-6, 12)", lo, hi)
	}
}

func TestCurveLimitsFlatZero(t *testing.T) {
	b := NewBridge(&stubEvaluator{}, make([]float64, 3), make([]float64, 3))
	lo, hi := b.CurveLimits()
	if lo != -1 || hi != 1 {
		t.Errorf("limits = (%g, %g), want (-1, 1)", lo, hi)
	}
}

func TestCurveLimitsSpanZero(t *testing.T) {
	eval := &stubEvaluator{curve: []float64{3, 5, 9}}
	b := NewBridge(eval, make([]float64, 3), make([]float64, 3))
	if err := b.Recompute(model.NewSet(-2000, 2000)); err != nil {
		t.Fatal(err)
	}
	lo, hi := b.CurveLimits()
	if lo != 0 {
		t.Errorf("lo = %g, want 0 for an all-positive curve", lo)
	}
	if math.Abs(hi-10.8) > 1e-12 {
		t.Errorf("hi = %g, want 10.8", hi)
	}
}

func TestContaminate(t *testing.T) {
	values := []float64{1, 2, 3, 4}

	out := Contaminate(values, 0, nil)
	for i := range values {
		if out[i] != values[i] {
			t.Errorf("stddev 0: point %d changed", i)
		}
	}
	out[0] = 99
	if values[0] != 1 {
		t.Error("Contaminate should return a copy")
	}

	noisy := Contaminate(make([]float64, 10000), 1.5, rand.NewSource(42))
	var sum, sumSq float64
	for _, v := range noisy {
		sum += v
		sumSq += v * v
	}
	n := float64(len(noisy))
	mean := sum / n
	stddev := math.Sqrt(sumSq/n - mean*mean)
	if math.Abs(mean) > 0.1 {
		t.Errorf("noise mean = %g, want ~0", mean)
	}
	if math.Abs(stddev-1.5) > 0.1 {
		t.Errorf("noise stddev = %g, want ~1.5", stddev)
	}
}
