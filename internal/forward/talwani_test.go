package forward

import (
	"math"
	"testing"

	"moulder/internal/model"
	"moulder/pkg/geometry"
)

// buriedPrism builds a rectangular body centered on x=0 at depth.
func buriedPrism(halfWidth, top, bottom, density float64) *model.Set {
	s := model.NewSet(-2000, 2000)
	s.Append([]geometry.Point2D{
		{X: -halfWidth, Z: top},
		{X: halfWidth, Z: top},
		{X: halfWidth, Z: bottom},
		{X: -halfWidth, Z: bottom},
	}, density)
	return s
}

func profile(x0, x1 float64, n int) (x, z []float64) {
	x = make([]float64, n)
	z = make([]float64, n)
	step := (x1 - x0) / float64(n-1)
	for i := range x {
		x[i] = x0 + float64(i)*step
	}
	return x, z
}

func TestTalwaniMismatchedArrays(t *testing.T) {
	_, err := Talwani{}.Evaluate([]float64{0, 1}, []float64{0}, nil)
	if err == nil {
		t.Fatal("mismatched arrays should error")
	}
}

func TestTalwaniEmptyModelIsZero(t *testing.T) {
	x, z := profile(-1000, 1000, 11)
	out, err := Talwani{}.Evaluate(x, z, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range out {
		if v != 0 {
			t.Errorf("point %d: gz = %g, want 0", i, v)
		}
	}
}

func TestTalwaniZeroDensityIsZero(t *testing.T) {
	set := buriedPrism(500, 100, 600, 0)
	x, z := profile(-1000, 1000, 11)
	out, err := Talwani{}.Evaluate(x, z, set.All())
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range out {
		if math.Abs(v) > 1e-12 {
			t.Errorf("point %d: gz = %g, want 0", i, v)
		}
	}
}

func TestTalwaniPositiveDensityAttracts(t *testing.T) {
	set := buriedPrism(500, 100, 600, 1000)
	x, z := profile(-2000, 2000, 41)
	out, err := Talwani{}.Evaluate(x, z, set.All())
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range out {
		if v <= 0 {
			t.Errorf("point %d (x=%g): gz = %g, want > 0", i, x[i], v)
		}
	}
	// The anomaly should peak above the body center.
	mid := len(out) / 2
	for i, v := range out {
		if v > out[mid]+1e-12 {
			t.Errorf("point %d (x=%g): gz = %g exceeds center value %g", i, x[i], v, out[mid])
		}
	}
}

func TestTalwaniSymmetricBody(t *testing.T) {
	set := buriedPrism(500, 100, 600, 1000)
	x, z := profile(-2000, 2000, 41)
	out, err := Talwani{}.Evaluate(x, z, set.All())
	if err != nil {
		t.Fatal(err)
	}
	n := len(out)
	for i := 0; i < n/2; i++ {
		a, b := out[i], out[n-1-i]
		if math.Abs(a-b) > 1e-6*math.Max(math.Abs(a), 1) {
			t.Errorf("asymmetry at x=±%g: %g vs %g", math.Abs(x[i]), a, b)
		}
	}
}

func TestTalwaniDensityScalesLinearly(t *testing.T) {
	x, z := profile(-1500, 1500, 21)
	one, err := Talwani{}.Evaluate(x, z, buriedPrism(500, 100, 600, 1000).All())
	if err != nil {
		t.Fatal(err)
	}
	two, err := Talwani{}.Evaluate(x, z, buriedPrism(500, 100, 600, 2000).All())
	if err != nil {
		t.Fatal(err)
	}
	for i := range one {
		if math.Abs(two[i]-2*one[i]) > 1e-9*math.Max(math.Abs(two[i]), 1) {
			t.Errorf("point %d: doubled density gives %g, want %g", i, two[i], 2*one[i])
		}
	}
}

func TestTalwaniWindingIndependent(t *testing.T) {
	// The same prism entered counterclockwise must yield the same anomaly,
	// not a sign-flipped one.
	x, z := profile(-2000, 2000, 21)

	cw := buriedPrism(500, 100, 600, 1000)
	ccw := model.NewSet(-2000, 2000)
	ccw.Append([]geometry.Point2D{
		{X: -500, Z: 600},
		{X: 500, Z: 600},
		{X: 500, Z: 100},
		{X: -500, Z: 100},
	}, 1000)

	want, err := Talwani{}.Evaluate(x, z, cw.All())
	if err != nil {
		t.Fatal(err)
	}
	got, err := Talwani{}.Evaluate(x, z, ccw.All())
	if err != nil {
		t.Fatal(err)
	}
	for i := range want {
		if got[i] <= 0 {
			t.Errorf("point %d (x=%g): gz = %g, want > 0 regardless of draw direction", i, x[i], got[i])
		}
		if math.Abs(got[i]-want[i]) > 1e-9*math.Max(math.Abs(want[i]), 1) {
			t.Errorf("point %d (x=%g): ccw gz = %g, cw gz = %g", i, x[i], got[i], want[i])
		}
	}
}

func TestTalwaniSkipsDegeneratePolygons(t *testing.T) {
	s := model.NewSet(-2000, 2000)
	s.Append([]geometry.Point2D{{X: 0, Z: 100}, {X: 500, Z: 100}}, 1000)
	x, z := profile(-1000, 1000, 5)
	out, err := Talwani{}.Evaluate(x, z, s.All())
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range out {
		if v != 0 {
			t.Errorf("point %d: gz = %g, want 0 for a 2-vertex body", i, v)
		}
	}
}
