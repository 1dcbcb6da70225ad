package geometry

import (
	"math"
	"testing"
)

func closedSquare() []Point2D {
	return []Point2D{
		{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0},
	}
}

func TestIsSeamIndex(t *testing.T) {
	ring := closedSquare()
	vs := []struct {
		index int
		want  bool
	}{
		{0, true},
		{1, false},
		{2, false},
		{3, false},
		{4, true},
	}
	for _, v := range vs {
		if got := IsSeamIndex(ring, v.index); got != v.want {
			t.Errorf("IsSeamIndex(%d) = %v, want %v", v.index, got, v.want)
		}
	}
}

func TestNearestVertex(t *testing.T) {
	ring := closedSquare()

	idx, dist := NearestVertex(ring, Point2D{X: 9, Z: 1})
	if idx != 1 {
		t.Errorf("nearest index = %d, want 1", idx)
	}
	if math.Abs(dist-math.Sqrt2) > 1e-12 {
		t.Errorf("distance = %f, want sqrt(2)", dist)
	}

	if idx, _ := NearestVertex(nil, Point2D{}); idx != -1 {
		t.Errorf("empty ring nearest index = %d, want -1", idx)
	}
}

func TestPointInPolygon(t *testing.T) {
	ring := closedSquare()
	vs := []struct {
		p    Point2D
		want bool
	}{
		{Point2D{5, 5}, true},
		{Point2D{1, 9}, true},
		{Point2D{-1, 5}, false},
		{Point2D{11, 5}, false},
		{Point2D{5, -0.5}, false},
		{Point2D{5, 10.5}, false},
	}
	for i, v := range vs {
		if got := PointInPolygon(v.p, ring); got != v.want {
			t.Errorf("test=%d PointInPolygon(%v) = %v, want %v", i, v.p, got, v.want)
		}
	}

	if PointInPolygon(Point2D{0, 0}, ring[:2]) {
		t.Error("degenerate ring should contain nothing")
	}
}

func TestBestInsertionIndexEdgeMidpoints(t *testing.T) {
	// For a convex polygon, a point just outside the midpoint of edge
	// (i, i+1) must insert at i+1.
	ring := closedSquare()
	vs := []struct {
		p    Point2D
		want int
	}{
		{Point2D{5, -0.5}, 1},  // edge (0,1)
		{Point2D{10.5, 5}, 2},  // edge (1,2)
		{Point2D{5, 10.5}, 3},  // edge (2,3)
		{Point2D{-0.5, 5}, 4},  // edge (3,0): inserts before the seam slot
	}
	for i, v := range vs {
		if got := BestInsertionIndex(ring, v.p); got != v.want {
			t.Errorf("test=%d BestInsertionIndex(%v) = %d, want %d", i, v.p, got, v.want)
		}
	}
}

func TestBestInsertionIndexInsidePoints(t *testing.T) {
	// Points inside but nearest to an edge still pick that edge.
	ring := closedSquare()
	if got := BestInsertionIndex(ring, Point2D{5, 1}); got != 1 {
		t.Errorf("inside point near bottom edge inserts at %d, want 1", got)
	}
	if got := BestInsertionIndex(ring, Point2D{9, 5}); got != 2 {
		t.Errorf("inside point near right edge inserts at %d, want 2", got)
	}
}

func TestBestInsertionIndexOnVertex(t *testing.T) {
	ring := closedSquare()
	if got := BestInsertionIndex(ring, Point2D{0, 0}); got != 1 {
		t.Errorf("point on the seam vertex inserts at %d, want 1", got)
	}
}

func TestAffineInverseRoundTrip(t *testing.T) {
	proj := Translation(46, 150).
		Compose(Scaling(0.01, -0.02)).
		Compose(Translation(-1000, -50))
	inv, ok := proj.Inverse()
	if !ok {
		t.Fatal("projection should be invertible")
	}

	p := Point2D{X: 12345, Z: 678}
	got := inv.Apply(proj.Apply(p))
	if math.Abs(got.X-p.X) > 1e-6 || math.Abs(got.Z-p.Z) > 1e-6 {
		t.Errorf("round trip %v -> %v", p, got)
	}

	if _, ok := Scaling(1, 0).Inverse(); ok {
		t.Error("degenerate transform should not invert")
	}
}

func TestBoundingBox(t *testing.T) {
	box := BoundingBox([]Point2D{{1, 2}, {-3, 8}, {5, -1}})
	want := Rect{X: -3, Z: -1, Width: 8, Height: 9}
	if box != want {
		t.Errorf("BoundingBox = %+v, want %+v", box, want)
	}
}
