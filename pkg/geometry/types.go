// Package geometry provides the 2-D types and polygon predicates used by the
// modeling canvas. Model space is (x, z) with z increasing downward (depth).
package geometry

import (
	"math"
)

// Point2D represents a point in model or screen space.
type Point2D struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// NewPoint2D creates a new Point2D.
func NewPoint2D(x, z float64) Point2D {
	return Point2D{X: x, Z: z}
}

// Distance returns the Euclidean distance to another point.
func (p Point2D) Distance(other Point2D) float64 {
	dx := p.X - other.X
	dz := p.Z - other.Z
	return math.Sqrt(dx*dx + dz*dz)
}

// Add returns the sum of two points.
func (p Point2D) Add(other Point2D) Point2D {
	return Point2D{X: p.X + other.X, Z: p.Z + other.Z}
}

// Sub returns the difference of two points.
func (p Point2D) Sub(other Point2D) Point2D {
	return Point2D{X: p.X - other.X, Z: p.Z - other.Z}
}

// Scale returns the point scaled by a factor.
func (p Point2D) Scale(factor float64) Point2D {
	return Point2D{X: p.X * factor, Z: p.Z * factor}
}

// Rect represents an axis-aligned rectangle, used for viewport bounds.
type Rect struct {
	X      float64 `json:"x"`
	Z      float64 `json:"z"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewRect creates a new Rect.
func NewRect(x, z, width, height float64) Rect {
	return Rect{X: x, Z: z, Width: width, Height: height}
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(p Point2D) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Z >= r.Z && p.Z <= r.Z+r.Height
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point2D {
	return Point2D{X: r.X + r.Width/2, Z: r.Z + r.Height/2}
}

// AffineTransform represents a 2x3 affine transformation matrix.
// [a b tx]
// [c d tz]
// The canvas uses one to project model coordinates to screen pixels.
type AffineTransform struct {
	A, B, TX float64
	C, D, TZ float64
}

// Identity returns the identity transform.
func Identity() AffineTransform {
	return AffineTransform{A: 1, D: 1}
}

// Translation returns a translation transform.
func Translation(tx, tz float64) AffineTransform {
	return AffineTransform{A: 1, D: 1, TX: tx, TZ: tz}
}

// Scaling returns a scaling transform. Negative factors flip an axis, which
// the canvas uses for the inverted depth axis.
func Scaling(sx, sz float64) AffineTransform {
	return AffineTransform{A: sx, D: sz}
}

// Apply applies the transform to a point.
func (t AffineTransform) Apply(p Point2D) Point2D {
	return Point2D{
		X: t.A*p.X + t.B*p.Z + t.TX,
		Z: t.C*p.X + t.D*p.Z + t.TZ,
	}
}

// ApplyAll applies the transform to each point of a ring.
func (t AffineTransform) ApplyAll(points []Point2D) []Point2D {
	out := make([]Point2D, len(points))
	for i, p := range points {
		out[i] = t.Apply(p)
	}
	return out
}

// Compose returns this transform composed with another (this * other).
func (t AffineTransform) Compose(other AffineTransform) AffineTransform {
	return AffineTransform{
		A:  t.A*other.A + t.B*other.C,
		B:  t.A*other.B + t.B*other.D,
		TX: t.A*other.TX + t.B*other.TZ + t.TX,
		C:  t.C*other.A + t.D*other.C,
		D:  t.C*other.B + t.D*other.D,
		TZ: t.C*other.TX + t.D*other.TZ + t.TZ,
	}
}

// Inverse returns the inverse transform, if it exists.
func (t AffineTransform) Inverse() (AffineTransform, bool) {
	det := t.A*t.D - t.B*t.C
	if math.Abs(det) < 1e-10 {
		return AffineTransform{}, false
	}

	invDet := 1.0 / det
	return AffineTransform{
		A:  t.D * invDet,
		B:  -t.B * invDet,
		TX: (t.B*t.TZ - t.D*t.TX) * invDet,
		C:  -t.C * invDet,
		D:  t.A * invDet,
		TZ: (t.C*t.TX - t.A*t.TZ) * invDet,
	}, true
}

// BoundingBox computes the axis-aligned bounding box of a set of points.
func BoundingBox(points []Point2D) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	minX, minZ := points[0].X, points[0].Z
	maxX, maxZ := minX, minZ
	for _, p := range points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Z < minZ {
			minZ = p.Z
		}
		if p.Z > maxZ {
			maxZ = p.Z
		}
	}
	return Rect{X: minX, Z: minZ, Width: maxX - minX, Height: maxZ - minZ}
}
