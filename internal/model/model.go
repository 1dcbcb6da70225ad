// Package model holds the polygon model edited on the canvas: an ordered set
// of closed polygons, each carrying a density contrast and a display color.
package model

import (
	"errors"
	"image/color"

	"moulder/pkg/colorutil"
	"moulder/pkg/geometry"
)

// ErrShrinkBelowMinimum is reported when a vertex removal would leave a
// polygon with fewer than three distinct vertices. The removal is a no-op.
var ErrShrinkBelowMinimum = errors.New("model: polygon cannot shrink below 3 vertices")

// Polygon is a closed ring of vertices with a density contrast (kg/m³).
// The ring includes the seam: Vertices[0] and Vertices[len-1] hold the same
// coordinate. A committed polygon therefore has at least 4 ring slots.
type Polygon struct {
	Vertices []geometry.Point2D
	Density  float64
	Color    color.RGBA
}

// NewPolygon builds a closed polygon from distinct points. The closing seam
// slot is appended here; callers pass the raw draw buffer.
func NewPolygon(points []geometry.Point2D, density float64, rangeMin, rangeMax float64) *Polygon {
	ring := make([]geometry.Point2D, 0, len(points)+1)
	ring = append(ring, points...)
	if len(points) > 0 {
		ring = append(ring, points[0])
	}
	return &Polygon{
		Vertices: ring,
		Density:  density,
		Color:    colorutil.DensityToColor(density, rangeMin, rangeMax),
	}
}

// DistinctCount returns the number of distinct vertices (ring slots minus
// the seam duplicate).
func (p *Polygon) DistinctCount() int {
	if len(p.Vertices) == 0 {
		return 0
	}
	return len(p.Vertices) - 1
}

// Distinct returns the distinct vertices, excluding the seam duplicate.
func (p *Polygon) Distinct() []geometry.Point2D {
	if len(p.Vertices) == 0 {
		return nil
	}
	return p.Vertices[:len(p.Vertices)-1]
}

// Set is the ordered collection of committed polygons. Order is the render
// z-order and the index space used by selection; indices are invalidated by
// insertion or removal of preceding elements.
type Set struct {
	polygons           []*Polygon
	rangeMin, rangeMax float64
}

// NewSet creates an empty polygon set with the given density range used for
// color mapping. Stored densities may fall outside the range; colors clamp.
func NewSet(rangeMin, rangeMax float64) *Set {
	return &Set{rangeMin: rangeMin, rangeMax: rangeMax}
}

// Len returns the number of polygons.
func (s *Set) Len() int {
	return len(s.polygons)
}

// At returns the polygon at index i, or nil if out of range.
func (s *Set) At(i int) *Polygon {
	if i < 0 || i >= len(s.polygons) {
		return nil
	}
	return s.polygons[i]
}

// All returns the polygons in z-order.
func (s *Set) All() []*Polygon {
	return s.polygons
}

// Range returns the density range used for color mapping.
func (s *Set) Range() (min, max float64) {
	return s.rangeMin, s.rangeMax
}

// Append adds a polygon to the top of the z-order and returns its index.
func (s *Set) Append(points []geometry.Point2D, density float64) int {
	s.polygons = append(s.polygons, NewPolygon(points, density, s.rangeMin, s.rangeMax))
	return len(s.polygons) - 1
}

// RemoveAt deletes the polygon at index i. Out-of-range indices are a no-op.
func (s *Set) RemoveAt(i int) bool {
	if i < 0 || i >= len(s.polygons) {
		return false
	}
	s.polygons = append(s.polygons[:i], s.polygons[i+1:]...)
	return true
}

// ReplaceAt swaps the ring of polygon i for a new closed ring, keeping its
// density and color.
func (s *Set) ReplaceAt(i int, ring []geometry.Point2D) bool {
	p := s.At(i)
	if p == nil {
		return false
	}
	p.Vertices = ring
	return true
}

// SetDensity updates the density of polygon i and rederives its color.
func (s *Set) SetDensity(i int, density float64) bool {
	p := s.At(i)
	if p == nil {
		return false
	}
	p.Density = density
	p.Color = colorutil.DensityToColor(density, s.rangeMin, s.rangeMax)
	return true
}

// InsertVertex inserts a vertex into polygon i at ring position pos.
// Valid positions are 1..len(ring)-1; inserting at the seam slots is not a
// meaningful operation and is rejected.
func (s *Set) InsertVertex(i, pos int, pt geometry.Point2D) bool {
	p := s.At(i)
	if p == nil || pos < 1 || pos > len(p.Vertices)-1 {
		return false
	}
	ring := p.Vertices
	ring = append(ring, geometry.Point2D{})
	copy(ring[pos+1:], ring[pos:])
	ring[pos] = pt
	p.Vertices = ring
	return true
}

// MoveVertex sets the coordinate of a ring vertex. When the index addresses
// the seam, both seam slots are written in the same call so the two copies of
// the shared closing vertex can never diverge.
func (s *Set) MoveVertex(i, index int, pt geometry.Point2D) bool {
	p := s.At(i)
	if p == nil || index < 0 || index >= len(p.Vertices) {
		return false
	}
	if geometry.IsSeamIndex(p.Vertices, index) {
		p.Vertices[0] = pt
		p.Vertices[len(p.Vertices)-1] = pt
	} else {
		p.Vertices[index] = pt
	}
	return true
}

// Translate shifts every vertex of polygon i by (dx, dz). The seam moves with
// the rest, so the ring stays closed.
func (s *Set) Translate(i int, dx, dz float64) bool {
	p := s.At(i)
	if p == nil {
		return false
	}
	for j := range p.Vertices {
		p.Vertices[j].X += dx
		p.Vertices[j].Z += dz
	}
	return true
}

// RemoveVertices deletes the given ring positions from polygon i. Seam slots
// map to the single shared vertex, so removing the seam pair removes one
// distinct vertex and the ring is re-closed around the survivor. Returns
// ErrShrinkBelowMinimum (leaving the polygon untouched) if fewer than three
// distinct vertices would remain.
func (s *Set) RemoveVertices(i int, positions []int) error {
	p := s.At(i)
	if p == nil || len(positions) == 0 {
		return nil
	}

	last := len(p.Vertices) - 1
	drop := make(map[int]bool, len(positions))
	for _, pos := range positions {
		if pos < 0 || pos > last {
			continue
		}
		if pos == last {
			pos = 0 // seam maps to the shared distinct vertex
		}
		drop[pos] = true
	}
	if len(drop) == 0 {
		return nil
	}
	if p.DistinctCount()-len(drop) < 3 {
		return ErrShrinkBelowMinimum
	}

	kept := make([]geometry.Point2D, 0, p.DistinctCount()-len(drop)+1)
	for j, v := range p.Distinct() {
		if !drop[j] {
			kept = append(kept, v)
		}
	}
	kept = append(kept, kept[0]) // re-close the ring
	p.Vertices = kept
	return nil
}
