package editor

import (
	"math"

	"moulder/pkg/geometry"
)

// hit is the result of resolving a pointer press against the model.
type hit struct {
	polygon int
	vertex  int
	seam    bool
}

// hitTest resolves a screen-space press position. The nearest vertex across
// all polygons wins if it lies within Epsilon pixels; a seam index is
// substituted by the seam pair. Otherwise polygons are tested for interior
// containment in list order and the first match wins with no vertex. No
// match at all returns {-1, -1}.
func (e *Editor) hitTest(screen geometry.Point2D) hit {
	bestPoly, bestVert := -1, -1
	bestDist := math.Inf(1)

	projected := make([][]geometry.Point2D, e.set.Len())
	for i, poly := range e.set.All() {
		projected[i] = e.proj.ApplyAll(poly.Vertices)
		idx, d := geometry.NearestVertex(projected[i], screen)
		if d < bestDist {
			bestDist = d
			bestPoly = i
			bestVert = idx
		}
	}

	if bestPoly >= 0 && bestDist < Epsilon {
		ring := e.set.At(bestPoly).Vertices
		if geometry.IsSeamIndex(ring, bestVert) {
			return hit{polygon: bestPoly, vertex: 0, seam: true}
		}
		return hit{polygon: bestPoly, vertex: bestVert}
	}

	for i := range projected {
		if geometry.PointInPolygon(screen, projected[i]) {
			return hit{polygon: i, vertex: -1}
		}
	}
	return hit{polygon: -1, vertex: -1}
}
