package geometry

import "math"

// Polygons are stored as closed rings: the first and last slot hold the same
// coordinate (the seam). Functions below accept such rings; the zero-length
// closing edge contributes nothing to any of the predicates.

// IsSeamIndex reports whether the ring index addresses the shared closing
// vertex, i.e. the first or last slot.
func IsSeamIndex(ring []Point2D, index int) bool {
	return index == 0 || index == len(ring)-1
}

// NearestVertex returns the index of the ring vertex closest to p and its
// Euclidean distance. Returns (-1, +Inf) for an empty ring.
func NearestVertex(ring []Point2D, p Point2D) (int, float64) {
	best := -1
	bestDist := math.Inf(1)
	for i, v := range ring {
		if d := v.Distance(p); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best, bestDist
}

// PointInPolygon tests if a point is inside a polygon using ray casting.
func PointInPolygon(p Point2D, ring []Point2D) bool {
	if len(ring) < 3 {
		return false
	}

	inside := false
	n := len(ring)

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		pi, pj := ring[i], ring[j]

		// Check if ray from p going right intersects edge pi-pj
		if ((pi.Z > p.Z) != (pj.Z > p.Z)) &&
			(p.X < (pj.X-pi.X)*(p.Z-pi.Z)/(pj.Z-pi.Z)+pi.X) {
			inside = !inside
		}
	}

	return inside
}

// BestInsertionIndex computes the ring position at which a new vertex at p
// should be inserted. For every adjacent vertex pair it measures the angle
// subtended at p by the rays to the two vertices and picks the pair where the
// angle is widest, meaning p sits most squarely between them. The returned
// index is the position of the second vertex of that pair.
func BestInsertionIndex(ring []Point2D, p Point2D) int {
	// Work on the distinct vertices; the pair (last, first) closes the cycle.
	verts := ring
	if len(verts) > 1 && verts[0] == verts[len(verts)-1] {
		verts = verts[:len(verts)-1]
	}
	n := len(verts)
	if n < 2 {
		return n
	}

	best := 0
	bestAngle := -1.0
	for i := 0; i < n; i++ {
		u := verts[i].Sub(p)
		v := verts[(i+1)%n].Sub(p)
		nu := math.Hypot(u.X, u.Z)
		nv := math.Hypot(v.X, v.Z)
		if nu == 0 || nv == 0 {
			// p coincides with a vertex; insert right after it.
			return i + 1
		}
		cos := (u.X*v.X + u.Z*v.Z) / (nu * nv)
		if cos > 1 {
			cos = 1
		} else if cos < -1 {
			cos = -1
		}
		if angle := math.Acos(cos); angle > bestAngle {
			bestAngle = angle
			best = i
		}
	}
	return best + 1
}
