// Package forward computes the predicted gravity anomaly for the polygon
// model and couples it to the editor: every committed edit triggers a
// recompute through the Bridge.
package forward

import (
	"fmt"
	"math"

	"moulder/internal/model"
	"moulder/pkg/geometry"
)

const (
	// gravConst is the gravitational constant in SI units (m³ kg⁻¹ s⁻²).
	gravConst = 6.673e-11
	// si2mGal converts m/s² to mGal.
	si2mGal = 1e5
	// dummy nudges coordinates off the analytical singularities of the
	// edge integral (observation point on a vertex or edge endpoint).
	dummy = 1e-10
)

// Evaluator computes predicted values at the measurement points for a set of
// polygons with densities. Implementations must return one value per point.
type Evaluator interface {
	Evaluate(x, z []float64, polygons []*model.Polygon) ([]float64, error)
}

// Talwani evaluates the vertical gravitational attraction (gz, in mGal) of
// 2-D polygonal bodies using the line-integral method of Talwani et al.
// Polygons with fewer than three distinct vertices contribute nothing.
type Talwani struct{}

// Evaluate implements Evaluator.
func (Talwani) Evaluate(x, z []float64, polygons []*model.Polygon) ([]float64, error) {
	if len(x) != len(z) {
		return nil, fmt.Errorf("forward: mismatched measurement arrays: %d x, %d z", len(x), len(z))
	}
	out := make([]float64, len(x))
	for i := range x {
		out[i] = gzPoint(x[i], z[i], polygons)
	}
	return out, nil
}

// clockwise returns the distinct vertices in the orientation the edge
// integral assumes (clockwise with z pointing down), reversing rings wound
// the other way. The anomaly's sign must not depend on the direction the
// polygon was drawn.
func clockwise(verts []geometry.Point2D) []geometry.Point2D {
	var area2 float64
	n := len(verts)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area2 += verts[i].X*verts[j].Z - verts[j].X*verts[i].Z
	}
	if area2 >= 0 {
		return verts
	}
	out := make([]geometry.Point2D, n)
	for i, v := range verts {
		out[n-1-i] = v
	}
	return out
}

// gzPoint sums the edge integrals of every polygon at one observation point.
func gzPoint(xp, zp float64, polygons []*model.Polygon) float64 {
	var total float64
	for _, poly := range polygons {
		verts := poly.Distinct()
		n := len(verts)
		if n < 3 {
			continue
		}
		verts = clockwise(verts)
		var kernel float64
		for v := 0; v < n; v++ {
			w := (v + 1) % n
			xv := verts[v].X - xp
			zv := verts[v].Z - zp
			xvp1 := verts[w].X - xp
			zvp1 := verts[w].Z - zp

			if xv == 0 {
				xv = dummy
			}
			if zv == 0 {
				zv = dummy
			}
			if xv == xvp1 {
				xv += dummy
			}
			if zv == zvp1 {
				zv += dummy
			}

			phi := math.Atan2(zvp1-zv, xvp1-xv)
			ai := xvp1 + zvp1*(xvp1-xv)/(zv-zvp1)
			thetaV := math.Atan2(zv, xv)
			if thetaV < 0 {
				thetaV += math.Pi
			}
			thetaVp1 := math.Atan2(zvp1, xvp1)
			if thetaVp1 < 0 {
				thetaVp1 += math.Pi
			}
			if thetaV == thetaVp1 {
				continue
			}

			tanPhi := math.Tan(phi)
			num := math.Cos(thetaV) * (math.Tan(thetaV) - tanPhi)
			den := math.Cos(thetaVp1) * (math.Tan(thetaVp1) - tanPhi)
			kernel += ai * math.Sin(phi) * math.Cos(phi) *
				(thetaV - thetaVp1 + tanPhi*math.Log(num/den))
		}
		total += kernel * poly.Density
	}
	return total * si2mGal * 2 * gravConst
}
