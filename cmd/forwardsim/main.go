// Command forwardsim evaluates the Talwani forward model for a polygon model
// described in a JSON file and prints the predicted anomaly, one
// "x predicted" pair per line. Useful for checking the evaluator against
// known bodies without launching the UI.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"moulder/internal/forward"
	"moulder/internal/model"
	"moulder/pkg/geometry"
)

type polygonSpec struct {
	Vertices [][2]float64 `json:"vertices"` // distinct (x, z) pairs, no seam
	Density  float64      `json:"density"`
}

type modelFile struct {
	Polygons []polygonSpec `json:"polygons"`
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	modelPath := flag.String("model", "", "path to model JSON file")
	xMin := flag.Float64("x0", 0, "profile start (m)")
	xMax := flag.Float64("x1", 100000, "profile end (m)")
	numPoints := flag.Int("n", 100, "number of measurement points")
	errorLevel := flag.Float64("error", 0, "noise standard deviation (mGal)")
	flag.Parse()

	if *modelPath == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *numPoints < 2 || *xMax <= *xMin {
		log.Fatal("need x0 < x1 and at least 2 points")
	}

	data, err := os.ReadFile(*modelPath)
	if err != nil {
		log.Fatalf("read model: %v", err)
	}
	var mf modelFile
	if err := json.Unmarshal(data, &mf); err != nil {
		log.Fatalf("parse model: %v", err)
	}

	set := model.NewSet(-2000, 2000)
	for i, ps := range mf.Polygons {
		if len(ps.Vertices) < 3 {
			log.Fatalf("polygon %d: need at least 3 vertices", i)
		}
		points := make([]geometry.Point2D, len(ps.Vertices))
		for j, v := range ps.Vertices {
			points[j] = geometry.NewPoint2D(v[0], v[1])
		}
		set.Append(points, ps.Density)
	}

	x := make([]float64, *numPoints)
	z := make([]float64, *numPoints)
	step := (*xMax - *xMin) / float64(*numPoints-1)
	for i := range x {
		x[i] = *xMin + float64(i)*step
	}

	bridge := forward.NewBridge(forward.Talwani{}, x, z)
	bridge.SetErrorLevel(*errorLevel)
	if err := bridge.Recompute(set); err != nil {
		log.Fatalf("evaluate: %v", err)
	}

	for i, v := range bridge.Predicted() {
		fmt.Printf("%g %g\n", x[i], v)
	}
}
