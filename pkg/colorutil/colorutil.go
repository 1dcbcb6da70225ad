// Package colorutil provides shared color utilities for the moulder
// application, chiefly the diverging density colormap.
package colorutil

import (
	"image/color"
)

// Common colors used throughout the application.
var (
	Black     = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Green     = color.RGBA{R: 0, G: 200, B: 0, A: 255}
	Red       = color.RGBA{R: 220, G: 0, B: 0, A: 255}
	Gray      = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	LightGray = color.RGBA{R: 220, G: 220, B: 220, A: 255}
)

// rdBu holds the ColorBrewer RdBu anchors from blue (low) to red (high),
// the reversed order used for density display: negative contrast = blue,
// positive contrast = red.
var rdBu = [11][3]uint8{
	{5, 48, 97},
	{33, 102, 172},
	{67, 147, 195},
	{146, 197, 222},
	{209, 229, 240},
	{247, 247, 247},
	{253, 219, 199},
	{244, 165, 130},
	{214, 96, 77},
	{178, 24, 43},
	{103, 0, 31},
}

// DensityToColor maps a density value onto the diverging colormap over the
// interval [rangeMin, rangeMax]. Values outside the range clamp to the ends.
func DensityToColor(value, rangeMin, rangeMax float64) color.RGBA {
	t := 0.5
	if rangeMax > rangeMin {
		t = (value - rangeMin) / (rangeMax - rangeMin)
	}
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	// Piecewise-linear interpolation between adjacent anchors.
	pos := t * float64(len(rdBu)-1)
	i := int(pos)
	if i >= len(rdBu)-1 {
		i = len(rdBu) - 2
	}
	frac := pos - float64(i)

	lo, hi := rdBu[i], rdBu[i+1]
	lerp := func(a, b uint8) uint8 {
		return uint8(float64(a) + frac*(float64(b)-float64(a)) + 0.5)
	}
	return color.RGBA{
		R: lerp(lo[0], hi[0]),
		G: lerp(lo[1], hi[1]),
		B: lerp(lo[2], hi[2]),
		A: 255,
	}
}

// WithAlpha returns the color with its alpha channel replaced.
func WithAlpha(c color.RGBA, a uint8) color.RGBA {
	c.A = a
	return c
}
