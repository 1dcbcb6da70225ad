// Package canvas provides the model canvas: the predicted data plot stacked
// above the polygon editing area.
package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"moulder/pkg/geometry"
)

// digitPatterns contains 3x5 pixel patterns for digits 0-9, used for axis
// tick labels.
var digitPatterns = [10][5]uint8{
	{0b111, 0b101, 0b101, 0b101, 0b111}, // 0
	{0b010, 0b110, 0b010, 0b010, 0b111}, // 1
	{0b111, 0b001, 0b111, 0b100, 0b111}, // 2
	{0b111, 0b001, 0b111, 0b001, 0b111}, // 3
	{0b101, 0b101, 0b111, 0b001, 0b001}, // 4
	{0b111, 0b100, 0b111, 0b001, 0b111}, // 5
	{0b111, 0b100, 0b111, 0b101, 0b111}, // 6
	{0b111, 0b001, 0b001, 0b001, 0b001}, // 7
	{0b111, 0b101, 0b111, 0b101, 0b111}, // 8
	{0b111, 0b101, 0b111, 0b001, 0b111}, // 9
}

var symbolPatterns = map[rune][5]uint8{
	'-': {0b000, 0b000, 0b111, 0b000, 0b000},
	'.': {0b000, 0b000, 0b000, 0b000, 0b010},
	' ': {0b000, 0b000, 0b000, 0b000, 0b000},
}

func charPattern(ch rune) [5]uint8 {
	if ch >= '0' && ch <= '9' {
		return digitPatterns[ch-'0']
	}
	if pattern, ok := symbolPatterns[ch]; ok {
		return pattern
	}
	return [5]uint8{}
}

// drawLabel renders a small bitmap-font label with its top-left at (x, y).
func drawLabel(dst *image.RGBA, text string, x, y int, col color.RGBA) {
	cx := x
	for _, ch := range text {
		pattern := charPattern(ch)
		for row := 0; row < 5; row++ {
			for bit := 0; bit < 3; bit++ {
				if pattern[row]&(1<<(2-bit)) != 0 {
					dst.SetRGBA(cx+bit, y+row, col)
				}
			}
		}
		cx += 4
	}
}

// labelWidth returns the pixel width of a bitmap-font label.
func labelWidth(text string) int {
	return len(text) * 4
}

// drawLine draws a 1px line between two pixel positions.
func drawLine(dst *image.RGBA, a, b geometry.Point2D, col color.RGBA) {
	dx := b.X - a.X
	dz := b.Z - a.Z
	steps := int(math.Max(math.Abs(dx), math.Abs(dz)))
	if steps == 0 {
		dst.SetRGBA(int(a.X), int(a.Z), col)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		dst.SetRGBA(int(a.X+dx*t+0.5), int(a.Z+dz*t+0.5), col)
	}
}

// drawPolyline connects consecutive points with line segments.
func drawPolyline(dst *image.RGBA, points []geometry.Point2D, col color.RGBA) {
	for i := 1; i < len(points); i++ {
		drawLine(dst, points[i-1], points[i], col)
	}
}

// drawMarker draws a filled square marker centered on the position.
func drawMarker(dst *image.RGBA, p geometry.Point2D, half int, col color.RGBA) {
	cx, cz := int(p.X+0.5), int(p.Z+0.5)
	for z := cz - half; z <= cz+half; z++ {
		for x := cx - half; x <= cx+half; x++ {
			dst.SetRGBA(x, z, col)
		}
	}
}

// fillPolygon rasterizes an anti-aliased filled polygon from screen-space
// ring coordinates.
func fillPolygon(dst *image.RGBA, ring []geometry.Point2D, col color.RGBA) {
	if len(ring) < 3 {
		return
	}
	bounds := dst.Bounds()
	r := vector.NewRasterizer(bounds.Dx(), bounds.Dy())
	r.DrawOp = draw.Over
	r.MoveTo(float32(ring[0].X), float32(ring[0].Z))
	for _, p := range ring[1:] {
		r.LineTo(float32(p.X), float32(p.Z))
	}
	r.ClosePath()
	r.Draw(dst, bounds, image.NewUniform(col), image.Point{})
}

// fillRect fills an axis-aligned pixel rectangle.
func fillRect(dst *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			dst.SetRGBA(x, y, col)
		}
	}
}
