package colorutil

import (
	"image/color"
	"testing"
)

func TestDensityToColorEndpoints(t *testing.T) {
	low := DensityToColor(-2000, -2000, 2000)
	want := color.RGBA{R: 5, G: 48, B: 97, A: 255}
	if low != want {
		t.Errorf("low end = %v, want %v", low, want)
	}

	high := DensityToColor(2000, -2000, 2000)
	want = color.RGBA{R: 103, G: 0, B: 31, A: 255}
	if high != want {
		t.Errorf("high end = %v, want %v", high, want)
	}
}

func TestDensityToColorMidpoint(t *testing.T) {
	mid := DensityToColor(0, -2000, 2000)
	want := color.RGBA{R: 247, G: 247, B: 247, A: 255}
	if mid != want {
		t.Errorf("midpoint = %v, want %v", mid, want)
	}
}

func TestDensityToColorClamps(t *testing.T) {
	below := DensityToColor(-9999, -2000, 2000)
	if below != DensityToColor(-2000, -2000, 2000) {
		t.Errorf("below-range value should clamp to the low end, got %v", below)
	}
	above := DensityToColor(9999, -2000, 2000)
	if above != DensityToColor(2000, -2000, 2000) {
		t.Errorf("above-range value should clamp to the high end, got %v", above)
	}
}

func TestDensityToColorDegenerateRange(t *testing.T) {
	got := DensityToColor(5, 10, 10)
	want := color.RGBA{R: 247, G: 247, B: 247, A: 255}
	if got != want {
		t.Errorf("degenerate range = %v, want the midpoint %v", got, want)
	}
}

func TestDensityToColorDiverges(t *testing.T) {
	neg := DensityToColor(-1000, -2000, 2000)
	pos := DensityToColor(1000, -2000, 2000)
	if neg.B <= neg.R {
		t.Errorf("negative contrast %v should lean blue", neg)
	}
	if pos.R <= pos.B {
		t.Errorf("positive contrast %v should lean red", pos)
	}
}

func TestWithAlpha(t *testing.T) {
	got := WithAlpha(Green, 128)
	if got.A != 128 || got.G != Green.G {
		t.Errorf("WithAlpha = %v, want alpha swapped only", got)
	}
}
