package canvas

import (
	"image"
	"strconv"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"moulder/internal/app"
	"moulder/internal/editor"
	"moulder/internal/model"
	"moulder/pkg/colorutil"
	"moulder/pkg/geometry"
)

const (
	marginLeft   = 46.0
	marginRight  = 10.0
	marginBottom = 20.0
	dataGap      = 10.0
	markerHalf   = 2
)

// ModelCanvas displays the predicted data curve above the polygon model and
// feeds pointer events into the editing engine. It implements the editor's
// RenderSink: full requests rebuild the cached background, incremental
// requests recomposite only the active artifacts over it, mirroring the
// restore-background-and-blit fast path used during drags.
type ModelCanvas struct {
	widget.BaseWidget

	state    *app.State
	viewport geometry.Rect

	raster  *fynecanvas.Raster
	content *pointerContent

	// lastProj converts pointer positions back to model space.
	lastProj geometry.AffineTransform

	// background holds the scene without the active artifacts (selected
	// polygon and draw buffer).
	background  *image.RGBA
	bgValid     bool
	incremental bool
}

// NewModelCanvas creates the canvas and registers it as the editor's render
// sink.
func NewModelCanvas(state *app.State) *ModelCanvas {
	c := &ModelCanvas{
		state:    state,
		viewport: state.Editor.DefaultBounds(),
		lastProj: geometry.Identity(),
	}
	c.raster = fynecanvas.NewRaster(c.draw)
	c.raster.ScaleMode = fynecanvas.ImageScalePixels
	c.content = newPointerContent(c, c.raster)
	c.ExtendBaseWidget(c)

	state.AttachRenderSink(c)
	state.On(app.EventViewReset, func(data interface{}) {
		if bounds, ok := data.(geometry.Rect); ok {
			c.viewport = bounds
			c.bgValid = false
			c.Refresh()
		}
	})
	return c
}

// RequestFull implements editor.RenderSink.
func (c *ModelCanvas) RequestFull() {
	c.bgValid = false
	c.incremental = false
	c.raster.Refresh()
}

// RequestIncremental implements editor.RenderSink. The fast path composites
// only the selected polygon and the draw buffer over the cached background;
// an artifact outside that set lives in the cache, so the cache is rebuilt.
func (c *ModelCanvas) RequestIncremental(artifacts ...editor.Artifact) {
	sel := c.state.Editor.Selection()
	for _, a := range artifacts {
		if a != editor.ArtifactDrawBuffer && int(a) != sel.Polygon {
			c.bgValid = false
		}
	}
	c.incremental = true
	c.raster.Refresh()
}

// Refresh repaints the canvas.
func (c *ModelCanvas) Refresh() {
	c.raster.Refresh()
}

// CreateRenderer implements fyne.Widget.
func (c *ModelCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(c.content)
}

// MinSize implements fyne.Widget.
func (c *ModelCanvas) MinSize() fyne.Size {
	return fyne.NewSize(480, 420)
}

// projection builds the model-to-screen transform for the current viewport
// and canvas size. The model area is the lower two thirds; depth increases
// downward on screen, so no axis flip is needed.
func (c *ModelCanvas) projection(w, h int) geometry.AffineTransform {
	vp := c.viewport
	if vp.Width <= 0 || vp.Height <= 0 {
		vp = geometry.NewRect(0, 0, 1, 1)
	}
	top := float64(h)/3 + dataGap
	bottom := float64(h) - marginBottom
	sx := (float64(w) - marginLeft - marginRight) / vp.Width
	sz := (bottom - top) / vp.Height
	return geometry.Translation(marginLeft, top).
		Compose(geometry.Scaling(sx, sz)).
		Compose(geometry.Translation(-vp.X, -vp.Z))
}

// draw is the raster drawing function.
func (c *ModelCanvas) draw(w, h int) image.Image {
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}

	proj := c.projection(w, h)
	c.lastProj = proj
	c.state.Editor.SetProjection(proj)
	sel := c.state.Editor.Selection()

	reuse := c.incremental && c.bgValid && c.background != nil &&
		c.background.Bounds().Dx() == w && c.background.Bounds().Dy() == h
	if !reuse {
		c.background = c.renderBackground(w, h, proj, sel)
		c.bgValid = true
	}
	c.incremental = false

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	copy(out.Pix, c.background.Pix)

	// Active artifacts on top: the selected polygon and the draw buffer.
	if poly := c.state.Model.At(sel.Polygon); poly != nil {
		c.drawPolygon(out, poly, proj, true)
	}
	if buf := c.state.Editor.DrawBuffer(); len(buf) > 0 {
		pts := proj.ApplyAll(buf)
		drawPolyline(out, pts, colorutil.Black)
		for _, p := range pts {
			drawMarker(out, p, markerHalf, colorutil.Black)
		}
	}
	return out
}

// renderBackground paints everything except the active artifacts: the data
// plot, the model axes, and the unselected polygons.
func (c *ModelCanvas) renderBackground(w, h int, proj geometry.AffineTransform, sel editor.Selection) *image.RGBA {
	bg := image.NewRGBA(image.Rect(0, 0, w, h))
	fillRect(bg, 0, 0, w, h, colorutil.White)

	c.drawDataPlot(bg, w, h)
	c.drawModelFrame(bg, w, h)

	for i, poly := range c.state.Model.All() {
		if i == sel.Polygon {
			continue
		}
		c.drawPolygon(bg, poly, proj, false)
	}
	return bg
}

// drawPolygon paints one polygon: density-colored fill, outline, and vertex
// markers. Selection is a pure editor value; the highlight style is derived
// here rather than stored on the polygon.
func (c *ModelCanvas) drawPolygon(dst *image.RGBA, poly *model.Polygon, proj geometry.AffineTransform, selected bool) {
	ring := proj.ApplyAll(poly.Vertices)
	fillPolygon(dst, ring, colorutil.WithAlpha(poly.Color, 230))

	outline := colorutil.Black
	if selected {
		outline = colorutil.Green
	}
	drawPolyline(dst, ring, outline)
	for _, p := range ring[:len(ring)-1] {
		drawMarker(dst, p, markerHalf, outline)
	}
}

// drawDataPlot paints the predicted anomaly curve in the top third.
func (c *ModelCanvas) drawDataPlot(dst *image.RGBA, w, h int) {
	top := 8.0
	bottom := float64(h) / 3
	left, right := marginLeft, float64(w)-marginRight

	lo, hi := c.state.Bridge.CurveLimits()
	yFor := func(v float64) float64 {
		return bottom - (v-lo)/(hi-lo)*(bottom-top)
	}

	// Frame and zero line.
	drawLine(dst, geometry.NewPoint2D(left, top), geometry.NewPoint2D(left, bottom), colorutil.Gray)
	drawLine(dst, geometry.NewPoint2D(left, bottom), geometry.NewPoint2D(right, bottom), colorutil.Gray)
	zero := yFor(0)
	drawLine(dst, geometry.NewPoint2D(left, zero), geometry.NewPoint2D(right, zero), colorutil.LightGray)

	drawLabel(dst, formatTick(hi), int(left)+2, int(top), colorutil.Gray)
	drawLabel(dst, formatTick(lo), int(left)+2, int(bottom)-6, colorutil.Gray)

	x, _ := c.state.Bridge.MeasurementPoints()
	predicted := c.state.Bridge.Predicted()
	if len(x) == 0 || len(predicted) != len(x) {
		return
	}
	pts := make([]geometry.Point2D, len(x))
	for i := range x {
		sx := c.lastProj.Apply(geometry.NewPoint2D(x[i], 0)).X
		pts[i] = geometry.NewPoint2D(sx, yFor(predicted[i]))
	}
	drawPolyline(dst, pts, colorutil.Red)
}

// drawModelFrame paints the model-area frame and tick labels.
func (c *ModelCanvas) drawModelFrame(dst *image.RGBA, w, h int) {
	top := float64(h)/3 + dataGap
	bottom := float64(h) - marginBottom
	left, right := marginLeft, float64(w)-marginRight

	drawLine(dst, geometry.NewPoint2D(left, top), geometry.NewPoint2D(left, bottom), colorutil.Gray)
	drawLine(dst, geometry.NewPoint2D(left, bottom), geometry.NewPoint2D(right, bottom), colorutil.Gray)

	vp := c.viewport
	drawLabel(dst, formatTick(vp.Z), int(left)+2, int(top), colorutil.Gray)
	drawLabel(dst, formatTick(vp.Z+vp.Height), int(left)+2, int(bottom)-6, colorutil.Gray)
	drawLabel(dst, formatTick(vp.X), int(left), int(bottom)+4, colorutil.Gray)
	maxLabel := formatTick(vp.X + vp.Width)
	drawLabel(dst, maxLabel, int(right)-labelWidth(maxLabel), int(bottom)+4, colorutil.Gray)
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'f', 0, 64)
}

// pointerContent wraps the raster to receive pointer events and translate
// them for the editor.
type pointerContent struct {
	widget.BaseWidget
	canvas *ModelCanvas
	raster *fynecanvas.Raster
}

var _ desktop.Mouseable = (*pointerContent)(nil)
var _ fyne.Draggable = (*pointerContent)(nil)

func newPointerContent(c *ModelCanvas, raster *fynecanvas.Raster) *pointerContent {
	pc := &pointerContent{canvas: c, raster: raster}
	pc.ExtendBaseWidget(pc)
	return pc
}

func (pc *pointerContent) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(pc.raster)
}

func (pc *pointerContent) MinSize() fyne.Size {
	return pc.canvas.MinSize()
}

// pointerAt converts a widget position into the editor's dual-space pointer.
func (pc *pointerContent) pointerAt(pos fyne.Position) editor.Pointer {
	screen := geometry.NewPoint2D(float64(pos.X), float64(pos.Y))
	modelPt := screen
	if inv, ok := pc.canvas.lastProj.Inverse(); ok {
		modelPt = inv.Apply(screen)
	}
	return editor.Pointer{Screen: screen, Model: modelPt}
}

// MouseDown dispatches presses to the editor.
func (pc *pointerContent) MouseDown(ev *desktop.MouseEvent) {
	pt := pc.pointerAt(ev.Position)
	switch ev.Button {
	case desktop.MouseButtonPrimary:
		pc.canvas.state.Editor.PrimaryPress(pt)
	case desktop.MouseButtonSecondary:
		pc.canvas.state.Editor.SecondaryPress(pt)
	}
}

// MouseUp dispatches the primary release to the editor.
func (pc *pointerContent) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button == desktop.MouseButtonPrimary {
		pc.canvas.state.Editor.Release(pc.pointerAt(ev.Position))
	}
}

// Dragged forwards move events while the button is held.
func (pc *pointerContent) Dragged(ev *fyne.DragEvent) {
	pc.canvas.state.Editor.Move(pc.pointerAt(ev.Position))
}

// DragEnd is handled by MouseUp, which carries the release position.
func (pc *pointerContent) DragEnd() {}
