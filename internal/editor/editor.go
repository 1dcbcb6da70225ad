// Package editor implements the interactive editing engine: the pointer and
// keyboard driven state machine that creates, selects, and reshapes the
// polygons of the model, sequencing a forward-model recompute and a render
// notification after every committed mutation.
package editor

import (
	"errors"
	"log"

	"moulder/internal/forward"
	"moulder/internal/model"
	"moulder/pkg/geometry"
)

// Epsilon is the vertex hit-test tolerance in screen pixels. Distances are
// measured after projection, so the tolerance is a rendered-pixel one, not a
// model-unit one.
const Epsilon = 5.0

// Mode is the editing state.
type Mode int

const (
	ModeIdle Mode = iota
	ModeDrawing
	ModeSelected
	ModeDraggingVertex
	ModeDraggingPolygon
)

// Selection identifies at most one polygon and, within it, at most one
// vertex. A Seam selection addresses the shared closing vertex; mutations
// through it write both ring slots.
type Selection struct {
	Polygon int
	Vertex  int
	Seam    bool
}

// NoSelection returns the empty selection.
func NoSelection() Selection {
	return Selection{Polygon: -1, Vertex: -1}
}

// HasPolygon reports whether a polygon is selected.
func (s Selection) HasPolygon() bool { return s.Polygon >= 0 }

// HasVertex reports whether a vertex within the selected polygon is
// selected (including the seam pair).
func (s Selection) HasVertex() bool { return s.Vertex >= 0 || s.Seam }

// Pointer carries one pointer event position in both coordinate systems:
// hit-testing needs screen pixels, mutations need model units.
type Pointer struct {
	Screen geometry.Point2D
	Model  geometry.Point2D
}

// Events receives the editor's outbound notifications. Host widgets (the
// density slider, mode indicators) synchronize to these.
type Events interface {
	SelectionChanged(density float64, selected bool)
	DrawingModeChanged(drawing bool)
	AddVertexModeChanged(armed bool)
	EvaluatorFailed(err error)
	ViewReset(bounds geometry.Rect)
}

// Editor is the editing state machine. It owns the mode, the selection, and
// the draw buffer; the polygon set and the forward bridge are mutated only
// through it. Single-threaded: one event is processed to completion before
// the next.
type Editor struct {
	set    *model.Set
	bridge *forward.Bridge
	events Events
	render RenderSink

	proj geometry.AffineTransform

	mode    Mode
	armed   bool
	sel     Selection
	drawBuf []geometry.Point2D

	// dragAnchor is the model position of the previous drag event; nil
	// outside an active drag. Whole-polygon drags translate by the delta
	// from it, so arbitrarily dense move events stay idempotent.
	dragAnchor *geometry.Point2D

	pendingDensity     float64
	minDepth, maxDepth float64
}

// New creates an editor over the given model set and forward bridge.
// minDepth/maxDepth define the default viewport depth extent for ResetView.
func New(set *model.Set, bridge *forward.Bridge, events Events, render RenderSink, minDepth, maxDepth float64) *Editor {
	return &Editor{
		set:      set,
		bridge:   bridge,
		events:   events,
		render:   render,
		proj:     geometry.Identity(),
		mode:     ModeIdle,
		sel:      NoSelection(),
		minDepth: minDepth,
		maxDepth: maxDepth,
	}
}

// SetProjection updates the model-to-screen transform used for hit-testing.
// The canvas calls this whenever the viewport changes.
func (e *Editor) SetProjection(t geometry.AffineTransform) {
	e.proj = t
}

// Mode returns the current editing mode.
func (e *Editor) Mode() Mode { return e.mode }

// Armed reports whether add-vertex mode is armed.
func (e *Editor) Armed() bool { return e.armed }

// Selection returns the current selection.
func (e *Editor) Selection() Selection { return e.sel }

// DrawBuffer returns the in-progress draw points (nil outside Drawing).
func (e *Editor) DrawBuffer() []geometry.Point2D { return e.drawBuf }

// PendingDensity returns the density applied to the next committed polygon.
func (e *Editor) PendingDensity() float64 { return e.pendingDensity }

// Set returns the polygon set owned by this editor.
func (e *Editor) Set() *model.Set { return e.set }

// Bridge returns the forward-model bridge.
func (e *Editor) Bridge() *forward.Bridge { return e.bridge }

// NewPolygon starts drawing a new polygon: the selection is cleared and
// subsequent primary clicks accumulate draw points until a secondary click
// commits them.
func (e *Editor) NewPolygon() {
	e.clearSelection()
	e.mode = ModeDrawing
	e.drawBuf = nil
	e.events.DrawingModeChanged(true)
	e.render.RequestFull()
}

// PrimaryPress handles a primary button press.
func (e *Editor) PrimaryPress(pt Pointer) {
	switch {
	case e.mode == ModeDrawing:
		e.drawBuf = append(e.drawBuf, pt.Model)
		e.render.RequestIncremental(ArtifactDrawBuffer)

	case e.armed:
		if !e.sel.HasPolygon() {
			return
		}
		poly := e.set.At(e.sel.Polygon)
		pos := geometry.BestInsertionIndex(poly.Vertices, pt.Model)
		if !e.set.InsertVertex(e.sel.Polygon, pos, pt.Model) {
			return
		}
		// Ring indices shifted; the polygon selection survives, a stale
		// vertex reference must not.
		e.sel.Vertex = -1
		e.sel.Seam = false
		e.recompute()
		e.render.RequestFull()

	default:
		if e.set.Len() == 0 {
			return
		}
		h := e.hitTest(pt.Screen)
		switch {
		case h.polygon >= 0 && (h.vertex >= 0 || h.seam):
			e.sel = Selection{Polygon: h.polygon, Vertex: h.vertex, Seam: h.seam}
			e.mode = ModeDraggingVertex
			anchor := pt.Model
			e.dragAnchor = &anchor
			e.emitSelection()
			e.render.RequestFull()
		case h.polygon >= 0:
			e.sel = Selection{Polygon: h.polygon, Vertex: -1}
			e.mode = ModeDraggingPolygon
			anchor := pt.Model
			e.dragAnchor = &anchor
			e.emitSelection()
			e.render.RequestFull()
		default:
			e.clearSelection()
			e.mode = ModeIdle
			e.render.RequestFull()
		}
	}
}

// SecondaryPress handles a secondary button press. While drawing with at
// least three points it commits the draw buffer as a new polygon carrying
// the pending density; otherwise it is a no-op.
func (e *Editor) SecondaryPress(pt Pointer) {
	if e.mode != ModeDrawing || len(e.drawBuf) < 3 {
		return
	}
	idx := e.set.Append(e.drawBuf, e.pendingDensity)
	e.drawBuf = nil
	e.mode = ModeSelected
	e.sel = Selection{Polygon: idx, Vertex: -1}
	e.events.DrawingModeChanged(false)
	e.emitSelection()
	e.recompute()
	e.render.RequestFull()
}

// Move handles a pointer move while the primary button is held.
func (e *Editor) Move(pt Pointer) {
	if e.armed {
		return
	}
	switch e.mode {
	case ModeDraggingVertex:
		index := e.sel.Vertex
		if e.sel.Seam {
			index = 0 // MoveVertex mirrors both seam slots
		}
		e.set.MoveVertex(e.sel.Polygon, index, pt.Model)
	case ModeDraggingPolygon:
		if e.dragAnchor == nil {
			return
		}
		d := pt.Model.Sub(*e.dragAnchor)
		e.set.Translate(e.sel.Polygon, d.X, d.Z)
	default:
		return
	}
	anchor := pt.Model
	e.dragAnchor = &anchor
	e.recompute()
	e.render.RequestIncremental(Artifact(e.sel.Polygon))
}

// Release handles the primary button release. Ending a drag keeps the
// selection, drops the drag anchor, disarms add-vertex mode, and triggers a
// final recompute with a full repaint. Releases outside a drag (including
// the ones that follow armed insertion clicks) change nothing.
func (e *Editor) Release(pt Pointer) {
	if e.mode != ModeDraggingVertex && e.mode != ModeDraggingPolygon {
		return
	}
	e.dragAnchor = nil
	e.mode = ModeSelected
	if e.armed {
		e.armed = false
		e.events.AddVertexModeChanged(false)
	}
	e.recompute()
	e.render.RequestFull()
}

// Delete removes the last drawn point while drawing, the selected vertex
// when one is selected, or the whole selected polygon otherwise. Vertex
// deletion that would leave fewer than three distinct vertices is a silent
// no-op.
func (e *Editor) Delete() {
	switch {
	case e.mode == ModeDrawing:
		if len(e.drawBuf) == 0 {
			return
		}
		e.drawBuf = e.drawBuf[:len(e.drawBuf)-1]
		e.render.RequestIncremental(ArtifactDrawBuffer)

	case e.sel.HasPolygon() && e.sel.HasVertex():
		poly := e.set.At(e.sel.Polygon)
		positions := []int{e.sel.Vertex}
		if e.sel.Seam {
			positions = []int{0, len(poly.Vertices) - 1}
		}
		if err := e.set.RemoveVertices(e.sel.Polygon, positions); err != nil {
			if !errors.Is(err, model.ErrShrinkBelowMinimum) {
				log.Printf("editor: vertex removal: %v", err)
			}
			return
		}
		e.sel.Vertex = -1
		e.sel.Seam = false
		e.recompute()
		e.render.RequestFull()

	case e.sel.HasPolygon():
		e.set.RemoveAt(e.sel.Polygon)
		e.clearSelection()
		e.mode = ModeIdle
		if e.armed {
			e.armed = false
		}
		e.events.AddVertexModeChanged(false)
		e.recompute()
		e.render.RequestFull()
	}
}

// Cancel backs out of the current mode: it disarms add-vertex mode if armed,
// otherwise abandons an in-progress drawing, otherwise clears the selection.
func (e *Editor) Cancel() {
	switch {
	case e.armed:
		e.armed = false
		e.events.AddVertexModeChanged(false)
		e.render.RequestFull()
	case e.mode == ModeDrawing:
		e.drawBuf = nil
		e.mode = ModeIdle
		e.events.DrawingModeChanged(false)
		e.render.RequestFull()
	default:
		e.clearSelection()
		e.mode = ModeIdle
		e.render.RequestFull()
	}
}

// ToggleAddVertex toggles add-vertex mode. While armed, primary clicks
// insert vertices into the selected polygon at the best insertion position.
func (e *Editor) ToggleAddVertex() {
	e.armed = !e.armed
	e.events.AddVertexModeChanged(e.armed)
}

// ResetView requests a render with the default viewport bounds. Editing
// state is unaffected.
func (e *Editor) ResetView() {
	e.events.ViewReset(e.DefaultBounds())
	e.render.RequestFull()
}

// DefaultBounds returns the default viewport: the measurement-point x extent
// by the configured depth range.
func (e *Editor) DefaultBounds() geometry.Rect {
	x, _ := e.bridge.MeasurementPoints()
	minX, maxX := 0.0, 1.0
	if len(x) > 0 {
		minX, maxX = x[0], x[0]
		for _, v := range x[1:] {
			if v < minX {
				minX = v
			}
			if v > maxX {
				maxX = v
			}
		}
	}
	return geometry.NewRect(minX, e.minDepth, maxX-minX, e.maxDepth-e.minDepth)
}

// SetDensity updates the live density value. With a polygon selected it
// rewrites that polygon's density and color immediately; otherwise the value
// is held as the pending density for the next drawn polygon.
func (e *Editor) SetDensity(value float64) {
	e.pendingDensity = value
	if !e.sel.HasPolygon() {
		return
	}
	e.set.SetDensity(e.sel.Polygon, value)
	e.recompute()
	e.render.RequestFull()
}

// SetErrorLevel sets the noise standard deviation. The bridge re-derives the
// predicted curve from its last clean evaluation; the evaluator is not
// re-run.
func (e *Editor) SetErrorLevel(level float64) {
	e.bridge.SetErrorLevel(level)
	e.render.RequestFull()
}

// SetMeasurementPoints replaces the observation points and recomputes.
func (e *Editor) SetMeasurementPoints(x, z []float64) {
	e.bridge.SetMeasurementPoints(x, z)
	e.recompute()
	e.render.RequestFull()
}

// recompute runs the forward model. Evaluator failures are surfaced as a
// recoverable notification; the model itself stays intact and editable.
func (e *Editor) recompute() {
	if err := e.bridge.Recompute(e.set); err != nil {
		e.events.EvaluatorFailed(err)
	}
}

func (e *Editor) emitSelection() {
	if poly := e.set.At(e.sel.Polygon); poly != nil {
		e.events.SelectionChanged(poly.Density, true)
		return
	}
	e.events.SelectionChanged(0, false)
}

func (e *Editor) clearSelection() {
	if e.sel != NoSelection() {
		e.sel = NoSelection()
	}
	e.events.SelectionChanged(0, false)
}
