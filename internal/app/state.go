// Package app provides application lifecycle management, configuration, and
// events.
package app

import (
	"log"
	"sync"

	"moulder/internal/editor"
	"moulder/internal/forward"
	"moulder/internal/model"
	"moulder/pkg/geometry"
)

// EventType identifies different application events.
type EventType int

const (
	EventSelectionChanged EventType = iota
	EventDrawingModeChanged
	EventAddVertexModeChanged
	EventEvaluatorError
	EventViewReset
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// SelectionEvent is the payload of EventSelectionChanged.
type SelectionEvent struct {
	Density  float64
	Selected bool
}

// Config holds the modeling configuration the host chooses at startup.
type Config struct {
	DensityMin, DensityMax float64 // color-mapping range, kg/m³
	MinDepth, MaxDepth     float64 // default viewport depth extent, m
	XMin, XMax             float64 // measurement profile extent, m
	NumPoints              int
}

// DefaultConfig returns the stock modeling setup: a 100 km surface profile
// and a ±2000 kg/m³ density range.
func DefaultConfig() Config {
	return Config{
		DensityMin: -2000,
		DensityMax: 2000,
		MinDepth:   0,
		MaxDepth:   5000,
		XMin:       0,
		XMax:       100000,
		NumPoints:  100,
	}
}

// MeasurementPoints expands the config into the observation arrays: evenly
// spaced x positions along the surface (z = 0).
func (c Config) MeasurementPoints() (x, z []float64) {
	n := c.NumPoints
	if n < 2 {
		n = 2
	}
	x = make([]float64, n)
	z = make([]float64, n)
	step := (c.XMax - c.XMin) / float64(n-1)
	for i := range x {
		x[i] = c.XMin + float64(i)*step
	}
	return x, z
}

// State wires the model, the forward bridge, and the editor together and
// fans the editor's notifications out to registered UI listeners.
type State struct {
	mu sync.RWMutex

	Config Config
	Model  *model.Set
	Bridge *forward.Bridge
	Editor *editor.Editor

	render    renderProxy
	listeners map[EventType][]EventListener
}

// renderProxy forwards render requests to the canvas once it attaches.
// The editor needs a sink before the UI exists.
type renderProxy struct {
	sink editor.RenderSink
}

func (r *renderProxy) RequestFull() {
	if r.sink != nil {
		r.sink.RequestFull()
	}
}

func (r *renderProxy) RequestIncremental(artifacts ...editor.Artifact) {
	if r.sink != nil {
		r.sink.RequestIncremental(artifacts...)
	}
}

// NewState creates the application state for the given configuration.
func NewState(cfg Config) *State {
	s := &State{
		Config:    cfg,
		listeners: make(map[EventType][]EventListener),
	}
	s.Model = model.NewSet(cfg.DensityMin, cfg.DensityMax)
	x, z := cfg.MeasurementPoints()
	s.Bridge = forward.NewBridge(forward.Talwani{}, x, z)
	s.Editor = editor.New(s.Model, s.Bridge, s, &s.render, cfg.MinDepth, cfg.MaxDepth)
	return s
}

// AttachRenderSink connects the canvas to the editor's render requests.
func (s *State) AttachRenderSink(sink editor.RenderSink) {
	s.render.sink = sink
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// The methods below implement editor.Events by fanning out on the bus.

// SelectionChanged forwards the selected polygon's density (or none).
func (s *State) SelectionChanged(density float64, selected bool) {
	s.Emit(EventSelectionChanged, SelectionEvent{Density: density, Selected: selected})
}

// DrawingModeChanged forwards drawing-mode transitions.
func (s *State) DrawingModeChanged(drawing bool) {
	s.Emit(EventDrawingModeChanged, drawing)
}

// AddVertexModeChanged forwards add-vertex arming transitions.
func (s *State) AddVertexModeChanged(armed bool) {
	s.Emit(EventAddVertexModeChanged, armed)
}

// EvaluatorFailed reports a recoverable forward-model failure.
func (s *State) EvaluatorFailed(err error) {
	log.Printf("forward model: %v", err)
	s.Emit(EventEvaluatorError, err)
}

// ViewReset forwards a viewport reset with the default bounds.
func (s *State) ViewReset(bounds geometry.Rect) {
	s.Emit(EventViewReset, bounds)
}
