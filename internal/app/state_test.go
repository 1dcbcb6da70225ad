package app

import (
	"testing"

	"moulder/internal/editor"
)

func TestDefaultConfigMeasurementPoints(t *testing.T) {
	x, z := DefaultConfig().MeasurementPoints()
	if len(x) != 100 || len(z) != 100 {
		t.Fatalf("points = %d/%d, want 100 each", len(x), len(z))
	}
	if x[0] != 0 || x[99] != 100000 {
		t.Errorf("profile extent = [%g, %g], want [0, 100000]", x[0], x[99])
	}
	for i, v := range z {
		if v != 0 {
			t.Errorf("z[%d] = %g, want surface observation", i, v)
		}
	}

	cfg := DefaultConfig()
	cfg.NumPoints = 1
	if x, _ := cfg.MeasurementPoints(); len(x) != 2 {
		t.Errorf("degenerate point count expands to %d, want 2", len(x))
	}
}

func TestEventBus(t *testing.T) {
	s := NewState(DefaultConfig())

	var got []interface{}
	s.On(EventDrawingModeChanged, func(data interface{}) {
		got = append(got, data)
	})
	s.Emit(EventDrawingModeChanged, true)
	s.Emit(EventAddVertexModeChanged, true) // different event, not delivered

	if len(got) != 1 || got[0] != true {
		t.Errorf("delivered = %v, want [true]", got)
	}
}

func TestStateForwardsEditorEvents(t *testing.T) {
	s := NewState(DefaultConfig())

	var sel []SelectionEvent
	s.On(EventSelectionChanged, func(data interface{}) {
		if ev, ok := data.(SelectionEvent); ok {
			sel = append(sel, ev)
		}
	})

	s.SelectionChanged(500, true)
	if len(sel) != 1 || sel[0] != (SelectionEvent{Density: 500, Selected: true}) {
		t.Errorf("selection events = %v", sel)
	}
}

type countingSink struct {
	full int
}

func (c *countingSink) RequestFull()                             { c.full++ }
func (c *countingSink) RequestIncremental(_ ...editor.Artifact) {}

func TestRenderProxyBeforeAndAfterAttach(t *testing.T) {
	s := NewState(DefaultConfig())

	// No sink attached yet: editor commands must not panic.
	s.Editor.NewPolygon()
	s.Editor.Cancel()

	sink := &countingSink{}
	s.AttachRenderSink(sink)
	s.Editor.ResetView()
	if sink.full != 1 {
		t.Errorf("full renders = %d, want 1 after attach", sink.full)
	}
}
