// Package panels provides the side panel widgets that drive the editor.
package panels

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"moulder/internal/app"
)

// SidePanel hosts the density and error sliders, the editing commands, and
// the mode indicators. Widgets synchronize to editor notifications on the
// application event bus.
type SidePanel struct {
	state *app.State

	densitySlider *widget.Slider
	densityLabel  *widget.Label
	errorSlider   *widget.Slider
	errorLabel    *widget.Label

	drawingStatus *widget.Label
	armedStatus   *widget.Label
	statusLabel   *widget.Label

	xMinEntry   *widget.Entry
	xMaxEntry   *widget.Entry
	pointsEntry *widget.Entry

	// syncing suppresses slider callbacks while the slider is being set
	// from a selection event rather than by the user.
	syncing bool

	container fyne.CanvasObject
}

// NewSidePanel creates the side panel bound to the application state.
func NewSidePanel(state *app.State) *SidePanel {
	sp := &SidePanel{state: state}

	cfg := state.Config

	// Density slider: with a selection it rewrites that polygon's density,
	// otherwise it holds the pending value for the next drawn polygon.
	sp.densityLabel = widget.NewLabel(densityText(0))
	sp.densitySlider = widget.NewSlider(cfg.DensityMin, cfg.DensityMax)
	sp.densitySlider.Step = 10
	sp.densitySlider.OnChanged = func(val float64) {
		sp.densityLabel.SetText(densityText(val))
		if sp.syncing {
			return
		}
		state.Editor.SetDensity(val)
	}

	// Error slider: Gaussian noise standard deviation in mGal.
	sp.errorLabel = widget.NewLabel(errorText(0))
	sp.errorSlider = widget.NewSlider(0, 50)
	sp.errorSlider.OnChanged = func(val float64) {
		sp.errorLabel.SetText(errorText(val))
		state.Editor.SetErrorLevel(val)
	}

	newButton := widget.NewButton("New Polygon (n)", func() {
		state.Editor.NewPolygon()
	})
	deleteButton := widget.NewButton("Delete (d)", func() {
		state.Editor.Delete()
	})
	addVertexButton := widget.NewButton("Add Vertex (a)", func() {
		state.Editor.ToggleAddVertex()
	})
	cancelButton := widget.NewButton("Cancel (esc)", func() {
		state.Editor.Cancel()
	})
	resetButton := widget.NewButton("Reset View (r)", func() {
		state.Editor.ResetView()
	})

	sp.drawingStatus = widget.NewLabel("Drawing: off")
	sp.armedStatus = widget.NewLabel("Add vertex: off")
	sp.statusLabel = widget.NewLabel("")
	sp.statusLabel.Wrapping = fyne.TextWrapWord

	// Measurement profile controls.
	sp.xMinEntry = widget.NewEntry()
	sp.xMinEntry.SetText(strconv.FormatFloat(cfg.XMin, 'f', 0, 64))
	sp.xMaxEntry = widget.NewEntry()
	sp.xMaxEntry.SetText(strconv.FormatFloat(cfg.XMax, 'f', 0, 64))
	sp.pointsEntry = widget.NewEntry()
	sp.pointsEntry.SetText(strconv.Itoa(cfg.NumPoints))
	applyProfile := widget.NewButton("Apply Profile", sp.applyProfile)

	sp.container = container.NewVBox(
		widget.NewCard("Density [kg/m3]", "", container.NewVBox(
			sp.densitySlider,
			sp.densityLabel,
		)),
		widget.NewCard("Noise [mGal]", "", container.NewVBox(
			sp.errorSlider,
			sp.errorLabel,
		)),
		widget.NewCard("Editing", "", container.NewVBox(
			newButton,
			addVertexButton,
			deleteButton,
			cancelButton,
			resetButton,
			sp.drawingStatus,
			sp.armedStatus,
		)),
		widget.NewCard("Profile", "", container.NewVBox(
			container.NewGridWithColumns(2,
				widget.NewLabel("x min:"), sp.xMinEntry,
				widget.NewLabel("x max:"), sp.xMaxEntry,
				widget.NewLabel("points:"), sp.pointsEntry,
			),
			applyProfile,
		)),
		sp.statusLabel,
	)

	sp.listen()
	return sp
}

// Container returns the panel container.
func (sp *SidePanel) Container() fyne.CanvasObject {
	return sp.container
}

// listen wires the panel widgets to editor notifications.
func (sp *SidePanel) listen() {
	sp.state.On(app.EventSelectionChanged, func(data interface{}) {
		ev, ok := data.(app.SelectionEvent)
		if !ok || !ev.Selected {
			return
		}
		sp.syncing = true
		sp.densitySlider.SetValue(ev.Density)
		sp.syncing = false
	})
	sp.state.On(app.EventDrawingModeChanged, func(data interface{}) {
		if drawing, ok := data.(bool); ok {
			sp.drawingStatus.SetText("Drawing: " + onOff(drawing))
		}
	})
	sp.state.On(app.EventAddVertexModeChanged, func(data interface{}) {
		if armed, ok := data.(bool); ok {
			sp.armedStatus.SetText("Add vertex: " + onOff(armed))
		}
	})
	sp.state.On(app.EventEvaluatorError, func(data interface{}) {
		if err, ok := data.(error); ok {
			sp.statusLabel.SetText("forward model error: " + err.Error())
		}
	})
}

// applyProfile parses the profile entries and replaces the measurement
// points. Invalid input is reported in the status label and ignored.
func (sp *SidePanel) applyProfile() {
	xMin, err1 := strconv.ParseFloat(sp.xMinEntry.Text, 64)
	xMax, err2 := strconv.ParseFloat(sp.xMaxEntry.Text, 64)
	n, err3 := strconv.Atoi(sp.pointsEntry.Text)
	if err1 != nil || err2 != nil || err3 != nil || n < 2 || xMax <= xMin {
		sp.statusLabel.SetText("invalid profile: need x min < x max and at least 2 points")
		return
	}
	sp.statusLabel.SetText("")

	x := make([]float64, n)
	z := make([]float64, n)
	step := (xMax - xMin) / float64(n-1)
	for i := range x {
		x[i] = xMin + float64(i)*step
	}
	sp.state.Editor.SetMeasurementPoints(x, z)
	sp.state.Editor.ResetView()
}

func densityText(v float64) string {
	return fmt.Sprintf("%.0f kg/m3", v)
}

func errorText(v float64) string {
	return fmt.Sprintf("%.0f mGal", v)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
