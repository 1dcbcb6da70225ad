// Package mainwindow provides the main application window.
package mainwindow

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"moulder/internal/app"
	"moulder/ui/canvas"
	"moulder/ui/panels"
	"moulder/ui/prefs"
)

const (
	prefKeyWidth   = "windowWidth"
	prefKeyHeight  = "windowHeight"
	prefKeyDensity = "lastDensity"

	instructions        = "n: New polygon | d: delete | click: select/move | a: add vertex | r: reset view | esc: cancel"
	drawingInstructions = "left click: set vertex | right click: finish | esc: cancel"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	state     *app.State
	prefs     *prefs.Prefs
	canvas    *canvas.ModelCanvas
	sidePanel *panels.SidePanel
	statusBar *widget.Label
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, appPrefs *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("Moulder")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  appPrefs,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupKeys()
	mw.setupEventHandlers()
	mw.restorePreferences()

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewModelCanvas(mw.state)
	mw.sidePanel = panels.NewSidePanel(mw.state)
	mw.statusBar = widget.NewLabel(instructions)

	content := container.NewBorder(
		nil,                       // top
		mw.statusBar,              // bottom
		nil,                       // left
		mw.sidePanel.Container(),  // right
		mw.canvas,                 // center
	)
	mw.SetContent(content)
}

// setupMenus builds the menu bar.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Quit", func() {
			mw.SavePreferences()
			mw.app.Quit()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("New Polygon", mw.state.Editor.NewPolygon),
		fyne.NewMenuItem("Delete", mw.state.Editor.Delete),
		fyne.NewMenuItem("Add Vertex", mw.state.Editor.ToggleAddVertex),
		fyne.NewMenuItem("Cancel", mw.state.Editor.Cancel),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Reset View", mw.state.Editor.ResetView),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, viewMenu))
}

// setupKeys binds the editing keys: n, d, a, r, and escape.
func (mw *MainWindow) setupKeys() {
	mw.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyN:
			mw.state.Editor.NewPolygon()
		case fyne.KeyD:
			mw.state.Editor.Delete()
		case fyne.KeyA:
			mw.state.Editor.ToggleAddVertex()
		case fyne.KeyR:
			mw.state.Editor.ResetView()
		case fyne.KeyEscape:
			mw.state.Editor.Cancel()
		}
	})
}

// setupEventHandlers syncs the status bar to editor notifications.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventDrawingModeChanged, func(data interface{}) {
		if drawing, ok := data.(bool); ok && drawing {
			mw.statusBar.SetText(drawingInstructions)
		} else {
			mw.statusBar.SetText(instructions)
		}
	})

	mw.SetCloseIntercept(func() {
		mw.SavePreferences()
		mw.Close()
	})
}

// restorePreferences applies the persisted window size and density value.
func (mw *MainWindow) restorePreferences() {
	width := mw.prefs.FloatWithFallback(prefKeyWidth, 1000)
	height := mw.prefs.FloatWithFallback(prefKeyHeight, 700)
	mw.Resize(fyne.NewSize(float32(width), float32(height)))

	density := mw.prefs.FloatWithFallback(prefKeyDensity, 0)
	mw.state.Editor.SetDensity(density)
}

// SavePreferences persists the window geometry and editing values.
func (mw *MainWindow) SavePreferences() {
	size := mw.Canvas().Size()
	mw.prefs.SetFloat(prefKeyWidth, float64(size.Width))
	mw.prefs.SetFloat(prefKeyHeight, float64(size.Height))
	mw.prefs.SetFloat(prefKeyDensity, mw.state.Editor.PendingDensity())
	if err := mw.prefs.Save(); err != nil {
		// Non-fatal; preferences just won't persist.
		return
	}
}
