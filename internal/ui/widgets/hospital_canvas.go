package widgets

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/piwi3910/WardView/internal/model"
	"github.com/piwi3910/WardView/internal/scene"
)

// HospitalCanvas is the isometric 3D view of the hospital. It owns one
// scene.Stage, rebuilt when the focused floor or theme changes and
// repopulated whenever the visible data or selection changes.
//
// Drag orbits the camera, secondary-button or shift drag pans, and the
// scroll wheel zooms. Hovering highlights beds and patients; tapping one
// calls OnBedSelect or OnPatientSelect.
type HospitalCanvas struct {
	widget.BaseWidget

	OnBedSelect     func(id string)
	OnPatientSelect func(id string)

	log      *zap.Logger
	theme    scene.Theme
	focus    *scene.FloorFocus
	storeys  int
	view     model.View
	selected string

	stage *scene.Stage
	pop   *scene.Population
	inter *scene.Interaction

	image   *canvas.Image
	anim    *fyne.Animation
	size    fyne.Size
	cursor  desktop.Cursor
	panning bool
	dirty   bool
}

// NewHospitalCanvas creates an empty canvas; call SetScene to show data.
func NewHospitalCanvas(log *zap.Logger) *HospitalCanvas {
	if log == nil {
		log = zap.NewNop()
	}
	hc := &HospitalCanvas{
		log:    log,
		pop:    scene.NewPopulation(),
		inter:  &scene.Interaction{},
		cursor: desktop.DefaultCursor,
		size:   fyne.NewSize(640, 480),
	}
	hc.inter.OnBedSelect = func(id string) {
		if hc.OnBedSelect != nil {
			hc.OnBedSelect(id)
		}
	}
	hc.inter.OnPatientSelect = func(id string) {
		if hc.OnPatientSelect != nil {
			hc.OnPatientSelect(id)
		}
	}
	hc.image = canvas.NewImageFromImage(nil)
	hc.image.FillMode = canvas.ImageFillStretch
	hc.image.ScaleMode = canvas.ImageScaleFastest
	hc.ExtendBaseWidget(hc)
	return hc
}

// SetScene shows view. focus selects a single storey, nil shows the whole
// stack of storeys.
func (hc *HospitalCanvas) SetScene(view model.View, focus *scene.FloorFocus, storeys int, selectedPatient string, theme scene.Theme) {
	if hc.stage == nil || hc.stage.Disposed() || theme != hc.theme || !sameFocus(focus, hc.focus) || storeys != hc.storeys {
		hc.rebuildStage(focus, storeys, theme)
	}
	hc.view = view
	hc.selected = selectedPatient
	hc.pop.Populate(hc.stage, view, selectedPatient, theme)
	hc.inter.Reset()
	hc.cursor = desktop.DefaultCursor
	hc.dirty = true
	hc.log.Debug("scene populated",
		zap.Int("objects", len(hc.pop.Objects)),
		zap.Int("live_resources", hc.stage.Resources.Live()))
	hc.Refresh()
}

func (hc *HospitalCanvas) rebuildStage(focus *scene.FloorFocus, storeys int, theme scene.Theme) {
	if hc.stage != nil {
		hc.pop.Clear(hc.stage)
		hc.stage.Dispose()
	}
	hc.theme = theme
	hc.focus = focus
	hc.storeys = storeys
	hc.stage = scene.New(scene.Config{
		Theme:   theme,
		Focus:   focus,
		Width:   int(hc.size.Width),
		Height:  int(hc.size.Height),
		Storeys: storeys,
	})
	hc.inter.Reset()
}

func sameFocus(a, b *scene.FloorFocus) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Objects returns the interactive objects currently in the scene.
func (hc *HospitalCanvas) Objects() map[scene.Tag]*scene.Node {
	return hc.pop.Objects
}

// Stage returns the live stage, nil before the first SetScene.
func (hc *HospitalCanvas) Stage() *scene.Stage { return hc.stage }

// Dispose stops the render loop and releases the stage.
func (hc *HospitalCanvas) Dispose() {
	if hc.anim != nil {
		hc.anim.Stop()
		hc.anim = nil
	}
	if hc.stage != nil {
		hc.pop.Clear(hc.stage)
		hc.stage.Dispose()
	}
	hc.inter.Reset()
}

// tick runs once per animation frame on the UI thread.
func (hc *HospitalCanvas) tick(float32) {
	if hc.stage == nil || hc.stage.Disposed() {
		return
	}
	if hc.stage.Controls.Update() {
		hc.dirty = true
	}
	if hc.dirty {
		hc.draw()
	}
}

func (hc *HospitalCanvas) draw() {
	if hc.stage == nil {
		return
	}
	img := hc.stage.Render()
	if img == nil {
		return
	}
	hc.image.Image = img
	hc.image.Refresh()
	hc.dirty = false
}

func (hc *HospitalCanvas) resize(size fyne.Size) {
	if size.Width <= 0 || size.Height <= 0 || size == hc.size {
		return
	}
	hc.size = size
	if hc.stage != nil {
		hc.stage.Resize(int(size.Width), int(size.Height))
		hc.dirty = true
	}
}

// MouseIn implements desktop.Hoverable.
func (hc *HospitalCanvas) MouseIn(ev *desktop.MouseEvent) { hc.MouseMoved(ev) }

// MouseMoved implements desktop.Hoverable.
func (hc *HospitalCanvas) MouseMoved(ev *desktop.MouseEvent) {
	if hc.stage == nil || hc.stage.Disposed() {
		return
	}
	before, _ := hc.inter.Hovered()
	c := hc.inter.PointerMove(hc.stage.Camera, hc.pop.Objects,
		ev.Position.X, ev.Position.Y, hc.size.Width, hc.size.Height)
	after, _ := hc.inter.Hovered()
	if before != after {
		hc.dirty = true
	}
	hc.cursor = desktop.DefaultCursor
	if c == scene.CursorPointer {
		hc.cursor = desktop.PointerCursor
	}
}

// MouseOut implements desktop.Hoverable.
func (hc *HospitalCanvas) MouseOut() {
	if _, ok := hc.inter.Hovered(); ok {
		hc.inter.Leave()
		hc.dirty = true
	}
	hc.cursor = desktop.DefaultCursor
}

// MouseDown implements desktop.Mouseable; it picks orbit or pan for the
// following drag.
func (hc *HospitalCanvas) MouseDown(ev *desktop.MouseEvent) {
	hc.panning = ev.Button == desktop.MouseButtonSecondary || ev.Modifier&fyne.KeyModifierShift != 0
}

// MouseUp implements desktop.Mouseable.
func (hc *HospitalCanvas) MouseUp(*desktop.MouseEvent) {}

// Tapped implements fyne.Tappable.
func (hc *HospitalCanvas) Tapped(ev *fyne.PointEvent) {
	if hc.stage == nil || hc.stage.Disposed() {
		return
	}
	tag, ok := hc.inter.Click(hc.stage.Camera, hc.pop.Objects,
		ev.Position.X, ev.Position.Y, hc.size.Width, hc.size.Height)
	if ok {
		hc.log.Debug("scene object tapped", zap.String("kind", string(tag.Kind)), zap.String("id", tag.ID))
	}
}

// Dragged implements fyne.Draggable.
func (hc *HospitalCanvas) Dragged(ev *fyne.DragEvent) {
	if hc.stage == nil || hc.stage.Disposed() {
		return
	}
	c := hc.stage.Controls
	if hc.panning {
		c.Pan(ev.Dragged.DX, ev.Dragged.DY, hc.size.Width, hc.size.Height)
	} else {
		c.Rotate(ev.Dragged.DX, ev.Dragged.DY, hc.size.Height)
	}
}

// DragEnd implements fyne.Draggable.
func (hc *HospitalCanvas) DragEnd() { hc.panning = false }

// Scrolled implements fyne.Scrollable.
func (hc *HospitalCanvas) Scrolled(ev *fyne.ScrollEvent) {
	if hc.stage == nil || hc.stage.Disposed() {
		return
	}
	hc.stage.Controls.Zoom(ev.Scrolled.DY / 40)
	hc.dirty = true
}

// Cursor implements desktop.Cursorable.
func (hc *HospitalCanvas) Cursor() desktop.Cursor { return hc.cursor }

// ResetCamera puts the camera back in its initial pose.
func (hc *HospitalCanvas) ResetCamera() {
	if hc.stage == nil {
		return
	}
	hc.rebuildStage(hc.focus, hc.storeys, hc.theme)
	hc.pop.Populate(hc.stage, hc.view, hc.selected, hc.theme)
	hc.cursor = desktop.DefaultCursor
	hc.dirty = true
	hc.Refresh()
}

// CreateRenderer implements fyne.Widget and starts the render loop.
func (hc *HospitalCanvas) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(color.Transparent)
	r := &hospitalCanvasRenderer{hc: hc, objects: []fyne.CanvasObject{bg, hc.image}}
	hc.anim = fyne.NewAnimation(time.Second, hc.tick)
	hc.anim.RepeatCount = fyne.AnimationRepeatForever
	hc.anim.Curve = fyne.AnimationLinear
	hc.anim.Start()
	return r
}

type hospitalCanvasRenderer struct {
	hc      *HospitalCanvas
	objects []fyne.CanvasObject
}

func (r *hospitalCanvasRenderer) Layout(size fyne.Size) {
	for _, o := range r.objects {
		o.Resize(size)
		o.Move(fyne.NewPos(0, 0))
	}
	r.hc.resize(size)
}

func (r *hospitalCanvasRenderer) Refresh() {
	if r.hc.dirty {
		r.hc.draw()
	}
	canvas.Refresh(r.hc.image)
}

func (r *hospitalCanvasRenderer) Destroy()                     { r.hc.Dispose() }
func (r *hospitalCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *hospitalCanvasRenderer) MinSize() fyne.Size           { return fyne.NewSize(320, 240) }
