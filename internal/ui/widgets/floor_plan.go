package widgets

import (
	"fmt"
	"image/color"
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/WardView/internal/model"
	"github.com/piwi3910/WardView/internal/scene"
)

// Bed footprint in world units, matching the 3D bed frame.
const (
	bedFootW = 1.8
	bedFootD = 3.0
	planPad  = 1.5
)

var (
	colorPlanFloor  = color.NRGBA{R: 214, G: 219, B: 226, A: 255}
	colorPlanBorder = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	colorSelected   = color.NRGBA{R: 25, G: 118, B: 210, A: 255}
)

// FloorPlan renders a top-down plan of one floor with every bed colored
// by status. Tapping a bed calls OnBedTapped.
type FloorPlan struct {
	widget.BaseWidget
	OnBedTapped func(id string)

	floor     model.Floor
	beds      []model.Bed
	selected  string
	maxWidth  float32
	maxHeight float32
}

func NewFloorPlan(floor model.Floor, beds []model.Bed, selectedBed string, maxW, maxH float32) *FloorPlan {
	fp := &FloorPlan{
		floor:     floor,
		selected:  selectedBed,
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	for _, b := range beds {
		if b.Floor == floor.Type {
			fp.beds = append(fp.beds, b)
		}
	}
	fp.ExtendBaseWidget(fp)
	return fp
}

// bounds returns the plan extent in world x/z.
func (fp *FloorPlan) bounds() (minX, minZ, w, d float64) {
	if len(fp.beds) == 0 {
		return 0, 0, 1, 1
	}
	minX, minZ = fp.beds[0].Position.X, fp.beds[0].Position.Z
	maxX, maxZ := minX, minZ
	for _, b := range fp.beds {
		minX = min(minX, b.Position.X)
		maxX = max(maxX, b.Position.X)
		minZ = min(minZ, b.Position.Z)
		maxZ = max(maxZ, b.Position.Z)
	}
	minX -= bedFootW/2 + planPad
	minZ -= bedFootD/2 + planPad
	return minX, minZ, maxX + bedFootW/2 + planPad - minX, maxZ + bedFootD/2 + planPad - minZ
}

func (fp *FloorPlan) scale() float32 {
	_, _, w, d := fp.bounds()
	scale := fp.maxWidth / float32(w)
	if s := fp.maxHeight / float32(d); s < scale {
		scale = s
	}
	return scale
}

// bedAt returns the bed under a point in widget coordinates.
func (fp *FloorPlan) bedAt(pos fyne.Position) (model.Bed, bool) {
	minX, minZ, _, _ := fp.bounds()
	scale := fp.scale()
	x := float64(pos.X/scale) + minX
	z := float64(pos.Y/scale) + minZ
	for _, b := range fp.beds {
		if x >= b.Position.X-bedFootW/2 && x <= b.Position.X+bedFootW/2 &&
			z >= b.Position.Z-bedFootD/2 && z <= b.Position.Z+bedFootD/2 {
			return b, true
		}
	}
	return model.Bed{}, false
}

// Tapped implements fyne.Tappable.
func (fp *FloorPlan) Tapped(ev *fyne.PointEvent) {
	if b, ok := fp.bedAt(ev.Position); ok && fp.OnBedTapped != nil {
		fp.OnBedTapped(b.ID)
	}
}

func (fp *FloorPlan) CreateRenderer() fyne.WidgetRenderer {
	r := &floorPlanRenderer{fp: fp}
	r.rebuild()
	return r
}

type floorPlanRenderer struct {
	fp      *FloorPlan
	objects []fyne.CanvasObject
}

func (r *floorPlanRenderer) rebuild() {
	r.objects = nil
	fp := r.fp
	minX, minZ, w, d := fp.bounds()
	scale := fp.scale()
	canvasW := float32(w) * scale
	canvasH := float32(d) * scale

	bg := canvas.NewRectangle(colorPlanFloor)
	bg.Resize(fyne.NewSize(canvasW, canvasH))
	r.objects = append(r.objects, bg)

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = colorPlanBorder
	border.StrokeWidth = 2
	border.Resize(fyne.NewSize(canvasW, canvasH))
	r.objects = append(r.objects, border)

	for _, b := range fp.beds {
		col := scene.BedStatusColors[b.Status]
		col.A = 200
		bw := float32(bedFootW) * scale
		bd := float32(bedFootD) * scale
		bx := float32(b.Position.X-bedFootW/2-minX) * scale
		by := float32(b.Position.Z-bedFootD/2-minZ) * scale

		rect := canvas.NewRectangle(col)
		rect.Resize(fyne.NewSize(bw, bd))
		rect.Move(fyne.NewPos(bx, by))
		r.objects = append(r.objects, rect)

		outline := canvas.NewRectangle(color.Transparent)
		outline.StrokeColor = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
		outline.StrokeWidth = 1
		if b.ID == fp.selected {
			outline.StrokeColor = colorSelected
			outline.StrokeWidth = 3
		}
		outline.Resize(fyne.NewSize(bw, bd))
		outline.Move(fyne.NewPos(bx, by))
		r.objects = append(r.objects, outline)

		// Label (only if big enough)
		if bw > 30 && bd > 16 {
			label := canvas.NewText(b.Room, color.Black)
			label.TextSize = 10
			label.Move(fyne.NewPos(bx+3, by+2))
			r.objects = append(r.objects, label)
		}
	}
}

func (r *floorPlanRenderer) Layout(size fyne.Size)        {}
func (r *floorPlanRenderer) Refresh()                     { r.rebuild() }
func (r *floorPlanRenderer) Destroy()                     {}
func (r *floorPlanRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *floorPlanRenderer) MinSize() fyne.Size {
	_, _, w, d := r.fp.bounds()
	scale := r.fp.scale()
	return fyne.NewSize(float32(w)*scale, float32(d)*scale)
}

// RenderFloorPlans creates a scrollable container with a plan and a room
// breakdown for every floor in view.
func RenderFloorPlans(view model.View, selectedBed string, onBedTapped func(id string)) fyne.CanvasObject {
	if len(view.Floors) == 0 {
		return widget.NewLabel("No floors to show.")
	}

	var items []fyne.CanvasObject
	for _, f := range view.Floors {
		var beds []model.Bed
		for _, b := range view.Beds {
			if b.Floor == f.Type {
				beds = append(beds, b)
			}
		}
		header := widget.NewLabel(fmt.Sprintf(
			"%s (level %d): %d beds, %.1f%% occupied",
			f.Name, f.Level, len(beds), model.OccupancyRate(beds),
		))
		header.TextStyle = fyne.TextStyle{Bold: true}

		plan := NewFloorPlan(f, beds, selectedBed, 600, 300)
		plan.OnBedTapped = onBedTapped
		items = append(items, header, plan)
		for _, line := range buildRoomBreakdown(beds) {
			items = append(items, widget.NewLabel(line))
		}
		items = append(items, widget.NewSeparator())
	}

	summary := widget.NewLabel(fmt.Sprintf(
		"Total: %d beds, %d patients, %.1f%% occupancy",
		len(view.Beds), len(view.Patients), model.OccupancyRate(view.Beds),
	))
	summary.TextStyle = fyne.TextStyle{Bold: true}
	items = append(items, summary)

	return container.NewVScroll(container.NewVBox(items...))
}

// buildRoomBreakdown generates one occupancy line per room, in room order.
func buildRoomBreakdown(beds []model.Bed) []string {
	type roomStats struct {
		total, occupied, cleaning int
	}
	stats := make(map[string]*roomStats)
	var rooms []string
	for _, b := range beds {
		s, ok := stats[b.Room]
		if !ok {
			s = &roomStats{}
			stats[b.Room] = s
			rooms = append(rooms, b.Room)
		}
		s.total++
		switch b.Status {
		case model.BedOccupied:
			s.occupied++
		case model.BedCleaning:
			s.cleaning++
		}
	}
	sort.Strings(rooms)

	lines := make([]string, 0, len(rooms))
	for _, room := range rooms {
		s := stats[room]
		lines = append(lines, fmt.Sprintf(
			"  Room %s: %d/%d occupied, %d cleaning",
			room, s.occupied, s.total, s.cleaning,
		))
	}
	return lines
}
