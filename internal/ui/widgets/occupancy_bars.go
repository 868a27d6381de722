package widgets

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/WardView/internal/model"
	"github.com/piwi3910/WardView/internal/scene"
)

const (
	barHeight  = 14
	barGap     = 22
	labelWidth = 90
)

var colorBarTrack = color.NRGBA{R: 200, G: 200, B: 200, A: 120}

// OccupancyBars draws one stacked bar per floor splitting its beds into
// occupied, cleaning and available.
type OccupancyBars struct {
	widget.BaseWidget
	summaries []model.FloorSummary
	width     float32
}

// NewOccupancyBars creates the bar chart for summaries, width units wide.
func NewOccupancyBars(summaries []model.FloorSummary, width float32) *OccupancyBars {
	ob := &OccupancyBars{summaries: summaries, width: width}
	ob.ExtendBaseWidget(ob)
	return ob
}

// SetSummaries replaces the data and redraws.
func (ob *OccupancyBars) SetSummaries(summaries []model.FloorSummary) {
	ob.summaries = summaries
	ob.Refresh()
}

func (ob *OccupancyBars) CreateRenderer() fyne.WidgetRenderer {
	r := &occupancyBarsRenderer{ob: ob}
	r.rebuild()
	return r
}

type occupancyBarsRenderer struct {
	ob      *OccupancyBars
	objects []fyne.CanvasObject
}

// stack order, left to right
var barStatuses = []model.BedStatus{model.BedOccupied, model.BedCleaning, model.BedAvailable}

func (r *occupancyBarsRenderer) rebuild() {
	r.objects = nil
	ob := r.ob
	trackW := ob.width - labelWidth
	if trackW <= 0 {
		return
	}

	for i, s := range ob.summaries {
		y := float32(i) * barGap

		name := canvas.NewText(string(s.Floor.Type), theme.ForegroundColor())
		name.TextSize = 11
		name.Move(fyne.NewPos(0, y))
		r.objects = append(r.objects, name)

		track := canvas.NewRectangle(colorBarTrack)
		track.Resize(fyne.NewSize(trackW, barHeight))
		track.Move(fyne.NewPos(labelWidth, y))
		r.objects = append(r.objects, track)

		if s.Total == 0 {
			continue
		}
		x := float32(labelWidth)
		for _, st := range barStatuses {
			n := s.Beds[st]
			if n == 0 {
				continue
			}
			w := trackW * float32(n) / float32(s.Total)
			seg := canvas.NewRectangle(scene.BedStatusColors[st])
			seg.Resize(fyne.NewSize(w, barHeight))
			seg.Move(fyne.NewPos(x, y))
			r.objects = append(r.objects, seg)
			x += w
		}

		pct := canvas.NewText(fmt.Sprintf("%.0f%%", s.Occupancy), color.White)
		pct.TextSize = 10
		pct.Move(fyne.NewPos(labelWidth+3, y))
		r.objects = append(r.objects, pct)
	}
}

func (r *occupancyBarsRenderer) Layout(size fyne.Size)        {}
func (r *occupancyBarsRenderer) Refresh()                     { r.rebuild() }
func (r *occupancyBarsRenderer) Destroy()                     {}
func (r *occupancyBarsRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *occupancyBarsRenderer) MinSize() fyne.Size {
	return fyne.NewSize(r.ob.width, float32(len(r.ob.summaries))*barGap)
}
