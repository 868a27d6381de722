package widgets

import (
	"math/rand"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/WardView/internal/model"
)

func TestFloorPlan_TapSelectsBed(t *testing.T) {
	test.NewTempApp(t)
	h := model.Generate(rand.New(rand.NewSource(4)))
	f := h.Floors[0]
	view := model.Filter(h, f.ID)

	fp := NewFloorPlan(f, h.Beds, "", 600, 300)
	require.Len(t, fp.beds, len(view.Beds), "only beds of the floor are drawn")

	var got string
	fp.OnBedTapped = func(id string) { got = id }

	// center of the second bed in widget coordinates
	b := view.Beds[1]
	minX, minZ, _, _ := fp.bounds()
	scale := fp.scale()
	pos := fyne.NewPos(float32(b.Position.X-minX)*scale, float32(b.Position.Z-minZ)*scale)
	fp.Tapped(&fyne.PointEvent{Position: pos})
	assert.Equal(t, b.ID, got)

	got = ""
	fp.Tapped(&fyne.PointEvent{Position: fyne.NewPos(1, 1)})
	assert.Empty(t, got, "tap on the slab margin selects nothing")
}

func TestFloorPlan_FitsMaxSize(t *testing.T) {
	test.NewTempApp(t)
	h := model.Generate(rand.New(rand.NewSource(4)))

	fp := NewFloorPlan(h.Floors[2], h.Beds, "", 600, 300)
	size := test.WidgetRenderer(fp).MinSize()
	assert.LessOrEqual(t, size.Width, float32(600.5))
	assert.LessOrEqual(t, size.Height, float32(300.5))
	assert.True(t, size.Width > 599 || size.Height > 299, "one side fills its bound")
}

func TestFloorPlan_SelectedBedOutlined(t *testing.T) {
	test.NewTempApp(t)
	h := model.Generate(rand.New(rand.NewSource(4)))
	f := h.Floors[0]
	b := model.Filter(h, f.ID).Beds[0]

	plain := len(test.WidgetRenderer(NewFloorPlan(f, h.Beds, "", 600, 300)).Objects())
	selected := len(test.WidgetRenderer(NewFloorPlan(f, h.Beds, b.ID, 600, 300)).Objects())
	assert.Equal(t, plain, selected, "selection restyles the outline without adding objects")
}

func TestBuildRoomBreakdown(t *testing.T) {
	beds := []model.Bed{
		{ID: "b1", Room: "ICU-102", Status: model.BedOccupied},
		{ID: "b2", Room: "ICU-101", Status: model.BedCleaning},
		{ID: "b3", Room: "ICU-101", Status: model.BedOccupied},
	}
	lines := buildRoomBreakdown(beds)
	require.Len(t, lines, 2)
	assert.Equal(t, "  Room ICU-101: 1/2 occupied, 1 cleaning", lines[0])
	assert.Equal(t, "  Room ICU-102: 1/1 occupied, 0 cleaning", lines[1])
}

func TestOccupancyBars_OneSegmentPerStatus(t *testing.T) {
	test.NewTempApp(t)
	summaries := []model.FloorSummary{{
		Floor:     model.Floor{Type: model.FloorICU},
		Beds:      map[model.BedStatus]int{model.BedOccupied: 2, model.BedAvailable: 2},
		Total:     4,
		Occupancy: 50,
	}}
	ob := NewOccupancyBars(summaries, 290)
	r := test.WidgetRenderer(ob)

	// name, track, two segments, percentage
	assert.Len(t, r.Objects(), 5)
	assert.Equal(t, fyne.NewSize(290, barGap), r.MinSize())

	ob.SetSummaries(nil)
	assert.Empty(t, r.Objects())
}
