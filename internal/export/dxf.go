package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/WardView/internal/model"
)

// Layer names of the floor plan drawing.
const (
	LayerFloors = "FLOORS"
	LayerRooms  = "ROOM_LABELS"
)

// BedLayer returns the layer holding outlines of beds with status s.
func BedLayer(s model.BedStatus) string {
	return "BEDS_" + string(s)
}

var bedLayerColors = map[model.BedStatus]color.ColorNumber{
	model.BedAvailable: color.Green,
	model.BedOccupied:  color.Yellow,
	model.BedCleaning:  color.Blue,
}

// planGap separates floors laid side by side, in scene units.
const planGap = 10.0

// ExportFloorPlanDXF writes a 2D plan of one floor, or of every floor when
// floorID is empty, in scene units. Each bed is a closed polyline on the
// layer of its status; room labels sit on their own layer. Multiple floors
// are laid out left to right by level.
func ExportFloorPlanDXF(path string, h model.Hospital, floorID string) error {
	var floors []model.Floor
	if floorID == "" {
		floors = h.Floors
	} else if f, ok := h.FindFloor(floorID); ok {
		floors = []model.Floor{f}
	}

	d := dxf.NewDrawing()
	if _, err := d.AddLayer(LayerFloors, color.White, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("add layer %s: %w", LayerFloors, err)
	}
	if _, err := d.AddLayer(LayerRooms, color.Cyan, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("add layer %s: %w", LayerRooms, err)
	}
	for _, s := range model.BedStatuses {
		if _, err := d.AddLayer(BedLayer(s), bedLayerColors[s], dxf.DefaultLineType, false); err != nil {
			return fmt.Errorf("add layer %s: %w", BedLayer(s), err)
		}
	}

	offset := 0.0
	drawn := 0
	for _, f := range floors {
		beds := model.Filter(h, f.ID).Beds
		if len(beds) == 0 {
			continue
		}
		width, err := drawFloor(d, f, beds, offset)
		if err != nil {
			return fmt.Errorf("draw floor %s: %w", f.ID, err)
		}
		offset += width + planGap
		drawn += len(beds)
	}
	if drawn == 0 {
		return ErrEmptyHospital
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("save dxf: %w", err)
	}
	return nil
}

// drawFloor draws f with its left edge at x = offset and returns its width.
// DXF y grows upward, so scene z is negated.
func drawFloor(d *drawing.Drawing, f model.Floor, beds []model.Bed, offset float64) (float64, error) {
	minX, maxX := beds[0].Position.X, beds[0].Position.X
	minZ, maxZ := beds[0].Position.Z, beds[0].Position.Z
	for _, b := range beds {
		minX, maxX = min(minX, b.Position.X), max(maxX, b.Position.X)
		minZ, maxZ = min(minZ, b.Position.Z), max(maxZ, b.Position.Z)
	}
	const pad = 2.0
	minX -= bedFootW/2 + pad
	maxX += bedFootW/2 + pad
	minZ -= bedFootD/2 + pad
	maxZ += bedFootD/2 + pad
	dx := offset - minX

	if err := d.ChangeLayer(LayerFloors); err != nil {
		return 0, err
	}
	if _, err := d.LwPolyline(true, rect(minX+dx, -maxZ, maxX+dx, -minZ)...); err != nil {
		return 0, err
	}
	if _, err := d.Text(fmt.Sprintf("%s (L%d)", f.Name, f.Level), minX+dx, -minZ+0.5, 0, 1.0); err != nil {
		return 0, err
	}

	labelled := make(map[string]bool)
	for _, b := range beds {
		if err := d.ChangeLayer(BedLayer(b.Status)); err != nil {
			return 0, err
		}
		x, z := b.Position.X+dx, b.Position.Z
		if _, err := d.LwPolyline(true, rect(x-bedFootW/2, -(z+bedFootD/2), x+bedFootW/2, -(z-bedFootD/2))...); err != nil {
			return 0, err
		}
		if labelled[b.Room] {
			continue
		}
		labelled[b.Room] = true
		if err := d.ChangeLayer(LayerRooms); err != nil {
			return 0, err
		}
		if _, err := d.Text(b.Room, x-bedFootW/2, -(z-bedFootD/2)+0.3, 0, 0.6); err != nil {
			return 0, err
		}
	}
	return maxX - minX, nil
}

// rect returns the four corners of an axis-aligned rectangle,
// counter-clockwise from (x1, y1).
func rect(x1, y1, x2, y2 float64) [][]float64 {
	return [][]float64{{x1, y1}, {x2, y1}, {x2, y2}, {x1, y2}}
}
