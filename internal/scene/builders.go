package scene

import (
	"fmt"
	"image/color"

	"cogentcore.org/core/math32"

	"github.com/piwi3910/WardView/internal/model"
)

// Theme selects the light or dark palette.
type Theme int

const (
	ThemeLight Theme = iota
	ThemeDark
)

func (t Theme) String() string {
	if t == ThemeDark {
		return "dark"
	}
	return "light"
}

// Palette holds the non-status colors for a theme.
type Palette struct {
	Background color.NRGBA
	Slab       color.NRGBA
	Wall       color.NRGBA
	BedFrame   color.NRGBA
	Mattress   color.NRGBA
	Pillow     color.NRGBA
	Skin       color.NRGBA
	Metal      color.NRGBA
	Screen     color.NRGBA
}

var palettes = map[Theme]Palette{
	ThemeLight: {
		Background: color.NRGBA{R: 236, G: 240, B: 245, A: 255},
		Slab:       color.NRGBA{R: 214, G: 219, B: 226, A: 255},
		Wall:       color.NRGBA{R: 190, G: 198, B: 210, A: 255},
		BedFrame:   color.NRGBA{R: 120, G: 130, B: 145, A: 255},
		Mattress:   color.NRGBA{R: 250, G: 250, B: 252, A: 255},
		Pillow:     color.NRGBA{R: 225, G: 235, B: 250, A: 255},
		Skin:       color.NRGBA{R: 241, G: 194, B: 160, A: 255},
		Metal:      color.NRGBA{R: 170, G: 175, B: 185, A: 255},
		Screen:     color.NRGBA{R: 30, G: 40, B: 55, A: 255},
	},
	ThemeDark: {
		Background: color.NRGBA{R: 17, G: 24, B: 39, A: 255},
		Slab:       color.NRGBA{R: 45, G: 55, B: 72, A: 255},
		Wall:       color.NRGBA{R: 60, G: 72, B: 92, A: 255},
		BedFrame:   color.NRGBA{R: 90, G: 100, B: 118, A: 255},
		Mattress:   color.NRGBA{R: 200, G: 206, B: 215, A: 255},
		Pillow:     color.NRGBA{R: 170, G: 185, B: 210, A: 255},
		Skin:       color.NRGBA{R: 210, G: 165, B: 135, A: 255},
		Metal:      color.NRGBA{R: 130, G: 138, B: 150, A: 255},
		Screen:     color.NRGBA{R: 10, G: 14, B: 20, A: 255},
	},
}

// PaletteFor returns the palette of theme t.
func PaletteFor(t Theme) Palette {
	return palettes[t]
}

// Status colors shared by the scene, the legend and the exports.
var (
	BedStatusColors = map[model.BedStatus]color.NRGBA{
		model.BedAvailable: {R: 76, G: 175, B: 80, A: 255},  // green
		model.BedOccupied:  {R: 255, G: 152, B: 0, A: 255},  // orange
		model.BedCleaning:  {R: 33, G: 150, B: 243, A: 255}, // blue
	}
	PatientStatusColors = map[model.PatientStatus]color.NRGBA{
		model.PatientCritical:   {R: 244, G: 67, B: 54, A: 255},  // red
		model.PatientStable:     {R: 76, G: 175, B: 80, A: 255},  // green
		model.PatientDischarged: {R: 158, G: 158, B: 158, A: 255}, // gray
	}
)

// Patient emissive intensities.
const (
	EmissiveSelected   = 0.6
	EmissiveUnselected = 0.15
)

func vec(p model.Vec3) math32.Vector3 {
	return math32.Vec3(float32(p.X), float32(p.Y), float32(p.Z))
}

func box(name string, w, h, d float32, c color.NRGBA, x, y, z float32) *Node {
	n := NewMeshNode(name, NewBox(w, h, d), NewMaterial(c))
	n.Position = math32.Vec3(x, y, z)
	return n
}

// BuildBed returns a bed group tagged with id: frame, mattress, pillow and
// headboard. The bed's own status is shown by BuildBedIndicator.
func BuildBed(pos model.Vec3, id string, theme Theme) *Node {
	pal := PaletteFor(theme)
	g := NewGroup("bed:" + id)
	g.Position = vec(pos)
	tag := BedTag(id)
	g.Tag = &tag

	g.Add(
		box("frame", 1.8, 0.4, 3.0, pal.BedFrame, 0, 0.4, 0),
		box("mattress", 1.6, 0.25, 2.8, pal.Mattress, 0, 0.72, 0),
		box("pillow", 1.0, 0.15, 0.5, pal.Pillow, 0, 0.92, -1.05),
		box("headboard", 1.8, 1.0, 0.12, pal.BedFrame, 0, 0.9, -1.5),
	)
	return g
}

// BuildBedIndicator returns the status light placed at the foot of a bed.
func BuildBedIndicator(status model.BedStatus, theme Theme) *Node {
	c, ok := BedStatusColors[status]
	if !ok {
		c = PaletteFor(theme).Metal
	}
	n := box("indicator", 0.35, 0.35, 0.35, c, 0.65, 1.05, 1.35)
	n.Mesh.Material.Emissive = c
	n.Mesh.Material.EmissiveIntensity = 0.5
	n.Mesh.CastShadow = false
	return n
}

// BuildPatient returns a patient group tagged with id lying at pos. Color
// and emissive intensity follow status and selection; critical patients
// get an IV stand.
func BuildPatient(pos model.Vec3, id string, status model.PatientStatus, selected bool, theme Theme) *Node {
	pal := PaletteFor(theme)
	c, ok := PatientStatusColors[status]
	if !ok {
		c = PatientStatusColors[model.PatientDischarged]
	}
	intensity := float32(EmissiveUnselected)
	if selected {
		intensity = EmissiveSelected
	}

	g := NewGroup("patient:" + id)
	g.Position = vec(pos)
	tag := PatientTag(id)
	g.Tag = &tag

	body := box("body", 0.9, 0.35, 1.7, c, 0, 1.05, 0.25)
	body.Mesh.Material.Emissive = c
	body.Mesh.Material.EmissiveIntensity = intensity

	head := box("head", 0.45, 0.4, 0.45, pal.Skin, 0, 1.15, -0.95)
	head.Mesh.Material.Emissive = c
	head.Mesh.Material.EmissiveIntensity = intensity / 2

	g.Add(body, head)

	if status == model.PatientCritical {
		iv := BuildEquipment(EquipmentIVStand, "iv:"+id, model.Vec3{X: -1.25, Y: 0, Z: -1.0}, theme)
		// accessory of the patient, not separately selectable
		iv.Tag = nil
		g.Add(iv)
	}
	return g
}

// BuildEquipment returns a tagged equipment group of the given kind.
func BuildEquipment(kind EquipmentType, id string, pos model.Vec3, theme Theme) *Node {
	pal := PaletteFor(theme)
	g := NewGroup(fmt.Sprintf("%s:%s", kind, id))
	g.Position = vec(pos)
	tag := EquipmentTag(kind, id)
	g.Tag = &tag

	switch kind {
	case EquipmentIVStand:
		g.Add(
			box("base", 0.5, 0.08, 0.5, pal.Metal, 0, 0.04, 0),
			box("pole", 0.08, 2.2, 0.08, pal.Metal, 0, 1.15, 0),
			box("bag", 0.3, 0.45, 0.12, color.NRGBA{R: 200, G: 230, B: 255, A: 200}, 0, 2.05, 0),
		)
	case EquipmentMonitor:
		screen := box("screen", 0.8, 0.55, 0.1, pal.Screen, 0, 1.6, 0)
		screen.Mesh.Material.Emissive = color.NRGBA{R: 0, G: 200, B: 120, A: 255}
		screen.Mesh.Material.EmissiveIntensity = 0.35
		g.Add(
			box("stand", 0.12, 1.3, 0.12, pal.Metal, 0, 0.65, 0),
			screen,
		)
	case EquipmentVentilator:
		g.Add(
			box("cabinet", 0.6, 1.1, 0.5, pal.Metal, 0, 0.55, 0),
			box("panel", 0.45, 0.3, 0.05, pal.Screen, 0, 0.9, 0.26),
		)
	default:
		g.Add(box("unknown", 0.5, 0.5, 0.5, pal.Metal, 0, 0.25, 0))
	}
	return g
}

// Slab margins around the bed grid.
const slabMargin = 2.0

// BuildFloorSlab returns the untagged floor slab sized to hold every bed
// of floor, with a low wall between rooms.
func BuildFloorSlab(floor model.Floor, beds []model.Bed, theme Theme) *Node {
	pal := PaletteFor(theme)
	g := NewGroup("floor:" + floor.ID)

	minX, maxX, minZ, maxZ := 0.0, 0.0, 0.0, 0.0
	rooms := map[string]float64{}
	first := true
	for _, b := range beds {
		if b.Floor != floor.Type {
			continue
		}
		if first {
			minX, maxX, minZ, maxZ = b.Position.X, b.Position.X, b.Position.Z, b.Position.Z
			first = false
		}
		minX = min(minX, b.Position.X)
		maxX = max(maxX, b.Position.X)
		minZ = min(minZ, b.Position.Z)
		maxZ = max(maxZ, b.Position.Z)
		if x, ok := rooms[b.Room]; !ok || b.Position.X < x {
			rooms[b.Room] = b.Position.X
		}
	}

	y := float32(floor.Level-1) * model.FloorHeight
	w := float32(maxX-minX) + 2*slabMargin
	d := float32(maxZ-minZ) + 2*slabMargin + 1
	cx := float32(minX+maxX) / 2
	cz := float32(minZ+maxZ) / 2

	slab := box("slab", w, 0.2, d, pal.Slab, cx, y-0.1, cz)
	slab.Mesh.CastShadow = false
	slab.Mesh.ReceiveShadow = true
	g.Add(slab)

	for room, x := range rooms {
		if x <= minX {
			continue
		}
		wall := box("wall:"+room, 0.1, 0.8, d-0.4, pal.Wall, float32(x)-(model.RoomWidth-model.BedPitchX)/2, y+0.4, cz)
		wall.Mesh.Material.Opacity = 0.6
		wall.Mesh.CastShadow = false
		g.Add(wall)
	}
	return g
}
