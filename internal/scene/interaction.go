package scene

import (
	"cogentcore.org/core/math32"
)

// Cursor is the pointer shape requested by the interaction layer.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorPointer
)

// Hover affordances.
const (
	HoverScale = 1.05
	HoverLift  = 0.3
)

// Hit is the nearest tagged object under a ray.
type Hit struct {
	Tag      Tag
	Node     *Node
	Distance float32
}

// Pick casts a ray through the NDC point (x, y) against every interactive
// object and returns the nearest one. Meshes are tested individually, so a
// hit on a child resolves to its tagged ancestor. Ancestors that are no
// longer in objects are ignored.
func Pick(cam *Camera, objects map[Tag]*Node, x, y float32) (Hit, bool) {
	ray := cam.Ray(x, y)
	var best Hit
	found := false
	for _, root := range objects {
		root.Walk(func(n *Node) bool {
			bb, ok := n.MeshBBox()
			if !ok {
				return true
			}
			pt, ok := ray.IntersectBox(bb)
			if !ok {
				return true
			}
			d := pt.DistanceTo(ray.Origin)
			if found && d >= best.Distance {
				return true
			}
			anc := n.TaggedAncestor()
			if anc == nil {
				return true
			}
			if live, ok := objects[*anc.Tag]; !ok || live != anc {
				return true
			}
			best = Hit{Tag: *anc.Tag, Node: anc, Distance: d}
			found = true
			return true
		})
	}
	return best, found
}

// Interaction tracks the hovered object and dispatches clicks. It is idle
// when nothing is hovered.
type Interaction struct {
	OnBedSelect     func(id string)
	OnPatientSelect func(id string)

	hovered *Node
	tag     Tag
	// saved transform of the hovered node
	pos   math32.Vector3
	scale math32.Vector3
}

// Hovered returns the tag of the hovered object, if any.
func (in *Interaction) Hovered() (Tag, bool) {
	if in.hovered == nil {
		return Tag{}, false
	}
	return in.tag, true
}

// PointerMove updates the hover state for a pointer at (px, py) in a
// w x h viewport and returns the cursor to show.
func (in *Interaction) PointerMove(cam *Camera, objects map[Tag]*Node, px, py, w, h float32) Cursor {
	x, y := ToNDC(px, py, w, h)
	hit, ok := Pick(cam, objects, x, y)
	if !ok {
		in.Leave()
		return CursorDefault
	}
	if hit.Node != in.hovered {
		in.Leave()
		in.enter(hit)
	}
	return CursorPointer
}

// Click resolves the object under (px, py) and calls the matching select
// callback. It returns the tag that was clicked.
func (in *Interaction) Click(cam *Camera, objects map[Tag]*Node, px, py, w, h float32) (Tag, bool) {
	x, y := ToNDC(px, py, w, h)
	hit, ok := Pick(cam, objects, x, y)
	if !ok {
		return Tag{}, false
	}
	switch hit.Tag.Kind {
	case KindBed:
		if in.OnBedSelect != nil {
			in.OnBedSelect(hit.Tag.ID)
		}
	case KindPatient:
		if in.OnPatientSelect != nil {
			in.OnPatientSelect(hit.Tag.ID)
		}
	}
	return hit.Tag, true
}

// Reset forgets the hovered object without touching it. Call after the
// objects it points to have been replaced.
func (in *Interaction) Reset() {
	in.hovered = nil
	in.tag = Tag{}
}

func (in *Interaction) enter(hit Hit) {
	n := hit.Node
	in.hovered = n
	in.tag = hit.Tag
	in.pos = n.Position
	in.scale = n.Scale
	switch hit.Tag.Kind {
	case KindBed:
		n.Scale = n.Scale.MulScalar(HoverScale)
	case KindPatient:
		n.Position.Y += HoverLift
	}
}

// Leave reverts the hover affordance and returns to idle.
func (in *Interaction) Leave() {
	if in.hovered == nil {
		return
	}
	in.hovered.Position = in.pos
	in.hovered.Scale = in.scale
	in.Reset()
}
