// Package scene is a small retained-mode 3D scene graph for the ward view:
// box meshes grouped into tagged nodes, an orthographic isometric camera,
// damped orbit controls, a software renderer and ray picking.
package scene

import (
	"image/color"

	"cogentcore.org/core/math32"
)

// Kind is the coarse category of a tagged node.
type Kind string

const (
	KindBed       Kind = "bed"
	KindPatient   Kind = "patient"
	KindEquipment Kind = "equipment"
)

// EquipmentType identifies a piece of equipment.
type EquipmentType string

const (
	EquipmentMonitor    EquipmentType = "monitor"
	EquipmentIVStand    EquipmentType = "iv-stand"
	EquipmentVentilator EquipmentType = "ventilator"
)

// Tag marks the root node of a selectable entity. Equipment is only set
// for KindEquipment. Tag is comparable and used directly as a map key.
type Tag struct {
	Kind      Kind
	ID        string
	Equipment EquipmentType
}

func BedTag(id string) Tag     { return Tag{Kind: KindBed, ID: id} }
func PatientTag(id string) Tag { return Tag{Kind: KindPatient, ID: id} }
func EquipmentTag(kind EquipmentType, id string) Tag {
	return Tag{Kind: KindEquipment, ID: id, Equipment: kind}
}

// Geometry is an axis-aligned box centered on its node.
type Geometry struct {
	Size     math32.Vector3
	disposed bool
}

func NewBox(w, h, d float32) *Geometry {
	return &Geometry{Size: math32.Vec3(w, h, d)}
}

func (g *Geometry) Dispose()       { g.disposed = true }
func (g *Geometry) Disposed() bool { return g.disposed }

// Material describes how a mesh is shaded.
type Material struct {
	Color             color.NRGBA
	Emissive          color.NRGBA
	EmissiveIntensity float32
	Opacity           float32
	disposed          bool
}

func NewMaterial(c color.NRGBA) *Material {
	return &Material{Color: c, Opacity: 1}
}

func (m *Material) Dispose()       { m.disposed = true }
func (m *Material) Disposed() bool { return m.disposed }

// Mesh pairs a geometry with a material.
type Mesh struct {
	Geometry      *Geometry
	Material      *Material
	CastShadow    bool
	ReceiveShadow bool
}

// Node is an element of the scene graph. Transforms are translate and
// scale only; a node's world position is its parent's world position plus
// its own position scaled by the parent's world scale.
type Node struct {
	Name     string
	Position math32.Vector3
	Scale    math32.Vector3
	Mesh     *Mesh
	Tag      *Tag

	parent   *Node
	children []*Node
}

// NewGroup returns an empty node with unit scale.
func NewGroup(name string) *Node {
	return &Node{Name: name, Scale: math32.Vec3(1, 1, 1)}
}

// NewMeshNode returns a node drawing geo with mat.
func NewMeshNode(name string, geo *Geometry, mat *Material) *Node {
	n := NewGroup(name)
	n.Mesh = &Mesh{Geometry: geo, Material: mat, CastShadow: true}
	return n
}

func (n *Node) Parent() *Node      { return n.parent }
func (n *Node) Children() []*Node { return n.children }

// Add attaches children to n, detaching them from any previous parent.
func (n *Node) Add(children ...*Node) {
	for _, c := range children {
		if c.parent != nil {
			c.parent.Remove(c)
		}
		c.parent = n
		n.children = append(n.children, c)
	}
}

// Remove detaches child from n. It reports whether child was found.
func (n *Node) Remove(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// Walk visits n and its descendants depth first. Returning false from fn
// skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// WorldTransform returns the composed world position and scale of n.
func (n *Node) WorldTransform() (pos, scale math32.Vector3) {
	if n.parent == nil {
		return n.Position, n.Scale
	}
	ppos, pscale := n.parent.WorldTransform()
	return ppos.Add(n.Position.Mul(pscale)), pscale.Mul(n.Scale)
}

// MeshBBox returns the world bounding box of n's own mesh.
func (n *Node) MeshBBox() (math32.Box3, bool) {
	if n.Mesh == nil || n.Mesh.Geometry == nil {
		return math32.Box3{}, false
	}
	pos, scale := n.WorldTransform()
	half := n.Mesh.Geometry.Size.Mul(scale).MulScalar(0.5)
	return math32.Box3{Min: pos.Sub(half), Max: pos.Add(half)}, true
}

// WorldBBox returns the bounding box of every mesh under n.
func (n *Node) WorldBBox() (math32.Box3, bool) {
	bb := math32.B3Empty()
	found := false
	n.Walk(func(k *Node) bool {
		if mb, ok := k.MeshBBox(); ok {
			bb.ExpandByBox(mb)
			found = true
		}
		return true
	})
	return bb, found
}

// TaggedAncestor returns the nearest node at or above n carrying a tag.
func (n *Node) TaggedAncestor() *Node {
	for k := n; k != nil; k = k.parent {
		if k.Tag != nil {
			return k
		}
	}
	return nil
}

// Dispose releases every geometry and material under n.
func (n *Node) Dispose() {
	n.Walk(func(k *Node) bool {
		if k.Mesh != nil {
			if k.Mesh.Geometry != nil {
				k.Mesh.Geometry.Dispose()
			}
			if k.Mesh.Material != nil {
				k.Mesh.Material.Dispose()
			}
		}
		return true
	})
}

// Resources tracks the geometry and material handles owned by one stage.
type Resources struct {
	geometries map[*Geometry]struct{}
	materials  map[*Material]struct{}
}

func NewResources() *Resources {
	return &Resources{
		geometries: make(map[*Geometry]struct{}),
		materials:  make(map[*Material]struct{}),
	}
}

// Track registers every handle under n.
func (r *Resources) Track(n *Node) {
	n.Walk(func(k *Node) bool {
		if k.Mesh != nil {
			if k.Mesh.Geometry != nil {
				r.geometries[k.Mesh.Geometry] = struct{}{}
			}
			if k.Mesh.Material != nil {
				r.materials[k.Mesh.Material] = struct{}{}
			}
		}
		return true
	})
}

// Live returns the number of tracked handles that are not yet disposed.
func (r *Resources) Live() int {
	n := 0
	for g := range r.geometries {
		if !g.disposed {
			n++
		}
	}
	for m := range r.materials {
		if !m.disposed {
			n++
		}
	}
	return n
}

// Sweep forgets disposed handles.
func (r *Resources) Sweep() {
	for g := range r.geometries {
		if g.disposed {
			delete(r.geometries, g)
		}
	}
	for m := range r.materials {
		if m.disposed {
			delete(r.materials, m)
		}
	}
}

// DisposeAll disposes every tracked handle.
func (r *Resources) DisposeAll() {
	for g := range r.geometries {
		g.Dispose()
	}
	for m := range r.materials {
		m.Dispose()
	}
	r.Sweep()
}
