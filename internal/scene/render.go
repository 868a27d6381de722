package scene

import (
	"image"
	"image/color"
	"math"
	"sort"

	"cogentcore.org/core/math32"
	"github.com/fogleman/gg"

	"github.com/piwi3910/WardView/internal/model"
)

// AmbientLight lights every face evenly.
type AmbientLight struct {
	Color     color.NRGBA
	Intensity float32
}

// DirectionalLight shines from Position towards Target.
type DirectionalLight struct {
	Color      color.NRGBA
	Intensity  float32
	Position   math32.Vector3
	Target     math32.Vector3
	CastShadow bool
}

// Dir returns the unit vector pointing from the surface to the light.
func (l DirectionalLight) Dir() math32.Vector3 {
	return l.Position.Sub(l.Target).Normal()
}

// PointLight falls off with distance; Distance 0 means no falloff.
type PointLight struct {
	Color     color.NRGBA
	Intensity float32
	Position  math32.Vector3
	Distance  float32
}

// Lights is the fixed light rig of a stage.
type Lights struct {
	Ambient     AmbientLight
	Directional DirectionalLight
	Point       PointLight
}

// Draw layers within one storey.
const (
	layerReceiver = iota
	layerShadow
	layerObject
)

// A node belongs to the storey its bottom sits in. The bias lifts slabs,
// which hang just below the storey base, into their own storey.
const levelBias = 0.25

// Shadow softness: passes drawn from widest and faintest to the core.
var shadowPasses = []struct {
	grow  float32
	alpha float64
}{
	{0.35, 0.08},
	{0.15, 0.12},
	{0, 0.16},
}

type polygon struct {
	level int
	layer int
	depth float32 // node depth, far first
	face  float32 // face depth inside a node
	pts   [][2]float64
	col   color.NRGBA
}

// Renderer rasterizes a scene into an RGBA frame with a painter's
// algorithm over box faces.
type Renderer struct {
	Background color.NRGBA
	Exposure   float32

	width, height int
	dc            *gg.Context
}

// NewRenderer allocates a w x h frame buffer.
func NewRenderer(w, h int) *Renderer {
	r := &Renderer{Exposure: 1.6}
	r.SetSize(w, h)
	return r
}

// SetSize reallocates the frame buffer when the size changes.
func (r *Renderer) SetSize(w, h int) {
	w, h = max(w, 1), max(h, 1)
	if r.dc != nil && w == r.width && h == r.height {
		return
	}
	r.width, r.height = w, h
	r.dc = gg.NewContext(w, h)
}

// Size returns the frame buffer size in pixels.
func (r *Renderer) Size() (w, h int) { return r.width, r.height }

// Dispose releases the frame buffer. Render on a disposed renderer
// returns nil.
func (r *Renderer) Dispose() { r.dc = nil }

func (r *Renderer) Disposed() bool { return r.dc == nil }

// Render draws root as seen by cam and returns the frame.
func (r *Renderer) Render(root *Node, cam *Camera, lights Lights) image.Image {
	if r.dc == nil {
		return nil
	}
	dc := r.dc
	dc.SetColor(r.Background)
	dc.Clear()
	if root == nil || cam == nil {
		return dc.Image()
	}

	fwd, _, _ := cam.Basis()
	var meshes, receivers []*Node
	root.Walk(func(n *Node) bool {
		if n.Mesh == nil || n.Mesh.Geometry == nil || n.Mesh.Material == nil {
			return true
		}
		if n.Mesh.Geometry.Disposed() || n.Mesh.Material.Disposed() {
			return true
		}
		meshes = append(meshes, n)
		if n.Mesh.ReceiveShadow {
			receivers = append(receivers, n)
		}
		return true
	})

	var polys []polygon
	for _, n := range meshes {
		bb, _ := n.MeshBBox()
		level := storey(bb)
		layer := layerObject
		if n.Mesh.ReceiveShadow {
			layer = layerReceiver
		}
		_, _, depth := cam.Project(bb.Center())
		for _, f := range boxFaces(bb) {
			if f.normal.Dot(fwd) >= 0 {
				continue
			}
			pts := make([][2]float64, len(f.corners))
			var fd float32
			for i, c := range f.corners {
				pts[i] = r.toPixel(cam, c)
				_, _, d := cam.Project(c)
				fd += d
			}
			polys = append(polys, polygon{
				level: level,
				layer: layer,
				depth: depth,
				face:  fd / float32(len(f.corners)),
				pts:   pts,
				col:   r.shade(n.Mesh.Material, f.normal, f.center, lights),
			})
		}
		if n.Mesh.CastShadow && lights.Directional.CastShadow {
			polys = append(polys, r.shadow(cam, bb, receivers, lights.Directional)...)
		}
	}

	sort.SliceStable(polys, func(i, j int) bool {
		a, b := polys[i], polys[j]
		if a.level != b.level {
			return a.level < b.level
		}
		if a.layer != b.layer {
			return a.layer < b.layer
		}
		if a.depth != b.depth {
			return a.depth > b.depth
		}
		return a.face > b.face
	})

	for _, p := range polys {
		dc.NewSubPath()
		for i, pt := range p.pts {
			if i == 0 {
				dc.MoveTo(pt[0], pt[1])
			} else {
				dc.LineTo(pt[0], pt[1])
			}
		}
		dc.ClosePath()
		dc.SetColor(p.col)
		dc.Fill()
	}
	return dc.Image()
}

func storey(bb math32.Box3) int {
	return int(math32.Floor((bb.Min.Y + levelBias) / model.FloorHeight))
}

func (r *Renderer) toPixel(cam *Camera, p math32.Vector3) [2]float64 {
	x, y, _ := cam.Project(p)
	px, py := FromNDC(x, y, float32(r.width), float32(r.height))
	return [2]float64{float64(px), float64(py)}
}

// shadow returns the soft footprint of bb on the highest receiver below it,
// projected along the directional light.
func (r *Renderer) shadow(cam *Camera, bb math32.Box3, receivers []*Node, light DirectionalLight) []polygon {
	center := bb.Center()
	var ground math32.Box3
	found := false
	for _, rc := range receivers {
		rb, _ := rc.MeshBBox()
		if center.X < rb.Min.X || center.X > rb.Max.X || center.Z < rb.Min.Z || center.Z > rb.Max.Z {
			continue
		}
		if rb.Max.Y > bb.Min.Y+0.01 {
			continue
		}
		if !found || rb.Max.Y > ground.Max.Y {
			ground = rb
			found = true
		}
	}
	if !found {
		return nil
	}

	dir := light.Dir()
	if dir.Y <= 0.05 {
		return nil
	}
	y := ground.Max.Y + 0.005
	// Bounding rectangle of the box corners cast onto the plane.
	minX, maxX := math32.Infinity, -math32.Infinity
	minZ, maxZ := math32.Infinity, -math32.Infinity
	for _, c := range boxCorners(bb) {
		t := (c.Y - y) / dir.Y
		px := c.X - dir.X*t
		pz := c.Z - dir.Z*t
		minX, maxX = min(minX, px), max(maxX, px)
		minZ, maxZ = min(minZ, pz), max(maxZ, pz)
	}
	minX, maxX = max(minX, ground.Min.X), min(maxX, ground.Max.X)
	minZ, maxZ = max(minZ, ground.Min.Z), min(maxZ, ground.Max.Z)
	if minX >= maxX || minZ >= maxZ {
		return nil
	}

	_, _, depth := cam.Project(math32.Vec3((minX+maxX)/2, y, (minZ+maxZ)/2))
	level := storey(ground)
	out := make([]polygon, 0, len(shadowPasses))
	for _, pass := range shadowPasses {
		g := pass.grow
		quad := []math32.Vector3{
			math32.Vec3(minX-g, y, minZ-g),
			math32.Vec3(maxX+g, y, minZ-g),
			math32.Vec3(maxX+g, y, maxZ+g),
			math32.Vec3(minX-g, y, maxZ+g),
		}
		pts := make([][2]float64, len(quad))
		for i, q := range quad {
			pts[i] = r.toPixel(cam, q)
		}
		out = append(out, polygon{
			level: level,
			layer: layerShadow,
			depth: depth,
			face:  -float32(pass.grow),
			pts:   pts,
			col:   color.NRGBA{A: uint8(pass.alpha * 255)},
		})
	}
	return out
}

// shade lights a face in linear space and maps the result back to sRGB
// with Reinhard tone mapping.
func (r *Renderer) shade(m *Material, normal, at math32.Vector3, lights Lights) color.NRGBA {
	base := toLinear(m.Color)
	light := toLinear(lights.Ambient.Color).MulScalar(lights.Ambient.Intensity)

	dl := lights.Directional
	if lambert := normal.Dot(dl.Dir()); lambert > 0 {
		light = light.Add(toLinear(dl.Color).MulScalar(dl.Intensity * lambert))
	}

	pl := lights.Point
	toLight := pl.Position.Sub(at)
	if dist := toLight.Length(); dist > 0 && pl.Intensity > 0 {
		if lambert := normal.Dot(toLight.MulScalar(1 / dist)); lambert > 0 {
			falloff := float32(1)
			if pl.Distance > 0 {
				falloff = math32.Clamp(1-dist/pl.Distance, 0, 1)
				falloff *= falloff
			}
			light = light.Add(toLinear(pl.Color).MulScalar(pl.Intensity * lambert * falloff))
		}
	}

	out := base.Mul(light).Add(toLinear(m.Emissive).MulScalar(m.EmissiveIntensity))
	out = out.MulScalar(r.Exposure)
	return color.NRGBA{
		R: toSRGB(out.X),
		G: toSRGB(out.Y),
		B: toSRGB(out.Z),
		A: uint8(math32.Clamp(m.Opacity, 0, 1) * float32(m.Color.A)),
	}
}

func toLinear(c color.NRGBA) math32.Vector3 {
	f := func(v uint8) float32 { return math32.Pow(float32(v)/255, 2.2) }
	return math32.Vec3(f(c.R), f(c.G), f(c.B))
}

func toSRGB(v float32) uint8 {
	v = v / (1 + v)
	return uint8(math.Round(float64(math32.Pow(v, 1/2.2) * 255)))
}

type face struct {
	normal  math32.Vector3
	center  math32.Vector3
	corners [4]math32.Vector3
}

func boxCorners(b math32.Box3) [8]math32.Vector3 {
	lo, hi := b.Min, b.Max
	return [8]math32.Vector3{
		math32.Vec3(lo.X, lo.Y, lo.Z),
		math32.Vec3(hi.X, lo.Y, lo.Z),
		math32.Vec3(hi.X, lo.Y, hi.Z),
		math32.Vec3(lo.X, lo.Y, hi.Z),
		math32.Vec3(lo.X, hi.Y, lo.Z),
		math32.Vec3(hi.X, hi.Y, lo.Z),
		math32.Vec3(hi.X, hi.Y, hi.Z),
		math32.Vec3(lo.X, hi.Y, hi.Z),
	}
}

func boxFaces(b math32.Box3) [6]face {
	c := boxCorners(b)
	mk := func(n math32.Vector3, i, j, k, l int) face {
		ctr := c[i].Add(c[j]).Add(c[k]).Add(c[l]).MulScalar(0.25)
		return face{normal: n, center: ctr, corners: [4]math32.Vector3{c[i], c[j], c[k], c[l]}}
	}
	return [6]face{
		mk(math32.Vec3(0, -1, 0), 0, 1, 2, 3),
		mk(math32.Vec3(0, 1, 0), 4, 5, 6, 7),
		mk(math32.Vec3(0, 0, -1), 0, 1, 5, 4),
		mk(math32.Vec3(0, 0, 1), 3, 2, 6, 7),
		mk(math32.Vec3(-1, 0, 0), 0, 3, 7, 4),
		mk(math32.Vec3(1, 0, 0), 1, 2, 6, 5),
	}
}
