package scene

import (
	"cogentcore.org/core/math32"
)

// DefaultFrustum is the world height visible at zoom 1.
const DefaultFrustum = 40

// Camera is an orthographic camera. Parallel projection with the default
// pose gives the isometric look: no foreshortening with distance.
type Camera struct {
	Position math32.Vector3
	Target   math32.Vector3
	Up       math32.Vector3
	Zoom     float32
	Frustum  float32

	// Projection bounds at zoom 1, recomputed by SetAspect.
	Left, Right, Top, Bottom float32
	Near, Far                float32
}

// NewCamera returns a camera with projection bounds for the given aspect.
func NewCamera(aspect float32) *Camera {
	c := &Camera{
		Up:      math32.Vec3(0, 1, 0),
		Zoom:    1,
		Frustum: DefaultFrustum,
		Near:    0.1,
		Far:     1000,
	}
	c.SetAspect(aspect)
	return c
}

// SetAspect recomputes the projection bounds for width/height aspect.
func (c *Camera) SetAspect(aspect float32) {
	if aspect <= 0 {
		aspect = 1
	}
	half := c.Frustum / 2
	c.Left = -half * aspect
	c.Right = half * aspect
	c.Top = half
	c.Bottom = -half
}

// LookAt points the camera at target from pos.
func (c *Camera) LookAt(pos, target math32.Vector3) {
	c.Position = pos
	c.Target = target
}

// Basis returns the camera's forward, right and up unit vectors.
func (c *Camera) Basis() (fwd, right, up math32.Vector3) {
	fwd = c.Target.Sub(c.Position).Normal()
	right = fwd.Cross(c.Up).Normal()
	up = right.Cross(fwd).Normal()
	return fwd, right, up
}

func (c *Camera) halfExtents() (hw, hh float32) {
	z := c.Zoom
	if z <= 0 {
		z = 1
	}
	return c.Right / z, c.Top / z
}

// Project maps a world point to normalized device coordinates, x and y in
// [-1, 1] when visible, plus its depth along the view direction.
func (c *Camera) Project(p math32.Vector3) (x, y, depth float32) {
	fwd, right, up := c.Basis()
	hw, hh := c.halfExtents()
	d := p.Sub(c.Position)
	return d.Dot(right) / hw, d.Dot(up) / hh, d.Dot(fwd)
}

// Ray returns the picking ray through the NDC point (x, y). All rays of an
// orthographic camera are parallel to the view direction.
func (c *Camera) Ray(x, y float32) math32.Ray {
	fwd, right, up := c.Basis()
	hw, hh := c.halfExtents()
	origin := c.Position.
		Add(right.MulScalar(x * hw)).
		Add(up.MulScalar(y * hh)).
		Add(fwd.MulScalar(c.Near))
	return math32.Ray{Origin: origin, Dir: fwd}
}

// ToNDC converts a point inside a w x h viewport to NDC.
func ToNDC(px, py, w, h float32) (x, y float32) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	return px/w*2 - 1, -(py/h*2 - 1)
}

// FromNDC converts NDC to a point inside a w x h viewport.
func FromNDC(x, y, w, h float32) (px, py float32) {
	return (x + 1) / 2 * w, (1 - y) / 2 * h
}
