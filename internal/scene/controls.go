package scene

import (
	"cogentcore.org/core/math32"
)

// Controls orbits, pans and zooms a camera around its target. Input is
// accumulated and released over several Update calls by the damping factor.
type Controls struct {
	Camera *Camera

	Damping       float32
	RotateSpeed   float32
	PanSpeed      float32
	ZoomSpeed     float32
	MinDistance   float32
	MaxDistance   float32
	MinPolarAngle float32
	MaxPolarAngle float32
	MinZoom       float32
	MaxZoom       float32

	dTheta float32
	dPhi   float32
	dZoom  float32
	pan    math32.Vector3
}

const settleEpsilon = 1e-4

// NewControls returns damped controls for cam. The polar limit keeps the
// camera above the horizon.
func NewControls(cam *Camera) *Controls {
	return &Controls{
		Camera:        cam,
		Damping:       0.08,
		RotateSpeed:   1,
		PanSpeed:      1,
		ZoomSpeed:     1,
		MinDistance:   20,
		MaxDistance:   200,
		MinPolarAngle: 0.05,
		MaxPolarAngle: math32.Pi / 2.1,
		MinZoom:       0.5,
		MaxZoom:       4,
	}
}

// Rotate queues an orbit by a pointer drag of (dx, dy) pixels in a
// viewport h pixels high.
func (c *Controls) Rotate(dx, dy, h float32) {
	if h <= 0 {
		return
	}
	c.dTheta -= 2 * math32.Pi * dx / h * c.RotateSpeed
	c.dPhi -= 2 * math32.Pi * dy / h * c.RotateSpeed
}

// Pan queues a screen-space translation of camera and target by a drag of
// (dx, dy) pixels in a w x h viewport.
func (c *Controls) Pan(dx, dy, w, h float32) {
	if w <= 0 || h <= 0 {
		return
	}
	cam := c.Camera
	_, right, up := cam.Basis()
	hw, hh := cam.halfExtents()
	move := right.MulScalar(-dx / w * 2 * hw * c.PanSpeed).
		Add(up.MulScalar(dy / h * 2 * hh * c.PanSpeed))
	c.pan = c.pan.Add(move)
}

// Zoom queues a change of the orthographic zoom by steps; positive zooms
// in. The zoom stays within [MinZoom, MaxZoom].
func (c *Controls) Zoom(steps float32) {
	c.dZoom += steps * c.ZoomSpeed
}

// Update applies one damped step of the queued input and reports whether
// the camera moved.
func (c *Controls) Update() bool {
	cam := c.Camera
	zoom := math32.Clamp(cam.Zoom/math32.Pow(0.95, c.dZoom*c.Damping), c.MinZoom, c.MaxZoom)
	zoomed := math32.Abs(zoom-cam.Zoom) > settleEpsilon
	cam.Zoom = zoom
	c.dZoom *= 1 - c.Damping

	offset := cam.Position.Sub(cam.Target)
	radius := offset.Length()
	if radius == 0 {
		return zoomed
	}
	theta := math32.Atan2(offset.X, offset.Z)
	phi := math32.Acos(math32.Clamp(offset.Y/radius, -1, 1))

	theta += c.dTheta * c.Damping
	phi += c.dPhi * c.Damping
	phi = math32.Clamp(phi, c.MinPolarAngle, c.MaxPolarAngle)
	radius = math32.Clamp(radius, c.MinDistance, c.MaxDistance)

	step := c.pan.MulScalar(c.Damping)
	target := cam.Target.Add(step)
	sinPhi := math32.Sin(phi)
	pos := target.Add(math32.Vec3(
		radius*sinPhi*math32.Sin(theta),
		radius*math32.Cos(phi),
		radius*sinPhi*math32.Cos(theta),
	))

	c.dTheta *= 1 - c.Damping
	c.dPhi *= 1 - c.Damping
	c.pan = c.pan.MulScalar(1 - c.Damping)

	moved := zoomed || pos.DistanceTo(cam.Position) > settleEpsilon || step.Length() > settleEpsilon
	cam.Position = pos
	cam.Target = target
	return moved
}

// Settled reports whether no queued input remains.
func (c *Controls) Settled() bool {
	return math32.Abs(c.dTheta) < settleEpsilon &&
		math32.Abs(c.dPhi) < settleEpsilon &&
		math32.Abs(c.dZoom) < settleEpsilon &&
		c.pan.Length() < settleEpsilon
}

// Stop drops any queued input.
func (c *Controls) Stop() {
	c.dTheta, c.dPhi, c.dZoom = 0, 0, 0
	c.pan = math32.Vector3{}
}
