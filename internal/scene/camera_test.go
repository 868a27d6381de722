package scene

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isoCamera() *Camera {
	cam := NewCamera(16.0 / 9.0)
	cam.LookAt(math32.Vec3(30, 30, 30), math32.Vec3(8, 0, 6))
	return cam
}

func TestCamera_AspectBounds(t *testing.T) {
	cam := NewCamera(2)
	assert.InDelta(t, 20, cam.Top, 1e-6)
	assert.InDelta(t, -20, cam.Bottom, 1e-6)
	assert.InDelta(t, 40, cam.Right, 1e-6)
	assert.InDelta(t, -40, cam.Left, 1e-6)

	cam.SetAspect(0.5)
	assert.InDelta(t, 10, cam.Right, 1e-6)
	assert.InDelta(t, 20, cam.Top, 1e-6)
}

func TestCamera_ProjectTargetIsCenter(t *testing.T) {
	cam := isoCamera()
	x, y, depth := cam.Project(cam.Target)
	assert.InDelta(t, 0, x, 1e-5)
	assert.InDelta(t, 0, y, 1e-5)
	assert.Greater(t, depth, float32(0))
}

func TestCamera_IsOrthographic(t *testing.T) {
	cam := isoCamera()
	fwd, _, _ := cam.Basis()
	p := math32.Vec3(3, 1, 2)
	x1, y1, d1 := cam.Project(p)
	x2, y2, d2 := cam.Project(p.Add(fwd.MulScalar(25)))
	// moving along the view direction changes depth only
	assert.InDelta(t, x1, x2, 1e-4)
	assert.InDelta(t, y1, y2, 1e-4)
	assert.InDelta(t, d1+25, d2, 1e-3)
}

func TestCamera_RayMatchesProjection(t *testing.T) {
	cam := isoCamera()
	cam.Zoom = 1.5
	ray := cam.Ray(0.4, -0.3)
	for _, d := range []float32{0, 10, 50} {
		x, y, _ := cam.Project(ray.At(d))
		assert.InDelta(t, 0.4, x, 1e-4)
		assert.InDelta(t, -0.3, y, 1e-4)
	}
}

func TestCamera_RayHitsProjectedBox(t *testing.T) {
	cam := isoCamera()
	box := math32.B3(7, 0, 5, 9, 2, 7)
	x, y, depth := cam.Project(box.Center())

	ray := cam.Ray(x, y)
	pt, ok := ray.IntersectBox(box)
	require.True(t, ok)
	assert.Less(t, pt.DistanceTo(ray.Origin), depth, "entry point lies before the box center")

	ray = cam.Ray(x+0.5, y)
	_, ok = ray.IntersectBox(box)
	assert.False(t, ok)
}

func TestCamera_RayIgnoresBoxBehindCamera(t *testing.T) {
	cam := isoCamera()
	fwd, _, _ := cam.Basis()
	c := cam.Position.Sub(fwd.MulScalar(10))
	box := math32.Box3{Min: c.SubScalar(1), Max: c.AddScalar(1)}

	ray := cam.Ray(0, 0)
	_, ok := ray.IntersectBox(box)
	assert.False(t, ok)
}

func TestNDCRoundTrip(t *testing.T) {
	x, y := ToNDC(0, 0, 800, 600)
	assert.InDelta(t, -1, x, 1e-6)
	assert.InDelta(t, 1, y, 1e-6)

	x, y = ToNDC(400, 300, 800, 600)
	assert.InDelta(t, 0, x, 1e-6)
	assert.InDelta(t, 0, y, 1e-6)

	px, py := FromNDC(0.25, -0.5, 800, 600)
	x, y = ToNDC(px, py, 800, 600)
	assert.InDelta(t, 0.25, x, 1e-5)
	assert.InDelta(t, -0.5, y, 1e-5)

	x, y = ToNDC(10, 10, 0, 0)
	assert.Zero(t, x)
	assert.Zero(t, y)
}

func settle(c *Controls) {
	for i := 0; i < 1000 && !c.Settled(); i++ {
		c.Update()
	}
}

func TestControls_ZoomClamp(t *testing.T) {
	c := NewControls(isoCamera())
	for i := 0; i < 200; i++ {
		c.Zoom(1)
	}
	settle(c)
	assert.InDelta(t, c.MaxZoom, c.Camera.Zoom, 1e-6)
	for i := 0; i < 400; i++ {
		c.Zoom(-1)
	}
	settle(c)
	assert.InDelta(t, c.MinZoom, c.Camera.Zoom, 1e-6)
}

func TestControls_ZoomIsDamped(t *testing.T) {
	cam := isoCamera()
	c := NewControls(cam)
	want := cam.Zoom / math32.Pow(0.95, 10)

	c.Zoom(10)
	assert.Equal(t, float32(1), cam.Zoom, "zoom waits for Update")
	require.False(t, c.Settled())

	assert.True(t, c.Update())
	assert.Greater(t, cam.Zoom, float32(1))
	assert.Less(t, cam.Zoom, want, "one frame releases only part of the zoom")

	settle(c)
	assert.True(t, c.Settled())
	assert.InDelta(t, want, cam.Zoom, 1e-3)
}

func TestControls_DistanceClamp(t *testing.T) {
	cam := isoCamera()
	cam.Position = cam.Target.Add(math32.Vec3(300, 300, 300))
	c := NewControls(cam)
	c.Update()
	assert.InDelta(t, c.MaxDistance, cam.Position.DistanceTo(cam.Target), 1e-2)

	cam.Position = cam.Target.Add(math32.Vec3(1, 1, 1))
	c.Update()
	assert.InDelta(t, c.MinDistance, cam.Position.DistanceTo(cam.Target), 1e-2)
}

func TestControls_NeverBelowHorizon(t *testing.T) {
	cam := isoCamera()
	c := NewControls(cam)
	c.Rotate(0, -5000, 600)
	for i := 0; i < 300; i++ {
		c.Update()
		assert.Greater(t, cam.Position.Y, cam.Target.Y)
	}
}

func TestControls_DampingSettles(t *testing.T) {
	cam := isoCamera()
	c := NewControls(cam)
	start := cam.Position
	c.Rotate(120, 0, 600)
	require.False(t, c.Settled())

	assert.True(t, c.Update(), "first step moves the camera")
	moved := 0
	for i := 0; i < 500 && !c.Settled(); i++ {
		if c.Update() {
			moved++
		}
	}
	assert.True(t, c.Settled())
	assert.Greater(t, moved, 10, "motion is spread over many frames")
	assert.NotEqual(t, start, cam.Position)
	assert.InDelta(t, start.DistanceTo(cam.Target), cam.Position.DistanceTo(cam.Target), 1e-2)
}

func TestControls_Pan(t *testing.T) {
	cam := isoCamera()
	c := NewControls(cam)
	target := cam.Target
	c.Pan(100, 0, 800, 600)
	for i := 0; i < 500 && !c.Settled(); i++ {
		c.Update()
	}
	_, right, _ := cam.Basis()
	shift := cam.Target.Sub(target)
	assert.Less(t, shift.Dot(right), float32(0), "dragging right moves the view left")
}
