package scene

import (
	"image"
	"image/color"

	"cogentcore.org/core/math32"

	"github.com/piwi3910/WardView/internal/model"
)

// FloorFocus narrows the camera to one storey.
type FloorFocus struct {
	ID    string
	Level int
}

// Config configures a new Stage.
type Config struct {
	Theme  Theme
	Focus  *FloorFocus
	Width  int
	Height int
	// Storeys is the number of levels in the building, used to center the
	// camera on the stack when no floor is focused. Zero means four.
	Storeys int
}

// Stage bundles the scene root, camera, controls, lights and renderer of
// one mounted view. Every mesh added through Add is tracked and disposed
// with the stage.
type Stage struct {
	Root      *Node
	Camera    *Camera
	Controls  *Controls
	Lights    Lights
	Renderer  *Renderer
	Resources *Resources
	Theme     Theme

	disposed bool
}

// New creates a stage sized w x h with the camera posed for cfg.Focus.
func New(cfg Config) *Stage {
	w, h := max(cfg.Width, 1), max(cfg.Height, 1)
	cam := NewCamera(float32(w) / float32(h))
	pos, target := cameraPose(cfg)
	cam.LookAt(pos, target)

	r := NewRenderer(w, h)
	r.Background = PaletteFor(cfg.Theme).Background

	return &Stage{
		Root:      NewGroup("scene"),
		Camera:    cam,
		Controls:  NewControls(cam),
		Lights:    defaultLights(cfg.Theme),
		Renderer:  r,
		Resources: NewResources(),
		Theme:     cfg.Theme,
	}
}

func cameraPose(cfg Config) (pos, target math32.Vector3) {
	if cfg.Focus != nil {
		base := float32(cfg.Focus.Level-1) * model.FloorHeight
		return math32.Vec3(30, base+30, 30), math32.Vec3(8, base, 6)
	}
	storeys := cfg.Storeys
	if storeys <= 0 {
		storeys = len(model.FloorTypes)
	}
	mid := float32(storeys) * model.FloorHeight / 2
	return math32.Vec3(60, 60, 60), math32.Vec3(8, mid, 6)
}

func defaultLights(t Theme) Lights {
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	ambient := float32(0.6)
	if t == ThemeDark {
		ambient = 0.4
	}
	return Lights{
		Ambient: AmbientLight{Color: white, Intensity: ambient},
		Directional: DirectionalLight{
			Color:      white,
			Intensity:  0.8,
			Position:   math32.Vec3(20, 40, 25),
			CastShadow: true,
		},
		Point: PointLight{
			Color:     color.NRGBA{R: 255, G: 244, B: 229, A: 255},
			Intensity: 0.3,
			Position:  math32.Vec3(8, 12, 6),
			Distance:  60,
		},
	}
}

// Add attaches nodes to the scene root and tracks their resources.
func (s *Stage) Add(nodes ...*Node) {
	for _, n := range nodes {
		s.Root.Add(n)
		s.Resources.Track(n)
	}
}

// Remove detaches n from the scene and disposes everything under it.
func (s *Stage) Remove(n *Node) {
	if n == nil {
		return
	}
	if p := n.Parent(); p != nil {
		p.Remove(n)
	}
	n.Dispose()
	s.Resources.Sweep()
}

// Resize recomputes the projection bounds and frame buffer for w x h.
func (s *Stage) Resize(w, h int) {
	if s.disposed || w <= 0 || h <= 0 {
		return
	}
	s.Camera.SetAspect(float32(w) / float32(h))
	s.Renderer.SetSize(w, h)
}

// Render draws the current frame, or returns nil once disposed.
func (s *Stage) Render() image.Image {
	if s.disposed {
		return nil
	}
	return s.Renderer.Render(s.Root, s.Camera, s.Lights)
}

// Dispose releases every tracked resource and the frame buffer. It is
// safe to call more than once.
func (s *Stage) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.Root.Dispose()
	s.Resources.DisposeAll()
	s.Renderer.Dispose()
	s.Controls.Stop()
}

func (s *Stage) Disposed() bool { return s.disposed }
