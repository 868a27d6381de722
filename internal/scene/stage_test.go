package scene

import (
	"image/color"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/WardView/internal/model"
)

func TestNew_CameraPose(t *testing.T) {
	focused := New(Config{Focus: &FloorFocus{ID: "floor-3", Level: 3}, Width: 400, Height: 300})
	defer focused.Dispose()
	base := float32(2 * model.FloorHeight)
	assert.Equal(t, math32.Vec3(30, base+30, 30), focused.Camera.Position)
	assert.Equal(t, math32.Vec3(8, base, 6), focused.Camera.Target)

	all := New(Config{Width: 400, Height: 300})
	defer all.Dispose()
	assert.Equal(t, math32.Vec3(60, 60, 60), all.Camera.Position)
	assert.InDelta(t, 2*model.FloorHeight, all.Camera.Target.Y, 1e-6)
}

func TestStage_Resize(t *testing.T) {
	s := New(Config{Width: 400, Height: 400})
	defer s.Dispose()
	assert.InDelta(t, s.Camera.Top, s.Camera.Right, 1e-6)

	s.Resize(800, 400)
	assert.InDelta(t, 2*s.Camera.Top, s.Camera.Right, 1e-6)
	w, h := s.Renderer.Size()
	assert.Equal(t, 800, w)
	assert.Equal(t, 400, h)

	img := s.Render()
	require.NotNil(t, img)
	assert.Equal(t, 800, img.Bounds().Dx())

	s.Resize(0, 100)
	w, _ = s.Renderer.Size()
	assert.Equal(t, 800, w, "degenerate sizes are ignored")
}

func TestStage_RenderDrawsMeshes(t *testing.T) {
	s := New(Config{Theme: ThemeDark, Focus: &FloorFocus{ID: "floor-1", Level: 1}, Width: 200, Height: 150})
	defer s.Dispose()

	empty := s.Render()
	require.NotNil(t, empty)
	bg := color.NRGBAModel.Convert(empty.At(100, 75)).(color.NRGBA)
	assert.Equal(t, PaletteFor(ThemeDark).Background, bg)

	n := NewMeshNode("block", NewBox(6, 6, 6), NewMaterial(BedStatusColors[model.BedOccupied]))
	n.Position = s.Camera.Target
	s.Add(n)

	img := s.Render()
	x, y, _ := s.Camera.Project(n.Position)
	px, py := FromNDC(x, y, 200, 150)
	got := color.NRGBAModel.Convert(img.At(int(px), int(py))).(color.NRGBA)
	assert.NotEqual(t, bg, got)
}

func TestStage_DisposeReleasesEverything(t *testing.T) {
	for i := 0; i < 3; i++ {
		s := New(Config{Width: 100, Height: 100})
		pop := NewPopulation()
		pop.Populate(s, twoBedView(), "", ThemeLight)
		require.Positive(t, s.Resources.Live())

		s.Dispose()
		assert.Zero(t, s.Resources.Live())
		assert.True(t, s.Renderer.Disposed())
		assert.Nil(t, s.Render())
		s.Dispose()
	}
}

func TestStage_RemoveDisposes(t *testing.T) {
	s := New(Config{Width: 100, Height: 100})
	defer s.Dispose()
	bed := BuildBed(vec3(0, 0, 0), "bed-x", ThemeLight)
	s.Add(bed)
	require.Equal(t, 8, s.Resources.Live())

	s.Remove(bed)
	assert.Zero(t, s.Resources.Live())
	assert.Empty(t, s.Root.Children())
	s.Remove(nil)
}

func TestShade_EmissiveBrightens(t *testing.T) {
	r := NewRenderer(1, 1)
	lights := defaultLights(ThemeLight)
	m := NewMaterial(PatientStatusColors[model.PatientStable])
	up := math32.Vec3(0, 1, 0)

	dim := r.shade(m, up, math32.Vec3(0, 0, 0), lights)
	m.Emissive = m.Color
	m.EmissiveIntensity = EmissiveSelected
	bright := r.shade(m, up, math32.Vec3(0, 0, 0), lights)
	assert.Greater(t, bright.G, dim.G)

	m.Opacity = 0.5
	assert.Equal(t, uint8(127), r.shade(m, up, math32.Vec3(0, 0, 0), lights).A)
}
