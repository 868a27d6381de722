package scene

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNode_AddReparents(t *testing.T) {
	a := NewGroup("a")
	b := NewGroup("b")
	c := NewGroup("c")

	a.Add(c)
	b.Add(c)

	assert.Empty(t, a.Children())
	require.Len(t, b.Children(), 1)
	assert.Same(t, b, c.Parent())
	assert.False(t, a.Remove(c))
	assert.True(t, b.Remove(c))
	assert.Nil(t, c.Parent())
}

func TestNode_WorldTransform(t *testing.T) {
	g := NewGroup("g")
	g.Position = math32.Vec3(10, 0, 0)
	g.Scale = math32.Vec3(2, 2, 2)
	child := NewMeshNode("m", NewBox(1, 1, 1), NewMaterial(PaletteFor(ThemeLight).Metal))
	child.Position = math32.Vec3(1, 1, 0)
	g.Add(child)

	pos, scale := child.WorldTransform()
	assert.Equal(t, math32.Vec3(12, 2, 0), pos)
	assert.Equal(t, math32.Vec3(2, 2, 2), scale)

	bb, ok := child.MeshBBox()
	require.True(t, ok)
	assert.Equal(t, math32.Vec3(11, 1, -1), bb.Min)
	assert.Equal(t, math32.Vec3(13, 3, 1), bb.Max)

	gb, ok := g.WorldBBox()
	require.True(t, ok)
	assert.Equal(t, bb, gb)
}

func TestNode_TaggedAncestor(t *testing.T) {
	bed := BuildBed(vec3(0, 0, 0), "bed-0-0", ThemeLight)
	leaf := bed.Children()[0]
	assert.Same(t, bed, leaf.TaggedAncestor())
	assert.Nil(t, NewGroup("loose").TaggedAncestor())
}

func TestResources_TrackAndDispose(t *testing.T) {
	res := NewResources()
	bed := BuildBed(vec3(0, 0, 0), "bed-0-0", ThemeLight)
	res.Track(bed)
	// four meshes, each with its own geometry and material
	assert.Equal(t, 8, res.Live())

	bed.Dispose()
	assert.Equal(t, 0, res.Live())

	res.Sweep()
	res.DisposeAll()
	assert.Equal(t, 0, res.Live())
}
