package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-batch-raytracer/pkg/core"
)

// newBackWall returns a 4x4 panel facing the camera with its corner at (-2,-2,-10)
func newBackWall() *BoundedPlane {
	return NewBoundedPlane(2, plainMaterial(core.Vec3{}),
		core.NewVec3(0, 0, 1), core.NewVec3(-2, -2, -10),
		core.NewVec3(1, 0, 0), core.NewVec2(4, 4))
}

func TestBoundedPlane_Intersect_Inside(t *testing.T) {
	wall := newBackWall()

	hit, ok := wall.Intersect(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)))
	require.True(t, ok)
	assert.InDelta(t, 10.0, hit.Distance, tolerance)
	assert.InDelta(t, 2.0, hit.Local.X, tolerance)
	assert.InDelta(t, 2.0, hit.Local.Y, tolerance)

	hit, ok = wall.Intersect(core.NewRay(core.NewVec3(1.5, -1.25, 0), core.NewVec3(0, 0, -1)))
	require.True(t, ok)
	assert.InDelta(t, 3.5, hit.Local.X, tolerance)
	assert.InDelta(t, 0.75, hit.Local.Y, tolerance)
}

func TestBoundedPlane_Intersect_Outside(t *testing.T) {
	wall := newBackWall()

	for _, origin := range []core.Vec3{
		core.NewVec3(-3, 0, 0),
		core.NewVec3(2.5, 0, 0),
		core.NewVec3(0, -2.01, 0),
		core.NewVec3(0, 2.2, 0),
	} {
		_, ok := wall.Intersect(core.NewRay(origin, core.NewVec3(0, 0, -1)))
		assert.False(t, ok, "origin %v", origin)
	}
}

func TestBoundedPlane_Contains_EdgesIncluded(t *testing.T) {
	wall := newBackWall()

	assert.True(t, wall.Contains(core.NewVec2(0, 0)))
	assert.True(t, wall.Contains(core.NewVec2(4, 4)))
	assert.False(t, wall.Contains(core.NewVec2(-1e-9, 2)))
	assert.False(t, wall.Contains(core.NewVec2(2, 4+1e-9)))
}

func TestBoundedPlane_OrthogonalizesXDir(t *testing.T) {
	wall := NewBoundedPlane(0, plainMaterial(core.Vec3{}),
		core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -10),
		core.NewVec3(2, 0, 0.5), core.NewVec2(1, 1))

	assertVecEqual(t, core.NewVec3(1, 0, 0), wall.XDir)
	assert.Equal(t, KindBoundedPlane, wall.Kind())
}
