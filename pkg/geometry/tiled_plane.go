package geometry

import (
	"log/slog"
	"math"

	"github.com/df07/go-batch-raytracer/pkg/core"
	"github.com/df07/go-batch-raytracer/pkg/material"
)

// TiledPlane is an infinite checkerboard. The bounded-plane frame orients the
// tiles and Size gives the dimensions of one tile; tiles alternate between the
// primitive's material and Background.
type TiledPlane struct {
	BoundedPlane
	Background material.Material
}

// NewTiledPlane creates a tiled plane
func NewTiledPlane(id int, mat material.Material, normal, point, xdir core.Vec3, size core.Vec2, background material.Material) *TiledPlane {
	tp := &TiledPlane{
		BoundedPlane: *NewBoundedPlane(id, mat, normal, point, xdir, size),
		Background:   background,
	}
	tp.kind = KindTiledPlane
	return tp
}

// Intersect tests the ray against the whole plane; the tile grid is unbounded.
// The hit carries local coordinates for tile selection.
func (tp *TiledPlane) Intersect(ray core.Ray) (Hit, bool) {
	hit, ok := tp.Plane.Intersect(ray)
	if !ok {
		return Hit{}, false
	}
	hit.Local = tp.Local(hit.Point)
	return hit, true
}

// tile returns the material of the tile containing hit. The 1000 offset keeps
// the floor away from zero so tiles either side of the origin alternate.
func (tp *TiledPlane) tile(hit Hit) material.Material {
	relx := int(math.Floor(1000 + hit.Local.X/tp.Size.X))
	rely := int(math.Floor(1000 + hit.Local.Y/tp.Size.Y))
	if (relx+rely)%2 != 0 {
		return tp.Material
	}
	return tp.Background
}

// Ambient implements Primitive
func (tp *TiledPlane) Ambient(hit Hit) (core.Vec3, error) {
	return tp.tile(hit).Ambient, nil
}

// Diffuse implements Primitive
func (tp *TiledPlane) Diffuse(hit Hit) (core.Vec3, error) {
	return tp.tile(hit).Diffuse, nil
}

// Specular implements Primitive
func (tp *TiledPlane) Specular(hit Hit) (core.Vec3, error) {
	return tp.tile(hit).Specular, nil
}

// LogValue implements slog.LogValuer for scene dumps
func (tp *TiledPlane) LogValue() slog.Value {
	return slog.GroupValue(append(tp.BoundedPlane.logAttrs(),
		slog.Any("background", tp.Background),
	)...)
}
