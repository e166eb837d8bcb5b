package geometry

import (
	"fmt"
	"log/slog"

	"golang.org/x/image/math/f64"

	"github.com/df07/go-batch-raytracer/pkg/core"
	"github.com/df07/go-batch-raytracer/pkg/material"
)

// BoundedPlane is a rectangle cut from an infinite plane. Its corner is the
// plane point; it extends Size.X along XDir and Size.Y along Normal × XDir.
type BoundedPlane struct {
	Plane
	XDir  core.Vec3 // Local x axis, orthogonal to Normal
	Size  core.Vec2 // Extent along the local x and y axes
	frame f64.Mat3  // World-to-local rotation
}

// NewBoundedPlane creates a bounded plane
func NewBoundedPlane(id int, mat material.Material, normal, point, xdir core.Vec3, size core.Vec2) *BoundedPlane {
	bp := &BoundedPlane{
		Plane: *NewPlane(id, mat, normal, point),
		Size:  size,
	}
	bp.kind = KindBoundedPlane
	bp.frame = core.NewFrame(xdir, bp.Normal)
	bp.XDir = core.Row(bp.frame, 0)
	return bp
}

// Local expresses a world-space point on the plane in the plane's (x, y) frame
func (bp *BoundedPlane) Local(point core.Vec3) core.Vec2 {
	local := core.Transform(bp.frame, point.Subtract(bp.Point))
	return core.NewVec2(local.X, local.Y)
}

// Contains reports whether local coordinates fall inside the rectangle, edges included
func (bp *BoundedPlane) Contains(local core.Vec2) bool {
	return local.X >= 0 && local.X <= bp.Size.X && local.Y >= 0 && local.Y <= bp.Size.Y
}

// Intersect tests the ray against the underlying plane, then rejects hits
// outside the rectangle. Successful hits carry their local coordinates.
func (bp *BoundedPlane) Intersect(ray core.Ray) (Hit, bool) {
	hit, ok := bp.Plane.Intersect(ray)
	if !ok {
		return Hit{}, false
	}

	local := bp.Local(hit.Point)
	if !bp.Contains(local) {
		return Hit{}, false
	}

	hit.Local = local
	return hit, true
}

func (bp *BoundedPlane) logAttrs() []slog.Attr {
	return append(bp.Plane.logAttrs(),
		slog.String("xdir", bp.XDir.String()),
		slog.String("size", fmt.Sprintf("%gx%g", bp.Size.X, bp.Size.Y)),
	)
}

// LogValue implements slog.LogValuer for scene dumps
func (bp *BoundedPlane) LogValue() slog.Value {
	return slog.GroupValue(bp.logAttrs()...)
}
