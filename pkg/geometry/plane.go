package geometry

import (
	"log/slog"

	"github.com/df07/go-batch-raytracer/pkg/core"
	"github.com/df07/go-batch-raytracer/pkg/material"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	base
	Point  core.Vec3 // A point on the plane
	Normal core.Vec3 // Unit normal
}

// NewPlane creates a new plane. The normal is normalized.
func NewPlane(id int, mat material.Material, normal, point core.Vec3) *Plane {
	return &Plane{
		base:   base{id: id, kind: KindInfinitePlane, Material: mat},
		Point:  point,
		Normal: normal.Normalize(),
	}
}

// Intersect tests the ray against the plane. Rays exactly parallel to the
// plane miss, and so does any hit at z >= 0: only the space behind the
// screen window is visible.
func (p *Plane) Intersect(ray core.Ray) (Hit, bool) {
	denominator := p.Normal.Dot(ray.Direction)
	if denominator == 0 {
		return Hit{}, false
	}

	t := (p.Normal.Dot(p.Point) - p.Normal.Dot(ray.Origin)) / denominator
	if !(t >= MinHitDistance) {
		return Hit{}, false
	}

	point := ray.At(t)
	if point.Z >= 0 {
		return Hit{}, false
	}

	return Hit{Distance: t, Point: point, Normal: p.Normal}, true
}

func (p *Plane) logAttrs() []slog.Attr {
	return append(p.base.logAttrs(),
		slog.String("point", p.Point.String()),
		slog.String("normal", p.Normal.String()),
	)
}

// LogValue implements slog.LogValuer for scene dumps
func (p *Plane) LogValue() slog.Value {
	return slog.GroupValue(p.logAttrs()...)
}
