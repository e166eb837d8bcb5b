package geometry

import (
	"log/slog"
	"math"

	"github.com/df07/go-batch-raytracer/pkg/core"
	"github.com/df07/go-batch-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	base
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(id int, mat material.Material, center core.Vec3, radius float64) *Sphere {
	return &Sphere{
		base:   base{id: id, kind: KindSphere, Material: mat},
		Center: center,
		Radius: radius,
	}
}

// Intersect tests the ray against the sphere. Only the near root of the
// quadratic is considered, so a ray that starts inside the sphere misses.
func (s *Sphere) Intersect(ray core.Ray) (Hit, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2.0 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant <= 0 {
		return Hit{}, false
	}

	t := (-b - math.Sqrt(discriminant)) / (2 * a)
	if !(t >= MinHitDistance) {
		return Hit{}, false
	}

	point := ray.At(t)
	return Hit{
		Distance: t,
		Point:    point,
		Normal:   point.Subtract(s.Center).Normalize(),
	}, true
}

func (s *Sphere) logAttrs() []slog.Attr {
	return append(s.base.logAttrs(),
		slog.String("center", s.Center.String()),
		slog.Float64("radius", s.Radius),
	)
}

// LogValue implements slog.LogValuer for scene dumps
func (s *Sphere) LogValue() slog.Value {
	return slog.GroupValue(s.logAttrs()...)
}
