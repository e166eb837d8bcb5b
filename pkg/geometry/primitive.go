package geometry

import (
	"fmt"
	"log/slog"

	"github.com/df07/go-batch-raytracer/pkg/core"
	"github.com/df07/go-batch-raytracer/pkg/material"
)

// MinHitDistance is the smallest distance accepted as a hit. Anything closer,
// including the ray's own origin, is a miss.
const MinHitDistance = 1e-4

// Kind tags the primitive variants. Values match the object type codes of
// the scene description format.
type Kind int

const (
	KindSphere           Kind = 13
	KindInfinitePlane    Kind = 14
	KindBoundedPlane     Kind = 15
	KindTiledPlane       Kind = 16
	KindTexturedPlane    Kind = 17
	KindProceduralSphere Kind = 19
	KindProceduralPlane  Kind = 20
)

func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindInfinitePlane:
		return "plane"
	case KindBoundedPlane:
		return "bounded plane"
	case KindTiledPlane:
		return "tiled plane"
	case KindTexturedPlane:
		return "textured plane"
	case KindProceduralSphere:
		return "procedural sphere"
	case KindProceduralPlane:
		return "procedural plane"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Hit describes one successful intersection. It is only meaningful for the
// ray and primitive that produced it.
type Hit struct {
	Distance float64   // Distance along the ray direction
	Point    core.Vec3 // World-space hit point
	Normal   core.Vec3 // Unit surface normal at Point
	Local    core.Vec2 // Plane-local (x, y) for variants with a local frame
}

// Primitive is a renderable object: something a ray can hit and shade
type Primitive interface {
	ID() int
	Kind() Kind

	// Intersect returns the hit for ray, or false on a miss
	Intersect(ray core.Ray) (Hit, bool)

	// Shading queries evaluated at a hit returned by Intersect
	Ambient(hit Hit) (core.Vec3, error)
	Diffuse(hit Hit) (core.Vec3, error)
	Specular(hit Hit) (core.Vec3, error)

	slog.LogValuer
}

// base carries identity and material, and supplies the default shading:
// the material's triples, independent of where the surface was hit
type base struct {
	id       int
	kind     Kind
	Material material.Material
}

func (b *base) ID() int    { return b.id }
func (b *base) Kind() Kind { return b.kind }

func (b *base) Ambient(Hit) (core.Vec3, error)  { return b.Material.Ambient, nil }
func (b *base) Diffuse(Hit) (core.Vec3, error)  { return b.Material.Diffuse, nil }
func (b *base) Specular(Hit) (core.Vec3, error) { return b.Material.Specular, nil }

func (b *base) logAttrs() []slog.Attr {
	return []slog.Attr{
		slog.Int("id", b.id),
		slog.String("type", b.kind.String()),
		slog.Any("material", b.Material),
	}
}
