package material

import (
	"log/slog"

	"github.com/df07/go-batch-raytracer/pkg/core"
)

// Material holds the reflectivity triples shared by every primitive.
// Components are nominally in [0,∞); clamping happens only when pixels are written.
type Material struct {
	Ambient  core.Vec3 // Light reflected regardless of light sources
	Diffuse  core.Vec3 // Lambertian reflectivity toward point lights
	Specular core.Vec3 // Mirror reflectivity; zero disables reflection
}

// NewMaterial creates a material from its three RGB triples
func NewMaterial(ambient, diffuse, specular core.Vec3) Material {
	return Material{Ambient: ambient, Diffuse: diffuse, Specular: specular}
}

// IsReflective reports whether a specular color has any energy. Reflection
// continues only from surfaces where it does.
func IsReflective(specular core.Vec3) bool {
	return specular.Dot(specular) > 0
}

// LogValue implements slog.LogValuer for scene dumps
func (m Material) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("ambient", m.Ambient.String()),
		slog.String("diffuse", m.Diffuse.String()),
		slog.String("specular", m.Specular.String()),
	)
}
