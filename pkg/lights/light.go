package lights

import (
	"log/slog"

	"github.com/df07/go-batch-raytracer/pkg/core"
)

// Light is a point light. Lights illuminate primitives but are never hit by rays.
type Light struct {
	ID         int
	Position   core.Vec3
	Emissivity core.Vec3 // RGB intensity, unclamped
}

// NewLight creates a point light
func NewLight(id int, emissivity, position core.Vec3) *Light {
	return &Light{ID: id, Position: position, Emissivity: emissivity}
}

// Sample returns the unnormalized direction from point toward the light and its length
func (l *Light) Sample(point core.Vec3) (direction core.Vec3, distance float64) {
	direction = l.Position.Subtract(point)
	return direction, direction.Length()
}

// LogValue implements slog.LogValuer for scene dumps
func (l *Light) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("id", l.ID),
		slog.String("type", "light"),
		slog.String("emissivity", l.Emissivity.String()),
		slog.String("center", l.Position.String()),
	)
}
