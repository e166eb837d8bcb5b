package scene

import (
	"context"
	"log/slog"

	"github.com/df07/go-batch-raytracer/pkg/core"
	"github.com/df07/go-batch-raytracer/pkg/geometry"
	"github.com/df07/go-batch-raytracer/pkg/lights"
	"github.com/df07/go-batch-raytracer/pkg/material"
)

// Scene contains all the elements needed for rendering. It is built once
// and is read-only while rendering, apart from Random.
type Scene struct {
	Projection *geometry.Projection
	Lights     []*lights.Light      // Point lights, in load order
	Primitives []geometry.Primitive // Renderable objects, in load order

	// Random drives the procedural sphere shaders. One generator is shared by
	// every procedural sphere, so draws depend on render order.
	Random *material.Rand

	nextID int
}

// New creates an empty scene viewed through projection
func New(projection *geometry.Projection) *Scene {
	return &Scene{
		Projection: projection,
		Lights:     make([]*lights.Light, 0),
		Primitives: make([]geometry.Primitive, 0),
		Random:     material.NewRand(1),
	}
}

// NextID returns the next object id. Lights and primitives share the sequence.
func (s *Scene) NextID() int {
	id := s.nextID
	s.nextID++
	return id
}

// PrimitiveCount returns the number of renderable objects
func (s *Scene) PrimitiveCount() int {
	return len(s.Primitives)
}

// AddLight adds a point light to the scene
func (s *Scene) AddLight(emissivity, position core.Vec3) *lights.Light {
	light := lights.NewLight(s.NextID(), emissivity, position)
	s.Lights = append(s.Lights, light)
	return light
}

// AddSphere adds a sphere to the scene
func (s *Scene) AddSphere(mat material.Material, center core.Vec3, radius float64) *geometry.Sphere {
	sphere := geometry.NewSphere(s.NextID(), mat, center, radius)
	s.Primitives = append(s.Primitives, sphere)
	return sphere
}

// AddPlane adds an infinite plane to the scene
func (s *Scene) AddPlane(mat material.Material, normal, point core.Vec3) *geometry.Plane {
	plane := geometry.NewPlane(s.NextID(), mat, normal, point)
	s.Primitives = append(s.Primitives, plane)
	return plane
}

// AddBoundedPlane adds a rectangular plane to the scene
func (s *Scene) AddBoundedPlane(mat material.Material, normal, point, xdir core.Vec3, size core.Vec2) *geometry.BoundedPlane {
	plane := geometry.NewBoundedPlane(s.NextID(), mat, normal, point, xdir, size)
	s.Primitives = append(s.Primitives, plane)
	return plane
}

// AddTiledPlane adds a checkerboard plane to the scene
func (s *Scene) AddTiledPlane(mat material.Material, normal, point, xdir core.Vec3, size core.Vec2,
	background material.Material) *geometry.TiledPlane {
	plane := geometry.NewTiledPlane(s.NextID(), mat, normal, point, xdir, size, background)
	s.Primitives = append(s.Primitives, plane)
	return plane
}

// AddTexturedPlane adds an image-textured plane to the scene
func (s *Scene) AddTexturedPlane(mat material.Material, normal, point, xdir core.Vec3, size core.Vec2,
	texture *material.Texture, mode material.TextureMode) *geometry.TexturedPlane {
	plane := geometry.NewTexturedPlane(s.NextID(), mat, normal, point, xdir, size, texture, mode, s.Projection)
	s.Primitives = append(s.Primitives, plane)
	return plane
}

// AddProceduralPlane adds a procedurally shaded plane to the scene
func (s *Scene) AddProceduralPlane(mat material.Material, normal, point core.Vec3, shader int) (*geometry.ProceduralPlane, error) {
	plane, err := geometry.NewProceduralPlane(s.NextID(), mat, normal, point, shader)
	if err != nil {
		return nil, err
	}
	s.Primitives = append(s.Primitives, plane)
	return plane, nil
}

// AddProceduralSphere adds a procedurally shaded sphere to the scene
func (s *Scene) AddProceduralSphere(mat material.Material, center core.Vec3, radius float64, shader int) (*geometry.ProceduralSphere, error) {
	sphere, err := geometry.NewProceduralSphere(s.NextID(), mat, center, radius, shader, s.Random)
	if err != nil {
		return nil, err
	}
	s.Primitives = append(s.Primitives, sphere)
	return sphere, nil
}

// Dump logs the projection, every light and every primitive at debug level
func (s *Scene) Dump(logger *slog.Logger) {
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}

	logger.Debug("projection", "projection", s.Projection)
	for _, light := range s.Lights {
		logger.Debug("light", "light", light)
	}
	for _, p := range s.Primitives {
		logger.Debug("object", "object", p)
	}
}
