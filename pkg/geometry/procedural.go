package geometry

import (
	"log/slog"

	"github.com/df07/go-batch-raytracer/pkg/core"
	"github.com/df07/go-batch-raytracer/pkg/material"
)

// ProceduralPlane is an infinite plane whose ambient color comes from a
// procedural shader keyed on the distance from the plane point
type ProceduralPlane struct {
	Plane
	ShaderIndex int
	shader      material.PlaneShader
}

// NewProceduralPlane creates a procedural plane using material.PlaneShaders[shaderIndex]
func NewProceduralPlane(id int, mat material.Material, normal, point core.Vec3, shaderIndex int) (*ProceduralPlane, error) {
	shader, err := material.LookupPlaneShader(shaderIndex)
	if err != nil {
		return nil, err
	}

	pp := &ProceduralPlane{
		Plane:       *NewPlane(id, mat, normal, point),
		ShaderIndex: shaderIndex,
		shader:      shader,
	}
	pp.kind = KindProceduralPlane
	return pp, nil
}

// Ambient implements Primitive
func (pp *ProceduralPlane) Ambient(hit Hit) (core.Vec3, error) {
	return pp.shader(pp.Material.Ambient, hit.Point.Subtract(pp.Point)), nil
}

// LogValue implements slog.LogValuer for scene dumps
func (pp *ProceduralPlane) LogValue() slog.Value {
	return slog.GroupValue(append(pp.Plane.logAttrs(), slog.Int("shader", pp.ShaderIndex))...)
}

// ProceduralSphere is a sphere whose ambient color comes from a procedural
// shader keyed on the distance from the center
type ProceduralSphere struct {
	Sphere
	ShaderIndex int
	shader      material.SphereShader
	random      *material.Rand
}

// NewProceduralSphere creates a procedural sphere using
// material.SphereShaders[shaderIndex]. random is shared by every procedural
// sphere in a scene.
func NewProceduralSphere(id int, mat material.Material, center core.Vec3, radius float64,
	shaderIndex int, random *material.Rand) (*ProceduralSphere, error) {
	shader, err := material.LookupSphereShader(shaderIndex)
	if err != nil {
		return nil, err
	}

	if random == nil {
		random = material.NewRand(1)
	}

	ps := &ProceduralSphere{
		Sphere:      *NewSphere(id, mat, center, radius),
		ShaderIndex: shaderIndex,
		shader:      shader,
		random:      random,
	}
	ps.kind = KindProceduralSphere
	return ps, nil
}

// Ambient implements Primitive
func (ps *ProceduralSphere) Ambient(hit Hit) (core.Vec3, error) {
	return ps.shader(ps.Material.Ambient, hit.Point.Subtract(ps.Center), ps.random), nil
}

// LogValue implements slog.LogValuer for scene dumps
func (ps *ProceduralSphere) LogValue() slog.Value {
	return slog.GroupValue(append(ps.Sphere.logAttrs(), slog.Int("shader", ps.ShaderIndex))...)
}
