package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/df07/go-batch-raytracer/pkg/core"
	"github.com/df07/go-batch-raytracer/pkg/geometry"
	"github.com/df07/go-batch-raytracer/pkg/material"
)

// ErrUnknownScene is returned for a built-in scene name that is not registered
var ErrUnknownScene = errors.New("unknown built-in scene")

// Builtin constructs a scene rendered at width x height pixels
type Builtin func(width, height int) (*Scene, error)

var builtins = map[string]Builtin{
	"default": NewDefaultScene,
	"mirrors": NewMirrorScene,
}

// ListBuiltins returns the registered built-in scene names, sorted
func ListBuiltins() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewBuiltin creates the named built-in scene
func NewBuiltin(name string, width, height int) (*Scene, error) {
	build, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownScene, name, ListBuiltins())
	}
	return build(width, height)
}

// NewDefaultScene creates spheres over a checkerboard floor in front of a
// procedural back wall, lit by two point lights
func NewDefaultScene(width, height int) (*Scene, error) {
	projection, err := geometry.NewProjection(width, height, 8, 6, core.NewVec3(0, 0, 6))
	if err != nil {
		return nil, err
	}
	s := New(projection)

	s.AddLight(core.NewVec3(6, 6, 6), core.NewVec3(-4, 5, -2))
	s.AddLight(core.NewVec3(2, 2, 3), core.NewVec3(5, 3, 0))

	white := material.NewMaterial(core.NewVec3(4, 4, 4), core.NewVec3(1, 1, 1), core.Vec3{})
	charcoal := material.NewMaterial(core.NewVec3(0.5, 0.5, 0.5), core.NewVec3(0.2, 0.2, 0.2), core.Vec3{})
	s.AddTiledPlane(white, core.NewVec3(0, 1, 0), core.NewVec3(0, -2, 0),
		core.NewVec3(1, 0, 0), core.NewVec2(1.5, 1.5), charcoal)

	wall := material.NewMaterial(core.NewVec3(3, 4, 5), core.NewVec3(0.5, 0.6, 0.8), core.Vec3{})
	if _, err := s.AddProceduralPlane(wall, core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -20), 0); err != nil {
		return nil, err
	}

	red := material.NewMaterial(core.NewVec3(5, 1, 1), core.NewVec3(0.8, 0.2, 0.2), core.Vec3{})
	s.AddSphere(red, core.NewVec3(-2, -1, -7), 1)

	mirror := material.NewMaterial(core.NewVec3(1, 1, 1), core.NewVec3(0.2, 0.2, 0.2), core.NewVec3(0.6, 0.6, 0.6))
	s.AddSphere(mirror, core.NewVec3(1.5, -0.5, -9), 1.5)

	banded := material.NewMaterial(core.NewVec3(3, 5, 3), core.NewVec3(0.4, 0.7, 0.4), core.Vec3{})
	if _, err := s.AddProceduralSphere(banded, core.NewVec3(-0.5, -1.25, -4.5), 0.75, 0); err != nil {
		return nil, err
	}

	return s, nil
}

// NewMirrorScene creates a corridor of two facing mirrors with a sphere
// between them, so every reflection chain ends on the distance budget
func NewMirrorScene(width, height int) (*Scene, error) {
	projection, err := geometry.NewProjection(width, height, 4, 4, core.NewVec3(0, 0, 4))
	if err != nil {
		return nil, err
	}
	s := New(projection)

	s.AddLight(core.NewVec3(4, 4, 4), core.NewVec3(0, 1.5, -3))

	silver := material.NewMaterial(core.NewVec3(0.2, 0.2, 0.2), core.NewVec3(0.1, 0.1, 0.1), core.NewVec3(0.9, 0.9, 0.9))
	s.AddBoundedPlane(silver, core.NewVec3(1, 0, 0), core.NewVec3(-2, -2, -1),
		core.NewVec3(0, 0, -1), core.NewVec2(12, 4))
	s.AddBoundedPlane(silver, core.NewVec3(-1, 0, 0), core.NewVec3(2, -2, -13),
		core.NewVec3(0, 0, 1), core.NewVec2(12, 4))

	floor := material.NewMaterial(core.NewVec3(2, 2, 2), core.NewVec3(0.7, 0.7, 0.7), core.Vec3{})
	s.AddPlane(floor, core.NewVec3(0, 1, 0), core.NewVec3(0, -2, 0))

	gold := material.NewMaterial(core.NewVec3(4, 3, 1), core.NewVec3(0.8, 0.6, 0.2), core.NewVec3(0.3, 0.3, 0.1))
	s.AddSphere(gold, core.NewVec3(0, -1, -6), 1)

	return s, nil
}
