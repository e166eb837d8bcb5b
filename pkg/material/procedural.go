package material

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-batch-raytracer/pkg/core"
)

// ErrShaderIndex is returned when a procedural primitive names a shader that does not exist
var ErrShaderIndex = errors.New("procedural shader index out of range")

// PlaneShader perturbs a plane's ambient color. offset is the hit point
// relative to the plane's reference point.
type PlaneShader func(ambient, offset core.Vec3) core.Vec3

// SphereShader perturbs a sphere's ambient color. offset is the hit point
// relative to the sphere center. Shaders may draw from random.
type SphereShader func(ambient, offset core.Vec3, random *Rand) core.Vec3

// PlaneShaders is the fixed table of procedural plane shaders, indexed by the
// shader number given in the scene description
var PlaneShaders = []PlaneShader{
	PlaneChecker,
	PlaneCosineBands,
}

// SphereShaders is the fixed table of procedural sphere shaders
var SphereShaders = []SphereShader{
	SphereRandomChannel,
}

// LookupPlaneShader returns PlaneShaders[index]
func LookupPlaneShader(index int) (PlaneShader, error) {
	if index < 0 || index >= len(PlaneShaders) {
		return nil, fmt.Errorf("%w: plane shader %d (have %d)", ErrShaderIndex, index, len(PlaneShaders))
	}
	return PlaneShaders[index], nil
}

// LookupSphereShader returns SphereShaders[index]
func LookupSphereShader(index int) (SphereShader, error) {
	if index < 0 || index >= len(SphereShaders) {
		return nil, fmt.Errorf("%w: sphere shader %d (have %d)", ErrShaderIndex, index, len(SphereShaders))
	}
	return SphereShaders[index], nil
}

// axisDistances returns the whole-unit distances used by the plane shaders.
// The x distance ignores the y component of the offset and the y distance
// ignores the x component; both keep z.
func axisDistances(offset core.Vec3) (dx, dy int) {
	dx = int(core.NewVec3(offset.X, 0, offset.Z).Length())
	dy = int(core.NewVec3(0, offset.Y, offset.Z).Length())
	return dx, dy
}

// PlaneChecker blacks out squares where both axis distances fall in the
// upper half of a 6-unit band
func PlaneChecker(ambient, offset core.Vec3) core.Vec3 {
	dx, dy := axisDistances(offset)
	if dx%6 >= 3 && dy%6 >= 3 {
		return core.Vec3{}
	}
	return ambient
}

// PlaneCosineBands divides the ambient color by cos(dx/10), producing bright
// stripes where the cosine approaches zero
func PlaneCosineBands(ambient, offset core.Vec3) core.Vec3 {
	dx, _ := axisDistances(offset)
	scale := math.Cos(float64(dx) / 10)
	return core.NewVec3(ambient.X/scale, ambient.Y/scale, ambient.Z/scale)
}

// SphereRandomChannel zeroes one randomly chosen channel on every other
// whole-unit shell around the center
func SphereRandomChannel(ambient, offset core.Vec3, random *Rand) core.Vec3 {
	distance := int(offset.Length())
	if distance%2 != 0 {
		return ambient
	}

	switch random.Int() % 3 {
	case 0:
		ambient.X = 0
	case 1:
		ambient.Y = 0
	default:
		ambient.Z = 0
	}
	return ambient
}
