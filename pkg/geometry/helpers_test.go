package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/df07/go-batch-raytracer/pkg/core"
	"github.com/df07/go-batch-raytracer/pkg/material"
)

const tolerance = 1e-9

func assertVecEqual(t *testing.T, expected, got core.Vec3) {
	t.Helper()
	assert.InDelta(t, expected.X, got.X, tolerance, "X of %v", got)
	assert.InDelta(t, expected.Y, got.Y, tolerance, "Y of %v", got)
	assert.InDelta(t, expected.Z, got.Z, tolerance, "Z of %v", got)
}

func plainMaterial(ambient core.Vec3) material.Material {
	return material.NewMaterial(ambient, core.NewVec3(1, 1, 1), core.Vec3{})
}
