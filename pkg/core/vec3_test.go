package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const tolerance = 1e-9

func assertVecEqual(t *testing.T, expected, got Vec3) {
	t.Helper()
	assert.InDelta(t, expected.X, got.X, tolerance, "X of %v", got)
	assert.InDelta(t, expected.Y, got.Y, tolerance, "Y of %v", got)
	assert.InDelta(t, expected.Z, got.Z, tolerance, "Z of %v", got)
}

func TestVec3_BasicOperations(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	assertVecEqual(t, NewVec3(5, -3, 9), a.Add(b))
	assertVecEqual(t, NewVec3(-3, 7, -3), a.Subtract(b))
	assertVecEqual(t, NewVec3(2, 4, 6), a.Multiply(2))
	assertVecEqual(t, NewVec3(4, -10, 18), a.MultiplyVec(b))
	assert.Equal(t, 12.0, a.Dot(b))
	assert.InDelta(t, math.Sqrt(14), a.Length(), tolerance)
}

func TestVec3_Cross(t *testing.T) {
	x := NewVec3(1, 0, 0)
	y := NewVec3(0, 1, 0)

	assertVecEqual(t, NewVec3(0, 0, 1), x.Cross(y))
	assertVecEqual(t, NewVec3(0, 0, -1), y.Cross(x))
}

func TestVec3_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		input    Vec3
		expected Vec3
	}{
		{"axis", NewVec3(0, 3, 0), NewVec3(0, 1, 0)},
		{"diagonal", NewVec3(3, 4, 0), NewVec3(0.6, 0.8, 0)},
		{"zero stays zero", NewVec3(0, 0, 0), NewVec3(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertVecEqual(t, tt.expected, tt.input.Normalize())
		})
	}
}

func TestVec3_Reflect(t *testing.T) {
	normals := []Vec3{
		NewVec3(0, 1, 0),
		NewVec3(1, 1, 0).Normalize(),
		NewVec3(-2, 3, 7).Normalize(),
	}
	vectors := []Vec3{
		NewVec3(1, -1, 0),
		NewVec3(0.3, 2, -5),
		NewVec3(-4, 0, 0.5),
	}

	for _, n := range normals {
		for _, v := range vectors {
			r := v.Reflect(n)
			assert.InDelta(t, -v.Dot(n), r.Dot(n), tolerance, "reflect(%v, %v)", v, n)
			assert.InDelta(t, v.Length(), r.Length(), tolerance, "reflect(%v, %v)", v, n)
		}
	}

	// A ray heading down onto a floor bounces straight back up
	assertVecEqual(t, NewVec3(1, 1, 0), NewVec3(1, -1, 0).Reflect(NewVec3(0, 1, 0)))
}

func TestVec3_ProjectOntoPlane(t *testing.T) {
	n := NewVec3(0, 0, 1)
	p := NewVec3(2, 3, 5).ProjectOntoPlane(n)

	assertVecEqual(t, NewVec3(2, 3, 0), p)
	assert.InDelta(t, 0, p.Dot(n), tolerance)
}

func TestVec3_Clamp(t *testing.T) {
	assertVecEqual(t, NewVec3(0, 0.5, 1), NewVec3(-2, 0.5, 7).Clamp(0, 1))
}
