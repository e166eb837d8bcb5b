package material

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-batch-raytracer/pkg/core"
)

func TestLookupShaders(t *testing.T) {
	for i := range PlaneShaders {
		shader, err := LookupPlaneShader(i)
		require.NoError(t, err)
		assert.NotNil(t, shader)
	}

	_, err := LookupPlaneShader(len(PlaneShaders))
	assert.ErrorIs(t, err, ErrShaderIndex)
	_, err = LookupPlaneShader(-1)
	assert.ErrorIs(t, err, ErrShaderIndex)

	_, err = LookupSphereShader(0)
	assert.NoError(t, err)
	_, err = LookupSphereShader(1)
	assert.ErrorIs(t, err, ErrShaderIndex)
}

func TestPlaneChecker(t *testing.T) {
	ambient := core.NewVec3(0.2, 0.4, 0.6)

	tests := []struct {
		name    string
		offset  core.Vec3
		blanked bool
	}{
		{"origin", core.NewVec3(0, 0, 0), false},
		{"both in upper band", core.NewVec3(3.5, 4.2, 0), true},
		{"only x in upper band", core.NewVec3(4, 1, 0), false},
		{"only y in upper band", core.NewVec3(1, 5, 0), false},
		{"second period", core.NewVec3(9.9, 10, 0), true},
		{"z counts toward both axes", core.NewVec3(0, 0, 4), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PlaneChecker(ambient, tt.offset)
			if tt.blanked {
				assert.Equal(t, core.Vec3{}, got)
			} else {
				assert.Equal(t, ambient, got)
			}
		})
	}
}

func TestPlaneCosineBands(t *testing.T) {
	ambient := core.NewVec3(0.5, 0.5, 0.5)

	// Distances under one unit truncate to zero: cos(0) leaves the color alone
	assert.Equal(t, ambient, PlaneCosineBands(ambient, core.NewVec3(0.9, 100, 0)))

	// dx = 7 (y ignored) -> divide by cos(0.7)
	got := PlaneCosineBands(ambient, core.NewVec3(7.3, 50, 0))
	assert.InDelta(t, 0.5/math.Cos(0.7), got.X, 1e-12)
	assert.InDelta(t, got.X, got.Z, 1e-12)
}

func TestSphereRandomChannel(t *testing.T) {
	ambient := core.NewVec3(1, 1, 1)

	// Odd shells keep the color and do not consume random numbers
	random := NewRand(1)
	assert.Equal(t, ambient, SphereRandomChannel(ambient, core.NewVec3(1.5, 0, 0), random))
	assert.Equal(t, NewRand(1).Int(), random.Int())

	// Even shells zero channel rand()%3; 1804289383 % 3 == 1
	got := SphereRandomChannel(ambient, core.NewVec3(0, 2.5, 0), NewRand(1))
	assert.Equal(t, core.NewVec3(1, 0, 1), got)
}

func TestIsReflective(t *testing.T) {
	assert.False(t, IsReflective(core.Vec3{}))
	assert.True(t, IsReflective(core.NewVec3(0, 0, 0.1)))
	assert.False(t, IsReflective(core.NewVec3(math.NaN(), 0, 0)))
}
