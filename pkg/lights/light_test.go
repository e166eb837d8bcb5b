package lights

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/df07/go-batch-raytracer/pkg/core"
)

func TestLight_Sample(t *testing.T) {
	light := NewLight(0, core.NewVec3(5, 5, 5), core.NewVec3(0, 4, -3))

	direction, distance := light.Sample(core.NewVec3(0, 0, -3))
	assert.Equal(t, core.NewVec3(0, 4, 0), direction)
	assert.InDelta(t, 4.0, distance, 1e-12)
}

func TestLight_LogValue(t *testing.T) {
	light := NewLight(3, core.NewVec3(1, 2, 3), core.NewVec3(-1, 0, -5))

	value := light.LogValue()
	assert.Equal(t, slog.KindGroup, value.Kind())

	attrs := map[string]string{}
	for _, a := range value.Group() {
		attrs[a.Key] = a.Value.String()
	}
	assert.Equal(t, "3", attrs["id"])
	assert.Equal(t, "(1, 2, 3)", attrs["emissivity"])
	assert.Equal(t, "(-1, 0, -5)", attrs["center"])
}
