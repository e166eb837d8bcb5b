package material

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/df07/go-batch-raytracer/pkg/core"
)

// ErrTexelOutOfRange is returned when texture coordinates map outside the image
var ErrTexelOutOfRange = errors.New("texel coordinates out of range")

// TextureMode selects how a texture is laid over a bounded plane
type TextureMode int

const (
	// TextureFit stretches one copy of the image over the whole plane
	TextureFit TextureMode = 1
	// TextureTile repeats the image, one texel per output pixel
	TextureTile TextureMode = 2
)

func (m TextureMode) String() string {
	switch m {
	case TextureFit:
		return "fit"
	case TextureTile:
		return "tile"
	default:
		return fmt.Sprintf("TextureMode(%d)", int(m))
	}
}

// Texture is a raw RGB pixel buffer
type Texture struct {
	Name   string
	Width  int
	Height int
	Pixels []byte // Row-major RGB triples, top row first as stored on disk
}

// NewTexture wraps an RGB buffer. The buffer must hold exactly width*height*3 bytes.
func NewTexture(name string, width, height int, pixels []byte) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("texture %s: invalid dimensions %dx%d", name, width, height)
	}
	if len(pixels) != width*height*3 {
		return nil, fmt.Errorf("texture %s: expected %d bytes, got %d", name, width*height*3, len(pixels))
	}
	return &Texture{Name: name, Width: width, Height: height, Pixels: pixels}, nil
}

// Texel returns the color at fractional coordinates (u, v), where v = 0 is the
// bottom row of the image. Channels are scaled to [0,1]. Coordinates are not
// wrapped or clamped; anything outside the image is an error.
func (t *Texture) Texel(u, v float64) (core.Vec3, error) {
	x := int(math.Floor(u * float64(t.Width)))
	y := int(math.Floor(v * float64(t.Height)))

	if math.IsNaN(u) || math.IsNaN(v) || x < 0 || y < 0 || x >= t.Width || y >= t.Height {
		return core.Vec3{}, fmt.Errorf("%w: texel (%d, %d) from uv (%g, %g) in %dx%d texture %s",
			ErrTexelOutOfRange, x, y, u, v, t.Width, t.Height, t.Name)
	}

	offset := ((t.Height-1-y)*t.Width + x) * 3
	return core.NewVec3(
		float64(t.Pixels[offset])/255.0,
		float64(t.Pixels[offset+1])/255.0,
		float64(t.Pixels[offset+2])/255.0,
	), nil
}

// LogValue implements slog.LogValuer for scene dumps
func (t *Texture) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("name", t.Name),
		slog.Int("width", t.Width),
		slog.Int("height", t.Height),
	)
}
