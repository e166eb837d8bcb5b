package geometry

import (
	"log/slog"

	"github.com/df07/go-batch-raytracer/pkg/core"
	"github.com/df07/go-batch-raytracer/pkg/material"
)

// TexturedPlane is a bounded plane whose ambient and diffuse colors are
// modulated by an image. Specular reflectivity comes straight from the material.
type TexturedPlane struct {
	BoundedPlane
	Texture    *material.Texture
	Mode       material.TextureMode
	projection *Projection // Tile mode works in output pixels
}

// NewTexturedPlane creates a textured plane. The projection is used by Tile mode.
func NewTexturedPlane(id int, mat material.Material, normal, point, xdir core.Vec3, size core.Vec2,
	texture *material.Texture, mode material.TextureMode, projection *Projection) *TexturedPlane {
	tp := &TexturedPlane{
		BoundedPlane: *NewBoundedPlane(id, mat, normal, point, xdir, size),
		Texture:      texture,
		Mode:         mode,
		projection:   projection,
	}
	tp.kind = KindTexturedPlane
	return tp
}

// UV returns the fractional texture coordinates for a hit
func (tp *TexturedPlane) UV(hit Hit) (u, v float64) {
	if tp.Mode == material.TextureFit {
		return hit.Local.X / tp.Size.X, hit.Local.Y / tp.Size.Y
	}

	px, py := tp.projection.WorldToPixel(hit.Local)
	return float64(wrap(px, tp.Texture.Width)) / float64(tp.Texture.Width),
		float64(wrap(py, tp.Texture.Height)) / float64(tp.Texture.Height)
}

// wrap returns i mod n in [0, n)
func wrap(i, n int) int {
	m := i % n
	if m < 0 {
		m += n
	}
	return m
}

// TexelAt samples the texture at a hit
func (tp *TexturedPlane) TexelAt(hit Hit) (core.Vec3, error) {
	u, v := tp.UV(hit)
	return tp.Texture.Texel(u, v)
}

// Ambient implements Primitive
func (tp *TexturedPlane) Ambient(hit Hit) (core.Vec3, error) {
	texel, err := tp.TexelAt(hit)
	if err != nil {
		return core.Vec3{}, err
	}
	return tp.Material.Ambient.MultiplyVec(texel), nil
}

// Diffuse implements Primitive
func (tp *TexturedPlane) Diffuse(hit Hit) (core.Vec3, error) {
	texel, err := tp.TexelAt(hit)
	if err != nil {
		return core.Vec3{}, err
	}
	return tp.Material.Diffuse.MultiplyVec(texel), nil
}

// LogValue implements slog.LogValuer for scene dumps
func (tp *TexturedPlane) LogValue() slog.Value {
	return slog.GroupValue(append(tp.BoundedPlane.logAttrs(),
		slog.Any("texture", tp.Texture),
		slog.String("mode", tp.Mode.String()),
	)...)
}
