package geometry

import (
	"fmt"
	"log/slog"

	"github.com/df07/go-batch-raytracer/pkg/core"
)

// Projection maps between output pixels and the world-space screen window.
// The window lies in the z = 0 plane, centered on the origin; the eye sits
// in front of it and the visible scene lies at negative z.
type Projection struct {
	Width       int       // Output width in pixels
	Height      int       // Output height in pixels
	WorldWidth  float64   // Window width in world units
	WorldHeight float64   // Window height in world units
	Eye         core.Vec3 // Viewpoint every primary ray starts from
}

// NewProjection validates and creates a projection
func NewProjection(width, height int, worldWidth, worldHeight float64, eye core.Vec3) (*Projection, error) {
	if width < 2 || height < 2 {
		return nil, fmt.Errorf("image size %dx%d: need at least 2 pixels per side", width, height)
	}
	if worldWidth <= 0 || worldHeight <= 0 {
		return nil, fmt.Errorf("world window %gx%g: dimensions must be positive", worldWidth, worldHeight)
	}
	return &Projection{
		Width:       width,
		Height:      height,
		WorldWidth:  worldWidth,
		WorldHeight: worldHeight,
		Eye:         eye,
	}, nil
}

// PixelToWorld returns the screen-window point for pixel (x, y).
// Pixel (0, 0) maps to the lower-left corner of the window.
func (p *Projection) PixelToWorld(x, y int) core.Vec3 {
	return core.NewVec3(
		float64(x)/float64(p.Width-1)*p.WorldWidth-p.WorldWidth/2.0,
		float64(y)/float64(p.Height-1)*p.WorldHeight-p.WorldHeight/2.0,
		0,
	)
}

// WorldToPixel scales a world-space (x, y) distance to whole pixels,
// truncating toward zero
func (p *Projection) WorldToPixel(point core.Vec2) (int, int) {
	return int(float64(p.Width-1) * (point.X / p.WorldWidth)),
		int(float64(p.Height-1) * (point.Y / p.WorldHeight))
}

// PrimaryRay returns the unit-direction ray from the eye through pixel (x, y)
func (p *Projection) PrimaryRay(x, y int) core.Ray {
	screen := p.PixelToWorld(x, y)
	return core.NewRay(p.Eye, screen.Subtract(p.Eye).Normalize())
}

// LogValue implements slog.LogValuer for scene dumps
func (p *Projection) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("pixels", fmt.Sprintf("%dx%d", p.Width, p.Height)),
		slog.String("world", fmt.Sprintf("%gx%g", p.WorldWidth, p.WorldHeight)),
		slog.String("eye", p.Eye.String()),
	)
}
