package renderer

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"

	"github.com/df07/go-batch-raytracer/pkg/core"
	"github.com/df07/go-batch-raytracer/pkg/geometry"
	"github.com/df07/go-batch-raytracer/pkg/material"
	"github.com/df07/go-batch-raytracer/pkg/scene"
)

// NoExclude is the excludeID for rays that may hit any primitive
const NoExclude = -1

// TraceConfig contains rendering configuration
type TraceConfig struct {
	// MaxDistance ends a reflection chain once the distance travelled by
	// earlier segments exceeds it
	MaxDistance float64
}

// DefaultTraceConfig returns the standard distance budget
func DefaultTraceConfig() TraceConfig {
	return TraceConfig{MaxDistance: 30}
}

// Raytracer renders a scene one primary ray per pixel. It is not safe for
// concurrent use: procedural shading advances the scene's generator.
type Raytracer struct {
	scene  *scene.Scene
	config TraceConfig
	stats  TraceStats
	logger *slog.Logger
}

// NewRaytracer creates a new raytracer
func NewRaytracer(s *scene.Scene, logger *slog.Logger) *Raytracer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Raytracer{
		scene:  s,
		config: DefaultTraceConfig(),
		logger: logger,
	}
}

// SetTraceConfig updates the trace configuration
func (rt *Raytracer) SetTraceConfig(config TraceConfig) {
	rt.config = config
}

// Stats returns the counters gathered so far
func (rt *Raytracer) Stats() TraceStats {
	return rt.stats
}

// FindClosestHit returns the nearest primitive hit by ray, ignoring the
// primitive whose id is excludeID. Of equally distant hits the first in
// scene order wins.
func FindClosestHit(primitives []geometry.Primitive, ray core.Ray, excludeID int) (geometry.Primitive, geometry.Hit, bool) {
	var closest geometry.Primitive
	var closestHit geometry.Hit

	for _, p := range primitives {
		if p.ID() == excludeID {
			continue
		}
		hit, ok := p.Intersect(ray)
		if !ok {
			continue
		}
		if closest == nil || hit.Distance < closestHit.Distance {
			closest = p
			closestHit = hit
		}
	}

	return closest, closestHit, closest != nil
}

// Trace returns the unclamped color seen along ray. accumulated is the
// distance already travelled by earlier segments of the same path and
// excludeID the primitive the ray leaves from.
//
// Each segment contributes (ambient + diffuse) / hit distance. A reflective
// surface continues the path along the mirrored direction, scaled by its
// specular color, until nothing is hit or the distance budget runs out.
func (rt *Raytracer) Trace(ray core.Ray, accumulated float64, excludeID int) (core.Vec3, error) {
	var total core.Vec3
	throughput := core.NewVec3(1, 1, 1)
	chain := 0
	defer func() { rt.stats.recordChain(chain) }()

	for {
		if accumulated > rt.config.MaxDistance {
			rt.stats.BudgetTerminations++
			return total, nil
		}

		primitive, hit, ok := FindClosestHit(rt.scene.Primitives, ray, excludeID)
		if !ok {
			return total, nil
		}
		chain++
		rt.stats.Segments++

		local, err := rt.shade(primitive, hit)
		if err != nil {
			return core.Vec3{}, err
		}
		total = total.Add(throughput.MultiplyVec(local.Multiply(1.0 / hit.Distance)))

		specular, err := primitive.Specular(hit)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("object %d specular: %w", primitive.ID(), err)
		}
		if !material.IsReflective(specular) {
			return total, nil
		}

		throughput = throughput.MultiplyVec(specular)
		ray = core.NewRay(hit.Point, ray.Direction.Reflect(hit.Normal))
		accumulated += hit.Distance
		excludeID = primitive.ID()
	}
}

// shade returns ambient plus the diffuse contribution of every unoccluded light
func (rt *Raytracer) shade(primitive geometry.Primitive, hit geometry.Hit) (core.Vec3, error) {
	ambient, err := primitive.Ambient(hit)
	if err != nil {
		return core.Vec3{}, fmt.Errorf("object %d ambient: %w", primitive.ID(), err)
	}
	if len(rt.scene.Lights) == 0 {
		return ambient, nil
	}

	diffuse, err := primitive.Diffuse(hit)
	if err != nil {
		return core.Vec3{}, fmt.Errorf("object %d diffuse: %w", primitive.ID(), err)
	}

	result := ambient
	for _, light := range rt.scene.Lights {
		toLight, distance := light.Sample(hit.Point)
		direction := toLight.Normalize()

		cosine := direction.Dot(hit.Normal)
		if cosine < 0 {
			continue
		}

		rt.stats.ShadowProbes++
		_, blocker, occluded := FindClosestHit(rt.scene.Primitives, core.NewRay(hit.Point, direction), primitive.ID())
		if occluded && blocker.Distance < distance {
			continue
		}

		result = result.Add(diffuse.MultiplyVec(light.Emissivity).Multiply(cosine / distance))
	}
	return result, nil
}

// TracePixel returns the unclamped color of pixel (x, y), where y = 0 is the bottom row
func (rt *Raytracer) TracePixel(x, y int) (core.Vec3, error) {
	rt.stats.PrimaryRays++
	return rt.Trace(rt.scene.Projection.PrimaryRay(x, y), 0, NoExclude)
}

// Render traces every pixel and returns the image. Pixel row y of the
// projection is image row height-1-y, so the bottom of the scene is at the
// bottom of the image.
func (rt *Raytracer) Render() (*image.RGBA, error) {
	width, height := rt.scene.Projection.Width, rt.scene.Projection.Height
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c, err := rt.TracePixel(x, y)
			if err != nil {
				return nil, fmt.Errorf("pixel (%d, %d): %w", x, y, err)
			}
			img.SetRGBA(x, height-1-y, vec3ToColor(c))
		}
	}

	rt.logger.Info("Rendered image", "width", width, "height", height, "stats", rt.stats)
	return img, nil
}

// vec3ToColor clamps each channel to [0,1] and truncates to 8 bits
func vec3ToColor(c core.Vec3) color.RGBA {
	c = c.Clamp(0, 1)
	return color.RGBA{
		R: channelByte(c.X),
		G: channelByte(c.Y),
		B: channelByte(c.Z),
		A: 255,
	}
}

// channelByte scales a clamped channel to 8 bits. NaN is black.
func channelByte(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(255 * v)
}
