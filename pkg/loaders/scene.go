package loaders

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/df07/go-batch-raytracer/pkg/core"
	"github.com/df07/go-batch-raytracer/pkg/geometry"
	"github.com/df07/go-batch-raytracer/pkg/material"
	"github.com/df07/go-batch-raytracer/pkg/scene"
)

var (
	// ErrUnknownObjectType is returned for a type code outside the supported set
	ErrUnknownObjectType = errors.New("unknown object type")
	// ErrUnexpectedEOF is returned when input ends inside an object or the header
	ErrUnexpectedEOF = errors.New("unexpected end of scene description")
	// ErrInvalidTextureMode is returned for a textured plane mode other than fit or tile
	ErrInvalidTextureMode = errors.New("invalid texture mode")
)

// typeLight is the type code of a point light. Primitive codes are the
// geometry.Kind values.
const typeLight = 10

// SceneOptions controls how a scene description is loaded
type SceneOptions struct {
	// BaseDir resolves relative texture filenames. Empty means the working directory.
	BaseDir string
	Logger  *slog.Logger
}

// LoadScene reads a scene description file and builds a scene rendered at
// width x height pixels. Textures are resolved relative to the file.
func LoadScene(filename string, width, height int, logger *slog.Logger) (*scene.Scene, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	s, err := ParseScene(file, width, height, SceneOptions{
		BaseDir: filepath.Dir(filename),
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

// ParseScene reads a scene description: the header (world window size and
// eye position) followed by objects until end of input.
//
// Fields are read as whitespace-separated numbers that may span lines. Once a
// field group is complete the rest of its last line is a comment. A token
// that does not parse discards the rest of its line and restarts the group.
func ParseScene(r io.Reader, width, height int, opts SceneOptions) (*scene.Scene, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	p := &sceneParser{
		scanner:  bufio.NewScanner(r),
		opts:     opts,
		textures: make(map[string]*material.Texture),
	}

	worldSize, err := p.readVec2("world window size")
	if err != nil {
		return nil, err
	}
	eye, err := p.readVec3("eye position")
	if err != nil {
		return nil, err
	}

	projection, err := geometry.NewProjection(width, height, worldSize.X, worldSize.Y, eye)
	if err != nil {
		return nil, err
	}
	p.scene = scene.New(projection)

	for {
		code, ok, err := p.nextTypeCode()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if err := p.readObject(code); err != nil {
			return nil, fmt.Errorf("object %d (type %d) at line %d: %w", p.scene.PrimitiveCount()+len(p.scene.Lights), code, p.line, err)
		}
	}

	opts.Logger.Info("Loaded scene",
		"lights", len(p.scene.Lights),
		"objects", p.scene.PrimitiveCount(),
		"textures", len(p.textures))
	return p.scene, nil
}

type sceneParser struct {
	scanner  *bufio.Scanner
	line     int
	pending  []string // Unread tokens of the current line
	opts     SceneOptions
	scene    *scene.Scene
	textures map[string]*material.Texture // Loaded once per filename
}

// nextLine returns the next input line, or false at end of input. Tokens
// left on the previous line are dropped.
func (p *sceneParser) nextLine() (string, bool, error) {
	p.pending = nil
	if !p.scanner.Scan() {
		return "", false, p.scanner.Err()
	}
	p.line++
	return p.scanner.Text(), true, nil
}

// nextToken returns the next whitespace-separated token, reading further
// lines as needed, or false at end of input
func (p *sceneParser) nextToken() (string, bool, error) {
	for len(p.pending) == 0 {
		line, ok, err := p.nextLine()
		if err != nil || !ok {
			return "", false, err
		}
		p.pending = strings.Fields(line)
	}
	token := p.pending[0]
	p.pending = p.pending[1:]
	return token, true, nil
}

// readNumbers collects n numbers from the token stream. A token that does
// not parse discards the rest of its line and the numbers gathered so far.
// The rest of the line holding the last number is dropped.
func (p *sceneParser) readNumbers(n int, what string, parse func(string) (float64, error)) ([]float64, error) {
	values := make([]float64, 0, n)
	for len(values) < n {
		token, ok, err := p.nextToken()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: reading %s", ErrUnexpectedEOF, what)
		}

		v, err := parse(token)
		if err != nil {
			p.opts.Logger.Debug("Skipping scene line", "line", p.line, "want", what, "token", token)
			p.pending = nil
			values = values[:0]
			continue
		}
		values = append(values, v)
	}
	p.pending = nil
	return values, nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

func parseInt(s string) (float64, error) {
	v, err := strconv.Atoi(s)
	return float64(v), err
}

func (p *sceneParser) readFloat(what string) (float64, error) {
	v, err := p.readNumbers(1, what, parseFloat)
	if err != nil {
		return 0, err
	}
	return v[0], nil
}

func (p *sceneParser) readInt(what string) (int, error) {
	v, err := p.readNumbers(1, what, parseInt)
	if err != nil {
		return 0, err
	}
	return int(v[0]), nil
}

func (p *sceneParser) readVec2(what string) (core.Vec2, error) {
	v, err := p.readNumbers(2, what, parseFloat)
	if err != nil {
		return core.Vec2{}, err
	}
	return core.NewVec2(v[0], v[1]), nil
}

func (p *sceneParser) readVec3(what string) (core.Vec3, error) {
	v, err := p.readNumbers(3, what, parseFloat)
	if err != nil {
		return core.Vec3{}, err
	}
	return core.NewVec3(v[0], v[1], v[2]), nil
}

// nextTypeCode returns the next object type code, or false at a clean end of input
func (p *sceneParser) nextTypeCode() (int, bool, error) {
	for {
		token, ok, err := p.nextToken()
		if err != nil || !ok {
			return 0, false, err
		}
		code, err := strconv.Atoi(token)
		if err != nil {
			p.opts.Logger.Debug("Skipping scene line", "line", p.line, "want", "object type", "token", token)
			p.pending = nil
			continue
		}
		p.pending = nil
		return code, true, nil
	}
}

func (p *sceneParser) readObject(code int) error {
	if code == typeLight {
		emissivity, err := p.readVec3("light emissivity")
		if err != nil {
			return err
		}
		center, err := p.readVec3("light center")
		if err != nil {
			return err
		}
		p.scene.AddLight(emissivity, center)
		return nil
	}

	switch geometry.Kind(code) {
	case geometry.KindSphere:
		return p.readSphere(false)
	case geometry.KindInfinitePlane:
		return p.readPlane(false)
	case geometry.KindBoundedPlane, geometry.KindTiledPlane, geometry.KindTexturedPlane:
		return p.readFramedPlane(geometry.Kind(code))
	case geometry.KindProceduralSphere:
		return p.readSphere(true)
	case geometry.KindProceduralPlane:
		return p.readPlane(true)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownObjectType, code)
	}
}

func (p *sceneParser) readMaterial() (material.Material, error) {
	ambient, err := p.readVec3("ambient")
	if err != nil {
		return material.Material{}, err
	}
	diffuse, err := p.readVec3("diffuse")
	if err != nil {
		return material.Material{}, err
	}
	specular, err := p.readVec3("specular")
	if err != nil {
		return material.Material{}, err
	}
	return material.NewMaterial(ambient, diffuse, specular), nil
}

func (p *sceneParser) readSphere(procedural bool) error {
	mat, err := p.readMaterial()
	if err != nil {
		return err
	}
	center, err := p.readVec3("sphere center")
	if err != nil {
		return err
	}
	radius, err := p.readFloat("sphere radius")
	if err != nil {
		return err
	}

	if !procedural {
		p.scene.AddSphere(mat, center, radius)
		return nil
	}

	shader, err := p.readInt("shader index")
	if err != nil {
		return err
	}
	_, err = p.scene.AddProceduralSphere(mat, center, radius, shader)
	return err
}

func (p *sceneParser) readPlaneFields() (mat material.Material, normal, point core.Vec3, err error) {
	if mat, err = p.readMaterial(); err != nil {
		return
	}
	if normal, err = p.readVec3("plane normal"); err != nil {
		return
	}
	point, err = p.readVec3("plane point")
	return
}

func (p *sceneParser) readPlane(procedural bool) error {
	mat, normal, point, err := p.readPlaneFields()
	if err != nil {
		return err
	}

	if !procedural {
		p.scene.AddPlane(mat, normal, point)
		return nil
	}

	shader, err := p.readInt("shader index")
	if err != nil {
		return err
	}
	_, err = p.scene.AddProceduralPlane(mat, normal, point, shader)
	return err
}

// readFramedPlane reads the bounded plane fields and whatever the variant adds
func (p *sceneParser) readFramedPlane(kind geometry.Kind) error {
	mat, normal, point, err := p.readPlaneFields()
	if err != nil {
		return err
	}
	xdir, err := p.readVec3("x direction")
	if err != nil {
		return err
	}
	size, err := p.readVec2("plane size")
	if err != nil {
		return err
	}

	switch kind {
	case geometry.KindTiledPlane:
		background, err := p.readMaterial()
		if err != nil {
			return err
		}
		p.scene.AddTiledPlane(mat, normal, point, xdir, size, background)

	case geometry.KindTexturedPlane:
		texture, err := p.readTexture()
		if err != nil {
			return err
		}
		mode, err := p.readInt("texture mode")
		if err != nil {
			return err
		}
		textureMode := material.TextureMode(mode)
		if textureMode != material.TextureFit && textureMode != material.TextureTile {
			return fmt.Errorf("%w: %d", ErrInvalidTextureMode, mode)
		}
		p.scene.AddTexturedPlane(mat, normal, point, xdir, size, texture, textureMode)

	default:
		p.scene.AddBoundedPlane(mat, normal, point, xdir, size)
	}
	return nil
}

// readTexture reads a texture filename line and loads the file, once per name
func (p *sceneParser) readTexture() (*material.Texture, error) {
	var name string
	for name == "" {
		line, ok, err := p.nextLine()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: reading texture filename", ErrUnexpectedEOF)
		}
		name = strings.TrimSpace(line)
	}

	path := name
	if !filepath.IsAbs(path) && p.opts.BaseDir != "" {
		path = filepath.Join(p.opts.BaseDir, path)
	}

	if texture, ok := p.textures[path]; ok {
		return texture, nil
	}

	texture, err := LoadTexture(path)
	if err != nil {
		return nil, err
	}
	p.opts.Logger.Debug("Loaded texture", "texture", texture)
	p.textures[path] = texture
	return texture, nil
}
