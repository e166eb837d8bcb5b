package loaders

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"os"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder

	"github.com/df07/go-batch-raytracer/pkg/material"
)

// sniffLen is the number of leading bytes filetype needs to match every type it knows
const sniffLen = 262

// LoadTexture loads a texture file. The format is detected from the file's
// leading bytes, not its name: PNG, JPEG, BMP and TIFF go through
// image.Decode and everything else must be a binary PPM.
func LoadTexture(filename string) (*material.Texture, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture file: %w", err)
	}
	defer file.Close()

	br := bufio.NewReaderSize(file, sniffLen)
	head, err := br.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read texture file: %w", err)
	}

	if filetype.IsImage(head) {
		return DecodeImage(br, filename)
	}
	return ReadPPM(br, filename)
}

// DecodeImage decodes any registered image format into an 8-bit RGB texture.
// Alpha is discarded.
func DecodeImage(r io.Reader, name string) (*material.Texture, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w: %v", name, ErrTextureFormat, err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]byte, 0, width*height*3)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			// RGBA returns uint32 in [0, 65535]
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			pixels = append(pixels, byte(r>>8), byte(g>>8), byte(b>>8))
		}
	}

	return material.NewTexture(name, width, height, pixels)
}
