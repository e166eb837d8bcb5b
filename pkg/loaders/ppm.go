package loaders

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/df07/go-batch-raytracer/pkg/material"
)

var (
	// ErrTextureFormat is returned for texture files that are not binary RGB PPM
	ErrTextureFormat = errors.New("unsupported texture format")
	// ErrTextureSize is returned when texture pixel data is shorter than the header promises
	ErrTextureSize = errors.New("texture data shorter than header size")
)

// ReadPPM decodes a binary (P6) PPM image with 8-bit samples
func ReadPPM(r io.Reader, name string) (*material.Texture, error) {
	br := bufio.NewReader(r)

	magic, err := ppmToken(br)
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w: reading header: %v", name, ErrTextureFormat, err)
	}
	if magic != "P6" {
		return nil, fmt.Errorf("texture %s: %w: magic %q, want P6", name, ErrTextureFormat, magic)
	}

	var header [3]int // width, height, maxval
	for i, field := range []string{"width", "height", "maxval"} {
		token, err := ppmToken(br)
		if err != nil {
			return nil, fmt.Errorf("texture %s: %w: reading %s: %v", name, ErrTextureFormat, field, err)
		}
		header[i], err = strconv.Atoi(token)
		if err != nil || header[i] <= 0 {
			return nil, fmt.Errorf("texture %s: %w: invalid %s %q", name, ErrTextureFormat, field, token)
		}
	}
	width, height, maxval := header[0], header[1], header[2]
	if maxval > 255 {
		return nil, fmt.Errorf("texture %s: %w: 16-bit samples (maxval %d)", name, ErrTextureFormat, maxval)
	}

	// ppmToken consumed the single whitespace byte after maxval
	pixels := make([]byte, width*height*3)
	if n, err := io.ReadFull(br, pixels); err != nil {
		return nil, fmt.Errorf("texture %s: %w: read %d of %d bytes", name, ErrTextureSize, n, len(pixels))
	}

	return material.NewTexture(name, width, height, pixels)
}

// ppmToken returns the next whitespace-delimited header token, skipping
// '#' comments. The whitespace byte ending the token is consumed.
func ppmToken(br *bufio.Reader) (string, error) {
	var token []byte
	for {
		c, err := br.ReadByte()
		if err != nil {
			if err == io.EOF && len(token) > 0 {
				return string(token), nil
			}
			return "", err
		}

		switch {
		case c == '#' && len(token) == 0:
			if _, err := br.ReadString('\n'); err != nil {
				return "", err
			}
		case isPPMSpace(c):
			if len(token) > 0 {
				return string(token), nil
			}
		default:
			token = append(token, c)
		}
	}
}

func isPPMSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}
