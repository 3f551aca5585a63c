// Package storage validates, normalizes and stores profile images.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
)

// MaxDimension bounds the longer side of a stored profile image.
const MaxDimension = 512

const jpegQuality = 85

var ErrInvalidImage = errors.New("invalid image")

// Magic byte signatures for allowed image types
var magicBytes = map[string][]byte{
	".jpg":  {0xFF, 0xD8, 0xFF},
	".jpeg": {0xFF, 0xD8, 0xFF},
	".png":  {0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A},
}

// ValidateImage checks the extension whitelist and that the content starts with the signature
// of that extension. It returns the lowercase extension.
func ValidateImage(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	sig, ok := magicBytes[ext]
	if !ok {
		return "", fmt.Errorf("%w: extension %q not allowed", ErrInvalidImage, ext)
	}
	if !bytes.HasPrefix(data, sig) {
		return "", fmt.Errorf("%w: content does not match %s", ErrInvalidImage, ext)
	}
	return ext, nil
}

// Normalize decodes data, scales it down so neither side exceeds MaxDimension and re-encodes it
// as JPEG. Smaller images keep their size.
func Normalize(data []byte) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrInvalidImage, format, err)
	}

	bounds := img.Bounds()
	width, height := fit(bounds.Dx(), bounds.Dy(), MaxDimension)

	resized := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// fit keeps the aspect ratio while bounding the longer side.
func fit(width, height, limit int) (int, int) {
	if width <= limit && height <= limit {
		return width, height
	}
	if width >= height {
		return limit, max(1, height*limit/width)
	}
	return max(1, width*limit/height), limit
}
