package loaders

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/df07/go-recursive-raytracer/pkg/renderer"
)

// ImageFormat names an output encoding
type ImageFormat string

const (
	FormatPNG  ImageFormat = "png"
	FormatBMP  ImageFormat = "bmp"
	FormatTIFF ImageFormat = "tiff"
)

// maxUniqueAttempts bounds the search for a free output file name
const maxUniqueAttempts = 1000

// ErrNoFreePath is returned when every candidate output name is taken
var ErrNoFreePath = errors.New("no free output file name")

// ParseImageFormat converts a format name or extension into an ImageFormat
func ParseImageFormat(name string) (ImageFormat, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), ".")) {
	case "", "png":
		return FormatPNG, nil
	case "bmp":
		return FormatBMP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	default:
		return "", fmt.Errorf("unsupported image format %q", name)
	}
}

// FormatFromPath picks the encoding from a file extension, defaulting to PNG
func FormatFromPath(path string) ImageFormat {
	format, err := ParseImageFormat(filepath.Ext(path))
	if err != nil {
		return FormatPNG
	}
	return format
}

// ContentType returns the MIME type for the format
func (f ImageFormat) ContentType() string {
	switch f {
	case FormatBMP:
		return "image/bmp"
	case FormatTIFF:
		return "image/tiff"
	default:
		return "image/png"
	}
}

// ToRGBA converts a rendered image to 8-bit RGBA. Row 0 of img is the top of the output.
func ToRGBA(img renderer.Image) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Width(), img.Height()))
	for y, row := range img {
		for x, c := range row {
			r, g, b := c.RGB8()
			out.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return out
}

// EncodeImage writes img to w in the given format
func EncodeImage(w io.Writer, img renderer.Image, format ImageFormat) error {
	rgba := ToRGBA(img)

	var err error
	switch format {
	case FormatPNG, "":
		err = png.Encode(w, rgba)
	case FormatBMP:
		err = bmp.Encode(w, rgba)
	case FormatTIFF:
		err = tiff.Encode(w, rgba, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return nil
}

// SaveImage encodes img into a new file at path
func SaveImage(path string, img renderer.Image, format ImageFormat) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := EncodeImage(file, img, format); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// UniquePath returns path if nothing exists there, otherwise the first free
// name of the form base-N.ext for N in 1..999
func UniquePath(path string) (string, error) {
	if !exists(path) {
		return path, nil
	}

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for i := 1; i < maxUniqueAttempts; i++ {
		candidate := fmt.Sprintf("%s-%d%s", base, i, ext)
		if !exists(candidate) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: tried %s through %s-%d%s, choose a name with -out",
		ErrNoFreePath, path, base, maxUniqueAttempts-1, ext)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
