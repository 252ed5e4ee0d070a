package renderer

import "github.com/df07/go-recursive-raytracer/pkg/core"

// Image is a row-major grid of colors; Image[row][col] with row 0 at the top
type Image [][]core.Color

// NewImage creates a width x height image filled with fill
func NewImage(width, height int, fill core.Color) Image {
	img := make(Image, height)
	for row := range img {
		img[row] = make([]core.Color, width)
		for col := range img[row] {
			img[row][col] = fill
		}
	}
	return img
}

// Width returns the number of columns
func (img Image) Width() int {
	if len(img) == 0 {
		return 0
	}
	return len(img[0])
}

// Height returns the number of rows
func (img Image) Height() int {
	return len(img)
}

// Equals reports whether two images have the same size and identical pixels
func (img Image) Equals(other Image) bool {
	if img.Height() != other.Height() || img.Width() != other.Width() {
		return false
	}
	for row := range img {
		for col := range img[row] {
			if img[row][col] != other[row][col] {
				return false
			}
		}
	}
	return true
}
