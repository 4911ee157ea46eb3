package utils

import (
	"image"
	"image/png"
	"os"

	"golang.org/x/image/draw"
)

// ScaleImage returns img scaled by the given integer factor using
// nearest-neighbour sampling, keeping the hard pixel edges of the
// LCD output.
func ScaleImage(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// SaveImage writes img to the given path as a PNG, scaled by factor.
func SaveImage(img image.Image, path string, factor int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, ScaleImage(img, factor))
}
