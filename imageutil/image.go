// Package imageutil provides the pixel containers and image I/O that feed
// the qrtext samplers.
package imageutil

import (
	"image"
	"image/color"
)

// RGB is an 8-bit per channel colour without alpha.
type RGB struct {
	R, G, B uint8
}

// Opaque returns c with full alpha.
func (c RGB) Opaque() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// Image holds pixels with straight (non-premultiplied) alpha, so a
// transparent white background keeps its colour channels at 255. Bounds
// always start at the origin.
type Image struct {
	*image.NRGBA
}

// NewImage allocates a transparent image of the given size.
func NewImage(width, height int) *Image {
	return &Image{NRGBA: image.NewNRGBA(image.Rect(0, 0, width, height))}
}

// FromImage copies src into a new Image, moving its bounds to the origin.
// An *Image is returned as is.
func FromImage(src image.Image) *Image {
	if img, ok := src.(*Image); ok {
		return img
	}
	b := src.Bounds()
	img := NewImage(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			// NRGBA.Set converts through color.NRGBAModel.
			img.Set(x, y, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return img
}

func (img *Image) Width() int  { return img.Rect.Dx() }
func (img *Image) Height() int { return img.Rect.Dy() }

// GetRGB returns the colour channels at (x, y) as stored, ignoring alpha.
func (img *Image) GetRGB(x, y int) RGB {
	c := img.NRGBAAt(x, y)
	return RGB{R: c.R, G: c.G, B: c.B}
}

// SetRGB writes an opaque pixel.
func (img *Image) SetRGB(x, y int, c RGB) {
	img.SetNRGBA(x, y, c.Opaque())
}

// GrayImage is a luma plane.
type GrayImage struct {
	*image.Gray
}

func NewGrayImage(width, height int) *GrayImage {
	return &GrayImage{Gray: image.NewGray(image.Rect(0, 0, width, height))}
}

func (img *GrayImage) Width() int  { return img.Rect.Dx() }
func (img *GrayImage) Height() int { return img.Rect.Dy() }

// GetGray returns the luma at (x, y).
func (img *GrayImage) GetGray(x, y int) uint8 {
	return img.GrayAt(x, y).Y
}
