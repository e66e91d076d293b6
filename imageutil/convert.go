package imageutil

import "image/color"

// ToGrayscale computes BT.601 luma, Y = 0.299*R + 0.587*G + 0.114*B rounded
// to the nearest integer, from the straight colour channels. Alpha is
// ignored, so a transparent white pixel has luma 255.
func ToGrayscale(img *Image) *GrayImage {
	width, height := img.Width(), img.Height()
	gray := NewGrayImage(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := img.NRGBAAt(x, y)
			lum := (299*int(c.R) + 587*int(c.G) + 114*int(c.B) + 500) / 1000
			gray.SetGray(x, y, color.Gray{Y: uint8(min(lum, 255))})
		}
	}

	return gray
}
